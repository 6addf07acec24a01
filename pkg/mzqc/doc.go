// Package mzqc provides the typed document model for the mzQC format,
// the PSI standard JSON container for mass-spectrometry quality-control
// metrics.
//
// This package defines the canonical wire mapping between the in-memory
// model and the on-disk mzQC JSON encoding, used for files, tooling, and
// cross-tool interoperability.
//
// # Architecture
//
// The model is a strict ownership tree rooted at [File]:
//
//	File
//	├── ControlledVocabulary (referenced ontologies)
//	├── RunQuality
//	│   ├── InputFile (with CvParameter file format/properties)
//	│   ├── AnalysisSoftware
//	│   └── QualityMetric
//	└── SetQuality
//	    └── QualityMetric
//
// Every entity owns its JSON mapping via MarshalJSON/UnmarshalJSON. The
// document root adds file-level operations ([Load], [File.Save] and their
// schema-validated variants) and the structural validator
// ([ValidateStructure] with [SchemaCache]).
//
// # Round-Trip Fidelity
//
// The format is designed for round-trip fidelity: read → modify → write
// preserves every field, and [QualityMetric.Value] payloads keep their
// exact JSON type. Numbers decode as [json.Number] so an integer metric
// value re-encodes as an integer, never as a float. Serialization of any
// entity with all optional fields unset yields only its required keys; no
// optional key is ever written with a null or empty value.
//
// # Wire Format
//
// A document is a single JSON object with one top-level "mzQC" key:
//
//	{
//	  "mzQC": {
//	    "version": "1.0.0",
//	    "creationDate": "2023-01-01T00:00:00Z",
//	    "controlledVocabularies": [...],
//	    "runQualities": [...],
//	    "setQualities": [...]
//	  }
//	}
//
// Decoding also accepts the body without the "mzQC" wrapper; encoding
// always emits the wrapped form.
//
// # Validation
//
// Structural validation is opt-in and presence-only: it checks document
// shape (the wrapper key, version/creationDate, at least one quality
// collection, controlledVocabularies), not leaf types or enum values.
// Deserialization itself never fails on missing optional keys, so
// documents from newer mzQC revisions with added optional fields remain
// readable.
//
// # Concurrency
//
// Entities and caches are not safe for concurrent mutation. Callers must
// synchronize access if multiple goroutines share a document or a
// [SchemaCache]; read-only access after loading is safe.
package mzqc
