package mzqc

import (
	"os"

	"github.com/mzqctools/mzqc/pkg/errors"
)

// SchemaCache holds the mzQC schema file referenced during validation.
// The file is read once on first use and the bytes are kept for the
// lifetime of the cache object; the schema text itself is treated as an
// opaque artifact. Construct one per schema variant rather than relying
// on hidden process-wide state.
//
// A SchemaCache is not safe for concurrent first use; after the initial
// load it is read-only.
type SchemaCache struct {
	path   string
	raw    []byte
	loaded bool
}

// NewSchemaCache creates a cache for the schema file at path. The file is
// not read until the first validation (or call to Raw).
func NewSchemaCache(path string) *SchemaCache {
	return &SchemaCache{path: path}
}

// Path returns the schema file path the cache was created with.
func (c *SchemaCache) Path() string { return c.path }

// Raw returns the schema bytes, reading the file on first call. An
// unreadable path is reported as an IO_ERROR.
func (c *SchemaCache) Raw() ([]byte, error) {
	if !c.loaded {
		data, err := os.ReadFile(c.path)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeIO, err, "open schema %s", c.path)
		}
		c.raw = data
		c.loaded = true
	}
	return c.raw, nil
}

// ValidateStructure checks the document shape of a generic JSON value
// against the fixed mzQC presence rules. It is intentionally not a full
// JSON-Schema validator: no leaf types, enums, or patterns are checked.
//
// Rules, evaluated in order with only the first failure reported:
//  1. a top-level "mzQC" object key exists;
//  2. within it, both "version" and "creationDate" exist;
//  3. at least one of "runQualities" or "setQualities" exists
//     (an empty array satisfies this);
//  4. "controlledVocabularies" exists.
//
// Failures are reported as SCHEMA_VIOLATION naming the failed rule.
// When schema is non-nil its file is loaded (once) before checking, so a
// missing schema file surfaces as an IO_ERROR.
func ValidateStructure(v any, schema *SchemaCache) error {
	if schema != nil {
		if _, err := schema.Raw(); err != nil {
			return err
		}
	}

	root, ok := v.(map[string]any)
	if !ok {
		return errors.New(errors.ErrCodeSchema, "missing root 'mzQC' object")
	}
	body, ok := root["mzQC"].(map[string]any)
	if !ok {
		return errors.New(errors.ErrCodeSchema, "missing root 'mzQC' object")
	}

	if _, ok := body["version"]; !ok {
		return errors.New(errors.ErrCodeSchema, "missing required properties 'version' and 'creationDate' in mzQC object")
	}
	if _, ok := body["creationDate"]; !ok {
		return errors.New(errors.ErrCodeSchema, "missing required properties 'version' and 'creationDate' in mzQC object")
	}

	_, hasRuns := body["runQualities"]
	_, hasSets := body["setQualities"]
	if !hasRuns && !hasSets {
		return errors.New(errors.ErrCodeSchema, "either 'runQualities' or 'setQualities' must be present")
	}

	if _, ok := body["controlledVocabularies"]; !ok {
		return errors.New(errors.ErrCodeSchema, "'controlledVocabularies' must be present")
	}

	return nil
}
