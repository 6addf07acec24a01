package mzqc

import (
	"bytes"

	json "github.com/goccy/go-json"
)

// =============================================================================
// Value Objects
// =============================================================================

// CvParameter references a controlled-vocabulary term by accession.
// It appears as an input file's format, as a file property, and anywhere
// else the format points into an ontology.
//
// Accession and Name are always written; Value and CvRef are written only
// when non-empty.
type CvParameter struct {
	Accession string `json:"accession"`
	Name      string `json:"name"`
	Value     string `json:"value,omitempty"`
	CvRef     string `json:"cvRef,omitempty"`
}

// ControlledVocabulary identifies an ontology referenced by the document,
// such as PSI-MS. All four fields are always written, even when empty,
// so that consumers can rely on the keys being present.
type ControlledVocabulary struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	URI     string `json:"uri"`
	Version string `json:"version"`
}

// AnalysisSoftware describes a tool that produced or processed a run.
// URI is written only when non-empty.
type AnalysisSoftware struct {
	Accession string `json:"accession"`
	Name      string `json:"name"`
	Version   string `json:"version"`
	URI       string `json:"uri,omitempty"`
}

// InputFile describes a source data file of a run. FileFormat is written
// only when set; FileProperties only when non-empty.
type InputFile struct {
	Location       string        `json:"location"`
	Name           string        `json:"name"`
	FileFormat     *CvParameter  `json:"fileFormat,omitempty"`
	FileProperties []CvParameter `json:"fileProperties,omitempty"`
}

// QualityMetric is a single QC measurement. Value holds an arbitrary
// caller-supplied JSON payload: nil, bool, json.Number, string, []any, or
// map[string]any. The model never interprets it.
//
// Value is written whenever it is non-nil, so payloads like false, 0, or
// "" survive a round trip. Description and Unit are written only when
// non-empty.
type QualityMetric struct {
	Accession   string
	Name        string
	Description string
	Value       any
	Unit        string
}

// qualityMetricJSON is the wire shape of a metric. Value passes through as
// raw bytes so its JSON type is preserved verbatim.
type qualityMetricJSON struct {
	Accession   string          `json:"accession"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Value       json.RawMessage `json:"value,omitempty"`
	Unit        string          `json:"unit,omitempty"`
}

// MarshalJSON implements json.Marshaler. A struct-tag omitempty on an any
// field would drop payloads like false or 0, so presence is decided on
// Value being non-nil instead.
func (m QualityMetric) MarshalJSON() ([]byte, error) {
	out := qualityMetricJSON{
		Accession:   m.Accession,
		Name:        m.Name,
		Description: m.Description,
		Unit:        m.Unit,
	}
	if m.Value != nil {
		raw, err := json.Marshal(m.Value)
		if err != nil {
			return nil, err
		}
		out.Value = raw
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler. Missing keys default to empty
// strings; a missing or null value stays nil. Numbers inside the payload
// decode as json.Number so integer metrics re-encode as integers.
func (m *QualityMetric) UnmarshalJSON(data []byte) error {
	var in qualityMetricJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	m.Accession = in.Accession
	m.Name = in.Name
	m.Description = in.Description
	m.Unit = in.Unit
	m.Value = nil
	if len(in.Value) > 0 && !bytes.Equal(in.Value, []byte("null")) {
		v, err := decodeValue(in.Value)
		if err != nil {
			return err
		}
		m.Value = v
	}
	return nil
}

// decodeValue decodes raw JSON into the generic value tree used for metric
// payloads, keeping numbers as json.Number.
func decodeValue(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// =============================================================================
// Aggregates
// =============================================================================

// RunQuality scopes QC metrics to a single instrument run, together with
// the run's input files and the software that produced the metrics.
//
// All three collections are always written as arrays, [] when empty.
type RunQuality struct {
	Label            string             `json:"label"`
	InputFiles       []InputFile        `json:"inputFiles"`
	AnalysisSoftware []AnalysisSoftware `json:"analysisSoftware"`
	Metrics          []QualityMetric    `json:"metrics"`
}

// MarshalJSON implements json.Marshaler, ensuring nil collections encode
// as [] rather than null.
func (r RunQuality) MarshalJSON() ([]byte, error) {
	type runQuality RunQuality // drop methods to avoid recursion
	out := runQuality(r)
	if out.InputFiles == nil {
		out.InputFiles = []InputFile{}
	}
	if out.AnalysisSoftware == nil {
		out.AnalysisSoftware = []AnalysisSoftware{}
	}
	if out.Metrics == nil {
		out.Metrics = []QualityMetric{}
	}
	return json.Marshal(out)
}

// SetQuality scopes QC metrics to a set of runs, identified by SetRefs.
//
// SetRefs and Metrics are always written as arrays, [] when empty.
type SetQuality struct {
	Label   string          `json:"label"`
	SetRefs []string        `json:"setRefs"`
	Metrics []QualityMetric `json:"metrics"`
}

// MarshalJSON implements json.Marshaler, ensuring nil collections encode
// as [] rather than null.
func (s SetQuality) MarshalJSON() ([]byte, error) {
	type setQuality SetQuality
	out := setQuality(s)
	if out.SetRefs == nil {
		out.SetRefs = []string{}
	}
	if out.Metrics == nil {
		out.Metrics = []QualityMetric{}
	}
	return json.Marshal(out)
}
