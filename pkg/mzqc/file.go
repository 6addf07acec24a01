package mzqc

import (
	"time"

	json "github.com/goccy/go-json"
)

// DefaultVersion is the mzQC format version written by NewFile.
const DefaultVersion = "1.0.0"

// creationDateFormat is the ISO-8601 UTC layout used for creationDate.
const creationDateFormat = "2006-01-02T15:04:05Z"

// File is the mzQC document root. Field declaration order is the wire
// order; Version and CreationDate are always written, the optional
// strings and the three collections only when non-empty.
//
// A File is only ever wrapped in a single top-level "mzQC" key on the
// wire. Decoding tolerates an already-unwrapped body.
type File struct {
	Version                string                 `json:"version"`
	CreationDate           string                 `json:"creationDate"`
	ContactName            string                 `json:"contactName,omitempty"`
	ContactAddress         string                 `json:"contactAddress,omitempty"`
	Description            string                 `json:"description,omitempty"`
	ControlledVocabularies []ControlledVocabulary `json:"controlledVocabularies,omitempty"`
	RunQualities           []RunQuality           `json:"runQualities,omitempty"`
	SetQualities           []SetQuality           `json:"setQualities,omitempty"`
}

// NewFile creates an empty document with the default format version and
// the creation date set to the current UTC time. Callers populate the
// exported fields directly.
func NewFile() *File {
	return &File{
		Version:      DefaultVersion,
		CreationDate: nowISO(),
	}
}

// nowISO formats the current UTC time as YYYY-MM-DDTHH:MM:SSZ.
func nowISO() string {
	return time.Now().UTC().Format(creationDateFormat)
}

// MarshalJSON implements json.Marshaler, wrapping the document body in
// the top-level "mzQC" key.
func (f File) MarshalJSON() ([]byte, error) {
	type file File
	return json.Marshal(struct {
		MzQC file `json:"mzQC"`
	}{MzQC: file(f)})
}

// UnmarshalJSON implements json.Unmarshaler. It accepts either the
// wrapped form or a bare document body. A missing creationDate is
// replaced with the current UTC time so that no in-memory document ever
// carries an empty creation date.
func (f *File) UnmarshalJSON(data []byte) error {
	var probe struct {
		MzQC json.RawMessage `json:"mzQC"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	if len(probe.MzQC) > 0 {
		data = probe.MzQC
	}

	type file File
	var body file
	if err := json.Unmarshal(data, &body); err != nil {
		return err
	}
	if body.CreationDate == "" {
		body.CreationDate = nowISO()
	}
	*f = File(body)
	return nil
}

// MetricCount returns the total number of quality metrics across all run
// and set qualities.
func (f *File) MetricCount() int {
	n := 0
	for _, rq := range f.RunQualities {
		n += len(rq.Metrics)
	}
	for _, sq := range f.SetQualities {
		n += len(sq.Metrics)
	}
	return n
}

// InputFileCount returns the total number of input files across all run
// qualities.
func (f *File) InputFileCount() int {
	n := 0
	for _, rq := range f.RunQualities {
		n += len(rq.InputFiles)
	}
	return n
}
