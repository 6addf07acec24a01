package mzqc

import (
	"bytes"
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"

	"github.com/mzqctools/mzqc/pkg/errors"
)

// =============================================================================
// Document I/O API
// =============================================================================

// Parse decodes an mzQC document from JSON bytes. Malformed JSON is
// reported as a PARSE_ERROR.
func Parse(data []byte) (*File, error) {
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "decode mzQC document")
	}
	return &f, nil
}

// Read decodes an mzQC document from r.
// Use Parse for in-memory data or Load for files.
func Read(r io.Reader) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read mzQC document")
	}
	return Parse(data)
}

// Load reads the file at path and returns the decoded document.
// An unreadable path is reported as an IO_ERROR, malformed JSON as a
// PARSE_ERROR.
func Load(path string) (*File, error) {
	return LoadValidated(path, nil)
}

// LoadValidated reads the file at path, runs the structural validator
// against the raw document when schema is non-nil, and returns the
// decoded document. Validation failures are reported as SCHEMA_VIOLATION
// with the rule that failed.
func LoadValidated(path string, schema *SchemaCache) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "open %s", path)
	}
	if schema != nil {
		v, err := decodeValue(data)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeParse, err, "decode %s", path)
		}
		// Root-wrapper tolerance applies before validation: a bare
		// document body is checked as if it were wrapped.
		if body, ok := v.(map[string]any); ok {
			if _, wrapped := body["mzQC"]; !wrapped {
				v = map[string]any{"mzQC": body}
			}
		}
		if err := ValidateStructure(v, schema); err != nil {
			return nil, fmt.Errorf("validate %s: %w", path, err)
		}
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return f, nil
}

// Bytes encodes the document as indented JSON in the wrapped wire form.
func (f *File) Bytes() ([]byte, error) {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode mzQC document")
	}
	return data, nil
}

// Write encodes the document and writes it to w.
func (f *File) Write(w io.Writer) error {
	data, err := f.Bytes()
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write mzQC document")
	}
	return nil
}

// Save writes the document to path as indented JSON.
// The file is created with 0644 permissions.
func (f *File) Save(path string) error {
	return f.SaveValidated(path, nil)
}

// SaveValidated encodes the document, runs the structural validator
// against the encoded form when schema is non-nil, and writes the result
// to path. Validating on the way out guards against persisting a
// non-conformant file even though the API permits constructing one.
func (f *File) SaveValidated(path string, schema *SchemaCache) error {
	data, err := f.Bytes()
	if err != nil {
		return err
	}
	if schema != nil {
		v, err := decodeValue(data)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "re-decode generated document")
		}
		if err := ValidateStructure(v, schema); err != nil {
			return fmt.Errorf("validate generated document: %w", err)
		}
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	return nil
}

// Equal reports whether two documents encode to the same canonical JSON.
// Useful for round-trip checks in tooling and tests.
func Equal(a, b *File) (bool, error) {
	da, err := json.Marshal(a)
	if err != nil {
		return false, err
	}
	db, err := json.Marshal(b)
	if err != nil {
		return false, err
	}
	return bytes.Equal(da, db), nil
}
