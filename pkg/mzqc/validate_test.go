package mzqc

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mzqctools/mzqc/pkg/errors"
)

// writeSchema drops a placeholder schema file into a temp dir. The
// validator treats schema text as opaque, so content does not matter.
func writeSchema(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mzqc_schema.json")
	if err := os.WriteFile(path, []byte(`{"$schema":"mzqc"}`), 0o644); err != nil {
		t.Fatalf("write schema: %v", err)
	}
	return path
}

func minimalBody() map[string]any {
	return map[string]any{
		"version":                "1.0.0",
		"creationDate":           "2023-01-01T00:00:00Z",
		"runQualities":           []any{},
		"setQualities":           []any{},
		"controlledVocabularies": []any{},
	}
}

func TestValidateStructure(t *testing.T) {
	schema := NewSchemaCache(writeSchema(t))

	tests := []struct {
		name    string
		mutate  func(body map[string]any) any
		wantErr string // substring of the failure reason, "" for pass
	}{
		{
			name:   "minimal document passes",
			mutate: func(body map[string]any) any { return map[string]any{"mzQC": body} },
		},
		{
			name:    "missing wrapper",
			mutate:  func(body map[string]any) any { return body },
			wantErr: "mzQC",
		},
		{
			name:    "non-object root",
			mutate:  func(map[string]any) any { return []any{"not", "a", "document"} },
			wantErr: "mzQC",
		},
		{
			name: "missing version",
			mutate: func(body map[string]any) any {
				delete(body, "version")
				return map[string]any{"mzQC": body}
			},
			wantErr: "'version' and 'creationDate'",
		},
		{
			name: "missing creationDate",
			mutate: func(body map[string]any) any {
				delete(body, "creationDate")
				return map[string]any{"mzQC": body}
			},
			wantErr: "'version' and 'creationDate'",
		},
		{
			name: "missing both quality collections",
			mutate: func(body map[string]any) any {
				delete(body, "runQualities")
				delete(body, "setQualities")
				return map[string]any{"mzQC": body}
			},
			wantErr: "'runQualities' or 'setQualities'",
		},
		{
			name: "empty runQualities alone satisfies rule 3",
			mutate: func(body map[string]any) any {
				delete(body, "setQualities")
				return map[string]any{"mzQC": body}
			},
		},
		{
			name: "missing controlledVocabularies",
			mutate: func(body map[string]any) any {
				delete(body, "controlledVocabularies")
				return map[string]any{"mzQC": body}
			},
			wantErr: "controlledVocabularies",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStructure(tt.mutate(minimalBody()), schema)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected validation failure")
			}
			if !errors.Is(err, errors.ErrCodeSchema) {
				t.Errorf("code = %s, want %s", errors.GetCode(err), errors.ErrCodeSchema)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not name rule %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateFirstFailureWins(t *testing.T) {
	// A document missing both version and the quality collections must
	// fail on the version/creationDate rule, not a later one.
	body := map[string]any{"controlledVocabularies": []any{}}
	err := ValidateStructure(map[string]any{"mzQC": body}, NewSchemaCache(writeSchema(t)))
	if err == nil {
		t.Fatal("expected validation failure")
	}
	if !strings.Contains(err.Error(), "'version' and 'creationDate'") {
		t.Errorf("error %q should cite the version/creationDate rule", err)
	}
}

func TestValidateWithoutSchemaCache(t *testing.T) {
	// A nil cache skips the schema read but still applies the rules.
	if err := ValidateStructure(map[string]any{"mzQC": minimalBody()}, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSchemaCacheReadsFileOnce(t *testing.T) {
	path := writeSchema(t)
	c := NewSchemaCache(path)

	if _, err := c.Raw(); err != nil {
		t.Fatalf("first read: %v", err)
	}

	// Removing the file must not matter; the bytes are cached.
	if err := os.Remove(path); err != nil {
		t.Fatalf("remove schema: %v", err)
	}
	if _, err := c.Raw(); err != nil {
		t.Fatalf("cached read after removal: %v", err)
	}
	if err := ValidateStructure(map[string]any{"mzQC": minimalBody()}, c); err != nil {
		t.Fatalf("validate with cached schema: %v", err)
	}
}

func TestSchemaCacheMissingFile(t *testing.T) {
	c := NewSchemaCache(filepath.Join(t.TempDir(), "nope.json"))
	err := ValidateStructure(map[string]any{"mzQC": minimalBody()}, c)
	if err == nil {
		t.Fatal("expected error for missing schema file")
	}
	if !errors.Is(err, errors.ErrCodeIO) {
		t.Errorf("code = %s, want %s", errors.GetCode(err), errors.ErrCodeIO)
	}
}

func TestSchemaCacheIndependentInstances(t *testing.T) {
	// Two caches with different paths do not share state.
	a := NewSchemaCache(writeSchema(t))
	b := NewSchemaCache(filepath.Join(t.TempDir(), "missing.json"))

	if err := ValidateStructure(map[string]any{"mzQC": minimalBody()}, a); err != nil {
		t.Fatalf("cache a: %v", err)
	}
	if err := ValidateStructure(map[string]any{"mzQC": minimalBody()}, b); err == nil {
		t.Fatal("cache b should fail on its own missing file")
	}
}
