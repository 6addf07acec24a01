// Package ontology provides a flat accession-indexed cache of
// controlled-vocabulary terms parsed from OBO ontology sources.
//
// mzQC documents reference ontology terms by accession (e.g.
// "MS:1000584"). This package resolves such accessions against a
// [TermCache] populated from an OBO definition stream, either a local
// file ([TermCache.LoadFile]) or a downloaded source
// ([TermCache.LoadURL] with [Fetch]).
//
// The cache is deliberately flat: parent accessions are recorded as
// strings but never traversed, and no semantic queries are offered.
// Cross-references between terms are not validated; a parent accession
// need not resolve to a term in the same cache.
//
// A TermCache is not safe for concurrent mutation. Use one cache per
// goroutine, or load once and treat it as read-only afterwards.
package ontology

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/mzqctools/mzqc/pkg/errors"
)

// TermDetails holds one controlled-vocabulary term extracted from an OBO
// stanza. Relationships, ValueType, and Unit are populated from
// "relationship:" and "xref: value-type:" lines when present.
type TermDetails struct {
	Accession     string
	Name          string
	Definition    string
	Relationships []string
	ParentTerms   []string
	ValueType     string
	Unit          string
}

// TermCache is an accession-keyed table of ontology terms. Populate it
// with LoadFile, LoadURL, or Parse; it is never serialized into or out
// of an mzQC document.
type TermCache struct {
	terms  map[string]TermDetails
	source string
}

// NewTermCache returns an empty cache.
func NewTermCache() *TermCache {
	return &TermCache{terms: make(map[string]TermDetails)}
}

// LoadFile parses the OBO file at path into the cache and returns the
// total number of cached terms. An unreadable path is reported as a
// CACHE_LOAD_ERROR.
func (c *TermCache) LoadFile(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeCacheLoad, err, "open ontology %s", path)
	}
	defer f.Close()
	c.source = path
	return c.Parse(f), nil
}

// Parse scans an OBO definition stream into the cache and returns the
// total number of cached terms.
//
// Scan rules, applied line by line:
//   - blank lines and lines beginning with "!" are skipped;
//   - a "[Term]" marker commits the accumulated term (when it has an
//     accession) and starts a new one;
//   - any other stanza header (e.g. "[Typedef]") commits the accumulated
//     term and leaves term scope;
//   - inside a term, "id:", "name:", and "def:" set the corresponding
//     field, "is_a:" appends a parent accession, "relationship:" appends
//     to Relationships (recording "has_units" targets as the unit), and
//     "xref: value-type:" sets the value type.
//
// End of stream commits the final in-progress term. Values are the line
// remainder after the prefix with surrounding whitespace trimmed; no
// other unescaping is performed.
func (c *TermCache) Parse(r io.Reader) int {
	sc := bufio.NewScanner(r)
	// Definition lines in real ontologies can run long.
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var cur TermDetails
	inTerm := false

	commit := func() {
		if inTerm && cur.Accession != "" {
			c.terms[cur.Accession] = cur
		}
	}

	for sc.Scan() {
		line := sc.Text()
		if line == "" || strings.HasPrefix(line, "!") {
			continue
		}

		if line == "[Term]" {
			commit()
			cur = TermDetails{}
			inTerm = true
			continue
		}
		if strings.HasPrefix(line, "[") {
			// Some other stanza kind; its lines must not leak into a
			// term accumulator.
			commit()
			cur = TermDetails{}
			inTerm = false
			continue
		}
		if !inTerm {
			continue
		}

		switch {
		case strings.HasPrefix(line, "id:"):
			cur.Accession = strings.TrimSpace(line[len("id:"):])
		case strings.HasPrefix(line, "name:"):
			cur.Name = strings.TrimSpace(line[len("name:"):])
		case strings.HasPrefix(line, "def:"):
			cur.Definition = strings.TrimSpace(line[len("def:"):])
		case strings.HasPrefix(line, "is_a:"):
			cur.ParentTerms = append(cur.ParentTerms, strings.TrimSpace(line[len("is_a:"):]))
		case strings.HasPrefix(line, "relationship:"):
			rel := strings.TrimSpace(line[len("relationship:"):])
			cur.Relationships = append(cur.Relationships, rel)
			if target, ok := strings.CutPrefix(rel, "has_units "); ok {
				if fields := strings.Fields(target); len(fields) > 0 {
					cur.Unit = fields[0]
				}
			}
		case strings.HasPrefix(line, "xref:"):
			xref := strings.TrimSpace(line[len("xref:"):])
			if vt, ok := strings.CutPrefix(xref, "value-type:"); ok {
				if fields := strings.Fields(vt); len(fields) > 0 {
					cur.ValueType = fields[0]
				}
			}
		}
	}
	commit()

	return len(c.terms)
}

// Lookup resolves an accession to its term details.
func (c *TermCache) Lookup(accession string) (TermDetails, bool) {
	t, ok := c.terms[accession]
	return t, ok
}

// Len returns the number of cached terms.
func (c *TermCache) Len() int { return len(c.terms) }

// Source returns the path or URL the cache was last loaded from.
func (c *TermCache) Source() string { return c.source }
