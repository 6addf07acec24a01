package ontology

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mzqctools/mzqc/pkg/errors"
	"github.com/mzqctools/mzqc/pkg/httpcache"
)

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleOBO))
	}))
	defer srv.Close()

	f := &Fetcher{Client: srv.Client()}
	data, err := f.Fetch(context.Background(), srv.URL+"/psi-ms.obo")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(data) != sampleOBO {
		t.Errorf("Fetch returned %d bytes, want %d", len(data), len(sampleOBO))
	}
}

func TestFetchUsesCache(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = w.Write([]byte(sampleOBO))
	}))
	defer srv.Close()

	cache, err := httpcache.NewCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	f := &Fetcher{Client: srv.Client(), Cache: cache}

	for i := 0; i < 3; i++ {
		if _, err := f.Fetch(context.Background(), srv.URL+"/psi-ms.obo"); err != nil {
			t.Fatalf("Fetch: %v", err)
		}
	}
	if hits != 1 {
		t.Errorf("server hits = %d, want 1 (remaining fetches served from cache)", hits)
	}
}

func TestFetchRetriesServerErrors(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 2 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(sampleOBO))
	}))
	defer srv.Close()

	f := &Fetcher{Client: srv.Client()}
	if _, err := f.Fetch(context.Background(), srv.URL); err != nil {
		t.Fatalf("Fetch should succeed after retry: %v", err)
	}
	if attempts != 2 {
		t.Errorf("attempts = %d, want 2", attempts)
	}
}

func TestFetchDoesNotRetryClientErrors(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := &Fetcher{Client: srv.Client()}
	_, err := f.Fetch(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("expected error for 404")
	}
	if !errors.Is(err, errors.ErrCodeNetwork) {
		t.Errorf("code = %s, want %s", errors.GetCode(err), errors.ErrCodeNetwork)
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1", attempts)
	}
}

func TestLoadURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleOBO))
	}))
	defer srv.Close()

	c := NewTermCache()
	n, err := c.LoadURL(context.Background(), srv.URL+"/psi-ms.obo", &Fetcher{Client: srv.Client()})
	if err != nil {
		t.Fatalf("LoadURL: %v", err)
	}
	if n != 3 {
		t.Errorf("LoadURL = %d terms, want 3", n)
	}
	if c.Source() != srv.URL+"/psi-ms.obo" {
		t.Errorf("Source = %q", c.Source())
	}
}

func TestLoadURLFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewTermCache()
	_, err := c.LoadURL(context.Background(), srv.URL, &Fetcher{Client: srv.Client()})
	if !errors.Is(err, errors.ErrCodeCacheLoad) {
		t.Errorf("code = %s, want %s (%v)", errors.GetCode(err), errors.ErrCodeCacheLoad, err)
	}
}
