package ontology

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/mzqctools/mzqc/pkg/errors"
	"github.com/mzqctools/mzqc/pkg/httpcache"
)

// Fetcher downloads ontology sources over HTTP with retry and an
// optional byte cache. The zero value fetches with http.DefaultClient
// and no caching.
type Fetcher struct {
	// Client is the HTTP client used for downloads. nil means
	// http.DefaultClient.
	Client *http.Client

	// Cache stores downloaded sources keyed by URL. nil disables
	// caching.
	Cache *httpcache.Cache
}

// Fetch downloads the ontology source at url, consulting the cache
// first. Transient failures (network errors, 5xx responses) are retried
// with exponential backoff; HTTP error statuses other than 5xx are
// reported immediately as NETWORK_ERROR.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if f.Cache != nil {
		if data, hit, err := f.Cache.Get(url); err == nil && hit {
			return data, nil
		}
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	var data []byte
	err := httpcache.RetryWithBackoff(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "build request for %s", url)
		}
		resp, err := client.Do(req)
		if err != nil {
			return &httpcache.RetryableError{Err: err}
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			return &httpcache.RetryableError{Err: fmt.Errorf("%s: %s", url, resp.Status)}
		}
		if resp.StatusCode != http.StatusOK {
			return errors.New(errors.ErrCodeNetwork, "fetch %s: %s", url, resp.Status)
		}

		data, err = io.ReadAll(resp.Body)
		if err != nil {
			return &httpcache.RetryableError{Err: err}
		}
		return nil
	})
	if err != nil {
		if errors.GetCode(err) != "" {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", url)
	}

	if f.Cache != nil {
		// A failed cache write is not fatal; the download succeeded.
		_ = f.Cache.Set(url, data)
	}
	return data, nil
}

// LoadURL fetches the OBO source at url through fetcher and parses it
// into the cache, returning the total number of cached terms. Download
// failures are reported as CACHE_LOAD_ERROR.
func (c *TermCache) LoadURL(ctx context.Context, url string, fetcher *Fetcher) (int, error) {
	if fetcher == nil {
		fetcher = &Fetcher{}
	}
	data, err := fetcher.Fetch(ctx, url)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeCacheLoad, err, "load ontology %s", url)
	}
	c.source = url
	return c.Parse(bytes.NewReader(data)), nil
}
