// Package mutalyzer resolves transcript and HGVS descriptions into the
// exon model via the Mutalyzer API (https://mutalyzer.nl).
//
// The layout and render core never depends on this package; it only
// consumes the [transcript.Transcript] the resolver produces. Network
// failures are retried with backoff and responses are cached, so
// repeated runs for the same transcript stay off the network.
package mutalyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/dcrt-lumc/exonviz/pkg/cache"
	"github.com/dcrt-lumc/exonviz/pkg/errors"
	"github.com/dcrt-lumc/exonviz/pkg/httputil"
	"github.com/dcrt-lumc/exonviz/pkg/transcript"
)

// DefaultBaseURL is the public Mutalyzer API endpoint.
const DefaultBaseURL = "https://mutalyzer.nl/api"

// Selector is the resolved exon structure of one transcript: sorted
// genomic exon ranges, the CDS range (empty for non-coding transcripts),
// and the strand orientation.
type Selector struct {
	Exons   []Range
	CDS     Range
	Reverse bool
}

// Client talks to the Mutalyzer API with caching and retries.
type Client struct {
	http    *http.Client
	cache   cache.Cache
	ttl     time.Duration
	baseURL string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL points the client at a different API endpoint, used by
// tests and by deployments with a local Mutalyzer instance.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) { c.http = h }
}

// NewClient creates a Mutalyzer client. Responses are stored in backend
// for ttl; use cache.NewNullCache() to disable caching.
func NewClient(backend cache.Cache, ttl time.Duration, opts ...ClientOption) *Client {
	c := &Client{
		http:    &http.Client{Timeout: 30 * time.Second},
		cache:   backend,
		ttl:     ttl,
		baseURL: DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type normalizeResponse struct {
	SelectorShort struct {
		Exon struct {
			G [][2]string `json:"g"`
		} `json:"exon"`
		CDS struct {
			G [][2]string `json:"g"`
		} `json:"cds"`
	} `json:"selector_short"`
}

type viewVariantsResponse struct {
	Views []View `json:"views"`
}

// FetchExons retrieves and converts the exon and CDS coordinates for a
// transcript description. If refresh is true the cache is bypassed.
func (c *Client) FetchExons(ctx context.Context, description string, refresh bool) (*Selector, error) {
	var resp normalizeResponse
	endpoint := fmt.Sprintf("%s/normalize/%s", c.baseURL, url.PathEscape(description))
	if err := c.cached(ctx, "normalize:"+description, refresh, &resp, endpoint); err != nil {
		return nil, err
	}

	positions := resp.SelectorShort.Exon.G
	reverse, err := IsReverse(positions)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeResolution, err, "exon positions for %s", description)
	}
	exons, err := ConvertExonPositions(positions)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeResolution, err, "exon positions for %s", description)
	}
	cds, err := ConvertCodingPositions(resp.SelectorShort.CDS.G)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeResolution, err, "CDS positions for %s", description)
	}
	return &Selector{Exons: exons, CDS: cds, Reverse: reverse}, nil
}

// FetchVariants retrieves the variant views for a description. A
// description without variants (":c.=") yields an empty slice.
func (c *Client) FetchVariants(ctx context.Context, description string, refresh bool) ([]View, error) {
	var resp viewVariantsResponse
	endpoint := fmt.Sprintf("%s/view_variants/%s", c.baseURL, url.PathEscape(description))
	if err := c.cached(ctx, "views:"+description, refresh, &resp, endpoint); err != nil {
		return nil, err
	}
	return resp.Views, nil
}

// Resolve turns a transcript description into the immutable transcript
// model consumed by the layout engine.
func (c *Client) Resolve(ctx context.Context, description string, refresh bool) (transcript.Transcript, error) {
	sel, err := c.FetchExons(ctx, description, refresh)
	if err != nil {
		return transcript.Transcript{}, err
	}
	views, err := c.FetchVariants(ctx, description, refresh)
	if err != nil {
		return transcript.Transcript{}, err
	}
	return BuildTranscript(description, sel.Exons, sel.CDS, views, sel.Reverse)
}

// cached serves v from cache when possible, otherwise fetches the
// endpoint with retries and stores the result.
func (c *Client) cached(ctx context.Context, key string, refresh bool, v any, endpoint string) error {
	if !refresh {
		if data, ok, _ := c.cache.Get(ctx, key); ok {
			if err := json.Unmarshal(data, v); err == nil {
				return nil
			}
			// Unreadable entry: fall through to a fresh fetch.
		}
	}

	err := httputil.RetryWithBackoff(ctx, func() error {
		return c.get(ctx, endpoint, v)
	})
	if err != nil {
		return err
	}

	if data, err := json.Marshal(v); err == nil {
		_ = c.cache.Set(ctx, key, data, c.ttl)
	}
	return nil
}

func (c *Client) get(ctx context.Context, endpoint string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "build request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return httputil.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "mutalyzer request"))
	}
	defer resp.Body.Close()

	if err := checkStatus(resp.StatusCode); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeResolution, err, "decode mutalyzer response")
	}
	return nil
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return errors.New(errors.ErrCodeNotFound, "unknown transcript or variant description")
	case code >= 500:
		return httputil.Retryable(errors.New(errors.ErrCodeNetwork, "mutalyzer status %d", code))
	default:
		return errors.New(errors.ErrCodeResolution, "mutalyzer status %d", code)
	}
}
