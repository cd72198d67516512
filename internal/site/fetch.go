package site

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"git.home.luguber.info/inful/zimsite/internal/config"
	"git.home.luguber.info/inful/zimsite/internal/foundation/errors"
)

const maxRedirects = 10

// Fetcher retrieves the body of a live page.
type Fetcher interface {
	Fetch(ctx context.Context, target string) ([]byte, error)
}

// FetchObserver is notified of every completed fetch attempt. Status is 0 when no
// response was received.
type FetchObserver func(status int, d time.Duration)

// NewHTTPClient creates the client used for the live page request. A zero timeout
// means the request may block indefinitely. Redirects are followed on the same host only.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) == 0 {
				return nil
			}
			if req.URL.Host != via[0].URL.Host {
				return stderrors.New("redirect to different host blocked")
			}
			if len(via) >= maxRedirects {
				return stderrors.New("too many redirects")
			}
			return nil
		},
	}
}

// HTTPFetcher fetches pages over HTTP with a configured user agent and body limit.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
	maxBytes  int64
	observe   FetchObserver
}

// NewHTTPFetcher builds a fetcher from cfg. A nil client gets NewHTTPClient(cfg.Timeout).
func NewHTTPFetcher(cfg config.FetchConfig, client *http.Client) *HTTPFetcher {
	if client == nil {
		client = NewHTTPClient(cfg.Timeout)
	}
	maxBytes := cfg.MaxBodyBytes
	if maxBytes <= 0 {
		maxBytes = config.DefaultMaxBodyBytes
	}
	return &HTTPFetcher{
		client:    client,
		userAgent: cfg.UserAgent,
		maxBytes:  maxBytes,
		observe:   func(int, time.Duration) {},
	}
}

// WithObserver installs a callback for request outcomes and returns f.
func (f *HTTPFetcher) WithObserver(observe FetchObserver) *HTTPFetcher {
	if observe != nil {
		f.observe = observe
	}
	return f
}

// Fetch performs a single GET. There is no retry: any failure is returned as an error
// wrapping ErrFetchFailure.
func (f *HTTPFetcher) Fetch(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, fetchError(err, "failed to build request", target).Build()
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	req.Header.Set("Accept", "text/html")

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		f.observe(0, time.Since(start))
		return nil, fetchError(err, "request failed", target).Build()
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		f.observe(resp.StatusCode, time.Since(start))
		return nil, fetchError(fmt.Errorf("HTTP %d", resp.StatusCode), "unexpected response status", target).
			WithContext("status", resp.StatusCode).
			Build()
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	f.observe(resp.StatusCode, time.Since(start))
	if err != nil {
		return nil, fetchError(err, "failed to read response", target).Build()
	}
	if int64(len(data)) > f.maxBytes {
		return nil, fetchError(stderrors.New("response too large"), "failed to read response", target).
			WithContext("limit", f.maxBytes).
			Build()
	}
	return data, nil
}

func fetchError(cause error, message, target string) *errors.ErrorBuilder {
	return errors.NetworkError(message).WithCause(chain(ErrFetchFailure, cause)).WithContext("url", target)
}
