package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/matzehuels/waypoint/pkg/buildinfo"
	"github.com/matzehuels/waypoint/pkg/errors"
	"github.com/matzehuels/waypoint/pkg/observability"
)

// Get fetches rawURL and returns the response body.
//
// Transient failures are retried according to p. Every attempt is reported
// to the registered observability HTTP hooks. Failures carry the
// NETWORK_ERROR code, or TIMEOUT when ctx expired.
func Get(ctx context.Context, client *http.Client, rawURL string, p Policy) ([]byte, error) {
	if err := errors.ValidateURL(rawURL); err != nil {
		return nil, err
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse %s", rawURL)
	}
	if client == nil {
		client = http.DefaultClient
	}
	if p.MaxBytes <= 0 {
		p.MaxBytes = DefaultPolicy.MaxBytes
	}

	var body []byte
	err = Retry(ctx, p.Attempts, p.Delay, func() error {
		b, err := getOnce(ctx, client, u, p.MaxBytes)
		if err != nil {
			return err
		}
		body = b
		return nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.Wrap(errors.ErrCodeTimeout, err, "fetch %s", rawURL)
		}
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", rawURL)
	}
	return body, nil
}

func getOnce(ctx context.Context, client *http.Client, u *url.URL, maxBytes int64) ([]byte, error) {
	hooks := observability.HTTP()
	hooks.OnRequest(ctx, http.MethodGet, u.Host, u.Path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", buildinfo.UserAgent())

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		hooks.OnError(ctx, http.MethodGet, u.Host, u.Path, err)
		if ctx.Err() != nil {
			return nil, err
		}
		return nil, &RetryableError{Err: err}
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, http.MethodGet, u.Host, u.Path, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		statusErr := fmt.Errorf("unexpected status %s", resp.Status)
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			return nil, &RetryableError{Err: statusErr}
		}
		return nil, statusErr
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes+1))
	if err != nil {
		return nil, &RetryableError{Err: fmt.Errorf("read body: %w", err)}
	}
	if int64(len(body)) > maxBytes {
		return nil, fmt.Errorf("response body exceeds %d bytes", maxBytes)
	}
	return body, nil
}
