// Package retryhttp provides an outbound HTTP client with bounded retries and exponential backoff
package retryhttp

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	perr "bankingops/internal/platform/errors"
	"bankingops/internal/platform/logger"
)

const (
	defaultTimeout     = 10 * time.Second
	defaultMaxAttempts = 3
	defaultBaseDelay   = 500 * time.Millisecond
	maxDelay           = 30 * time.Second
	maxBodyBytes       = 1 << 20
)

// Options configures the Client
type Options struct {
	// Timeout bounds each attempt independently of the retry loop
	Timeout time.Duration

	// MaxAttempts is used when Send is called with maxAttempts <= 0
	MaxAttempts int

	// BaseDelay is the first backoff; it doubles after each retryable failure
	BaseDelay time.Duration

	// Jitter adjusts a computed backoff; nil keeps the plain doubling
	Jitter func(time.Duration) time.Duration

	// Transport overrides the default round tripper (tests, proxies)
	Transport http.RoundTripper
}

// Request is a replayable outbound request; Body is resent on every attempt
type Request struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

// Response is a fully read response
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// OK reports a 2xx status
func (r *Response) OK() bool { return r != nil && r.Status >= 200 && r.Status < 300 }

// Client sends requests with retry on transport errors and 5xx responses
type Client struct {
	http  *http.Client
	opts  Options
	log   logger.Logger
	now   func() time.Time
	sleep func(context.Context, time.Duration) error
}

// New creates a Client with defaults filled in
func New(o Options) *Client {
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = defaultMaxAttempts
	}
	if o.BaseDelay <= 0 {
		o.BaseDelay = defaultBaseDelay
	}
	hc := &http.Client{Timeout: o.Timeout}
	if o.Transport != nil {
		hc.Transport = o.Transport
	}
	return &Client{
		http:  hc,
		opts:  o,
		log:   *logger.Named("retryhttp"),
		now:   time.Now,
		sleep: sleepCtx,
	}
}

// Send issues req up to maxAttempts times.
//
// Transport failures and 5xx responses are retried with doubling backoff; any
// 4xx, 429 included, is returned at once.
// 2xx and 3xx responses return (resp, nil). A 4xx response returns immediately
// as (resp, ErrorCodeUpstream) so callers can still inspect the body.
// Exhausting attempts returns ErrorCodeUnavailable wrapping the last failure.
func (c *Client) Send(ctx context.Context, req Request, maxAttempts int) (*Response, error) {
	if maxAttempts <= 0 {
		maxAttempts = c.opts.MaxAttempts
	}
	if req.Method == "" {
		req.Method = http.MethodGet
	}

	var last error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			back := c.backoff(attempt - 1)
			c.log.Warn().
				Str("url", req.URL).
				Int("attempt", attempt+1).
				Dur("retry_in", back).
				Err(last).
				Msg("outbound request failed, retrying")
			if err := c.sleep(ctx, back); err != nil {
				return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "outbound request cancelled during backoff")
			}
		}

		start := c.now()
		resp, err := c.once(ctx, req)
		lat := c.now().Sub(start)

		if err != nil {
			if perr.IsCode(err, perr.ErrorCodeUpstream) {
				return nil, err
			}
			last = err
			continue
		}

		c.log.Debug().
			Str("method", req.Method).
			Str("url", req.URL).
			Int("status", resp.Status).
			Int("attempt", attempt+1).
			Dur("latency", lat).
			Msg("outbound response")

		switch {
		case resp.Status >= 500:
			last = fmt.Errorf("server answered %d", resp.Status)
		case resp.Status >= 400:
			return resp, perr.Upstreamf("outbound request rejected with status %d", resp.Status)
		default:
			return resp, nil
		}
	}

	return nil, perr.Wrapf(last, perr.ErrorCodeUnavailable, "outbound request failed after %d attempts", maxAttempts)
}

// once performs one attempt under its own deadline and reads the body fully
func (c *Client) once(ctx context.Context, req Request) (*Response, error) {
	actx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}
	hr, err := http.NewRequestWithContext(actx, req.Method, req.URL, body)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUpstream, "invalid outbound request")
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			hr.Header.Add(k, v)
		}
	}

	resp, err := c.http.Do(hr)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	return &Response{Status: resp.StatusCode, Header: resp.Header, Body: b}, nil
}

// backoff returns BaseDelay << retry, capped, then jittered
func (c *Client) backoff(retry int) time.Duration {
	d := c.opts.BaseDelay << uint(retry)
	if d <= 0 || d > maxDelay {
		d = maxDelay
	}
	if c.opts.Jitter != nil {
		d = c.opts.Jitter(d)
	}
	if d < 0 {
		d = 0
	}
	return d
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
