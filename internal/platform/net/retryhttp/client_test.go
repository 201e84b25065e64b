package retryhttp

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	perr "bankingops/internal/platform/errors"
)

// newTestClient returns a client whose sleeps are recorded instead of waited
func newTestClient(o Options) (*Client, *[]time.Duration) {
	c := New(o)
	var slept []time.Duration
	c.sleep = func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}
	return c, &slept
}

func statusSequence(t *testing.T, codes ...int) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var n atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		i := int(n.Add(1)) - 1
		code := codes[len(codes)-1]
		if i < len(codes) {
			code = codes[i]
		}
		w.WriteHeader(code)
		_, _ = w.Write([]byte(`{"attempt":` + string(rune('0'+i+1)) + `}`))
	}))
	t.Cleanup(srv.Close)
	return srv, &n
}

func TestSend_ThreeServerErrorsIsTransient(t *testing.T) {
	srv, hits := statusSequence(t, 500, 500, 500)
	c, slept := newTestClient(Options{})

	resp, err := c.Send(context.Background(), Request{Method: http.MethodPost, URL: srv.URL}, 3)
	if resp != nil {
		t.Fatalf("expected nil response, got %+v", resp)
	}
	if !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("err code = %v, want Unavailable (%v)", perr.CodeOf(err), err)
	}
	if hits.Load() != 3 {
		t.Fatalf("attempts = %d, want 3", hits.Load())
	}
	want := []time.Duration{500 * time.Millisecond, time.Second}
	if len(*slept) != len(want) || (*slept)[0] != want[0] || (*slept)[1] != want[1] {
		t.Fatalf("backoff = %v, want %v", *slept, want)
	}
}

func TestSend_SuccessOnFinalAttempt(t *testing.T) {
	srv, hits := statusSequence(t, 502, 503, 200)
	c, _ := newTestClient(Options{})

	resp, err := c.Send(context.Background(), Request{URL: srv.URL}, 3)
	if err != nil {
		t.Fatalf("Send error: %v", err)
	}
	if !resp.OK() || resp.Status != 200 || string(resp.Body) != `{"attempt":3}` {
		t.Fatalf("unexpected response %d %q", resp.Status, resp.Body)
	}
	if hits.Load() != 3 {
		t.Fatalf("attempts = %d, want 3", hits.Load())
	}
}

func TestSend_RateLimitIsAClientError(t *testing.T) {
	srv, hits := statusSequence(t, 429, 200)
	c, slept := newTestClient(Options{})

	resp, err := c.Send(context.Background(), Request{URL: srv.URL}, 3)
	if !perr.IsCode(err, perr.ErrorCodeUpstream) || resp == nil || resp.Status != 429 {
		t.Fatalf("Send = %+v, %v", resp, err)
	}
	if hits.Load() != 1 || len(*slept) != 0 {
		t.Fatalf("attempts=%d sleeps=%d, want 1 and 0", hits.Load(), len(*slept))
	}
}

func TestSend_ClientErrorReturnsImmediately(t *testing.T) {
	srv, hits := statusSequence(t, 400, 200)
	c, slept := newTestClient(Options{})

	resp, err := c.Send(context.Background(), Request{URL: srv.URL}, 3)
	if !perr.IsCode(err, perr.ErrorCodeUpstream) {
		t.Fatalf("err code = %v, want Upstream", perr.CodeOf(err))
	}
	if resp == nil || resp.Status != 400 {
		t.Fatalf("expected the 400 response to be returned, got %+v", resp)
	}
	if hits.Load() != 1 || len(*slept) != 0 {
		t.Fatalf("attempts=%d sleeps=%d, want 1 and 0", hits.Load(), len(*slept))
	}
}

func TestSend_ReplaysBodyAndHeaders(t *testing.T) {
	var (
		mu     sync.Mutex
		bodies []string
		n      atomic.Int32
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		mu.Lock()
		bodies = append(bodies, string(b)+"|"+r.Header.Get("x-correlation-id"))
		mu.Unlock()
		if n.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c, _ := newTestClient(Options{})
	h := http.Header{}
	h.Set("x-correlation-id", "c-1")
	if _, err := c.Send(context.Background(), Request{Method: http.MethodPost, URL: srv.URL, Header: h, Body: []byte(`{"a":1}`)}, 0); err != nil {
		t.Fatalf("Send error: %v", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(bodies) != 2 || bodies[0] != `{"a":1}|c-1` || bodies[1] != bodies[0] {
		t.Fatalf("bodies = %q", bodies)
	}
}

type failingTransport struct{ calls atomic.Int32 }

func (f *failingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	f.calls.Add(1)
	return nil, errors.New("connection refused")
}

func TestSend_TransportErrorsAreRetried(t *testing.T) {
	tr := &failingTransport{}
	c, _ := newTestClient(Options{Transport: tr, MaxAttempts: 2})

	_, err := c.Send(context.Background(), Request{URL: "http://scoring.invalid/score"}, 0)
	if !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("err code = %v, want Unavailable", perr.CodeOf(err))
	}
	if tr.calls.Load() != 2 {
		t.Fatalf("transport calls = %d, want 2 (options default)", tr.calls.Load())
	}
}

func TestSend_MalformedRequestIsPermanent(t *testing.T) {
	tr := &failingTransport{}
	c, slept := newTestClient(Options{Transport: tr})

	_, err := c.Send(context.Background(), Request{Method: "BAD METHOD", URL: "http://x"}, 3)
	if !perr.IsCode(err, perr.ErrorCodeUpstream) {
		t.Fatalf("err code = %v, want Upstream", perr.CodeOf(err))
	}
	if tr.calls.Load() != 0 || len(*slept) != 0 {
		t.Fatalf("malformed request must not be sent or retried")
	}
}

func TestSend_PerAttemptTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	c, _ := newTestClient(Options{Timeout: 20 * time.Millisecond})
	start := time.Now()
	_, err := c.Send(context.Background(), Request{URL: srv.URL}, 2)
	if !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("err code = %v, want Unavailable", perr.CodeOf(err))
	}
	if time.Since(start) > time.Second {
		t.Fatalf("per-attempt timeout not enforced")
	}
}

func TestSend_CancelledDuringBackoff(t *testing.T) {
	srv, _ := statusSequence(t, 500)
	c := New(Options{BaseDelay: time.Hour})
	ctx, cancel := context.WithCancel(context.Background())
	c.sleep = func(ctx context.Context, d time.Duration) error {
		cancel()
		return sleepCtx(ctx, d)
	}
	_, err := c.Send(ctx, Request{URL: srv.URL}, 3)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled in chain", err)
	}
}

func TestBackoff_DoublesCapsAndJitters(t *testing.T) {
	c := New(Options{BaseDelay: 500 * time.Millisecond})
	for i, want := range []time.Duration{500 * time.Millisecond, time.Second, 2 * time.Second, 4 * time.Second} {
		if got := c.backoff(i); got != want {
			t.Fatalf("backoff(%d) = %v, want %v", i, got, want)
		}
	}
	if got := c.backoff(20); got != maxDelay {
		t.Fatalf("backoff cap = %v, want %v", got, maxDelay)
	}

	c.opts.Jitter = func(d time.Duration) time.Duration { return d / 2 }
	if got := c.backoff(1); got != 500*time.Millisecond {
		t.Fatalf("jittered backoff = %v, want 500ms", got)
	}
}

func TestFractionalJitter_StaysInBand(t *testing.T) {
	if FractionalJitter(0) != nil {
		t.Fatalf("zero fraction should disable jitter")
	}
	j := FractionalJitter(0.2)
	for i := 0; i < 200; i++ {
		got := j(time.Second)
		if got < 800*time.Millisecond || got > 1200*time.Millisecond {
			t.Fatalf("jittered delay %v outside ±20%%", got)
		}
	}
}
