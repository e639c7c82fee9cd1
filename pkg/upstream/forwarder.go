package upstream

import (
	"context"
	"io"
	"net/http"
	"time"
)

// Options configures a Forwarder.
type Options struct {
	// FollowRedirects controls whether 3xx responses are chased. The
	// reverse proxy follows them; probe and chat forwarders return the
	// redirect response itself.
	FollowRedirects bool

	// MaxIdleConns caps pooled idle connections across all hosts.
	// Defaults to 100.
	MaxIdleConns int

	// MaxIdleConnsPerHost caps pooled idle connections per host.
	// Defaults to 10.
	MaxIdleConnsPerHost int

	// IdleConnTimeout closes idle connections after this duration.
	// Defaults to 90 seconds.
	IdleConnTimeout time.Duration
}

// Forwarder performs outbound HTTP requests against upstream services with
// per-call timeouts over a pooled transport.
//
// The gateway talks to two upstreams with very different latency profiles:
// the frontend (milliseconds) and the model runtime (tens of seconds), so
// the timeout is a property of each call, not of the client.
type Forwarder struct {
	client *http.Client
}

// Request describes one outbound call.
type Request struct {
	// BaseURL is the upstream base, scheme through optional port, without
	// a trailing slash.
	BaseURL string

	// Path is appended to BaseURL as-is. Empty means the bare base URL.
	Path string

	// Method is the HTTP method. Defaults to GET.
	Method string

	// Header holds headers to send upstream, already filtered by the
	// caller when relaying an inbound request.
	Header http.Header

	// Query is the raw query string without the leading "?". It is
	// appended verbatim, never re-encoded.
	Query string

	// Body is the request body, or nil.
	Body io.Reader

	// ContentLength is the body length when known, 0 otherwise.
	ContentLength int64

	// Timeout bounds the whole call including body transfer. Zero means
	// the caller's context deadline alone applies.
	Timeout time.Duration
}

// targetURL joins base, path, and query without cleaning or re-encoding
// either part.
func (r Request) targetURL() string {
	url := r.BaseURL + r.Path
	if r.Query != "" {
		url += "?" + r.Query
	}
	return url
}

// NewForwarder creates a Forwarder with a pooled transport.
func NewForwarder(opts Options) *Forwarder {
	if opts.MaxIdleConns == 0 {
		opts.MaxIdleConns = 100
	}
	if opts.MaxIdleConnsPerHost == 0 {
		opts.MaxIdleConnsPerHost = 10
	}
	if opts.IdleConnTimeout == 0 {
		opts.IdleConnTimeout = 90 * time.Second
	}

	transport := &http.Transport{
		MaxIdleConns:        opts.MaxIdleConns,
		MaxIdleConnsPerHost: opts.MaxIdleConnsPerHost,
		IdleConnTimeout:     opts.IdleConnTimeout,
		ForceAttemptHTTP2:   true,
	}

	client := &http.Client{Transport: transport}
	if !opts.FollowRedirects {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	return &Forwarder{client: client}
}

// Forward performs the request. Transport failures (connection refused,
// DNS, deadline) come back as *TransportError; any HTTP response, whatever
// its status code, is returned to the caller for interpretation.
//
// The returned response body must be closed by the caller. When a timeout
// is set, the deadline keeps running until the body is closed, so slow
// body reads are bounded too.
func (f *Forwarder) Forward(ctx context.Context, freq Request) (*http.Response, error) {
	target := freq.targetURL()

	cancel := func() {}
	if freq.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, freq.Timeout)
	}

	method := freq.Method
	if method == "" {
		method = http.MethodGet
	}

	req, err := http.NewRequestWithContext(ctx, method, target, freq.Body)
	if err != nil {
		cancel()
		return nil, &TransportError{Target: target, Cause: err}
	}

	if freq.Header != nil {
		req.Header = freq.Header
	}
	if freq.ContentLength > 0 {
		req.ContentLength = freq.ContentLength
	}

	resp, err := f.client.Do(req)
	if err != nil {
		cancel()
		return nil, &TransportError{Target: target, Cause: err}
	}

	// Tie the timeout to the body: the context must stay alive while the
	// caller streams the response, and be released on Close.
	resp.Body = &cancelBody{ReadCloser: resp.Body, cancel: cancel}

	return resp, nil
}

// Get performs a GET against base+path with the given timeout. It is the
// shape probes use.
func (f *Forwarder) Get(ctx context.Context, baseURL, path string, timeout time.Duration) (*http.Response, error) {
	return f.Forward(ctx, Request{BaseURL: baseURL, Path: path, Timeout: timeout})
}

// Close drains the transport's idle connection pool.
func (f *Forwarder) Close() {
	f.client.CloseIdleConnections()
}

// cancelBody releases the per-call context when the response body is
// closed, keeping the deadline active for the whole body transfer.
type cancelBody struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (b *cancelBody) Close() error {
	err := b.ReadCloser.Close()
	b.cancel()
	return err
}
