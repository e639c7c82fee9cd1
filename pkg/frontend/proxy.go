package frontend

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/behark/ai/pkg/config"
	"github.com/behark/ai/pkg/telemetry/logging"
	"github.com/behark/ai/pkg/telemetry/metrics"
	"github.com/behark/ai/pkg/upstream"
)

// MountPrefix is the path prefix the frontend is served under.
const MountPrefix = "/ui"

const (
	defaultProxyTimeout = 120 * time.Second
	defaultProbeTimeout = 1500 * time.Millisecond
)

// Proxy relays requests under MountPrefix to the frontend and answers
// reachability probes for the root redirect. It is safe for concurrent use.
//
// Two forwarders with different redirect policies back it: proxied
// requests follow redirects so the client sees final content, while the
// probe returns the redirect itself, which already proves the frontend is
// answering.
type Proxy struct {
	baseURL      string
	proxyTimeout time.Duration
	probeTimeout time.Duration
	relay        *upstream.Forwarder
	prober       *upstream.Forwarder
	collector    *metrics.Collector
	logger       *logging.Logger
}

// NewProxy creates a Proxy for the configured frontend. Zero timeouts fall
// back to the stock defaults.
func NewProxy(cfg config.FrontendConfig, collector *metrics.Collector, logger *logging.Logger) *Proxy {
	if logger == nil {
		logger = logging.NewNop()
	}
	proxyTimeout := cfg.ProxyTimeout
	if proxyTimeout == 0 {
		proxyTimeout = defaultProxyTimeout
	}
	probeTimeout := cfg.ProbeTimeout
	if probeTimeout == 0 {
		probeTimeout = defaultProbeTimeout
	}

	return &Proxy{
		baseURL:      strings.TrimSuffix(cfg.BaseURL, "/"),
		proxyTimeout: proxyTimeout,
		probeTimeout: probeTimeout,
		relay:        upstream.NewForwarder(upstream.Options{FollowRedirects: true}),
		prober:       upstream.NewForwarder(upstream.Options{}),
		collector:    collector,
		logger:       logger,
	}
}

// BaseURL returns the frontend base URL without a trailing slash.
func (p *Proxy) BaseURL() string {
	return p.baseURL
}

// ServeHTTP relays the request to the frontend. The path suffix after
// MountPrefix, the query string, and the body pass through verbatim; only
// the hop-by-hop headers are rewritten. Any upstream status comes back
// unchanged. A frontend that cannot be reached yields a diagnostic 502
// page instead.
func (p *Proxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	resp, err := p.relay.Forward(ctx, upstream.Request{
		BaseURL:       p.baseURL,
		Path:          strings.TrimPrefix(r.URL.Path, MountPrefix),
		Method:        r.Method,
		Header:        FilterRequestHeaders(r.Header),
		Query:         r.URL.RawQuery,
		Body:          r.Body,
		ContentLength: r.ContentLength,
		Timeout:       p.proxyTimeout,
	})
	if err != nil {
		p.logger.WarnContext(ctx, "frontend unreachable",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		p.collector.RecordProxyError("transport")
		p.writeBadGateway(ctx, w, err)
		return
	}
	defer resp.Body.Close()

	FilterResponseHeaders(w.Header(), resp.Header)
	w.WriteHeader(resp.StatusCode)

	written, err := io.Copy(w, resp.Body)
	if err != nil {
		// The status line is already out; nothing to do but note it.
		p.logger.DebugContext(ctx, "frontend body relay interrupted",
			"path", r.URL.Path,
			"bytes_written", written,
			"error", err,
		)
	}

	p.collector.RecordProxyRequest(strconv.Itoa(resp.StatusCode), time.Since(start))
}

// Probe reports whether the frontend answers its base URL within the probe
// timeout. Any status below 500 counts as reachable; a redirect to a login
// page proves the frontend is up just as well as a 200 does.
func (p *Proxy) Probe(ctx context.Context) bool {
	resp, err := p.prober.Get(ctx, p.baseURL, "", p.probeTimeout)
	if err != nil {
		p.logger.DebugContext(ctx, "frontend probe failed", "target", p.baseURL, "error", err)
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return resp.StatusCode < http.StatusInternalServerError
}

// Close releases both forwarders' idle connections.
func (p *Proxy) Close() {
	p.relay.Close()
	p.prober.Close()
}
