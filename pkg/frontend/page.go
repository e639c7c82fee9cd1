package frontend

import (
	"context"
	"errors"
	"html/template"
	"net/http"

	"github.com/behark/ai/pkg/upstream"
)

// badGatewayPage is the diagnostic served when the frontend cannot be
// reached. It names the attempted target and the transport cause so the
// operator can tell a stopped container from a wrong base URL.
var badGatewayPage = template.Must(template.New("bad_gateway").Parse(`<!DOCTYPE html>
<html>
<head><title>Frontend Connection Error</title></head>
<body>
    <h1>Frontend Connection Error</h1>
    <p>Could not connect to the frontend at {{.Target}}</p>
    <p>Please ensure the frontend container is running:</p>
    <pre>docker compose up -d openwebui</pre>
    <p>Error details: {{.Cause}}</p>
    <p><a href="/">Back to the platform dashboard</a></p>
</body>
</html>
`))

type badGatewayData struct {
	Target string
	Cause  string
}

// writeBadGateway renders the diagnostic page with a 502 status.
func (p *Proxy) writeBadGateway(ctx context.Context, w http.ResponseWriter, err error) {
	data := badGatewayData{Target: p.baseURL, Cause: err.Error()}
	var terr *upstream.TransportError
	if errors.As(err, &terr) {
		data.Target = terr.Target
		data.Cause = terr.Cause.Error()
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusBadGateway)
	if err := badGatewayPage.Execute(w, data); err != nil {
		p.logger.ErrorContext(ctx, "rendering bad gateway page failed", "error", err)
	}
	p.collector.RecordProxyError("bad_gateway")
}
