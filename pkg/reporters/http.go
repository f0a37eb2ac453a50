package reporters

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/samvad-hq/shapes-console/internal/logger"
	"github.com/samvad-hq/shapes-console/pkg/httpclient"
)

type httpReporter struct {
	id      string
	method  string
	url     string
	headers map[string]string
	client  *resty.Client
	log     logger.Logger
}

func newHTTPReporter(_ context.Context, cfg ReporterConfig, log logger.Logger) (Reporter, error) {
	if cfg.HTTP == nil {
		return nil, fmt.Errorf("reporter %q missing http configuration", cfg.ID)
	}

	client := httpclient.NewRestyHTTPClient(httpclient.Options{
		Timeout: time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second,
		Headers: cfg.HTTP.Headers,
	})

	method := cfg.HTTP.Method
	if method == "" {
		method = httpDefaultMethod
	}

	return &httpReporter{
		id:      cfg.ID,
		method:  method,
		url:     cfg.HTTP.URL,
		headers: cfg.HTTP.Headers,
		client:  client,
		log:     logger.Ensure(log),
	}, nil
}

func (h *httpReporter) ID() string   { return h.id }
func (h *httpReporter) Type() string { return TypeHTTP }

// Report posts the event as JSON. Non-2xx responses are errors.
func (h *httpReporter) Report(ctx context.Context, evt Event) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(evt).
		Execute(h.method, h.url)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("http response status %d: %s", resp.StatusCode(), readBodySnippet(resp.Body()))
	}
	h.log.DebugObj("http reporter delivered event", "reporter_http_delivery", map[string]any{
		"reporter_id": h.id,
		"status_code": resp.StatusCode(),
	})
	return nil
}

func readBodySnippet(body []byte) string {
	if len(body) > 512 {
		body = body[:512]
	}
	return strings.TrimSpace(string(body))
}
