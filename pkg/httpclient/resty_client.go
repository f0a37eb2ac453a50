package httpclient

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultTimeout = 15 * time.Second

// Options configures the resty transport shared by the API client and the HTTP reporter.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	// Headers are sent with every request; per-call headers override them.
	Headers map[string]string
}

// RestyClient adapts resty.Client to the httpclient.Client interface.
type RestyClient struct {
	client *resty.Client
}

// NewRestyClient creates a RestyClient from opts.
func NewRestyClient(opts Options) *RestyClient {
	return &RestyClient{client: NewRestyHTTPClient(opts)}
}

// NewRestyHTTPClient exposes a configured resty.Client for callers needing custom verbs.
func NewRestyHTTPClient(opts Options) *resty.Client {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	c := resty.New()
	c.SetTimeout(opts.Timeout)
	if opts.UserAgent != "" {
		c.SetHeader("User-Agent", opts.UserAgent)
	}
	if len(opts.Headers) > 0 {
		c.SetHeaders(opts.Headers)
	}
	return c
}

// Get performs an HTTP GET request. Any status code is returned as a Response;
// err is non-nil only when no response was received.
func (r *RestyClient) Get(ctx context.Context, url string, headers map[string]string) (Response, error) {
	req := r.client.R().SetContext(ctx)
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}
	resp, err := req.Get(url)
	if err != nil {
		return nil, err
	}
	return &restyResponse{resp: resp}, nil
}

type restyResponse struct {
	resp *resty.Response
}

func (r *restyResponse) Body() []byte              { return r.resp.Body() }
func (r *restyResponse) StatusCode() int           { return r.resp.StatusCode() }
func (r *restyResponse) Header(name string) string { return r.resp.Header().Get(name) }
