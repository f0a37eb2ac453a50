package shapes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/samvad-hq/shapes-console/internal/domain"
	"github.com/samvad-hq/shapes-console/internal/logger"
	"github.com/samvad-hq/shapes-console/pkg/httpclient"
)

const maxSnippetBytes = 512

// Options locates the two endpoints.
type Options struct {
	HelloURL string
	ShapeURL string
	Headers  map[string]string
}

// Client issues the hello and shape GETs and reports each as a CallOutcome.
type Client struct {
	http     httpclient.Client
	helloURL string
	shapeURL string
	headers  map[string]string
	log      logger.Logger
}

// NewClient builds a Client on top of the given transport.
func NewClient(opts Options, http httpclient.Client, log logger.Logger) (*Client, error) {
	if http == nil {
		return nil, fmt.Errorf("http client must not be nil")
	}
	if strings.TrimSpace(opts.HelloURL) == "" || strings.TrimSpace(opts.ShapeURL) == "" {
		return nil, fmt.Errorf("hello and shape urls are required")
	}
	headers := map[string]string{"Accept": "application/json"}
	for k, v := range opts.Headers {
		headers[k] = v
	}
	return &Client{
		http:     http,
		helloURL: opts.HelloURL,
		shapeURL: opts.ShapeURL,
		headers:  headers,
		log:      logger.Ensure(log),
	}, nil
}

// Hello fetches the greeting text.
func (c *Client) Hello(ctx context.Context) domain.CallOutcome[domain.HelloBody] {
	return get[domain.HelloBody](ctx, c, "hello", c.helloURL)
}

// Shape fetches a shape label.
func (c *Client) Shape(ctx context.Context) domain.CallOutcome[domain.ShapeBody] {
	return get[domain.ShapeBody](ctx, c, "shape", c.shapeURL)
}

func get[T any](ctx context.Context, c *Client, name, url string) domain.CallOutcome[T] {
	resp, err := c.http.Get(ctx, url, c.headers)
	if err != nil {
		c.log.DebugObj(name+" call failed", "call_error", map[string]any{
			"url":   url,
			"error": err.Error(),
		})
		return domain.TransportFailure[T](err.Error())
	}

	code := resp.StatusCode()
	if code < 200 || code > 299 {
		c.log.DebugObj(name+" call unsuccessful", "call_status", errorDetails(url, resp))
		return domain.HTTPError[T](code)
	}

	var body T
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		c.log.DebugObj(name+" call failed", "call_error", map[string]any{
			"url":         url,
			"status_code": code,
			"error":       err.Error(),
		})
		return domain.TransportFailure[T](fmt.Sprintf("decode %s response: %v", name, err))
	}

	c.log.DebugObj(name+" call successful", "call_status", map[string]any{
		"url":         url,
		"status_code": code,
	})
	return domain.Success(code, body)
}

func errorDetails(url string, resp httpclient.Response) map[string]any {
	details := map[string]any{
		"url":         url,
		"status_code": resp.StatusCode(),
		"body":        responseSnippet(resp.Body()),
	}
	if strings.Contains(strings.ToLower(resp.Header("Content-Type")), "html") {
		if title := pageTitle(resp.Body()); title != "" {
			details["page_title"] = title
		}
	}
	return details
}

// pageTitle extracts the <title> of an HTML error page, if any.
func pageTitle(body []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

func responseSnippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxSnippetBytes {
		return s[:maxSnippetBytes] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}
