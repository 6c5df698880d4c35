package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/trace"

	"github.com/custodia-labs/pokeelt/internal/core/domain"
	"github.com/custodia-labs/pokeelt/internal/core/ports/driven"
)

// Ensure Client implements the driven ports.
var (
	_ driven.ResourceAPI    = (*Client)(nil)
	_ driven.SpecDownloader = (*Client)(nil)
)

// Client talks to the PokeAPI REST service.
type Client struct {
	http        *resty.Client
	apiURL      string
	rateLimiter *RateLimiter
}

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	tracer trace.Tracer
}

// WithTracer records request spans with tracer instead of the global one.
func WithTracer(tracer trace.Tracer) Option {
	return func(o *clientOptions) {
		o.tracer = tracer
	}
}

// NewClient creates a client for the API described by settings.
func NewClient(settings domain.APISettings, opts ...Option) *Client {
	var options clientOptions
	for _, opt := range opts {
		opt(&options)
	}

	http := resty.New().
		SetTimeout(settings.Timeout).
		SetHeader("User-Agent", settings.UserAgent).
		SetHeader("Accept", "application/json")
	instrument(http, options.tracer)

	return &Client{
		http:        http,
		apiURL:      settings.URL(),
		rateLimiter: NewRateLimiter(settings.RequestsPerSecond),
	}
}

// ListURL returns the listing endpoint of a resource type.
func (c *Client) ListURL(resource string) string {
	return c.apiURL + resource + "/"
}

// RecordURL returns the detail endpoint of one record.
func (c *Client) RecordURL(resource string, id domain.ResourceID) string {
	return c.apiURL + resource + "/" + id.String() + "/"
}

// ListPage fetches one page of the listing endpoint.
func (c *Client) ListPage(ctx context.Context, resource string, limit, offset int) (*domain.ResourcePage, error) {
	resp, err := c.get(ctx, c.ListURL(resource), map[string]string{
		"limit":  strconv.Itoa(limit),
		"offset": strconv.Itoa(offset),
	})
	if err != nil {
		return nil, err
	}

	var page domain.ResourcePage
	if err := json.Unmarshal(resp.Body(), &page); err != nil {
		return nil, &domain.ParseError{Input: resp.Request.URL, Reason: "invalid listing page", Err: err}
	}
	return &page, nil
}

// FetchRecord fetches the raw JSON representation of one record.
func (c *Client) FetchRecord(ctx context.Context, resource string, id domain.ResourceID) (*domain.RawResponse, error) {
	url := c.RecordURL(resource, id)

	resp, err := c.get(ctx, url, nil)
	if err != nil {
		return nil, err
	}

	body := resp.Body()
	if !json.Valid(body) {
		return nil, &domain.ParseError{Input: url, Reason: "response body is not valid JSON"}
	}
	return &domain.RawResponse{URL: url, Body: body}, nil
}

// DownloadSpec fetches a document verbatim.
func (c *Client) DownloadSpec(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.get(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	return resp.Body(), nil
}

// get performs a paced GET and maps non-success responses to FetchError.
func (c *Client) get(ctx context.Context, url string, query map[string]string) (*resty.Response, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	req := c.http.R().SetContext(ctx)
	if len(query) > 0 {
		req.SetQueryParams(query)
	}

	resp, err := req.Get(url)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", url, err)
	}
	if !resp.IsSuccess() {
		return nil, &domain.FetchError{
			StatusCode: resp.StatusCode(),
			Status:     resp.Status(),
			URL:        resp.Request.URL,
		}
	}
	return resp, nil
}
