// Package leaderboard talks to the score server: registering a player,
// publishing a best score and reading the full table.
package leaderboard

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// DefaultTimeout bounds a whole request, including reading the body.
const DefaultTimeout = 5 * time.Second

// maxBody caps how much of a response is read.
const maxBody = 1 << 20

const instrumentation = "github.com/plus3/pixelblast/leaderboard"

// Stats is one player record.
type Stats struct {
	ID        int64
	Name      string
	MaxPoints int
}

// Client issues leaderboard requests against a single callback URL.
type Client struct {
	url        string
	http       *http.Client
	tracer     trace.Tracer
	propagator propagation.TextMapPropagator
	logger     *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTracerProvider records spans on tp instead of the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Client) {
		c.tracer = tp.Tracer(instrumentation)
	}
}

// WithLogger logs failed requests to l.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a client for the leaderboard at url.
func New(url string, opts ...Option) *Client {
	c := &Client{
		url:        url,
		http:       &http.Client{Timeout: DefaultTimeout},
		tracer:     otel.Tracer(instrumentation),
		propagator: otel.GetTextMapPropagator(),
		logger:     log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewClient registers a player and returns the record the server assigned.
func (c *Client) NewClient(ctx context.Context, name string) (Stats, error) {
	body, err := sjson.SetBytes([]byte(`{}`), "name", name)
	if err == nil {
		body, err = sjson.SetBytes(body, "maxPoints", 0)
	}
	if err != nil {
		return Stats{}, fmt.Errorf("encode request: %w", err)
	}
	return c.postCurrent(ctx, "leaderboard.NewClient", body)
}

// UpdateStats publishes a player's best score.
func (c *Client) UpdateStats(ctx context.Context, s Stats) (Stats, error) {
	body, err := sjson.SetBytes([]byte(`{}`), "id", s.ID)
	if err == nil {
		body, err = sjson.SetBytes(body, "name", s.Name)
	}
	if err == nil {
		body, err = sjson.SetBytes(body, "maxPoints", s.MaxPoints)
	}
	if err != nil {
		return Stats{}, fmt.Errorf("encode request: %w", err)
	}
	return c.postCurrent(ctx, "leaderboard.UpdateStats", body)
}

// ReadStats fetches every record. A single malformed record rejects the
// whole list.
func (c *Client) ReadStats(ctx context.Context) ([]Stats, error) {
	ctx, span := c.tracer.Start(ctx, "leaderboard.ReadStats")
	defer span.End()

	doc, err := c.do(ctx, span, http.MethodGet, nil)
	if err != nil {
		return nil, err
	}

	items := doc.Get("data.items")
	if !items.IsArray() {
		return nil, nil
	}

	var list []Stats
	var bad bool
	items.ForEach(func(_, item gjson.Result) bool {
		s, ok := parseStats(item)
		if !ok {
			bad = true
			return false
		}
		list = append(list, s)
		return true
	})
	if bad {
		return nil, c.fail(span, fmt.Errorf("%w: malformed record in list", ErrServer))
	}

	span.SetAttributes(attribute.Int("leaderboard.items", len(list)))
	return list, nil
}

func (c *Client) postCurrent(ctx context.Context, name string, body []byte) (Stats, error) {
	ctx, span := c.tracer.Start(ctx, name)
	defer span.End()

	doc, err := c.do(ctx, span, http.MethodPost, body)
	if err != nil {
		return Stats{}, err
	}

	current := doc.Get("data.client")
	if !current.IsObject() || len(current.Map()) == 0 {
		return Stats{}, c.fail(span, fmt.Errorf("%w: missing client record", ErrServer))
	}
	s, ok := parseStats(current)
	if !ok {
		return Stats{}, c.fail(span, fmt.Errorf("%w: malformed client record", ErrServer))
	}

	span.SetAttributes(attribute.Int64("leaderboard.id", s.ID))
	return s, nil
}

// do performs the request and checks the response envelope.
func (c *Client) do(ctx context.Context, span trace.Span, method string, body []byte) (gjson.Result, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url, reader)
	if err != nil {
		return gjson.Result{}, c.fail(span, fmt.Errorf("%w: %v", ErrNoNetwork, err))
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.propagator.Inject(ctx, propagation.HeaderCarrier(req.Header))

	span.SetAttributes(
		attribute.String("http.request.method", method),
		attribute.String("url.full", c.url),
	)

	resp, err := c.http.Do(req)
	if err != nil {
		return gjson.Result{}, c.fail(span, fmt.Errorf("%w: %v", ErrNoNetwork, err))
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return gjson.Result{}, c.fail(span, ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return gjson.Result{}, c.fail(span, fmt.Errorf("%w: http %d", ErrServer, resp.StatusCode))
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return gjson.Result{}, c.fail(span, fmt.Errorf("%w: read body: %v", ErrNoNetwork, err))
	}
	if !gjson.ValidBytes(raw) {
		return gjson.Result{}, c.fail(span, fmt.Errorf("%w: invalid json", ErrServer))
	}

	doc := gjson.ParseBytes(raw)
	if doc.Get("ok").Type != gjson.True {
		return gjson.Result{}, c.fail(span, fmt.Errorf("%w: ok is not true", ErrServer))
	}
	return doc, nil
}

func (c *Client) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, StatusOf(err).String())
	c.logger.Printf("leaderboard: %v", err)
	return err
}

// parseStats accepts a record with numeric id, string name and numeric
// maxPoints.
func parseStats(r gjson.Result) (Stats, bool) {
	id, name, points := r.Get("id"), r.Get("name"), r.Get("maxPoints")
	if id.Type != gjson.Number || name.Type != gjson.String || points.Type != gjson.Number {
		return Stats{}, false
	}
	return Stats{
		ID:        id.Int(),
		Name:      name.String(),
		MaxPoints: int(points.Int()),
	}, true
}
