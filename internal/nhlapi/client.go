// Package nhlapi fetches paged skater summaries from the NHL stats service.
package nhlapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	apperrors "nhlvis/internal/errors"
	"nhlvis/internal/infrastructure"
)

const (
	DefaultBaseURL  = "https://api.nhle.com/stats/rest/en/skater/summary"
	DefaultPageSize = 100

	pointsSort = `[{"property":"points","direction":"DESC"}]`
	userAgent  = "nhlvis/1.0"
)

// Client fetches pages of the regular-season skater summary report
type Client struct {
	httpClient *http.Client
	baseURL    string
	pageSize   int
	limiter    *rate.Limiter
	logger     *slog.Logger
	metrics    *infrastructure.PipelineMetrics
	tracer     trace.Tracer
}

// ClientOption configures a Client
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithPageSize sets the number of records per request
func WithPageSize(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// WithRateLimit paces requests to rps per second; rps <= 0 disables pacing
func WithRateLimit(rps float64) ClientOption {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		} else {
			c.limiter = nil
		}
	}
}

// WithLogger sets the client logger
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) { c.logger = logger }
}

// WithMetrics records page counts and request durations
func WithMetrics(m *infrastructure.PipelineMetrics) ClientOption {
	return func(c *Client) { c.metrics = m }
}

// NewClient creates a client for baseURL; an empty baseURL uses the public service
func NewClient(baseURL string, timeout time.Duration, opts ...ClientOption) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		pageSize:   DefaultPageSize,
		logger:     slog.Default(),
		tracer:     otel.Tracer("nhlvis/nhlapi"),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = infrastructure.WithComponent(c.logger, "nhlapi")
	return c
}

// PageSize returns the number of records requested per page
func (c *Client) PageSize() int {
	return c.pageSize
}

// PageURL builds the request URL for one page of a season
func (c *Client) PageURL(seasonID, page int) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", apperrors.NewConfigError("invalid base URL", err).WithContext("base_url", c.baseURL)
	}

	q := u.Query()
	q.Set("isAggregate", "false")
	q.Set("reportType", "season")
	q.Set("isGame", "false")
	q.Set("reportName", "skatersummary")
	q.Set("sort", pointsSort)
	q.Set("cayenneExp", fmt.Sprintf("gameTypeId=2 and seasonId=%d", seasonID))
	q.Set("start", strconv.Itoa(page*c.pageSize))
	q.Set("limit", strconv.Itoa(c.pageSize))
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// FetchSkaterPage requests page (zero-based) of seasonID. An empty slice
// means the season is exhausted. Any non-2xx status is a NETWORK error.
func (c *Client) FetchSkaterPage(ctx context.Context, seasonID, page int) ([]SkaterSummary, error) {
	ctx, span := c.tracer.Start(ctx, "nhlapi.FetchSkaterPage", trace.WithAttributes(
		attribute.Int("season", seasonID),
		attribute.Int("page", page),
	))
	defer span.End()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, apperrors.NewNetworkError("rate limiter wait", err)
		}
	}

	pageURL, err := c.PageURL(seasonID, page)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, apperrors.NewNetworkError("create request", err).WithContext("url", pageURL)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, apperrors.NewNetworkError("request skater summary", err).
			WithContext("url", pageURL).
			WithContext("season", seasonID).
			WithContext("page", page)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		statusErr := apperrors.NewNetworkError(fmt.Sprintf("unexpected status %d from %s", resp.StatusCode, pageURL), nil).
			WithContext("status", resp.StatusCode).
			WithContext("url", pageURL).
			WithContext("body", string(body))
		infrastructure.RecordError(ctx, statusErr)
		return nil, statusErr
	}

	var envelope pageEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, apperrors.NewParsingError("decode skater summary", err).
			WithContext("url", pageURL)
	}

	elapsed := time.Since(start)
	infrastructure.RecordPage(ctx, c.metrics, seasonID, elapsed)
	span.SetAttributes(attribute.Int("rows", len(envelope.Data)))

	c.logger.DebugContext(ctx, "page fetched",
		slog.Int("season", seasonID),
		slog.Int("page", page),
		slog.Int("rows", len(envelope.Data)),
		slog.Int("total", envelope.Total),
		slog.Duration("elapsed", elapsed))

	return envelope.Data, nil
}
