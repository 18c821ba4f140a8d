package ryanair

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/time/rate"

	"github.com/peadardefaoite/flights/metrics"
)

var (
	// ErrRateLimited reports upstream quota exhaustion. There is no retry
	// layer; the search in progress is aborted.
	ErrRateLimited = errors.New("upstream rate limited")

	// ErrUnavailable reports a 5xx, an unrecognized status or a
	// transport-level failure from the upstream API.
	ErrUnavailable = errors.New("upstream unavailable")
)

// StatusError carries the upstream HTTP status alongside the taxonomy
// sentinel it was classified as.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e StatusError) Error() string {
	return e.Status
}

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
	collector  *metrics.Collector
	baseUrl    string
}

type ClientOption func(c *Client)

func WithHttpClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithRateLimiter(limiter *rate.Limiter) ClientOption {
	return func(c *Client) {
		c.limiter = limiter
	}
}

func WithBaseUrl(baseUrl string) ClientOption {
	return func(c *Client) {
		c.baseUrl = baseUrl
	}
}

func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithMetrics(collector *metrics.Collector) ClientOption {
	return func(c *Client) {
		c.collector = collector
	}
}

func NewClient(opts ...ClientOption) *Client {
	c := new(Client)

	for _, opt := range opts {
		opt(c)
	}

	c.httpClient = cmp.Or(c.httpClient, http.DefaultClient)
	c.baseUrl = cmp.Or(c.baseUrl, "https://services-api.ryanair.com")
	c.logger = cmp.Or(c.logger, slog.Default())

	return c
}

// Routes lists every published route. A "no data" response yields an empty
// slice, not an error. Null entries in the payload are dropped.
func (c *Client) Routes(ctx context.Context) ([]Route, error) {
	resp, err := c.doRequest(ctx, c.baseUrl+"/locate/3/routes/")
	if err != nil {
		c.collector.ObserveUpstream("routes", metrics.OutcomeUnavailable)
		return nil, errors.Join(err, ErrUnavailable)
	}

	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		var raw []*Route
		if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
			c.collector.ObserveUpstream("routes", metrics.OutcomeUnavailable)
			return nil, errors.Join(fmt.Errorf("failed to parse routes response: %w", err), ErrUnavailable)
		}

		routes := make([]Route, 0, len(raw))
		for _, r := range raw {
			if r != nil {
				routes = append(routes, *r)
			}
		}

		c.collector.ObserveUpstream("routes", metrics.OutcomeOK)
		return routes, nil

	case resp.StatusCode == http.StatusNotFound:
		c.collector.ObserveUpstream("routes", metrics.OutcomeNoData)
		return nil, nil

	case resp.StatusCode == http.StatusTooManyRequests:
		c.collector.ObserveUpstream("routes", metrics.OutcomeRateLimited)
		return nil, errors.Join(statusErr(resp), ErrRateLimited)

	default:
		c.collector.ObserveUpstream("routes", metrics.OutcomeUnavailable)
		return nil, errors.Join(statusErr(resp), ErrUnavailable)
	}
}

// Timetable fetches one route's schedule for one calendar month. It returns
// (nil, nil) when the upstream has no data. A 4xx other than 429 is also
// treated as "no data": the upstream answers 400 rather than an empty 200
// for unknown route codes.
func (c *Client) Timetable(ctx context.Context, airportFrom, airportTo string, year int, month time.Month) (*Schedule, error) {
	surl := c.baseUrl + "/timtbl/3/schedules/" +
		url.PathEscape(airportFrom) + "/" + url.PathEscape(airportTo) +
		"/years/" + strconv.Itoa(year) + "/months/" + strconv.Itoa(int(month))

	resp, err := c.doRequest(ctx, surl)
	if err != nil {
		c.collector.ObserveUpstream("schedules", metrics.OutcomeUnavailable)
		return nil, errors.Join(err, ErrUnavailable)
	}

	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		var schedule Schedule
		if err := json.NewDecoder(resp.Body).Decode(&schedule); err != nil {
			c.collector.ObserveUpstream("schedules", metrics.OutcomeUnavailable)
			return nil, errors.Join(fmt.Errorf("failed to parse schedule response: %w", err), ErrUnavailable)
		}

		c.collector.ObserveUpstream("schedules", metrics.OutcomeOK)
		return &schedule, nil

	case resp.StatusCode == http.StatusNotFound:
		c.collector.ObserveUpstream("schedules", metrics.OutcomeNoData)
		return nil, nil

	case resp.StatusCode == http.StatusTooManyRequests:
		c.collector.ObserveUpstream("schedules", metrics.OutcomeRateLimited)
		return nil, errors.Join(statusErr(resp), ErrRateLimited)

	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		c.logger.WarnContext(
			ctx,
			"schedule request rejected by upstream, treating as no data",
			slog.String("airportFrom", airportFrom),
			slog.String("airportTo", airportTo),
			slog.Int("year", year),
			slog.Int("month", int(month)),
			slog.String("status", resp.Status),
		)
		c.collector.ObserveUpstream("schedules", metrics.OutcomeNoData)
		return nil, nil

	default:
		c.collector.ObserveUpstream("schedules", metrics.OutcomeUnavailable)
		return nil, errors.Join(statusErr(resp), ErrUnavailable)
	}
}

func (c *Client) doRequest(ctx context.Context, surl string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, surl, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	c.logger.DebugContext(ctx, "upstream request", slog.String("url", surl))

	return c.httpClient.Do(req)
}

func statusErr(resp *http.Response) error {
	return StatusError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
	}
}
