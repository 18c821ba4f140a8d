package journeys

import (
	"cmp"
	"context"
	"log/slog"
	"time"

	"github.com/peadardefaoite/flights/ryanair"
	"github.com/peadardefaoite/flights/xtime"
)

const (
	DefaultOperator          = "RYANAIR"
	DefaultMinConnectionTime = 2 * time.Hour
)

// UpstreamClient is the subset of the upstream API the search needs.
// A nil schedule with a nil error means the upstream has no data for that
// route and month.
type UpstreamClient interface {
	Routes(ctx context.Context) ([]ryanair.Route, error)
	Timetable(ctx context.Context, airportFrom, airportTo string, year int, month time.Month) (*ryanair.Schedule, error)
}

type Search struct {
	client        UpstreamClient
	logger        *slog.Logger
	operator      string
	minConnection time.Duration
}

type SearchOption func(s *Search)

func WithOperator(operator string) SearchOption {
	return func(s *Search) {
		s.operator = operator
	}
}

func WithMinConnectionTime(d time.Duration) SearchOption {
	return func(s *Search) {
		s.minConnection = d
	}
}

func WithLogger(logger *slog.Logger) SearchOption {
	return func(s *Search) {
		s.logger = logger
	}
}

func NewSearch(client UpstreamClient, opts ...SearchOption) *Search {
	s := &Search{client: client}

	for _, opt := range opts {
		opt(s)
	}

	s.operator = cmp.Or(s.operator, DefaultOperator)
	s.minConnection = cmp.Or(s.minConnection, DefaultMinConnectionTime)
	s.logger = cmp.Or(s.logger, slog.Default())

	return s
}

// Interconnections finds every direct and one-stop itinerary from departure
// to arrival departing no earlier than departureFrom and arriving no later
// than arrivalUntil. Direct journeys precede indirect ones; no further
// ordering is guaranteed. Any fatal upstream error aborts the whole search
// with no partial result.
func (s *Search) Interconnections(ctx context.Context, departure, arrival string, departureFrom, arrivalUntil xtime.LocalDateTime) ([]Journey, error) {
	routes, err := s.client.Routes(ctx)
	if err != nil {
		return nil, err
	}

	usable := usableRoutes(routes, s.operator)
	if len(usable) == 0 {
		return nil, nil
	}

	direct, err := directRoute(usable, departure, arrival)
	if err != nil {
		return nil, err
	}

	pairs, err := connectingPairs(usable, departure, arrival)
	if err != nil {
		return nil, err
	}

	fetch := newTimetableFetch(s.client)

	var journeys []Journey
	if direct != nil {
		legs, err := fetch.legs(ctx, direct.AirportFrom, direct.AirportTo, departureFrom, arrivalUntil)
		if err != nil {
			return nil, err
		}

		for _, leg := range legs {
			journeys = append(journeys, Journey{Stops: 0, Legs: []Leg{leg}})
		}
	}

	// The connection-time rule cannot be satisfied inside a window shorter
	// than the minimum connection time; skip the indirect upstream calls.
	if departureFrom.Add(s.minConnection).Compare(arrivalUntil) > 0 {
		return journeys, nil
	}

	for _, pair := range pairs {
		firstLegs, err := fetch.legs(ctx, pair.first.AirportFrom, pair.first.AirportTo, departureFrom, arrivalUntil)
		if err != nil {
			return nil, err
		}

		// No viable first leg means no journey via this airport; the
		// second-leg fetch is skipped entirely.
		if len(firstLegs) == 0 {
			s.logger.DebugContext(ctx, "no first legs via intermediate, skipping", slog.String("via", pair.via))
			continue
		}

		secondLegs, err := fetch.legs(ctx, pair.second.AirportFrom, pair.second.AirportTo, departureFrom, arrivalUntil)
		if err != nil {
			return nil, err
		}

		for _, first := range firstLegs {
			earliestOnward := first.ArrivalTime.Add(s.minConnection)
			for _, second := range secondLegs {
				if second.DepartureTime.Compare(earliestOnward) >= 0 {
					journeys = append(journeys, Journey{Stops: 1, Legs: []Leg{first, second}})
				}
			}
		}
	}

	return journeys, nil
}

type timetableKey struct {
	airportFrom string
	airportTo   string
	year        int
	month       time.Month
}

// timetableFetch memoizes schedule fetches within a single search. Candidate
// pairs can share a route; identical (route, month) fetches are answered
// from memory without changing results.
type timetableFetch struct {
	client UpstreamClient
	memo   map[timetableKey]*ryanair.Schedule
}

func newTimetableFetch(client UpstreamClient) *timetableFetch {
	return &timetableFetch{
		client: client,
		memo:   make(map[timetableKey]*ryanair.Schedule),
	}
}

// legs fetches, flattens and window-filters the timetables of one route for
// every calendar month the window touches. Months without data contribute
// nothing; fatal errors abort immediately.
func (f *timetableFetch) legs(ctx context.Context, airportFrom, airportTo string, from, until xtime.LocalDateTime) ([]Leg, error) {
	var legs []Leg
	for ym := range xtime.NewYearMonth(from).Until(xtime.NewYearMonth(until)) {
		key := timetableKey{airportFrom, airportTo, ym.Year, ym.Month}

		schedule, ok := f.memo[key]
		if !ok {
			var err error
			schedule, err = f.client.Timetable(ctx, airportFrom, airportTo, ym.Year, ym.Month)
			if err != nil {
				return nil, err
			}

			f.memo[key] = schedule
		}

		if schedule == nil {
			continue
		}

		legs = append(legs, windowLegs(scheduleLegs(airportFrom, airportTo, ym.Year, *schedule), from, until)...)
	}

	return legs, nil
}
