package journeys

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peadardefaoite/flights/ryanair"
	"github.com/peadardefaoite/flights/xtime"
)

type fakeClient struct {
	routes    []ryanair.Route
	routesErr error

	schedules    map[string]*ryanair.Schedule
	scheduleErrs map[string]error

	routesCalls    int
	timetableCalls []string
}

func timetableKeyOf(from, to string, year int, month time.Month) string {
	return fmt.Sprintf("%s-%s-%d-%d", from, to, year, int(month))
}

func (f *fakeClient) Routes(ctx context.Context) ([]ryanair.Route, error) {
	f.routesCalls++
	return f.routes, f.routesErr
}

func (f *fakeClient) Timetable(ctx context.Context, airportFrom, airportTo string, year int, month time.Month) (*ryanair.Schedule, error) {
	key := timetableKeyOf(airportFrom, airportTo, year, month)
	f.timetableCalls = append(f.timetableCalls, key)

	if err, ok := f.scheduleErrs[key]; ok {
		return nil, err
	}

	return f.schedules[key], nil
}

func day(d int, flights ...ryanair.ScheduleFlight) ryanair.ScheduleDay {
	return ryanair.ScheduleDay{Day: d, Flights: flights}
}

func schedule(month time.Month, days ...ryanair.ScheduleDay) *ryanair.Schedule {
	return &ryanair.Schedule{Month: month, Days: days}
}

var (
	windowFrom  = xtime.MustParseLocalDateTime("2030-03-01T00:00")
	windowUntil = xtime.MustParseLocalDateTime("2030-04-30T23:59")
)

func TestSearch_NoUsableRoutes(t *testing.T) {
	client := &fakeClient{
		routes: []ryanair.Route{
			{AirportFrom: "DUB", AirportTo: "SXF", Operator: "AIR_LINGUS"},
		},
	}

	found, err := NewSearch(client).Interconnections(context.Background(), "DUB", "SXF", windowFrom, windowUntil)
	require.NoError(t, err)
	assert.Empty(t, found)
	assert.Equal(t, 1, client.routesCalls)
	assert.Empty(t, client.timetableCalls)
}

func TestSearch_DuplicateDirectRoute(t *testing.T) {
	client := &fakeClient{
		routes: []ryanair.Route{
			route("DUB", "SXF"),
			route("DUB", "SXF"),
		},
	}

	_, err := NewSearch(client).Interconnections(context.Background(), "DUB", "SXF", windowFrom, windowUntil)
	assert.ErrorIs(t, err, ErrInconsistentData)
	assert.Empty(t, client.timetableCalls, "no timetable call may follow a data-integrity failure")
}

func TestSearch_DirectAcrossTwoMonths(t *testing.T) {
	client := &fakeClient{
		routes: []ryanair.Route{route("DUB", "SXF")},
		schedules: map[string]*ryanair.Schedule{
			timetableKeyOf("DUB", "SXF", 2030, time.March): schedule(time.March, day(10, flight("09:00", "12:30"))),
			timetableKeyOf("DUB", "SXF", 2030, time.April): schedule(time.April, day(5, flight("09:00", "12:30"))),
		},
	}

	found, err := NewSearch(client).Interconnections(context.Background(), "DUB", "SXF", windowFrom, windowUntil)
	require.NoError(t, err)

	require.Len(t, found, 2)
	for _, journey := range found {
		assert.Equal(t, 0, journey.Stops)
		require.Len(t, journey.Legs, 1)
	}

	assert.Equal(t, xtime.MustParseLocalDateTime("2030-03-10T09:00"), found[0].Legs[0].DepartureTime)
	assert.Equal(t, xtime.MustParseLocalDateTime("2030-04-05T09:00"), found[1].Legs[0].DepartureTime)

	assert.Equal(t, 1, client.routesCalls)
	assert.Len(t, client.timetableCalls, 2)
}

func TestSearch_NarrowWindowSkipsIndirect(t *testing.T) {
	client := &fakeClient{
		routes: []ryanair.Route{
			route("DUB", "SXF"),
			route("DUB", "BCN"),
			route("BCN", "SXF"),
		},
	}

	from := xtime.MustParseLocalDateTime("2030-03-10T09:00")
	until := xtime.MustParseLocalDateTime("2030-03-10T10:30")

	found, err := NewSearch(client).Interconnections(context.Background(), "DUB", "SXF", from, until)
	require.NoError(t, err)
	assert.Empty(t, found)

	// only the direct route may be queried
	assert.Equal(t, []string{timetableKeyOf("DUB", "SXF", 2030, time.March)}, client.timetableCalls)
}

func TestSearch_EmptyFirstLegSkipsSecondFetch(t *testing.T) {
	client := &fakeClient{
		routes: []ryanair.Route{
			route("DUB", "BCN"),
			route("BCN", "SXF"),
		},
		// DUB-BCN has no data in either month
	}

	found, err := NewSearch(client).Interconnections(context.Background(), "DUB", "SXF", windowFrom, windowUntil)
	require.NoError(t, err)
	assert.Empty(t, found)

	assert.Equal(t, []string{
		timetableKeyOf("DUB", "BCN", 2030, time.March),
		timetableKeyOf("DUB", "BCN", 2030, time.April),
	}, client.timetableCalls)
}

func TestSearch_RateLimitAbortsSearch(t *testing.T) {
	client := &fakeClient{
		routes: []ryanair.Route{route("DUB", "SXF")},
		schedules: map[string]*ryanair.Schedule{
			timetableKeyOf("DUB", "SXF", 2030, time.March): schedule(time.March, day(10, flight("09:00", "12:30"))),
		},
		scheduleErrs: map[string]error{
			timetableKeyOf("DUB", "SXF", 2030, time.April): ryanair.ErrRateLimited,
		},
	}

	found, err := NewSearch(client).Interconnections(context.Background(), "DUB", "SXF", windowFrom, windowUntil)
	assert.ErrorIs(t, err, ryanair.ErrRateLimited)
	assert.Nil(t, found, "no partial result on a fatal error")
}

func TestSearch_MinConnectionRule(t *testing.T) {
	client := &fakeClient{
		routes: []ryanair.Route{
			route("DUB", "BCN"),
			route("BCN", "SXF"),
		},
		schedules: map[string]*ryanair.Schedule{
			timetableKeyOf("DUB", "BCN", 2030, time.March): schedule(time.March, day(10, flight("06:00", "09:00"))),
			timetableKeyOf("BCN", "SXF", 2030, time.March): schedule(time.March,
				day(10, flight("10:59", "13:00")), // 1h59m connection, rejected
				day(10, flight("11:00", "13:10")), // exactly 2h, allowed
			),
		},
	}

	from := xtime.MustParseLocalDateTime("2030-03-01T00:00")
	until := xtime.MustParseLocalDateTime("2030-03-31T23:59")

	found, err := NewSearch(client).Interconnections(context.Background(), "DUB", "SXF", from, until)
	require.NoError(t, err)

	require.Len(t, found, 1)
	assert.Equal(t, 1, found[0].Stops)
	require.Len(t, found[0].Legs, 2)
	assert.Equal(t, found[0].Legs[0].ArrivalAirport, found[0].Legs[1].DepartureAirport)
	assert.Equal(t, xtime.MustParseLocalDateTime("2030-03-10T11:00"), found[0].Legs[1].DepartureTime)
}

// Two-month window, a direct route plus two candidate intermediates: BCN with
// four first legs and three second legs of which five pairings satisfy the
// two-hour rule, ACE contributing nothing. Expects 7 journeys from exactly
// one routes call and ten timetable calls.
func TestSearch_EndToEnd(t *testing.T) {
	client := &fakeClient{
		routes: []ryanair.Route{
			route("DUB", "SXF"),
			route("DUB", "BCN"),
			route("BCN", "SXF"),
			route("DUB", "ACE"),
			route("ACE", "SXF"),
		},
		schedules: map[string]*ryanair.Schedule{
			timetableKeyOf("DUB", "SXF", 2030, time.March): schedule(time.March, day(10, flight("09:00", "12:30"))),
			timetableKeyOf("DUB", "SXF", 2030, time.April): schedule(time.April, day(5, flight("09:00", "12:30"))),

			timetableKeyOf("DUB", "BCN", 2030, time.March): schedule(time.March,
				day(10, flight("06:00", "09:00"), flight("13:00", "16:00")),
			),
			timetableKeyOf("DUB", "BCN", 2030, time.April): schedule(time.April,
				day(5, flight("08:30", "11:30"), flight("19:00", "22:00")),
			),
			timetableKeyOf("BCN", "SXF", 2030, time.March): schedule(time.March,
				day(10, flight("12:00", "14:00")),
			),
			timetableKeyOf("BCN", "SXF", 2030, time.April): schedule(time.April,
				day(5, flight("12:00", "14:00"), flight("13:00", "15:00")),
			),

			timetableKeyOf("DUB", "ACE", 2030, time.March): schedule(time.March,
				day(12, flight("07:00", "10:00")),
			),
			// ACE second leg departs before any viable connection in March
			// and has no data at all in April.
			timetableKeyOf("ACE", "SXF", 2030, time.March): schedule(time.March,
				day(12, flight("08:00", "10:00")),
			),
		},
	}

	found, err := NewSearch(client).Interconnections(context.Background(), "DUB", "SXF", windowFrom, windowUntil)
	require.NoError(t, err)

	require.Len(t, found, 7)

	// direct journeys come first
	assert.Equal(t, 0, found[0].Stops)
	assert.Equal(t, 0, found[1].Stops)

	indirect := found[2:]
	for _, journey := range indirect {
		assert.Equal(t, 1, journey.Stops)
		require.Len(t, journey.Legs, 2)
		assert.Equal(t, "BCN", journey.Legs[0].ArrivalAirport)
		assert.Equal(t, "BCN", journey.Legs[1].DepartureAirport)
		assert.GreaterOrEqual(
			t,
			journey.Legs[1].DepartureTime.Compare(journey.Legs[0].ArrivalTime.Add(2*time.Hour)),
			0,
		)
	}

	assert.Equal(t, 1, client.routesCalls)
	assert.Len(t, client.timetableCalls, 10)
}

func TestTimetableFetch_Memoizes(t *testing.T) {
	client := &fakeClient{
		schedules: map[string]*ryanair.Schedule{
			timetableKeyOf("DUB", "SXF", 2030, time.March): schedule(time.March, day(10, flight("09:00", "12:30"))),
		},
	}

	fetch := newTimetableFetch(client)
	from := xtime.MustParseLocalDateTime("2030-03-01T00:00")
	until := xtime.MustParseLocalDateTime("2030-03-31T23:59")

	first, err := fetch.legs(context.Background(), "DUB", "SXF", from, until)
	require.NoError(t, err)
	second, err := fetch.legs(context.Background(), "DUB", "SXF", from, until)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, client.timetableCalls, 1, "identical fetches are answered from memory")
}
