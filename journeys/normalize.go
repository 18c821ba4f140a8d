package journeys

import (
	"github.com/peadardefaoite/flights/ryanair"
	"github.com/peadardefaoite/flights/xtime"
)

// scheduleLegs flattens one month's timetable into dated legs. The schedule
// payload has no year, so the year the fetch was issued under is supplied by
// the caller. Flights are kept as same-day data even when the arrival clock
// time precedes the departure clock time; the window filter drops those as
// non-chronological rather than redating them across midnight.
func scheduleLegs(airportFrom, airportTo string, year int, schedule ryanair.Schedule) []Leg {
	var legs []Leg
	for _, day := range schedule.Days {
		date := xtime.LocalDate{
			Year:  year,
			Month: schedule.Month,
			Day:   day.Day,
		}

		for _, flight := range day.Flights {
			legs = append(legs, Leg{
				DepartureAirport: airportFrom,
				ArrivalAirport:   airportTo,
				DepartureTime: xtime.LocalDateTime{
					Date: date,
					Time: flight.DepartureTime,
				},
				ArrivalTime: xtime.LocalDateTime{
					Date: date,
					Time: flight.ArrivalTime,
				},
			})
		}
	}

	return legs
}

// windowLegs keeps legs departing no earlier than `from` and arriving no
// later than `until` (both bounds inclusive), and drops legs that are not
// strictly chronological.
func windowLegs(legs []Leg, from, until xtime.LocalDateTime) []Leg {
	kept := make([]Leg, 0, len(legs))
	for _, leg := range legs {
		if leg.DepartureTime.Compare(from) < 0 || leg.ArrivalTime.Compare(until) > 0 {
			continue
		}

		if !leg.DepartureTime.Before(leg.ArrivalTime) {
			continue
		}

		kept = append(kept, leg)
	}

	return kept
}
