// Package journeys assembles direct and one-stop flight itineraries from the
// upstream route graph and per-month timetables.
package journeys

import (
	"errors"

	"github.com/peadardefaoite/flights/xtime"
)

// ErrInconsistentData reports upstream data violating an assumed invariant,
// such as duplicate direct routes for one ordered airport pair.
var ErrInconsistentData = errors.New("upstream data inconsistent")

// Leg is one concrete scheduled flight occurrence. Times are naive local
// values at each endpoint's own timezone; no conversion is performed.
type Leg struct {
	DepartureAirport string              `json:"departureAirport"`
	ArrivalAirport   string              `json:"arrivalAirport"`
	DepartureTime    xtime.LocalDateTime `json:"departureTime"`
	ArrivalTime      xtime.LocalDateTime `json:"arrivalTime"`
}

// Journey is a complete itinerary: one leg when direct (Stops == 0), two
// legs sharing a connection airport when indirect (Stops == 1).
type Journey struct {
	Stops int   `json:"stops"`
	Legs  []Leg `json:"legs"`
}
