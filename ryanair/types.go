package ryanair

import (
	"time"

	"github.com/peadardefaoite/flights/xtime"
)

// Route is one operator-published edge of the route graph. Unknown fields in
// the upstream payload are ignored.
type Route struct {
	AirportFrom       string  `json:"airportFrom"`
	AirportTo         string  `json:"airportTo"`
	ConnectingAirport *string `json:"connectingAirport"`
	NewRoute          bool    `json:"newRoute"`
	SeasonalRoute     bool    `json:"seasonalRoute"`
	Operator          string  `json:"operator"`
	Group             string  `json:"group"`
}

// Schedule is the raw timetable for one route and one month. The upstream
// payload deliberately omits the year; the caller supplies it when
// flattening day entries into dated legs.
type Schedule struct {
	Month time.Month    `json:"month"`
	Days  []ScheduleDay `json:"days"`
}

type ScheduleDay struct {
	Day     int              `json:"day"`
	Flights []ScheduleFlight `json:"flights"`
}

type ScheduleFlight struct {
	CarrierCode   string          `json:"carrierCode"`
	Number        string          `json:"number"`
	DepartureTime xtime.LocalTime `json:"departureTime"`
	ArrivalTime   xtime.LocalTime `json:"arrivalTime"`
}
