package model

import (
	"github.com/peadardefaoite/flights/journeys"
	"github.com/peadardefaoite/flights/xtime"
)

type Leg struct {
	DepartureAirport string              `json:"departureAirport"`
	ArrivalAirport   string              `json:"arrivalAirport"`
	DepartureTime    xtime.LocalDateTime `json:"departureTime"`
	ArrivalTime      xtime.LocalDateTime `json:"arrivalTime"`
}

type Journey struct {
	Stops int   `json:"stops"`
	Legs  []Leg `json:"legs"`
}

func JourneysFromSearch(found []journeys.Journey) []Journey {
	result := make([]Journey, 0, len(found))
	for _, journey := range found {
		legs := make([]Leg, 0, len(journey.Legs))
		for _, leg := range journey.Legs {
			legs = append(legs, Leg{
				DepartureAirport: leg.DepartureAirport,
				ArrivalAirport:   leg.ArrivalAirport,
				DepartureTime:    leg.DepartureTime,
				ArrivalTime:      leg.ArrivalTime,
			})
		}

		result = append(result, Journey{
			Stops: journey.Stops,
			Legs:  legs,
		})
	}

	return result
}
