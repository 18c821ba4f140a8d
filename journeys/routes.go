package journeys

import (
	"fmt"
	"maps"
	"slices"

	"github.com/peadardefaoite/flights/ryanair"
)

// usableRoutes keeps only point-to-point edges operated by the configured
// carrier. Entries with a connecting airport are operator-internal
// consolidated routes, not usable edges.
func usableRoutes(routes []ryanair.Route, operator string) []ryanair.Route {
	usable := make([]ryanair.Route, 0, len(routes))
	for _, route := range routes {
		if route.ConnectingAirport == nil && route.Operator == operator {
			usable = append(usable, route)
		}
	}

	return usable
}

// directRoute finds the single direct edge between the ordered airport pair,
// or nil if none exists. The upstream publishes at most one direct edge per
// ordered pair per operator; more than one match is a data error.
func directRoute(routes []ryanair.Route, departure, arrival string) (*ryanair.Route, error) {
	var direct *ryanair.Route
	for _, route := range routes {
		if route.AirportFrom == departure && route.AirportTo == arrival {
			if direct != nil {
				return nil, fmt.Errorf("%w: multiple direct routes for %s-%s", ErrInconsistentData, departure, arrival)
			}

			direct = &route
		}
	}

	return direct, nil
}

// routePair is one candidate one-stop path: first runs departure→via,
// second runs via→arrival.
type routePair struct {
	via    string
	first  ryanair.Route
	second ryanair.Route
}

// connectingPairs derives the candidate one-stop paths between departure and
// arrival. Candidate first and second legs are matched by explicit key
// equality on the intermediate airport code; a duplicate intermediate on
// either side would make the pairing ambiguous and is a data error.
func connectingPairs(routes []ryanair.Route, departure, arrival string) ([]routePair, error) {
	firstByVia := make(map[string]ryanair.Route)
	secondByVia := make(map[string]ryanair.Route)

	for _, route := range routes {
		if route.AirportFrom == departure && route.AirportTo != arrival {
			if _, ok := firstByVia[route.AirportTo]; ok {
				return nil, fmt.Errorf("%w: duplicate outbound route %s-%s", ErrInconsistentData, departure, route.AirportTo)
			}

			firstByVia[route.AirportTo] = route
		}

		if route.AirportTo == arrival && route.AirportFrom != departure {
			if _, ok := secondByVia[route.AirportFrom]; ok {
				return nil, fmt.Errorf("%w: duplicate inbound route %s-%s", ErrInconsistentData, route.AirportFrom, arrival)
			}

			secondByVia[route.AirportFrom] = route
		}
	}

	pairs := make([]routePair, 0, min(len(firstByVia), len(secondByVia)))
	for _, via := range slices.Sorted(maps.Keys(firstByVia)) {
		second, ok := secondByVia[via]
		if !ok {
			continue
		}

		pairs = append(pairs, routePair{
			via:    via,
			first:  firstByVia[via],
			second: second,
		})
	}

	return pairs, nil
}
