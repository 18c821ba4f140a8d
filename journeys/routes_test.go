package journeys

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peadardefaoite/flights/ryanair"
)

func route(from, to string) ryanair.Route {
	return ryanair.Route{AirportFrom: from, AirportTo: to, Operator: "RYANAIR"}
}

func TestUsableRoutes(t *testing.T) {
	stn := "STN"
	routes := []ryanair.Route{
		route("DUB", "SXF"),
		{AirportFrom: "DUB", AirportTo: "WRO", ConnectingAirport: &stn, Operator: "RYANAIR"},
		{AirportFrom: "DUB", AirportTo: "MAD", Operator: "AIR_LINGUS"},
	}

	usable := usableRoutes(routes, "RYANAIR")
	require.Len(t, usable, 1)
	assert.Equal(t, route("DUB", "SXF"), usable[0])
}

func TestDirectRoute(t *testing.T) {
	routes := []ryanair.Route{
		route("DUB", "BCN"),
		route("DUB", "SXF"),
		route("BCN", "SXF"),
	}

	direct, err := directRoute(routes, "DUB", "SXF")
	require.NoError(t, err)
	require.NotNil(t, direct)
	assert.Equal(t, route("DUB", "SXF"), *direct)

	direct, err = directRoute(routes, "SXF", "DUB")
	require.NoError(t, err)
	assert.Nil(t, direct)
}

func TestDirectRoute_Duplicate(t *testing.T) {
	routes := []ryanair.Route{
		route("DUB", "SXF"),
		route("DUB", "SXF"),
	}

	_, err := directRoute(routes, "DUB", "SXF")
	assert.ErrorIs(t, err, ErrInconsistentData)
}

func TestConnectingPairs(t *testing.T) {
	routes := []ryanair.Route{
		route("DUB", "SXF"), // direct, not a pair
		route("DUB", "BCN"),
		route("BCN", "SXF"),
		route("DUB", "ACE"),
		route("ACE", "SXF"),
		route("DUB", "OPO"), // no second leg, pruned
		route("MAD", "SXF"), // no first leg, pruned
	}

	pairs, err := connectingPairs(routes, "DUB", "SXF")
	require.NoError(t, err)
	require.Len(t, pairs, 2)

	// sorted by intermediate airport code
	assert.Equal(t, "ACE", pairs[0].via)
	assert.Equal(t, route("DUB", "ACE"), pairs[0].first)
	assert.Equal(t, route("ACE", "SXF"), pairs[0].second)

	assert.Equal(t, "BCN", pairs[1].via)
	assert.Equal(t, route("DUB", "BCN"), pairs[1].first)
	assert.Equal(t, route("BCN", "SXF"), pairs[1].second)
}

func TestConnectingPairs_DuplicateIntermediate(t *testing.T) {
	_, err := connectingPairs([]ryanair.Route{
		route("DUB", "BCN"),
		route("DUB", "BCN"),
		route("BCN", "SXF"),
	}, "DUB", "SXF")
	assert.ErrorIs(t, err, ErrInconsistentData)

	_, err = connectingPairs([]ryanair.Route{
		route("DUB", "BCN"),
		route("BCN", "SXF"),
		route("BCN", "SXF"),
	}, "DUB", "SXF")
	assert.ErrorIs(t, err, ErrInconsistentData)
}
