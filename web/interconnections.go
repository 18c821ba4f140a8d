package web

import (
	"context"
	"errors"
	"net/http"
	"regexp"

	"github.com/labstack/echo/v4"

	"github.com/peadardefaoite/flights/journeys"
	"github.com/peadardefaoite/flights/metrics"
	"github.com/peadardefaoite/flights/ryanair"
	"github.com/peadardefaoite/flights/web/model"
	"github.com/peadardefaoite/flights/xtime"
)

var airportCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)

type journeySearch interface {
	Interconnections(ctx context.Context, departure, arrival string, departureFrom, arrivalUntil xtime.LocalDateTime) ([]journeys.Journey, error)
}

type InterconnectionsHandler struct {
	search    journeySearch
	collector *metrics.Collector
}

func NewInterconnectionsHandler(search journeySearch, collector *metrics.Collector) *InterconnectionsHandler {
	return &InterconnectionsHandler{
		search:    search,
		collector: collector,
	}
}

func (h *InterconnectionsHandler) Interconnections(c echo.Context) error {
	departure := c.QueryParam("departure")
	arrival := c.QueryParam("arrival")

	if !airportCodePattern.MatchString(departure) || !airportCodePattern.MatchString(arrival) {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid departure or arrival code")
	}

	if departure == arrival {
		return echo.NewHTTPError(http.StatusBadRequest, "departure and arrival codes are the same")
	}

	departureFrom, err := xtime.ParseLocalDateTime(c.QueryParam("departureDateTime"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid departureDateTime")
	}

	arrivalUntil, err := xtime.ParseLocalDateTime(c.QueryParam("arrivalDateTime"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid arrivalDateTime")
	}

	if arrivalUntil.Before(departureFrom) {
		return echo.NewHTTPError(http.StatusBadRequest, "arrival time is before departure time")
	}

	found, err := h.search.Interconnections(c.Request().Context(), departure, arrival, departureFrom, arrivalUntil)
	if err != nil {
		return h.translateError(err)
	}

	h.collector.ObserveSearch(metrics.SearchOK, len(found))

	return c.JSON(http.StatusOK, model.JourneysFromSearch(found))
}

// translateError maps the search error taxonomy onto transport status codes:
// rate limiting is our problem (no retry layer yet), an unreachable or
// inconsistent upstream is theirs.
func (h *InterconnectionsHandler) translateError(err error) error {
	switch {
	case errors.Is(err, ryanair.ErrRateLimited):
		h.collector.ObserveSearch(metrics.SearchUpstreamErr, 0)
		return echo.NewHTTPError(http.StatusInternalServerError, "upstream rate limit exhausted").SetInternal(err)

	case errors.Is(err, ryanair.ErrUnavailable):
		h.collector.ObserveSearch(metrics.SearchUpstreamErr, 0)
		return echo.NewHTTPError(http.StatusBadGateway, "upstream API unavailable").SetInternal(err)

	case errors.Is(err, journeys.ErrInconsistentData):
		h.collector.ObserveSearch(metrics.SearchInconsistent, 0)
		return echo.NewHTTPError(http.StatusBadGateway, "upstream API returned inconsistent data").SetInternal(err)

	default:
		h.collector.ObserveSearch(metrics.SearchUpstreamErr, 0)
		return err
	}
}

func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
