package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/padraicbc/umaplan/catalog"
	"github.com/padraicbc/umaplan/models"
	"github.com/padraicbc/umaplan/planner"
)

type messageResponse struct {
	Message string `json:"message"`
}

type timelineResponse struct {
	Filters       models.Filters      `json:"filters"`
	ActiveFilters bool                `json:"activeFilters"`
	Matches       int                 `json:"matches"`
	Slots         []planner.SlotGroup `json:"slots"`
}

// Races returns the full catalog exactly as stored in the data file.
func (h *Handler) Races(c echo.Context) error {
	raw, err := h.races.Raw(c.Request().Context())
	if err != nil {
		h.logger.Error("read races data", zap.Error(err))
		return c.String(http.StatusInternalServerError, "Error reading races data")
	}
	return c.JSONBlob(http.StatusOK, raw)
}

// RaceByName returns a single race by exact name.
func (h *Handler) RaceByName(c echo.Context) error {
	name := c.Param("name")
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}

	race, err := h.races.FindByName(c.Request().Context(), name)
	if err != nil {
		if errors.Is(err, catalog.ErrRaceNotFound) {
			return c.JSON(http.StatusNotFound, messageResponse{
				Message: fmt.Sprintf("Race with name %q not found", name),
			})
		}
		h.logger.Error("read races data", zap.Error(err))
		return c.String(http.StatusInternalServerError, "Error reading races data")
	}
	return c.JSON(http.StatusOK, race)
}

// Timeline groups the catalog into calendar slots using filters from the
// query string (search, grade, track, careerPhase, distance).
func (h *Handler) Timeline(c echo.Context) error {
	f := filtersFromQuery(c)
	races := h.races.LoadOrEmpty(c.Request().Context())
	slots := planner.GroupByTimeSlot(races, f, h.timeline)

	matches := 0
	for _, s := range slots {
		matches += len(s.Races)
	}
	return c.JSON(http.StatusOK, timelineResponse{
		Filters:       f,
		ActiveFilters: planner.IsActive(f),
		Matches:       matches,
		Slots:         slots,
	})
}

func filtersFromQuery(c echo.Context) models.Filters {
	f := planner.DefaultFilters()
	f.SearchTerm = c.QueryParam("search")
	if v := c.QueryParam("grade"); v != "" {
		f.Grade = v
	}
	if v := c.QueryParam("track"); v != "" {
		f.Track = v
	}
	if v := c.QueryParam("careerPhase"); v != "" {
		f.CareerPhase = v
	}
	if v := c.QueryParam("distance"); v != "" {
		f.Distance = v
	}
	return f
}
