package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/padraicbc/umaplan/catalog"
	mw "github.com/padraicbc/umaplan/middleware"
	"github.com/padraicbc/umaplan/models"
	"github.com/padraicbc/umaplan/planner"
)

type planResponse struct {
	State         models.PlanState       `json:"state"`
	Conflicts     []planner.Conflict     `json:"conflicts"`
	Notifications []planner.Notification `json:"notifications,omitempty"`
}

type moveRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

type reorderRequest struct {
	SelectedRaces []models.SelectedRace `json:"selectedRaces"`
}

func newPlanResponse(state models.PlanState, rec *planner.Recorder) planResponse {
	return planResponse{
		State:         state,
		Conflicts:     planner.DetectConflicts(state.SelectedRaces),
		Notifications: rec.Notifications(),
	}
}

// GetPlan returns the caller's plan. A ?plan= share token replaces the
// stored plan when it decodes; a bad token leaves the stored plan in place.
func (h *Handler) GetPlan(c echo.Context) error {
	rec := &planner.Recorder{}
	state := h.service(rec).Startup(c.Request().Context(), mw.PlanKey(c), c.QueryParam(planner.ShareParam))
	return c.JSON(http.StatusOK, newPlanResponse(state, rec))
}

// ToggleRace adds or removes a catalog race by id.
func (h *Handler) ToggleRace(c echo.Context) error {
	id, err := raceIDParam(c)
	if err != nil {
		return err
	}

	race, err := h.races.FindByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrRaceNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		h.logger.Error("read races data", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Error reading races data")
	}

	return h.dispatch(c, planner.ToggleRace{Race: race})
}

// RemoveRace drops a race from the plan.
func (h *Handler) RemoveRace(c echo.Context) error {
	id, err := raceIDParam(c)
	if err != nil {
		return err
	}
	return h.dispatch(c, planner.RemoveRace{ID: id})
}

// MoveRace splices a race to a new position.
func (h *Handler) MoveRace(c echo.Context) error {
	var req moveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return h.dispatch(c, planner.MoveRace{From: req.From, To: req.To})
}

// ReorderRaces replaces the plan order.
func (h *Handler) ReorderRaces(c echo.Context) error {
	var req reorderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.SelectedRaces == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "selectedRaces is required")
	}
	return h.dispatch(c, planner.ReorderRaces{Races: req.SelectedRaces})
}

// SetFilters stores the caller's filters.
func (h *Handler) SetFilters(c echo.Context) error {
	f := planner.DefaultFilters()
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return h.dispatch(c, planner.SetFilters{Filters: f})
}

// ClearFilters resets the caller's filters.
func (h *Handler) ClearFilters(c echo.Context) error {
	return h.dispatch(c, planner.ClearFilters{})
}

// ClearPlan deletes the caller's stored plan.
func (h *Handler) ClearPlan(c echo.Context) error {
	rec := &planner.Recorder{}
	state, err := h.service(rec).Clear(c.Request().Context(), mw.PlanKey(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, newPlanResponse(state, rec))
}

// SavePlan rewrites the stored plan and confirms.
func (h *Handler) SavePlan(c echo.Context) error {
	rec := &planner.Recorder{}
	state, err := h.service(rec).Save(c.Request().Context(), mw.PlanKey(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, newPlanResponse(state, rec))
}

// Conflicts lists time slots holding more than one selected race.
func (h *Handler) Conflicts(c echo.Context) error {
	state := h.service(nil).State(c.Request().Context(), mw.PlanKey(c))
	return c.JSON(http.StatusOK, planner.DetectConflicts(state.SelectedRaces))
}

// SharePlan returns a link embedding the caller's plan.
func (h *Handler) SharePlan(c echo.Context) error {
	rec := &planner.Recorder{}
	link, err := h.service(rec).Share(c.Request().Context(), mw.PlanKey(c), h.publicURL)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, link)
}

// SharedPlan decodes a share token without touching any stored plan.
func (h *Handler) SharedPlan(c echo.Context) error {
	state, err := planner.DecodeShare(c.Param("token"))
	if err != nil {
		h.logger.Info("bad share token", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid share token")
	}
	return c.JSON(http.StatusOK, newPlanResponse(state, &planner.Recorder{}))
}

func (h *Handler) dispatch(c echo.Context, action planner.Action) error {
	rec := &planner.Recorder{}
	state, err := h.service(rec).Dispatch(c.Request().Context(), mw.PlanKey(c), action)
	if err != nil {
		var oob *planner.IndexOutOfRangeError
		switch {
		case errors.Is(err, planner.ErrRaceNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.As(err, &oob), errors.Is(err, planner.ErrDuplicateRace), errors.Is(err, planner.ErrOrderMismatch):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		h.logger.Error("plan update failed", zap.String("key", mw.PlanKey(c)), zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, newPlanResponse(state, rec))
}

func raceIDParam(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "race id must be an integer")
	}
	return id, nil
}
