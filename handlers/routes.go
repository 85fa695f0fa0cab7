package handlers

import (
	"github.com/labstack/echo/v4"

	mw "github.com/padraicbc/umaplan/middleware"
)

// Register mounts every API route on e.
func (h *Handler) Register(e *echo.Echo) {
	// Public
	e.POST("/signin", h.Signin)
	e.GET("/races", h.Races)
	e.GET("/races/:name", h.RaceByName)
	e.GET("/timeline", h.Timeline)
	e.GET("/share/:token", h.SharedPlan)

	// Protected – require valid JWT in Authorization header
	p := e.Group("/plan", mw.JWT(h.JWTKey))
	p.GET("", h.GetPlan)
	p.DELETE("", h.ClearPlan)
	p.POST("/toggle/:id", h.ToggleRace)
	p.DELETE("/races/:id", h.RemoveRace)
	p.POST("/move", h.MoveRace)
	p.PUT("/order", h.ReorderRaces)
	p.PUT("/filters", h.SetFilters)
	p.DELETE("/filters", h.ClearFilters)
	p.GET("/conflicts", h.Conflicts)
	p.POST("/save", h.SavePlan)
	p.POST("/share", h.SharePlan)
}
