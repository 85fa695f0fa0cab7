// Package cli implements the umaplan command line: browsing the race
// calendar and editing a plan kept in the local store.
package cli

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/padraicbc/umaplan/catalog"
	"github.com/padraicbc/umaplan/models"
	"github.com/padraicbc/umaplan/planner"
)

// Context is passed to every command's Run method.
type Context struct {
	Ctx       context.Context
	Races     *catalog.File
	Plans     *planner.Service
	Key       string
	PublicURL string
	Timeline  planner.TimelineOptions
	Out       io.Writer
	// Copy puts text on the system clipboard.
	Copy func(string) error
}

// FilterFlags are shared by commands that narrow the catalog.
type FilterFlags struct {
	Search   string `help:"Case-insensitive substring of the race name." short:"s"`
	Grade    string `help:"G1, G2, G3, OP, Pre-OP, Maiden, Debut or All." default:"All"`
	Track    string `help:"Turf, Dirt or All." default:"All"`
	Phase    string `help:"Junior, Classic, Senior or All." default:"All"`
	Distance string `help:"Sprint, Mile, Middle, Long or All." default:"All"`
}

// Filters converts the flags into a filter value.
func (f FilterFlags) Filters() models.Filters {
	return models.Filters{
		SearchTerm:  f.Search,
		Grade:       f.Grade,
		Track:       f.Track,
		CareerPhase: f.Phase,
		Distance:    f.Distance,
	}
}

// resolveRace finds a catalog race by numeric id or exact name.
func resolveRace(ctx *Context, ref string) (models.Race, error) {
	ref = strings.TrimSpace(ref)
	if id, err := strconv.Atoi(ref); err == nil {
		return ctx.Races.FindByID(ctx.Ctx, id)
	}
	return ctx.Races.FindByName(ctx.Ctx, ref)
}

// shareToken accepts a bare token or a full share URL.
func shareToken(s string) string {
	s = strings.TrimSpace(s)
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" {
		return s
	}
	if t := u.Query().Get(planner.ShareParam); t != "" {
		return t
	}
	return s
}

func printf(ctx *Context, format string, args ...any) {
	fmt.Fprintf(ctx.Out, format, args...)
}
