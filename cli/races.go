package cli

import (
	"fmt"

	"github.com/padraicbc/umaplan/models"
	"github.com/padraicbc/umaplan/planner"
)

// RacesCmd prints the catalog grouped into time slots.
type RacesCmd struct {
	FilterFlags
	Saved bool `help:"Use the filters stored with the plan instead of flags."`
}

func (c *RacesCmd) Run(ctx *Context) error {
	races, err := ctx.Races.Load(ctx.Ctx)
	if err != nil {
		return fmt.Errorf("load races: %w", err)
	}

	state := ctx.Plans.State(ctx.Ctx, ctx.Key)
	f := c.Filters()
	if c.Saved {
		f = state.Filters
	}

	groups := planner.GroupByTimeSlot(races, f, ctx.Timeline)
	if len(groups) == 0 {
		printf(ctx, "No races found.\n")
		return nil
	}
	renderTimeline(ctx.Out, groups, state.SelectedRaces)
	return nil
}

// RaceCmd shows a single race looked up by id or exact name.
type RaceCmd struct {
	Ref string `arg:"" help:"Race id or exact name."`
}

func (c *RaceCmd) Run(ctx *Context) error {
	r, err := resolveRace(ctx, c.Ref)
	if err != nil {
		return err
	}
	slot := planner.SlotOf(r)
	printf(ctx, "%s\n", raceLine(r))
	printf(ctx, "  %s\n", mutedStyle.Render(slot.Label()))
	if r.NameJP != "" {
		printf(ctx, "  %s\n", r.NameJP)
	}
	if r.Direction != "" {
		printf(ctx, "  %s\n", mutedStyle.Render(string(r.Direction)))
	}
	if r.Notes != "" {
		printf(ctx, "  %s\n", r.Notes)
	}
	if planner.Plan(ctx.Plans.State(ctx.Ctx, ctx.Key).SelectedRaces).Contains(r.ID) {
		printf(ctx, "  %s\n", successStyle.Render("in plan"))
	}
	return nil
}

// FilterCmd stores filters with the plan.
type FilterCmd struct {
	FilterFlags
	Reset bool `help:"Restore every filter to All."`
}

func (c *FilterCmd) Run(ctx *Context) error {
	var action planner.Action = planner.SetFilters{Filters: c.Filters()}
	if c.Reset {
		action = planner.ClearFilters{}
	}
	state, err := ctx.Plans.Dispatch(ctx.Ctx, ctx.Key, action)
	if err != nil {
		return err
	}
	printFilters(ctx, state.Filters)
	return nil
}

func printFilters(ctx *Context, f models.Filters) {
	if !planner.IsActive(f) {
		printf(ctx, "No active filters.\n")
		return
	}
	search := f.SearchTerm
	if search == "" {
		search = "-"
	}
	printf(ctx, "search=%s grade=%s track=%s phase=%s distance=%s\n",
		search, f.Grade, f.Track, f.CareerPhase, f.Distance)
}
