package cli

import (
	"fmt"

	"github.com/padraicbc/umaplan/models"
	"github.com/padraicbc/umaplan/planner"
)

// ShowCmd prints the current plan.
type ShowCmd struct{}

func (c *ShowCmd) Run(ctx *Context) error {
	renderPlan(ctx.Out, ctx.Plans.State(ctx.Ctx, ctx.Key))
	return nil
}

// ToggleCmd adds a race to the plan, or removes it if already present.
type ToggleCmd struct {
	Refs []string `arg:"" help:"Race ids or exact names." name:"race"`
}

func (c *ToggleCmd) Run(ctx *Context) error {
	var state models.PlanState
	for _, ref := range c.Refs {
		r, err := resolveRace(ctx, ref)
		if err != nil {
			return err
		}
		had := planner.Plan(ctx.Plans.State(ctx.Ctx, ctx.Key).SelectedRaces).Contains(r.ID)
		state, err = ctx.Plans.Dispatch(ctx.Ctx, ctx.Key, planner.ToggleRace{Race: r})
		if err != nil {
			return err
		}
		verb := "Added"
		if had {
			verb = "Removed"
		}
		printf(ctx, "%s %s\n", verb, r.Name)
	}
	warnConflicts(ctx, state)
	return nil
}

// RemoveCmd drops a race from the plan.
type RemoveCmd struct {
	Ref string `arg:"" help:"Race id or exact name." name:"race"`
}

func (c *RemoveCmd) Run(ctx *Context) error {
	r, err := resolveRace(ctx, c.Ref)
	if err != nil {
		return err
	}
	if _, err := ctx.Plans.Dispatch(ctx.Ctx, ctx.Key, planner.RemoveRace{ID: r.ID}); err != nil {
		return fmt.Errorf("remove %s: %w", r.Name, err)
	}
	printf(ctx, "Removed %s\n", r.Name)
	return nil
}

// MoveCmd moves the race at one 1-based position to another.
type MoveCmd struct {
	From int `arg:"" help:"Current position (1-based)."`
	To   int `arg:"" help:"New position (1-based)."`
}

func (c *MoveCmd) Run(ctx *Context) error {
	state, err := ctx.Plans.Dispatch(ctx.Ctx, ctx.Key, planner.MoveRace{From: c.From - 1, To: c.To - 1})
	if err != nil {
		return err
	}
	renderPlan(ctx.Out, state)
	return nil
}

// ClearCmd empties the plan.
type ClearCmd struct {
	Filters bool `help:"Also reset stored filters."`
}

func (c *ClearCmd) Run(ctx *Context) error {
	if c.Filters {
		_, err := ctx.Plans.Clear(ctx.Ctx, ctx.Key)
		return err
	}
	_, err := ctx.Plans.Dispatch(ctx.Ctx, ctx.Key, planner.ClearPlan{})
	if err != nil {
		return err
	}
	ctx.Plans.Notify("Race plan cleared.", planner.KindSuccess)
	return nil
}

// ConflictsCmd lists time slots holding more than one planned race.
type ConflictsCmd struct{}

func (c *ConflictsCmd) Run(ctx *Context) error {
	state := ctx.Plans.State(ctx.Ctx, ctx.Key)
	conflicts := planner.DetectConflicts(state.SelectedRaces)
	if len(conflicts) == 0 {
		printf(ctx, "No conflicts.\n")
		return nil
	}
	for _, cf := range conflicts {
		printf(ctx, "%s\n", warnStyle.Render(cf.Summary()))
		for _, r := range cf.Races {
			printf(ctx, "  %s\n", raceLine(r.Race))
		}
	}
	return nil
}

// SaveCmd writes the plan back and confirms.
type SaveCmd struct{}

func (c *SaveCmd) Run(ctx *Context) error {
	_, err := ctx.Plans.Save(ctx.Ctx, ctx.Key)
	return err
}

func warnConflicts(ctx *Context, state models.PlanState) {
	for _, cf := range planner.DetectConflicts(state.SelectedRaces) {
		printf(ctx, "%s %s\n", warnStyle.Render("conflict:"), cf.Summary())
	}
}
