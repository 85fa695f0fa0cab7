package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/padraicbc/umaplan/models"
	"github.com/padraicbc/umaplan/planner"
)

var (
	slotStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#10b981"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	seqStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			Background(lipgloss.Color("#7c3aed")).
			Padding(0, 1)

	warnStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ef4444"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#22c55e"))

	turfStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#15803d"))
	dirtStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#b45309"))
)

func gradeStyle(g models.Grade) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff")).Padding(0, 1)
	switch g {
	case models.GradeG1:
		return base.Background(lipgloss.Color("#3785e4"))
	case models.GradeG2:
		return base.Background(lipgloss.Color("#f45a86"))
	case models.GradeG3:
		return base.Background(lipgloss.Color("#58c470"))
	case models.GradeOP, models.GradePreOP:
		return base.Background(lipgloss.Color("#ffad0b"))
	default:
		return base.Background(lipgloss.Color("#6b7280"))
	}
}

func trackLabel(t models.Track) string {
	switch t {
	case models.TrackTurf:
		return turfStyle.Render(string(t))
	case models.TrackDirt:
		return dirtStyle.Render(string(t))
	}
	return string(t)
}

func raceLine(r models.Race) string {
	parts := []string{
		gradeStyle(r.Grade).Render(string(r.Grade)),
		r.Name,
		mutedStyle.Render(fmt.Sprintf("%dm", r.Distance)),
		trackLabel(r.Track),
	}
	if r.Location != "" {
		parts = append(parts, mutedStyle.Render(r.Location))
	}
	return strings.Join(parts, " ")
}

// renderTimeline writes grouped slots, one header per slot. Races already
// in plan, or sharing a slot with one that is, are marked.
func renderTimeline(w io.Writer, groups []planner.SlotGroup, plan planner.Plan) {
	for _, g := range groups {
		fmt.Fprintln(w, slotStyle.Render(g.Label()))
		if len(g.Races) == 0 {
			fmt.Fprintln(w, "  "+mutedStyle.Render("No races found."))
			continue
		}
		for _, r := range g.Races {
			fmt.Fprintf(w, "  %s %s%s\n", mutedStyle.Render(fmt.Sprintf("#%d", r.ID)), raceLine(r), planMark(plan, r))
		}
	}
}

func planMark(plan planner.Plan, r models.Race) string {
	switch {
	case plan.Contains(r.ID):
		return " " + successStyle.Render("[planned]")
	case planner.HasConflict(plan, r):
		return " " + warnStyle.Render("[conflict]")
	}
	return ""
}

// renderPlan writes the plan, its conflicts and a count footer.
func renderPlan(w io.Writer, state models.PlanState) {
	conflicts := planner.DetectConflicts(state.SelectedRaces)
	if len(conflicts) > 0 {
		fmt.Fprintln(w, warnStyle.Render("Schedule Conflicts"))
		for _, c := range conflicts {
			fmt.Fprintln(w, "  "+warnStyle.Render("• ")+c.Summary())
		}
		fmt.Fprintln(w)
	}

	if len(state.SelectedRaces) == 0 {
		fmt.Fprintln(w, "No races selected")
		fmt.Fprintln(w, mutedStyle.Render("Add races with `umaplan toggle <id|name>` to build your racing strategy"))
		return
	}

	for _, sr := range state.SelectedRaces {
		slot := planner.SlotOf(sr.Race)
		fmt.Fprintf(w, "%s %s\n", seqStyle.Render(fmt.Sprint(sr.SequenceNumber)), raceLine(sr.Race))
		fmt.Fprintf(w, "    %s\n", mutedStyle.Render(slot.Label()))
	}

	n := len(state.SelectedRaces)
	suffix := "s"
	if n == 1 {
		suffix = ""
	}
	fmt.Fprintf(w, "\n%d race%s selected\n", n, suffix)
}
