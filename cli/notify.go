package cli

import (
	"fmt"
	"io"

	"github.com/padraicbc/umaplan/planner"
)

// WriterNotifier prints styled notifications to a terminal.
type WriterNotifier struct {
	W io.Writer
}

func (n WriterNotifier) Notify(message string, kind planner.Kind) {
	switch kind {
	case planner.KindSuccess:
		fmt.Fprintln(n.W, successStyle.Render("✓ "+message))
	case planner.KindError:
		fmt.Fprintln(n.W, warnStyle.Render("✗ "+message))
	default:
		fmt.Fprintln(n.W, mutedStyle.Render(message))
	}
}
