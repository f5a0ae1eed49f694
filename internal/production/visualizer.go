package production

import (
	"fmt"
	"strings"

	"github.com/statelab/pollstate/internal/primitives"
)

// CellStatus is one row of the status report.
type CellStatus struct {
	Name     string
	Phase    primitives.Phase
	Commits  uint64
	LastView primitives.View
}

// StatusVisualizer renders loop status as a plain-text table, suitable for
// debug output and operator terminals.
type StatusVisualizer struct{}

// Render produces the table. Columns: cell, phase, commits, last view.
func (v *StatusVisualizer) Render(tick uint64, statuses []CellStatus) string {
	var b strings.Builder
	fmt.Fprintf(&b, "tick %d, %d cell(s)\n", tick, len(statuses))
	b.WriteString("CELL            PHASE  COMMITS  LAST VIEW\n")
	for _, s := range statuses {
		view := string(s.LastView)
		if len(view) > 40 {
			view = view[:37] + "..."
		}
		fmt.Fprintf(&b, "%-15s %-6s %7d  %s\n", s.Name, s.Phase, s.Commits, view)
	}
	return b.String()
}
