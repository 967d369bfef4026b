package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mara/innkeep/internal/agenda"
)

// filterFlags collects the facet and period flags shared by the agenda
// commands. Each command registers its own copy so flag state never
// leaks between commands.
type filterFlags struct {
	search   string
	status   string
	assignee string
	property string
	category string
	period   string
	from     string
	to       string
}

func (f *filterFlags) register(cmd *cobra.Command, withAssignee bool) {
	cmd.Flags().StringVar(&f.search, "search", "", "Substring to search for (case-insensitive)")
	cmd.Flags().StringVar(&f.status, "status", "all", "Filter by status")
	cmd.Flags().StringVar(&f.property, "property", "all", "Filter by property")
	cmd.Flags().StringVar(&f.category, "category", "all", "Filter by category")
	if withAssignee {
		cmd.Flags().StringVar(&f.assignee, "assignee", "all", "Filter by assignee")
	}
	cmd.Flags().StringVar(&f.period, "period", "all", "Time period (today, next7days, this-week, this-month, ytd, all)")
	cmd.Flags().StringVar(&f.from, "from", "", "Custom period start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.to, "to", "", "Custom period end (YYYY-MM-DD, inclusive)")
}

// criteria builds the filter state for the agenda pipeline. Explicit
// --from/--to bounds win over a named --period; malformed bounds
// degrade to no date filter inside the resolver rather than erroring.
func (f *filterFlags) criteria() agenda.Criteria {
	period := agenda.Period{Preset: agenda.ParsePreset(f.period)}
	if f.from != "" || f.to != "" {
		period = agenda.Period{
			Preset:      agenda.PresetCustom,
			CustomStart: f.from,
			CustomEnd:   f.to,
		}
	}
	return agenda.Criteria{
		Search:   f.search,
		Status:   f.status,
		Assignee: f.assignee,
		Property: f.property,
		Category: f.category,
		Period:   period,
	}
}

// isTerminal returns true if the writer is a terminal
func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}
