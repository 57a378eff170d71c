// Package progress reconciles the requirement and delivery maps into the
// table the commander sees. Reconciliation is a pure join: it owns no state
// and can be rerun against any pair of snapshots.
package progress

import (
	"sort"

	"github.com/djglass/ed-colony-construction-tracker/internal/commodity"
)

// Row is one commodity's reconciled delivery state.
type Row struct {
	Commodity commodity.Name
	Delivered int
	Required  int
	Remaining int
}

// Filter selects which rows are visible.
type Filter string

const (
	FilterAll        Filter = "all"
	FilterIncomplete Filter = "incomplete"
	FilterComplete   Filter = "complete"
)

// ParseFilter maps a mode string to a Filter. Unknown modes fall back to
// FilterAll so a stale config value never blanks the table.
func ParseFilter(s string) Filter {
	switch Filter(s) {
	case FilterIncomplete:
		return FilterIncomplete
	case FilterComplete:
		return FilterComplete
	default:
		return FilterAll
	}
}

// Reconcile joins requirements with deliveries under the given filter. The
// row set is exactly the requirement keys: a commodity delivered but not
// required produces no row, and a required commodity with no deliveries shows
// zero delivered. Remaining never goes below zero, over-delivery reads as
// complete. Rows come back in commodity order so repeated reconciles over the
// same snapshots are identical.
func Reconcile(required, delivered map[commodity.Name]int, filter Filter) []Row {
	rows := make([]Row, 0, len(required))
	for name, req := range required {
		del := delivered[name]
		remaining := req - del
		if remaining < 0 {
			remaining = 0
		}
		switch filter {
		case FilterIncomplete:
			if remaining == 0 {
				continue
			}
		case FilterComplete:
			if remaining > 0 {
				continue
			}
		}
		rows = append(rows, Row{
			Commodity: name,
			Delivered: del,
			Required:  req,
			Remaining: remaining,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Commodity < rows[j].Commodity })
	return rows
}

// Totals sums delivered and required over the rows, for the status summary.
func Totals(rows []Row) (delivered, required int) {
	for _, r := range rows {
		delivered += r.Delivered
		required += r.Required
	}
	return delivered, required
}
