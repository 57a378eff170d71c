package progress

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Column identifies a sortable table column.
type Column int

const (
	ColumnCommodity Column = iota
	ColumnDelivered
	ColumnRequired
	ColumnRemaining
)

// Columns lists every column in display order.
var Columns = []Column{ColumnCommodity, ColumnDelivered, ColumnRequired, ColumnRemaining}

func (c Column) String() string {
	switch c {
	case ColumnCommodity:
		return "Commodity"
	case ColumnDelivered:
		return "Delivered"
	case ColumnRequired:
		return "Required"
	case ColumnRemaining:
		return "Remaining"
	default:
		return "Unknown"
	}
}

// ParseColumn resolves a case-insensitive column name.
func ParseColumn(s string) (Column, error) {
	for _, c := range Columns {
		if strings.EqualFold(s, c.String()) {
			return c, nil
		}
	}
	return ColumnCommodity, fmt.Errorf("unknown column %q", s)
}

// Cell returns the displayed value of one column, which is also what sorting
// compares.
func (r Row) Cell(c Column) string {
	switch c {
	case ColumnCommodity:
		return string(r.Commodity)
	case ColumnDelivered:
		return strconv.Itoa(r.Delivered)
	case ColumnRequired:
		return strconv.Itoa(r.Required)
	default:
		return strconv.Itoa(r.Remaining)
	}
}

// Sort orders rows by one column and returns a new slice; the input is left
// alone. If every row's value in that column parses as an integer after
// stripping thousands separators the sort is numeric; one unparsable value
// switches the whole column to comparing displayed strings. Equal keys keep
// their prior relative order, and descending reverses the comparison only, so
// ties stay stable in both directions.
func Sort(rows []Row, col Column, descending bool) []Row {
	type keyed struct {
		row Row
		n   int
	}
	items := make([]keyed, len(rows))
	numeric := true
	for i, r := range rows {
		items[i].row = r
		n, err := strconv.Atoi(strings.ReplaceAll(r.Cell(col), ",", ""))
		if err != nil {
			numeric = false
		}
		items[i].n = n
	}

	var less func(i, j int) bool
	if numeric {
		less = func(i, j int) bool { return items[i].n < items[j].n }
	} else {
		less = func(i, j int) bool { return items[i].row.Cell(col) < items[j].row.Cell(col) }
	}
	if descending {
		asc := less
		less = func(i, j int) bool { return asc(j, i) }
	}
	sort.SliceStable(items, less)

	out := make([]Row, len(items))
	for i, it := range items {
		out[i] = it.row
	}
	return out
}
