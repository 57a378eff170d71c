package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/djglass/ed-colony-construction-tracker/internal/progress"
)

// RenderTextTable renders progress rows as a plain-terminal table for
// one-shot output. Numeric columns are right-aligned; the commodity column
// grows to fit its widest name.
func RenderTextTable(rows []progress.Row, styles Styles) string {
	headers := make([]string, len(progress.Columns))
	widths := make([]int, len(progress.Columns))
	for i, col := range progress.Columns {
		headers[i] = strings.ToUpper(col.String())
		widths[i] = lipgloss.Width(headers[i])
	}
	for _, r := range rows {
		for i, col := range progress.Columns {
			if w := lipgloss.Width(r.Cell(col)); w > widths[i] {
				widths[i] = w
			}
		}
	}

	headerStyle := styles.Header.Padding(0, 1)
	cellStyle := styles.Body.Padding(0, 1)
	numStyle := cellStyle.Align(lipgloss.Right)
	sep := styles.Muted.Render("|")

	var sb strings.Builder
	for i, h := range headers {
		sb.WriteString(headerStyle.Width(widths[i] + 2).Render(h))
		if i < len(headers)-1 {
			sb.WriteString(sep)
		}
	}
	sb.WriteString("\n")
	sb.WriteString(styles.Muted.Render(strings.Repeat("-", totalWidth(widths))))
	sb.WriteString("\n")

	for _, r := range rows {
		for i, col := range progress.Columns {
			style := cellStyle
			if col != progress.ColumnCommodity {
				style = numStyle
			}
			sb.WriteString(style.Width(widths[i] + 2).Render(r.Cell(col)))
			if i < len(progress.Columns)-1 {
				sb.WriteString(sep)
			}
		}
		sb.WriteString("\n")
	}

	delivered, required := progress.Totals(rows)
	sb.WriteString(styles.Status.Render(
		strconv.Itoa(len(rows)) + " commodities, " +
			strconv.Itoa(delivered) + "/" + strconv.Itoa(required) + " delivered"))
	sb.WriteString("\n")
	return sb.String()
}

func totalWidth(widths []int) int {
	// Cell padding plus one separator between columns.
	total := len(widths) - 1
	for _, w := range widths {
		total += w + 2
	}
	return total
}
