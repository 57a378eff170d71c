package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/djglass/ed-colony-construction-tracker/internal/export"
	"github.com/djglass/ed-colony-construction-tracker/internal/ocr"
	"github.com/djglass/ed-colony-construction-tracker/internal/progress"
	"github.com/djglass/ed-colony-construction-tracker/internal/tracker"
)

type refreshedMsg struct {
	warnings []ocr.Warning
	err      error
}

type rescanMsg struct{ err error }

type journalChangedMsg struct{}

type exportedMsg struct {
	path string
	err  error
}

// Model is the interactive progress table. It renders whatever the tracker's
// snapshots reconcile to; every data change goes through the tracker first.
type Model struct {
	tracker *tracker.Tracker
	images  []string
	styles  Styles

	filter   progress.Filter
	sortCol  progress.Column
	sortDesc bool
	sorted   bool

	table     table.Model
	exportIn  textinput.Model
	exporting bool

	// watchCh carries journal-change notifications from the fsnotify
	// watcher; nil when watching is disabled.
	watchCh <-chan struct{}

	status   string
	warnings []ocr.Warning
	width    int
	height   int
}

// New builds the model. The first Refresh runs from Init.
func New(tr *tracker.Tracker, images []string, filter progress.Filter, watchCh <-chan struct{}) Model {
	styles := NewStyles()

	columns := []table.Column{
		{Title: "COMMODITY", Width: 34},
		{Title: "DELIVERED", Width: 11},
		{Title: "REQUIRED", Width: 11},
		{Title: "REMAINING", Width: 11},
	}
	tbl := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithStyles(styles.TableStyles()),
	)

	in := textinput.New()
	in.Prompt = "export to: "
	in.CharLimit = 256

	return Model{
		tracker:  tr,
		images:   images,
		styles:   styles,
		filter:   filter,
		table:    tbl,
		exportIn: in,
		watchCh:  watchCh,
		status:   "loading...",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.refreshCmd(), m.waitJournalCmd())
}

func (m Model) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		warnings, err := m.tracker.Refresh(context.Background(), m.images)
		return refreshedMsg{warnings: warnings, err: err}
	}
}

func (m Model) rescanCmd() tea.Cmd {
	return func() tea.Msg {
		return rescanMsg{err: m.tracker.ScanJournal(context.Background())}
	}
}

func (m Model) waitJournalCmd() tea.Cmd {
	if m.watchCh == nil {
		return nil
	}
	ch := m.watchCh
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return journalChangedMsg{}
	}
}

func (m Model) exportCmd(path string) tea.Cmd {
	rows := m.visibleRows()
	return func() tea.Msg {
		return exportedMsg{path: path, err: export.WriteFile(path, rows)}
	}
}

// visibleRows is the filtered, sorted table content in display order.
func (m Model) visibleRows() []progress.Row {
	rows := m.tracker.Rows(m.filter)
	if m.sorted {
		rows = progress.Sort(rows, m.sortCol, m.sortDesc)
	}
	return rows
}

func (m *Model) applyRows() {
	rows := m.visibleRows()
	tableRows := make([]table.Row, len(rows))
	for i, r := range rows {
		tableRows[i] = table.Row{
			r.Cell(progress.ColumnCommodity),
			r.Cell(progress.ColumnDelivered),
			r.Cell(progress.ColumnRequired),
			r.Cell(progress.ColumnRemaining),
		}
	}
	m.table.SetRows(tableRows)

	delivered, required := progress.Totals(rows)
	m.status = fmt.Sprintf("%d commodities | %d/%d delivered | filter: %s%s",
		len(rows), delivered, required, m.filter, m.sortLabel())
}

func (m Model) sortLabel() string {
	if !m.sorted {
		return ""
	}
	dir := "asc"
	if m.sortDesc {
		dir = "desc"
	}
	return fmt.Sprintf(" | sort: %s %s", m.sortCol, dir)
}

// sortBy toggles direction on a repeated column and resets to ascending on a
// new one.
func (m *Model) sortBy(col progress.Column) {
	if m.sorted && m.sortCol == col {
		m.sortDesc = !m.sortDesc
	} else {
		m.sortCol = col
		m.sortDesc = false
	}
	m.sorted = true
	m.applyRows()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(max(3, msg.Height-7))
		return m, nil

	case refreshedMsg:
		m.warnings = msg.warnings
		m.applyRows()
		if msg.err != nil {
			m.status = "journal scan failed: " + msg.err.Error()
		}
		return m, nil

	case journalChangedMsg:
		// Keep listening while the rescan runs.
		return m, tea.Batch(m.rescanCmd(), m.waitJournalCmd())

	case rescanMsg:
		m.applyRows()
		if msg.err != nil {
			m.status = "journal rescan failed: " + msg.err.Error()
		}
		return m, nil

	case exportedMsg:
		if msg.err != nil {
			m.status = "export failed: " + msg.err.Error()
		} else {
			m.status = "exported to " + msg.path
		}
		return m, nil

	case tea.KeyMsg:
		if m.exporting {
			return m.updateExportPrompt(msg)
		}
		return m.updateKeys(msg)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) updateExportPrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.exporting = false
		m.status = "export cancelled"
		return m, nil
	case tea.KeyEnter:
		path := strings.TrimSpace(m.exportIn.Value())
		m.exporting = false
		if path == "" {
			m.status = "export cancelled"
			return m, nil
		}
		return m, m.exportCmd(path)
	}
	var cmd tea.Cmd
	m.exportIn, cmd = m.exportIn.Update(msg)
	return m, cmd
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "a":
		m.filter = progress.FilterAll
		m.applyRows()
		return m, nil
	case "i":
		m.filter = progress.FilterIncomplete
		m.applyRows()
		return m, nil
	case "c":
		m.filter = progress.FilterComplete
		m.applyRows()
		return m, nil
	case "1", "2", "3", "4":
		m.sortBy(progress.Columns[int(msg.String()[0]-'1')])
		return m, nil
	case "r":
		m.status = "rescanning journals..."
		return m, m.rescanCmd()
	case "e":
		m.exporting = true
		m.exportIn.SetValue(defaultExportName(time.Now()))
		m.exportIn.CursorEnd()
		m.exportIn.Focus()
		return m, textinput.Blink
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("ELITE DANGEROUS COLONY CONSTRUCTION TRACKER"))
	sb.WriteString("\n\n")
	sb.WriteString(m.table.View())
	sb.WriteString("\n")

	if len(m.warnings) > 0 {
		sb.WriteString(m.styles.Warning.Render(fmt.Sprintf("%d screenshot(s) unreadable: %s",
			len(m.warnings), m.warnings[0].Path)))
		sb.WriteString("\n")
	}

	if m.exporting {
		sb.WriteString(m.styles.Prompt.Render(m.exportIn.View()))
		sb.WriteString("\n")
	} else {
		sb.WriteString(m.styles.Status.Render(m.status))
		sb.WriteString("\n")
		sb.WriteString(m.styles.Help.Render(
			"a/i/c filter | 1-4 sort column | r rescan | e export | q quit"))
		sb.WriteString("\n")
	}
	return sb.String()
}

func defaultExportName(now time.Time) string {
	return "colony-progress-" + now.Format("20060102-150405") + ".csv"
}

// Run starts the interactive table and blocks until the user quits.
func Run(tr *tracker.Tracker, images []string, filter progress.Filter, watchCh <-chan struct{}) error {
	p := tea.NewProgram(New(tr, images, filter, watchCh), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
