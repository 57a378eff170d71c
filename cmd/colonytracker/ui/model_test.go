package ui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/djglass/ed-colony-construction-tracker/internal/journal"
	"github.com/djglass/ed-colony-construction-tracker/internal/progress"
	"github.com/djglass/ed-colony-construction-tracker/internal/tracker"
)

type fakeRecognizer map[string]string

func (f fakeRecognizer) Recognize(_ context.Context, path string) (string, error) {
	text, ok := f[path]
	if !ok {
		return "", errors.New("unreadable image")
	}
	return text, nil
}

// testModel builds a model over a tracker with one complete and one
// incomplete commodity, already refreshed.
func testModel(t *testing.T) Model {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "Journal.01.log"),
		[]byte(`{"event":"MarketSell","Type":"biowaste","Count":50}`+"\n"),
		0644))

	rec := fakeRecognizer{"shot.png": "Biowaste\n50\nTritium\n2,500\n"}
	tr := tracker.New(rec, journal.NewScanner(dir, zap.NewNop()), zap.NewNop())
	_, err := tr.Refresh(context.Background(), []string{"shot.png"})
	require.NoError(t, err)

	m := New(tr, []string{"shot.png"}, progress.FilterAll, nil)
	m.applyRows()
	return m
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func TestFilterKeys(t *testing.T) {
	m := testModel(t)
	assert.Len(t, m.visibleRows(), 2)

	m = update(t, m, key("i"))
	require.Len(t, m.visibleRows(), 1)
	assert.Equal(t, "Tritium", string(m.visibleRows()[0].Commodity))

	m = update(t, m, key("c"))
	require.Len(t, m.visibleRows(), 1)
	assert.Equal(t, "Biowaste", string(m.visibleRows()[0].Commodity))

	m = update(t, m, key("a"))
	assert.Len(t, m.visibleRows(), 2)
}

func TestSortKeysToggleDirection(t *testing.T) {
	m := testModel(t)

	// "3" sorts by required ascending.
	m = update(t, m, key("3"))
	rows := m.visibleRows()
	require.Len(t, rows, 2)
	assert.Equal(t, "Biowaste", string(rows[0].Commodity))

	// Same column again reverses.
	m = update(t, m, key("3"))
	rows = m.visibleRows()
	assert.Equal(t, "Tritium", string(rows[0].Commodity))

	// A different column resets to ascending.
	m = update(t, m, key("1"))
	assert.False(t, m.sortDesc)
	assert.Equal(t, progress.ColumnCommodity, m.sortCol)
}

func TestExportPrompt(t *testing.T) {
	m := testModel(t)

	m = update(t, m, key("e"))
	assert.True(t, m.exporting)
	assert.Contains(t, m.exportIn.Value(), ".csv")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.exporting)
	assert.Equal(t, "export cancelled", m.status)
}

func TestExportWritesVisibleRows(t *testing.T) {
	m := testModel(t)
	m = update(t, m, key("i")) // only Tritium visible

	path := filepath.Join(t.TempDir(), "out.csv")
	cmd := m.exportCmd(path)
	msg, ok := cmd().(exportedMsg)
	require.True(t, ok)
	require.NoError(t, msg.err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Tritium,600,2500,1900")
	assert.NotContains(t, string(data), "Biowaste")
}

func TestQuitKey(t *testing.T) {
	m := testModel(t)
	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestDefaultExportName(t *testing.T) {
	now := time.Date(2026, 8, 23, 14, 5, 6, 0, time.UTC)
	assert.Equal(t, "colony-progress-20260823-140506.csv", defaultExportName(now))
}
