// Package ui renders the delivery progress table in the terminal, styled
// after the in-game HUD: amber on black.
package ui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// HUD color palette.
var (
	Amber      = lipgloss.Color("#FFA500")
	AmberDeep  = lipgloss.Color("#FF8C00")
	Background = lipgloss.Color("#000000")
	Grey       = lipgloss.Color("#555555")
	GreyLight  = lipgloss.Color("#999999")
	Red        = lipgloss.Color("#E53935")
	Green      = lipgloss.Color("#8BC34A")
)

// Styles holds every lipgloss style the tracker UI uses.
type Styles struct {
	Title   lipgloss.Style
	Header  lipgloss.Style
	Body    lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Status  lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style
	Help    lipgloss.Style
	Prompt  lipgloss.Style
}

// NewStyles builds the HUD styles.
func NewStyles() Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Foreground(Background).Background(Amber).Bold(true).Padding(0, 1),
		Header:  lipgloss.NewStyle().Foreground(Amber).Bold(true),
		Body:    lipgloss.NewStyle().Foreground(Amber),
		Bold:    lipgloss.NewStyle().Foreground(Amber).Bold(true),
		Muted:   lipgloss.NewStyle().Foreground(Grey),
		Status:  lipgloss.NewStyle().Foreground(GreyLight),
		Warning: lipgloss.NewStyle().Foreground(Red),
		Success: lipgloss.NewStyle().Foreground(Green),
		Help:    lipgloss.NewStyle().Foreground(Grey),
		Prompt:  lipgloss.NewStyle().Foreground(AmberDeep).Bold(true),
	}
}

// TableStyles adapts the palette to the bubbles table widget.
func (s Styles) TableStyles() table.Styles {
	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		Foreground(Background).
		Background(Amber).
		Bold(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(Grey).
		BorderBottom(true)
	ts.Cell = ts.Cell.Foreground(Amber)
	ts.Selected = ts.Selected.
		Foreground(Amber).
		Background(lipgloss.Color("#333333")).
		Bold(true)
	return ts
}
