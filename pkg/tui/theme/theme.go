package theme

import "github.com/charmbracelet/lipgloss/v2"

// Theme centralizes Lip Gloss styles for the kiosk and admin screens.
type Theme struct {
	Header  HeaderTheme
	Filter  FilterTheme
	Row     RowTheme
	Footer  FooterTheme
	Overlay OverlayTheme
	Admin   AdminTheme
}

// HeaderTheme styles the clock line.
type HeaderTheme struct {
	Clock lipgloss.Style
	Date  lipgloss.Style
}

// FilterTheme styles the filter bar buttons.
type FilterTheme struct {
	Item   lipgloss.Style
	Active lipgloss.Style
}

// RowTheme styles task rows.
type RowTheme struct {
	Title       lipgloss.Style
	Description lipgloss.Style
	Badge       lipgloss.Style
	Completing  lipgloss.Style
	Done        lipgloss.Style
	Dragged     lipgloss.Style
	Placeholder lipgloss.Style
	SwipeHint   lipgloss.Style
}

// FooterTheme styles the bottom status line.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
	Empty  lipgloss.Style
}

// OverlayTheme styles the full-screen sleep and night surfaces.
type OverlayTheme struct {
	Sleep lipgloss.Style
	Night lipgloss.Style
}

// AdminTheme styles the admin browser.
type AdminTheme struct {
	Title  lipgloss.Style
	Status lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	title := lipgloss.NewStyle().Bold(true)
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	return Theme{
		Header: HeaderTheme{
			Clock: lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
			Date:  muted,
		},
		Filter: FilterTheme{
			Item:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1),
			Active: lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Reverse(true).Padding(0, 1),
		},
		Row: RowTheme{
			Title:       title,
			Description: muted,
			Badge:       lipgloss.NewStyle().Foreground(lipgloss.Color("111")),
			Completing:  muted.Strikethrough(true),
			Done:        muted.Faint(true),
			Dragged:     title.Reverse(true),
			Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
			SwipeHint:   lipgloss.NewStyle().Foreground(lipgloss.Color("78")).Bold(true),
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: muted,
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
			Empty:  muted.Italic(true),
		},
		Overlay: OverlayTheme{
			Sleep: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
			Night: lipgloss.NewStyle().Foreground(lipgloss.Color("234")),
		},
		Admin: AdminTheme{
			Title:  lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
			Status: muted,
		},
	}
}
