// Package themes holds the lipgloss styles of the interactive browser.
package themes

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/leasetx/internal/format"
	"github.com/Veraticus/leasetx/internal/model"
)

// Theme defines the visual style for the TUI.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Muted         lipgloss.Style
	Selected      lipgloss.Style
	Header        lipgloss.Style
	Modal         lipgloss.Style
	FocusedLabel  lipgloss.Style
	Label         lipgloss.Style
	StatusInfo    lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusPending lipgloss.Style
	Palette       Palette
}

// Palette is the set of colors a theme is built from.
type Palette struct {
	Primary    lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Info       lipgloss.Color
	Background lipgloss.Color
	Foreground lipgloss.Color
	Border     lipgloss.Color
	Muted      lipgloss.Color
	Properties map[model.PropertyType]lipgloss.Color
}

// New derives a theme from a palette.
func New(p Palette) Theme {
	return Theme{
		Palette: p,
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary),
		Subtitle: lipgloss.NewStyle().
			Foreground(p.Muted),
		Normal: lipgloss.NewStyle().
			Foreground(p.Foreground),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Foreground),
		Muted: lipgloss.NewStyle().
			Foreground(p.Muted),
		Selected: lipgloss.NewStyle().
			Background(p.Primary).
			Foreground(p.Background).
			Bold(true),
		Header: lipgloss.NewStyle().
			Bold(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(p.Border),
		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Primary).
			Padding(0, 1),
		FocusedLabel: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary),
		Label: lipgloss.NewStyle().
			Foreground(p.Muted),
		StatusSuccess: lipgloss.NewStyle().
			Foreground(p.Success).
			Bold(true),
		StatusWarning: lipgloss.NewStyle().
			Foreground(p.Warning).
			Bold(true),
		StatusError: lipgloss.NewStyle().
			Foreground(p.Error).
			Bold(true),
		StatusInfo: lipgloss.NewStyle().
			Foreground(p.Info),
		StatusPending: lipgloss.NewStyle().
			Foreground(p.Muted).
			Italic(true),
	}
}

// Default is the default theme.
var Default = New(Palette{
	Primary:    lipgloss.Color("#3b82f6"),
	Success:    lipgloss.Color("#10b981"),
	Warning:    lipgloss.Color("#f59e0b"),
	Error:      lipgloss.Color("#ef4444"),
	Info:       lipgloss.Color("#06b6d4"),
	Background: lipgloss.Color("#1a1a1a"),
	Foreground: lipgloss.Color("#fafafa"),
	Border:     lipgloss.Color("#404040"),
	Muted:      lipgloss.Color("#737373"),
	Properties: map[model.PropertyType]lipgloss.Color{
		model.PropertyApartment: lipgloss.Color("#3b82f6"),
		model.PropertyVilla:     lipgloss.Color("#f59e0b"),
		model.PropertyHouse:     lipgloss.Color("#10b981"),
		model.PropertyOfficetel: lipgloss.Color("#a855f7"),
	},
})

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = New(Palette{
	Primary:    lipgloss.Color("#cba6f7"),
	Success:    lipgloss.Color("#a6e3a1"),
	Warning:    lipgloss.Color("#f9e2af"),
	Error:      lipgloss.Color("#f38ba8"),
	Info:       lipgloss.Color("#89dceb"),
	Background: lipgloss.Color("#1e1e2e"),
	Foreground: lipgloss.Color("#cdd6f4"),
	Border:     lipgloss.Color("#45475a"),
	Muted:      lipgloss.Color("#6c7086"),
	Properties: map[model.PropertyType]lipgloss.Color{
		model.PropertyApartment: lipgloss.Color("#89b4fa"),
		model.PropertyVilla:     lipgloss.Color("#fab387"),
		model.PropertyHouse:     lipgloss.Color("#a6e3a1"),
		model.PropertyOfficetel: lipgloss.Color("#cba6f7"),
	},
})

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin-mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}

// Property renders a property type badge in its color.
func (t Theme) Property(p model.PropertyType) string {
	color, ok := t.Palette.Properties[p]
	if !ok {
		color = t.Palette.Muted
	}
	return lipgloss.NewStyle().Foreground(color).Render(format.Badge(string(p)))
}

// Risk renders a deposit risk grade.
func (t Theme) Risk(r format.Risk) string {
	switch r {
	case format.RiskSafe:
		return t.StatusSuccess.Render(r.String())
	case format.RiskOver:
		return t.StatusError.Render(r.String())
	default:
		return t.Muted.Render(r.String())
	}
}
