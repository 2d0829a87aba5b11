package theme

import "github.com/charmbracelet/lipgloss/v2"

// Theme centralizes Lip Gloss styles for the reader.
type Theme struct {
	Header   HeaderTheme
	Panel    PanelTheme
	Footer   FooterTheme
	Modal    ModalTheme
	Calendar CalendarTheme
}

// HeaderTheme styles the title line above the entry.
type HeaderTheme struct {
	Title lipgloss.Style
	Day   lipgloss.Style
}

// PanelTheme styles framed panels: the entry body and the calendar.
type PanelTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
}

// FooterTheme groups styles used by the bottom status bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
	Link   lipgloss.Style
}

// ModalTheme styles the jump prompt.
type ModalTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
}

// CalendarTheme styles the date picker grid.
type CalendarTheme struct {
	Header   lipgloss.Style
	Empty    lipgloss.Style
	Entry    lipgloss.Style
	Today    lipgloss.Style
	Selected lipgloss.Style
}

// Default returns the built-in theme.
func Default() Theme {
	return Theme{
		Header: HeaderTheme{
			Title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
			Day:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		},
		Panel: PanelTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(0, 1),
			Title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
			Body:  lipgloss.NewStyle(),
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
			Link:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		},
		Modal: ModalTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(0, 1),
			Title: lipgloss.NewStyle().Bold(true),
		},
		Calendar: CalendarTheme{
			Header:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Bold(true),
			Empty:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Entry:    lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
			Today:    lipgloss.NewStyle().Underline(true),
			Selected: lipgloss.NewStyle().Background(lipgloss.Color("63")).Foreground(lipgloss.Color("0")),
		},
	}
}
