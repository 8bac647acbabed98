package ui

import "github.com/charmbracelet/lipgloss"

type Styles struct {
	Header        lipgloss.Style
	Subtitle      lipgloss.Style
	List          lipgloss.Style
	Footer        lipgloss.Style
	Accent        lipgloss.Style
	Error         lipgloss.Style
	Thinking      lipgloss.Style
	Status        lipgloss.Style
	StatusRight   lipgloss.Style
	ChatContainer lipgloss.Style
	Subtle        lipgloss.Style
	TableBorder   lipgloss.Style
	TableHeader   lipgloss.Style
	TableCell     lipgloss.Style
	You           lipgloss.Style
}

// NewStyles returns the advisor palette.
func NewStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#555")).
			Faint(true).
			Padding(0, 1),

		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#999999")).
			Padding(0, 1),

		List: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#6CC551")),

		Footer: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#777777")).
			Faint(true),

		Accent: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6CC551")),

		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5C5C")).
			Bold(true),

		Thinking: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3DDC97")),

		Status: lipgloss.NewStyle().
			Background(lipgloss.Color("#6CC551")).
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(0, 1),

		StatusRight: lipgloss.NewStyle().
			Inherit(lipgloss.NewStyle().
				Background(lipgloss.Color("#6CC551")).
				Foreground(lipgloss.Color("#FFFFFF")).
				Padding(0, 1)).Align(lipgloss.Right),

		ChatContainer: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#6CC551")).Padding(0, 1),

		Subtle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#999999")),

		TableBorder: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6CC551")),

		TableHeader: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F2C14E")).
			Bold(true).
			Padding(0, 1),

		TableCell: lipgloss.NewStyle().
			Padding(0, 1),

		You: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F2C14E")).
			Bold(true),
	}
}
