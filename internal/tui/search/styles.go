package search

import "github.com/charmbracelet/lipgloss"

var (
	appStyle = lipgloss.NewStyle().Padding(1, 2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFDF5")).
			Background(lipgloss.Color("#0AF")).
			Bold(true).
			Padding(0, 1)

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#767676", Dark: "#9B9B9B"})

	suggestionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#555", Dark: "#CCC"}).
			PaddingLeft(2)

	activeSuggestionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#0AF")).
				Bold(true).
				PaddingLeft(1).
				Border(lipgloss.NormalBorder(), false, false, false, true).
				BorderForeground(lipgloss.Color("#0AF"))

	correctionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E0A800")).
			Bold(true)

	resultStyle = lipgloss.NewStyle().PaddingLeft(2)

	selectedResultStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#0AF")).
				PaddingLeft(1).
				Border(lipgloss.NormalBorder(), false, false, false, true).
				BorderForeground(lipgloss.Color("#0AF"))

	scoreStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"})

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#0AF", Dark: "#0AF"})

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F87"))
)
