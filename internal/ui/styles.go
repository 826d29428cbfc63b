package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-hora/internal/engine"
	"github.com/litescript/ls-hora/internal/jyotish"
	"github.com/litescript/ls-hora/internal/market"
)

// Palette
var (
	colorGreen  = lipgloss.Color("#00FFA3")
	colorGold   = lipgloss.Color("#FFD700")
	colorRed    = lipgloss.Color("#FF453A")
	colorOrange = lipgloss.Color("#FEAE00")
	colorMuted  = lipgloss.Color("#888888")
	colorDim    = lipgloss.Color("#444444")
	colorAccent = lipgloss.Color("#FF9933")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57"))

	pastRowStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	mutedStyle = lipgloss.NewStyle().Foreground(colorMuted)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	errorStyle = lipgloss.NewStyle().
			Foreground(colorRed)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1).
			Width(26)

	goodStyle    = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	badStyle     = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	tagStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#000000")).Background(colorGold).Bold(true).Padding(0, 1)
	neutralStyle = lipgloss.NewStyle().Foreground(colorMuted)
)

// statusColor returns the text colour for a row status.
func statusColor(k engine.StatusKind) lipgloss.Color {
	switch k {
	case engine.StatusBest:
		return colorGold
	case engine.StatusAvoid, engine.StatusRahu:
		return colorRed
	case engine.StatusPreOpen:
		return colorOrange
	default:
		return colorGreen
	}
}

// luckStyle returns the badge style for a compatibility result.
func luckStyle(l jyotish.Luck) lipgloss.Style {
	switch l.Score {
	case jyotish.ScoreFavorable:
		return goodStyle
	case jyotish.ScoreUnfavorable:
		return badStyle
	default:
		return neutralStyle
	}
}

func signalStyle(s market.Signal) lipgloss.Style {
	if s == market.SignalHighProbability {
		return lipgloss.NewStyle().Foreground(colorGold).Bold(true)
	}
	return badStyle
}

// cell pads s to width terminal cells, truncating when longer.
func cell(s string, width int) string {
	w := lipgloss.Width(s)
	if w > width {
		return truncate(s, width)
	}
	return s + strings.Repeat(" ", width-w)
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
