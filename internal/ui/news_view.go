package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-hora/internal/state"
)

// NewsModel lists market headlines.
type NewsModel struct {
	width    int
	height   int
	offset   int
	snapshot state.Snapshot
}

// NewNewsModel creates a new news view.
func NewNewsModel() NewsModel {
	return NewsModel{}
}

// SetSize updates the viewport size.
func (m NewsModel) SetSize(width, height int) NewsModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates the model with new data.
func (m NewsModel) UpdateData(snapshot state.Snapshot) NewsModel {
	m.snapshot = snapshot
	if m.offset >= len(snapshot.News) {
		m.offset = 0
	}
	return m
}

// Update handles messages.
func (m NewsModel) Update(msg tea.Msg) (NewsModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "up", "k":
			if m.offset > 0 {
				m.offset--
			}
		case "down", "j":
			if m.offset < len(m.snapshot.News)-1 {
				m.offset++
			}
		}
	}
	return m, nil
}

// View renders the headlines.
func (m NewsModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Market News"))
	if !m.snapshot.NewsFetched.IsZero() {
		b.WriteString(dimStyle.Render("  updated " + m.snapshot.NewsFetched.Format("15:04:05")))
	}
	b.WriteString("\n\n")

	if m.snapshot.NewsError != nil {
		b.WriteString(errorStyle.Render(truncate(m.snapshot.NewsError.Error(), max(m.width-4, 40))))
		b.WriteString("\n\n")
	}

	if len(m.snapshot.News) == 0 {
		b.WriteString(mutedStyle.Render("  Fetching headlines..."))
		b.WriteString("\n")
		return b.String()
	}

	titleWidth := 80
	if m.width > 24 {
		titleWidth = m.width - 22
	}

	visible := m.snapshot.News[m.offset:]
	if m.height > 4 && len(visible) > (m.height-4)/2 {
		visible = visible[:(m.height-4)/2]
	}
	for _, item := range visible {
		b.WriteString(fmt.Sprintf("  %s %s\n",
			tagStyle.Render(cell(item.Source, 14)),
			rowStyle.Render(truncate(item.Title, titleWidth))))
		if item.Link != "" && item.Link != "#" {
			b.WriteString("    " + dimStyle.Render(truncate(item.Link, titleWidth+14)) + "\n")
		}
	}
	return b.String()
}
