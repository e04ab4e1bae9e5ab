package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// BgStyle renders segments on a fixed background color. lipgloss emits a
// reset after every styled run, so unstyled spaces between runs would show
// the terminal background; BgStyle paints them too.
type BgStyle struct {
	bg   lipgloss.Color
	fill lipgloss.Style
}

func NewBgStyle(bgColor string) BgStyle {
	bg := lipgloss.Color(bgColor)
	return BgStyle{bg: bg, fill: lipgloss.NewStyle().Background(bg)}
}

// Render applies style on the background, word by word, so interior
// spaces keep the background as well.
func (b BgStyle) Render(text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	style = style.Background(b.bg)
	var sb strings.Builder
	for i, word := range strings.Split(text, " ") {
		if i > 0 {
			sb.WriteString(b.Space())
		}
		if word != "" {
			sb.WriteString(style.Render(word))
		}
	}
	return sb.String()
}

func (b BgStyle) Space() string { return b.Spaces(1) }

func (b BgStyle) Spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return b.fill.Render(strings.Repeat(" ", n))
}

// Sep renders a literal separator on the background.
func (b BgStyle) Sep(sep string) string {
	return b.fill.Render(sep)
}

func (b BgStyle) Join(parts []string, sep string) string {
	return strings.Join(parts, b.Sep(sep))
}

func (b BgStyle) Color() lipgloss.Color { return b.bg }
