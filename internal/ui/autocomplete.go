package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/farefinder/internal/flights"
	"github.com/five82/farefinder/internal/search"
	"github.com/five82/farefinder/internal/state"
)

// maxSuggestions caps the dropdown height.
const maxSuggestions = 6

// airportField is a text input backed by its own controller, so origin and
// destination suggestions never overwrite each other.
type airportField struct {
	input    textinput.Model
	ctrl     *search.Controller
	selected *flights.Airport
	snap     state.Snapshot
	cursor   int
	open     bool
}

func newAirportField(placeholder string, ctrl *search.Controller) airportField {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 64
	ti.Width = 32
	ti.Prompt = ""
	return airportField{input: ti, ctrl: ctrl}
}

func (f *airportField) focus() tea.Cmd {
	return f.input.Focus()
}

func (f *airportField) blur() {
	f.input.Blur()
	f.open = false
}

// update feeds msg to the input. An edit invalidates the selection and
// queues a debounced lookup; clearing the text drops the suggestions at once.
func (f *airportField) update(ctx context.Context, msg tea.Msg) tea.Cmd {
	before := f.input.Value()
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	after := f.input.Value()
	if after == before || f.ctrl == nil {
		return cmd
	}

	f.cursor = 0
	if f.selected != nil && after != f.selected.Label() {
		f.selected = nil
	}
	if strings.TrimSpace(after) == "" {
		f.ctrl.CancelPending()
		f.ctrl.SearchAirports(ctx, "")
		f.open = false
		return cmd
	}
	f.ctrl.QueueAirportSearch(ctx, after)
	f.open = true
	return cmd
}

// suggestions returns the visible suggestion list.
func (f airportField) suggestions() []flights.Airport {
	if !f.open {
		return nil
	}
	if len(f.snap.Airports) > maxSuggestions {
		return f.snap.Airports[:maxSuggestions]
	}
	return f.snap.Airports
}

func (f *airportField) moveCursor(delta int) {
	n := len(f.suggestions())
	if n == 0 {
		return
	}
	f.cursor = (f.cursor + delta + n) % n
}

// choose selects the highlighted suggestion. It reports false when the
// dropdown is closed or empty.
func (f *airportField) choose() bool {
	list := f.suggestions()
	if len(list) == 0 {
		return false
	}
	if f.cursor >= len(list) {
		f.cursor = 0
	}
	airport := list[f.cursor]
	f.set(&airport)
	return true
}

// set replaces the selection without issuing a lookup.
func (f *airportField) set(a *flights.Airport) {
	if f.ctrl != nil {
		f.ctrl.CancelPending()
	}
	f.selected = a
	f.open = false
	f.cursor = 0
	if a == nil {
		f.input.SetValue("")
		return
	}
	f.input.SetValue(a.Label())
	f.input.CursorEnd()
}

func (f airportField) loading() bool {
	return f.snap.Loading
}

// view renders the input and, when open, the dropdown below it.
func (f airportField) view(m Model, bgColor string) string {
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)

	line := f.input.View()
	switch {
	case f.selected != nil:
		line += bg.Space() + bg.Render("✓", styles.SuccessText)
	case f.loading():
		line += bg.Space() + m.spinner.View()
	}

	list := f.suggestions()
	if len(list) == 0 {
		if f.open && !f.loading() && len([]rune(f.input.Value())) >= search.MinQueryLength {
			return line + "\n" + bg.Render("No airports found", styles.FaintText)
		}
		return line
	}

	rows := []string{line}
	for i, a := range list {
		label := a.Label()
		if sub := strings.TrimSpace(a.Presentation.Subtitle); sub != "" {
			label += " · " + sub
		}
		label = truncate(label, 48)
		if i == f.cursor {
			rows = append(rows, lipgloss.NewStyle().
				Background(lipgloss.Color(m.theme.SelectionBg)).
				Foreground(lipgloss.Color(m.theme.SelectionText)).
				Render("› "+label))
			continue
		}
		rows = append(rows, bg.Render("  "+label, styles.MutedText))
	}
	return strings.Join(rows, "\n")
}
