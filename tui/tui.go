// Package tui is an interactive fretboard: type a chord, press enter, and the
// board redraws with the placed pitches.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jsphweid/fretchord/fretboard"
	"github.com/jsphweid/fretchord/instrument"
	"github.com/jsphweid/fretchord/pitch"
	"github.com/jsphweid/fretchord/render"
	"github.com/jsphweid/fretchord/session"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFE66D"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C757D"))
)

type Model struct {
	input       textinput.Model
	instruments []string
	current     int
	spread      bool
	policy      fretboard.Policy
	styles      render.Styles

	result *session.Result
	err    error
}

func NewModel(defaultInstrument string) Model {
	ti := textinput.New()
	ti.Placeholder = "D4 F#4 A4"
	ti.Focus()
	ti.CharLimit = 120
	ti.Width = 40

	names := instrument.Names()
	current := 0
	for i, n := range names {
		if n == defaultInstrument {
			current = i
		}
	}

	return Model{
		input:       ti,
		instruments: names,
		current:     current,
		styles:      render.DefaultStyles(),
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Instrument() string {
	return m.instruments[m.current]
}

// recompute replaces the shown result from scratch.
func (m Model) recompute() Model {
	m.result, m.err = nil, nil
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m
	}
	chord, err := pitch.ParseChord(strings.Fields(text))
	if err != nil {
		m.err = err
		return m
	}
	res, err := session.Run(session.Request{
		Instrument: m.Instrument(),
		Chord:      chord,
		Spread:     m.spread,
		Policy:     m.policy,
	})
	if err != nil {
		m.err = err
		return m
	}
	m.result = &res
	return m
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.recompute(), nil
		case tea.KeyTab:
			m.current = (m.current + 1) % len(m.instruments)
			return m.recompute(), nil
		case tea.KeyCtrlS:
			m.spread = !m.spread
			return m.recompute(), nil
		case tea.KeyCtrlP:
			if m.policy == fretboard.PolicyBestFit {
				m.policy = fretboard.PolicyNoteFirst
			} else {
				m.policy = fretboard.PolicyBestFit
			}
			return m.recompute(), nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("fretchord") + "\n\n")
	fmt.Fprintf(&b, "instrument: %s   spread: %v   policy: %s\n\n", m.Instrument(), m.spread, m.policy)
	b.WriteString(m.input.View() + "\n\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render(m.err.Error()) + "\n")
	case m.result != nil:
		r := m.result
		b.WriteString(render.Chord(m.styles, r.Voiced, r.Assignment.Unassigned) + "\n")
		if r.Warning != nil {
			b.WriteString(warningStyle.Render(r.Warning.Error()) + "\n")
		}
		b.WriteString(render.Fretboard(m.styles, r.Instrument, r.Assignment, 0) + "\n")
		b.WriteString(render.Keyboard(m.styles, r.Voiced, r.Assignment.Unassigned) + "\n")
	}

	b.WriteString("\n" + dimStyle.Render("enter: show • tab: instrument • ctrl+s: spread • ctrl+p: policy • esc: quit") + "\n")
	return b.String()
}

func Run(defaultInstrument string) error {
	_, err := tea.NewProgram(NewModel(defaultInstrument)).Run()
	return err
}
