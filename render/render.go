// Package render draws assignments as text: one row per string, one cell per
// fret, placed pitches in brackets. Colors come from lipgloss and disappear
// when the output is not a terminal.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jsphweid/fretchord/fretboard"
	"github.com/jsphweid/fretchord/instrument"
	"github.com/jsphweid/fretchord/pitch"
	"github.com/jsphweid/fretchord/util"
)

const (
	cellWidth = 6
	keyWidth  = 4
)

type Styles struct {
	Cell       lipgloss.Style
	Placed     lipgloss.Style
	Label      lipgloss.Style
	Header     lipgloss.Style
	Unassigned lipgloss.Style
	Frame      lipgloss.Style

	WhiteKey lipgloss.Style
	BlackKey lipgloss.Style
	Pressed  lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Cell:       lipgloss.NewStyle().Width(cellWidth).Align(lipgloss.Center).Foreground(lipgloss.Color("245")),
		Placed:     lipgloss.NewStyle().Width(cellWidth).Align(lipgloss.Center).Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("220")),
		Label:      lipgloss.NewStyle().Width(cellWidth).Bold(true),
		Header:     lipgloss.NewStyle().Width(cellWidth).Align(lipgloss.Center).Faint(true),
		Unassigned: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		Frame:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),

		WhiteKey: lipgloss.NewStyle().Width(keyWidth).Align(lipgloss.Center).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("255")),
		BlackKey: lipgloss.NewStyle().Width(keyWidth).Align(lipgloss.Center).Foreground(lipgloss.Color("255")).Background(lipgloss.Color("236")),
		Pressed:  lipgloss.NewStyle().Width(keyWidth).Align(lipgloss.Center).Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("220")),
	}
}

// Fretboard draws inst with the positions of r highlighted. maxFrets limits
// how many frets are shown; 0 shows them all.
func Fretboard(st Styles, inst instrument.Instrument, r fretboard.Result, maxFrets int) string {
	frets := inst.MaxFrets()
	if maxFrets > 0 {
		frets = util.Min(frets, maxFrets)
	}

	header := []string{st.Label.Render("")}
	for f := 0; f < frets; f++ {
		header = append(header, st.Header.Render(fmt.Sprint(f)))
	}
	rows := []string{lipgloss.JoinHorizontal(lipgloss.Top, header...)}

	for i := range inst.Strings {
		pos, placed := r.At(i)
		cells := []string{st.Label.Render(inst.Strings[i].Open.String())}
		for f, p := range inst.Fretboard(i) {
			if f >= frets {
				break
			}
			if placed && pos.Fret == f {
				cells = append(cells, st.Placed.Render("["+p.String()+"]"))
				continue
			}
			cells = append(cells, st.Cell.Render(p.String()))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	return st.Frame.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// Chord lists the voiced chord in order, marking pitches that found no
// string with a leading "!".
func Chord(st Styles, chord pitch.Chord, unassigned pitch.Chord) string {
	parts := make([]string, len(chord))
	for i, p := range chord {
		if unassigned.Contains(p) {
			parts[i] = st.Unassigned.Render("!" + p.String())
			continue
		}
		parts[i] = p.String()
	}
	return strings.Join(parts, ", ")
}

// Summary is a plain listing of positions, one per line, for logs and
// non-terminal output.
func Summary(inst instrument.Instrument, r fretboard.Result) string {
	var b strings.Builder
	for _, pos := range r.Sorted() {
		fmt.Fprintf(&b, "string %d (%s): fret %d -> %s\n", pos.String, inst.Strings[pos.String].Open, pos.Fret, pos.Pitch)
	}
	if len(r.Unassigned) > 0 {
		fmt.Fprintf(&b, "unassigned: %s\n", r.Unassigned)
	}
	return b.String()
}

// Keyboard draws a one-row piano strip covering every octave the chord
// touches. Placed pitches are bracketed and pitches that found no string get
// a leading "!" in the unassigned style, so the strip reads without color.
func Keyboard(st Styles, chord pitch.Chord, unassigned pitch.Chord) string {
	all := append(append(pitch.Chord(nil), chord...), unassigned...)
	if len(all) == 0 {
		return ""
	}
	lo, hi := all[0].Octave, all[0].Octave
	for _, p := range all {
		lo = util.Min(lo, p.Octave)
		if p.Octave > hi {
			hi = p.Octave
		}
	}

	missing := st.Unassigned.Width(keyWidth).Align(lipgloss.Center)
	var keys []string
	for o := lo; o <= hi; o++ {
		for c := pitch.C; c <= pitch.B; c++ {
			p := pitch.New(c, o)
			name := c.String()
			switch {
			case unassigned.Contains(p):
				keys = append(keys, missing.Render("!"+name))
			case chord.Contains(p):
				keys = append(keys, st.Pressed.Render("["+name+"]"))
			case strings.HasSuffix(name, "#"):
				keys = append(keys, st.BlackKey.Render(name))
			default:
				keys = append(keys, st.WhiteKey.Render(name))
			}
		}
	}
	label := fmt.Sprintf("C%d-B%d ", lo, hi)
	return label + lipgloss.JoinHorizontal(lipgloss.Top, keys...)
}
