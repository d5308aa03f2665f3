// Package pitch does the note arithmetic everything else is built on: pitch
// classes, octaves, fret offsets and octave shifts.
package pitch

import (
	"fmt"
	"strconv"
	"strings"
)

type Class uint8

const (
	C = Class(iota)
	CSharp
	D
	DSharp
	E
	F
	FSharp
	G
	GSharp
	A
	ASharp
	B
)

const SemitonesPerOctave = 12

var chromatic = [SemitonesPerOctave]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

func (c Class) String() string {
	if int(c) >= len(chromatic) {
		return fmt.Sprintf("Class(%d)", uint8(c))
	}
	return chromatic[c]
}

// SemitoneIndex is the position of c in the chromatic scale starting at C.
func SemitoneIndex(c Class) int {
	return int(c) % SemitonesPerOctave
}

func classFromName(name string) (Class, bool) {
	for i, n := range chromatic {
		if n == name {
			return Class(i), true
		}
	}
	return 0, false
}

// Pitch is a pitch class in a given octave, e.g. C#4.
type Pitch struct {
	Class  Class
	Octave int
}

func New(c Class, octave int) Pitch {
	return Pitch{Class: c, Octave: octave}
}

func (p Pitch) String() string {
	return p.Class.String() + strconv.Itoa(p.Octave)
}

// Abs orders pitches absolutely: octave*12 + semitone index.
func (p Pitch) Abs() int {
	return p.Octave*SemitonesPerOctave + SemitoneIndex(p.Class)
}

// Shift moves p by delta octaves, keeping its class.
func (p Pitch) Shift(delta int) Pitch {
	return Pitch{Class: p.Class, Octave: p.Octave + delta}
}

// Key is the MIDI key number of p, with C4 = 60.
func (p Pitch) Key() int {
	return p.Abs() + SemitonesPerOctave
}

// FromKey is the inverse of Key.
func FromKey(key uint8) Pitch {
	return fromAbs(int(key) - SemitonesPerOctave)
}

func fromAbs(abs int) Pitch {
	octave := floorDiv(abs, SemitonesPerOctave)
	return Pitch{
		Class:  Class(abs - octave*SemitonesPerOctave),
		Octave: octave,
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// NoteAtFret is the pitch sounded by a string tuned to open when stopped at
// fret. Fret 0 is the open string.
func NoteAtFret(open Pitch, fret int) Pitch {
	if fret < 0 {
		panic(fmt.Sprintf("pitch: negative fret %d", fret))
	}
	total := SemitoneIndex(open.Class) + fret
	return Pitch{
		Class:  Class(total % SemitonesPerOctave),
		Octave: open.Octave + total/SemitonesPerOctave,
	}
}

// ParseError reports text that is not a sharp-spelled pitch class followed
// by an integer octave.
type ParseError struct {
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("pitch: cannot parse %q: %s", e.Text, e.Reason)
}

// Parse reads the canonical "<class><octave>" form, e.g. "F#4" or "C-1".
// Anything String would not print is rejected: surrounding space, a plus
// sign, leading zeros or "-0".
func Parse(text string) (Pitch, error) {
	if text == "" {
		return Pitch{}, &ParseError{Text: text, Reason: "empty"}
	}

	// class is one letter plus an optional sharp
	n := 1
	if len(text) > 1 && text[1] == '#' {
		n = 2
	}
	class, ok := classFromName(text[:n])
	if !ok {
		return Pitch{}, &ParseError{Text: text, Reason: "unknown pitch class " + strconv.Quote(text[:n])}
	}

	rest := text[n:]
	if rest == "" {
		return Pitch{}, &ParseError{Text: text, Reason: "missing octave"}
	}
	if !canonicalInt(rest) {
		return Pitch{}, &ParseError{Text: text, Reason: "octave " + strconv.Quote(rest) + " is not a plain integer"}
	}
	octave, err := strconv.Atoi(rest)
	if err != nil {
		return Pitch{}, &ParseError{Text: text, Reason: "octave " + strconv.Quote(rest) + " is out of range"}
	}
	return Pitch{Class: class, Octave: octave}, nil
}

// canonicalInt matches what strconv.Itoa prints.
func canonicalInt(s string) bool {
	digits := strings.TrimPrefix(s, "-")
	if digits == "" {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	if digits[0] == '0' {
		return s == "0"
	}
	return true
}

// MustParse is Parse for literals known to be valid.
func MustParse(text string) Pitch {
	p, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return p
}

// ShiftOctave parses text and moves it by delta octaves.
func ShiftOctave(text string, delta int) (Pitch, error) {
	p, err := Parse(text)
	if err != nil {
		return Pitch{}, err
	}
	return p.Shift(delta), nil
}

func (p Pitch) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Pitch) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
