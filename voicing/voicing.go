// Package voicing expands compact triads and seventh chords into wider,
// fixed-pattern voicings.
package voicing

import (
	"errors"
	"fmt"

	"github.com/jsphweid/fretchord/pitch"
)

// ErrUnsupportedSize is a warning, not a failure: the chord is handed back
// unchanged next to it.
var ErrUnsupportedSize = errors.New("voicing: unsupported chord size")

// Func turns a chord into a voicing.
type Func func(pitch.Chord) (pitch.Chord, error)

func unsupported(chord pitch.Chord) (pitch.Chord, error) {
	return chord, fmt.Errorf("%w (%d)", ErrUnsupportedSize, len(chord))
}

// Spread is the two-hand keyboard spread. The left hand keeps the root and
// fifth; the right hand plays the rest an octave up with the root doubled two
// octaves up.
//
//	[i1 i2 i3]    -> [i1 i3 i2+1 i3+1 i1+2]
//	[i1 i2 i3 i4] -> [i1 i3 i2+1 i4+1 i3+1 i1+2]
//
// Output order is significant.
func Spread(chord pitch.Chord) (pitch.Chord, error) {
	switch len(chord) {
	case 3:
		i1, i2, i3 := chord[0], chord[1], chord[2]
		return pitch.Chord{
			i1,
			i3,
			i2.Shift(1),
			i3.Shift(1),
			i1.Shift(2),
		}, nil
	case 4:
		i1, i2, i3, i4 := chord[0], chord[1], chord[2], chord[3]
		return pitch.Chord{
			i1,
			i3,
			i2.Shift(1),
			i4.Shift(1),
			i3.Shift(1),
			i1.Shift(2),
		}, nil
	}
	return unsupported(chord)
}

// SpreadUkulele fills four strings: a triad gets its root repeated an octave
// up, a four-note chord is played as is.
func SpreadUkulele(chord pitch.Chord) (pitch.Chord, error) {
	switch len(chord) {
	case 3:
		return pitch.Chord{chord[0], chord[1], chord[2], chord[0].Shift(1)}, nil
	case 4:
		return append(pitch.Chord(nil), chord...), nil
	}
	return unsupported(chord)
}

// SpreadText is Spread over pitch text, failing fast on malformed input.
func SpreadText(texts []string) ([]string, error) {
	chord, err := pitch.ParseChord(texts)
	if err != nil {
		return nil, err
	}
	res, err := Spread(chord)
	return res.Strings(), err
}
