// Package sample builds short MIDI sketches of a voicing: the chord struck
// as a block, then rolled upward one note at a time.
package sample

import (
	"fmt"
	"io"
	"os"

	"github.com/jsphweid/fretchord/constants"
	"github.com/jsphweid/fretchord/pitch"
	"github.com/jsphweid/fretchord/util"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const maxKey = 127

// Create lays chord out on a single track. Pitches outside the MIDI key
// range are dropped and reported.
func Create(name string, chord pitch.Chord, bpm float64) (*smf.SMF, pitch.Chord) {
	clock := smf.MetricTicks(constants.MidiTicksPerBeat)
	res := smf.New()
	res.TimeFormat = clock

	var keys []uint8
	var skipped pitch.Chord
	for _, p := range chord {
		k := p.Key()
		if k < 0 || k > maxKey {
			skipped = append(skipped, p)
			continue
		}
		keys = append(keys, uint8(k))
	}

	var track smf.Track
	track.Add(0, smf.MetaTrackSequenceName(name))
	track.Add(0, smf.MetaTempo(bpm))

	ch := uint8(constants.MidiChannel)
	whole := clock.Ticks4th() * 4

	// block chord, one bar
	for _, k := range keys {
		track.Add(0, midi.NoteOn(ch, k, constants.MidiVelocity))
	}
	for i, k := range keys {
		var delta uint32
		if i == 0 {
			delta = whole
		}
		track.Add(delta, midi.NoteOff(ch, k))
	}

	// rolled, an eighth apart, all released together at the end of the bar
	step := clock.Ticks8th()
	used := uint32(0)
	for i, k := range keys {
		var delta uint32
		if i > 0 {
			delta = step
			used += step
		}
		track.Add(delta, midi.NoteOn(ch, k, constants.MidiVelocity))
	}
	rest := whole - util.Min(used, whole)
	for i, k := range keys {
		var delta uint32
		if i == 0 {
			delta = rest
		}
		track.Add(delta, midi.NoteOff(ch, k))
	}

	track.Close(0)
	res.Add(track)
	return res, skipped
}

func Write(w io.Writer, name string, chord pitch.Chord, bpm float64) (pitch.Chord, error) {
	s, skipped := Create(name, chord, bpm)
	if _, err := s.WriteTo(w); err != nil {
		return skipped, fmt.Errorf("sample: write: %w", err)
	}
	return skipped, nil
}

var createFile = func(path string) (io.WriteCloser, error) {
	return os.Create(path)
}

func WriteFile(path, name string, chord pitch.Chord, bpm float64) (skipped pitch.Chord, err error) {
	f, err := createFile(path)
	if err != nil {
		return nil, fmt.Errorf("sample: create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("sample: close %s: %w", path, cerr)
		}
	}()
	return Write(f, name, chord, bpm)
}
