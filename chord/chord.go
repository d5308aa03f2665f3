package chord

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jsphweid/fretchord/constants"
	"github.com/jsphweid/fretchord/model"
	"github.com/jsphweid/fretchord/pitch"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// CreateChordKey is an order-independent key for a set of pitches, e.g.
// "D4-F#4-A4". Duplicates collapse.
func CreateChordKey(c pitch.Chord) string {
	notes := append(pitch.Chord(nil), c.Dedupe()...)
	sort.Slice(notes, func(i, j int) bool {
		return notes[i].Abs() < notes[j].Abs()
	})
	return strings.Join(notes.Strings(), "-")
}

// FromKeys turns MIDI key numbers into a chord, lowest first.
func FromKeys(keys []uint8) pitch.Chord {
	sorted := append([]uint8(nil), keys...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})
	c := make(pitch.Chord, 0, len(sorted))
	for _, k := range sorted {
		c = append(c, pitch.FromKey(k))
	}
	return c
}

// DropRepeats removes chords whose pitch set equals the one right before
// them, keeping the earlier onset.
func DropRepeats(chords []model.TimedChord) []model.TimedChord {
	var res []model.TimedChord
	prev := ""
	for i, tc := range chords {
		key := CreateChordKey(FromKeys(tc.Keys))
		if i > 0 && key == prev {
			continue
		}
		prev = key
		res = append(res, tc)
	}
	return res
}

type reducedEvent struct {
	offset    int64
	isNoteOff bool
	note      uint8
}

func heldKeys(pressed map[uint8]bool) []uint8 {
	keys := make([]uint8, 0, len(pressed))
	for note := range pressed {
		keys = append(keys, note)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i] < keys[j]
	})
	return keys
}

func sameKeys(a, b []uint8) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// GetChords lists, in time order, every distinct set of held notes in s.
// Note starts closer together than constants.ChordOnsetWindowMs count as one
// attack, so a slightly rolled chord comes out once.
func GetChords(s *smf.SMF) (res []model.TimedChord, err error) {
	// smf panics on some malformed tracks
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("chord: reading tracks: %v", r)
		}
	}()

	var reducedEvents []reducedEvent
	for _, events := range s.Tracks {
		var absTicks int64
		for _, event := range events {
			absTicks += int64(event.Delta)
			absTime := s.TimeAt(absTicks)
			msg := midi.Message(event.Message)
			var channel, key, velocity uint8
			switch {
			case msg.GetNoteStart(&channel, &key, &velocity):
				reducedEvents = append(reducedEvents, reducedEvent{offset: absTime, note: key})
			case msg.GetNoteEnd(&channel, &key):
				reducedEvents = append(reducedEvents, reducedEvent{offset: absTime, isNoteOff: true, note: key})
			}
		}
	}

	// smaller offsets first, note offs before note ons at the same time
	sort.SliceStable(reducedEvents, func(i, j int) bool {
		if reducedEvents[i].offset != reducedEvents[j].offset {
			return reducedEvents[i].offset < reducedEvents[j].offset
		}
		return reducedEvents[i].isNoteOff && !reducedEvents[j].isNoteOff
	})

	window := int64(constants.ChordOnsetWindowMs) * 1000
	pressed := make(map[uint8]bool)
	var lastKeys []uint8
	var attackStart int64
	for _, evt := range reducedEvents {
		if evt.isNoteOff {
			delete(pressed, evt.note)
			lastKeys = heldKeys(pressed)
			continue
		}
		pressed[evt.note] = true
		keys := heldKeys(pressed)
		if sameKeys(keys, lastKeys) {
			continue
		}
		lastKeys = keys

		n := len(res)
		if n > 0 && evt.offset-attackStart < window && len(keys) > len(res[n-1].Keys) {
			res[n-1].Keys = keys
			continue
		}
		attackStart = evt.offset
		// stored in millis, micro precision is meaningless for display
		res = append(res, model.TimedChord{OffsetMs: evt.offset / 1000, Keys: keys})
	}
	return res, nil
}
