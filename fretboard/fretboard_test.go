package fretboard

import (
	"testing"

	"github.com/jsphweid/fretchord/instrument"
	"github.com/jsphweid/fretchord/pitch"
	"github.com/stretchr/testify/assert"
)

var guitar5 = instrument.FiveStringGuitar

func checkInvariants(t *testing.T, chord pitch.Chord, inst instrument.Instrument, r Result) {
	t.Helper()
	assert := assert.New(t)

	seen := make(map[pitch.Pitch]int)
	for str, pos := range r.Positions {
		assert.Equal(str, pos.String)
		s := inst.Strings[str]
		assert.GreaterOrEqual(pos.Fret, 0)
		assert.Less(pos.Fret, s.Frets)
		assert.Equal(pos.Pitch, pitch.NoteAtFret(s.Open, pos.Fret))
		seen[pos.Pitch]++
	}
	for p, n := range seen {
		assert.Equal(1, n, "pitch %v placed on %d strings", p, n)
		assert.True(chord.Contains(p))
	}
	for _, p := range r.Unassigned {
		assert.False(r.IsAssigned(p))
	}
	assert.Equal(len(chord.Dedupe()), len(r.Positions)+len(r.Unassigned))
}

func TestEmptyChord(t *testing.T) {
	r := Assign(nil, guitar5)

	assert := assert.New(t)
	assert.Empty(r.Positions)
	assert.NotNil(r.Unassigned)
	assert.Empty(r.Unassigned)
}

func TestDuplicatesCollapse(t *testing.T) {
	chord := pitch.MustParseChord("D4", "D4", "A4")
	r := Assign(chord, guitar5)
	checkInvariants(t, chord, guitar5, r)

	assert := assert.New(t)
	assert.Len(r.Positions, 2)
	assert.Equal(Position{String: 0, Fret: 0, Pitch: pitch.MustParse("D4")}, r.Positions[0])
	assert.Equal(Position{String: 1, Fret: 0, Pitch: pitch.MustParse("A4")}, r.Positions[1])
	assert.Empty(r.Unassigned)
}

func TestUnreachablePitch(t *testing.T) {
	r := Assign(pitch.MustParseChord("C1"), guitar5)

	assert := assert.New(t)
	assert.Empty(r.Positions)
	assert.Equal(pitch.MustParseChord("C1"), r.Unassigned)
}

func TestGreedyLeavesPitchesUnplaced(t *testing.T) {
	chord := pitch.MustParseChord("D4", "F#4", "A4", "C#5", "E5")
	r := Assign(chord, guitar5)
	checkInvariants(t, chord, guitar5, r)

	assert := assert.New(t)
	assert.Equal([]Position{
		{String: 0, Fret: 0, Pitch: pitch.MustParse("D4")},
		{String: 1, Fret: 0, Pitch: pitch.MustParse("A4")},
		{String: 2, Fret: 0, Pitch: pitch.MustParse("E5")},
	}, r.Sorted())
	assert.Equal(pitch.MustParseChord("F#4", "C#5"), r.Unassigned)
}

func TestLowestFretWinsOnAString(t *testing.T) {
	// F#4 is fret 4 on D4, A4 is fret 7; the chord lists A4 first
	r := Assign(pitch.MustParseChord("A4", "F#4"), instrument.Instrument{
		Name:    "one",
		Strings: []instrument.String{{Open: pitch.MustParse("D4"), Frets: 14}},
	})

	assert := assert.New(t)
	assert.Equal(Position{String: 0, Fret: 4, Pitch: pitch.MustParse("F#4")}, r.Positions[0])
	assert.Equal(pitch.MustParseChord("A4"), r.Unassigned)
}

func TestEarlierStringsChooseFirst(t *testing.T) {
	// the first string can only sound C4, so E4 falls through to the second
	inst := instrument.Instrument{
		Name: "twin",
		Strings: []instrument.String{
			{Open: pitch.MustParse("C4"), Frets: 1},
			{Open: pitch.MustParse("C4"), Frets: 13},
		},
	}
	r := Assign(pitch.MustParseChord("E4", "C4", "G4"), inst)

	assert := assert.New(t)
	assert.Equal(pitch.MustParse("C4"), r.Positions[0].Pitch)
	assert.Equal(Position{String: 1, Fret: 4, Pitch: pitch.MustParse("E4")}, r.Positions[1])
	assert.Equal(pitch.MustParseChord("G4"), r.Unassigned)
}

func TestUkuleleTriad(t *testing.T) {
	chord := pitch.MustParseChord("C4", "E4", "G4")
	r := Assign(chord, instrument.Ukulele)
	checkInvariants(t, chord, instrument.Ukulele, r)

	assert := assert.New(t)
	assert.Equal([]Position{
		{String: 0, Fret: 0, Pitch: pitch.MustParse("G4")},
		{String: 1, Fret: 0, Pitch: pitch.MustParse("C4")},
		{String: 2, Fret: 0, Pitch: pitch.MustParse("E4")},
	}, r.Sorted())
	assert.Empty(r.Unassigned)
}

func TestSinglePitchLandsOnExactlyOneString(t *testing.T) {
	for _, inst := range []instrument.Instrument{guitar5, instrument.Ukulele} {
		reachable := make(map[pitch.Pitch]bool)
		for i := range inst.Strings {
			for _, p := range inst.Fretboard(i) {
				reachable[p] = true
			}
		}

		for p := range reachable {
			chord := pitch.Chord{p}
			r := Assign(chord, inst)
			checkInvariants(t, chord, inst, r)
			assert.Len(t, r.Positions, 1, "%s on %s", p, inst.Name)
			assert.Empty(t, r.Unassigned)
		}
	}
}

func TestInvariantsHoldForDenseChords(t *testing.T) {
	var chord pitch.Chord
	for k := uint8(55); k < 100; k += 2 {
		chord = append(chord, pitch.FromKey(k))
	}
	for _, policy := range []Policy{PolicyBestFit, PolicyNoteFirst} {
		t.Run(policy.String(), func(t *testing.T) {
			checkInvariants(t, chord, guitar5, AssignWith(policy, chord, guitar5))
			checkInvariants(t, chord, instrument.Ukulele, AssignWith(policy, chord, instrument.Ukulele))
		})
	}
}

func TestPoliciesDiverge(t *testing.T) {
	chord := pitch.MustParseChord("A4", "G4")
	assert := assert.New(t)

	best := AssignWith(PolicyBestFit, chord, instrument.Ukulele)
	assert.Equal([]Position{
		{String: 0, Fret: 0, Pitch: pitch.MustParse("G4")},
		{String: 1, Fret: 9, Pitch: pitch.MustParse("A4")},
	}, best.Sorted())

	first := AssignWith(PolicyNoteFirst, chord, instrument.Ukulele)
	assert.Equal([]Position{
		{String: 0, Fret: 0, Pitch: pitch.MustParse("G4")},
		{String: 3, Fret: 0, Pitch: pitch.MustParse("A4")},
	}, first.Sorted())
}

func TestAssignDoesNotMutateInput(t *testing.T) {
	chord := pitch.MustParseChord("D4", "D4", "F#4")
	Assign(chord, guitar5)
	assert.Equal(t, pitch.MustParseChord("D4", "D4", "F#4"), chord)
}

func TestParsePolicy(t *testing.T) {
	assert := assert.New(t)

	p, err := ParsePolicy("")
	assert.NoError(err)
	assert.Equal(PolicyBestFit, p)

	p, err = ParsePolicy("note-first")
	assert.NoError(err)
	assert.Equal(PolicyNoteFirst, p)

	_, err = ParsePolicy("optimal")
	assert.ErrorIs(err, ErrUnknownPolicy)
}
