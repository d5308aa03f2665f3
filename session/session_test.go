package session

import (
	"errors"
	"testing"

	"github.com/jsphweid/fretchord/fretboard"
	"github.com/jsphweid/fretchord/instrument"
	"github.com/jsphweid/fretchord/model"
	"github.com/jsphweid/fretchord/pitch"
	"github.com/jsphweid/fretchord/voicing"
	"github.com/stretchr/testify/assert"
)

func TestRunSpreadsThenAssigns(t *testing.T) {
	res, err := Run(Request{
		Instrument: instrument.GuitarName,
		Chord:      pitch.MustParseChord("D4", "F#4", "A4"),
		Spread:     true,
	})

	assert := assert.New(t)
	assert.NoError(err)
	assert.NoError(res.Warning)
	assert.Equal(pitch.MustParseChord("D4", "A4", "F#5", "A5", "D6"), res.Voiced)
	assert.Equal(pitch.MustParseChord("D4", "A4", "F#5", "A5", "D6"), res.Assignment.Assigned())
	assert.Empty(res.Assignment.Unassigned)
}

func TestRunKeepsUnsupportedSizeAsWarning(t *testing.T) {
	chord := pitch.MustParseChord("D4", "A4")
	res, err := Run(Request{Instrument: instrument.GuitarName, Chord: chord, Spread: true})

	assert := assert.New(t)
	assert.NoError(err)
	assert.True(errors.Is(res.Warning, voicing.ErrUnsupportedSize))
	assert.Equal(chord, res.Voiced)
	assert.Len(res.Assignment.Positions, 2)

	resp := res.Response("id-1")
	assert.Contains(resp.Warning, "unsupported chord size")
}

func TestRunUnknownInstrument(t *testing.T) {
	_, err := Run(Request{Instrument: "theremin"})
	assert.ErrorIs(t, err, instrument.ErrNotFound)
}

func TestParseRequest(t *testing.T) {
	assert := assert.New(t)

	req, err := ParseRequest(model.AssignRequestBody{
		Instrument: "ukulele",
		Chord:      []string{"C4", "E4"},
		Policy:     "note-first",
	})
	assert.NoError(err)
	assert.Equal(fretboard.PolicyNoteFirst, req.Policy)
	assert.Equal(pitch.MustParseChord("C4", "E4"), req.Chord)

	_, err = ParseRequest(model.AssignRequestBody{Chord: []string{"C4", "Eb4"}})
	var pe *pitch.ParseError
	assert.ErrorAs(err, &pe)

	_, err = ParseRequest(model.AssignRequestBody{Policy: "perfect"})
	assert.Error(err)
}

func TestResponse(t *testing.T) {
	res, err := Run(Request{
		Instrument: instrument.GuitarName,
		Chord:      pitch.MustParseChord("D4", "F#4", "A4", "C#5", "E5"),
	})
	assert := assert.New(t)
	assert.NoError(err)

	resp := res.Response("abc")
	assert.Equal(model.AssignResponse{
		Id:         "abc",
		Instrument: "guitar5",
		Chord:      []string{"D4", "F#4", "A4", "C#5", "E5"},
		Positions: []model.PositionResult{
			{String: 0, Fret: 0, Pitch: "D4"},
			{String: 1, Fret: 0, Pitch: "A4"},
			{String: 2, Fret: 0, Pitch: "E5"},
		},
		Unassigned: []string{"F#4", "C#5"},
	}, resp)
}

func TestInstrumentResponse(t *testing.T) {
	resp := InstrumentResponse(instrument.Ukulele)
	assert.Equal(t, "ukulele", resp.Name)
	assert.Equal(t, model.StringResult{Open: "G4", Frets: 14}, resp.Strings[0])
}

func TestVoicingFor(t *testing.T) {
	triad := pitch.MustParseChord("C4", "E4", "G4")
	assert := assert.New(t)

	uke, _ := VoicingFor(instrument.UkuleleName)(triad)
	assert.Len(uke, 4)

	guitar, _ := VoicingFor(instrument.GuitarName)(triad)
	assert.Len(guitar, 5)
}
