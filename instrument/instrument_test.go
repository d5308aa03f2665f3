package instrument

import (
	"errors"
	"testing"

	"github.com/jsphweid/fretchord/pitch"
	"github.com/stretchr/testify/assert"
)

func TestBuiltInTunings(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(pitch.MustParseChord("D4", "A4", "E5", "A5", "D6"), FiveStringGuitar.Opens())
	assert.Equal(pitch.MustParseChord("G4", "C4", "E4", "A4"), Ukulele.Opens())

	for _, inst := range []Instrument{FiveStringGuitar, Ukulele} {
		for _, s := range inst.Strings {
			assert.Equal(DefaultFrets, s.Frets)
		}
	}
}

func TestLookup(t *testing.T) {
	assert := assert.New(t)

	inst, err := Lookup(GuitarName)
	assert.NoError(err)
	assert.Equal(FiveStringGuitar, inst)

	_, err = Lookup("banjo")
	assert.True(errors.Is(err, ErrNotFound))
}

func TestRegisterCustomTuning(t *testing.T) {
	assert := assert.New(t)

	bass, err := New("bass4", 20, pitch.MustParseChord("E1", "A1", "D2", "G2")...)
	assert.NoError(err)
	assert.NoError(Register(bass))

	got, err := Lookup("bass4")
	assert.NoError(err)
	assert.Equal(20, got.MaxFrets())
	assert.Contains(Names(), "bass4")
}

func TestRegisterKeepsBuiltIns(t *testing.T) {
	assert := assert.New(t)

	fake, err := New(GuitarName, 3, pitch.MustParse("C1"))
	assert.NoError(err)
	assert.ErrorIs(Register(fake), ErrDuplicate)

	got, err := Lookup(GuitarName)
	assert.NoError(err)
	assert.Equal(pitch.MustParseChord("D4", "A4", "E5", "A5", "D6"), got.Opens())
	assert.Equal(DefaultFrets, got.MaxFrets())
}

func TestRegisterRejectsSecondTuningWithSameName(t *testing.T) {
	assert := assert.New(t)

	first, _ := New("mandola", 16, pitch.MustParseChord("C3", "G3", "D4", "A4")...)
	second, _ := New("mandola", 3, pitch.MustParse("C1"))
	assert.NoError(Register(first))
	assert.ErrorIs(Register(second), ErrDuplicate)

	got, _ := Lookup("mandola")
	assert.Len(got.Strings, 4)
}

func TestLookupReturnsACopy(t *testing.T) {
	assert := assert.New(t)

	got, err := Lookup(UkuleleName)
	assert.NoError(err)
	got.Strings[0].Frets = 2
	got.Strings[0].Open = pitch.MustParse("C1")

	again, _ := Lookup(UkuleleName)
	assert.Equal(DefaultFrets, again.Strings[0].Frets)
	assert.Equal("G4", again.Strings[0].Open.String())
}

func TestExportedTuningsDoNotAliasRegistry(t *testing.T) {
	assert := assert.New(t)

	local := FiveStringGuitar
	local.Strings = append([]String(nil), FiveStringGuitar.Strings...)
	defer func() { FiveStringGuitar = local }()

	FiveStringGuitar.Strings[0].Frets = 2

	got, _ := Lookup(GuitarName)
	assert.Equal(DefaultFrets, got.Strings[0].Frets)
}

func TestValidate(t *testing.T) {
	cases := map[string]Instrument{
		"no name":    {Strings: []String{{Open: pitch.MustParse("C4"), Frets: 1}}},
		"no strings": {Name: "empty"},
		"zero frets": {Name: "stub", Strings: []String{{Open: pitch.MustParse("C4"), Frets: 0}}},
	}
	for name, inst := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, inst.Validate())
			assert.Error(t, Register(inst))
		})
	}
}

func TestFretboard(t *testing.T) {
	board := Ukulele.Fretboard(1)

	assert := assert.New(t)
	assert.Len(board, DefaultFrets)
	assert.Equal("C4", board[0].String())
	assert.Equal("C5", board[12].String())
	assert.Equal("C#5", board[13].String())
}
