package midi

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jsphweid/fretchord/chord"
	"github.com/jsphweid/fretchord/model"
	"gitlab.com/gomidi/midi/v2/smf"
)

func ReadMidiFile(filepath string) (s *smf.SMF, e error) {
	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r := recover(); r != nil {
			s = nil
			e = fmt.Errorf("parsing midi file %s: %v", filepath, r)
		}
	}()

	dat, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading midi file: %w", err)
	}
	return Read(bytes.NewReader(dat))
}

func Read(r io.Reader) (*smf.SMF, error) {
	res, err := smf.ReadFrom(r)
	if err != nil {
		return nil, fmt.Errorf("parsing midi file: %w", err)
	}
	if len(res.Tracks) == 0 {
		return nil, errors.New("parsing midi file: no tracks")
	}
	return res, nil
}

// ReadChords is ReadMidiFile followed by chord.GetChords.
func ReadChords(filepath string) ([]model.TimedChord, error) {
	s, err := ReadMidiFile(filepath)
	if err != nil {
		return nil, err
	}
	return chord.GetChords(s)
}
