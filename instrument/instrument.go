// Package instrument declares string tunings. Instruments are plain data: the
// fretboard engine reads them and never special-cases a particular one.
package instrument

import (
	"errors"
	"fmt"
	"sync"

	"github.com/jsphweid/fretchord/pitch"
	"github.com/jsphweid/fretchord/util"
)

// DefaultFrets is the fret window of every built-in instrument, open string
// included.
const DefaultFrets = 14

const (
	GuitarName  = "guitar5"
	UkuleleName = "ukulele"
)

// String is one instrument string: its open pitch and how many frets
// (positions, counting the open string) it offers.
type String struct {
	Open  pitch.Pitch `json:"open" yaml:"open"`
	Frets int         `json:"frets" yaml:"frets"`
}

// Instrument is an ordered set of strings. Index 0 has the highest priority
// when pitches are assigned.
type Instrument struct {
	Name    string   `json:"name"`
	Strings []String `json:"strings"`
}

var (
	ErrNotFound  = errors.New("instrument: not found")
	ErrDuplicate = errors.New("instrument: already registered")
)

// New builds an instrument whose strings all share the same fret count.
func New(name string, frets int, opens ...pitch.Pitch) (Instrument, error) {
	inst := Instrument{Name: name}
	for _, o := range opens {
		inst.Strings = append(inst.Strings, String{Open: o, Frets: frets})
	}
	if err := inst.Validate(); err != nil {
		return Instrument{}, err
	}
	return inst, nil
}

func mustNew(name string, opens ...string) Instrument {
	var ps []pitch.Pitch
	for _, o := range opens {
		ps = append(ps, pitch.MustParse(o))
	}
	inst, err := New(name, DefaultFrets, ps...)
	if err != nil {
		panic(err)
	}
	return inst
}

func (inst Instrument) Validate() error {
	if inst.Name == "" {
		return errors.New("instrument: missing name")
	}
	if len(inst.Strings) == 0 {
		return fmt.Errorf("instrument %q: no strings", inst.Name)
	}
	for i, s := range inst.Strings {
		if s.Frets < 1 {
			return fmt.Errorf("instrument %q: string %d has %d frets", inst.Name, i, s.Frets)
		}
	}
	return nil
}

// Fretboard pitches for string i, fret 0 first.
func (inst Instrument) Fretboard(i int) []pitch.Pitch {
	s := inst.Strings[i]
	res := make([]pitch.Pitch, s.Frets)
	for f := range res {
		res[f] = pitch.NoteAtFret(s.Open, f)
	}
	return res
}

// MaxFrets is the widest fret window across all strings.
func (inst Instrument) MaxFrets() int {
	widest := 0
	for _, s := range inst.Strings {
		if s.Frets > widest {
			widest = s.Frets
		}
	}
	return widest
}

func (inst Instrument) Opens() pitch.Chord {
	res := make(pitch.Chord, len(inst.Strings))
	for i, s := range inst.Strings {
		res[i] = s.Open
	}
	return res
}

var (
	FiveStringGuitar = mustNew(GuitarName, "D4", "A4", "E5", "A5", "D6")
	Ukulele          = mustNew(UkuleleName, "G4", "C4", "E4", "A4")
)

var (
	mu       sync.RWMutex
	registry = map[string]Instrument{
		GuitarName:  FiveStringGuitar.clone(),
		UkuleleName: Ukulele.clone(),
	}
)

func (inst Instrument) clone() Instrument {
	inst.Strings = append([]String(nil), inst.Strings...)
	return inst
}

// Register adds a named tuning. Meant for start-up, when custom tunings are
// read from config. Names are never replaced, built-ins included.
func Register(inst Instrument) error {
	if err := inst.Validate(); err != nil {
		return err
	}
	mu.Lock()
	defer mu.Unlock()
	if _, ok := registry[inst.Name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicate, inst.Name)
	}
	registry[inst.Name] = inst.clone()
	return nil
}

func Lookup(name string) (Instrument, error) {
	mu.RLock()
	defer mu.RUnlock()
	inst, ok := registry[name]
	if !ok {
		return Instrument{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return inst.clone(), nil
}

// Names lists registered instruments alphabetically.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	return util.GetKeys(registry)
}

func All() []Instrument {
	var res []Instrument
	for _, n := range Names() {
		inst, _ := Lookup(n)
		res = append(res, inst)
	}
	return res
}
