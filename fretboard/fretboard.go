// Package fretboard places the pitches of a chord onto the strings of an
// instrument, at most one pitch per string.
//
// The placement is a greedy forward pass over the strings in instrument
// order. Each string takes the still-unplaced pitch it can reach on its lowest
// fret, ties going to the pitch that came first in the chord. It is not a
// global matching: a chord can come back partially placed even when some other
// arrangement would have placed all of it.
package fretboard

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/jsphweid/fretchord/instrument"
	"github.com/jsphweid/fretchord/pitch"
	"github.com/jsphweid/fretchord/util"
)

// Position is one pitch stopped on one string.
type Position struct {
	String int         `json:"string"`
	Fret   int         `json:"fret"`
	Pitch  pitch.Pitch `json:"pitch"`
}

// Result maps string index to the position placed on it. Strings that got
// nothing are absent. Unassigned holds the pitches that found no string, in
// the order they first appeared in the chord.
type Result struct {
	Positions  map[int]Position
	Unassigned pitch.Chord
}

// Sorted lists the positions by string index.
func (r Result) Sorted() []Position {
	res := make([]Position, 0, len(r.Positions))
	for _, str := range util.GetKeys(r.Positions) {
		res = append(res, r.Positions[str])
	}
	return res
}

func (r Result) At(str int) (Position, bool) {
	p, ok := r.Positions[str]
	return p, ok
}

func (r Result) IsAssigned(p pitch.Pitch) bool {
	for _, pos := range r.Positions {
		if pos.Pitch == p {
			return true
		}
	}
	return false
}

// Assigned lists the placed pitches by string index.
func (r Result) Assigned() pitch.Chord {
	var res pitch.Chord
	for _, pos := range r.Sorted() {
		res = append(res, pos.Pitch)
	}
	return res
}

// Policy selects the placement strategy.
type Policy int

const (
	// PolicyBestFit walks the strings, giving each the reachable pitch with
	// the lowest fret.
	PolicyBestFit Policy = iota
	// PolicyNoteFirst walks the pitches, giving each the leftmost free
	// position scanning frets then strings.
	PolicyNoteFirst
)

func (p Policy) String() string {
	switch p {
	case PolicyBestFit:
		return "best-fit"
	case PolicyNoteFirst:
		return "note-first"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

var ErrUnknownPolicy = errors.New("fretboard: unknown policy")

func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "best-fit":
		return PolicyBestFit, nil
	case "note-first":
		return PolicyNoteFirst, nil
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownPolicy, s)
}

// Assign places chord on inst with PolicyBestFit.
func Assign(chord pitch.Chord, inst instrument.Instrument) Result {
	return AssignWith(PolicyBestFit, chord, inst)
}

func AssignWith(policy Policy, chord pitch.Chord, inst instrument.Instrument) Result {
	var r Result
	switch policy {
	case PolicyNoteFirst:
		r = assignNoteFirst(chord, inst)
	default:
		r = assignBestFit(chord, inst)
	}
	slog.Debug("fretboard: assigned",
		"instrument", inst.Name,
		"policy", policy.String(),
		"chord", chord.String(),
		"placed", len(r.Positions),
		"unassigned", r.Unassigned.String(),
	)
	return r
}

// fretFor is the lowest fret of s sounding p, or -1.
func fretFor(s instrument.String, p pitch.Pitch) int {
	for f := 0; f < s.Frets; f++ {
		if pitch.NoteAtFret(s.Open, f) == p {
			return f
		}
	}
	return -1
}

func assignBestFit(chord pitch.Chord, inst instrument.Instrument) Result {
	pool := chord.Dedupe()
	placed := make([]bool, len(pool))
	res := Result{Positions: make(map[int]Position)}

	for i, s := range inst.Strings {
		best, bestFret := -1, -1
		for j, p := range pool {
			if placed[j] {
				continue
			}
			f := fretFor(s, p)
			// strict less keeps the earliest pitch on a tie
			if f >= 0 && (best < 0 || f < bestFret) {
				best, bestFret = j, f
			}
		}
		if best < 0 {
			continue
		}
		placed[best] = true
		res.Positions[i] = Position{String: i, Fret: bestFret, Pitch: pool[best]}
		slog.Debug("fretboard: string taken", "string", i, "pitch", pool[best].String(), "fret", bestFret)
	}

	res.Unassigned = leftovers(pool, placed)
	return res
}

func assignNoteFirst(chord pitch.Chord, inst instrument.Instrument) Result {
	pool := chord.Dedupe()
	placed := make([]bool, len(pool))
	used := make([]bool, len(inst.Strings))
	res := Result{Positions: make(map[int]Position)}

	for j, p := range pool {
	frets:
		for f := 0; f < inst.MaxFrets(); f++ {
			for i, s := range inst.Strings {
				if used[i] || f >= s.Frets {
					continue
				}
				if pitch.NoteAtFret(s.Open, f) == p {
					used[i] = true
					placed[j] = true
					res.Positions[i] = Position{String: i, Fret: f, Pitch: p}
					break frets
				}
			}
		}
	}

	res.Unassigned = leftovers(pool, placed)
	return res
}

func leftovers(pool pitch.Chord, placed []bool) pitch.Chord {
	res := pitch.Chord{}
	for j, p := range pool {
		if !placed[j] {
			res = append(res, p)
		}
	}
	return res
}
