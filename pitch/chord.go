package pitch

import (
	"fmt"
	"strings"
)

// Chord is an ordered list of pitches. Order matters and duplicates are
// allowed; the first occurrence of a pitch wins ties downstream.
type Chord []Pitch

// ParseChord parses every element, failing on the first malformed one.
func ParseChord(texts []string) (Chord, error) {
	c := make(Chord, 0, len(texts))
	for i, t := range texts {
		p, err := Parse(t)
		if err != nil {
			return nil, fmt.Errorf("chord element %d: %w", i, err)
		}
		c = append(c, p)
	}
	return c, nil
}

func MustParseChord(texts ...string) Chord {
	c, err := ParseChord(texts)
	if err != nil {
		panic(err)
	}
	return c
}

// Dedupe keeps the first occurrence of each pitch, in order.
func (c Chord) Dedupe() Chord {
	seen := make(map[Pitch]bool, len(c))
	res := make(Chord, 0, len(c))
	for _, p := range c {
		if seen[p] {
			continue
		}
		seen[p] = true
		res = append(res, p)
	}
	return res
}

func (c Chord) Contains(p Pitch) bool {
	for _, q := range c {
		if q == p {
			return true
		}
	}
	return false
}

func (c Chord) Strings() []string {
	res := make([]string, len(c))
	for i, p := range c {
		res[i] = p.String()
	}
	return res
}

func (c Chord) String() string {
	return strings.Join(c.Strings(), " ")
}
