package model

// Preset is a named chord saved for later, stored as pitch text so it reads
// the same everywhere it is shown.
type Preset struct {
	Name       string   `json:"name"`
	Chord      []string `json:"chord"`
	Instrument string   `json:"instrument,omitempty"`
	Spread     bool     `json:"spread,omitempty"`

	// NOTE: unix seconds, set by the store
	SavedAt int64 `json:"saved_at"`
}

// TimedChord is a chord read from a MIDI file with the time its first note
// started.
type TimedChord struct {
	OffsetMs int64
	Keys     []uint8
}
