package model

type AssignRequestBody struct {
	Instrument string   `json:"instrument"`
	Chord      []string `json:"chord"`
	Spread     bool     `json:"spread"`
	Policy     string   `json:"policy"`
}

type PositionResult struct {
	String int    `json:"string"`
	Fret   int    `json:"fret"`
	Pitch  string `json:"pitch"`
}

type AssignResponse struct {
	Id         string           `json:"id"`
	Instrument string           `json:"instrument"`
	Chord      []string         `json:"chord"`
	Positions  []PositionResult `json:"positions"`
	Unassigned []string         `json:"unassigned"`
	Warning    string           `json:"warning,omitempty"`
}

type SpreadRequestBody struct {
	Chord []string `json:"chord"`
}

type SpreadResponse struct {
	Id      string   `json:"id"`
	Chord   []string `json:"chord"`
	Warning string   `json:"warning,omitempty"`
}

type StringResult struct {
	Open  string `json:"open"`
	Frets int    `json:"frets"`
}

type InstrumentResponse struct {
	Name    string         `json:"name"`
	Strings []StringResult `json:"strings"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
