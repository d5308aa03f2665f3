// Package session runs one chord through the pipeline every front end
// shares: parse, optionally spread, then place on an instrument. Each call
// starts from nothing; the result replaces whatever was shown before.
package session

import (
	"errors"
	"log/slog"

	"github.com/jsphweid/fretchord/fretboard"
	"github.com/jsphweid/fretchord/instrument"
	"github.com/jsphweid/fretchord/model"
	"github.com/jsphweid/fretchord/pitch"
	"github.com/jsphweid/fretchord/voicing"
)

type Request struct {
	Instrument string
	Chord      pitch.Chord
	Spread     bool
	Policy     fretboard.Policy
}

type Result struct {
	Instrument instrument.Instrument
	Input      pitch.Chord
	Voiced     pitch.Chord
	Assignment fretboard.Result
	// Warning is set when the spread was skipped; Voiced is then the input.
	Warning error
}

// ParseRequest validates the text form used by the HTTP and CLI surfaces.
func ParseRequest(body model.AssignRequestBody) (Request, error) {
	chord, err := pitch.ParseChord(body.Chord)
	if err != nil {
		return Request{}, err
	}
	policy, err := fretboard.ParsePolicy(body.Policy)
	if err != nil {
		return Request{}, err
	}
	return Request{
		Instrument: body.Instrument,
		Chord:      chord,
		Spread:     body.Spread,
		Policy:     policy,
	}, nil
}

// VoicingFor picks the spread used for the named instrument: the ukulele
// has its own four-string voicing, everything else gets the keyboard spread.
func VoicingFor(name string) voicing.Func {
	if name == instrument.UkuleleName {
		return voicing.SpreadUkulele
	}
	return voicing.Spread
}

func Run(req Request) (Result, error) {
	inst, err := instrument.Lookup(req.Instrument)
	if err != nil {
		return Result{}, err
	}

	res := Result{Instrument: inst, Input: req.Chord, Voiced: req.Chord}
	if req.Spread {
		res.Voiced, res.Warning = VoicingFor(inst.Name)(req.Chord)
		if res.Warning != nil {
			if !errors.Is(res.Warning, voicing.ErrUnsupportedSize) {
				return Result{}, res.Warning
			}
			slog.Warn("spread skipped, using chord as given", "chord", req.Chord.String(), "reason", res.Warning)
		}
	}

	res.Assignment = fretboard.AssignWith(req.Policy, res.Voiced, inst)
	if n := len(res.Assignment.Unassigned); n > 0 {
		slog.Info("pitches left unplaced",
			"instrument", inst.Name,
			"unassigned", res.Assignment.Unassigned.String(),
			"count", n,
		)
	}
	return res, nil
}

func (r Result) Response(id string) model.AssignResponse {
	resp := model.AssignResponse{
		Id:         id,
		Instrument: r.Instrument.Name,
		Chord:      r.Voiced.Strings(),
		Positions:  []model.PositionResult{},
		Unassigned: r.Assignment.Unassigned.Strings(),
	}
	for _, pos := range r.Assignment.Sorted() {
		resp.Positions = append(resp.Positions, model.PositionResult{
			String: pos.String,
			Fret:   pos.Fret,
			Pitch:  pos.Pitch.String(),
		})
	}
	if r.Warning != nil {
		resp.Warning = r.Warning.Error()
	}
	return resp
}

func InstrumentResponse(inst instrument.Instrument) model.InstrumentResponse {
	resp := model.InstrumentResponse{Name: inst.Name}
	for _, s := range inst.Strings {
		resp.Strings = append(resp.Strings, model.StringResult{Open: s.Open.String(), Frets: s.Frets})
	}
	return resp
}
