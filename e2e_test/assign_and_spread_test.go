//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/jsphweid/fretchord/cmd"
	"github.com/jsphweid/fretchord/db"
	"github.com/jsphweid/fretchord/model"
	"github.com/stretchr/testify/assert"
)

var router http.Handler

func TestMain(m *testing.M) {
	cmd.UsePresetStore(db.NewMemoryStore())
	router = cmd.NewRouter()

	exitVal := m.Run()

	os.Exit(exitVal)
}

func createReqBody(v any) io.Reader {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err.Error())
	}
	return bytes.NewReader(data)
}

func do(method, path string, body any) *http.Response {
	var r io.Reader
	if body != nil {
		r = createReqBody(body)
	}
	req := httptest.NewRequest(method, path, r)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w.Result()
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	respBody, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(respBody, &v); err != nil {
		t.Fatalf("decoding %s: %v", respBody, err)
	}
	return v
}

func TestGreedyChordE2E(t *testing.T) {
	resp := do(http.MethodPost, "/assign", model.AssignRequestBody{
		Instrument: "guitar5",
		Chord:      []string{"D4", "F#4", "A4", "C#5", "E5"},
	})

	assert := assert.New(t)
	assert.Equal(200, resp.StatusCode)

	body := decode[model.AssignResponse](t, resp)
	assert.NotEmpty(body.Id)
	assert.Equal([]model.PositionResult{
		{String: 0, Fret: 0, Pitch: "D4"},
		{String: 1, Fret: 0, Pitch: "A4"},
		{String: 2, Fret: 0, Pitch: "E5"},
	}, body.Positions)
	assert.Equal([]string{"F#4", "C#5"}, body.Unassigned)
}

func TestSpreadThenAssignE2E(t *testing.T) {
	resp := do(http.MethodPost, "/assign", model.AssignRequestBody{
		Instrument: "guitar5",
		Chord:      []string{"D4", "F#4", "A4", "C5"},
		Spread:     true,
	})

	assert := assert.New(t)
	assert.Equal(200, resp.StatusCode)
	body := decode[model.AssignResponse](t, resp)
	assert.Equal([]string{"D4", "A4", "F#5", "C6", "A5", "D6"}, body.Chord)
	assert.Empty(body.Warning)
}

func TestEmptyChordE2E(t *testing.T) {
	resp := do(http.MethodPost, "/assign", model.AssignRequestBody{Instrument: "ukulele", Chord: []string{}})

	assert := assert.New(t)
	assert.Equal(200, resp.StatusCode)
	body := decode[model.AssignResponse](t, resp)
	assert.Empty(body.Positions)
	assert.Empty(body.Unassigned)
}

func TestMalformedPitchE2E(t *testing.T) {
	resp := do(http.MethodPost, "/assign", model.AssignRequestBody{Instrument: "guitar5", Chord: []string{"D4", "Zz"}})

	assert := assert.New(t)
	assert.Equal(400, resp.StatusCode)
	body := decode[model.ErrorResponse](t, resp)
	assert.Contains(body.Error, "Zz")
}

func TestUnknownInstrumentE2E(t *testing.T) {
	resp := do(http.MethodPost, "/assign", model.AssignRequestBody{Instrument: "sitar", Chord: []string{"D4"}})
	assert.Equal(t, 404, resp.StatusCode)
}

func TestSpreadUnsupportedSizeE2E(t *testing.T) {
	resp := do(http.MethodPost, "/spread", model.SpreadRequestBody{Chord: []string{"G4", "B4"}})

	assert := assert.New(t)
	assert.Equal(200, resp.StatusCode)
	body := decode[model.SpreadResponse](t, resp)
	assert.Equal([]string{"G4", "B4"}, body.Chord)
	assert.Contains(body.Warning, "unsupported chord size")
}

func TestInstrumentsE2E(t *testing.T) {
	resp := do(http.MethodGet, "/instruments/ukulele", nil)

	assert := assert.New(t)
	assert.Equal(200, resp.StatusCode)
	body := decode[model.InstrumentResponse](t, resp)
	assert.Equal("G4", body.Strings[0].Open)

	resp = do(http.MethodGet, "/instruments", nil)
	all := decode[[]model.InstrumentResponse](t, resp)
	assert.GreaterOrEqual(len(all), 2)
}

func TestPresetsE2E(t *testing.T) {
	assert := assert.New(t)

	resp := do(http.MethodPost, "/presets", model.Preset{Name: "D", Chord: []string{"D4", "F#4", "A4"}})
	assert.Equal(201, resp.StatusCode)

	resp = do(http.MethodGet, "/presets/D", nil)
	assert.Equal(200, resp.StatusCode)
	assert.Equal([]string{"D4", "F#4", "A4"}, decode[model.Preset](t, resp).Chord)

	resp = do(http.MethodGet, "/presets/nope", nil)
	assert.Equal(404, resp.StatusCode)

	resp = do(http.MethodPost, "/presets", model.Preset{Name: "bad", Chord: []string{"Db4"}})
	assert.Equal(400, resp.StatusCode)
}
