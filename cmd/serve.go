package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jsphweid/fretchord/db"
	"github.com/jsphweid/fretchord/fretboard"
	"github.com/jsphweid/fretchord/instrument"
	"github.com/jsphweid/fretchord/model"
	"github.com/jsphweid/fretchord/pitch"
	"github.com/jsphweid/fretchord/session"
	"github.com/jsphweid/fretchord/voicing"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const maxBodyBytes = 64 * 1024

var presets db.PresetStore = db.NewMemoryStore()

func init() {
	serveCmd.Flags().Bool("memory", false, "keep presets in memory instead of DynamoDB")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves assignments over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		memory, _ := cmd.Flags().GetBool("memory")
		if !memory {
			store, err := openPresetStore()
			if err != nil {
				return err
			}
			presets = store
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx, cfg.Server.Addr)
	},
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("writing response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, model.ErrorResponse{Error: err.Error()})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("could not decode request body: "+err.Error()))
		return false
	}
	return true
}

// statusFor maps input problems to 4xx; anything else is the server's fault.
func statusFor(err error) int {
	var pe *pitch.ParseError
	switch {
	case errors.As(err, &pe),
		errors.Is(err, fretboard.ErrUnknownPolicy),
		errors.Is(err, db.ErrInvalidPreset):
		return http.StatusBadRequest
	case errors.Is(err, instrument.ErrNotFound), errors.Is(err, db.ErrPresetNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func HandleAssign(w http.ResponseWriter, r *http.Request) {
	var input model.AssignRequestBody
	if !decodeBody(w, r, &input) {
		return
	}
	if input.Instrument == "" {
		input.Instrument = cfg.DefaultInstrument
	}

	req, err := session.ParseRequest(input)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	res, err := session.Run(req)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, res.Response(uuid.NewString()))
}

func HandleSpread(w http.ResponseWriter, r *http.Request) {
	var input model.SpreadRequestBody
	if !decodeBody(w, r, &input) {
		return
	}

	voiced, err := voicing.SpreadText(input.Chord)
	resp := model.SpreadResponse{Id: uuid.NewString(), Chord: voiced}
	switch {
	case errors.Is(err, voicing.ErrUnsupportedSize):
		resp.Warning = err.Error()
	case err != nil:
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func HandleInstruments(w http.ResponseWriter, r *http.Request) {
	res := make([]model.InstrumentResponse, 0)
	for _, inst := range instrument.All() {
		res = append(res, session.InstrumentResponse(inst))
	}
	writeJSON(w, http.StatusOK, res)
}

func HandleInstrument(w http.ResponseWriter, r *http.Request) {
	inst, err := instrument.Lookup(mux.Vars(r)["name"])
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, session.InstrumentResponse(inst))
}

func HandleSavePreset(w http.ResponseWriter, r *http.Request) {
	var input model.Preset
	if !decodeBody(w, r, &input) {
		return
	}
	if err := presets.Save(r.Context(), input); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	saved, err := presets.Get(r.Context(), input.Name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func HandleGetPreset(w http.ResponseWriter, r *http.Request) {
	p, err := presets.Get(r.Context(), mux.Vars(r)["name"])
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func HandleListPresets(w http.ResponseWriter, r *http.Request) {
	ps, err := presets.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if ps == nil {
		ps = []model.Preset{}
	}
	writeJSON(w, http.StatusOK, ps)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Debug("request", "method", r.Method, "path", r.URL.Path, "took", time.Since(start))
	})
}

// NewRouter wires every route behind CORS.
func NewRouter() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.Use(logRequests)
	router.HandleFunc("/assign", HandleAssign).Methods(http.MethodPost)
	router.HandleFunc("/spread", HandleSpread).Methods(http.MethodPost)
	router.HandleFunc("/instruments", HandleInstruments).Methods(http.MethodGet)
	router.HandleFunc("/instruments/{name}", HandleInstrument).Methods(http.MethodGet)
	router.HandleFunc("/presets", HandleListPresets).Methods(http.MethodGet)
	router.HandleFunc("/presets", HandleSavePreset).Methods(http.MethodPost)
	router.HandleFunc("/presets/{name}", HandleGetPreset).Methods(http.MethodGet)

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	})
	return c.Handler(router)
}

func serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		slog.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// UsePresetStore swaps the store used by the preset routes.
func UsePresetStore(s db.PresetStore) {
	presets = s
}
