package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/bep/debounce"
	"github.com/jsphweid/fretchord/chord"
	"github.com/jsphweid/fretchord/fretboard"
	"github.com/jsphweid/fretchord/session"
	"github.com/spf13/cobra"
	gomidi "gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver
)

var (
	listenInstrument string
	listenSpread     bool
)

func init() {
	listenCmd.Flags().StringVarP(&listenInstrument, "instrument", "i", "", "instrument name (default from config)")
	listenCmd.Flags().BoolVarP(&listenSpread, "spread", "s", false, "spread held chords first")
	rootCmd.AddCommand(listenCmd)
}

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Follows a MIDI keyboard and draws the held chord",
	RunE: func(cmd *cobra.Command, args []string) error {
		defer gomidi.CloseDriver()
		in, err := gomidi.InPort(cfg.Listen.Port)
		if err != nil {
			return fmt.Errorf("can't open midi input %d: %w", cfg.Listen.Port, err)
		}

		h := newHeldNotes(func(keys []uint8) {
			redraw(cmd, keys)
		})

		stop, err := gomidi.ListenTo(in, func(msg gomidi.Message, timestampms int32) {
			var ch, key, vel uint8
			switch {
			case msg.GetNoteStart(&ch, &key, &vel):
				h.press(key)
			case msg.GetNoteEnd(&ch, &key):
				h.release(key)
			}
		})
		if err != nil {
			return err
		}
		defer stop()

		slog.Info("listening for notes", "port", in.String())
		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer cancel()
		<-ctx.Done()
		return nil
	},
}

func redraw(cmd *cobra.Command, keys []uint8) {
	if len(keys) == 0 {
		return
	}
	res, err := session.Run(session.Request{
		Instrument: pickInstrument(listenInstrument),
		Chord:      chord.FromKeys(keys),
		Spread:     listenSpread,
		Policy:     fretboard.PolicyBestFit,
	})
	if err != nil {
		slog.Error("placing held chord", "err", err)
		return
	}
	printResult(cmd, res)
}

// heldNotes tracks pressed keys and reports the set once it has settled, so
// a chord played as a quick roll is drawn once.
type heldNotes struct {
	mu       sync.Mutex
	pressed  map[uint8]bool
	debounce func(func())
	onChange func([]uint8)
}

func newHeldNotes(onChange func([]uint8)) *heldNotes {
	return &heldNotes{
		pressed:  make(map[uint8]bool),
		debounce: debounce.New(cfg.Listen.Debounce()),
		onChange: onChange,
	}
}

func (h *heldNotes) press(key uint8) {
	h.mu.Lock()
	h.pressed[key] = true
	h.mu.Unlock()
	h.debounce(h.flush)
}

func (h *heldNotes) release(key uint8) {
	h.mu.Lock()
	delete(h.pressed, key)
	h.mu.Unlock()
	h.debounce(h.flush)
}

func (h *heldNotes) snapshot() []uint8 {
	h.mu.Lock()
	defer h.mu.Unlock()
	keys := make([]uint8, 0, len(h.pressed))
	for k := range h.pressed {
		keys = append(keys, k)
	}
	return keys
}

func (h *heldNotes) flush() {
	h.onChange(h.snapshot())
}
