package constants

import "os"

func getenv(key, fallback string) string {
	v := os.Getenv(key)
	if v != "" {
		return v
	}
	return fallback
}

// GetConfigPath is where the YAML config lives. A missing file just means
// defaults.
func GetConfigPath() string {
	return getenv("FRETCHORD_CONFIG", "./fretchord.yaml")
}

func GetServerAddr() string {
	return os.Getenv("FRETCHORD_ADDR")
}

func GetDynamoEndpoint() string {
	return os.Getenv("DYNAMO_ENDPOINT")
}

func GetDynamoTable() string {
	return os.Getenv("DYNAMO_TABLE")
}

func GetLogLevel() string {
	return os.Getenv("FRETCHORD_LOG_LEVEL")
}

// Velocity and timing for exported MIDI sketches.
const (
	MidiVelocity     = 90
	MidiTicksPerBeat = 960
	MidiChannel      = 0
)

// Two notes whose onsets are closer than this (in milliseconds) belong to
// the same chord when reading MIDI files.
const ChordOnsetWindowMs = 30
