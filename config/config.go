// Package config loads fretchord.yaml. Every value has a default; the file
// only needs the keys a user wants to change, and environment variables win
// over the file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/jsphweid/fretchord/constants"
	"github.com/jsphweid/fretchord/instrument"
	"github.com/jsphweid/fretchord/pitch"
	"gopkg.in/yaml.v3"
)

const DefaultConfigYAML = `# fretchord configuration
log_level: info
default_instrument: guitar5

server:
  addr: ":8080"
  allowed_origins:
    - "*"

presets:
  endpoint: http://localhost:8000
  region: localhost
  table: fretchord-presets

listen:
  port: 0
  debounce_ms: 80

# Extra tunings, registered next to guitar5 and ukulele.
# instruments:
#   - name: baritone-uke
#     frets: 18
#     strings: [D3, G3, B3, E4]
`

type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type PresetsConfig struct {
	Endpoint string `yaml:"endpoint"`
	Region   string `yaml:"region"`
	Table    string `yaml:"table"`
}

type ListenConfig struct {
	Port       int `yaml:"port"`
	DebounceMs int `yaml:"debounce_ms"`
}

func (l ListenConfig) Debounce() time.Duration {
	return time.Duration(l.DebounceMs) * time.Millisecond
}

// TuningConfig declares a custom instrument.
type TuningConfig struct {
	Name    string        `yaml:"name"`
	Frets   int           `yaml:"frets"`
	Strings []pitch.Pitch `yaml:"strings"`
}

type Config struct {
	LogLevel          string         `yaml:"log_level"`
	DefaultInstrument string         `yaml:"default_instrument"`
	Server            ServerConfig   `yaml:"server"`
	Presets           PresetsConfig  `yaml:"presets"`
	Listen            ListenConfig   `yaml:"listen"`
	Instruments       []TuningConfig `yaml:"instruments"`
}

func Default() *Config {
	var c Config
	if err := yaml.Unmarshal([]byte(DefaultConfigYAML), &c); err != nil {
		panic("config: default document is invalid: " + err.Error())
	}
	return &c
}

// Parse overlays a YAML document onto the defaults.
func Parse(data []byte) (*Config, error) {
	c := Default()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads path, falling back to defaults when it does not exist, then
// applies environment overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	var c *Config
	switch {
	case errors.Is(err, fs.ErrNotExist):
		c = Default()
	case err != nil:
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	default:
		c, err = Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	c.applyEnv()
	return c, nil
}

func (c *Config) applyEnv() {
	if v := constants.GetServerAddr(); v != "" {
		c.Server.Addr = v
	}
	if v := constants.GetDynamoEndpoint(); v != "" {
		c.Presets.Endpoint = v
	}
	if v := constants.GetDynamoTable(); v != "" {
		c.Presets.Table = v
	}
	if v := constants.GetLogLevel(); v != "" {
		c.LogLevel = v
	}
}

func (c *Config) validate() error {
	if c.Listen.DebounceMs < 0 {
		return fmt.Errorf("config: listen.debounce_ms must not be negative")
	}
	for i, t := range c.Instruments {
		if _, err := t.Instrument(); err != nil {
			return fmt.Errorf("config: instruments[%d]: %w", i, err)
		}
	}
	return nil
}

func (t TuningConfig) Instrument() (instrument.Instrument, error) {
	frets := t.Frets
	if frets == 0 {
		frets = instrument.DefaultFrets
	}
	return instrument.New(t.Name, frets, t.Strings...)
}

// RegisterInstruments makes the custom tunings available through
// instrument.Lookup.
func (c *Config) RegisterInstruments() error {
	for _, t := range c.Instruments {
		inst, err := t.Instrument()
		if err != nil {
			return err
		}
		if err := instrument.Register(inst); err != nil {
			return err
		}
	}
	return nil
}
