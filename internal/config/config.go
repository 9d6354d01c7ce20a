// Package config loads the list of seminar sources and the run settings.
//
// The default configuration is embedded in the binary. A YAML file passed with
// --config is decoded on top of it, so a file that only sets "output" keeps the
// built-in sources. SEMINAR_EVENTS_OUTPUT and SEMINAR_EVENTS_TIMEZONE override the
// corresponding settings last.
package config

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"time"
	_ "time/tzdata" // Europe/Berlin must resolve without system zoneinfo

	"gopkg.in/yaml.v3"

	"github.com/pfrederiksen/seminar-events/internal/extract"
	"github.com/pfrederiksen/seminar-events/internal/normalize"
)

//go:embed sources.yaml
var defaultConfigFS embed.FS

const (
	EnvOutput   = "SEMINAR_EVENTS_OUTPUT"
	EnvTimezone = "SEMINAR_EVENTS_TIMEZONE"

	defaultTimeout = 30 * time.Second
)

// Source is one configured seminar page
type Source struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	URL         string `yaml:"url"`
	Kind        string `yaml:"kind"`
	Location    string `yaml:"location,omitempty"`
	DefaultTime string `yaml:"default_time,omitempty"`
	Disabled    bool   `yaml:"disabled,omitempty"`
}

// Defaults returns the values the normalizer falls back on for this source
func (s Source) Defaults() normalize.Defaults {
	d := normalize.Defaults{
		Source:   s.ID,
		Series:   s.Name,
		Location: s.Location,
	}
	if c, ok := normalize.ParseTime(s.DefaultTime); ok {
		d.Time = &c
	}
	return d
}

// Config holds the run settings and the source list
type Config struct {
	Output   string   `yaml:"output"`
	Timezone string   `yaml:"timezone"`
	Timeout  string   `yaml:"timeout"`
	Sources  []Source `yaml:"sources"`
}

// EnabledSources returns the sources that are not disabled, in configured order
func (c *Config) EnabledSources() []Source {
	var out []Source
	for _, s := range c.Sources {
		if !s.Disabled {
			out = append(out, s)
		}
	}
	return out
}

// Location loads the canonical time zone
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// TimeoutDuration returns the per-fetch timeout, defaulting to 30s
func (c *Config) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return defaultTimeout
	}
	return d
}

// Default returns the embedded configuration
func Default() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("sources.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := decode(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

// Load returns the embedded configuration overlaid with the file at path (if path
// is non-empty) and the environment, and validates the result.
func Load(path string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := decode(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if v := os.Getenv(EnvOutput); v != "" {
		cfg.Output = v
	}
	if v := os.Getenv(EnvTimezone); v != "" {
		cfg.Timezone = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode unmarshals YAML strictly so typos in keys are reported
func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate checks the settings and every source
func (c *Config) Validate() error {
	if c.Output == "" {
		return errors.New("output path is required")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.Timeout != "" {
		if d, err := time.ParseDuration(c.Timeout); err != nil || d <= 0 {
			return fmt.Errorf("invalid timeout %q", c.Timeout)
		}
	}
	if len(c.EnabledSources()) == 0 {
		return errors.New("no enabled sources configured")
	}

	registry := extract.DefaultRegistry()
	seen := make(map[string]bool)
	for i, s := range c.Sources {
		if s.ID == "" {
			return fmt.Errorf("source %d: id is required", i)
		}
		if seen[s.ID] {
			return fmt.Errorf("source %q: duplicate id", s.ID)
		}
		seen[s.ID] = true

		if s.URL == "" {
			return fmt.Errorf("source %q: url is required", s.ID)
		}
		u, err := url.Parse(s.URL)
		if err != nil {
			return fmt.Errorf("source %q: invalid url: %w", s.ID, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("source %q: url scheme must be http or https, got %q", s.ID, u.Scheme)
		}
		if _, err := registry.Lookup(extract.Kind(s.Kind)); err != nil {
			return fmt.Errorf("source %q: %w", s.ID, err)
		}
		if s.DefaultTime != "" {
			if _, ok := normalize.ParseTime(s.DefaultTime); !ok {
				return fmt.Errorf("source %q: invalid default_time %q", s.ID, s.DefaultTime)
			}
		}
	}
	return nil
}
