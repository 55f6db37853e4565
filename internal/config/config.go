// Package config loads gosection settings from a TOML file and command
// line flags. Flags that were set win over the file, the file wins over
// the defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/philipparndt/gosection/internal/logging"
	"github.com/philipparndt/gosection/pkg/openscad"
	"github.com/philipparndt/gosection/pkg/projection"
	"github.com/philipparndt/gosection/pkg/section"
	"github.com/spf13/pflag"
)

// DefaultFile is read from the working directory when no file is given
const DefaultFile = "gosection.toml"

var (
	// ErrInvalid is wrapped by Validate for out of range settings
	ErrInvalid = errors.New("invalid config")
	// ErrUnknownView is wrapped for view names that are not a projection view
	ErrUnknownView = errors.New("unknown view")
)

// Config holds every tunable of the section pipeline and the tool around it
type Config struct {
	Tolerance float64  `toml:"tolerance"`
	Segments  int      `toml:"segments"`
	Workers   int      `toml:"workers"`
	Branch    string   `toml:"branch"`
	Simplify  bool     `toml:"simplify"`
	Views     []string `toml:"views"`
	// Roundness is the largest point spread, relative to the radius, for a
	// loop to be reported as a circle
	Roundness float64 `toml:"roundness"`
	OpenSCAD  string  `toml:"openscad"`
	Debounce  string  `toml:"debounce"`
	Log       Log     `toml:"log"`
}

// Log configures logging
type Log struct {
	Level string `toml:"level"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		Tolerance: section.DefaultTolerance,
		Segments:  section.DefaultSegments,
		Workers:   1,
		Branch:    section.BranchFirst.String(),
		Simplify:  true,
		Views:     []string{"front", "top", "side-a", "side-b"},
		Roundness: 1e-3,
		OpenSCAD:  openscad.DefaultBinary,
		Debounce:  "300ms",
		Log:       Log{Level: "warn"},
	}
}

// Load reads path on top of the defaults. An empty path reads DefaultFile
// when it exists and returns the defaults otherwise.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		if _, err := os.Stat(DefaultFile); err != nil {
			return cfg, nil
		}
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := cfg.decode(data); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) decode(data []byte) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(c)
}

// Validate checks ranges and names
func (c Config) Validate() error {
	if c.Tolerance <= 0 {
		return fmt.Errorf("%w: tolerance must be positive, got %g", ErrInvalid, c.Tolerance)
	}
	if c.Segments < 3 {
		return fmt.Errorf("%w: segments must be at least 3, got %d", ErrInvalid, c.Segments)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalid, c.Workers)
	}
	if c.Roundness < 0 {
		return fmt.Errorf("%w: roundness must not be negative, got %g", ErrInvalid, c.Roundness)
	}
	if _, err := section.ParseBranchPolicy(c.Branch); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if _, err := c.ViewList(); err != nil {
		return err
	}
	if _, err := c.DebounceDuration(); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// ViewList parses Views
func (c Config) ViewList() ([]projection.View, error) {
	views, err := projection.ParseViews(c.Views)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnknownView, err)
	}
	return views, nil
}

// DebounceDuration parses Debounce
func (c Config) DebounceDuration() (time.Duration, error) {
	d, err := time.ParseDuration(c.Debounce)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("%w: debounce %q is not a duration", ErrInvalid, c.Debounce)
	}
	return d, nil
}

// SectionOptions converts the pipeline settings. The config must be valid.
func (c Config) SectionOptions(logger *slog.Logger) []section.Option {
	branch, _ := section.ParseBranchPolicy(c.Branch)
	return []section.Option{
		section.WithTolerance(c.Tolerance),
		section.WithSegments(c.Segments),
		section.WithWorkers(c.Workers),
		section.WithBranchPolicy(branch),
		section.WithSimplify(c.Simplify),
		section.WithLogger(logger),
	}
}

// RegisterFlags adds a flag for every setting that can be overridden on
// the command line, with the defaults as flag defaults.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.Float64("tolerance", d.Tolerance, "welding tolerance in model units")
	fs.Int("segments", d.Segments, "points per analytic curve and sides of tessellated cylinders")
	fs.Int("workers", d.Workers, "goroutines intersecting triangles")
	fs.String("branch", d.Branch, "branch policy at shared points: first or sharpest")
	fs.Bool("simplify", d.Simplify, "drop collinear loop points")
	fs.StringSlice("view", d.Views, "views to project: front, top, side-a, side-b")
	fs.String("openscad", d.OpenSCAD, "openscad executable")
	fs.String("debounce", d.Debounce, "delay before recomputing a changed file")
}

// Override applies the flags of fs that were set explicitly
func (c *Config) Override(fs *pflag.FlagSet) error {
	var err error
	set := func(name string, apply func() error) {
		if err == nil && fs.Changed(name) {
			err = apply()
		}
	}
	set("tolerance", func() (e error) { c.Tolerance, e = fs.GetFloat64("tolerance"); return })
	set("segments", func() (e error) { c.Segments, e = fs.GetInt("segments"); return })
	set("workers", func() (e error) { c.Workers, e = fs.GetInt("workers"); return })
	set("branch", func() (e error) { c.Branch, e = fs.GetString("branch"); return })
	set("simplify", func() (e error) { c.Simplify, e = fs.GetBool("simplify"); return })
	set("view", func() (e error) { c.Views, e = fs.GetStringSlice("view"); return })
	set("openscad", func() (e error) { c.OpenSCAD, e = fs.GetString("openscad"); return })
	set("debounce", func() (e error) { c.Debounce, e = fs.GetString("debounce"); return })
	if err != nil {
		return fmt.Errorf("failed to read flags: %w", err)
	}
	return c.Validate()
}
