package section

import (
	"fmt"
	"log/slog"
	"strings"
)

const (
	// DefaultTolerance is the welding distance ε in model units
	DefaultTolerance = 1e-4
	// DefaultSegments is the number of points generated for analytic curves
	// and the side count used when a cylinder has to be tessellated
	DefaultSegments = 64

	// planeEpsilon decides when a vertex lies on the cutting plane
	planeEpsilon = 1e-10
)

// BranchPolicy chooses the continuation when more than one unused segment
// leaves a point during loop tracing.
type BranchPolicy int

const (
	// BranchFirst takes the first unused segment in incidence order
	BranchFirst BranchPolicy = iota
	// BranchSharpestTurn takes the candidate with the sharpest turn in a
	// consistent rotational sense around the plane normal
	BranchSharpestTurn
)

// String returns the config name of the policy
func (b BranchPolicy) String() string {
	switch b {
	case BranchSharpestTurn:
		return "sharpest"
	default:
		return "first"
	}
}

// ParseBranchPolicy parses "first" or "sharpest"
func ParseBranchPolicy(name string) (BranchPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "first":
		return BranchFirst, nil
	case "sharpest", "sharpest-turn":
		return BranchSharpestTurn, nil
	default:
		return BranchFirst, fmt.Errorf("unknown branch policy %q (expected first or sharpest)", name)
	}
}

// Options tunes a section computation. The zero value is not useful; start
// from defaultOptions.
type Options struct {
	Tolerance float64
	Workers   int
	Branch    BranchPolicy
	Segments  int
	// Simplify removes loop points that deviate less than Tolerance from
	// the straight run through their neighbours
	Simplify bool
	Logger   *slog.Logger
}

// Option mutates Options
type Option func(*Options)

// WithTolerance sets the welding tolerance. Non-positive values are ignored.
func WithTolerance(eps float64) Option {
	return func(o *Options) {
		if eps > 0 {
			o.Tolerance = eps
		}
	}
}

// WithWorkers sets how many goroutines intersect triangles. Values below 2
// keep the computation on the calling goroutine.
func WithWorkers(n int) Option {
	return func(o *Options) {
		o.Workers = n
	}
}

// WithBranchPolicy sets how branching points are resolved
func WithBranchPolicy(b BranchPolicy) Option {
	return func(o *Options) {
		o.Branch = b
	}
}

// WithSegments sets the tessellation count for analytic curves and the
// cylinder fallback mesh. Values below 3 are ignored.
func WithSegments(n int) Option {
	return func(o *Options) {
		if n >= 3 {
			o.Segments = n
		}
	}
}

// WithSimplify toggles removal of collinear loop points
func WithSimplify(enabled bool) Option {
	return func(o *Options) {
		o.Simplify = enabled
	}
}

// WithLogger routes debug output of the pipeline stages to logger
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		if logger != nil {
			o.Logger = logger
		}
	}
}

func defaultOptions() Options {
	return Options{
		Tolerance: DefaultTolerance,
		Workers:   1,
		Branch:    BranchFirst,
		Segments:  DefaultSegments,
		Simplify:  true,
		Logger:    slog.New(slog.DiscardHandler),
	}
}

func buildOptions(opts []Option) Options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
