package bluenoise

import (
	"io/ioutil"
	"math"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

const (
	// DefaultSearchRadius is the half-width (in cells) of the window scanned
	// around a candidate when looking for points that are too close.
	// See MinSearchRadius for the smallest value that is actually safe.
	DefaultSearchRadius = 5

	// DefaultRecursiveCount is the number of attempts made around each active point.
	DefaultRecursiveCount = 30

	// MaxGridCells caps ceil(Width/cellSize) * ceil(Height/cellSize).
	// Each cell costs roughly 24 bytes, so the cap is a little over 400MB.
	MaxGridCells = 1 << 24
)

// Config holds settings for a single sampling run.
// Changing a Config only affects runs started afterwards.
type Config struct {
	// MinDist is the minimum distance between any two points, required.
	// It also sets the grid resolution (MinDist / sqrt 2), so per-point
	// overrides (see PointFactory) should not go below it.
	MinDist float64 `toml:"min_dist"`

	// Width & Height of the sampling rectangle [0,Width] x [0,Height], required.
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`

	// RecursiveCount is how many candidates we throw around each active point
	// before it is retired. Higher values pack points more densely but take longer.
	// 0 is allowed & yields only the seed point.
	RecursiveCount int `toml:"recursive_count"`

	// SearchRadius is the neighbourhood scanned (in cells) around a candidate.
	// 0 implies DefaultSearchRadius.
	SearchRadius int `toml:"search_radius,omitempty"`

	// MaxSamples stops the run once this many points are accepted.
	// Not needed for correctness (every run terminates) but puts a ceiling on
	// memory & time for careless parameters. 0 or less is "no max".
	MaxSamples int `toml:"max_samples,omitempty"`

	// Seed for rng (random number chosen if not set).
	// Ignored if a Rand is handed to the sampler directly.
	Seed int64 `toml:"seed,omitempty"`
}

// DefaultConfig returns a 10x10 area with points at least 1 apart.
func DefaultConfig() *Config {
	return &Config{
		MinDist:        1,
		Width:          10,
		Height:         10,
		RecursiveCount: DefaultRecursiveCount,
	}
}

// LoadConfig reads a toml file, any settings not given keep their
// DefaultConfig values. The result is validated.
func LoadConfig(fpath string) (*Config, error) {
	data, err := ioutil.ReadFile(fpath)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %s", fpath)
	}

	cfg := DefaultConfig()
	err = toml.Unmarshal(data, cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing config %s", fpath)
	}

	return cfg, cfg.Validate()
}

// Validate returns an error wrapping ErrInvalidParameter if any setting is unusable.
func (c *Config) Validate() error {
	if c == nil {
		return errors.Wrap(ErrInvalidParameter, "nil config")
	}
	if !positive(c.MinDist) {
		return errors.Wrapf(ErrInvalidParameter, "min_dist must be > 0, got %v", c.MinDist)
	}
	if !positive(c.Width) {
		return errors.Wrapf(ErrInvalidParameter, "width must be > 0, got %v", c.Width)
	}
	if !positive(c.Height) {
		return errors.Wrapf(ErrInvalidParameter, "height must be > 0, got %v", c.Height)
	}
	if c.RecursiveCount < 0 {
		return errors.Wrapf(ErrInvalidParameter, "recursive_count must be >= 0, got %d", c.RecursiveCount)
	}
	if c.SearchRadius < 0 {
		return errors.Wrapf(ErrInvalidParameter, "search_radius must be >= 0, got %d", c.SearchRadius)
	}
	if c.MaxSamples < 0 {
		return errors.Wrapf(ErrInvalidParameter, "max_samples must be >= 0, got %d", c.MaxSamples)
	}

	// worked out in floats, the int product can overflow
	cs := c.CellSize()
	w := math.Max(1, math.Ceil(c.Width/cs))
	h := math.Max(1, math.Ceil(c.Height/cs))
	if cells := w * h; math.IsInf(cells, 0) || math.IsNaN(cells) || cells > MaxGridCells {
		return errors.Wrapf(
			ErrInvalidParameter,
			"grid of %.0f x %.0f cells exceeds %d, raise min_dist or shrink the area", w, h, MaxGridCells,
		)
	}
	return nil
}

// CellSize returns the side of a grid cell, MinDist / sqrt(2).
func (c *Config) CellSize() float64 {
	return c.MinDist / math.Sqrt2
}

// searchRadius returns SearchRadius, or the default if unset.
func (c *Config) searchRadius() int {
	if c.SearchRadius <= 0 {
		return DefaultSearchRadius
	}
	return c.SearchRadius
}

// MinSearchRadius returns the smallest search radius (in cells) that cannot
// miss a point closer than maxMinDist, given the grid's cell size.
//
// The window around cell c is [c-d, c+d), so on the high side only d-1 cells
// are covered. A point closer than maxMinDist can sit at most
// floor(maxMinDist/cellSize)+1 cells away, hence +2.
// For a uniform minimum distance this is 3.
func MinSearchRadius(cellSize, maxMinDist float64) int {
	return int(math.Floor(maxMinDist/cellSize)) + 2
}

// positive is true for finite numbers > 0
func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
