package bluenoise

import (
	"github.com/unixpickle/model3d/model2d"
)

// Rand is the random source a Sampler draws from.
// A *rand.Rand from math/rand satisfies it. Rand is stateful; a run is
// exactly reproducible given a Rand in the same state & the same Config.
type Rand interface {
	// Float64 returns a number in [0.0,1.0)
	Float64() float64

	// Intn returns a number in [0,n), n > 0
	Intn(n int) int
}

// PointFactory tells the sampler how to build points & how far apart they
// need to be.
// We only have two questions;
// - what is the point at this position? (ie. what payload does it carry)
// - how much room does this point need?
type PointFactory interface {
	// Create returns a new Point at the given position.
	Create(at model2d.Coord) *Point

	// MinDistFor returns the minimum separation required around p.
	// minDist is the configured global value; implementations that don't
	// vary density should return it unchanged. Returning less than minDist
	// is not supported (the grid holds one point per cell).
	MinDistFor(p *Point, minDist float64) float64
}

// CandidateFilter accepts or rejects a candidate position without reference
// to any other point. Filters run after the bounds check and before the
// (more expensive) neighbourhood check. The seed point is never filtered.
type CandidateFilter func(at model2d.Coord) bool
