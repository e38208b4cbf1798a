package bluenoise

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/unixpickle/model3d/model2d"

	"github.com/voidshard/bluenoise/internal/grid"
	"github.com/voidshard/bluenoise/internal/queue"
)

// Sampler throws darts: it grows a set of points outwards from a random seed,
// accepting candidates that are no closer than the minimum distance to any
// point accepted so far.
//
// A Sampler can be run many times, each run starts from scratch. It is not
// safe for concurrent use; use one Sampler (and one Rand) per goroutine.
type Sampler struct {
	cfg     *Config
	factory PointFactory
	rng     Rand
	seed    int64
	cfilt   []CandidateFilter
	log     logrus.FieldLogger

	// state of the current / last run, replaced together by reset()
	bounds r2.Rect
	grid   *grid.Grid
	queue  *queue.Queue
	points []*Point
	stats  Stats
}

// NewSampler returns a Sampler for the given config.
// The config is read at the start of each run, so changes made between runs
// are picked up by the next one.
func NewSampler(cfg *Config) (*Sampler, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	s := &Sampler{
		cfg:     cfg,
		factory: DefaultFactory{},
		log:     logrus.StandardLogger(),
		queue:   queue.New(),
		points:  []*Point{},
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s.SetSeed(seed)

	return s, nil
}

// Sample runs a sampler once with the given settings & returns the points in
// the order they were accepted.
// A nil factory implies DefaultFactory, a nil rng implies one seeded by cfg.Seed.
func Sample(cfg *Config, f PointFactory, rng Rand) ([]*Point, error) {
	s, err := NewSampler(cfg)
	if err != nil {
		return nil, err
	}
	if f != nil {
		s.SetFactory(f)
	}
	if rng != nil {
		s.SetRand(rng)
	}
	return s.Sample()
}

// SetSeed replaces our random source with a math/rand generator using seed.
func (s *Sampler) SetSeed(seed int64) {
	s.seed = seed
	s.rng = rand.New(rand.NewSource(seed))
}

// SetRand sets the random source used by subsequent runs.
func (s *Sampler) SetRand(rng Rand) {
	s.rng = rng
}

// SetFactory sets how points are built & how much room each needs.
func (s *Sampler) SetFactory(f PointFactory) {
	s.factory = f
}

// SetCandidateFilters sets filters that accept / reject a proposed point
// without reference to other points.
func (s *Sampler) SetCandidateFilters(f ...CandidateFilter) {
	s.cfilt = f
}

// SetLogger sets where we write debug information.
func (s *Sampler) SetLogger(l logrus.FieldLogger) {
	s.log = l
}

// Seed returns the seed last given to SetSeed (or chosen by NewSampler).
func (s *Sampler) Seed() int64 {
	return s.seed
}

// Sample runs the sampler to completion.
func (s *Sampler) Sample() ([]*Point, error) {
	return s.SampleContext(context.Background())
}

// SampleContext runs the sampler, giving up if ctx is done.
// The context is checked once per active point.
//
// If Config.MaxSamples is reached the points accepted so far are returned
// along with an error wrapping ErrSampleLimit.
func (s *Sampler) SampleContext(ctx context.Context) ([]*Point, error) {
	cfg := *s.cfg // settings are fixed for the duration of the run
	err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	s.reset(&cfg)

	err = s.run(ctx, &cfg)
	s.stats.Cells = s.grid.Count()
	s.stats.GridCells = s.grid.Width() * s.grid.Height()
	if errors.Is(err, ErrSampleLimit) {
		s.log.WithField("max_samples", cfg.MaxSamples).Warn("sample limit reached, result is partial")
		return s.Points(), err
	} else if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"samples":  len(s.points),
		"popped":   s.stats.Popped,
		"attempts": s.stats.Attempts,
		"rejected": s.stats.Rejected(),
		"cells":    s.stats.Cells,
	}).Debug("sampling complete")

	return s.Points(), nil
}

// reset replaces the grid, queue & sample list in one go so a run never sees
// anything from the previous one.
func (s *Sampler) reset(cfg *Config) {
	s.bounds = r2.Rect{
		X: r1.Interval{Lo: 0, Hi: cfg.Width},
		Y: r1.Interval{Lo: 0, Hi: cfg.Height},
	}
	s.grid = grid.New(cfg.CellSize(), cfg.Width, cfg.Height)
	s.queue.Reset()
	s.points = []*Point{}
	s.stats = Stats{}

	d := cfg.searchRadius()
	if need := MinSearchRadius(s.grid.CellSize(), cfg.MinDist); d < need {
		s.log.WithFields(logrus.Fields{
			"search_radius": d,
			"needed":        need,
		}).Warn("search radius too small for min_dist, scans will be widened")
	}

	s.log.WithFields(logrus.Fields{
		"cell_size":   s.grid.CellSize(),
		"grid_width":  s.grid.Width(),
		"grid_height": s.grid.Height(),
	}).Debug("grid ready")
}

// run is the main dart throwing loop.
func (s *Sampler) run(ctx context.Context, cfg *Config) error {
	d := cfg.searchRadius()
	widened := false

	first := s.factory.Create(model2d.Coord{
		X: s.rng.Float64() * cfg.Width,
		Y: s.rng.Float64() * cfg.Height,
	})
	s.accept(first)
	if s.full(cfg) {
		return errors.Wrapf(ErrSampleLimit, "stopped at %d points", len(s.points))
	}

	for !s.queue.Empty() {
		err := ctx.Err()
		if err != nil {
			return errors.Wrapf(err, "sampling stopped after %d points", len(s.points))
		}

		p := s.points[s.queue.PopRandom(s.rng)]
		s.stats.Popped++
		mds := s.factory.MinDistFor(p, cfg.MinDist)

		// every attempt is made, accepting a point doesn't end the round
		for i := 0; i < cfg.RecursiveCount; i++ {
			s.stats.Attempts++

			candidate := s.around(p, mds)
			cmds := s.factory.MinDistFor(candidate, cfg.MinDist)

			if !s.bounds.ContainsPoint(r2.Point{X: candidate.X, Y: candidate.Y}) {
				s.stats.OutOfBounds++
				continue
			}
			if !s.passesFilters(candidate.Coord) {
				s.stats.Filtered++
				continue
			}
			// a factory may ask for more room than the configured window can see
			dc := s.window(d, cmds)
			if dc > d && !widened {
				widened = true
				s.log.WithFields(logrus.Fields{
					"search_radius": d,
					"widened_to":    dc,
					"min_dist":      cmds,
				}).Debug("search radius widened for per point min_dist")
			}
			if s.grid.AnyWithin(candidate.Coord, dc, cmds) {
				s.stats.TooClose++
				continue
			}
			if !s.accept(candidate) {
				s.stats.CellTaken++
				continue
			}
			if s.full(cfg) {
				return errors.Wrapf(ErrSampleLimit, "stopped at %d points", len(s.points))
			}
		}
	}

	return nil
}

// window returns the search radius needed to see every point closer than
// dist, never less than d. The result is capped at the grid's longest side,
// which already covers the whole grid.
func (s *Sampler) window(d int, dist float64) int {
	limit := s.grid.Width()
	if s.grid.Height() > limit {
		limit = s.grid.Height()
	}

	need := math.Floor(dist/s.grid.CellSize()) + 2
	if !(need < float64(limit)) { // also catches NaN & Inf
		need = float64(limit)
	}
	if n := int(need); n > d {
		return n
	}
	return d
}

// around returns a candidate at a random angle & a distance in [mds, 2*mds)
// from p. Nb. the distance is uniform, not area weighted, so candidates
// bunch up towards the inner edge of the ring.
func (s *Sampler) around(p *Point, mds float64) *Point {
	rad := s.rng.Float64() * 2 * math.Pi
	length := mds + s.rng.Float64()*mds
	return s.factory.Create(p.Coord.Add(model2d.Coord{
		X: math.Cos(rad) * length,
		Y: math.Sin(rad) * length,
	}))
}

// accept records p in the grid, queue & result list.
// Returns false if p's grid cell is already taken.
func (s *Sampler) accept(p *Point) bool {
	id := len(s.points)
	if !s.grid.TryOccupy(id, p.Coord) {
		return false
	}
	s.points = append(s.points, p)
	s.queue.Push(id)
	s.stats.Accepted++
	return true
}

// passesFilters returns if the candidate is acceptable to every CandidateFilter
func (s *Sampler) passesFilters(at model2d.Coord) bool {
	for _, fn := range s.cfilt {
		if !fn(at) {
			return false
		}
	}
	return true
}

// full returns if the configured MaxSamples has been reached
func (s *Sampler) full(cfg *Config) bool {
	return cfg.MaxSamples > 0 && len(s.points) >= cfg.MaxSamples
}

// Points returns the points accepted by the last run, in acceptance order.
// The slice is a copy, the points themselves are shared.
func (s *Sampler) Points() []*Point {
	out := make([]*Point, len(s.points))
	copy(out, s.points)
	return out
}

// Stats returns counts from the last run.
func (s *Sampler) Stats() Stats {
	return s.stats
}

// Bounds returns the sampling rectangle of the last run.
func (s *Sampler) Bounds() r2.Rect {
	return s.bounds
}

// CellSize returns the grid cell side of the last run (0 before any run).
func (s *Sampler) CellSize() float64 {
	if s.grid == nil {
		return 0
	}
	return s.grid.CellSize()
}

// GridWidth returns the grid width in cells of the last run.
func (s *Sampler) GridWidth() int {
	if s.grid == nil {
		return 0
	}
	return s.grid.Width()
}

// CellOccupied returns if grid cell (x, y) of the last run holds a point.
// Cells outside the grid are never occupied.
func (s *Sampler) CellOccupied(x, y int) bool {
	if s.grid == nil {
		return false
	}
	return s.grid.Occupied(x, y)
}

// PointIn returns the point held by grid cell (x, y) of the last run, if any.
func (s *Sampler) PointIn(x, y int) (*Point, bool) {
	if s.grid == nil {
		return nil, false
	}
	id, _, ok := s.grid.At(x, y)
	if !ok {
		return nil, false
	}
	return s.points[id], true
}

// GridHeight returns the grid height in cells of the last run.
func (s *Sampler) GridHeight() int {
	if s.grid == nil {
		return 0
	}
	return s.grid.Height()
}
