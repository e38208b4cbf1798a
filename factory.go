package bluenoise

import (
	"github.com/unixpickle/model3d/model2d"
)

// DefaultFactory creates points without payload, all requiring the global
// minimum distance.
type DefaultFactory struct{}

// Create a bare point at the given position
func (DefaultFactory) Create(at model2d.Coord) *Point {
	return &Point{Coord: at}
}

// MinDistFor returns minDist unchanged
func (DefaultFactory) MinDistFor(_ *Point, minDist float64) float64 {
	return minDist
}

// FuncFactory builds a PointFactory from functions. Either may be nil.
//
// Payload is called once per candidate (accepted or not) so it should be cheap.
// MinDist lets the payload drive local density, eg. to follow a density map.
type FuncFactory struct {
	Payload func(at model2d.Coord) interface{}
	MinDist func(p *Point, minDist float64) float64
}

// Create a point, asking Payload for its data
func (f *FuncFactory) Create(at model2d.Coord) *Point {
	p := &Point{Coord: at}
	if f.Payload != nil {
		p.Payload = f.Payload(at)
	}
	return p
}

// MinDistFor defers to MinDist if set, but never goes below the global minDist.
func (f *FuncFactory) MinDistFor(p *Point, minDist float64) float64 {
	if f.MinDist == nil {
		return minDist
	}
	d := f.MinDist(p, minDist)
	if d < minDist {
		return minDist
	}
	return d
}
