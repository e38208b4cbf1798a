package bluenoise

import (
	"github.com/golang/geo/r2"
	"github.com/unixpickle/model3d/model2d"

	"github.com/voidshard/bluenoise/internal/voronoi"
)

// Cell is the part of the sampling area closer to Site than to any other point.
type Cell struct {
	Site  *Point
	Edges [][2]model2d.Coord
}

// Cells returns the voronoi cell of every point, clipped to bounds, in the
// same order as points. Handy for turning samples into regions (districts,
// biomes, shards ..).
func Cells(points []*Point, bounds r2.Rect) []*Cell {
	sites := make([]model2d.Coord, len(points))
	for i, p := range points {
		sites[i] = p.Coord
	}

	dg := voronoi.New(bounds, sites).Cells()

	out := make([]*Cell, len(dg))
	for i, vc := range dg {
		c := &Cell{Site: points[i], Edges: make([][2]model2d.Coord, len(vc.Edges))}
		for j, e := range vc.Edges {
			c.Edges[j] = [2]model2d.Coord{e[0], e[1]}
		}
		out[i] = c
	}
	return out
}

// Cells returns the voronoi cells of the points from the last run.
func (s *Sampler) Cells() []*Cell {
	return Cells(s.points, s.bounds)
}
