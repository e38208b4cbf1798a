package voronoi

import (
	"github.com/golang/geo/r2"
	"github.com/unixpickle/model3d/model2d"
)

// repairEpsilon is how close two vertices must be to be merged
const repairEpsilon = 1e-8

// Voronoi is a repaired diagram over a set of sites within bounds
type Voronoi struct {
	dg     Diagram
	tree   *model2d.CoordTree
	index  map[model2d.Coord]int
	bounds r2.Rect
}

// New builds a voronoi diagram of the given sites, clipped to bounds.
func New(bounds r2.Rect, sites []model2d.Coord) *Voronoi {
	me := &Voronoi{bounds: bounds, index: map[model2d.Coord]int{}}

	me.dg = Cells(
		model2d.Coord{X: bounds.X.Lo, Y: bounds.Y.Lo},
		model2d.Coord{X: bounds.X.Hi, Y: bounds.Y.Hi},
		sites,
	)
	me.dg.Repair(repairEpsilon)

	for i, s := range sites {
		if _, ok := me.index[s]; !ok {
			me.index[s] = i
		}
	}
	if len(sites) > 0 {
		me.tree = model2d.NewCoordTree(sites)
	}

	return me
}

// Bounds returns the bounding rect for this diagram
func (v *Voronoi) Bounds() r2.Rect {
	return v.bounds
}

// Cells returns all cells, in the same order as the sites given to New
func (v *Voronoi) Cells() Diagram {
	return v.dg
}

// CellFor returns the index of the cell containing (x, y), ie. that of the
// nearest site. Returns -1 if there are no sites.
func (v *Voronoi) CellFor(x, y float64) int {
	if v.tree == nil {
		return -1
	}
	nearest := v.tree.KNN(1, model2d.Coord{X: x, Y: y})
	if len(nearest) == 0 {
		return -1
	}
	return v.index[nearest[0]]
}
