package voronoi

import (
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/model3d/model2d"
)

// based on
// https://github.com/unixpickle/voronoi-glass/blob/main/voronoi.go
//
// + edge ordering & guards for degenerate cells

// Cell is the region closer to Center than to any other coord.
type Cell struct {
	Center model2d.Coord
	Edges  []*model2d.Segment
}

// Diagram is one Cell per input coord, in input order.
type Diagram []*Cell

// Cells computes the voronoi cells for a list of coordinates, assuming they
// are all contained within the box [min, max].
// Each cell is the box cut by the bisector with every other coord, so this is
// O(n^2); fine for the few hundred / thousand points a sampler produces.
//
// The resulting cells may be slightly misaligned, ie. adjacent edges'
// coordinates may differ due to rounding errors. See Diagram.Repair().
func Cells(min, max model2d.Coord, coords []model2d.Coord) Diagram {
	cells := make(Diagram, len(coords))
	for i, c := range coords {
		constraints := model2d.NewConvexPolytopeRect(min, max)
		for j, c1 := range coords {
			if i == j || c == c1 {
				continue
			}
			mp := c.Mid(c1)
			normal := c1.Sub(c).Normalize()
			constraints = append(constraints, &model2d.LinearConstraint{
				Normal: normal,
				Max:    normal.Dot(mp),
			})
		}
		cells[i] = &Cell{
			Center: c,
			Edges:  constraints.Mesh().SegmentSlice(),
		}
	}
	return cells
}

// Repair merges nearly identical coordinates (closer than epsilon) so
// neighbouring cells share exact vertices, drops edges that collapse to a
// single point & orders each cell's edges end to start where possible.
func (d Diagram) Repair(epsilon float64) {
	coordSlice := d.Coords()
	if len(coordSlice) == 0 {
		return
	}

	coordSet := map[model2d.Coord]bool{}
	for _, c := range coordSlice {
		coordSet[c] = true
	}
	tree := model2d.NewCoordTree(coordSlice)

	mapping := map[model2d.Coord]model2d.Coord{}
	for _, c := range coordSlice {
		if !coordSet[c] {
			continue
		}
		for _, n := range neighborsInDistance(tree, c, epsilon) {
			if coordSet[n] {
				coordSet[n] = false
				mapping[n] = c
			}
		}
	}

	for _, cell := range d {
		for i := len(cell.Edges) - 1; i >= 0; i-- {
			edge := cell.Edges[i]
			for j, c := range edge {
				if m, ok := mapping[c]; ok {
					edge[j] = m
				}
			}
			if edge[0] == edge[1] {
				// this was almost a singular edge
				essentials.UnorderedDelete(&cell.Edges, i)
			}
		}
		cell.Edges = ordered(cell.Edges)
	}
}

// Coords returns every distinct edge end point in the diagram.
func (d Diagram) Coords() []model2d.Coord {
	coordSet := map[model2d.Coord]bool{}
	coordSlice := []model2d.Coord{}
	for _, cell := range d {
		for _, s := range cell.Edges {
			for _, p := range s {
				if !coordSet[p] {
					coordSet[p] = true
					coordSlice = append(coordSlice, p)
				}
			}
		}
	}
	return coordSlice
}

// ordered chains edges so each one starts where the last ended.
// If the edges don't form a single loop they're returned as they were.
func ordered(edges []*model2d.Segment) []*model2d.Segment {
	if len(edges) < 2 {
		return edges
	}

	starts := map[model2d.Coord]*model2d.Segment{}
	for _, e := range edges {
		starts[e[0]] = e
	}

	out := make([]*model2d.Segment, len(edges))
	out[0] = edges[0]
	for i := 0; i < len(edges)-1; i++ {
		next, ok := starts[out[i][1]]
		if !ok || next == edges[0] {
			return edges
		}
		out[i+1] = next
	}
	return out
}

func neighborsInDistance(tree *model2d.CoordTree, c model2d.Coord, epsilon float64) []model2d.Coord {
	for k := 2; true; k++ {
		neighbors := tree.KNN(k, c)
		if len(neighbors) < k {
			return neighbors
		}
		if neighbors[len(neighbors)-1].Dist(c) > epsilon {
			return neighbors[:len(neighbors)-1]
		}
	}
	panic("unreachable")
}
