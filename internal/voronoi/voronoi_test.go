package voronoi

import (
	"math"
	"testing"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unixpickle/model3d/model2d"
)

func square(size float64) r2.Rect {
	return r2.Rect{X: r1.Interval{Lo: 0, Hi: size}, Y: r1.Interval{Lo: 0, Hi: size}}
}

// edgeBounds returns the min & max of all edge end points
func edgeBounds(c *Cell) (model2d.Coord, model2d.Coord) {
	min := model2d.Coord{X: math.Inf(1), Y: math.Inf(1)}
	max := model2d.Coord{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, e := range c.Edges {
		for _, p := range e {
			min = min.Min(p)
			max = max.Max(p)
		}
	}
	return min, max
}

func TestQuadrants(t *testing.T) {
	sites := []model2d.Coord{
		{X: 2.5, Y: 2.5},
		{X: 7.5, Y: 2.5},
		{X: 2.5, Y: 7.5},
		{X: 7.5, Y: 7.5},
	}
	v := New(square(10), sites)
	cells := v.Cells()
	require.Len(t, cells, 4)

	expect := [][2]model2d.Coord{
		{{X: 0, Y: 0}, {X: 5, Y: 5}},
		{{X: 5, Y: 0}, {X: 10, Y: 5}},
		{{X: 0, Y: 5}, {X: 5, Y: 10}},
		{{X: 5, Y: 5}, {X: 10, Y: 10}},
	}
	for i, c := range cells {
		assert.Equal(t, sites[i], c.Center)
		require.NotEmpty(t, c.Edges)

		min, max := edgeBounds(c)
		assert.InDelta(t, expect[i][0].X, min.X, 1e-6, "cell %d", i)
		assert.InDelta(t, expect[i][0].Y, min.Y, 1e-6, "cell %d", i)
		assert.InDelta(t, expect[i][1].X, max.X, 1e-6, "cell %d", i)
		assert.InDelta(t, expect[i][1].Y, max.Y, 1e-6, "cell %d", i)
	}
}

func TestSingleSiteIsWholeArea(t *testing.T) {
	v := New(square(4), []model2d.Coord{{X: 1, Y: 3}})
	cells := v.Cells()
	require.Len(t, cells, 1)

	min, max := edgeBounds(cells[0])
	assert.InDelta(t, 0, min.X, 1e-9)
	assert.InDelta(t, 0, min.Y, 1e-9)
	assert.InDelta(t, 4, max.X, 1e-9)
	assert.InDelta(t, 4, max.Y, 1e-9)
}

func TestRepairDropsSingularEdges(t *testing.T) {
	sites := []model2d.Coord{{X: 3, Y: 3}, {X: 6, Y: 7}, {X: 8, Y: 2}, {X: 1, Y: 9}}
	v := New(square(10), sites)
	for i, c := range v.Cells() {
		require.NotEmpty(t, c.Edges, "cell %d", i)
		for _, e := range c.Edges {
			assert.NotEqual(t, e[0], e[1], "cell %d has a zero length edge", i)
		}
	}
}

func TestCellFor(t *testing.T) {
	sites := []model2d.Coord{{X: 1, Y: 1}, {X: 9, Y: 9}}
	v := New(square(10), sites)

	assert.Equal(t, 0, v.CellFor(2, 2))
	assert.Equal(t, 1, v.CellFor(8, 7))
	assert.Equal(t, square(10), v.Bounds())
}

func TestCellForEmpty(t *testing.T) {
	v := New(square(10), nil)
	assert.Equal(t, -1, v.CellFor(1, 1))
	assert.Empty(t, v.Cells())
}

func TestOrdered(t *testing.T) {
	a := &model2d.Segment{{X: 0, Y: 0}, {X: 1, Y: 0}}
	b := &model2d.Segment{{X: 1, Y: 0}, {X: 1, Y: 1}}
	c := &model2d.Segment{{X: 1, Y: 1}, {X: 0, Y: 0}}

	assert.Equal(t, []*model2d.Segment{a, b, c}, ordered([]*model2d.Segment{a, c, b}))

	// broken chain is left alone
	d := &model2d.Segment{{X: 5, Y: 5}, {X: 6, Y: 6}}
	in := []*model2d.Segment{a, d}
	assert.Equal(t, in, ordered(in))
}
