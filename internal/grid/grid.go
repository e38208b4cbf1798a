package grid

import (
	"math"

	"github.com/boljen/go-bitmap"
	"github.com/unixpickle/model3d/model2d"
)

// Grid is a uniform grid laid over the sampling rectangle [0,width]x[0,height].
// Each cell holds at most one point; a cell is occupied once and never vacated.
//
// Points are referred to by an integer id (their index in the caller's
// sample list), we keep a copy of the coords so the neighbour scan doesn't
// have to chase pointers.
type Grid struct {
	cellSize float64
	width    int
	height   int

	occupied bitmap.Bitmap
	ids      []int
	coords   []model2d.Coord
	count    int
}

// New returns an empty grid with cells of side cellSize covering width x height.
// Dimensions are ceil(width/cellSize) x ceil(height/cellSize), at least 1x1.
func New(cellSize, width, height float64) *Grid {
	w := Cells(width, cellSize)
	h := Cells(height, cellSize)
	return &Grid{
		cellSize: cellSize,
		width:    w,
		height:   h,
		occupied: bitmap.New(w * h),
		ids:      make([]int, w*h),
		coords:   make([]model2d.Coord, w*h),
	}
}

// Cells returns how many cells of the given size are needed to span length.
func Cells(length, cellSize float64) int {
	n := int(math.Ceil(length / cellSize))
	if n < 1 {
		return 1
	}
	return n
}

// CellSize returns the side length of a single cell.
func (g *Grid) CellSize() float64 {
	return g.cellSize
}

// Width in cells
func (g *Grid) Width() int {
	return g.width
}

// Height in cells
func (g *Grid) Height() int {
	return g.height
}

// CellIndex returns the (x, y) cell for the given position.
// No clamping is done, callers are expected to have checked bounds.
func (g *Grid) CellIndex(at model2d.Coord) (int, int) {
	return int(math.Floor(at.X / g.cellSize)), int(math.Floor(at.Y / g.cellSize))
}

// Occupied returns if the cell (x, y) holds a point. Out of range cells are empty.
func (g *Grid) Occupied(x, y int) bool {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return false
	}
	return g.occupied.Get(g.offset(x, y))
}

// At returns the id & position of the point in cell (x, y), if any.
func (g *Grid) At(x, y int) (int, model2d.Coord, bool) {
	if !g.Occupied(x, y) {
		return 0, model2d.Coord{}, false
	}
	i := g.offset(x, y)
	return g.ids[i], g.coords[i], true
}

// TryOccupy stores the point with the given id in the cell covering at.
// Returns false (and stores nothing) if that cell is already taken.
//
// A position lying exactly on the far edge of the rectangle maps one past the
// last cell when the rectangle is a whole number of cells wide, so the index
// is pulled back into range here.
func (g *Grid) TryOccupy(id int, at model2d.Coord) bool {
	x, y := g.CellIndex(at)
	x = clamp(x, 0, g.width-1)
	y = clamp(y, 0, g.height-1)

	i := g.offset(x, y)
	if g.occupied.Get(i) {
		return false
	}
	g.occupied.Set(i, true)
	g.ids[i] = id
	g.coords[i] = at
	g.count++
	return true
}

// Neighbours calls fn for every occupied cell in the window
// [cx-d, cx+d) x [cy-d, cy+d) around the cell covering at, clamped to the grid.
// Iteration stops early if fn returns false.
func (g *Grid) Neighbours(at model2d.Coord, d int, fn func(id int, c model2d.Coord) bool) {
	cx, cy := g.CellIndex(at)

	startX := maxint(cx-d, 0)
	endX := minint(cx+d, g.width)
	startY := maxint(cy-d, 0)
	endY := minint(cy+d, g.height)

	for x := startX; x < endX; x++ {
		for y := startY; y < endY; y++ {
			i := g.offset(x, y)
			if !g.occupied.Get(i) {
				continue
			}
			if !fn(g.ids[i], g.coords[i]) {
				return
			}
		}
	}
}

// AnyWithin returns true if some occupied cell in the search window holds a
// point strictly closer than dist to at.
func (g *Grid) AnyWithin(at model2d.Coord, d int, dist float64) bool {
	found := false
	g.Neighbours(at, d, func(_ int, c model2d.Coord) bool {
		if c.Dist(at) < dist {
			found = true
			return false
		}
		return true
	})
	return found
}

// Count returns the number of occupied cells.
func (g *Grid) Count() int {
	return g.count
}

// offset turns a cell index into a position in our flat arrays
func (g *Grid) offset(x, y int) int {
	return y*g.width + x
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// maxint returns the highest of two ints
func maxint(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// minint returns the lowest of two ints
func minint(a, b int) int {
	if a < b {
		return a
	}
	return b
}
