package bluenoise

import (
	"github.com/unixpickle/model3d/model2d"
)

// Point is an accepted sample.
// The position is fixed once the point is accepted; Payload is whatever the
// PointFactory attached (nil for DefaultFactory).
type Point struct {
	model2d.Coord
	Payload interface{}
}

// Stats holds generic counts about the last run
type Stats struct {
	// active points taken from the queue
	Popped int

	// candidates thrown (Popped * RecursiveCount unless the run was cut short)
	Attempts int

	// points accepted, including the seed
	Accepted int

	// grid cells holding a point once the run ended, out of GridCells
	Cells     int
	GridCells int

	// candidate rejections by reason
	OutOfBounds int
	Filtered    int
	TooClose    int
	CellTaken   int
}

// Rejected returns the total number of rejected candidates
func (s *Stats) Rejected() int {
	return s.OutOfBounds + s.Filtered + s.TooClose + s.CellTaken
}
