package queue

import (
	"github.com/unixpickle/essentials"
)

// Intn is the bit of a random source we need to pick an element.
type Intn interface {
	Intn(n int) int
}

// Queue is the unordered set of active points (by id) that may still spawn
// neighbours. Elements leave in uniformly random order.
type Queue struct {
	active []int
}

// New returns an empty Queue
func New() *Queue {
	return &Queue{active: []int{}}
}

// Push adds an id to the active set.
func (q *Queue) Push(id int) {
	q.active = append(q.active, id)
}

// PopRandom removes & returns an element chosen uniformly at random.
// It panics if the queue is empty, callers must check Empty() first.
func (q *Queue) PopRandom(rng Intn) int {
	if len(q.active) == 0 {
		panic("queue: PopRandom called on empty queue")
	}
	i := rng.Intn(len(q.active))
	id := q.active[i]
	essentials.UnorderedDelete(&q.active, i)
	return id
}

// Empty returns true if there is nothing left to pop.
func (q *Queue) Empty() bool {
	return len(q.active) == 0
}

// Len returns the number of active elements.
func (q *Queue) Len() int {
	return len(q.active)
}

// Reset drops every element, keeping the allocated space.
func (q *Queue) Reset() {
	q.active = q.active[:0]
}
