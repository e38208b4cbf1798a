package queue

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedIntn always picks the same slot (modulo length)
type fixedIntn int

func (f fixedIntn) Intn(n int) int {
	return int(f) % n
}

func TestPushPop(t *testing.T) {
	q := New()
	assert.True(t, q.Empty())

	for i := 0; i < 5; i++ {
		q.Push(i)
	}
	assert.Equal(t, 5, q.Len())

	rng := rand.New(rand.NewSource(42))
	got := []int{}
	for !q.Empty() {
		got = append(got, q.PopRandom(rng))
	}

	sort.Ints(got)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, got, "every element leaves exactly once")
	assert.Equal(t, 0, q.Len())
}

func TestPopRandomRemovesChosen(t *testing.T) {
	q := New()
	for _, id := range []int{10, 11, 12, 13} {
		q.Push(id)
	}

	assert.Equal(t, 11, q.PopRandom(fixedIntn(1)))
	assert.Equal(t, 3, q.Len())

	rest := []int{}
	for !q.Empty() {
		rest = append(rest, q.PopRandom(fixedIntn(0)))
	}
	sort.Ints(rest)
	assert.Equal(t, []int{10, 12, 13}, rest)
}

func TestPopRandomUniform(t *testing.T) {
	const (
		size   = 4
		trials = 20000
	)
	rng := rand.New(rand.NewSource(7))
	hits := make([]int, size)

	for i := 0; i < trials; i++ {
		q := New()
		for id := 0; id < size; id++ {
			q.Push(id)
		}
		hits[q.PopRandom(rng)]++
	}

	for id, n := range hits {
		frac := float64(n) / trials
		assert.InDelta(t, 1.0/size, frac, 0.02, "element %d", id)
	}
}

func TestPopRandomEmptyPanics(t *testing.T) {
	q := New()
	require.Panics(t, func() {
		q.PopRandom(fixedIntn(0))
	})
}

func TestReset(t *testing.T) {
	q := New()
	q.Push(1)
	q.Push(2)
	q.Reset()
	assert.True(t, q.Empty())
}
