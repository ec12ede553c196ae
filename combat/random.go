package combat

import "golang.org/x/exp/rand"

// Source supplies uniform draws in [0, 1). Resolutions read it in a fixed
// order, so a seeded source replays identically.
type Source interface {
	Float64() float64
}

// NewSource returns a seeded source.
func NewSource(seed uint64) Source {
	return rand.New(rand.NewSource(seed))
}
