package game

import "math/rand/v2"

type Treat struct {
	Index     int
	X, Y      float64
	Collected bool
}

// TreatSet is the collectible set owned by a single room. It is not safe for
// concurrent use; the owning room's lock guards it.
type TreatSet struct {
	treats []Treat
	rng    *rand.Rand
}

// NewTreatSet returns an empty set. A nil rng uses the global source.
func NewTreatSet(rng *rand.Rand) *TreatSet {
	return &TreatSet{rng: rng}
}

// Initialize replaces the set with count uncollected treats.
func (s *TreatSet) Initialize(count int) {
	s.treats = s.treats[:0]
	s.Grow(count)
}

// Grow appends by uncollected treats; indexes continue from the current length.
func (s *TreatSet) Grow(by int) {
	for i := 0; i < by; i++ {
		s.treats = append(s.treats, Treat{
			Index: len(s.treats),
			X:     s.between(TreatMinX, TreatMaxX),
			Y:     s.between(TreatMinY, TreatMaxY),
		})
	}
}

// Collect flips the treat at index to collected. It reports false for an
// out-of-range index or a treat that was already collected.
func (s *TreatSet) Collect(index int) bool {
	if index < 0 || index >= len(s.treats) {
		return false
	}
	if s.treats[index].Collected {
		return false
	}
	s.treats[index].Collected = true
	return true
}

// AllCollected is false for an empty set so an empty room never declares a winner.
func (s *TreatSet) AllCollected() bool {
	if len(s.treats) == 0 {
		return false
	}
	for _, t := range s.treats {
		if !t.Collected {
			return false
		}
	}
	return true
}

func (s *TreatSet) Len() int {
	return len(s.treats)
}

func (s *TreatSet) Snapshot() []Treat {
	out := make([]Treat, len(s.treats))
	copy(out, s.treats)
	return out
}

func (s *TreatSet) between(lo, hi float64) float64 {
	var f float64
	if s.rng != nil {
		f = s.rng.Float64()
	} else {
		f = rand.Float64()
	}
	return lo + f*(hi-lo)
}
