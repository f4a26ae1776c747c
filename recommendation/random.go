package recommendation

import (
	"math/rand/v2"
	"sync"
	"time"
)

// LockedSource is a seeded random source shared by every request, calls are serialized.
type LockedSource struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewLockedSource(seed uint64) *LockedSource {
	return &LockedSource{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewRandomSource seeds from the clock when seed is nil.
func NewRandomSource(seed *int) *LockedSource {
	if seed == nil {
		return NewLockedSource(uint64(time.Now().UnixNano()))
	}
	return NewLockedSource(uint64(*seed))
}

// IntN returns a value in [0, n). It panics if n <= 0.
func (s *LockedSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.IntN(n)
}
