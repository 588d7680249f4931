// Package random provides the randomness behind password generation.
//
// Sources are seeded math/rand/v2 generators. They are fast and unpredictable
// enough for a convenience tool but make no cryptographic guarantee.
package random

import (
	cryptorand "crypto/rand"
	"math/rand/v2"
	"sync"

	"github.com/doeshing/passgen-go/internal/ports"
)

// Source is a goroutine-safe ports.RandomSource.
type Source struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New returns a ChaCha8 source seeded from the operating system.
func New() *Source {
	var seed [32]byte
	_, _ = cryptorand.Read(seed[:])
	return &Source{rng: rand.New(rand.NewChaCha8(seed))}
}

// NewSeeded returns a deterministic source, used for reproducible output.
func NewSeeded(seed uint64) *Source {
	return &Source{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// IntN returns a uniform int in [0, n).
func (s *Source) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}

var _ ports.RandomSource = (*Source)(nil)
