package util

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"sync"

	"github.com/pkg/errors"
)

// lockedSource serialises access to a source so that one *rand.Rand can be drawn from by several goroutines.
type lockedSource struct {
	mu  sync.Mutex
	src rand.Source64
}

func (s *lockedSource) Int63() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.Int63()
}

func (s *lockedSource) Uint64() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.Uint64()
}

func (s *lockedSource) Seed(seed int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.src.Seed(seed)
}

// SharedRand returns a *rand.Rand seeded with seed that is safe for concurrent use. Its sequence is the one a
// plain rand.New(rand.NewSource(seed)) would produce, interleaved between callers in whatever order they lock it.
func SharedRand(seed int64) *rand.Rand {
	return rand.New(&lockedSource{src: rand.NewSource(seed).(rand.Source64)})
}

// RandomSeed reads a seed from the operating system's secure random source.
func RandomSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, errors.Wrap(err, "reading random seed")
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}
