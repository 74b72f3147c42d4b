package engine

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// RandomSource supplies the uniform draws used by the outcome rolls. The
// resolver never touches a global generator, so callers that need
// reproducible deliveries inject a seeded source.
type RandomSource interface {
	Float64() float64 // uniform in [0, 1)
}

// cryptoSource draws from the OS entropy pool. It is the default for live
// play where reproducibility does not matter.
type cryptoSource struct{}

func (cryptoSource) Float64() float64 {
	var buf [8]byte
	if _, err := cryptorand.Read(buf[:]); err != nil {
		return rand.Float64()
	}
	// Top 53 bits give a uniform float64 in [0, 1)
	u := binary.BigEndian.Uint64(buf[:]) >> 11
	return float64(u) / (1 << 53)
}

// DefaultSource returns the crypto-backed random source.
func DefaultSource() RandomSource { return cryptoSource{} }

type seededSource struct{ r *rand.Rand }

// NewSeededSource returns a deterministic PCG-backed source for tests and
// replay. Each call with the same seed yields the same draw sequence.
func NewSeededSource(seed uint64) RandomSource {
	return &seededSource{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededSource) Float64() float64 { return s.r.Float64() }
