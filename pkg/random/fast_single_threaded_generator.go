package random

import (
	crypto_rand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// NewFastSingleThreadedGenerator creates a new SingleThreadedGenerator
// that is not suitable for cryptographic purposes. The generator is
// randomly seeded.
func NewFastSingleThreadedGenerator() SingleThreadedGenerator {
	var seed [16]byte
	if _, err := crypto_rand.Read(seed[:]); err != nil {
		panic("Failed to obtain random seed: " + err.Error())
	}
	return rand.New(
		rand.NewPCG(
			binary.LittleEndian.Uint64(seed[:8]),
			binary.LittleEndian.Uint64(seed[8:]),
		),
	)
}
