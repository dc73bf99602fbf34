package vanity

import (
	"crypto/rand"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// EntropySource produces secure random bytes. Implementations must be safe
// for concurrent use: every generator worker reads from the same source.
type EntropySource interface {
	Read(p []byte) (n int, err error)
}

// SystemEntropy returns the operating system's CSPRNG.
func SystemEntropy() EntropySource {
	return rand.Reader
}

// KeySource draws private scalars from an entropy source and derives their
// public keys.
type KeySource struct {
	entropy EntropySource
}

// NewKeySource creates a key source reading from entropy.
func NewKeySource(entropy EntropySource) *KeySource {
	return &KeySource{entropy: entropy}
}

// Generate returns a fresh keypair.
//
// Returns:
//   - A keypair with a scalar uniformly drawn from [1, n-1]
//   - An error wrapping ErrEntropy if the entropy source fails
func (s *KeySource) Generate() (Keypair, error) {
	priv, err := secp256k1.GeneratePrivateKeyFromRand(s.entropy)
	if err != nil {
		return Keypair{}, fmt.Errorf("%w: %v", ErrEntropy, err)
	}
	return NewKeypair(priv), nil
}
