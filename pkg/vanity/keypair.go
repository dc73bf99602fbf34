package vanity

import (
	"encoding/hex"

	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// EncodedKeyLen is the length of both encoded fields of a match record:
// 32 bytes as lowercase hex.
const EncodedKeyLen = 64

// Keypair is a secp256k1 private scalar together with its public point.
// It is immutable once created.
type Keypair struct {
	priv *secp256k1.PrivateKey
	pub  *secp256k1.PublicKey
}

// NewKeypair derives the public point of priv.
func NewKeypair(priv *secp256k1.PrivateKey) Keypair {
	return Keypair{priv: priv, pub: priv.PubKey()}
}

// PrivateKey returns the private scalar.
func (k Keypair) PrivateKey() *secp256k1.PrivateKey {
	return k.priv
}

// PublicKey returns the public point.
func (k Keypair) PublicKey() *secp256k1.PublicKey {
	return k.pub
}

// IsZero reports whether k is the zero Keypair.
func (k Keypair) IsZero() bool {
	return k.priv == nil
}

// EncodedPublicKey returns the lowercase hex of the 32-byte x-only public key.
func (k Keypair) EncodedPublicKey() string {
	return hex.EncodeToString(schnorr.SerializePubKey(k.pub))
}

// EncodedPrivateKey returns the lowercase hex of the 32-byte private scalar.
func (k Keypair) EncodedPrivateKey() string {
	return hex.EncodeToString(k.priv.Serialize())
}

// Record returns the match record for k.
func (k Keypair) Record() MatchRecord {
	return MatchRecord{
		PrivateKey: k.EncodedPrivateKey(),
		PublicKey:  k.EncodedPublicKey(),
	}
}

// String prints only the public half so keypairs are safe to log.
func (k Keypair) String() string {
	if k.IsZero() {
		return "<empty keypair>"
	}
	return k.EncodedPublicKey()
}
