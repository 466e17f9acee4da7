// Package digest computes the canonical 32-byte SHA3-256 digests used to
// identify transactions, objects, and effects throughout the pipeline.
package digest

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"

	"github.com/certen-labs/objectchain/pkg/wire"
)

// Size is the length in bytes of every digest produced by this package.
const Size = 32

// Digest is a 32-byte SHA3-256 output acting as a content identifier.
type Digest [Size]byte

// String returns the hex encoding of the digest.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// IsZero reports whether d is the all-zero digest.
func (d Digest) IsZero() bool {
	return d == Digest{}
}

// Bytes computes the raw SHA3-256 hash of data.
func Bytes(data []byte) Digest {
	var out Digest
	h := sha3.Sum256(data)
	copy(out[:], h[:])
	return out
}

// Hash canonically encodes v and returns its SHA3-256 digest. This is the
// core's sha3_hash primitive: any value that can be round-tripped through
// the canonical wire encoding can be digested.
func Hash(v interface{}) (Digest, error) {
	b, err := wire.Encode(v)
	if err != nil {
		return Digest{}, err
	}
	return Bytes(b), nil
}

// MustHash is Hash but panics on encoding failure. Reserved for call sites
// where the value's encodability is already a compile-time invariant (e.g.
// hashing the core's own well-formed types), matching spec's treatment of
// digest-inconsistency as a system invariant violation rather than a
// recoverable error.
func MustHash(v interface{}) Digest {
	d, err := Hash(v)
	if err != nil {
		panic(err)
	}
	return d
}
