package effects

import "github.com/certen-labs/objectchain/pkg/crypto/digest"

// EffectsDigest identifies a TransactionEffects record by the hash of its
// content.
type EffectsDigest = digest.Digest

func hashEffects(e *TransactionEffects) (EffectsDigest, error) {
	return digest.Hash(e)
}
