package transaction

import (
	"github.com/certen-labs/objectchain/pkg/committee"
	"github.com/certen-labs/objectchain/pkg/crypto/authsig"
)

// authorityPublicKey recovers an authority's public key from its
// committee-assigned name: AuthorityName is defined as exactly the public
// key's wire bytes, so committee membership alone is enough to verify
// against it without a separate key registry.
func authorityPublicKey(c *committee.Committee, name committee.AuthorityName) (*authsig.PublicKey, bool) {
	if !c.Contains(name) {
		return nil, false
	}
	pk, err := authsig.PublicKeyFromBytes(name[:])
	if err != nil {
		return nil, false
	}
	return pk, true
}

// aggregatePublicKeys sums the public keys of a certificate's signers so a
// quorum certificate's single aggregate signature can be checked in one
// pairing against a single aggregate key.
func aggregatePublicKeys(keys []*authsig.PublicKey) (*authsig.PublicKey, error) {
	return authsig.AggregatePublicKeys(keys)
}
