package effects

import (
	"fmt"
	"sync"

	"github.com/certen-labs/objectchain/pkg/committee"
	"github.com/certen-labs/objectchain/pkg/crypto/authsig"
	"github.com/certen-labs/objectchain/pkg/crypto/obligation"
	"github.com/certen-labs/objectchain/pkg/transaction"
)

// effectsCore holds what every effects envelope state shares: the
// underlying effects record and its memoized digest. Mirroring the
// transaction envelope, Go's inability to attach variant-specific methods
// to instantiations of a generic type means the three states are three
// concrete structs rather than one TransactionEffectsEnvelope[S].
type effectsCore struct {
	Effects TransactionEffects

	digestOnce sync.Once
	digestVal  EffectsDigest
	digestErr  error
}

// Digest lazily computes and memoizes sha3_hash(Effects).
func (e *effectsCore) Digest() (EffectsDigest, error) {
	e.digestOnce.Do(func() {
		e.digestVal, e.digestErr = e.Effects.Digest()
	})
	return e.digestVal, e.digestErr
}

// UnsignedEffects is an effects record with no authority signature yet.
type UnsignedEffects struct{ effectsCore }

// NewUnsignedEffects wraps a freshly computed effects record.
func NewUnsignedEffects(e TransactionEffects) *UnsignedEffects {
	return &UnsignedEffects{effectsCore{Effects: e}}
}

// Sign has authority counter-sign this effects record's digest, producing
// a SignedEffects.
func (u *UnsignedEffects) Sign(epoch uint64, authority committee.AuthorityName, authorityKey *authsig.PrivateKey) (*SignedEffects, error) {
	d, err := u.Digest()
	if err != nil {
		return nil, err
	}
	sig := authorityKey.Sign(authsig.DomainEffects, d[:])
	return &SignedEffects{
		effectsCore:  effectsCore{Effects: u.Effects},
		AuthSignInfo: transaction.AuthoritySignInfo{Epoch: epoch, Authority: authority, Signature: sig},
	}, nil
}

// SignedEffects is an effects record countersigned by a single authority.
type SignedEffects struct {
	effectsCore
	AuthSignInfo transaction.AuthoritySignInfo
}

// Verify checks the authority signature over this effects record's digest,
// requiring the authority to hold stake in committee and to have signed
// under committee's epoch.
func (s *SignedEffects) Verify(c *committee.Committee) error {
	if s.AuthSignInfo.Epoch != c.Epoch() {
		return fmt.Errorf("effects: signed effects epoch %d does not match committee epoch %d", s.AuthSignInfo.Epoch, c.Epoch())
	}
	if c.Weight(s.AuthSignInfo.Authority) == 0 {
		return fmt.Errorf("effects: authority is not a member of the committee")
	}
	d, err := s.Digest()
	if err != nil {
		return err
	}
	pk, err := authsig.PublicKeyFromBytes(s.AuthSignInfo.Authority[:])
	if err != nil || !pk.Verify(authsig.DomainEffects, s.AuthSignInfo.Signature, d[:]) {
		return fmt.Errorf("effects: authority signature verification failed")
	}
	return nil
}

// CertifiedEffects is an effects record backed by a quorum of authority
// signatures.
type CertifiedEffects struct {
	effectsCore
	AuthSignInfo transaction.AuthorityStrongQuorumSignInfo
}

// NewCertifiedEffects wraps an effects record with an already-aggregated
// quorum sign info.
func NewCertifiedEffects(e TransactionEffects, quorum transaction.AuthorityStrongQuorumSignInfo) *CertifiedEffects {
	return &CertifiedEffects{effectsCore: effectsCore{Effects: e}, AuthSignInfo: quorum}
}

// Verify reconstructs the signer set from the bitmap, requires every bit
// to reference a committee member, requires the summed stake to reach
// quorum_threshold, and checks the aggregate signature over this effects
// record's digest.
func (c *CertifiedEffects) Verify(cmt *committee.Committee) error {
	if c.AuthSignInfo.Epoch != cmt.Epoch() {
		return fmt.Errorf("effects: certificate epoch %d does not match committee epoch %d", c.AuthSignInfo.Epoch, cmt.Epoch())
	}

	var total committee.StakeUnit
	var pubKeys []*authsig.PublicKey
	for _, idx := range c.AuthSignInfo.SignersBitmap.Indices() {
		name, ok := cmt.AuthorityAt(idx)
		if !ok {
			return fmt.Errorf("effects: certificate signer bitmap references unknown authority index %d", idx)
		}
		pk, err := authsig.PublicKeyFromBytes(name[:])
		if err != nil {
			return fmt.Errorf("effects: decode authority public key: %w", err)
		}
		pubKeys = append(pubKeys, pk)
		total += cmt.Weight(name)
	}
	if total < cmt.QuorumThreshold() {
		return fmt.Errorf("effects: certificate stake %d below quorum threshold %d", total, cmt.QuorumThreshold())
	}

	d, err := c.Digest()
	if err != nil {
		return err
	}
	aggPk, err := authsig.AggregatePublicKeys(pubKeys)
	if err != nil {
		return fmt.Errorf("effects: aggregate signer public keys: %w", err)
	}

	ob := obligation.New()
	idx := ob.AddMessage(d[:])
	if err := ob.AddSignature(idx, authsig.AsVerifier(authsig.DomainEffects, aggPk, c.AuthSignInfo.AggregateSignature)); err != nil {
		return err
	}
	if err := ob.VerifyAll(); err != nil {
		return fmt.Errorf("effects: certificate aggregate signature verification failed: %w", err)
	}
	return nil
}
