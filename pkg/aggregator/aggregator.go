// Package aggregator incrementally accumulates per-authority signatures
// over a single transaction into a quorum-certified transaction, the way
// the teacher's attestation phase accumulates per-validator attestations
// into one aggregated, threshold-checked attestation.
package aggregator

import (
	"errors"
	"fmt"

	"github.com/certen-labs/objectchain/pkg/committee"
	"github.com/certen-labs/objectchain/pkg/crypto/authsig"
	"github.com/certen-labs/objectchain/pkg/metrics"
	"github.com/certen-labs/objectchain/pkg/transaction"
)

var (
	// ErrCertificateAuthorityReuse is returned when the same authority's
	// signature is appended twice for the same transaction.
	ErrCertificateAuthorityReuse = errors.New("aggregator: authority already contributed a signature")
	// ErrUnknownSigner is returned when an appended signature names an
	// authority with no stake in the committee.
	ErrUnknownSigner = errors.New("aggregator: signer holds no stake in committee")
	// ErrAlreadyCertified is returned when Append is called after quorum
	// has already been reached and a certificate produced.
	ErrAlreadyCertified = errors.New("aggregator: already produced a certificate")
)

// SignatureAggregator collects authority signatures over one transaction's
// SenderSignedData until their combined stake crosses the committee's
// quorum threshold, then materializes a CertifiedTransaction.
//
// Not safe for concurrent use: a caller driving Append from multiple
// goroutines must serialize calls itself.
type SignatureAggregator struct {
	tx        *transaction.Transaction
	committee *committee.Committee

	weight committee.StakeUnit
	used   map[committee.AuthorityName]bool

	names []committee.AuthorityName
	sigs  []*authsig.Signature

	cert *transaction.CertifiedTransaction

	// Metrics is optional; when set, Append reports into it. Left nil in
	// tests and in any caller that doesn't need observability.
	Metrics *metrics.Registry
}

// NewUnsafe builds an aggregator without verifying tx's sender signature;
// callers must have already verified it (or trust its source) before
// appending authority signatures.
func NewUnsafe(tx *transaction.Transaction, c *committee.Committee) *SignatureAggregator {
	return &SignatureAggregator{
		tx:        tx,
		committee: c,
		used:      make(map[committee.AuthorityName]bool),
	}
}

// TryNew builds an aggregator after first verifying tx's sender signature.
func TryNew(tx *transaction.Transaction, c *committee.Committee) (*SignatureAggregator, error) {
	if err := tx.Verify(); err != nil {
		return nil, fmt.Errorf("aggregator: sender signature verification failed: %w", err)
	}
	return NewUnsafe(tx, c), nil
}

// Append verifies authority's signature over tx first, then rejects a
// reused authority or an authority with no committee stake, then
// accumulates it. Verifying the signature before checking membership
// matches the original's step order: an adversarial combination of a bad
// signature with an already-used or unknown authority must surface as a
// signature-verification failure, not a membership failure. Once the
// accumulated stake reaches QuorumThreshold, it aggregates every
// contributed signature and returns the resulting certificate; until then
// it returns (nil, nil).
func (a *SignatureAggregator) Append(authority committee.AuthorityName, signature *authsig.Signature) (*transaction.CertifiedTransaction, error) {
	if a.cert != nil {
		a.reject("already_certified")
		return nil, ErrAlreadyCertified
	}
	pk, err := authsig.PublicKeyFromBytes(authority[:])
	if err != nil {
		a.reject("bad_public_key")
		return nil, fmt.Errorf("aggregator: decode authority public key: %w", err)
	}
	digest, err := a.tx.Digest()
	if err != nil {
		return nil, fmt.Errorf("aggregator: compute transaction digest: %w", err)
	}
	if !pk.Verify(authsig.DomainTransaction, signature, digest[:]) {
		a.reject("bad_signature")
		return nil, fmt.Errorf("aggregator: signature verification failed for authority")
	}
	if a.used[authority] {
		a.reject("duplicate_signer")
		return nil, ErrCertificateAuthorityReuse
	}
	stake := a.committee.Weight(authority)
	if stake == 0 {
		a.reject("unknown_signer")
		return nil, ErrUnknownSigner
	}

	a.used[authority] = true
	a.names = append(a.names, authority)
	a.sigs = append(a.sigs, signature)
	a.weight += stake
	if a.Metrics != nil {
		a.Metrics.SignaturesAccepted.Inc()
	}

	if a.weight < a.committee.QuorumThreshold() {
		return nil, nil
	}

	bitmap, ok := committee.BitmapFromAuthorities(a.committee, a.names)
	if !ok {
		return nil, errors.New("aggregator: internal error building signer bitmap")
	}
	aggSig, err := authsig.Aggregate(a.sigs)
	if err != nil {
		return nil, fmt.Errorf("aggregator: aggregate signatures: %w", err)
	}

	a.cert = transaction.NewCertifiedTransaction(a.tx.SignedData, transaction.AuthorityStrongQuorumSignInfo{
		Epoch:              a.committee.Epoch(),
		SignersBitmap:      bitmap,
		AggregateSignature: aggSig,
	})
	if a.Metrics != nil {
		a.Metrics.CertificatesBuilt.Inc()
	}
	return a.cert, nil
}

func (a *SignatureAggregator) reject(reason string) {
	if a.Metrics != nil {
		a.Metrics.SignaturesRejected.WithLabelValues(reason).Inc()
	}
}

// Weight returns the stake accumulated so far.
func (a *SignatureAggregator) Weight() committee.StakeUnit { return a.weight }

// Certificate returns the produced certificate, or nil if quorum has not
// yet been reached.
func (a *SignatureAggregator) Certificate() *transaction.CertifiedTransaction { return a.cert }
