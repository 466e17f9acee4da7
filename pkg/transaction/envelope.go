package transaction

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/certen-labs/objectchain/pkg/committee"
	"github.com/certen-labs/objectchain/pkg/crypto/authsig"
	"github.com/certen-labs/objectchain/pkg/crypto/obligation"
	"github.com/certen-labs/objectchain/pkg/crypto/sendersig"
	"github.com/certen-labs/objectchain/pkg/types"
)

// The three instantiations of the generic envelope share identical payload
// semantics over SignedData; per the design notes' allowed alternative to
// a parameterized type, they are three distinct record types (Go cannot
// attach variant-specific methods to instantiations of a single generic
// type) that share envelopeCore for everything common: digest memoization,
// sender signature verification, and input-object delegation.
type envelopeCore struct {
	SignedData SenderSignedData

	digestOnce sync.Once
	digestVal  TransactionDigest
	digestErr  error

	// verified is an optimization cache the owner may set after a
	// successful Verify. When it is set, VerifySenderSignature and
	// CertifiedTransaction.Verify return nil without re-checking. It is
	// never serialized and never affects equality.
	verified bool
}

// Digest lazily computes sha3_hash(SignedData) and memoizes it with a
// write-once primitive: concurrent callers observe the same value, and the
// hash runs at most once regardless of how many times Digest is called.
func (e *envelopeCore) Digest() (TransactionDigest, error) {
	e.digestOnce.Do(func() {
		e.digestVal, e.digestErr = e.SignedData.Digest()
	})
	return e.digestVal, e.digestErr
}

// MarkVerified records that this envelope passed Verify. It is advisory
// only; downstream code relying on it is responsible for ensuring no
// tampered envelope reaches here with the flag already set.
func (e *envelopeCore) MarkVerified() { e.verified = true }

// IsVerified reports the advisory verified flag.
func (e *envelopeCore) IsVerified() bool { return e.verified }

// IsSystemTx reports whether the underlying transaction is the internally
// produced ChangeEpoch kind.
func (e *envelopeCore) IsSystemTx() bool { return e.SignedData.Data.IsSystemTx() }

// VerifySenderSignature succeeds immediately if the envelope is already
// marked verified or the transaction is a system transaction (no user
// signed it); otherwise it verifies the embedded signature against the
// transaction data and its claimed sender.
func (e *envelopeCore) VerifySenderSignature() error {
	if e.verified || e.IsSystemTx() {
		return nil
	}
	dataBytes, err := e.SignedData.Data.ToBytes()
	if err != nil {
		return fmt.Errorf("transaction: encode data for sender verification: %w", err)
	}
	return sendersig.Verify(dataBytes, e.SignedData.TxSignature, e.SignedData.Data.Sender)
}

// InputObjects delegates to the underlying TransactionKind.
func (e *envelopeCore) InputObjects() ([]types.InputObjectKind, error) {
	return e.SignedData.Data.InputObjects()
}

// SharedInputObjects delegates to the underlying TransactionKind.
func (e *envelopeCore) SharedInputObjects() []types.ObjectID {
	return e.SignedData.Data.Kind.SharedInputObjects()
}

// --- Transaction: client-signed only ---------------------------------

// Transaction is the envelope with empty authority sign info: a
// client-signed transaction that has not yet been countersigned by any
// authority.
type Transaction struct{ envelopeCore }

// NewTransaction builds a Transaction from already-signed data.
func NewTransaction(signedData SenderSignedData) *Transaction {
	return &Transaction{envelopeCore{SignedData: signedData}}
}

// Verify checks only the sender signature, per spec's per-variant
// verification table for Transaction.
func (t *Transaction) Verify() error {
	if err := t.VerifySenderSignature(); err != nil {
		return err
	}
	t.MarkVerified()
	return nil
}

// Equal reports whether t and other carry the same SignedData. The
// memoized digest and the advisory verified flag are never serialized and
// never participate in equality.
func (t *Transaction) Equal(other *Transaction) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.SignedData.Equal(other.SignedData)
}

// --- SignedTransaction: single authority signed ----------------------

// AuthoritySignInfo is the single-authority signature a validator attaches
// after verifying and locking a Transaction.
type AuthoritySignInfo struct {
	Epoch     uint64
	Authority committee.AuthorityName
	Signature *authsig.Signature
}

// TypeTag returns a stable label for this sign-info variant. The envelope
// codecs in wire.go do not call it; they carry their own tags.
func (AuthoritySignInfo) TypeTag() string { return "objectchain.SignedTransaction" }

// SignedTransaction is the envelope with a single AuthoritySignInfo.
type SignedTransaction struct {
	envelopeCore
	AuthSignInfo AuthoritySignInfo
}

// NewSignedTransaction has authority counter-sign tx's SenderSignedData
// under epoch.
func NewSignedTransaction(epoch uint64, tx *Transaction, authority committee.AuthorityName, authorityKey *authsig.PrivateKey) (*SignedTransaction, error) {
	msgBytes, err := signingBytesForAuthority(tx.SignedData)
	if err != nil {
		return nil, err
	}
	sig := authorityKey.Sign(authsig.DomainTransaction, msgBytes)
	return &SignedTransaction{
		envelopeCore: envelopeCore{SignedData: tx.SignedData},
		AuthSignInfo: AuthoritySignInfo{Epoch: epoch, Authority: authority, Signature: sig},
	}, nil
}

// NewChangeEpochSignedTransaction builds the validator-internal
// SignedTransaction for a ChangeEpoch system transaction: sender is the
// zero address, gas is the fixed sentinel ref, gas budget is 0, and the
// sender signature is the fixed all-zero Ed25519 sentinel that verifiers
// must never attempt to validate as real.
func NewChangeEpochSignedTransaction(epoch, nextEpoch, storageCharge, computationCharge uint64, authority committee.AuthorityName, authorityKey *authsig.PrivateKey) (*SignedTransaction, error) {
	data := types.NewChangeEpoch(nextEpoch, storageCharge, computationCharge)
	signedData := NewSenderSignedData(data, sendersig.ZeroSentinel())
	return NewSignedTransaction(epoch, NewTransaction(signedData), authority, authorityKey)
}

func signingBytesForAuthority(s SenderSignedData) ([]byte, error) {
	d, err := s.Digest()
	if err != nil {
		return nil, err
	}
	return d[:], nil
}

// Verify checks the sender signature, then the authority signature over
// SignedData by the named authority in the named epoch, requiring the
// authority to hold non-zero stake in committee.
func (s *SignedTransaction) Verify(c *committee.Committee) error {
	if err := s.VerifySenderSignature(); err != nil {
		return err
	}
	if s.AuthSignInfo.Epoch != c.Epoch() {
		return fmt.Errorf("transaction: signed transaction epoch %d does not match committee epoch %d", s.AuthSignInfo.Epoch, c.Epoch())
	}
	if c.Weight(s.AuthSignInfo.Authority) == 0 {
		return fmt.Errorf("transaction: authority is not a member of the committee")
	}
	msgBytes, err := signingBytesForAuthority(s.SignedData)
	if err != nil {
		return err
	}
	pk, ok := authorityPublicKey(c, s.AuthSignInfo.Authority)
	if !ok || !pk.Verify(authsig.DomainTransaction, s.AuthSignInfo.Signature, msgBytes) {
		return fmt.Errorf("transaction: authority signature verification failed")
	}
	s.MarkVerified()
	return nil
}

// ToTransaction returns the client-signed-only projection of this envelope.
func (s *SignedTransaction) ToTransaction() *Transaction {
	return &Transaction{envelopeCore{SignedData: s.SignedData}}
}

// Equal reports whether s and other carry the same transaction data and
// the same sign-info epoch and authority. It ignores the sender signature
// bytes embedded in SignedData, and also the authority signature bytes,
// which cover a digest that includes the sender signature.
func (s *SignedTransaction) Equal(other *SignedTransaction) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.SignedData.Data.Equal(other.SignedData.Data) &&
		s.AuthSignInfo.Epoch == other.AuthSignInfo.Epoch &&
		s.AuthSignInfo.Authority == other.AuthSignInfo.Authority
}

// --- CertifiedTransaction: quorum certified ---------------------------

// AuthorityStrongQuorumSignInfo is the aggregated quorum certificate: a
// bitmap naming the contributing authorities and their combined signature.
type AuthorityStrongQuorumSignInfo struct {
	Epoch              uint64
	SignersBitmap      committee.Bitmap
	AggregateSignature *authsig.Signature
}

// TypeTag returns a stable label for this sign-info variant. The envelope
// codecs in wire.go do not call it; they carry their own tags.
func (AuthorityStrongQuorumSignInfo) TypeTag() string { return "objectchain.CertifiedTransaction" }

// CertifiedTransaction is the envelope with a quorum certificate.
type CertifiedTransaction struct {
	envelopeCore
	AuthSignInfo AuthorityStrongQuorumSignInfo
}

// NewCertifiedTransaction wraps already-aggregated quorum sign info around
// a transaction's signed data.
func NewCertifiedTransaction(signedData SenderSignedData, quorum AuthorityStrongQuorumSignInfo) *CertifiedTransaction {
	return &CertifiedTransaction{envelopeCore: envelopeCore{SignedData: signedData}, AuthSignInfo: quorum}
}

// Verify checks the sender signature, then the aggregate signature: it
// reconstructs the signer set from the bitmap, requires every bit to
// reference a committee member, and requires the summed stake to reach
// quorum_threshold. Verification is total: it never panics on an
// adversarial bitmap, only returns a definite error.
func (ct *CertifiedTransaction) Verify(c *committee.Committee) error {
	if ct.verified {
		return nil
	}
	if err := ct.VerifySenderSignature(); err != nil {
		return err
	}
	if ct.AuthSignInfo.Epoch != c.Epoch() {
		return fmt.Errorf("transaction: certificate epoch %d does not match committee epoch %d", ct.AuthSignInfo.Epoch, c.Epoch())
	}

	var total committee.StakeUnit
	var pubKeys []*authsig.PublicKey
	for _, idx := range ct.AuthSignInfo.SignersBitmap.Indices() {
		name, ok := c.AuthorityAt(idx)
		if !ok {
			return fmt.Errorf("transaction: certificate signer bitmap references unknown authority index %d", idx)
		}
		pk, ok := authorityPublicKey(c, name)
		if !ok {
			return fmt.Errorf("transaction: no public key known for authority at index %d", idx)
		}
		pubKeys = append(pubKeys, pk)
		total += c.Weight(name)
	}
	if total < c.QuorumThreshold() {
		return fmt.Errorf("transaction: certificate stake %d below quorum threshold %d", total, c.QuorumThreshold())
	}

	msgBytes, err := signingBytesForAuthority(ct.SignedData)
	if err != nil {
		return err
	}
	ob := obligation.New()
	idx := ob.AddMessage(msgBytes)
	aggPk, err := aggregatePublicKeys(pubKeys)
	if err != nil {
		return fmt.Errorf("transaction: aggregate signer public keys: %w", err)
	}
	if err := ob.AddSignature(idx, authsig.AsVerifier(authsig.DomainTransaction, aggPk, ct.AuthSignInfo.AggregateSignature)); err != nil {
		return err
	}
	if err := ob.VerifyAll(); err != nil {
		return fmt.Errorf("transaction: certificate aggregate signature verification failed: %w", err)
	}
	ct.MarkVerified()
	return nil
}

// ToTransaction returns the client-signed-only projection of this envelope.
func (ct *CertifiedTransaction) ToTransaction() *Transaction {
	return &Transaction{envelopeCore{SignedData: ct.SignedData}}
}

// Equal reports whether ct and other carry the same SignedData and the
// same quorum signer bitmap. The aggregate signature value itself and the
// certificate's epoch are not part of the comparison: two certificates
// over the same signed data and the same signer set are the same
// certificate even if one was reconstructed from differently-ordered
// partial signatures along the way.
func (ct *CertifiedTransaction) Equal(other *CertifiedTransaction) bool {
	if ct == nil || other == nil {
		return ct == other
	}
	return ct.SignedData.Equal(other.SignedData) &&
		bytes.Equal(ct.AuthSignInfo.SignersBitmap, other.AuthSignInfo.SignersBitmap)
}
