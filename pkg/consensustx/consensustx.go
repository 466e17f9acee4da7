// Package consensustx wraps transactions and checkpoint fragments for
// submission to the underlying consensus protocol, the way the original
// implementation wrapped messages destined for Narwhal.
package consensustx

import (
	"encoding/binary"

	"github.com/certen-labs/objectchain/pkg/committee"
	"github.com/certen-labs/objectchain/pkg/crypto/digest"
	"github.com/certen-labs/objectchain/pkg/transaction"
)

// Kind is the payload a ConsensusTransaction carries.
type Kind interface {
	isConsensusTransactionKind()
}

// UserTransactionKind submits a certified transaction for sequencing.
type UserTransactionKind struct {
	Certificate *transaction.CertifiedTransaction
}

func (UserTransactionKind) isConsensusTransactionKind() {}

// CheckpointFragment is an opaque per-validator partial checkpoint
// proposal. Checkpoint construction itself is out of scope for this
// module; the fragment is carried as an undigested payload so it can
// still be wrapped, tracked, and handed to consensus.
type CheckpointFragment struct {
	ProposerSequenceNumber uint64
	Proposer               committee.AuthorityName
	Other                  committee.AuthorityName
	Payload                []byte
}

// Verify is a stub: real checkpoint fragment verification depends on a
// checkpoint construction protocol this module does not implement. It
// only confirms both named authorities are committee members.
func (f *CheckpointFragment) Verify(c *committee.Committee) error {
	if !c.Contains(f.Proposer) || !c.Contains(f.Other) {
		return errCheckpointUnknownAuthority
	}
	return nil
}

// CheckpointKind submits a checkpoint fragment for sequencing.
type CheckpointKind struct {
	Fragment *CheckpointFragment
}

func (CheckpointKind) isConsensusTransactionKind() {}

// ConsensusTransaction is the envelope handed to the consensus layer. The
// tracking id is a non-cryptographic correlation id (not a content hash)
// used purely to trace one message across logs; it carries no trust
// properties. It is encoded as raw bytes, not an integer, so its
// serialization never depends on host endianness.
type ConsensusTransaction struct {
	TrackingID [8]byte
	Kind       Kind
}

// NewCertificateMessage wraps a certificate for sequencing, deriving a
// tracking id from the certificate's digest and the proposing authority.
func NewCertificateMessage(authority committee.AuthorityName, certificate *transaction.CertifiedTransaction) (*ConsensusTransaction, error) {
	d, err := certificate.Digest()
	if err != nil {
		return nil, err
	}
	return &ConsensusTransaction{
		TrackingID: trackingID(d[:], authority[:]),
		Kind:       UserTransactionKind{Certificate: certificate},
	}, nil
}

// NewCheckpointMessage wraps a checkpoint fragment for sequencing.
func NewCheckpointMessage(fragment *CheckpointFragment) *ConsensusTransaction {
	var seqBytes [8]byte
	binary.BigEndian.PutUint64(seqBytes[:], fragment.ProposerSequenceNumber)
	return &ConsensusTransaction{
		TrackingID: trackingID(seqBytes[:], fragment.Proposer[:], fragment.Other[:]),
		Kind:       CheckpointKind{Fragment: fragment},
	}
}

// TrackingIDUint64 interprets the tracking id as a big-endian integer, for
// compact logging.
func (c *ConsensusTransaction) TrackingIDUint64() uint64 {
	return binary.BigEndian.Uint64(c.TrackingID[:])
}

// Verify dispatches to the wrapped payload's own verification.
func (c *ConsensusTransaction) Verify(committee *committee.Committee) error {
	switch k := c.Kind.(type) {
	case UserTransactionKind:
		return k.Certificate.Verify(committee)
	case CheckpointKind:
		return k.Fragment.Verify(committee)
	default:
		return errUnknownConsensusTransactionKind
	}
}

// trackingID folds the given byte segments into an 8-byte correlation id
// via a truncated digest; it is explicitly not a security-relevant hash.
func trackingID(segments ...[]byte) [8]byte {
	h := digest.Bytes(concat(segments...))
	var id [8]byte
	copy(id[:], h[:8])
	return id
}

func concat(segments ...[]byte) []byte {
	var total int
	for _, s := range segments {
		total += len(s)
	}
	out := make([]byte, 0, total)
	for _, s := range segments {
		out = append(out, s...)
	}
	return out
}
