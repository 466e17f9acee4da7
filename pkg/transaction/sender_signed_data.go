// Package transaction implements the generic transaction envelope carrying
// sender-signed transaction data through three states — client-signed
// only, single-authority signed, and quorum-certified — plus the
// SenderSignedData the sender signature covers.
package transaction

import (
	"github.com/certen-labs/objectchain/pkg/crypto/digest"
	"github.com/certen-labs/objectchain/pkg/crypto/sendersig"
	"github.com/certen-labs/objectchain/pkg/types"
)

// TransactionDigest identifies a transaction by the hash of its
// SenderSignedData; it is therefore stable across all three envelope
// states since none of them touch the sender-signed content.
type TransactionDigest = digest.Digest

// SenderSignedData pairs a transaction's payload with the sender signature
// over it. The signature covers exactly the canonical bytes of Data.
type SenderSignedData struct {
	Data        types.TransactionData
	TxSignature sendersig.Signature
}

// NewSenderSignedData bundles data with a sender signature already
// produced over it.
func NewSenderSignedData(data types.TransactionData, sig sendersig.Signature) SenderSignedData {
	return SenderSignedData{Data: data, TxSignature: sig}
}

// Digest computes sha3_hash(SenderSignedData): the stable transaction id
// that survives every envelope state transition.
func (s SenderSignedData) Digest() (TransactionDigest, error) {
	return digest.Hash(senderSignedDataWire{
		Data:      s.Data,
		SchemeTag: uint8(s.TxSignature.Scheme),
		SigBytes:  s.TxSignature.Bytes,
		PubKey:    s.TxSignature.PublicKey,
	})
}

// Equal is the full structural comparison of SenderSignedData: both the
// transaction data and the sender signature bytes must match.
func (s SenderSignedData) Equal(other SenderSignedData) bool {
	return s.Data.Equal(other.Data) && s.TxSignature.Equal(other.TxSignature)
}

// senderSignedDataWire is the flattened encoding of SenderSignedData used
// for digesting: the signature is broken into its wire fields so the
// encoding matches the sender signature wire format exactly.
type senderSignedDataWire struct {
	Data      types.TransactionData
	SchemeTag uint8
	SigBytes  []byte
	PubKey    []byte
}
