package transaction

import "github.com/certen-labs/objectchain/pkg/wire"

const (
	tagTransaction           = "objectchain.transaction.Transaction"
	tagSignedTransaction     = "objectchain.transaction.SignedTransaction"
	tagCertifiedTransaction  = "objectchain.transaction.CertifiedTransaction"
)

type transactionWire struct {
	SignedData SenderSignedData
}

// MarshalCBOR implements cbor.Marshaler, naming-adapting the encoding so a
// Transaction can never be silently decoded as a SignedTransaction or vice
// versa.
func (t *Transaction) MarshalCBOR() ([]byte, error) {
	return wire.EncodeTagged(tagTransaction, transactionWire{SignedData: t.SignedData})
}

// UnmarshalCBOR implements cbor.Unmarshaler.
func (t *Transaction) UnmarshalCBOR(data []byte) error {
	var w transactionWire
	if err := wire.DecodeTagged(data, tagTransaction, &w); err != nil {
		return err
	}
	t.envelopeCore = envelopeCore{SignedData: w.SignedData}
	return nil
}

type signedTransactionWire struct {
	SignedData   SenderSignedData
	AuthSignInfo AuthoritySignInfo
}

// MarshalCBOR implements cbor.Marshaler.
func (s *SignedTransaction) MarshalCBOR() ([]byte, error) {
	return wire.EncodeTagged(tagSignedTransaction, signedTransactionWire{
		SignedData:   s.SignedData,
		AuthSignInfo: s.AuthSignInfo,
	})
}

// UnmarshalCBOR implements cbor.Unmarshaler.
func (s *SignedTransaction) UnmarshalCBOR(data []byte) error {
	var w signedTransactionWire
	if err := wire.DecodeTagged(data, tagSignedTransaction, &w); err != nil {
		return err
	}
	s.envelopeCore = envelopeCore{SignedData: w.SignedData}
	s.AuthSignInfo = w.AuthSignInfo
	return nil
}

type certifiedTransactionWire struct {
	SignedData   SenderSignedData
	AuthSignInfo AuthorityStrongQuorumSignInfo
}

// MarshalCBOR implements cbor.Marshaler.
func (ct *CertifiedTransaction) MarshalCBOR() ([]byte, error) {
	return wire.EncodeTagged(tagCertifiedTransaction, certifiedTransactionWire{
		SignedData:   ct.SignedData,
		AuthSignInfo: ct.AuthSignInfo,
	})
}

// UnmarshalCBOR implements cbor.Unmarshaler.
func (ct *CertifiedTransaction) UnmarshalCBOR(data []byte) error {
	var w certifiedTransactionWire
	if err := wire.DecodeTagged(data, tagCertifiedTransaction, &w); err != nil {
		return err
	}
	ct.envelopeCore = envelopeCore{SignedData: w.SignedData}
	ct.AuthSignInfo = w.AuthSignInfo
	return nil
}
