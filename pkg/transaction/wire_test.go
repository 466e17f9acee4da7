package transaction

import "testing"

func TestTransactionWireRoundTrip(t *testing.T) {
	tx, _ := newSignedTx(t)
	data, err := tx.MarshalCBOR()
	if err != nil {
		t.Fatalf("MarshalCBOR failed: %v", err)
	}
	var decoded Transaction
	if err := decoded.UnmarshalCBOR(data); err != nil {
		t.Fatalf("UnmarshalCBOR failed: %v", err)
	}
	if err := decoded.Verify(); err != nil {
		t.Errorf("decoded transaction failed to verify: %v", err)
	}
}

func TestSignedTransactionWireRoundTrip(t *testing.T) {
	tx, _ := newSignedTx(t)
	c, names, keys := newTestCommittee(t, 1)
	signed, err := NewSignedTransaction(c.Epoch(), tx, names[0], keys[0])
	if err != nil {
		t.Fatalf("NewSignedTransaction failed: %v", err)
	}

	data, err := signed.MarshalCBOR()
	if err != nil {
		t.Fatalf("MarshalCBOR failed: %v", err)
	}
	var decoded SignedTransaction
	if err := decoded.UnmarshalCBOR(data); err != nil {
		t.Fatalf("UnmarshalCBOR failed: %v", err)
	}
	if err := decoded.Verify(c); err != nil {
		t.Errorf("decoded signed transaction failed to verify: %v", err)
	}
}

func TestTransactionWireRejectsCrossVariantDecode(t *testing.T) {
	tx, _ := newSignedTx(t)
	data, err := tx.MarshalCBOR()
	if err != nil {
		t.Fatalf("MarshalCBOR failed: %v", err)
	}
	var decoded SignedTransaction
	if err := decoded.UnmarshalCBOR(data); err == nil {
		t.Error("expected decoding a Transaction payload as SignedTransaction to fail")
	}
}
