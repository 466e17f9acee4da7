package types

import (
	"errors"
	"testing"
)

func objRef(b byte) ObjectRef {
	var id ObjectID
	id[0] = b
	return ObjectRef{ObjectID: id, SequenceNumber: 1, Digest: ObjectDigestMin}
}

func TestInputObjectsRejectsDuplicateObjectID(t *testing.T) {
	gas := objRef(1)
	// The transfer's own object ref collides with the gas payment ref.
	data := NewTransferObject(ZeroAddress, ZeroAddress, gas, gas, 1, 100)

	_, err := data.InputObjects()
	if !errors.Is(err, ErrDuplicateObjectRefInput) {
		t.Fatalf("InputObjects() error = %v, want %v", err, ErrDuplicateObjectRefInput)
	}
}

func TestInputObjectsIncludesGasPaymentForNonSystemTx(t *testing.T) {
	data := NewTransferObject(ZeroAddress, ZeroAddress, objRef(2), objRef(3), 1, 100)

	inputs, err := data.InputObjects()
	if err != nil {
		t.Fatalf("InputObjects failed: %v", err)
	}
	var foundGas bool
	for _, in := range inputs {
		if in.ObjectID() == objRef(3).ObjectID {
			foundGas = true
		}
	}
	if !foundGas {
		t.Error("expected gas payment object id to appear in input objects")
	}
}

func TestChangeEpochExcludesGasPayment(t *testing.T) {
	data := NewChangeEpoch(2, 10, 5)
	inputs, err := data.InputObjects()
	if err != nil {
		t.Fatalf("InputObjects failed: %v", err)
	}
	for _, in := range inputs {
		if in.ObjectID() == ZeroObjectID {
			t.Error("system transaction should not contribute its sentinel gas payment as an input")
		}
	}
}

func TestBatchValidityRejectsEmptyBatch(t *testing.T) {
	k := NewBatchTransactionKind(nil)
	if err := k.ValidityCheck(); !errors.Is(err, ErrInvalidBatchTransaction) {
		t.Errorf("ValidityCheck() error = %v, want %v", err, ErrInvalidBatchTransaction)
	}
}

func TestBatchValidityRejectsNonBatchableMember(t *testing.T) {
	k := NewBatchTransactionKind([]SingleTransactionKind{
		TransferObject{Recipient: ZeroAddress, ObjectRef: objRef(1)},
		TransferSui{Recipient: ZeroAddress},
	})
	if err := k.ValidityCheck(); !errors.Is(err, ErrInvalidBatchTransaction) {
		t.Errorf("ValidityCheck() error = %v, want %v", err, ErrInvalidBatchTransaction)
	}
}

func TestBatchValidityAcceptsBatchableMembers(t *testing.T) {
	k := NewBatchTransactionKind([]SingleTransactionKind{
		TransferObject{Recipient: ZeroAddress, ObjectRef: objRef(1)},
		Pay{Coins: []ObjectRef{objRef(2)}, Recipients: []Address{ZeroAddress}, Amounts: []uint64{1}},
	})
	if err := k.ValidityCheck(); err != nil {
		t.Errorf("ValidityCheck() = %v, want nil", err)
	}
}

func TestToBytesIsDeterministic(t *testing.T) {
	data := NewTransferObject(ZeroAddress, ZeroAddress, objRef(1), objRef(2), 1, 100)
	a, err := data.ToBytes()
	if err != nil {
		t.Fatalf("ToBytes failed: %v", err)
	}
	b, err := data.ToBytes()
	if err != nil {
		t.Fatalf("ToBytes failed: %v", err)
	}
	if string(a) != string(b) {
		t.Error("encoding the same TransactionData twice produced different bytes")
	}
}

func TestTransactionKindWireRoundTrip(t *testing.T) {
	k := NewSingleTransactionKind(TransferObject{Recipient: ZeroAddress, ObjectRef: objRef(1)})
	data, err := k.MarshalCBOR()
	if err != nil {
		t.Fatalf("MarshalCBOR failed: %v", err)
	}
	var decoded TransactionKind
	if err := decoded.UnmarshalCBOR(data); err != nil {
		t.Fatalf("UnmarshalCBOR failed: %v", err)
	}
	if decoded.IsBatch() {
		t.Fatal("decoded kind should not be a batch")
	}
	if _, ok := decoded.Single.(TransferObject); !ok {
		t.Errorf("decoded Single has type %T, want TransferObject", decoded.Single)
	}
}

func TestTransactionKindBatchWireRoundTrip(t *testing.T) {
	k := NewBatchTransactionKind([]SingleTransactionKind{
		TransferObject{Recipient: ZeroAddress, ObjectRef: objRef(1)},
		Pay{Coins: []ObjectRef{objRef(2)}, Recipients: []Address{ZeroAddress}, Amounts: []uint64{1}},
	})
	data, err := k.MarshalCBOR()
	if err != nil {
		t.Fatalf("MarshalCBOR failed: %v", err)
	}
	var decoded TransactionKind
	if err := decoded.UnmarshalCBOR(data); err != nil {
		t.Fatalf("UnmarshalCBOR failed: %v", err)
	}
	if !decoded.IsBatch() || len(decoded.Batch) != 2 {
		t.Fatalf("decoded batch has %d members, want 2", len(decoded.Batch))
	}
}
