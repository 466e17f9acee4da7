package types

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/certen-labs/objectchain/pkg/wire"
)

// TransactionKind is either a single intent or a batch of intents executed
// atomically. Declaration order (Single, then Batch) is part of the wire
// format.
type TransactionKind struct {
	Single SingleTransactionKind // set iff Batch == nil
	Batch  []SingleTransactionKind
}

const (
	txKindSingle uint8 = iota
	txKindBatch
)

// NewSingleTransactionKind wraps one intent.
func NewSingleTransactionKind(k SingleTransactionKind) TransactionKind {
	return TransactionKind{Single: k}
}

// NewBatchTransactionKind wraps a sequence of intents.
func NewBatchTransactionKind(ks []SingleTransactionKind) TransactionKind {
	if ks == nil {
		ks = []SingleTransactionKind{}
	}
	return TransactionKind{Batch: ks}
}

// IsBatch reports whether this is the Batch variant.
func (k TransactionKind) IsBatch() bool { return k.Batch != nil }

// SingleTransactions returns every SingleTransactionKind this kind carries,
// one element for Single, all elements in order for Batch.
func (k TransactionKind) SingleTransactions() []SingleTransactionKind {
	if k.IsBatch() {
		return k.Batch
	}
	return []SingleTransactionKind{k.Single}
}

// BatchSize returns len(Batch) for a batch, 1 for a single transaction.
func (k TransactionKind) BatchSize() int { return len(k.SingleTransactions()) }

// IsSystemTx reports whether kind is the ChangeEpoch system transaction.
// Batches are never system transactions (ChangeEpoch cannot appear in one).
func (k TransactionKind) IsSystemTx() bool {
	if k.IsBatch() {
		return false
	}
	return IsSystemTx(k.Single)
}

// isBatchable reports whether kind is permitted inside a Batch.
func isBatchable(kind SingleTransactionKind) bool {
	switch kind.(type) {
	case Call, TransferObject, Pay:
		return true
	default:
		return false
	}
}

// ValidityCheck enforces the batch rules: non-empty, and every member must
// be a batchable kind (TransferSui, Publish, and ChangeEpoch are
// disallowed inside a batch).
func (k TransactionKind) ValidityCheck() error {
	if !k.IsBatch() {
		return nil
	}
	if len(k.Batch) == 0 {
		return fmt.Errorf("%w: batch is empty", ErrInvalidBatchTransaction)
	}
	for i, kind := range k.Batch {
		if !isBatchable(kind) {
			return fmt.Errorf("%w: element %d has non-batchable kind %T", ErrInvalidBatchTransaction, i, kind)
		}
	}
	return nil
}

// InputObjects computes the ordered input set contributed by every
// SingleTransactionKind this TransactionKind carries. Duplicate detection
// across the whole set is performed by the caller (TransactionData), since
// InputObjects here only concatenates.
func (k TransactionKind) InputObjects() []InputObjectKind {
	var inputs []InputObjectKind
	for _, single := range k.SingleTransactions() {
		inputs = append(inputs, InputObjects(single)...)
	}
	return inputs
}

// SharedInputObjects returns every shared object id referenced anywhere in
// this transaction kind.
func (k TransactionKind) SharedInputObjects() []ObjectID {
	var ids []ObjectID
	for _, single := range k.SingleTransactions() {
		ids = append(ids, SharedInputObjects(single)...)
	}
	return ids
}

// String renders a short human-readable summary.
func (k TransactionKind) String() string {
	if k.IsBatch() {
		return fmt.Sprintf("Batch(%d)", len(k.Batch))
	}
	return k.Single.String()
}

// kindWireShape is the on-wire representation of TransactionKind.
type kindWireShape struct {
	Single [][]byte // len 1 for Single, len N for Batch
}

// MarshalCBOR implements cbor.Marshaler.
func (k TransactionKind) MarshalCBOR() ([]byte, error) {
	singles := k.SingleTransactions()
	encoded := make([][]byte, len(singles))
	for i, s := range singles {
		b, err := EncodeSingleTransactionKind(s)
		if err != nil {
			return nil, err
		}
		encoded[i] = b
	}
	discriminant := txKindSingle
	if k.IsBatch() {
		discriminant = txKindBatch
	}
	return wire.EncodeVariant(discriminant, encoded)
}

// UnmarshalCBOR implements cbor.Unmarshaler.
func (k *TransactionKind) UnmarshalCBOR(data []byte) error {
	discriminant, payload, err := wire.DecodeVariant(data)
	if err != nil {
		return err
	}
	var encoded [][]byte
	if err := cbor.Unmarshal(payload, &encoded); err != nil {
		return err
	}
	kinds := make([]SingleTransactionKind, len(encoded))
	for i, b := range encoded {
		kind, err := DecodeSingleTransactionKind(b)
		if err != nil {
			return err
		}
		kinds[i] = kind
	}
	switch discriminant {
	case txKindSingle:
		if len(kinds) != 1 {
			return fmt.Errorf("types: Single transaction kind must carry exactly one intent, got %d", len(kinds))
		}
		*k = TransactionKind{Single: kinds[0]}
	case txKindBatch:
		*k = TransactionKind{Batch: kinds}
	default:
		return fmt.Errorf("types: unknown TransactionKind discriminant %d", discriminant)
	}
	return nil
}
