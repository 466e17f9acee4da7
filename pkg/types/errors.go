package types

import "errors"

// Sentinel errors returned by the transaction data model. These are
// structural errors per the core's error taxonomy: fatal to the
// transaction, never retried.
var (
	// ErrDuplicateObjectRefInput is returned when a transaction's computed
	// input set contains two entries referencing the same object id.
	ErrDuplicateObjectRefInput = errors.New("types: duplicate object id in transaction inputs")

	// ErrInvalidBatchTransaction is returned when a batch transaction
	// violates the batch rules (empty, or containing a non-batchable kind).
	ErrInvalidBatchTransaction = errors.New("types: invalid batch transaction")
)
