package effects

import (
	"github.com/certen-labs/objectchain/pkg/types"
	"github.com/certen-labs/objectchain/pkg/transaction"
)

// ObjectOwnerPair is an object reference together with the owner it has
// after the transaction that produced this effects record.
type ObjectOwnerPair struct {
	Ref   types.ObjectRef
	Owner types.Owner
}

// Event is an opaque payload emitted during a successful transaction's
// execution. Event semantics belong to whatever execution engine produces
// them; this module only carries them through to effects.
type Event struct {
	EventType string
	Payload   []byte
}

// TransactionEffects is the full record of what executing one transaction
// did: its outcome, the gas it spent, every object it touched, and the
// transactions it depended on.
type TransactionEffects struct {
	Status            ExecutionStatus
	GasUsed           GasCostSummary
	SharedObjects     []types.ObjectRef
	TransactionDigest transaction.TransactionDigest
	Created           []ObjectOwnerPair
	Mutated           []ObjectOwnerPair
	Unwrapped         []ObjectOwnerPair
	Deleted           []types.ObjectRef
	Wrapped           []types.ObjectRef
	GasObject         ObjectOwnerPair
	Events            []Event
	Dependencies      []transaction.TransactionDigest
}

// mutatedEntry pairs a post-transaction object reference and owner with
// how it got there.
type mutatedEntry struct {
	Pair ObjectOwnerPair
	Kind WriteKind
}

// AllMutated returns every object still present in the object state after
// this transaction: mutated, created, and unwrapped objects, each tagged
// with how it got there. It excludes deleted and wrapped objects.
func (e *TransactionEffects) AllMutated() []mutatedEntry {
	out := make([]mutatedEntry, 0, len(e.Mutated)+len(e.Created)+len(e.Unwrapped))
	for _, p := range e.Mutated {
		out = append(out, mutatedEntry{Pair: p, Kind: WriteKindMutate})
	}
	for _, p := range e.Created {
		out = append(out, mutatedEntry{Pair: p, Kind: WriteKindCreate})
	}
	for _, p := range e.Unwrapped {
		out = append(out, mutatedEntry{Pair: p, Kind: WriteKindUnwrap})
	}
	return out
}

// MutatedExcludingGas returns the mutated set with the gas object itself
// filtered out.
func (e *TransactionEffects) MutatedExcludingGas() []ObjectOwnerPair {
	out := make([]ObjectOwnerPair, 0, len(e.Mutated))
	for _, p := range e.Mutated {
		if p.Ref == e.GasObject.Ref {
			continue
		}
		out = append(out, p)
	}
	return out
}

// IsObjectMutatedHere reports whether ref names an object version that
// this transaction produced, whether by mutation, creation, unwrapping,
// deletion, or wrapping.
func (e *TransactionEffects) IsObjectMutatedHere(ref types.ObjectRef) bool {
	for _, m := range e.AllMutated() {
		if m.Pair.Ref == ref {
			return true
		}
	}
	if ref.Digest == types.ObjectDigestDeleted {
		for _, d := range e.Deleted {
			if d.ObjectID == ref.ObjectID && d.SequenceNumber+1 == ref.SequenceNumber {
				return true
			}
		}
	}
	if ref.Digest == types.ObjectDigestWrapped {
		for _, w := range e.Wrapped {
			if w.ObjectID == ref.ObjectID && w.SequenceNumber+1 == ref.SequenceNumber {
				return true
			}
		}
	}
	return false
}

// Digest computes sha3_hash(TransactionEffects).
func (e *TransactionEffects) Digest() (EffectsDigest, error) {
	return hashEffects(e)
}
