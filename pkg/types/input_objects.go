package types

import "github.com/certen-labs/objectchain/pkg/crypto/digest"

// ResolvedObject is the minimal view of an on-chain object that InputObjects
// needs once a caller has resolved TransactionData.InputObjects() against
// its own store: the object's current reference, its owner, and the
// transaction that last touched it. Resolving input kinds against storage
// is out of scope for this module; ResolvedObject is the shape the result
// takes, not a store.
type ResolvedObject struct {
	Ref                 ObjectRef
	Owner               Owner
	PreviousTransaction digest.Digest
}

// IsImmutable reports whether the object's owner forbids mutation.
func (o ResolvedObject) IsImmutable() bool {
	_, ok := o.Owner.(Immutable)
	return ok
}

// ComputeObjectReference returns the object's current reference. Shared
// objects resolve their reference through the object itself rather than
// through the kind that named them, since the kind only carries the shared
// object's id, not its current version.
func (o ResolvedObject) ComputeObjectReference() ObjectRef { return o.Ref }

// InputObjects is the resolved form of a transaction's input set: each
// InputObjectKind the transaction named, paired with the object it
// resolved to.
type InputObjects struct {
	objects []inputObjectPair
}

type inputObjectPair struct {
	Kind   InputObjectKind
	Object ResolvedObject
}

// NewInputObjects builds an InputObjects from parallel kind/object slices.
// The two slices must be the same length and in the same order as
// TransactionData.InputObjects() produced the kinds.
func NewInputObjects(kinds []InputObjectKind, objects []ResolvedObject) InputObjects {
	pairs := make([]inputObjectPair, len(kinds))
	for i, k := range kinds {
		pairs[i] = inputObjectPair{Kind: k, Object: objects[i]}
	}
	return InputObjects{objects: pairs}
}

// Len returns the number of resolved input objects.
func (in InputObjects) Len() int { return len(in.objects) }

// IsEmpty reports whether the transaction has no input objects.
func (in InputObjects) IsEmpty() bool { return len(in.objects) == 0 }

// FilterOwnedObjects returns the references of every mutable, exclusively
// owned input: move packages and shared objects are excluded, as is any
// ImmOrOwnedMoveObject input whose resolved object is immutable.
func (in InputObjects) FilterOwnedObjects() []ObjectRef {
	owned := make([]ObjectRef, 0, len(in.objects))
	for _, p := range in.objects {
		switch ref := p.Kind.(type) {
		case MovePackageInput:
			continue
		case ImmOrOwnedMoveObjectInput:
			if p.Object.IsImmutable() {
				continue
			}
			owned = append(owned, ref.Ref)
		case SharedMoveObjectInput:
			continue
		}
	}
	return owned
}

// FilterSharedObjects returns the current references of every shared input
// object, resolved through the object itself since a SharedMoveObjectInput
// carries only the object's id.
func (in InputObjects) FilterSharedObjects() []ObjectRef {
	shared := make([]ObjectRef, 0, len(in.objects))
	for _, p := range in.objects {
		if _, ok := p.Kind.(SharedMoveObjectInput); ok {
			shared = append(shared, p.Object.ComputeObjectReference())
		}
	}
	return shared
}

// MutableInputs returns the references of every input this transaction may
// mutate: owned objects (excluding immutable ones) and shared objects.
// Move packages never mutate and are excluded.
func (in InputObjects) MutableInputs() []ObjectRef {
	mutable := make([]ObjectRef, 0, len(in.objects))
	for _, p := range in.objects {
		switch ref := p.Kind.(type) {
		case MovePackageInput:
			continue
		case ImmOrOwnedMoveObjectInput:
			if p.Object.IsImmutable() {
				continue
			}
			mutable = append(mutable, ref.Ref)
		case SharedMoveObjectInput:
			mutable = append(mutable, p.Object.ComputeObjectReference())
		}
	}
	return mutable
}

// TransactionDependencies returns the set of transaction digests this
// transaction depends on: the previous transaction of every input object,
// deduplicated.
func (in InputObjects) TransactionDependencies() []digest.Digest {
	seen := make(map[digest.Digest]bool, len(in.objects))
	deps := make([]digest.Digest, 0, len(in.objects))
	for _, p := range in.objects {
		d := p.Object.PreviousTransaction
		if seen[d] {
			continue
		}
		seen[d] = true
		deps = append(deps, d)
	}
	return deps
}

// IntoObjectMap collapses the resolved input list into a map keyed by
// object id, discarding the InputObjectKind each was reached through.
func (in InputObjects) IntoObjectMap() map[ObjectID]ResolvedObject {
	m := make(map[ObjectID]ResolvedObject, len(in.objects))
	for _, p := range in.objects {
		m[p.Object.Ref.ObjectID] = p.Object
	}
	return m
}
