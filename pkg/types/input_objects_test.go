package types

import (
	"testing"

	"github.com/certen-labs/objectchain/pkg/crypto/digest"
)

func TestInputObjectsFilterOwnedObjects(t *testing.T) {
	var pkgID, ownedID, immutableID, sharedID ObjectID
	pkgID[0], ownedID[0], immutableID[0], sharedID[0] = 1, 2, 3, 4

	ownedRef := NewObjectRef(ownedID, 1, ObjectDigestMin)
	immutableRef := NewObjectRef(immutableID, 1, ObjectDigestMin)

	kinds := []InputObjectKind{
		MovePackageInput{Package: pkgID},
		ImmOrOwnedMoveObjectInput{Ref: ownedRef},
		ImmOrOwnedMoveObjectInput{Ref: immutableRef},
		SharedMoveObjectInput{ID: sharedID},
	}
	objects := []ResolvedObject{
		{Ref: NewObjectRef(pkgID, 1, ObjectDigestMin), Owner: Immutable{}},
		{Ref: ownedRef, Owner: AddressOwner{Address: ZeroAddress}},
		{Ref: immutableRef, Owner: Immutable{}},
		{Ref: NewObjectRef(sharedID, 3, ObjectDigestMin), Owner: SharedOwner{InitialSharedVersion: 1}},
	}

	in := NewInputObjects(kinds, objects)

	owned := in.FilterOwnedObjects()
	if len(owned) != 1 || owned[0] != ownedRef {
		t.Errorf("FilterOwnedObjects = %+v, want only %+v", owned, ownedRef)
	}

	shared := in.FilterSharedObjects()
	wantSharedRef := objects[3].Ref
	if len(shared) != 1 || shared[0] != wantSharedRef {
		t.Errorf("FilterSharedObjects = %+v, want only %+v", shared, wantSharedRef)
	}

	mutable := in.MutableInputs()
	if len(mutable) != 2 {
		t.Fatalf("MutableInputs = %+v, want 2 entries", mutable)
	}
	if mutable[0] != ownedRef || mutable[1] != wantSharedRef {
		t.Errorf("MutableInputs = %+v, want [%+v %+v]", mutable, ownedRef, wantSharedRef)
	}
}

func TestInputObjectsTransactionDependenciesDeduplicates(t *testing.T) {
	var idA, idB ObjectID
	idA[0], idB[0] = 1, 2
	shared := digest.Digest{0xaa}

	kinds := []InputObjectKind{
		ImmOrOwnedMoveObjectInput{Ref: NewObjectRef(idA, 1, ObjectDigestMin)},
		ImmOrOwnedMoveObjectInput{Ref: NewObjectRef(idB, 1, ObjectDigestMin)},
	}
	objects := []ResolvedObject{
		{Ref: NewObjectRef(idA, 1, ObjectDigestMin), Owner: AddressOwner{Address: ZeroAddress}, PreviousTransaction: shared},
		{Ref: NewObjectRef(idB, 1, ObjectDigestMin), Owner: AddressOwner{Address: ZeroAddress}, PreviousTransaction: shared},
	}

	in := NewInputObjects(kinds, objects)
	deps := in.TransactionDependencies()
	if len(deps) != 1 || deps[0] != shared {
		t.Errorf("TransactionDependencies = %+v, want [%+v]", deps, shared)
	}
}

func TestInputObjectsIntoObjectMap(t *testing.T) {
	var id ObjectID
	id[0] = 7
	ref := NewObjectRef(id, 1, ObjectDigestMin)
	kinds := []InputObjectKind{ImmOrOwnedMoveObjectInput{Ref: ref}}
	objects := []ResolvedObject{{Ref: ref, Owner: AddressOwner{Address: ZeroAddress}}}

	in := NewInputObjects(kinds, objects)
	if in.Len() != 1 || in.IsEmpty() {
		t.Fatalf("Len/IsEmpty wrong for single-entry InputObjects")
	}

	m := in.IntoObjectMap()
	got, ok := m[id]
	if !ok || got.Ref != ref {
		t.Errorf("IntoObjectMap()[id] = %+v, ok=%v, want %+v, true", got, ok, ref)
	}
}

func TestEmptyInputObjects(t *testing.T) {
	in := NewInputObjects(nil, nil)
	if !in.IsEmpty() || in.Len() != 0 {
		t.Errorf("expected empty InputObjects, got Len=%d IsEmpty=%v", in.Len(), in.IsEmpty())
	}
	if len(in.FilterOwnedObjects()) != 0 || len(in.FilterSharedObjects()) != 0 || len(in.MutableInputs()) != 0 {
		t.Error("expected no filtered refs for empty InputObjects")
	}
}
