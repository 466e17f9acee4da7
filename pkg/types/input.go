package types

import (
	"fmt"

	"github.com/certen-labs/objectchain/pkg/wire"
)

// InputObjectKind is a tagged variant describing how a transaction
// references one of its input objects. Declaration order is part of the
// wire format; new kinds must be appended, never inserted.
type InputObjectKind interface {
	isInputObjectKind()
	// ObjectID returns the id of the referenced object.
	ObjectID() ObjectID
	// Version returns the version this kind implies (ObjectStartVersion for
	// a package), or false for a shared object, whose version consensus
	// resolves.
	Version() (SequenceNumber, bool)
}

const (
	inputKindMovePackage uint8 = iota
	inputKindImmOrOwnedMoveObject
	inputKindSharedMoveObject
)

// MovePackageInput references a published Move package by id. Its version
// is implicitly the package's start version.
type MovePackageInput struct {
	Package ObjectID
}

func (MovePackageInput) isInputObjectKind() {}
func (m MovePackageInput) ObjectID() ObjectID { return m.Package }
func (m MovePackageInput) Version() (SequenceNumber, bool) { return ObjectStartVersion, true }

// ImmOrOwnedMoveObjectInput references an immutable or address-owned object
// at an explicit version.
type ImmOrOwnedMoveObjectInput struct {
	Ref ObjectRef
}

func (ImmOrOwnedMoveObjectInput) isInputObjectKind() {}
func (o ImmOrOwnedMoveObjectInput) ObjectID() ObjectID { return o.Ref.ObjectID }
func (o ImmOrOwnedMoveObjectInput) Version() (SequenceNumber, bool) { return o.Ref.SequenceNumber, true }

// SharedMoveObjectInput references a shared object whose version is
// resolved by consensus rather than carried on the reference.
type SharedMoveObjectInput struct {
	ID ObjectID
}

func (SharedMoveObjectInput) isInputObjectKind() {}
func (s SharedMoveObjectInput) ObjectID() ObjectID { return s.ID }
func (s SharedMoveObjectInput) Version() (SequenceNumber, bool) { return 0, false }

// EncodeInputObjectKind encodes an InputObjectKind as a wire tagged union.
func EncodeInputObjectKind(k InputObjectKind) ([]byte, error) {
	switch v := k.(type) {
	case MovePackageInput:
		return wire.EncodeVariant(inputKindMovePackage, v)
	case ImmOrOwnedMoveObjectInput:
		return wire.EncodeVariant(inputKindImmOrOwnedMoveObject, v)
	case SharedMoveObjectInput:
		return wire.EncodeVariant(inputKindSharedMoveObject, v)
	default:
		return nil, fmt.Errorf("types: unknown InputObjectKind %T", k)
	}
}

// DecodeInputObjectKind decodes the output of EncodeInputObjectKind.
func DecodeInputObjectKind(data []byte) (InputObjectKind, error) {
	discriminant, payload, err := wire.DecodeVariant(data)
	if err != nil {
		return nil, err
	}
	switch discriminant {
	case inputKindMovePackage:
		var v MovePackageInput
		if err := wire.DecodeVariantPayload(payload, &v); err != nil {
			return nil, err
		}
		return v, nil
	case inputKindImmOrOwnedMoveObject:
		var v ImmOrOwnedMoveObjectInput
		if err := wire.DecodeVariantPayload(payload, &v); err != nil {
			return nil, err
		}
		return v, nil
	case inputKindSharedMoveObject:
		var v SharedMoveObjectInput
		if err := wire.DecodeVariantPayload(payload, &v); err != nil {
			return nil, err
		}
		return v, nil
	default:
		return nil, fmt.Errorf("types: unknown InputObjectKind discriminant %d", discriminant)
	}
}

// ObjectArg is a tagged variant describing an object argument to a call.
type ObjectArg interface {
	isObjectArg()
}

const (
	objectArgImmOrOwned uint8 = iota
	objectArgShared
)

// ImmOrOwnedObjectArg passes an immutable or owned object by explicit
// version.
type ImmOrOwnedObjectArg struct {
	Ref ObjectRef
}

func (ImmOrOwnedObjectArg) isObjectArg() {}

// SharedObjectArg passes a shared object whose version consensus resolves.
type SharedObjectArg struct {
	ID ObjectID
}

func (SharedObjectArg) isObjectArg() {}

// AsInputObjectKind converts an ObjectArg into the InputObjectKind it
// contributes to a transaction's input set.
func (a ImmOrOwnedObjectArg) AsInputObjectKind() InputObjectKind {
	return ImmOrOwnedMoveObjectInput{Ref: a.Ref}
}

// AsInputObjectKind converts an ObjectArg into the InputObjectKind it
// contributes to a transaction's input set.
func (a SharedObjectArg) AsInputObjectKind() InputObjectKind {
	return SharedMoveObjectInput{ID: a.ID}
}

func encodeObjectArg(a ObjectArg) ([]byte, error) {
	switch v := a.(type) {
	case ImmOrOwnedObjectArg:
		return wire.EncodeVariant(objectArgImmOrOwned, v)
	case SharedObjectArg:
		return wire.EncodeVariant(objectArgShared, v)
	default:
		return nil, fmt.Errorf("types: unknown ObjectArg %T", a)
	}
}

func decodeObjectArg(data []byte) (ObjectArg, error) {
	discriminant, payload, err := wire.DecodeVariant(data)
	if err != nil {
		return nil, err
	}
	switch discriminant {
	case objectArgImmOrOwned:
		var v ImmOrOwnedObjectArg
		if err := wire.DecodeVariantPayload(payload, &v); err != nil {
			return nil, err
		}
		return v, nil
	case objectArgShared:
		var v SharedObjectArg
		if err := wire.DecodeVariantPayload(payload, &v); err != nil {
			return nil, err
		}
		return v, nil
	default:
		return nil, fmt.Errorf("types: unknown ObjectArg discriminant %d", discriminant)
	}
}

// CallArg is a tagged variant describing one argument to a Move call.
type CallArg interface {
	isCallArg()
}

const (
	callArgPure uint8 = iota
	callArgObject
	callArgObjVec
)

// PureArg is a BCS-encoded scalar argument with no object inputs.
type PureArg struct {
	Bytes []byte
}

func (PureArg) isCallArg() {}

// ObjectCallArg passes a single object argument.
type ObjectCallArg struct {
	Arg ObjectArg
}

func (ObjectCallArg) isCallArg() {}

// ObjVecArg passes a sequence of object arguments.
type ObjVecArg struct {
	Args []ObjectArg
}

func (ObjVecArg) isCallArg() {}

// EncodeCallArg encodes a CallArg as a wire tagged union.
func EncodeCallArg(a CallArg) ([]byte, error) {
	switch v := a.(type) {
	case PureArg:
		return wire.EncodeVariant(callArgPure, v)
	case ObjectCallArg:
		encoded, err := encodeObjectArg(v.Arg)
		if err != nil {
			return nil, err
		}
		return wire.EncodeVariant(callArgObject, encoded)
	case ObjVecArg:
		encodedArgs := make([][]byte, len(v.Args))
		for i, oa := range v.Args {
			encoded, err := encodeObjectArg(oa)
			if err != nil {
				return nil, err
			}
			encodedArgs[i] = encoded
		}
		return wire.EncodeVariant(callArgObjVec, encodedArgs)
	default:
		return nil, fmt.Errorf("types: unknown CallArg %T", a)
	}
}

// DecodeCallArg decodes the output of EncodeCallArg.
func DecodeCallArg(data []byte) (CallArg, error) {
	discriminant, payload, err := wire.DecodeVariant(data)
	if err != nil {
		return nil, err
	}
	switch discriminant {
	case callArgPure:
		var v PureArg
		if err := wire.DecodeVariantPayload(payload, &v); err != nil {
			return nil, err
		}
		return v, nil
	case callArgObject:
		var encoded []byte
		if err := wire.DecodeVariantPayload(payload, &encoded); err != nil {
			return nil, err
		}
		arg, err := decodeObjectArg(encoded)
		if err != nil {
			return nil, err
		}
		return ObjectCallArg{Arg: arg}, nil
	case callArgObjVec:
		var encodedArgs [][]byte
		if err := wire.DecodeVariantPayload(payload, &encodedArgs); err != nil {
			return nil, err
		}
		args := make([]ObjectArg, len(encodedArgs))
		for i, enc := range encodedArgs {
			arg, err := decodeObjectArg(enc)
			if err != nil {
				return nil, err
			}
			args[i] = arg
		}
		return ObjVecArg{Args: args}, nil
	default:
		return nil, fmt.Errorf("types: unknown CallArg discriminant %d", discriminant)
	}
}

// InputObjectKinds contributed by a single CallArg: zero for Pure, one for
// ImmOrOwnedObject and SharedObject, one per element for ObjVec.
func (a PureArg) InputObjectKinds() []InputObjectKind { return nil }

func (a ObjectCallArg) InputObjectKinds() []InputObjectKind {
	switch arg := a.Arg.(type) {
	case ImmOrOwnedObjectArg:
		return []InputObjectKind{arg.AsInputObjectKind()}
	case SharedObjectArg:
		return []InputObjectKind{arg.AsInputObjectKind()}
	default:
		return nil
	}
}

func (a ObjVecArg) InputObjectKinds() []InputObjectKind {
	kinds := make([]InputObjectKind, 0, len(a.Args))
	for _, arg := range a.Args {
		switch oa := arg.(type) {
		case ImmOrOwnedObjectArg:
			kinds = append(kinds, oa.AsInputObjectKind())
		case SharedObjectArg:
			kinds = append(kinds, oa.AsInputObjectKind())
		}
	}
	return kinds
}
