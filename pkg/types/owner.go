package types

import (
	"fmt"

	"github.com/certen-labs/objectchain/pkg/wire"
)

// Owner identifies who controls an object: a single address, a shared
// object usable by anyone, or immutable (usable by anyone, mutable by no
// one).
type Owner interface {
	isOwner()
	String() string
}

// AddressOwner is an object exclusively owned by a single address.
type AddressOwner struct{ Address Address }

func (AddressOwner) isOwner()         {}
func (o AddressOwner) String() string { return "Account(" + o.Address.String() + ")" }

// SharedOwner is a shared object, mutable by any transaction that locks it
// through consensus.
type SharedOwner struct{ InitialSharedVersion SequenceNumber }

func (SharedOwner) isOwner()       {}
func (SharedOwner) String() string { return "Shared" }

// Immutable is an object no transaction can ever mutate again.
type Immutable struct{}

func (Immutable) isOwner()       {}
func (Immutable) String() string { return "Immutable" }

const (
	ownerTagAddress uint8 = iota
	ownerTagShared
	ownerTagImmutable
)

// EncodeOwner encodes an Owner as a discriminant-tagged variant.
func EncodeOwner(o Owner) ([]byte, error) {
	switch v := o.(type) {
	case AddressOwner:
		return wire.EncodeVariant(ownerTagAddress, v)
	case SharedOwner:
		return wire.EncodeVariant(ownerTagShared, v)
	case Immutable:
		return wire.EncodeVariant(ownerTagImmutable, v)
	default:
		return nil, fmt.Errorf("types: unknown Owner variant %T", o)
	}
}

// DecodeOwner decodes bytes produced by EncodeOwner.
func DecodeOwner(data []byte) (Owner, error) {
	discriminant, payload, err := wire.DecodeVariant(data)
	if err != nil {
		return nil, err
	}
	switch discriminant {
	case ownerTagAddress:
		var v AddressOwner
		if err := wire.DecodeVariantPayload(payload, &v); err != nil {
			return nil, err
		}
		return v, nil
	case ownerTagShared:
		var v SharedOwner
		if err := wire.DecodeVariantPayload(payload, &v); err != nil {
			return nil, err
		}
		return v, nil
	case ownerTagImmutable:
		return Immutable{}, nil
	default:
		return nil, fmt.Errorf("types: unknown Owner discriminant %d", discriminant)
	}
}
