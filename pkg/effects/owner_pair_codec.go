package effects

import (
	"github.com/certen-labs/objectchain/pkg/types"
	"github.com/certen-labs/objectchain/pkg/wire"
)

// ownerPairWire is ObjectOwnerPair with Owner pre-encoded, needed because
// the generic CBOR codec cannot reconstruct a types.Owner interface value
// on decode without a type hint.
type ownerPairWire struct {
	Ref        types.ObjectRef
	OwnerBytes []byte
}

// MarshalCBOR implements cbor.Marshaler.
func (p ObjectOwnerPair) MarshalCBOR() ([]byte, error) {
	ownerBytes, err := types.EncodeOwner(p.Owner)
	if err != nil {
		return nil, err
	}
	return wire.Encode(ownerPairWire{Ref: p.Ref, OwnerBytes: ownerBytes})
}

// UnmarshalCBOR implements cbor.Unmarshaler.
func (p *ObjectOwnerPair) UnmarshalCBOR(data []byte) error {
	var w ownerPairWire
	if err := wire.Decode(data, &w); err != nil {
		return err
	}
	owner, err := types.DecodeOwner(w.OwnerBytes)
	if err != nil {
		return err
	}
	p.Ref, p.Owner = w.Ref, owner
	return nil
}
