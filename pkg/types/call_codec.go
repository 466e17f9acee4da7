package types

import "github.com/fxamacker/cbor/v2"

// callWireShape is the on-wire representation of Call: its Arguments are
// pre-encoded as individual CallArg tagged unions, since the generic CBOR
// codec cannot reconstruct the CallArg interface on decode without a hint.
type callWireShape struct {
	Package       ObjectID
	Module        string
	Function      string
	TypeArguments []string
	Arguments     [][]byte
}

// MarshalCBOR implements cbor.Marshaler so Call's CallArg arguments encode
// through EncodeCallArg rather than relying on reflection over the
// CallArg interface.
func (c Call) MarshalCBOR() ([]byte, error) {
	args := make([][]byte, len(c.Arguments))
	for i, a := range c.Arguments {
		encoded, err := EncodeCallArg(a)
		if err != nil {
			return nil, err
		}
		args[i] = encoded
	}
	return cbor.Marshal(callWireShape{
		Package:       c.Package,
		Module:        c.Module,
		Function:      c.Function,
		TypeArguments: c.TypeArguments,
		Arguments:     args,
	})
}

// UnmarshalCBOR implements cbor.Unmarshaler, the mirror of MarshalCBOR.
func (c *Call) UnmarshalCBOR(data []byte) error {
	var shape callWireShape
	if err := cbor.Unmarshal(data, &shape); err != nil {
		return err
	}
	args := make([]CallArg, len(shape.Arguments))
	for i, encoded := range shape.Arguments {
		a, err := DecodeCallArg(encoded)
		if err != nil {
			return err
		}
		args[i] = a
	}
	c.Package = shape.Package
	c.Module = shape.Module
	c.Function = shape.Function
	c.TypeArguments = shape.TypeArguments
	c.Arguments = args
	return nil
}
