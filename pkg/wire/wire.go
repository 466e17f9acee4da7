// Package wire implements the canonical binary encoding used for signing
// input, digesting, on-disk storage, RPC wire format, and consensus
// messages: length-prefixed, tagged unions with a discriminant index in
// declaration order, bit-stable across implementations. Integers and
// length prefixes are big-endian, as CBOR writes them; the encoding is not
// little-endian.
//
// The encoding is CBOR in its deterministic ("canonical") mode: map keys
// and map/array lengths are length-prefixed, integers use the shortest
// valid form, and encoding of a given value is unique. This gives the
// bit-stability the core requires without inventing a bespoke codec.
package wire

import (
	"bytes"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

var encMode cbor.EncMode

func init() {
	opts := cbor.CanonicalEncOptions()
	m, err := opts.EncMode()
	if err != nil {
		panic(fmt.Errorf("wire: build canonical encode mode: %w", err))
	}
	encMode = m
}

// Encode produces the canonical binary encoding of v.
func Encode(v interface{}) ([]byte, error) {
	b, err := encMode.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("wire: encode: %w", err)
	}
	return b, nil
}

// Decode reverses Encode into out, which must be a pointer.
func Decode(data []byte, out interface{}) error {
	if err := cbor.Unmarshal(data, out); err != nil {
		return fmt.Errorf("wire: decode: %w", err)
	}
	return nil
}

// taggedEnvelope is the on-wire shape of a naming-adapter-wrapped value: a
// two-element array of [type tag, payload]. Encoding the tag alongside the
// payload is what lets structurally different envelope instantiations
// (e.g. an unsigned transaction vs. a singly-signed one) carry distinct
// stable tags in the canonical format, per the envelope naming adapter.
type taggedEnvelope struct {
	_     struct{} `cbor:",toarray"`
	Tag   string
	Inner cbor.RawMessage
}

// EncodeTagged wraps payload with a stable type tag and encodes the result
// canonically. Used by transaction and effects envelopes so that cross-variant
// deserialization is distinguishable and fails loudly rather than silently
// succeeding with the wrong shape.
func EncodeTagged(tag string, payload interface{}) ([]byte, error) {
	inner, err := encMode.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("wire: encode tagged payload: %w", err)
	}
	return Encode(taggedEnvelope{Tag: tag, Inner: inner})
}

// DecodeTagged unwraps a value encoded with EncodeTagged, failing if the
// embedded tag does not match expectedTag exactly.
func DecodeTagged(data []byte, expectedTag string, out interface{}) error {
	var env taggedEnvelope
	if err := cbor.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("wire: decode tagged envelope: %w", err)
	}
	if env.Tag != expectedTag {
		return fmt.Errorf("wire: envelope type tag mismatch: got %q, want %q", env.Tag, expectedTag)
	}
	if err := cbor.Unmarshal(env.Inner, out); err != nil {
		return fmt.Errorf("wire: decode tagged payload: %w", err)
	}
	return nil
}

// variantEnvelope is the on-wire shape of a tagged-union variant: the
// discriminant index (in declaration order) followed by the variant's
// payload. Variant additions must append only; reordering would change the
// meaning of every previously encoded value.
type variantEnvelope struct {
	_           struct{} `cbor:",toarray"`
	Discriminant uint8
	Payload      cbor.RawMessage
}

// EncodeVariant encodes a tagged-union case identified by its declaration
// order index.
func EncodeVariant(discriminant uint8, payload interface{}) ([]byte, error) {
	inner, err := encMode.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("wire: encode variant payload: %w", err)
	}
	return Encode(variantEnvelope{Discriminant: discriminant, Payload: inner})
}

// DecodeVariant decodes the discriminant and raw payload of a tagged-union
// value without committing to a destination type; callers switch on the
// discriminant and then call DecodeVariantPayload.
func DecodeVariant(data []byte) (discriminant uint8, payload cbor.RawMessage, err error) {
	var env variantEnvelope
	if err := cbor.Unmarshal(data, &env); err != nil {
		return 0, nil, fmt.Errorf("wire: decode variant envelope: %w", err)
	}
	return env.Discriminant, env.Payload, nil
}

// DecodeVariantPayload decodes a raw variant payload obtained from
// DecodeVariant into out.
func DecodeVariantPayload(payload cbor.RawMessage, out interface{}) error {
	if err := cbor.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("wire: decode variant payload: %w", err)
	}
	return nil
}

// Equal reports whether two values produce identical canonical encodings.
func Equal(a, b interface{}) (bool, error) {
	ea, err := Encode(a)
	if err != nil {
		return false, err
	}
	eb, err := Encode(b)
	if err != nil {
		return false, err
	}
	return bytes.Equal(ea, eb), nil
}
