package effects

import (
	"github.com/certen-labs/objectchain/pkg/transaction"
	"github.com/certen-labs/objectchain/pkg/wire"
)

const (
	tagUnsignedEffects  = "objectchain.effects.UnsignedEffects"
	tagSignedEffects    = "objectchain.effects.SignedEffects"
	tagCertifiedEffects = "objectchain.effects.CertifiedEffects"
)

type unsignedEffectsWire struct {
	Effects TransactionEffects
}

// MarshalCBOR implements cbor.Marshaler.
func (u *UnsignedEffects) MarshalCBOR() ([]byte, error) {
	return wire.EncodeTagged(tagUnsignedEffects, unsignedEffectsWire{Effects: u.Effects})
}

// UnmarshalCBOR implements cbor.Unmarshaler.
func (u *UnsignedEffects) UnmarshalCBOR(data []byte) error {
	var w unsignedEffectsWire
	if err := wire.DecodeTagged(data, tagUnsignedEffects, &w); err != nil {
		return err
	}
	u.effectsCore = effectsCore{Effects: w.Effects}
	return nil
}

type signedEffectsWire struct {
	Effects      TransactionEffects
	AuthSignInfo transaction.AuthoritySignInfo
}

// MarshalCBOR implements cbor.Marshaler.
func (s *SignedEffects) MarshalCBOR() ([]byte, error) {
	return wire.EncodeTagged(tagSignedEffects, signedEffectsWire{Effects: s.Effects, AuthSignInfo: s.AuthSignInfo})
}

// UnmarshalCBOR implements cbor.Unmarshaler.
func (s *SignedEffects) UnmarshalCBOR(data []byte) error {
	var w signedEffectsWire
	if err := wire.DecodeTagged(data, tagSignedEffects, &w); err != nil {
		return err
	}
	s.effectsCore = effectsCore{Effects: w.Effects}
	s.AuthSignInfo = w.AuthSignInfo
	return nil
}

type certifiedEffectsWire struct {
	Effects      TransactionEffects
	AuthSignInfo transaction.AuthorityStrongQuorumSignInfo
}

// MarshalCBOR implements cbor.Marshaler.
func (c *CertifiedEffects) MarshalCBOR() ([]byte, error) {
	return wire.EncodeTagged(tagCertifiedEffects, certifiedEffectsWire{Effects: c.Effects, AuthSignInfo: c.AuthSignInfo})
}

// UnmarshalCBOR implements cbor.Unmarshaler.
func (c *CertifiedEffects) UnmarshalCBOR(data []byte) error {
	var w certifiedEffectsWire
	if err := wire.DecodeTagged(data, tagCertifiedEffects, &w); err != nil {
		return err
	}
	c.effectsCore = effectsCore{Effects: w.Effects}
	c.AuthSignInfo = w.AuthSignInfo
	return nil
}
