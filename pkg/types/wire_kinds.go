package types

import (
	"fmt"

	"github.com/certen-labs/objectchain/pkg/wire"
)

// EncodeSingleTransactionKind encodes kind as a wire tagged union, keyed by
// its declaration-order discriminant.
func EncodeSingleTransactionKind(kind SingleTransactionKind) ([]byte, error) {
	return wire.EncodeVariant(discriminantOf(kind), kind)
}

// DecodeSingleTransactionKind decodes the output of
// EncodeSingleTransactionKind.
func DecodeSingleTransactionKind(data []byte) (SingleTransactionKind, error) {
	discriminant, payload, err := wire.DecodeVariant(data)
	if err != nil {
		return nil, err
	}
	switch discriminant {
	case kindTransferObject:
		var v TransferObject
		if err := wire.DecodeVariantPayload(payload, &v); err != nil {
			return nil, err
		}
		return v, nil
	case kindPublish:
		var v Publish
		if err := wire.DecodeVariantPayload(payload, &v); err != nil {
			return nil, err
		}
		return v, nil
	case kindCall:
		var v Call
		if err := wire.DecodeVariantPayload(payload, &v); err != nil {
			return nil, err
		}
		return v, nil
	case kindTransferSui:
		var v TransferSui
		if err := wire.DecodeVariantPayload(payload, &v); err != nil {
			return nil, err
		}
		return v, nil
	case kindPay:
		var v Pay
		if err := wire.DecodeVariantPayload(payload, &v); err != nil {
			return nil, err
		}
		return v, nil
	case kindChangeEpoch:
		var v ChangeEpoch
		if err := wire.DecodeVariantPayload(payload, &v); err != nil {
			return nil, err
		}
		return v, nil
	default:
		return nil, fmt.Errorf("types: unknown SingleTransactionKind discriminant %d", discriminant)
	}
}
