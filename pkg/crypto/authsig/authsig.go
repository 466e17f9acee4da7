// Package authsig implements the authority signature scheme: a BLS-like
// aggregatable scheme used by validators to co-sign transactions and
// effects into quorum certificates.
//
// Grounded on the teacher's pkg/crypto/bls package: BLS12-381 via
// gnark-crypto, private keys as Fr scalars, public keys as G2 points,
// signatures as G1 points, pairing-based verification, and signature/
// public-key aggregation via Jacobian point addition.
package authsig

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"math/big"
	"sync"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/certen-labs/objectchain/pkg/crypto/obligation"
	"github.com/certen-labs/objectchain/pkg/wire"
)

func marshalFixedBytes(b []byte) ([]byte, error) {
	return wire.Encode(b)
}

func unmarshalFixedBytes(data []byte) ([]byte, error) {
	var b []byte
	if err := wire.Decode(data, &b); err != nil {
		return nil, err
	}
	return b, nil
}

var (
	initOnce sync.Once
	g1Gen    bls12381.G1Affine
	g2Gen    bls12381.G2Affine
)

// Domain separation tags, one per message class an authority ever signs.
const (
	DomainTransaction = "OBJECTCHAIN_AUTHORITY_TRANSACTION_V1"
	DomainEffects     = "OBJECTCHAIN_AUTHORITY_EFFECTS_V1"
)

// Size constants for the wire forms below.
const (
	PrivateKeySize = 32
	PublicKeySize  = 96
	SignatureSize  = 48
)

// Initialize readies the package's shared generator points. Safe to call
// repeatedly; only the first call does any work.
func Initialize() error {
	initOnce.Do(func() {
		_, _, g1GenPoint, g2GenPoint := bls12381.Generators()
		g1Gen = g1GenPoint
		g2Gen = g2GenPoint
	})
	return nil
}

// PrivateKey is an authority's BLS12-381 secret scalar.
type PrivateKey struct{ scalar fr.Element }

// PublicKey is an authority's BLS12-381 public key, a point on G2.
type PublicKey struct{ point bls12381.G2Affine }

// Signature is a BLS12-381 signature, a point on G1.
type Signature struct{ point bls12381.G1Affine }

// GenerateKeyPair generates a new random authority key pair.
func GenerateKeyPair() (*PrivateKey, *PublicKey, error) {
	if err := Initialize(); err != nil {
		return nil, nil, err
	}
	var sk fr.Element
	if _, err := sk.SetRandom(); err != nil {
		return nil, nil, fmt.Errorf("authsig: generate random scalar: %w", err)
	}
	priv := &PrivateKey{scalar: sk}
	return priv, priv.PublicKey(), nil
}

// PrivateKeyFromBytes deserializes a 32-byte scalar.
func PrivateKeyFromBytes(data []byte) (*PrivateKey, error) {
	if err := Initialize(); err != nil {
		return nil, err
	}
	if len(data) != PrivateKeySize {
		return nil, fmt.Errorf("authsig: invalid private key size: got %d, want %d", len(data), PrivateKeySize)
	}
	var sk fr.Element
	sk.SetBytes(data)
	return &PrivateKey{scalar: sk}, nil
}

// PublicKeyFromBytes deserializes a compressed G2 point.
func PublicKeyFromBytes(data []byte) (*PublicKey, error) {
	if err := Initialize(); err != nil {
		return nil, err
	}
	var pk bls12381.G2Affine
	if _, err := pk.SetBytes(data); err != nil {
		return nil, fmt.Errorf("authsig: deserialize public key: %w", err)
	}
	return &PublicKey{point: pk}, nil
}

// SignatureFromBytes deserializes a compressed G1 point.
func SignatureFromBytes(data []byte) (*Signature, error) {
	if err := Initialize(); err != nil {
		return nil, err
	}
	var sig bls12381.G1Affine
	if _, err := sig.SetBytes(data); err != nil {
		return nil, fmt.Errorf("authsig: deserialize signature: %w", err)
	}
	return &Signature{point: sig}, nil
}

// Bytes returns the serialized private key scalar.
func (sk *PrivateKey) Bytes() []byte {
	b := sk.scalar.Bytes()
	return b[:]
}

// PublicKey derives pk = sk * G2.
func (sk *PrivateKey) PublicKey() *PublicKey {
	var pk bls12381.G2Affine
	var skBig big.Int
	sk.scalar.BigInt(&skBig)
	pk.ScalarMultiplication(&g2Gen, &skBig)
	return &PublicKey{point: pk}
}

// Sign signs message with domain separation: sig = sk * H(domain || message).
func (sk *PrivateKey) Sign(domain string, message []byte) *Signature {
	h := hashToG1(domainMessage(domain, message))
	var sig bls12381.G1Affine
	var skBig big.Int
	sk.scalar.BigInt(&skBig)
	sig.ScalarMultiplication(&h, &skBig)
	return &Signature{point: sig}
}

// Bytes returns the serialized (compressed G2) public key.
func (pk *PublicKey) Bytes() []byte {
	b := pk.point.Bytes()
	return b[:]
}

// Equal reports whether two public keys are the same point.
func (pk *PublicKey) Equal(other *PublicKey) bool {
	if pk == nil || other == nil {
		return pk == other
	}
	return pk.point.Equal(&other.point)
}

// Verify checks e(sig, G2) == e(H(domain||message), pk) via pairing.
func (pk *PublicKey) Verify(domain string, sig *Signature, message []byte) bool {
	h := hashToG1(domainMessage(domain, message))
	var negPk bls12381.G2Affine
	negPk.Neg(&pk.point)
	ok, err := bls12381.PairingCheck(
		[]bls12381.G1Affine{sig.point, h},
		[]bls12381.G2Affine{g2Gen, negPk},
	)
	return err == nil && ok
}

// Bytes returns the serialized (compressed G1) signature.
func (sig *Signature) Bytes() []byte {
	b := sig.point.Bytes()
	return b[:]
}

// Aggregate combines multiple signatures over the same message into one,
// by point addition on G1. This is the mechanism the signature aggregator
// uses once enough authorities have contributed to cross quorum.
func Aggregate(signatures []*Signature) (*Signature, error) {
	if err := Initialize(); err != nil {
		return nil, err
	}
	if len(signatures) == 0 {
		return nil, errors.New("authsig: no signatures to aggregate")
	}
	var agg bls12381.G1Jac
	agg.FromAffine(&signatures[0].point)
	for _, s := range signatures[1:] {
		var jac bls12381.G1Jac
		jac.FromAffine(&s.point)
		agg.AddAssign(&jac)
	}
	var result bls12381.G1Affine
	result.FromJacobian(&agg)
	return &Signature{point: result}, nil
}

// MarshalCBOR implements cbor.Marshaler. The underlying field elements are
// unexported, so PublicKey cannot rely on generic struct reflection and
// instead encodes its canonical wire bytes directly.
func (pk PublicKey) MarshalCBOR() ([]byte, error) {
	return marshalFixedBytes(pk.Bytes())
}

// UnmarshalCBOR implements cbor.Unmarshaler.
func (pk *PublicKey) UnmarshalCBOR(data []byte) error {
	b, err := unmarshalFixedBytes(data)
	if err != nil {
		return err
	}
	decoded, err := PublicKeyFromBytes(b)
	if err != nil {
		return err
	}
	*pk = *decoded
	return nil
}

// MarshalCBOR implements cbor.Marshaler.
func (sig Signature) MarshalCBOR() ([]byte, error) {
	return marshalFixedBytes(sig.Bytes())
}

// UnmarshalCBOR implements cbor.Unmarshaler.
func (sig *Signature) UnmarshalCBOR(data []byte) error {
	b, err := unmarshalFixedBytes(data)
	if err != nil {
		return err
	}
	decoded, err := SignatureFromBytes(b)
	if err != nil {
		return err
	}
	*sig = *decoded
	return nil
}

// AggregatePublicKeys sums multiple public keys on G2 by point addition.
// For signatures produced over the same message, the aggregate signature
// verifies against the aggregate public key exactly as if a single signer
// held the combined key: this is what lets a quorum certificate carry one
// signature and one effective key instead of one pair per signer.
func AggregatePublicKeys(keys []*PublicKey) (*PublicKey, error) {
	if err := Initialize(); err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, errors.New("authsig: no public keys to aggregate")
	}
	var agg bls12381.G2Jac
	agg.FromAffine(&keys[0].point)
	for _, k := range keys[1:] {
		var jac bls12381.G2Jac
		jac.FromAffine(&k.point)
		agg.AddAssign(&jac)
	}
	var result bls12381.G2Affine
	result.FromJacobian(&agg)
	return &PublicKey{point: result}, nil
}

// hashToG1 deterministically hashes a message to a point on G1 (hash and
// pray with a bounded retry counter; identical to the teacher's approach).
func hashToG1(message []byte) bls12381.G1Affine {
	h := sha256.New()
	h.Write([]byte("BLS_SIG_BLS12381G1_XMD:SHA-256_SSWU_RO_"))
	h.Write(message)

	var counter uint64
	for {
		h2 := sha256.New()
		h2.Write(h.Sum(nil))
		binary.Write(h2, binary.BigEndian, counter)
		hash := h2.Sum(nil)

		var point bls12381.G1Affine
		if _, err := point.SetBytes(hash); err == nil && !point.IsInfinity() {
			return point
		}

		var scalar fr.Element
		scalar.SetBytes(hash)
		var scalarBig big.Int
		scalar.BigInt(&scalarBig)
		var result bls12381.G1Affine
		result.ScalarMultiplication(&g1Gen, &scalarBig)
		if !result.IsInfinity() {
			return result
		}

		counter++
		if counter > 1000 {
			return g1Gen
		}
	}
}

func domainMessage(domain string, message []byte) []byte {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write(message)
	return h.Sum(nil)
}

// obligationVerifier adapts a staged authority signature check to the
// obligation.Verifier interface.
type obligationVerifier struct {
	domain string
	pk     *PublicKey
	sig    *Signature
}

func (v obligationVerifier) Verify(message []byte) error {
	if !v.pk.Verify(v.domain, v.sig, message) {
		return errors.New("authsig: pairing check failed")
	}
	return nil
}

// AsVerifier adapts a public key and signature into an obligation.Verifier
// so authority signatures can be staged into a batched
// VerificationObligation alongside sender signatures.
func AsVerifier(domain string, pk *PublicKey, sig *Signature) obligation.Verifier {
	return obligationVerifier{domain: domain, pk: pk, sig: sig}
}
