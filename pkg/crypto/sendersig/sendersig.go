// Package sendersig implements the sender signature scheme: the signature
// a client attaches to TransactionData, encoded with a one-byte scheme tag
// followed by signature bytes followed by public key bytes.
//
// Grounded on the teacher's pkg/attestation/strategy/ed25519_strategy.go:
// the same Sign/Verify/domain-separation shape, adapted from attesting
// over an AttestationMessage to signing over TransactionData bytes.
package sendersig

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/certen-labs/objectchain/pkg/crypto/digest"
	"github.com/certen-labs/objectchain/pkg/crypto/obligation"
	"github.com/certen-labs/objectchain/pkg/types"
)

// Scheme identifies the signature algorithm a sender signature uses.
type Scheme uint8

const (
	// SchemeEd25519 is the only scheme this core ships; additional
	// schemes append new tags, they never reuse or reorder existing ones.
	SchemeEd25519 Scheme = 0
)

// domainSenderSignature separates sender-signature digests from any other
// message this process might hash under the same key.
const domainSenderSignature = "OBJECTCHAIN_SENDER_SIGNATURE_V1"

var (
	// ErrInvalidSignature is returned when a sender signature fails to
	// verify against its claimed signer.
	ErrInvalidSignature = errors.New("sendersig: invalid signature")
	// ErrUnsupportedScheme is returned for a scheme tag this build does
	// not implement.
	ErrUnsupportedScheme = errors.New("sendersig: unsupported scheme")
)

// Signature is the wire form of a sender signature:
// [scheme_tag:1][signature bytes][public key bytes].
type Signature struct {
	Scheme    Scheme
	Bytes     []byte
	PublicKey []byte
}

// Marshal serializes the signature to its wire form.
func (s Signature) Marshal() []byte {
	out := make([]byte, 0, 1+len(s.Bytes)+len(s.PublicKey))
	out = append(out, byte(s.Scheme))
	out = append(out, s.Bytes...)
	out = append(out, s.PublicKey...)
	return out
}

// Equal reports whether s and other carry the same scheme, signature
// bytes, and public key.
func (s Signature) Equal(other Signature) bool {
	return s.Scheme == other.Scheme &&
		bytes.Equal(s.Bytes, other.Bytes) &&
		bytes.Equal(s.PublicKey, other.PublicKey)
}

// Unmarshal parses the wire form produced by Marshal for the Ed25519
// scheme (the only scheme currently implemented).
func Unmarshal(data []byte) (Signature, error) {
	if len(data) < 1 {
		return Signature{}, fmt.Errorf("sendersig: empty signature bytes")
	}
	scheme := Scheme(data[0])
	switch scheme {
	case SchemeEd25519:
		rest := data[1:]
		if len(rest) != ed25519.SignatureSize+ed25519.PublicKeySize {
			return Signature{}, fmt.Errorf("sendersig: malformed ed25519 signature: got %d bytes", len(rest))
		}
		return Signature{
			Scheme:    scheme,
			Bytes:     append([]byte(nil), rest[:ed25519.SignatureSize]...),
			PublicKey: append([]byte(nil), rest[ed25519.SignatureSize:]...),
		}, nil
	default:
		return Signature{}, fmt.Errorf("%w: tag %d", ErrUnsupportedScheme, scheme)
	}
}

// GenerateKey generates a new Ed25519 sender key pair.
func GenerateKey() (ed25519.PublicKey, ed25519.PrivateKey, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, nil, fmt.Errorf("sendersig: generate key: %w", err)
	}
	return pub, priv, nil
}

// DeriveAddress computes the sender address a public key hashes to. Verify
// rejects a signature whose embedded public key does not hash to the
// transaction's claimed sender.
func DeriveAddress(pub ed25519.PublicKey) types.Address {
	d := digest.Bytes(pub)
	return types.Address(d)
}

func signingInput(data []byte) []byte {
	return append([]byte(domainSenderSignature), data...)
}

// Sign signs the canonical bytes of a TransactionData with an Ed25519 key.
func Sign(data []byte, priv ed25519.PrivateKey) Signature {
	sig := ed25519.Sign(priv, signingInput(data))
	pub := priv.Public().(ed25519.PublicKey)
	return Signature{
		Scheme:    SchemeEd25519,
		Bytes:     sig,
		PublicKey: append([]byte(nil), pub...),
	}
}

// Verify checks sig against data and the claimed sender address: the
// embedded public key must both verify the signature and hash to
// expectedSender.
func Verify(data []byte, sig Signature, expectedSender types.Address) error {
	switch sig.Scheme {
	case SchemeEd25519:
		if len(sig.PublicKey) != ed25519.PublicKeySize {
			return fmt.Errorf("%w: bad public key length %d", ErrInvalidSignature, len(sig.PublicKey))
		}
		pub := ed25519.PublicKey(sig.PublicKey)
		if DeriveAddress(pub) != expectedSender {
			return fmt.Errorf("%w: public key does not hash to claimed sender", ErrInvalidSignature)
		}
		if !ed25519.Verify(pub, signingInput(data), sig.Bytes) {
			return fmt.Errorf("%w: ed25519 verification failed", ErrInvalidSignature)
		}
		return nil
	default:
		return fmt.Errorf("%w: tag %d", ErrUnsupportedScheme, sig.Scheme)
	}
}

// obligationVerifier adapts a staged sender signature check to the
// obligation.Verifier interface.
type obligationVerifier struct {
	sig       Signature
	expected  types.Address
}

func (v obligationVerifier) Verify(message []byte) error {
	return Verify(message, v.sig, v.expected)
}

// AsVerifier adapts sig into an obligation.Verifier so it can be staged
// into a batched VerificationObligation alongside other entries.
func AsVerifier(sig Signature, expected types.Address) obligation.Verifier {
	return obligationVerifier{sig: sig, expected: expected}
}

// ZeroSentinel returns the fixed all-zero Ed25519 signature used as the
// placeholder tx_signature for system transactions, which no user signs.
// Verifiers must never attempt to validate it as a real signature.
func ZeroSentinel() Signature {
	return Signature{
		Scheme:    SchemeEd25519,
		Bytes:     make([]byte, ed25519.SignatureSize),
		PublicKey: make([]byte, ed25519.PublicKeySize),
	}
}
