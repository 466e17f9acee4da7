package types

import "github.com/certen-labs/objectchain/pkg/crypto/digest"

// ObjectIDLength is the byte length of an ObjectID.
const ObjectIDLength = 32

// ObjectID identifies an on-chain object across all of its versions.
type ObjectID [ObjectIDLength]byte

// String returns the hex encoding of the id.
func (id ObjectID) String() string { return digest.Digest(id).String() }

// ZeroObjectID is the sentinel object id used by system transactions.
var ZeroObjectID = ObjectID{}

// SUISystemStateObjectID is the well-known shared object every ChangeEpoch
// transaction reads and mutates.
var SUISystemStateObjectID = ObjectID{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x05}

// SequenceNumber is an object's version number. It increases by one on
// every mutation.
type SequenceNumber uint64

// ObjectStartVersion is the implicit version of a Move package referenced
// by id alone (MovePackageInput).
const ObjectStartVersion SequenceNumber = 1

// ObjectDigest is the content hash of a particular object version. Two
// sentinel values are reserved and can never be the digest of a real
// object: one marks a deleted object, one a wrapped object.
type ObjectDigest digest.Digest

// ObjectDigestMin is the minimum possible digest value, used as the gas
// object digest placeholder for system transactions.
var ObjectDigestMin = ObjectDigest{}

// ObjectDigestDeleted marks an ObjectRef that refers to a deleted object.
var ObjectDigestDeleted = ObjectDigest{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xfe}

// ObjectDigestWrapped marks an ObjectRef that refers to a wrapped object.
var ObjectDigestWrapped = ObjectDigest{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}

// String returns the hex encoding of the digest.
func (d ObjectDigest) String() string { return digest.Digest(d).String() }

// ObjectRef uniquely identifies a specific version of an on-chain object.
type ObjectRef struct {
	ObjectID       ObjectID       `cbor:"0,keyasint"`
	SequenceNumber SequenceNumber `cbor:"1,keyasint"`
	Digest         ObjectDigest   `cbor:"2,keyasint"`
}

// NewObjectRef constructs an ObjectRef.
func NewObjectRef(id ObjectID, seq SequenceNumber, d ObjectDigest) ObjectRef {
	return ObjectRef{ObjectID: id, SequenceNumber: seq, Digest: d}
}
