package types

import "encoding/hex"

// AddressLength is the byte length of a sender address.
const AddressLength = 32

// Address identifies a transaction sender. It is derived deterministically
// from a sender public key by hashing the key bytes.
type Address [AddressLength]byte

// ZeroAddress is the sentinel sender for system transactions, which are not
// signed by any user.
var ZeroAddress = Address{}

// String returns the hex encoding of the address.
func (a Address) String() string {
	return hex.EncodeToString(a[:])
}

// IsZero reports whether a is the zero address.
func (a Address) IsZero() bool {
	return a == ZeroAddress
}
