package types

import (
	"bytes"
	"fmt"

	"github.com/certen-labs/objectchain/pkg/wire"
)

// TransactionData is the sender-authored payload: what to do, who pays for
// it, and under what gas terms. It is the exact content the sender
// signature covers.
type TransactionData struct {
	Kind        TransactionKind
	Sender      Address
	GasPayment  ObjectRef
	GasPrice    uint64
	GasBudget   uint64
}

// NewTransactionData constructs a non-system TransactionData.
func NewTransactionData(kind TransactionKind, sender Address, gasPayment ObjectRef, gasPrice, gasBudget uint64) TransactionData {
	return TransactionData{
		Kind:       kind,
		Sender:     sender,
		GasPayment: gasPayment,
		GasPrice:   gasPrice,
		GasBudget:  gasBudget,
	}
}

// NewTransferObject builds TransactionData for a TransferObject intent.
func NewTransferObject(sender, recipient Address, objectRef, gasPayment ObjectRef, gasPrice, gasBudget uint64) TransactionData {
	return NewTransactionData(NewSingleTransactionKind(TransferObject{Recipient: recipient, ObjectRef: objectRef}), sender, gasPayment, gasPrice, gasBudget)
}

// NewTransferSui builds TransactionData for a TransferSui intent.
func NewTransferSui(sender, recipient Address, amount *uint64, gasPayment ObjectRef, gasPrice, gasBudget uint64) TransactionData {
	return NewTransactionData(NewSingleTransactionKind(TransferSui{Recipient: recipient, Amount: amount}), sender, gasPayment, gasPrice, gasBudget)
}

// NewMoveCall builds TransactionData for a Call intent.
func NewMoveCall(sender Address, pkg ObjectID, module, function string, typeArgs []string, args []CallArg, gasPayment ObjectRef, gasPrice, gasBudget uint64) TransactionData {
	return NewTransactionData(NewSingleTransactionKind(Call{Package: pkg, Module: module, Function: function, TypeArguments: typeArgs, Arguments: args}), sender, gasPayment, gasPrice, gasBudget)
}

// NewPay builds TransactionData for a Pay intent.
func NewPay(sender Address, coins []ObjectRef, recipients []Address, amounts []uint64, gasPayment ObjectRef, gasPrice, gasBudget uint64) TransactionData {
	return NewTransactionData(NewSingleTransactionKind(Pay{Coins: coins, Recipients: recipients, Amounts: amounts}), sender, gasPayment, gasPrice, gasBudget)
}

// NewModulePublish builds TransactionData for a Publish intent.
func NewModulePublish(sender Address, modules [][]byte, gasPayment ObjectRef, gasPrice, gasBudget uint64) TransactionData {
	return NewTransactionData(NewSingleTransactionKind(Publish{Modules: modules}), sender, gasPayment, gasPrice, gasBudget)
}

// NewChangeEpoch builds the system TransactionData produced internally by
// validators during epoch change. Its sender, gas payment, and gas budget
// take the sentinel values fixed by spec §6.
func NewChangeEpoch(epoch, storageCharge, computationCharge uint64) TransactionData {
	return TransactionData{
		Kind:       NewSingleTransactionKind(ChangeEpoch{Epoch: epoch, StorageCharge: storageCharge, ComputationCharge: computationCharge}),
		Sender:     ZeroAddress,
		GasPayment: ObjectRef{ObjectID: ZeroObjectID, SequenceNumber: 0, Digest: ObjectDigestMin},
		GasPrice:   0,
		GasBudget:  0,
	}
}

// KindAsStr returns a short label for the transaction's kind, for logging.
func (d TransactionData) KindAsStr() string {
	if d.Kind.IsBatch() {
		return "Batch"
	}
	switch d.Kind.Single.(type) {
	case TransferObject:
		return "TransferObject"
	case Publish:
		return "Publish"
	case Call:
		return "Call"
	case TransferSui:
		return "TransferSui"
	case Pay:
		return "Pay"
	case ChangeEpoch:
		return "ChangeEpoch"
	default:
		return "Unknown"
	}
}

// IsSystemTx reports whether this is the internally-produced ChangeEpoch
// transaction.
func (d TransactionData) IsSystemTx() bool { return d.Kind.IsSystemTx() }

// Signer returns the address whose signature authenticates this data.
func (d TransactionData) Signer() Address { return d.Sender }

// GasPaymentObjectRef returns the object reference paying for gas.
func (d TransactionData) GasPaymentObjectRef() ObjectRef { return d.GasPayment }

// MoveCalls returns every Call intent embedded in this transaction (one
// for Single, zero or more for Batch).
func (d TransactionData) MoveCalls() []Call {
	var calls []Call
	for _, single := range d.Kind.SingleTransactions() {
		if c, ok := MoveCall(single); ok {
			calls = append(calls, c)
		}
	}
	return calls
}

// ValidityCheck enforces the batch rules on this transaction's kind.
func (d TransactionData) ValidityCheck() error {
	return d.Kind.ValidityCheck()
}

// InputObjects computes the effective input set: the kind's own inputs,
// plus (for non-system transactions) the gas payment, with duplicate
// object ids rejected as ErrDuplicateObjectRefInput. Per invariant 1, this
// never returns a partial list on failure — only nil and the error.
func (d TransactionData) InputObjects() ([]InputObjectKind, error) {
	inputs := d.Kind.InputObjects()
	if !d.IsSystemTx() {
		inputs = append(inputs, ImmOrOwnedMoveObjectInput{Ref: d.GasPayment})
	}

	seen := make(map[ObjectID]struct{}, len(inputs))
	for _, in := range inputs {
		id := in.ObjectID()
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: object %s", ErrDuplicateObjectRefInput, id)
		}
		seen[id] = struct{}{}
	}
	return inputs, nil
}

// ToBytes produces the canonical serialization used as the sender
// signature's signing input.
func (d TransactionData) ToBytes() ([]byte, error) {
	return wire.Encode(d)
}

// Equal reports whether d and other encode to the same canonical bytes.
// Kind is an interface field, so TransactionData is not comparable with
// ==; canonical-encoding comparison is the structural equality the wire
// format already guarantees.
func (d TransactionData) Equal(other TransactionData) bool {
	a, err := d.ToBytes()
	if err != nil {
		return false
	}
	b, err := other.ToBytes()
	if err != nil {
		return false
	}
	return bytes.Equal(a, b)
}
