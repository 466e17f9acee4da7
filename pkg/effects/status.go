// Package effects describes the result of executing a transaction: its
// success or failure status, the objects it touched, the gas it spent,
// and (once countersigned by authorities) the quorum certificate over
// that result.
package effects

import (
	"fmt"

	"github.com/certen-labs/objectchain/pkg/types"
	"github.com/certen-labs/objectchain/pkg/wire"
)

// ExecutionStatus is the outcome of executing a transaction: either it
// succeeded outright, or it failed with a specific reason.
type ExecutionStatus struct {
	Success bool
	Error   *ExecutionFailureStatus
}

// Succeeded constructs a successful ExecutionStatus.
func Succeeded() ExecutionStatus { return ExecutionStatus{Success: true} }

// Failed constructs a failed ExecutionStatus carrying reason.
func Failed(reason ExecutionFailureStatus) ExecutionStatus {
	return ExecutionStatus{Success: false, Error: &reason}
}

// ExecutionFailureKind enumerates why a transaction's execution failed.
// The set mirrors the taxonomy a Move-based execution engine reports;
// this module does not run such an engine, but carries the full status
// vocabulary so effects produced by one can be represented faithfully.
type ExecutionFailureKind uint8

const (
	InsufficientGas ExecutionFailureKind = iota
	InvalidGasObject
	InvalidTransactionUpdate
	ModuleNotFound
	FunctionNotFound
	InvariantViolation

	InvalidTransferObject
	InvalidTransferSui
	InvalidTransferSuiInsufficientBalance
	InvalidCoinObject

	EmptyInputCoins
	EmptyRecipients
	RecipientsAmountsArityMismatch
	InsufficientBalance

	NonEntryFunctionInvoked
	EntryTypeArityMismatch
	EntryArgumentError
	CircularObjectOwnership
	MissingObjectOwner
	InvalidSharedChildUse
	InvalidSharedByValue
	TooManyChildObjects
	InvalidParentDeletion
	InvalidParentFreezing

	PublishErrorEmptyPackage
	PublishErrorNonZeroAddress
	PublishErrorDuplicateModule
	MoveVerificationError

	MovePrimitiveRuntimeError
	MoveAbort
	VMVerificationOrDeserializationError
	VMInvariantViolation
)

var executionFailureKindNames = map[ExecutionFailureKind]string{
	InsufficientGas:                        "InsufficientGas",
	InvalidGasObject:                       "InvalidGasObject",
	InvalidTransactionUpdate:               "InvalidTransactionUpdate",
	ModuleNotFound:                         "ModuleNotFound",
	FunctionNotFound:                       "FunctionNotFound",
	InvariantViolation:                     "InvariantViolation",
	InvalidTransferObject:                  "InvalidTransferObject",
	InvalidTransferSui:                     "InvalidTransferSui",
	InvalidTransferSuiInsufficientBalance:  "InvalidTransferSuiInsufficientBalance",
	InvalidCoinObject:                      "InvalidCoinObject",
	EmptyInputCoins:                        "EmptyInputCoins",
	EmptyRecipients:                        "EmptyRecipients",
	RecipientsAmountsArityMismatch:         "RecipientsAmountsArityMismatch",
	InsufficientBalance:                    "InsufficientBalance",
	NonEntryFunctionInvoked:                "NonEntryFunctionInvoked",
	EntryTypeArityMismatch:                 "EntryTypeArityMismatch",
	EntryArgumentError:                     "EntryArgumentError",
	CircularObjectOwnership:                "CircularObjectOwnership",
	MissingObjectOwner:                     "MissingObjectOwner",
	InvalidSharedChildUse:                  "InvalidSharedChildUse",
	InvalidSharedByValue:                   "InvalidSharedByValue",
	TooManyChildObjects:                    "TooManyChildObjects",
	InvalidParentDeletion:                  "InvalidParentDeletion",
	InvalidParentFreezing:                  "InvalidParentFreezing",
	PublishErrorEmptyPackage:               "PublishErrorEmptyPackage",
	PublishErrorNonZeroAddress:             "PublishErrorNonZeroAddress",
	PublishErrorDuplicateModule:            "PublishErrorDuplicateModule",
	MoveVerificationError:                  "MoveVerificationError",
	MovePrimitiveRuntimeError:              "MovePrimitiveRuntimeError",
	MoveAbort:                              "MoveAbort",
	VMVerificationOrDeserializationError:   "VMVerificationOrDeserializationError",
	VMInvariantViolation:                   "VMInvariantViolation",
}

func (k ExecutionFailureKind) String() string {
	if name, ok := executionFailureKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ExecutionFailureKind(%d)", uint8(k))
}

// ExecutionFailureStatus is a failure kind plus whatever extra context
// that kind carries (an offending object id, a Move abort code, and so
// on). Only the fields relevant to Kind are populated.
type ExecutionFailureStatus struct {
	Kind ExecutionFailureKind

	Object         types.ObjectID
	Parent         types.ObjectID
	Child          types.ObjectID
	ArgumentIndex  uint16
	ModuleAddress  types.ObjectID
	AbortCode      uint64
}

func (s ExecutionFailureStatus) Error() string {
	return s.Kind.String()
}

// --- Wire encoding -----------------------------------------------------

type executionStatusWire struct {
	Success bool
	Error   *ExecutionFailureStatus
}

// MarshalCBOR implements cbor.Marshaler.
func (s ExecutionStatus) MarshalCBOR() ([]byte, error) {
	return wire.Encode(executionStatusWire{Success: s.Success, Error: s.Error})
}

// UnmarshalCBOR implements cbor.Unmarshaler.
func (s *ExecutionStatus) UnmarshalCBOR(data []byte) error {
	var w executionStatusWire
	if err := wire.Decode(data, &w); err != nil {
		return err
	}
	s.Success, s.Error = w.Success, w.Error
	return nil
}
