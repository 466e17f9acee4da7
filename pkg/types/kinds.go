package types

import "fmt"

// SingleTransactionKind is a tagged variant of the six transaction intents
// a client (or, for ChangeEpoch, a validator) can submit. Declaration order
// is part of the wire format: TransferObject, Publish, Call, TransferSui,
// Pay, ChangeEpoch. New kinds must be appended.
type SingleTransactionKind interface {
	isSingleTransactionKind()
	fmt.Stringer
}

const (
	kindTransferObject uint8 = iota
	kindPublish
	kindCall
	kindTransferSui
	kindPay
	kindChangeEpoch
)

// TransferObject moves ownership of a single owned object to recipient.
type TransferObject struct {
	Recipient Address
	ObjectRef ObjectRef
}

func (TransferObject) isSingleTransactionKind() {}
func (t TransferObject) String() string {
	return fmt.Sprintf("TransferObject{ to: %s, object: %s }", t.Recipient, t.ObjectRef.ObjectID)
}

// moduleDependencies resolves the package ids a published module depends on. A
// nil return (and no error) means the module bytes did not parse as a
// dependency header; this is deliberately not an error here, since this
// layer only enumerates inputs optimistically and execution re-decodes and
// rejects malformed modules properly.
//
// Modules are expected to begin with a 4-byte magic header followed by a
// one-byte dependency count and that many 32-byte package ids. Any other
// shape is treated as "no dependencies found" rather than failing the
// transaction at this layer.
var moveModuleMagic = [4]byte{'M', 'O', 'V', 'E'}

func moduleDependencies(module []byte) []ObjectID {
	if len(module) < 5 || [4]byte(module[:4]) != moveModuleMagic {
		return nil
	}
	count := int(module[4])
	offset := 5
	deps := make([]ObjectID, 0, count)
	for i := 0; i < count; i++ {
		if offset+ObjectIDLength > len(module) {
			// Truncated module: stop decoding, keep whatever was found.
			break
		}
		var id ObjectID
		copy(id[:], module[offset:offset+ObjectIDLength])
		deps = append(deps, id)
		offset += ObjectIDLength
	}
	return deps
}

// Publish installs a new Move package from its compiled module bytes.
type Publish struct {
	Modules [][]byte
}

func (Publish) isSingleTransactionKind() {}
func (p Publish) String() string {
	return fmt.Sprintf("Publish{ modules: %d }", len(p.Modules))
}

// Dependencies returns the package ids declared by every module that
// decodes successfully, in module order. Modules that fail to decode
// contribute nothing and are silently skipped, per the data model's
// optimistic-enumeration contract.
func (p Publish) Dependencies() []ObjectID {
	var deps []ObjectID
	for _, m := range p.Modules {
		deps = append(deps, moduleDependencies(m)...)
	}
	return deps
}

// Call invokes a Move entry function.
type Call struct {
	Package       ObjectID
	Module        string
	Function      string
	TypeArguments []string
	Arguments     []CallArg
}

func (Call) isSingleTransactionKind() {}
func (c Call) String() string {
	return fmt.Sprintf("Call{ package: %s, module: %s, function: %s }", c.Package, c.Module, c.Function)
}

// TransferSui sends SUI coin balance to recipient. A nil Amount means
// "transfer the full balance of the gas object".
type TransferSui struct {
	Recipient Address
	Amount    *uint64
}

func (TransferSui) isSingleTransactionKind() {}
func (t TransferSui) String() string {
	if t.Amount == nil {
		return fmt.Sprintf("TransferSui{ to: %s, amount: <all> }", t.Recipient)
	}
	return fmt.Sprintf("TransferSui{ to: %s, amount: %d }", t.Recipient, *t.Amount)
}

// Pay splits and sends coin balances to one or more recipients. The
// RecipientsAmountsArityMismatch check over len(Recipients)==len(Amounts)
// is an execution-time concern; the data model stores the fields verbatim.
type Pay struct {
	Coins      []ObjectRef
	Recipients []Address
	Amounts    []uint64
}

func (Pay) isSingleTransactionKind() {}
func (p Pay) String() string {
	return fmt.Sprintf("Pay{ coins: %d, recipients: %d }", len(p.Coins), len(p.Recipients))
}

// ChangeEpoch is the sole system transaction kind: it is never submitted
// by a client, only produced internally by validators during epoch change.
type ChangeEpoch struct {
	Epoch             uint64
	StorageCharge     uint64
	ComputationCharge uint64
}

func (ChangeEpoch) isSingleTransactionKind() {}
func (c ChangeEpoch) String() string {
	return fmt.Sprintf("ChangeEpoch{ epoch: %d }", c.Epoch)
}

// IsSystemTx reports whether kind is the (only) system-originated kind.
func IsSystemTx(kind SingleTransactionKind) bool {
	_, ok := kind.(ChangeEpoch)
	return ok
}

// discriminantOf returns the declaration-order discriminant of kind, used
// both for wire encoding and as the stable, append-only variant index
// referenced throughout the design notes.
func discriminantOf(kind SingleTransactionKind) uint8 {
	switch kind.(type) {
	case TransferObject:
		return kindTransferObject
	case Publish:
		return kindPublish
	case Call:
		return kindCall
	case TransferSui:
		return kindTransferSui
	case Pay:
		return kindPay
	case ChangeEpoch:
		return kindChangeEpoch
	default:
		panic(fmt.Sprintf("types: unreachable SingleTransactionKind variant %T", kind))
	}
}

// MoveCall returns the Call payload if kind is a Call, else (Call{}, false).
func MoveCall(kind SingleTransactionKind) (Call, bool) {
	c, ok := kind.(Call)
	return c, ok
}

// ContainsSharedObject reports whether kind references at least one shared
// object (only Call arguments and ChangeEpoch's system object can).
func ContainsSharedObject(kind SingleTransactionKind) bool {
	switch k := kind.(type) {
	case Call:
		for _, arg := range k.Arguments {
			if oca, ok := arg.(ObjectCallArg); ok {
				if _, ok := oca.Arg.(SharedObjectArg); ok {
					return true
				}
			}
			if ova, ok := arg.(ObjVecArg); ok {
				for _, a := range ova.Args {
					if _, ok := a.(SharedObjectArg); ok {
						return true
					}
				}
			}
		}
		return false
	case ChangeEpoch:
		return true
	default:
		return false
	}
}

// SharedInputObjects returns the shared-object ids kind reads or mutates.
func SharedInputObjects(kind SingleTransactionKind) []ObjectID {
	var ids []ObjectID
	for _, k := range InputObjects(kind) {
		if _, ok := k.(SharedMoveObjectInput); ok {
			ids = append(ids, k.ObjectID())
		}
	}
	return ids
}

// InputObjects computes, per spec §4.3, the ordered input set contributed
// by a single transaction kind alone (the gas payment, if any, is appended
// by the caller at the TransactionData level).
func InputObjects(kind SingleTransactionKind) []InputObjectKind {
	switch k := kind.(type) {
	case TransferObject:
		return []InputObjectKind{ImmOrOwnedMoveObjectInput{Ref: k.ObjectRef}}
	case Call:
		var inputs []InputObjectKind
		for _, arg := range k.Arguments {
			switch a := arg.(type) {
			case PureArg:
				// Contributes no input.
			case ObjectCallArg:
				inputs = append(inputs, a.InputObjectKinds()...)
			case ObjVecArg:
				inputs = append(inputs, a.InputObjectKinds()...)
			}
		}
		inputs = append(inputs, MovePackageInput{Package: k.Package})
		return inputs
	case Publish:
		var inputs []InputObjectKind
		for _, dep := range k.Dependencies() {
			inputs = append(inputs, MovePackageInput{Package: dep})
		}
		return inputs
	case TransferSui:
		return nil
	case Pay:
		inputs := make([]InputObjectKind, len(k.Coins))
		for i, ref := range k.Coins {
			inputs[i] = ImmOrOwnedMoveObjectInput{Ref: ref}
		}
		return inputs
	case ChangeEpoch:
		return []InputObjectKind{SharedMoveObjectInput{ID: SUISystemStateObjectID}}
	default:
		panic(fmt.Sprintf("types: unreachable SingleTransactionKind variant %T", kind))
	}
}
