package effects

// GasCostSummary breaks down what a transaction's execution charged
// against its gas budget.
type GasCostSummary struct {
	ComputationCost uint64
	StorageCost     uint64
	StorageRebate   uint64
}

// NetGasUsed is the total gas charged to the sender: computation plus
// storage cost, minus whatever storage rebate was returned for objects
// deleted or overwritten during execution.
func (g GasCostSummary) NetGasUsed() int64 {
	return int64(g.ComputationCost) + int64(g.StorageCost) - int64(g.StorageRebate)
}

// WriteKind classifies how a mutated object reached its post-transaction
// state: newly created, freshly mutated, or unwrapped back out of another
// object it had been packed into.
type WriteKind uint8

const (
	WriteKindMutate WriteKind = iota
	WriteKindCreate
	WriteKindUnwrap
)

func (k WriteKind) String() string {
	switch k {
	case WriteKindMutate:
		return "Mutate"
	case WriteKindCreate:
		return "Create"
	case WriteKindUnwrap:
		return "Unwrap"
	default:
		return "Unknown"
	}
}
