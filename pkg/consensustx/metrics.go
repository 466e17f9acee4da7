package consensustx

import "github.com/certen-labs/objectchain/pkg/metrics"

// kindLabel names the ConsensusTransaction's payload for metrics, without
// exposing the Kind interface's concrete types outside the package.
func (c *ConsensusTransaction) kindLabel() string {
	switch c.Kind.(type) {
	case UserTransactionKind:
		return "user_transaction"
	case CheckpointKind:
		return "checkpoint"
	default:
		return "unknown"
	}
}

// RecordSubmission increments reg's per-kind consensus message counter for
// c. Callers submitting messages to the consensus layer call this once per
// message; it is not invoked automatically so tests can build messages
// without a metrics registry.
func (c *ConsensusTransaction) RecordSubmission(reg *metrics.Registry) {
	if reg == nil {
		return
	}
	reg.ConsensusMessagesIn.WithLabelValues(c.kindLabel()).Inc()
}
