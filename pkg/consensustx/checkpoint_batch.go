package consensustx

import (
	"github.com/certen-labs/objectchain/pkg/merkle"
	"github.com/certen-labs/objectchain/pkg/transaction"
)

// BuildCheckpointPayload folds a batch of certified transactions into a
// single Merkle root, ordered by the order the certificates are given in.
// The fragment carries the root rather than every digest, so a peer can
// check one certificate's inclusion with a proof from CheckpointInclusionProof
// instead of re-sending the whole batch.
func BuildCheckpointPayload(certs []*transaction.CertifiedTransaction) ([]byte, error) {
	leaves := make([][]byte, len(certs))
	for i, cert := range certs {
		d, err := cert.Digest()
		if err != nil {
			return nil, err
		}
		leaf := make([]byte, len(d))
		copy(leaf, d[:])
		leaves[i] = leaf
	}
	tree, err := merkle.BuildTree(leaves)
	if err != nil {
		return nil, err
	}
	return tree.Root(), nil
}

// CheckpointInclusionProof proves that the certificate at index i of the
// same batch passed to BuildCheckpointPayload is included in the fragment
// payload returned by that call.
func CheckpointInclusionProof(certs []*transaction.CertifiedTransaction, index int) (*merkle.InclusionProof, error) {
	leaves := make([][]byte, len(certs))
	for i, cert := range certs {
		d, err := cert.Digest()
		if err != nil {
			return nil, err
		}
		leaf := make([]byte, len(d))
		copy(leaf, d[:])
		leaves[i] = leaf
	}
	tree, err := merkle.BuildTree(leaves)
	if err != nil {
		return nil, err
	}
	return tree.GenerateProof(index)
}
