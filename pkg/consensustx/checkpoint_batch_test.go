package consensustx

import (
	"testing"

	"github.com/certen-labs/objectchain/pkg/merkle"
	"github.com/certen-labs/objectchain/pkg/transaction"
)

func TestBuildCheckpointPayloadProvesInclusion(t *testing.T) {
	cert1, _, _ := newCertificate(t)
	cert2, _, _ := newCertificate(t)
	certs := []*transaction.CertifiedTransaction{cert1, cert2}

	root, err := BuildCheckpointPayload(certs)
	if err != nil {
		t.Fatalf("BuildCheckpointPayload failed: %v", err)
	}

	proof, err := CheckpointInclusionProof(certs, 0)
	if err != nil {
		t.Fatalf("CheckpointInclusionProof failed: %v", err)
	}

	d, err := cert1.Digest()
	if err != nil {
		t.Fatalf("Digest failed: %v", err)
	}
	ok, err := merkle.VerifyProof(d[:], proof, root)
	if err != nil {
		t.Fatalf("VerifyProof failed: %v", err)
	}
	if !ok {
		t.Error("expected proof to verify against the batch root")
	}

	var tampered [32]byte
	copy(tampered[:], d[:])
	tampered[0] ^= 0xff
	bad, err := merkle.VerifyProof(tampered[:], proof, root)
	if err != nil {
		t.Fatalf("VerifyProof failed: %v", err)
	}
	if bad {
		t.Error("expected proof verification to fail for a tampered digest")
	}
}
