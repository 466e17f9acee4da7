package config

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/certen-labs/objectchain/pkg/crypto/authsig"
)

func TestLoadCommitteeBuildsCommitteeFromYAML(t *testing.T) {
	_, pk, err := authsig.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair failed: %v", err)
	}
	nameHex := hex.EncodeToString(pk.Bytes())

	dir := t.TempDir()
	path := filepath.Join(dir, "committee.yaml")
	content := "epoch: 3\nauthorities:\n  - name: \"" + nameHex + "\"\n    stake: 10\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	c, err := LoadCommittee(path)
	if err != nil {
		t.Fatalf("LoadCommittee failed: %v", err)
	}
	if c.Epoch() != 3 {
		t.Errorf("Epoch = %d, want 3", c.Epoch())
	}
	if c.TotalStake() != 10 {
		t.Errorf("TotalStake = %d, want 10", c.TotalStake())
	}
}

func TestLoadCommitteeRejectsEmptyAuthorityList(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "committee.yaml")
	if err := os.WriteFile(path, []byte("epoch: 1\nauthorities: []\n"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, err := LoadCommittee(path); err == nil {
		t.Error("expected LoadCommittee to reject a committee file with no authorities")
	}
}

