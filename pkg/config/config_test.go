package config

import "testing"

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ListenAddr == "" {
		t.Error("expected a default ListenAddr")
	}
	if cfg.NodeID.String() == "" {
		t.Error("expected a generated NodeID")
	}
}

func TestValidateRequiresAuthorityKeyPath(t *testing.T) {
	cfg := &NodeConfig{CommitteeFile: "./committee.yaml"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected Validate to fail without an authority key path")
	}
}
