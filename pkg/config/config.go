// Package config loads a validator node's runtime configuration from
// environment variables, the way the teacher service does for its own
// process configuration.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/google/uuid"
)

// NodeConfig holds the runtime configuration for one validator process:
// where it listens, where its committee bootstrap file and signing key
// live, and how it identifies itself in logs and metrics.
type NodeConfig struct {
	// NodeID identifies this process instance across restarts for log
	// correlation. It is not a committee identity; committee membership
	// is keyed by AuthorityName (the node's BLS public key), set
	// separately once the authority key is loaded.
	NodeID uuid.UUID

	ListenAddr  string
	MetricsAddr string
	LogLevel    string

	DataDir          string
	AuthorityKeyPath string // path to this authority's BLS private key
	CommitteeFile    string // path to the YAML committee bootstrap file

	MetricsEnabled bool
}

// Load reads NodeConfig from environment variables, applying the same
// defaults-unless-set convention as the teacher's configuration loader.
func Load() (*NodeConfig, error) {
	nodeID, err := loadOrGenerateNodeID(getEnv("NODE_ID", ""))
	if err != nil {
		return nil, fmt.Errorf("parsing NODE_ID: %w", err)
	}

	cfg := &NodeConfig{
		NodeID: nodeID,

		ListenAddr:  getEnv("LISTEN_ADDR", "0.0.0.0:8080"),
		MetricsAddr: getEnv("METRICS_ADDR", "0.0.0.0:9090"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		DataDir:          getEnv("DATA_DIR", "./data"),
		AuthorityKeyPath: getEnv("AUTHORITY_KEY_PATH", ""),
		CommitteeFile:    getEnv("COMMITTEE_FILE", "./committee.yaml"),

		MetricsEnabled: getEnvBool("METRICS_ENABLED", true),
	}

	return cfg, nil
}

// Validate checks that configuration required to start a node is present.
func (c *NodeConfig) Validate() error {
	if c.AuthorityKeyPath == "" {
		return fmt.Errorf("AUTHORITY_KEY_PATH is required but not set")
	}
	if c.CommitteeFile == "" {
		return fmt.Errorf("COMMITTEE_FILE is required but not set")
	}
	return nil
}

func loadOrGenerateNodeID(raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.New(), nil
	}
	return uuid.Parse(raw)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
