package config

import (
	"encoding/hex"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/certen-labs/objectchain/pkg/committee"
)

// CommitteeFileSpec is the on-disk shape of a committee bootstrap file: the
// epoch it is valid for and the hex-encoded BLS public key and stake of
// every member authority. ${VAR_NAME} entries are substituted from the
// environment before parsing, so a single checked-in file can carry
// per-deployment stake or key overrides.
type CommitteeFileSpec struct {
	Epoch       uint64               `yaml:"epoch"`
	Authorities []AuthorityEntrySpec `yaml:"authorities"`
}

// AuthorityEntrySpec is one committee member entry.
type AuthorityEntrySpec struct {
	Name  string `yaml:"name"`  // hex-encoded BLS public key, committee.AuthorityName's raw bytes
	Stake uint64 `yaml:"stake"`
}

var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

func substituteEnvVars(content string) string {
	return envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		groups := envVarPattern.FindStringSubmatch(match)
		if len(groups) < 2 {
			return match
		}
		varName := groups[1]
		defaultValue := ""
		if len(groups) >= 4 {
			defaultValue = groups[3]
		}
		if value := os.Getenv(varName); value != "" {
			return value
		}
		return defaultValue
	})
}

// LoadCommittee reads a CommitteeFileSpec from a YAML file and builds the
// committee.Committee it describes.
func LoadCommittee(path string) (*committee.Committee, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading committee file %s: %w", path, err)
	}

	expanded := substituteEnvVars(string(data))

	var spec CommitteeFileSpec
	if err := yaml.Unmarshal([]byte(expanded), &spec); err != nil {
		return nil, fmt.Errorf("parsing committee file %s: %w", path, err)
	}

	if len(spec.Authorities) == 0 {
		return nil, fmt.Errorf("committee file %s lists no authorities", path)
	}

	rights := make(map[committee.AuthorityName]committee.StakeUnit, len(spec.Authorities))
	for _, entry := range spec.Authorities {
		raw, err := hex.DecodeString(entry.Name)
		if err != nil {
			return nil, fmt.Errorf("authority %q: invalid hex name: %w", entry.Name, err)
		}
		var name committee.AuthorityName
		if len(raw) != len(name) {
			return nil, fmt.Errorf("authority %q: name must decode to %d bytes, got %d", entry.Name, len(name), len(raw))
		}
		copy(name[:], raw)
		rights[name] = committee.StakeUnit(entry.Stake)
	}

	return committee.New(spec.Epoch, rights), nil
}
