package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// accountsFile is the schema of the optional accounts YAML file:
//
//	accounts:
//	  - ucr: "12345"
//	    name: "Rescue Station North"
type accountsFile struct {
	Accounts []Account `yaml:"accounts"`
}

// LoadAccounts reads and parses the accounts YAML file.
func LoadAccounts(path string) ([]Account, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read accounts file: %w", err)
	}

	var parsed accountsFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse accounts yaml: %w", err)
	}

	accounts := make([]Account, 0, len(parsed.Accounts))
	for _, acc := range parsed.Accounts {
		if acc.UCR == "" {
			return nil, fmt.Errorf("account entry without ucr id")
		}
		if acc.Name == "" {
			acc.Name = acc.UCR
		}
		accounts = append(accounts, acc)
	}
	return accounts, nil
}
