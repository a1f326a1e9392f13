package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type SeedAdmin struct {
	Email    string `yaml:"email"`
	FullName string `yaml:"full_name"`
	Password string `yaml:"password"`
}

type SeedConfig struct {
	Admins     []SeedAdmin `yaml:"admins"`
	Categories []string    `yaml:"categories"`
}

// LoadSeedConfig yaml path : docs/seed.yaml
func LoadSeedConfig(path string) (*SeedConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := &SeedConfig{}
	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, err
	}

	return config, nil
}

func (s *SeedConfig) HasCategory(category string) bool {
	if s == nil || len(s.Categories) == 0 {
		return true
	}
	for _, c := range s.Categories {
		if c == category {
			return true
		}
	}
	return false
}
