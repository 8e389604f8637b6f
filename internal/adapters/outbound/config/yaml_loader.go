package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/stacklint/stacklint/internal/domain"
	"gopkg.in/yaml.v3"
)

const fileName = ".stacklint.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .stacklint.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .stacklint.yaml from dir.
// Returns DefaultConfig if the file does not exist.
func (l *YAMLLoader) Load(dir string) (domain.LintConfig, error) {
	data, err := os.ReadFile(filepath.Join(dir, fileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.LintConfig{}, err
	}

	var cfg domain.LintConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.LintConfig{}, fmt.Errorf("parsing %s: %w", fileName, err)
	}

	if err := cfg.Validate(); err != nil {
		return domain.LintConfig{}, fmt.Errorf("invalid %s: %w", fileName, err)
	}

	return cfg, nil
}
