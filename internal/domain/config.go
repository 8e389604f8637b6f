package domain

import "errors"

// LintConfig controls which rules run and how findings are treated.
type LintConfig struct {
	// IgnoreRules lists rule ids (e.g. "E2508") to skip entirely.
	IgnoreRules []string `yaml:"ignore_rules"`
	// Strict promotes warning-level findings to failures. Reserved for
	// rules that report warnings; limit breaches are always errors.
	Strict bool `yaml:"strict"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() LintConfig {
	return LintConfig{}
}

// Validate catches malformed user input before it silently disables rules.
func (c LintConfig) Validate() error {
	for _, id := range c.IgnoreRules {
		if id == "" {
			return errors.New("ignore_rules contains an empty rule id")
		}
	}
	return nil
}

// Ignores reports whether the rule id is in the ignore list.
func (c LintConfig) Ignores(ruleID string) bool {
	for _, id := range c.IgnoreRules {
		if id == ruleID {
			return true
		}
	}
	return false
}
