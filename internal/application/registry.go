package application

import (
	"github.com/stacklint/stacklint/internal/domain"
	"github.com/stacklint/stacklint/internal/domain/limits"
)

// Rule is a lint rule: a descriptor for registration plus a matcher
// that evaluates the template and returns ordered violations.
type Rule interface {
	Descriptor() domain.RuleDescriptor
	Match(tpl *domain.Template, resolver domain.BranchResolver) ([]domain.Violation, error)
}

// Registry holds lint rules in registration order. It is built once per
// lint run; there is no global mutable registry.
type Registry struct {
	rules []Rule
}

// NewRegistry creates a registry with the given rules.
func NewRegistry(rules ...Rule) *Registry {
	return &Registry{rules: rules}
}

// DefaultRegistry returns a registry with every shipped rule.
func DefaultRegistry() *Registry {
	return NewRegistry(limits.New())
}

// Rules returns the registered rules in registration order.
func (r *Registry) Rules() []Rule {
	return r.rules
}

// Descriptors returns the descriptors of all registered rules.
func (r *Registry) Descriptors() []domain.RuleDescriptor {
	out := make([]domain.RuleDescriptor, 0, len(r.rules))
	for _, rule := range r.rules {
		out = append(out, rule.Descriptor())
	}
	return out
}
