package domain

import (
	"fmt"
	"strings"
)

// Violation is a single limit breach attributed to a template location.
type Violation struct {
	Path    Path   `json:"path"`
	Message string `json:"message"`
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s", strings.Join(v.Path, "/"), v.Message)
}

// ConditionAssignment fixes one named condition to a boolean value.
type ConditionAssignment struct {
	Name  string `json:"name"`
	Value bool   `json:"value"`
}

// PropertyBranch is one concrete resolution of a property bag under a
// specific assignment of named conditions. A nil Scenario means the bag
// does not branch at all.
type PropertyBranch struct {
	Object   map[string]any        `json:"object"`
	Scenario []ConditionAssignment `json:"scenario,omitempty"`
}

// ScenarioSuffix renders the branch's condition assignment as a message
// suffix, e.g. ` when "IsProd" is True and "UseSecondary" is False`.
// Assignment order is preserved. Unconditional branches yield "".
func (b PropertyBranch) ScenarioSuffix() string {
	if len(b.Scenario) == 0 {
		return ""
	}
	parts := make([]string, 0, len(b.Scenario))
	for _, a := range b.Scenario {
		value := "False"
		if a.Value {
			value = "True"
		}
		parts = append(parts, fmt.Sprintf("%q is %s", a.Name, value))
	}
	return " when " + strings.Join(parts, " and ")
}

// RuleDescriptor identifies a lint rule to the host: a stable id,
// human-readable descriptions, a documentation link, and tags used for
// rule selection.
type RuleDescriptor struct {
	ID          string   `json:"id"`
	ShortDesc   string   `json:"short_desc"`
	Description string   `json:"description"`
	SourceURL   string   `json:"source_url,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}
