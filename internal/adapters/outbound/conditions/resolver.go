// Package conditions implements branch enumeration for conditional
// template properties. Condition truth values stay symbolic: every
// assignment of the conditions a property bag actually uses yields one
// branch with the bag fully resolved under that assignment.
package conditions

import (
	"reflect"
	"sort"

	"github.com/stacklint/stacklint/internal/domain"
)

// maxConditions caps enumeration per property bag. Beyond the cap the
// bag is returned unresolved as a single branch instead of exploding
// into thousands of scenarios.
const maxConditions = 8

// Resolver implements domain.BranchResolver over Fn::If intrinsics.
type Resolver struct{}

// New creates a Resolver.
func New() *Resolver { return &Resolver{} }

// ResolveBranches enumerates the mutually exclusive resolutions of the
// property bag. Conditions whose value never changes the resolved bag
// are dropped from every scenario, so each scenario is the minimal set
// of assignments that distinguishes its branch.
func (r *Resolver) ResolveBranches(properties map[string]any) []domain.PropertyBranch {
	names := collectConditionNames(properties)
	if len(names) == 0 || len(names) > maxConditions {
		return []domain.PropertyBranch{{Object: properties}}
	}

	// Resolve the bag under every full assignment first, then keep only
	// the conditions whose flip changes some resolution.
	full := make([]map[string]any, 1<<len(names))
	for mask := range full {
		full[mask] = resolveObject(properties, assignmentFor(names, mask))
	}

	var influential []string
	var influentialBits []int
	for j, name := range names {
		bit := 1 << (len(names) - 1 - j)
		for mask := range full {
			if mask&bit == 0 && !reflect.DeepEqual(full[mask], full[mask|bit]) {
				influential = append(influential, name)
				influentialBits = append(influentialBits, bit)
				break
			}
		}
	}

	if len(influential) == 0 {
		return []domain.PropertyBranch{{Object: full[0]}}
	}

	// Each branch reuses a full resolution: non-influential conditions are
	// pinned to false, which by construction cannot change the object.
	branches := make([]domain.PropertyBranch, 0, 1<<len(influential))
	for mask := 0; mask < 1<<len(influential); mask++ {
		scenario := make([]domain.ConditionAssignment, len(influential))
		fullMask := 0
		for j, name := range influential {
			value := mask&(1<<(len(influential)-1-j)) != 0
			scenario[j] = domain.ConditionAssignment{Name: name, Value: value}
			if value {
				fullMask |= influentialBits[j]
			}
		}
		branches = append(branches, domain.PropertyBranch{
			Object:   full[fullMask],
			Scenario: scenario,
		})
	}
	return branches
}

// assignmentFor decodes a bitmask into a name→bool assignment, first
// name in the most significant position.
func assignmentFor(names []string, mask int) map[string]bool {
	assign := make(map[string]bool, len(names))
	for j, name := range names {
		assign[name] = mask&(1<<(len(names)-1-j)) != 0
	}
	return assign
}

// collectConditionNames walks the bag and returns the distinct condition
// names referenced by Fn::If nodes, in first-appearance order. Map keys
// are visited sorted so the order is stable across runs (Go map
// iteration order is randomized).
func collectConditionNames(v any) []string {
	var names []string
	seen := make(map[string]bool)

	var walk func(v any)
	walk = func(v any) {
		switch val := v.(type) {
		case map[string]any:
			if name, thenVal, elseVal, ok := fnIfParts(val); ok {
				if !seen[name] {
					seen[name] = true
					names = append(names, name)
				}
				walk(thenVal)
				walk(elseVal)
				return
			}
			keys := make([]string, 0, len(val))
			for k := range val {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				walk(val[k])
			}
		case []any:
			for _, item := range val {
				walk(item)
			}
		}
	}
	walk(v)
	return names
}

// resolveObject resolves every Fn::If in the bag under the assignment.
// Conditions absent from the assignment leave their Fn::If node intact.
func resolveObject(properties map[string]any, assign map[string]bool) map[string]any {
	resolved := resolveValue(properties, assign)
	obj, ok := resolved.(map[string]any)
	if !ok {
		return properties
	}
	return obj
}

func resolveValue(v any, assign map[string]bool) any {
	switch val := v.(type) {
	case map[string]any:
		if name, thenVal, elseVal, ok := fnIfParts(val); ok {
			value, known := assign[name]
			if !known {
				return val
			}
			if value {
				return resolveValue(thenVal, assign)
			}
			return resolveValue(elseVal, assign)
		}
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = resolveValue(item, assign)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = resolveValue(item, assign)
		}
		return out
	default:
		return v
	}
}

// fnIfParts recognizes a well-formed Fn::If node: a single-key map whose
// value is [conditionName, thenValue, elseValue]. Malformed nodes are
// treated as plain data.
func fnIfParts(m map[string]any) (name string, thenVal, elseVal any, ok bool) {
	if len(m) != 1 {
		return "", nil, nil, false
	}
	raw, exists := m["Fn::If"]
	if !exists {
		return "", nil, nil, false
	}
	args, isList := raw.([]any)
	if !isList || len(args) != 3 {
		return "", nil, nil, false
	}
	condName, isString := args[0].(string)
	if !isString {
		return "", nil, nil, false
	}
	return condName, args[1], args[2], true
}
