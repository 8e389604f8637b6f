package limits

import (
	"fmt"
	"unicode/utf8"

	"github.com/stacklint/stacklint/internal/domain"
)

const (
	maxManagedPolicyArns    = 10
	maxInstanceProfileRoles = 1
	maxUserGroups           = 10
	maxTrustPolicyChars     = 2048
)

// checkFunc applies one limit predicate to a resource's property bag.
type checkFunc func(properties map[string]any, path domain.Path, resolver domain.BranchResolver) ([]domain.Violation, error)

// checkListLength evaluates a list-length limit for one property across
// every conditional branch of the property bag. Absent properties and
// non-list branch values (e.g. unresolved intrinsic functions) produce
// no violations.
func checkListLength(properties map[string]any, path domain.Path, resolver domain.BranchResolver, property string, max int, message string) []domain.Violation {
	if _, ok := properties[property]; !ok {
		return nil
	}

	var violations []domain.Violation
	for _, branch := range resolver.ResolveBranches(properties) {
		list, ok := branch.Object[property].([]any)
		if !ok {
			continue
		}
		if len(list) > max {
			violations = append(violations, domain.Violation{
				Path:    path.Child(property),
				Message: message + branch.ScenarioSuffix(),
			})
		}
	}
	return violations
}

func checkManagedPolicyArns(properties map[string]any, path domain.Path, resolver domain.BranchResolver) ([]domain.Violation, error) {
	message := fmt.Sprintf("IAM resources cannot have more than %d ManagedPolicyArns", maxManagedPolicyArns)
	return checkListLength(properties, path, resolver, "ManagedPolicyArns", maxManagedPolicyArns, message), nil
}

func checkInstanceProfileRoles(properties map[string]any, path domain.Path, resolver domain.BranchResolver) ([]domain.Violation, error) {
	message := "InstanceProfile can only have one role attached"
	return checkListLength(properties, path, resolver, "Roles", maxInstanceProfileRoles, message), nil
}

func checkUserGroups(properties map[string]any, path domain.Path, resolver domain.BranchResolver) ([]domain.Violation, error) {
	message := fmt.Sprintf("User can be a member of maximum %d groups", maxUserGroups)
	return checkListLength(properties, path, resolver, "Groups", maxUserGroups, message), nil
}

// checkAssumeRolePolicyDocument measures the trust policy's canonical
// JSON text length. Unlike the list limits it evaluates the raw
// property value without conditional resolution, so at most one
// violation is emitted and it carries no scenario.
func checkAssumeRolePolicyDocument(properties map[string]any, path domain.Path, _ domain.BranchResolver) ([]domain.Violation, error) {
	doc, ok := properties["AssumeRolePolicyDocument"]
	if !ok {
		return nil, nil
	}

	text, err := serializeDocument(doc)
	if err != nil {
		return nil, err
	}

	if utf8.RuneCountInString(text) > maxTrustPolicyChars {
		return []domain.Violation{{
			Path:    path.Child("AssumeRolePolicyDocument"),
			Message: fmt.Sprintf("Role trust policy JSON text cannot be longer than %d characters", maxTrustPolicyChars),
		}}, nil
	}
	return nil, nil
}
