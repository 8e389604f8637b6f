// Package limits checks IAM resources in a CloudFormation template
// against provider-imposed numeric and size limits, reporting each
// breach scoped to the condition scenario that produces it.
package limits

import (
	"fmt"

	"github.com/stacklint/stacklint/internal/domain"
)

// Rule is the IAM limits lint rule.
type Rule struct{}

// New creates the IAM limits rule.
func New() *Rule { return &Rule{} }

// Descriptor returns the rule's registration metadata.
func (r *Rule) Descriptor() domain.RuleDescriptor {
	return domain.RuleDescriptor{
		ID:          "E2508",
		ShortDesc:   "Check IAM resource limits",
		Description: "See if IAM resources do not breach limits",
		SourceURL:   "https://docs.aws.amazon.com/AWSCloudFormation/latest/UserGuide/cloudformation-limits.html",
		Tags:        []string{"resources", "iam"},
	}
}

// dispatch maps each supported resource type to its limit checks. The
// declared order here, and the order of checks per type, is the order
// violations are reported in.
var dispatch = []struct {
	resourceType string
	checks       []checkFunc
}{
	{"AWS::IAM::User", []checkFunc{checkManagedPolicyArns, checkUserGroups}},
	{"AWS::IAM::Group", []checkFunc{checkManagedPolicyArns}},
	{"AWS::IAM::Role", []checkFunc{checkManagedPolicyArns, checkAssumeRolePolicyDocument}},
	{"AWS::IAM::InstanceProfile", []checkFunc{checkInstanceProfileRoles}},
}

// Match evaluates every limit check against every matching resource and
// returns the flattened violations. The only error condition is a trust
// policy document that cannot be serialized; everything else (absent
// properties, non-list values) is a silent skip, not a failure.
func (r *Rule) Match(tpl *domain.Template, resolver domain.BranchResolver) ([]domain.Violation, error) {
	var violations []domain.Violation
	for _, entry := range dispatch {
		for _, resource := range tpl.ResourcesByType(entry.resourceType) {
			path := domain.ResourcePath(resource.Name)
			for _, check := range entry.checks {
				found, err := check(resource.Properties, path, resolver)
				if err != nil {
					return nil, fmt.Errorf("checking %s %q: %w", entry.resourceType, resource.Name, err)
				}
				violations = append(violations, found...)
			}
		}
	}
	return violations, nil
}
