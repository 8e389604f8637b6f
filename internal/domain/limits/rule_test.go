package limits_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stacklint/stacklint/internal/domain"
	"github.com/stacklint/stacklint/internal/domain/limits"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubResolver returns a fixed branch sequence, or passes the bag
// through as a single unconditional branch when none is set.
type stubResolver struct {
	branches []domain.PropertyBranch
}

func (s stubResolver) ResolveBranches(properties map[string]any) []domain.PropertyBranch {
	if s.branches != nil {
		return s.branches
	}
	return []domain.PropertyBranch{{Object: properties}}
}

func arns(n int) []any {
	list := make([]any, n)
	for i := range list {
		list[i] = "arn:aws:iam::aws:policy/ReadOnlyAccess"
	}
	return list
}

func userTemplate(name string, properties map[string]any) *domain.Template {
	return domain.NewTemplate([]domain.ResourceDeclaration{
		{Name: name, Type: "AWS::IAM::User", Properties: properties},
	}, nil)
}

func TestRule_Descriptor(t *testing.T) {
	desc := limits.New().Descriptor()

	assert.Equal(t, "E2508", desc.ID)
	assert.Equal(t, "Check IAM resource limits", desc.ShortDesc)
	assert.Equal(t, []string{"resources", "iam"}, desc.Tags)
}

func TestManagedPolicyArns_ElevenArnsUnconditional(t *testing.T) {
	tpl := userTemplate("MyUser", map[string]any{"ManagedPolicyArns": arns(11)})

	violations, err := limits.New().Match(tpl, stubResolver{})
	require.NoError(t, err)
	require.Len(t, violations, 1)

	assert.Equal(t, domain.Path{"Resources", "MyUser", "Properties", "ManagedPolicyArns"}, violations[0].Path)
	assert.Equal(t, "IAM resources cannot have more than 10 ManagedPolicyArns", violations[0].Message)
}

func TestManagedPolicyArns_AtThreshold(t *testing.T) {
	tpl := userTemplate("MyUser", map[string]any{"ManagedPolicyArns": arns(10)})

	violations, err := limits.New().Match(tpl, stubResolver{})
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestAbsentProperty_NoViolation(t *testing.T) {
	tpl := userTemplate("MyUser", map[string]any{"UserName": "alice"})

	violations, err := limits.New().Match(tpl, stubResolver{})
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestNilProperties_NoViolation(t *testing.T) {
	tpl := userTemplate("MyUser", nil)

	violations, err := limits.New().Match(tpl, stubResolver{})
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestNonListValue_Skipped(t *testing.T) {
	// An unresolved intrinsic is not a list; the predicate must not flag it.
	tpl := userTemplate("MyUser", map[string]any{
		"ManagedPolicyArns": map[string]any{"Fn::Split": []any{",", "a,b"}},
	})

	violations, err := limits.New().Match(tpl, stubResolver{})
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestUserGroups_ElevenGroups(t *testing.T) {
	groups := make([]any, 11)
	for i := range groups {
		groups[i] = "Admins"
	}
	tpl := userTemplate("MyUser", map[string]any{"Groups": groups})

	violations, err := limits.New().Match(tpl, stubResolver{})
	require.NoError(t, err)
	require.Len(t, violations, 1)

	assert.Equal(t, "User can be a member of maximum 10 groups", violations[0].Message)
	assert.Equal(t, domain.Path{"Resources", "MyUser", "Properties", "Groups"}, violations[0].Path)
}

func TestGroupManagedPolicyArns(t *testing.T) {
	tpl := domain.NewTemplate([]domain.ResourceDeclaration{
		{Name: "MyGroup", Type: "AWS::IAM::Group", Properties: map[string]any{"ManagedPolicyArns": arns(11)}},
	}, nil)

	violations, err := limits.New().Match(tpl, stubResolver{})
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Equal(t, domain.Path{"Resources", "MyGroup", "Properties", "ManagedPolicyArns"}, violations[0].Path)
}

func TestInstanceProfileRoles_ConditionalBranch(t *testing.T) {
	properties := map[string]any{"Roles": "placeholder"}
	tpl := domain.NewTemplate([]domain.ResourceDeclaration{
		{Name: "MyProfile", Type: "AWS::IAM::InstanceProfile", Properties: properties},
	}, nil)

	// One branch with a single role, one with two roles under UseBackup.
	resolver := stubResolver{branches: []domain.PropertyBranch{
		{
			Object:   map[string]any{"Roles": []any{"primary"}},
			Scenario: []domain.ConditionAssignment{{Name: "UseBackup", Value: false}},
		},
		{
			Object:   map[string]any{"Roles": []any{"primary", "backup"}},
			Scenario: []domain.ConditionAssignment{{Name: "UseBackup", Value: true}},
		},
	}}

	violations, err := limits.New().Match(tpl, resolver)
	require.NoError(t, err)
	require.Len(t, violations, 1)

	assert.Equal(t, domain.Path{"Resources", "MyProfile", "Properties", "Roles"}, violations[0].Path)
	assert.Equal(t, `InstanceProfile can only have one role attached when "UseBackup" is True`, violations[0].Message)
}

func TestScenarioSuffix_TwoConditionsOrderPreserved(t *testing.T) {
	properties := map[string]any{"ManagedPolicyArns": "placeholder"}
	tpl := userTemplate("MyUser", properties)

	resolver := stubResolver{branches: []domain.PropertyBranch{
		{
			Object: map[string]any{"ManagedPolicyArns": arns(11)},
			Scenario: []domain.ConditionAssignment{
				{Name: "IsProd", Value: true},
				{Name: "UseSecondary", Value: false},
			},
		},
	}}

	violations, err := limits.New().Match(tpl, resolver)
	require.NoError(t, err)
	require.Len(t, violations, 1)

	assert.Equal(t,
		`IAM resources cannot have more than 10 ManagedPolicyArns when "IsProd" is True and "UseSecondary" is False`,
		violations[0].Message)
}

func TestEachOffendingBranch_OneViolation(t *testing.T) {
	properties := map[string]any{"ManagedPolicyArns": "placeholder"}
	tpl := userTemplate("MyUser", properties)

	resolver := stubResolver{branches: []domain.PropertyBranch{
		{Object: map[string]any{"ManagedPolicyArns": arns(11)},
			Scenario: []domain.ConditionAssignment{{Name: "IsProd", Value: false}}},
		{Object: map[string]any{"ManagedPolicyArns": arns(5)},
			Scenario: []domain.ConditionAssignment{{Name: "IsProd", Value: true}}},
	}}

	violations, err := limits.New().Match(tpl, resolver)
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0].Message, `when "IsProd" is False`)
}

// trustPolicy builds a document whose canonical JSON text is exactly
// textLen characters: {"Statement":"aaa...a"} is 16 + len(statement).
func trustPolicy(textLen int) map[string]any {
	return map[string]any{"Statement": strings.Repeat("a", textLen-16)}
}

func roleTemplate(properties map[string]any) *domain.Template {
	return domain.NewTemplate([]domain.ResourceDeclaration{
		{Name: "MyRole", Type: "AWS::IAM::Role", Properties: properties},
	}, nil)
}

func TestTrustPolicy_Exactly2048Chars(t *testing.T) {
	tpl := roleTemplate(map[string]any{"AssumeRolePolicyDocument": trustPolicy(2048)})

	violations, err := limits.New().Match(tpl, stubResolver{})
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestTrustPolicy_2049Chars(t *testing.T) {
	tpl := roleTemplate(map[string]any{"AssumeRolePolicyDocument": trustPolicy(2049)})

	violations, err := limits.New().Match(tpl, stubResolver{})
	require.NoError(t, err)
	require.Len(t, violations, 1)

	assert.Equal(t, domain.Path{"Resources", "MyRole", "Properties", "AssumeRolePolicyDocument"}, violations[0].Path)
	assert.Equal(t, "Role trust policy JSON text cannot be longer than 2048 characters", violations[0].Message)
}

func TestTrustPolicy_DateFieldSerializes(t *testing.T) {
	// A date inside the document must serialize as ISO-8601 text, not fail.
	doc := map[string]any{
		"Expires":   time.Date(2019, 7, 1, 0, 0, 0, 0, time.UTC),
		"Statement": strings.Repeat("a", 2100),
	}
	tpl := roleTemplate(map[string]any{"AssumeRolePolicyDocument": doc})

	violations, err := limits.New().Match(tpl, stubResolver{})
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Equal(t, "Role trust policy JSON text cannot be longer than 2048 characters", violations[0].Message)
}

func TestTrustPolicy_SmallDateDocument_NoViolation(t *testing.T) {
	doc := map[string]any{"Expires": time.Date(2019, 7, 1, 0, 0, 0, 0, time.UTC)}
	tpl := roleTemplate(map[string]any{"AssumeRolePolicyDocument": doc})

	violations, err := limits.New().Match(tpl, stubResolver{})
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestTrustPolicy_UnsupportedValue_ReturnsTypedError(t *testing.T) {
	doc := map[string]any{"Statement": struct{ X int }{X: 1}}
	tpl := roleTemplate(map[string]any{"AssumeRolePolicyDocument": doc})

	_, err := limits.New().Match(tpl, stubResolver{})
	require.Error(t, err)

	var unsupported *limits.UnsupportedValueError
	assert.True(t, errors.As(err, &unsupported))
}

func TestTrustPolicy_DoesNotBranch(t *testing.T) {
	// The trust policy predicate evaluates the raw value; even a resolver
	// that would split into scenarios must not affect it.
	resolver := stubResolver{branches: []domain.PropertyBranch{
		{Object: map[string]any{}, Scenario: []domain.ConditionAssignment{{Name: "X", Value: true}}},
		{Object: map[string]any{}, Scenario: []domain.ConditionAssignment{{Name: "X", Value: false}}},
	}}
	tpl := roleTemplate(map[string]any{"AssumeRolePolicyDocument": trustPolicy(2049)})

	violations, err := limits.New().Match(tpl, resolver)
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.NotContains(t, violations[0].Message, "when")
}

func TestMatch_DispatchOrder(t *testing.T) {
	// Resources declared in reverse dispatch order; violations must come
	// back in dispatch order: User, Group, Role, InstanceProfile.
	tpl := domain.NewTemplate([]domain.ResourceDeclaration{
		{Name: "Profile", Type: "AWS::IAM::InstanceProfile", Properties: map[string]any{"Roles": []any{"a", "b"}}},
		{Name: "Role", Type: "AWS::IAM::Role", Properties: map[string]any{"ManagedPolicyArns": arns(11)}},
		{Name: "Group", Type: "AWS::IAM::Group", Properties: map[string]any{"ManagedPolicyArns": arns(11)}},
		{Name: "User", Type: "AWS::IAM::User", Properties: map[string]any{"ManagedPolicyArns": arns(11)}},
	}, nil)

	violations, err := limits.New().Match(tpl, stubResolver{})
	require.NoError(t, err)
	require.Len(t, violations, 4)

	assert.Equal(t, "User", violations[0].Path[1])
	assert.Equal(t, "Group", violations[1].Path[1])
	assert.Equal(t, "Role", violations[2].Path[1])
	assert.Equal(t, "Profile", violations[3].Path[1])
}

func TestMatch_Idempotent(t *testing.T) {
	tpl := userTemplate("MyUser", map[string]any{"ManagedPolicyArns": arns(11)})
	rule := limits.New()

	first, err := rule.Match(tpl, stubResolver{})
	require.NoError(t, err)
	second, err := rule.Match(tpl, stubResolver{})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestMatch_UnrelatedTypesIgnored(t *testing.T) {
	tpl := domain.NewTemplate([]domain.ResourceDeclaration{
		{Name: "Bucket", Type: "AWS::S3::Bucket", Properties: map[string]any{"ManagedPolicyArns": arns(11)}},
	}, nil)

	violations, err := limits.New().Match(tpl, stubResolver{})
	require.NoError(t, err)
	assert.Empty(t, violations)
}
