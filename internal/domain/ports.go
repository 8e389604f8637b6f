package domain

// TemplateParser loads a CloudFormation template file into the model.
type TemplateParser interface {
	Parse(path string) (*Template, error)
}

// BranchResolver enumerates the mutually exclusive resolutions of a
// property bag under the template's conditional logic. Implementations
// guarantee that the returned scenarios partition all reachable
// condition assignments; a bag with no conditional nodes resolves to
// exactly one branch with a nil scenario.
type BranchResolver interface {
	ResolveBranches(properties map[string]any) []PropertyBranch
}

// ConfigLoader reads the lint configuration for a directory.
type ConfigLoader interface {
	Load(dir string) (LintConfig, error)
}

// GitInfo reports version-control provenance for a linted file.
type GitInfo interface {
	IsGitRepo(path string) bool
	CommitHash(path string) (string, error)
}
