package application

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/stacklint/stacklint/internal/domain"
)

// LintResult is the outcome of linting one template file.
type LintResult struct {
	Status       string          `json:"status"`
	TemplatePath string          `json:"template_path"`
	CommitHash   string          `json:"commit_hash,omitempty"`
	Violations   []RuleViolation `json:"violations"`
}

// RuleViolation is a violation attributed to the rule that produced it.
type RuleViolation struct {
	RuleID  string      `json:"rule_id"`
	Path    domain.Path `json:"path"`
	Message string      `json:"message"`
}

const (
	StatusPass = "pass"
	StatusFail = "fail"
)

// LintService runs every registered rule against a template file and
// flattens the violations into one ordered result.
type LintService struct {
	parser       domain.TemplateParser
	resolver     domain.BranchResolver
	registry     *Registry
	configLoader domain.ConfigLoader
	gitInfo      domain.GitInfo
	logger       *zap.Logger
}

// NewLintService creates a LintService with all required dependencies.
// A nil logger disables logging.
func NewLintService(
	parser domain.TemplateParser,
	resolver domain.BranchResolver,
	registry *Registry,
	configLoader domain.ConfigLoader,
	gitInfo domain.GitInfo,
	logger *zap.Logger,
) *LintService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LintService{
		parser: parser, resolver: resolver, registry: registry,
		configLoader: configLoader, gitInfo: gitInfo, logger: logger,
	}
}

// Lint parses the template at templatePath and evaluates every
// registered rule not excluded by config. Violation order follows rule
// registration order, then each rule's own reporting order.
func (s *LintService) Lint(templatePath string) (*LintResult, error) {
	// 1. Load config from the template's directory
	cfg, err := s.configLoader.Load(filepath.Dir(templatePath))
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	// 2. Parse the template
	tpl, err := s.parser.Parse(templatePath)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", templatePath, err)
	}
	s.logger.Debug("template parsed",
		zap.String("template", templatePath),
		zap.Int("resources", len(tpl.Resources)))

	// 3. Run rules
	var violations []RuleViolation
	for _, rule := range s.registry.Rules() {
		desc := rule.Descriptor()
		if cfg.Ignores(desc.ID) {
			s.logger.Debug("rule ignored", zap.String("rule", desc.ID))
			continue
		}

		found, err := rule.Match(tpl, s.resolver)
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", desc.ID, err)
		}
		s.logger.Debug("rule evaluated",
			zap.String("rule", desc.ID),
			zap.Int("violations", len(found)))

		for _, v := range found {
			violations = append(violations, RuleViolation{
				RuleID:  desc.ID,
				Path:    v.Path,
				Message: v.Message,
			})
		}
	}

	// 4. Determine status
	status := StatusPass
	if len(violations) > 0 {
		status = StatusFail
	}

	result := &LintResult{
		Status:       status,
		TemplatePath: templatePath,
		Violations:   violations,
	}

	// 5. Stamp provenance when the template lives in a git repo
	if s.gitInfo != nil && s.gitInfo.IsGitRepo(templatePath) {
		if hash, err := s.gitInfo.CommitHash(templatePath); err == nil {
			result.CommitHash = hash
		}
	}

	return result, nil
}
