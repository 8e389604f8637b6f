// Package parser loads CloudFormation templates from YAML or JSON
// files into the domain model. YAML 1.2 is a superset of JSON, so one
// decoder covers both formats.
package parser

import (
	"fmt"
	"os"

	"github.com/stacklint/stacklint/internal/domain"
	"gopkg.in/yaml.v3"
)

// Parser implements domain.TemplateParser with yaml.v3.
type Parser struct{}

// New creates a Parser.
func New() *Parser { return &Parser{} }

// Parse reads the template file at path. Resource declaration order is
// preserved via the yaml.Node tree so lint output is deterministic.
func (p *Parser) Parse(path string) (*domain.Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading template: %w", err)
	}
	return parseBytes(data)
}

func parseBytes(data []byte) (*domain.Template, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parsing template: %w", err)
	}
	if len(root.Content) == 0 {
		return domain.NewTemplate(nil, nil), nil
	}

	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parsing template: top level is not a mapping")
	}

	var resources []domain.ResourceDeclaration
	var conditions []string

	for i := 0; i+1 < len(doc.Content); i += 2 {
		key := doc.Content[i].Value
		value := doc.Content[i+1]
		switch key {
		case "Resources":
			parsed, err := parseResources(value)
			if err != nil {
				return nil, err
			}
			resources = parsed
		case "Conditions":
			conditions = mappingKeys(value)
		}
	}

	return domain.NewTemplate(resources, conditions), nil
}

func parseResources(node *yaml.Node) ([]domain.ResourceDeclaration, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parsing template: Resources is not a mapping")
	}

	var resources []domain.ResourceDeclaration
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		decl, err := parseResource(name, node.Content[i+1])
		if err != nil {
			return nil, err
		}
		resources = append(resources, decl)
	}
	return resources, nil
}

func parseResource(name string, node *yaml.Node) (domain.ResourceDeclaration, error) {
	if node.Kind != yaml.MappingNode {
		return domain.ResourceDeclaration{}, fmt.Errorf("parsing template: resource %q is not a mapping", name)
	}

	decl := domain.ResourceDeclaration{Name: name}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		value := node.Content[i+1]
		switch key {
		case "Type":
			decl.Type = value.Value
		case "Condition":
			decl.Condition = value.Value
		case "Properties":
			var props map[string]any
			if err := value.Decode(&props); err != nil {
				return domain.ResourceDeclaration{}, fmt.Errorf("parsing resource %q properties: %w", name, err)
			}
			decl.Properties = props
		}
	}

	if decl.Type == "" {
		return domain.ResourceDeclaration{}, fmt.Errorf("parsing template: resource %q has no Type", name)
	}
	return decl, nil
}

func mappingKeys(node *yaml.Node) []string {
	if node.Kind != yaml.MappingNode {
		return nil
	}
	var keys []string
	for i := 0; i+1 < len(node.Content); i += 2 {
		keys = append(keys, node.Content[i].Value)
	}
	return keys
}
