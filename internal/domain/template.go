package domain

// Template is the in-memory model of a CloudFormation template. It is
// read-only once built by the parser; rules never mutate it.
type Template struct {
	Resources  map[string]ResourceDeclaration `json:"resources"`
	Conditions []string                       `json:"conditions,omitempty"`

	// resourceOrder preserves the declaration order of the Resources
	// section so rule output is deterministic across runs.
	resourceOrder []string
}

// ResourceDeclaration is a single named entry in the Resources section.
type ResourceDeclaration struct {
	Name       string         `json:"name"`
	Type       string         `json:"type"`
	Condition  string         `json:"condition,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
}

// NewTemplate builds a Template from resources in declaration order.
func NewTemplate(resources []ResourceDeclaration, conditions []string) *Template {
	t := &Template{
		Resources:  make(map[string]ResourceDeclaration, len(resources)),
		Conditions: conditions,
	}
	for _, r := range resources {
		if _, exists := t.Resources[r.Name]; !exists {
			t.resourceOrder = append(t.resourceOrder, r.Name)
		}
		t.Resources[r.Name] = r
	}
	return t
}

// ResourcesByType returns every resource whose declared type equals
// resourceType, in template declaration order. The match is exact; an
// unknown type yields an empty slice.
func (t *Template) ResourcesByType(resourceType string) []ResourceDeclaration {
	var out []ResourceDeclaration
	for _, name := range t.resourceOrder {
		if r := t.Resources[name]; r.Type == resourceType {
			out = append(out, r)
		}
	}
	return out
}

// Path locates a value inside the template, e.g.
// ["Resources", "MyRole", "Properties", "Roles"].
type Path []string

// Child returns a new Path with segments appended. The receiver is
// never modified, so paths built from a shared prefix stay independent.
func (p Path) Child(segments ...string) Path {
	child := make(Path, 0, len(p)+len(segments))
	child = append(child, p...)
	child = append(child, segments...)
	return child
}

// ResourcePath returns the path to a resource's Properties section.
func ResourcePath(resourceName string) Path {
	return Path{"Resources", resourceName, "Properties"}
}
