package recipe

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// OFStream pairs a reference file with a file the program under test writes.
type OFStream struct {
	BaseFile string `yaml:"base-file"`
	TestFile string `yaml:"test-file"`
}

// StdinText is the program input. The recipe may give it as a single string
// or as a list of lines; a list is joined with newlines and terminated with one.
type StdinText string

func (s *StdinText) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		var v string
		if err := n.Decode(&v); err != nil {
			return err
		}
		*s = StdinText(v)
		return nil
	case yaml.SequenceNode:
		var lines []string
		if err := n.Decode(&lines); err != nil {
			return err
		}
		if len(lines) == 0 {
			*s = ""
			return nil
		}
		*s = StdinText(strings.Join(lines, "\n") + "\n")
		return nil
	}
	return fmt.Errorf("stdin must be a string or a list of strings")
}

// Case describes a single test case.
type Case struct {
	Executable string     `yaml:"executable,omitempty"`
	ReturnCode *int       `yaml:"return-code,omitempty"`
	Argv       []string   `yaml:"argv,omitempty"`
	Stdin      StdinText  `yaml:"stdin,omitempty"`
	Stdout     string     `yaml:"stdout,omitempty"`
	Stderr     string     `yaml:"stderr,omitempty"`
	TimeoutMs  int        `yaml:"timeout,omitempty"`
	OFStreams  []OFStream `yaml:"ofstreams,omitempty"`
	Checks     []string   `yaml:"checks,omitempty"`
	Requires   []string   `yaml:"requires,omitempty"`
}

// Recipe is a parsed test recipe.
type Recipe struct {
	Executable string          `yaml:"executable"`
	Cases      map[string]Case `yaml:"test-cases"`

	names []string
}

// Names returns the case names in document order.
func (r *Recipe) Names() []string {
	return append([]string(nil), r.names...)
}

// Load reads, schema-validates and decodes a recipe file.
func Load(path string) (*Recipe, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read recipe: %w", err)
	}
	return Parse(path, b)
}

// Parse validates and decodes recipe bytes. The path is used for messages only.
func Parse(path string, b []byte) (*Recipe, error) {
	if err := validateSchema(path, b); err != nil {
		return nil, err
	}

	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	var r Recipe
	if err := dec.Decode(&r); err != nil {
		return nil, fmt.Errorf("invalid recipe: %v", err)
	}
	if r.Executable == "" {
		return nil, fmt.Errorf("invalid recipe: missing required field: executable")
	}
	if len(r.Cases) == 0 {
		return nil, fmt.Errorf("invalid recipe: missing required field: test-cases")
	}

	names, err := caseNamesInOrder(b)
	if err != nil {
		return nil, err
	}
	r.names = names

	for name, c := range r.Cases {
		for _, req := range c.Requires {
			if req == name {
				return nil, fmt.Errorf("invalid recipe: case %s requires itself", name)
			}
			if _, ok := r.Cases[req]; !ok {
				return nil, fmt.Errorf("invalid recipe: case %s requires unknown case %s", name, req)
			}
		}
	}
	return &r, nil
}

// caseNamesInOrder extracts test-case names preserving document order.
func caseNamesInOrder(b []byte) ([]string, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("invalid recipe: %v", err)
	}
	top := mappingNode(&doc)
	if top == nil {
		return nil, fmt.Errorf("invalid recipe: top-level must be mapping")
	}
	cases := mappingValue(top, "test-cases")
	if cases == nil || cases.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("invalid recipe: missing required field: test-cases")
	}
	names := make([]string, 0, len(cases.Content)/2)
	for i := 0; i+1 < len(cases.Content); i += 2 {
		names = append(names, cases.Content[i].Value)
	}
	return names, nil
}

func mappingNode(doc *yaml.Node) *yaml.Node {
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		doc = doc.Content[0]
	}
	if doc.Kind != yaml.MappingNode {
		return nil
	}
	return doc
}

func mappingValue(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}
