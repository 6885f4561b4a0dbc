package recipe

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Recorded describes a captured program run to be appended to a recipe.
type Recorded struct {
	Executable string
	ReturnCode int
	Argv       []string
	Stdin      []string
	Stdout     string
	Stderr     string
	OFStreams  []OFStream
}

// Append adds a recorded case to the recipe at path, creating the file when
// it does not exist yet. Document order of existing cases is preserved.
func Append(path, name string, rec Recorded) error {
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return writeRecipe(path, newRecipeDoc(name, rec))
	}
	if err != nil {
		return fmt.Errorf("failed to read recipe: %w", err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return fmt.Errorf("invalid recipe: %v", err)
	}
	top := mappingNode(&doc)
	if top == nil {
		return fmt.Errorf("invalid recipe: top-level must be mapping")
	}
	cases := mappingValue(top, "test-cases")
	if cases == nil || cases.Kind != yaml.MappingNode {
		return fmt.Errorf("invalid recipe: missing required field: test-cases")
	}
	if mappingValue(cases, name) != nil {
		return fmt.Errorf("%s is already a test case! Choose a new name!", name)
	}

	recipeExe := ""
	if v := mappingValue(top, "executable"); v != nil {
		recipeExe = v.Value
	}
	c := rec
	if c.Executable == recipeExe {
		c.Executable = ""
	}
	cases.Content = append(cases.Content, scalarNode(name), recordedNode(c))
	return writeRecipe(path, top)
}

// newRecipeDoc builds a fresh recipe document around the first recorded case.
func newRecipeDoc(name string, rec Recorded) *yaml.Node {
	exe := rec.Executable
	rec.Executable = ""
	top := &yaml.Node{Kind: yaml.MappingNode}
	top.Content = append(top.Content, scalarNode("executable"), scalarFrom(exe))
	cases := &yaml.Node{Kind: yaml.MappingNode}
	cases.Content = append(cases.Content, scalarNode(name), recordedNode(rec))
	top.Content = append(top.Content, scalarNode("test-cases"), cases)
	return top
}

// recordedNode renders a recorded case with a fixed key order. Optional keys
// are omitted when empty; return-code is always written.
func recordedNode(rec Recorded) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode}
	if rec.Executable != "" {
		n.Content = append(n.Content, scalarNode("executable"), scalarFrom(rec.Executable))
	}
	n.Content = append(n.Content, scalarNode("return-code"), scalarFrom(rec.ReturnCode))
	if len(rec.Argv) > 0 {
		n.Content = append(n.Content, scalarNode("argv"), sequenceFrom(rec.Argv))
	}
	if len(rec.Stdin) > 0 {
		n.Content = append(n.Content, scalarNode("stdin"), sequenceFrom(rec.Stdin))
	}
	if rec.Stdout != "" {
		n.Content = append(n.Content, scalarNode("stdout"), scalarFrom(rec.Stdout))
	}
	if rec.Stderr != "" {
		n.Content = append(n.Content, scalarNode("stderr"), scalarFrom(rec.Stderr))
	}
	if len(rec.OFStreams) > 0 {
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, of := range rec.OFStreams {
			pair := &yaml.Node{Kind: yaml.MappingNode}
			pair.Content = append(pair.Content, scalarNode("base-file"), scalarFrom(of.BaseFile))
			pair.Content = append(pair.Content, scalarNode("test-file"), scalarFrom(of.TestFile))
			seq.Content = append(seq.Content, pair)
		}
		n.Content = append(n.Content, scalarNode("ofstreams"), seq)
	}
	return n
}

func writeRecipe(path string, top *yaml.Node) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(top); err != nil {
		_ = enc.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	out := bytes.TrimRight(buf.Bytes(), "\n")
	out = append(out, '\n')
	return os.WriteFile(path, out, 0o644)
}

func scalarNode(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}

func scalarFrom(v any) *yaml.Node {
	n := &yaml.Node{}
	_ = n.Encode(v)
	if s, ok := v.(string); ok && strings.Contains(s, "\n") {
		n.Style = yaml.LiteralStyle
	}
	return n
}

func sequenceFrom(items []string) *yaml.Node {
	n := &yaml.Node{Kind: yaml.SequenceNode}
	for _, it := range items {
		n.Content = append(n.Content, scalarFrom(it))
	}
	return n
}
