// Package outline builds a structural outline of Java source with
// tree-sitter: the package, the declared types and their methods, each with
// a line span.
package outline

import (
	"fmt"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	java "github.com/tree-sitter/tree-sitter-java/bindings/go"
)

// Type is a declared class, interface, enum, record or annotation type.
type Type struct {
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
}

// Method is a method or constructor declaration.
type Method struct {
	Name      string `json:"name"`
	Owner     string `json:"owner"`
	Kind      string `json:"kind"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
	Signature string `json:"signature"`
}

// Outline is the structure of one compilation unit.
type Outline struct {
	Package      string   `json:"package,omitempty"`
	ImportsCount int      `json:"imports_count"`
	Types        []Type   `json:"types"`
	Methods      []Method `json:"methods"`
	// HasErrors is set when the parser had to recover from syntax errors;
	// the outline then covers only what could be parsed.
	HasErrors bool `json:"has_errors,omitempty"`
}

var typeKinds = map[string]string{
	"class_declaration":           "class",
	"interface_declaration":       "interface",
	"enum_declaration":            "enum",
	"record_declaration":          "record",
	"annotation_type_declaration": "annotation",
}

var methodKinds = map[string]string{
	"method_declaration":      "method",
	"constructor_declaration": "constructor",
}

// Parse outlines Java source.
func Parse(source []byte) (*Outline, error) {
	if len(source) == 0 {
		return &Outline{Types: []Type{}, Methods: []Method{}}, nil
	}

	parser := sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(sitter.NewLanguage(java.Language())); err != nil {
		return nil, fmt.Errorf("failed to load java grammar: %w", err)
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse java source")
	}
	defer tree.Close()

	root := tree.RootNode()
	out := &Outline{
		Types:     []Type{},
		Methods:   []Method{},
		HasErrors: root.HasError(),
	}

	for i := uint(0); i < root.ChildCount(); i++ {
		child := root.Child(i)
		switch child.Kind() {
		case "package_declaration":
			out.Package = packageName(child, source)
		case "import_declaration":
			out.ImportsCount++
		}
	}

	walk(root, source, "", out)
	return out, nil
}

// walk visits declarations depth-first. owner is the dotted name of the
// innermost enclosing type.
func walk(n *sitter.Node, source []byte, owner string, out *Outline) {
	if n == nil {
		return
	}

	if kind, ok := typeKinds[n.Kind()]; ok {
		name := nodeText(n.ChildByFieldName("name"), source)
		if owner != "" {
			name = owner + "." + name
		}
		out.Types = append(out.Types, Type{
			Name:      name,
			Kind:      kind,
			StartLine: startLine(n),
			EndLine:   endLine(n),
		})
		owner = name
	}

	if kind, ok := methodKinds[n.Kind()]; ok {
		out.Methods = append(out.Methods, Method{
			Name:      nodeText(n.ChildByFieldName("name"), source),
			Owner:     owner,
			Kind:      kind,
			StartLine: startLine(n),
			EndLine:   endLine(n),
			Signature: signature(n, source),
		})
	}

	for i := uint(0); i < n.ChildCount(); i++ {
		walk(n.Child(i), source, owner, out)
	}
}

func packageName(n *sitter.Node, source []byte) string {
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child.Kind() == "scoped_identifier" || child.Kind() == "identifier" {
			return nodeText(child, source)
		}
	}
	return ""
}

// signature is the declaration text up to the body, whitespace-collapsed.
func signature(n *sitter.Node, source []byte) string {
	end := n.EndByte()
	if body := n.ChildByFieldName("body"); body != nil {
		end = body.StartByte()
	}
	text := string(source[n.StartByte():end])
	text = strings.TrimSuffix(strings.TrimSpace(text), ";")
	return strings.Join(strings.Fields(text), " ")
}

func nodeText(n *sitter.Node, source []byte) string {
	if n == nil {
		return ""
	}
	return string(source[n.StartByte():n.EndByte()])
}

func startLine(n *sitter.Node) int { return int(n.StartPosition().Row) + 1 }
func endLine(n *sitter.Node) int   { return int(n.EndPosition().Row) + 1 }
