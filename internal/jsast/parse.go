package jsast

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

var ErrUnsupportedLanguage = errors.New("unsupported source language")

var languageByExt = map[string]func() *sitter.Language{
	".js":  javascript.GetLanguage,
	".jsx": javascript.GetLanguage,
	".mjs": javascript.GetLanguage,
	".cjs": javascript.GetLanguage,
	".ts":  typescript.GetLanguage,
	".mts": typescript.GetLanguage,
	".cts": typescript.GetLanguage,
	".tsx": tsx.GetLanguage,
}

// SupportedExtension reports whether files with the given name can be parsed.
func SupportedExtension(filename string) bool {
	_, ok := languageByExt[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// Parse parses JavaScript or TypeScript source, choosing the grammar from the
// file extension. Syntax errors do not fail the parse; they set HasErrors.
func Parse(ctx context.Context, filename string, src []byte) (*File, error) {
	lang, ok := languageByExt[strings.ToLower(filepath.Ext(filename))]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, filename)
	}

	parser := sitter.NewParser()
	parser.SetLanguage(lang())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}

	root := tree.RootNode()
	c := &converter{src: src}

	return &File{
		Name:      filename,
		Source:    src,
		Program:   c.convert(root),
		HasErrors: root.HasError(),
	}, nil
}

// child pairs a converted node with the range and type of the grammar node it
// came from, which differ from the converted node when parentheses were
// unwrapped.
type child struct {
	start, end uint32
	typ        string
	node       *Node
}

type children []child

func (cs children) nodes() []*Node {
	out := make([]*Node, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.node)
	}
	return out
}

func (cs children) ofKind(kinds ...Kind) []*Node {
	var out []*Node
	for _, c := range cs {
		for _, k := range kinds {
			if c.node.Kind == k {
				out = append(out, c.node)
				break
			}
		}
	}
	return out
}

// field returns the converted child stored under the grammar field name.
func (cs children) field(n *sitter.Node, name string) *Node {
	f := n.ChildByFieldName(name)
	if f == nil {
		return nil
	}
	for _, c := range cs {
		if c.start == f.StartByte() && c.end == f.EndByte() && c.typ == f.Type() {
			return c.node
		}
	}
	return nil
}

type converter struct {
	src []byte
}

func (c *converter) children(n *sitter.Node) children {
	count := int(n.NamedChildCount())
	out := make(children, 0, count)
	for i := 0; i < count; i++ {
		ch := n.NamedChild(i)
		if ch == nil || ch.Type() == "comment" {
			continue
		}
		out = append(out, child{
			start: ch.StartByte(),
			end:   ch.EndByte(),
			typ:   ch.Type(),
			node:  c.convert(ch),
		})
	}
	return out
}

func (c *converter) convert(n *sitter.Node) *Node {
	if n.Type() == "parenthesized_expression" && n.NamedChildCount() > 0 {
		for i := 0; i < int(n.NamedChildCount()); i++ {
			if inner := n.NamedChild(i); inner.Type() != "comment" {
				return c.convert(inner)
			}
		}
	}

	point := n.StartPoint()
	node := &Node{
		Type:   n.Type(),
		Start:  int(n.StartByte()),
		End:    int(n.EndByte()),
		Line:   int(point.Row) + 1,
		Column: int(point.Column) + 1,
	}

	kids := c.children(n)
	node.Children = kids.nodes()
	if n.ChildCount() == 0 {
		node.Raw = n.Content(c.src)
	} else {
		node.Tokens = anonymousTokens(n)
	}

	switch n.Type() {
	case "program":
		node.Kind = KindProgram
		node.Statements = node.Children

	case "statement_block":
		node.Kind = KindBlock
		node.Statements = node.Children

	case "switch_body":
		// All cases share one block scope.
		node.Kind = KindBlock
		for _, clause := range node.Children {
			node.Statements = append(node.Statements, clause.Children...)
		}

	case "lexical_declaration", "variable_declaration":
		node.Kind = KindVariableDeclaration
		node.DeclKind = "var"
		if n.Type() == "lexical_declaration" && n.ChildCount() > 0 {
			node.DeclKind = n.Child(0).Type()
		}
		node.Declarations = kids.ofKind(KindVariableDeclarator)

	case "variable_declarator":
		node.Kind = KindVariableDeclarator
		node.ID = kids.field(n, "name")
		node.Init = kids.field(n, "value")

	case "export_statement":
		node.Kind = KindExport
		node.Body = kids.field(n, "declaration")

	case "import_statement":
		node.Kind = KindImport
		node.Specifiers = importLocals(node)

	case "import_specifier", "export_specifier":
		node.ID = kids.field(n, "alias")
		if node.ID == nil {
			node.ID = kids.field(n, "name")
		}

	case "function_declaration", "generator_function_declaration":
		node.Kind = KindFunction
		node.ID = kids.field(n, "name")
		node.Params = params(kids.field(n, "parameters"))
		node.Body = kids.field(n, "body")

	case "function", "function_expression", "generator_function", "method_definition":
		node.Kind = KindFunction
		node.Params = params(kids.field(n, "parameters"))
		node.Body = kids.field(n, "body")

	case "arrow_function":
		node.Kind = KindFunction
		if p := kids.field(n, "parameter"); p != nil {
			node.Params = []*Node{p}
		} else {
			node.Params = params(kids.field(n, "parameters"))
		}
		node.Body = kids.field(n, "body")

	case "required_parameter", "optional_parameter":
		node.ID = kids.field(n, "pattern")

	case "call_expression":
		args := n.ChildByFieldName("arguments")
		if args == nil || args.Type() != "arguments" {
			// Tagged template.
			break
		}
		node.Kind = KindCall
		node.Callee = kids.field(n, "function")
		if a := kids.field(n, "arguments"); a != nil {
			node.Arguments = a.Children
		}

	case "await_expression":
		node.Kind = KindAwait
		if len(node.Children) > 0 {
			node.Argument = node.Children[0]
		}

	case "member_expression":
		node.Kind = KindMember
		node.Object = kids.field(n, "object")
		node.Property = kids.field(n, "property")

	case "subscript_expression":
		node.Kind = KindMember
		node.Computed = true
		node.Object = kids.field(n, "object")
		node.Property = kids.field(n, "index")

	case "ternary_expression":
		node.Kind = KindConditional
		node.Test = kids.field(n, "condition")
		node.Consequent = kids.field(n, "consequence")
		node.Alternate = kids.field(n, "alternative")

	case "identifier", "property_identifier", "shorthand_property_identifier",
		"shorthand_property_identifier_pattern", "private_property_identifier":
		node.Kind = KindIdentifier
		node.Name = n.Content(c.src)

	case "string":
		node.Kind = KindString
		node.Value = c.stringValue(n)

	case "template_string":
		node.Kind = KindTemplate

	case "object":
		node.Kind = KindObject
		node.Properties = properties(kids)

	case "object_pattern":
		node.Kind = KindObjectPattern
		node.Properties = properties(kids)

	case "pair", "pair_pattern":
		node.Kind = KindProperty
		node.Key = kids.field(n, "key")
		node.Val = kids.field(n, "value")
		if node.Key != nil && node.Key.Type == "computed_property_name" {
			node.Computed = true
		}

	case "object_assignment_pattern":
		node.Kind = KindProperty
		node.Key = kids.field(n, "left")
		node.Val = node.Key

	case "array":
		node.Kind = KindArray
		node.Elements = node.Children

	case "array_pattern":
		node.Kind = KindArrayPattern
		node.Elements = node.Children

	case "assignment_pattern":
		node.Kind = KindAssignmentPattern
		node.ID = kids.field(n, "left")

	case "rest_pattern", "spread_element":
		node.Kind = KindRest
		if len(node.Children) > 0 {
			node.Argument = node.Children[0]
		}

	case "for_statement":
		node.Kind = KindFor
		node.Init = kids.field(n, "initializer")
		node.Body = kids.field(n, "body")

	case "for_in_statement":
		node.Kind = KindFor
		if n.ChildByFieldName("kind") != nil {
			if left := kids.field(n, "left"); left != nil {
				node.Params = []*Node{left}
			}
		}
		node.Body = kids.field(n, "body")

	case "as_expression", "satisfies_expression", "non_null_expression":
		node.Kind = KindTypeAssertion
		if len(node.Children) > 0 {
			node.Argument = node.Children[0]
		}

	case "type_assertion":
		node.Kind = KindTypeAssertion
		if len(node.Children) > 0 {
			node.Argument = node.Children[len(node.Children)-1]
		}

	case "catch_clause":
		node.Kind = KindCatch
		if p := kids.field(n, "parameter"); p != nil {
			node.Params = []*Node{p}
		}
		node.Body = kids.field(n, "body")
	}

	return node
}

func anonymousTokens(n *sitter.Node) string {
	var toks []string
	for i := 0; i < int(n.ChildCount()); i++ {
		if ch := n.Child(i); ch != nil && !ch.IsNamed() {
			toks = append(toks, ch.Type())
		}
	}
	return strings.Join(toks, " ")
}

// properties lists the entries of an object literal or object pattern.
// Shorthand entries become a Property whose key and value are the same
// identifier.
func properties(kids children) []*Node {
	out := make([]*Node, 0, len(kids))
	for _, k := range kids {
		switch k.node.Kind {
		case KindProperty, KindRest:
			out = append(out, k.node)
		case KindIdentifier:
			out = append(out, &Node{
				Kind:   KindProperty,
				Type:   k.node.Type,
				Start:  k.node.Start,
				End:    k.node.End,
				Line:   k.node.Line,
				Column: k.node.Column,
				Key:    k.node,
				Val:    k.node,
			})
		}
	}
	return out
}

func params(list *Node) []*Node {
	if list == nil {
		return nil
	}
	return list.Children
}

// importLocals collects the local names an import statement binds.
func importLocals(stmt *Node) []*Node {
	var out []*Node
	var visit func(n *Node)
	visit = func(n *Node) {
		switch n.Type {
		case "import_clause", "namespace_import":
			for _, ch := range n.Children {
				if ch.Kind == KindIdentifier {
					out = append(out, ch)
					continue
				}
				visit(ch)
			}
		case "named_imports":
			for _, ch := range n.Children {
				visit(ch)
			}
		case "import_specifier":
			if n.ID != nil {
				out = append(out, n.ID)
			}
		}
	}
	for _, ch := range stmt.Children {
		visit(ch)
	}
	return out
}

func (c *converter) stringValue(n *sitter.Node) string {
	var b strings.Builder
	for i := 0; i < int(n.NamedChildCount()); i++ {
		part := n.NamedChild(i)
		switch part.Type() {
		case "string_fragment":
			b.WriteString(part.Content(c.src))
		case "escape_sequence":
			b.WriteString(unescape(part.Content(c.src)))
		default:
			b.WriteString(part.Content(c.src))
		}
	}
	return b.String()
}

func unescape(seq string) string {
	switch {
	case seq == `\'`:
		return "'"
	case seq == `\0`:
		return "\x00"
	case strings.HasPrefix(seq, "\\\n"), strings.HasPrefix(seq, "\\\r"):
		return ""
	case strings.HasPrefix(seq, `\u{`) && strings.HasSuffix(seq, "}"):
		if r, err := strconv.ParseUint(seq[3:len(seq)-1], 16, 32); err == nil {
			return string(rune(r))
		}
	}
	if s, err := strconv.Unquote(`"` + seq + `"`); err == nil {
		return s
	}
	return strings.TrimPrefix(seq, `\`)
}
