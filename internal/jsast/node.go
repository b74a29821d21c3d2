package jsast

// Kind classifies a node by the role it plays for the translation checks.
// Grammar node types with no dedicated kind are KindOther; their Type field
// still carries the grammar name.
type Kind int

const (
	KindOther Kind = iota
	KindProgram
	KindBlock
	KindFunction
	KindVariableDeclaration
	KindVariableDeclarator
	KindExport
	KindImport
	KindCall
	KindAwait
	KindMember
	KindConditional
	KindIdentifier
	KindString
	KindTemplate
	KindObject
	KindArray
	KindProperty
	KindObjectPattern
	KindArrayPattern
	KindAssignmentPattern
	KindRest
	KindFor
	KindCatch
	KindTypeAssertion
)

func (k Kind) String() string {
	switch k {
	case KindProgram:
		return "Program"
	case KindBlock:
		return "BlockStatement"
	case KindFunction:
		return "Function"
	case KindVariableDeclaration:
		return "VariableDeclaration"
	case KindVariableDeclarator:
		return "VariableDeclarator"
	case KindExport:
		return "ExportDeclaration"
	case KindImport:
		return "ImportDeclaration"
	case KindCall:
		return "CallExpression"
	case KindAwait:
		return "AwaitExpression"
	case KindMember:
		return "MemberExpression"
	case KindConditional:
		return "ConditionalExpression"
	case KindIdentifier:
		return "Identifier"
	case KindString:
		return "Literal"
	case KindTemplate:
		return "TemplateLiteral"
	case KindObject:
		return "ObjectExpression"
	case KindArray:
		return "ArrayExpression"
	case KindProperty:
		return "Property"
	case KindObjectPattern:
		return "ObjectPattern"
	case KindArrayPattern:
		return "ArrayPattern"
	case KindAssignmentPattern:
		return "AssignmentPattern"
	case KindRest:
		return "RestElement"
	case KindFor:
		return "ForStatement"
	case KindCatch:
		return "CatchClause"
	case KindTypeAssertion:
		return "TypeAssertion"
	default:
		return "Other"
	}
}

// Node is an ESTree-shaped view of a tree-sitter syntax node. Parenthesized
// expressions are unwrapped, so a node's range never includes the parentheses
// around it. Only the fields relevant to a node's Kind are set.
type Node struct {
	Kind Kind
	Type string

	// Byte range in the source and 1-based position of the first byte.
	Start, End   int
	Line, Column int

	Name     string // Identifier
	Raw      string // source text of nodes without children
	Tokens   string // anonymous tokens such as operators, space separated
	Value    string // decoded string Literal
	DeclKind string // "const", "let" or "var" on VariableDeclaration
	Computed bool   // subscript MemberExpression, computed Property key

	Callee     *Node // CallExpression
	Object     *Node // MemberExpression
	Property   *Node // MemberExpression
	Test       *Node // ConditionalExpression
	Consequent *Node // ConditionalExpression
	Alternate  *Node // ConditionalExpression
	Argument   *Node // AwaitExpression, RestElement, TypeAssertion
	ID         *Node // VariableDeclarator, named Function, AssignmentPattern, parameters
	Init       *Node // VariableDeclarator, ForStatement head declaration
	Key        *Node // Property
	Val        *Node // Property
	Body       *Node // Function, ForStatement, CatchClause, ExportDeclaration

	Arguments    []*Node // CallExpression
	Params       []*Node // Function, CatchClause, ForStatement (for-in/of bindings)
	Declarations []*Node // VariableDeclaration
	Properties   []*Node // ObjectExpression, ObjectPattern
	Elements     []*Node // ArrayExpression, ArrayPattern
	Statements   []*Node // Program, BlockStatement, switch body
	Specifiers   []*Node // ImportDeclaration local names

	// Children holds every named child in source order and drives traversal.
	Children []*Node
}

// Is reports whether n is an identifier with the given name.
func (n *Node) Is(name string) bool {
	return n != nil && n.Kind == KindIdentifier && n.Name == name
}

// StripTypes returns the expression under any TypeScript `as`, `satisfies`,
// `<T>` or `!` wrappers.
func StripTypes(n *Node) *Node {
	for n != nil && n.Kind == KindTypeAssertion {
		n = n.Argument
	}
	return n
}

// FirstArgument returns the first call argument, or nil.
func (n *Node) FirstArgument() *Node {
	if n == nil || len(n.Arguments) == 0 {
		return nil
	}
	return n.Arguments[0]
}

// Contains reports whether other lies within n's source range.
func (n *Node) Contains(other *Node) bool {
	if n == nil || other == nil {
		return false
	}
	return n.Start <= other.Start && other.End <= n.End
}

// File is a parsed source file.
type File struct {
	Name    string
	Source  []byte
	Program *Node

	// HasErrors is set when the parser had to recover from syntax errors.
	HasErrors bool
}

// Text returns the source text covered by n.
func (f *File) Text(n *Node) string {
	if n == nil || n.Start < 0 || n.End > len(f.Source) || n.Start > n.End {
		return ""
	}
	return string(f.Source[n.Start:n.End])
}
