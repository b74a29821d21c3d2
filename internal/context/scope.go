package context

import "i18ncheck/internal/jsast"

// ScopeID indexes ScopeTree.Scopes.
type ScopeID int

const noScope ScopeID = -1

// BindingForm describes how a declaration binds a name.
type BindingForm int

const (
	// BindOther covers parameters, imports, function declarations and
	// nested destructuring.
	BindOther BindingForm = iota
	// BindPlain is `const t = init`.
	BindPlain
	// BindObjectProperty is `const { t } = init` or `const { x: t } = init`.
	BindObjectProperty
	// BindArrayHead is `const [t] = init`.
	BindArrayHead
)

// Binding is a name introduced into a scope.
type Binding struct {
	Name string
	Form BindingForm
	// Node is the identifier that introduces the name.
	Node *jsast.Node
	// Declarator is the VariableDeclarator holding the initializer, if any.
	Declarator *jsast.Node
}

// Init returns the initializer of a variable binding without TypeScript
// type assertions, or nil.
func (b *Binding) Init() *jsast.Node {
	if b == nil || b.Declarator == nil {
		return nil
	}
	return jsast.StripTypes(b.Declarator.Init)
}

type Scope struct {
	ID     ScopeID
	Parent ScopeID
	Node   *jsast.Node
	// Function scopes (and the program) receive hoisted var declarations.
	Function bool
	Bindings map[string]*Binding
}

// ScopeTree is an arena of lexical scopes built in one pass over a file.
type ScopeTree struct {
	Scopes []*Scope
	byNode map[*jsast.Node]ScopeID
}

// BuildScopes collects the lexical scopes and bindings of a program.
func BuildScopes(program *jsast.Node) *ScopeTree {
	t := &ScopeTree{byNode: make(map[*jsast.Node]ScopeID)}
	if program == nil {
		return t
	}
	root := t.push(program, noScope, true)
	b := &scopeBuilder{tree: t}
	b.declareStatements(program.Statements, root)
	b.visitChildren(program, root)
	return t
}

// Lookup finds the binding for name visible from the innermost scope among
// ancestors (outermost first), walking outward to the program scope.
func (t *ScopeTree) Lookup(name string, ancestors []*jsast.Node) *Binding {
	if len(t.Scopes) == 0 {
		return nil
	}
	from := ScopeID(0)
	for i := len(ancestors) - 1; i >= 0; i-- {
		if id, ok := t.byNode[ancestors[i]]; ok {
			from = id
			break
		}
	}
	for id := from; id != noScope; id = t.Scopes[id].Parent {
		if b, ok := t.Scopes[id].Bindings[name]; ok {
			return b
		}
	}
	return nil
}

// ScopeOf returns the scope a node opens, if any.
func (t *ScopeTree) ScopeOf(n *jsast.Node) (*Scope, bool) {
	id, ok := t.byNode[n]
	if !ok {
		return nil, false
	}
	return t.Scopes[id], true
}

func (t *ScopeTree) push(n *jsast.Node, parent ScopeID, function bool) ScopeID {
	id := ScopeID(len(t.Scopes))
	t.Scopes = append(t.Scopes, &Scope{
		ID:       id,
		Parent:   parent,
		Node:     n,
		Function: function,
		Bindings: make(map[string]*Binding),
	})
	t.byNode[n] = id
	return id
}

func (t *ScopeTree) functionScope(id ScopeID) ScopeID {
	for id != noScope && !t.Scopes[id].Function {
		id = t.Scopes[id].Parent
	}
	return id
}

type scopeBuilder struct {
	tree *ScopeTree
}

func (b *scopeBuilder) bind(scope ScopeID, binding *Binding) {
	if binding.Name == "" {
		return
	}
	// Redeclaration in the same scope: the later declaration wins.
	b.tree.Scopes[scope].Bindings[binding.Name] = binding
}

func (b *scopeBuilder) visit(n *jsast.Node, scope ScopeID) {
	switch n.Kind {
	case jsast.KindBlock:
		inner := b.tree.push(n, scope, false)
		b.declareStatements(n.Statements, inner)
		b.visitChildren(n, inner)

	case jsast.KindFunction:
		fn := b.tree.push(n, scope, true)
		for _, p := range n.Params {
			b.declarePattern(p, fn, nil, BindOther)
		}
		if body := n.Body; body != nil && body.Kind == jsast.KindBlock {
			// The body block shares the function scope.
			b.tree.byNode[body] = fn
			b.declareStatements(body.Statements, fn)
			for _, ch := range n.Children {
				if ch == body {
					b.visitChildren(body, fn)
					continue
				}
				b.visit(ch, fn)
			}
			return
		}
		b.visitChildren(n, fn)

	case jsast.KindFor:
		inner := b.tree.push(n, scope, false)
		if n.Init != nil {
			b.declareStatement(n.Init, inner)
		}
		for _, p := range n.Params {
			b.declarePattern(p, inner, nil, BindOther)
		}
		b.visitChildren(n, inner)

	case jsast.KindCatch:
		inner := b.tree.push(n, scope, false)
		for _, p := range n.Params {
			b.declarePattern(p, inner, nil, BindOther)
		}
		b.visitChildren(n, inner)

	default:
		b.visitChildren(n, scope)
	}
}

func (b *scopeBuilder) visitChildren(n *jsast.Node, scope ScopeID) {
	for _, ch := range n.Children {
		b.visit(ch, scope)
	}
}

func (b *scopeBuilder) declareStatements(stmts []*jsast.Node, scope ScopeID) {
	for _, stmt := range stmts {
		b.declareStatement(stmt, scope)
	}
}

func (b *scopeBuilder) declareStatement(stmt *jsast.Node, scope ScopeID) {
	switch stmt.Kind {
	case jsast.KindVariableDeclaration:
		target := scope
		if stmt.DeclKind == "var" {
			target = b.tree.functionScope(scope)
		}
		for _, decl := range stmt.Declarations {
			b.declarePattern(decl.ID, target, decl, BindPlain)
		}

	case jsast.KindExport:
		if stmt.Body != nil {
			b.declareStatement(stmt.Body, scope)
		}

	case jsast.KindFunction:
		if stmt.ID != nil {
			b.bind(scope, &Binding{Name: stmt.ID.Name, Form: BindOther, Node: stmt.ID})
		}

	case jsast.KindImport:
		for _, local := range stmt.Specifiers {
			b.bind(scope, &Binding{Name: local.Name, Form: BindOther, Node: local})
		}
	}
}

// declarePattern binds every identifier in a declaration target. form is
// the form the pattern has at this nesting level.
func (b *scopeBuilder) declarePattern(p *jsast.Node, scope ScopeID, decl *jsast.Node, form BindingForm) {
	if p == nil {
		return
	}
	switch p.Kind {
	case jsast.KindIdentifier:
		b.bind(scope, &Binding{Name: p.Name, Form: form, Node: p, Declarator: decl})

	case jsast.KindObjectPattern:
		next := BindOther
		if form == BindPlain {
			next = BindObjectProperty
		}
		for _, prop := range p.Properties {
			if prop.Kind == jsast.KindRest {
				b.declarePattern(prop.Argument, scope, decl, BindOther)
				continue
			}
			b.declarePattern(prop.Val, scope, decl, next)
		}

	case jsast.KindArrayPattern:
		for i, el := range p.Elements {
			next := BindOther
			if i == 0 && form == BindPlain {
				next = BindArrayHead
			}
			b.declarePattern(el, scope, decl, next)
		}

	case jsast.KindAssignmentPattern:
		b.declarePattern(p.ID, scope, decl, form)

	case jsast.KindRest:
		b.declarePattern(p.Argument, scope, decl, BindOther)

	default:
		// TypeScript parameters wrap the pattern.
		if p.ID != nil {
			b.declarePattern(p.ID, scope, decl, form)
		}
	}
}
