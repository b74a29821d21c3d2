package jsast

import "strings"

// Inspect traverses the tree rooted at root depth-first in source order. fn is
// called for every node with the chain of its ancestors, outermost first. The
// ancestors slice is reused between calls and must not be retained. If fn
// returns false, the children of n are skipped.
func Inspect(root *Node, fn func(n *Node, ancestors []*Node) bool) {
	if root == nil {
		return
	}
	ancestors := make([]*Node, 0, 32)
	var walk func(n *Node)
	walk = func(n *Node) {
		if !fn(n, ancestors) {
			return
		}
		ancestors = append(ancestors, n)
		for _, ch := range n.Children {
			walk(ch)
		}
		ancestors = ancestors[:len(ancestors)-1]
	}
	walk(root)
}

// Calls returns every call expression under root in source order.
func Calls(root *Node) []*Node {
	var out []*Node
	Inspect(root, func(n *Node, _ []*Node) bool {
		if n.Kind == KindCall {
			out = append(out, n)
		}
		return true
	})
	return out
}

// Canonical renders n as a deterministic structural form that ignores
// whitespace, comments and parentheses. Two expressions with equal canonical
// forms have the same syntax tree.
func Canonical(n *Node) string {
	var b strings.Builder
	writeCanonical(&b, n)
	return b.String()
}

func writeCanonical(b *strings.Builder, n *Node) {
	if n == nil {
		b.WriteString("nil")
		return
	}
	b.WriteString(n.Type)
	switch n.Kind {
	case KindIdentifier:
		b.WriteByte(':')
		b.WriteString(n.Name)
		return
	case KindString:
		b.WriteByte(':')
		b.WriteString(quoteCanonical(n.Value))
		return
	}
	if n.Tokens != "" {
		b.WriteByte('[')
		b.WriteString(n.Tokens)
		b.WriteByte(']')
	}
	if len(n.Children) == 0 {
		if n.Raw != "" {
			b.WriteByte(':')
			b.WriteString(n.Raw)
		}
		return
	}
	b.WriteByte('(')
	for i, ch := range n.Children {
		if i > 0 {
			b.WriteByte(',')
		}
		writeCanonical(b, ch)
	}
	b.WriteByte(')')
}

func quoteCanonical(s string) string {
	return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s) + `"`
}
