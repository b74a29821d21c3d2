package jsast

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, filename, src string) *File {
	t.Helper()
	file, err := Parse(context.Background(), filename, []byte(src))
	require.NoError(t, err)
	require.NotNil(t, file.Program)
	return file
}

func TestParseUnsupportedExtension(t *testing.T) {
	_, err := Parse(context.Background(), "main.go", []byte("package main"))
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)
}

func TestSupportedExtension(t *testing.T) {
	for _, name := range []string{"a.js", "a.jsx", "a.mjs", "a.cjs", "a.ts", "a.tsx", "A.TSX", "a.mts"} {
		assert.True(t, SupportedExtension(name), name)
	}
	for _, name := range []string{"a.go", "a.json", "Makefile"} {
		assert.False(t, SupportedExtension(name), name)
	}
}

func TestParseCallExpression(t *testing.T) {
	file := mustParse(t, "a.js", `t('records.contracts', { count: 2 })`)
	calls := Calls(file.Program)
	require.Len(t, calls, 1)

	call := calls[0]
	assert.Equal(t, KindCall, call.Kind)
	assert.True(t, call.Callee.Is("t"))
	require.Len(t, call.Arguments, 2)
	assert.Equal(t, KindString, call.Arguments[0].Kind)
	assert.Equal(t, "records.contracts", call.Arguments[0].Value)
	assert.Equal(t, KindObject, call.Arguments[1].Kind)
	assert.Equal(t, 1, call.Line)
	assert.Equal(t, 1, call.Column)
	assert.Equal(t, `t('records.contracts', { count: 2 })`, file.Text(call))
}

func TestParseArgumentKinds(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind Kind
	}{
		{"double quoted", `t("a")`, KindString},
		{"single quoted", `t('a')`, KindString},
		{"template", "t(`a.${b}`)", KindTemplate},
		{"identifier", `t(someVariable)`, KindIdentifier},
		{"member", `t(item.labelKey)`, KindMember},
		{"computed member", `t(item["labelKey"])`, KindMember},
		{"call", `t(getKey())`, KindCall},
		{"parenthesized string", `t(("a"))`, KindString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := mustParse(t, "a.js", tt.src)
			calls := Calls(file.Program)
			require.NotEmpty(t, calls)
			arg := calls[0].FirstArgument()
			require.NotNil(t, arg)
			assert.Equal(t, tt.kind, arg.Kind)
		})
	}
}

func TestParseStringEscapes(t *testing.T) {
	file := mustParse(t, "a.js", `t("a\"b"); t('it\'s'); t("A")`)
	calls := Calls(file.Program)
	require.Len(t, calls, 3)
	assert.Equal(t, `a"b`, calls[0].FirstArgument().Value)
	assert.Equal(t, `it's`, calls[1].FirstArgument().Value)
	assert.Equal(t, `A`, calls[2].FirstArgument().Value)
}

func TestParseMissingArgument(t *testing.T) {
	file := mustParse(t, "a.js", `t()`)
	calls := Calls(file.Program)
	require.Len(t, calls, 1)
	assert.Nil(t, calls[0].FirstArgument())
}

func TestParseConditional(t *testing.T) {
	file := mustParse(t, "a.js", `const label = t.has(key) ? t(key) : key;`)

	var cond *Node
	Inspect(file.Program, func(n *Node, _ []*Node) bool {
		if n.Kind == KindConditional {
			cond = n
		}
		return true
	})
	require.NotNil(t, cond)

	require.Equal(t, KindCall, cond.Test.Kind)
	assert.Equal(t, KindMember, cond.Test.Callee.Kind)
	assert.True(t, cond.Test.Callee.Object.Is("t"))
	assert.True(t, cond.Test.Callee.Property.Is("has"))

	require.Equal(t, KindCall, cond.Consequent.Kind)
	assert.True(t, cond.Consequent.Callee.Is("t"))
	assert.True(t, cond.Alternate.Is("key"))
}

func TestParseDeclarations(t *testing.T) {
	src := `
const { t } = useTranslation("common", { keyPrefix: "nav" });
let [u] = useTranslation();
var v = await getTranslations("p");
`
	file := mustParse(t, "a.mjs", src)
	require.Len(t, file.Program.Statements, 3)

	first := file.Program.Statements[0]
	assert.Equal(t, KindVariableDeclaration, first.Kind)
	assert.Equal(t, "const", first.DeclKind)
	require.Len(t, first.Declarations, 1)
	decl := first.Declarations[0]
	assert.Equal(t, KindObjectPattern, decl.ID.Kind)
	require.Len(t, decl.ID.Properties, 1)
	assert.True(t, decl.ID.Properties[0].Val.Is("t"))
	require.Equal(t, KindCall, decl.Init.Kind)
	assert.True(t, decl.Init.Callee.Is("useTranslation"))

	second := file.Program.Statements[1]
	assert.Equal(t, "let", second.DeclKind)
	assert.Equal(t, KindArrayPattern, second.Declarations[0].ID.Kind)

	third := file.Program.Statements[2]
	assert.Equal(t, "var", third.DeclKind)
	init := third.Declarations[0].Init
	require.Equal(t, KindAwait, init.Kind)
	assert.Equal(t, KindCall, init.Argument.Kind)
}

func TestParseTypeScriptAndJSX(t *testing.T) {
	ts := mustParse(t, "a.ts", `function f(key: string): string { return t(key as string) }`)
	assert.False(t, ts.HasErrors)
	assert.Len(t, Calls(ts.Program), 1)

	tsx := mustParse(t, "a.tsx", `export const A = () => <p title={t("x")}>{t("y")}</p>;`)
	assert.False(t, tsx.HasErrors)
	calls := Calls(tsx.Program)
	require.Len(t, calls, 2)
	assert.Equal(t, "x", calls[0].FirstArgument().Value)
	assert.Equal(t, "y", calls[1].FirstArgument().Value)
}

func TestParseTypeAssertions(t *testing.T) {
	file := mustParse(t, "a.ts", `const a = t(key as string);
const b = getTranslations("p")!;
const c = getTranslations("p") satisfies Translator;`)
	assert.False(t, file.HasErrors)
	require.Len(t, file.Program.Statements, 3)

	arg := file.Program.Statements[0].Declarations[0].Init.FirstArgument()
	assert.Equal(t, KindTypeAssertion, arg.Kind)
	assert.True(t, StripTypes(arg).Is("key"))

	for _, stmt := range file.Program.Statements[1:] {
		init := stmt.Declarations[0].Init
		assert.Equal(t, KindTypeAssertion, init.Kind)
		assert.Equal(t, KindCall, StripTypes(init).Kind)
	}
	assert.Nil(t, StripTypes(nil))
}

func TestParseSwitchBody(t *testing.T) {
	file := mustParse(t, "a.js", `switch (x) { case 1: const a = 1; break; default: let b = 2; }`)
	var body *Node
	Inspect(file.Program, func(n *Node, _ []*Node) bool {
		if n.Type == "switch_body" {
			body = n
		}
		return true
	})
	require.NotNil(t, body)
	assert.Equal(t, KindBlock, body.Kind)

	var decls []string
	for _, stmt := range body.Statements {
		if stmt.Kind == KindVariableDeclaration {
			decls = append(decls, stmt.DeclKind)
		}
	}
	assert.Equal(t, []string{"const", "let"}, decls)
}

func TestParseRecoversFromSyntaxErrors(t *testing.T) {
	file := mustParse(t, "a.js", "t('ok');\nconst = ;\n")
	assert.True(t, file.HasErrors)
	assert.NotEmpty(t, Calls(file.Program))
}

func TestInspectAncestors(t *testing.T) {
	file := mustParse(t, "a.js", `function C() { return t("k"); }`)

	var chain []*Node
	Inspect(file.Program, func(n *Node, ancestors []*Node) bool {
		if n.Kind == KindCall {
			chain = append([]*Node(nil), ancestors...)
		}
		return true
	})

	require.NotEmpty(t, chain)
	assert.Equal(t, KindProgram, chain[0].Kind)
	var sawFunction bool
	for _, anc := range chain {
		if anc.Kind == KindFunction {
			sawFunction = true
		}
		assert.NotEqual(t, KindCall, anc.Kind)
	}
	assert.True(t, sawFunction)
}

func TestInspectSkipsChildren(t *testing.T) {
	file := mustParse(t, "a.js", `outer(inner())`)
	var names []string
	Inspect(file.Program, func(n *Node, _ []*Node) bool {
		if n.Kind == KindCall {
			names = append(names, n.Callee.Name)
			return false
		}
		return true
	})
	assert.Equal(t, []string{"outer"}, names)
}

func TestCanonical(t *testing.T) {
	tests := []struct {
		name  string
		a, b  string
		equal bool
	}{
		{"whitespace", `x(item.labelKey)`, "x(  item .\n labelKey )", true},
		{"comments", `x(item.labelKey)`, `x(item /* c */ .labelKey)`, true},
		{"parentheses", `x(item.labelKey)`, `x((item.labelKey))`, true},
		{"quotes", `x(a["k"])`, `x(a['k'])`, true},
		{"different property", `x(item.labelKey)`, `x(item.otherKey)`, false},
		{"dot and bracket", `x(a.b)`, `x(a["b"])`, false},
		{"different operator", `x(a + b)`, `x(a - b)`, false},
		{"different number", `x(a[0])`, `x(a[1])`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fa := mustParse(t, "a.js", tt.a)
			fb := mustParse(t, "b.js", tt.b)
			ca := Canonical(Calls(fa.Program)[0].FirstArgument())
			cb := Canonical(Calls(fb.Program)[0].FirstArgument())
			if tt.equal {
				assert.Equal(t, ca, cb)
			} else {
				assert.NotEqual(t, ca, cb)
			}
		})
	}
}

func TestNodeHelpers(t *testing.T) {
	file := mustParse(t, "a.js", `t("k")`)
	call := Calls(file.Program)[0]

	assert.True(t, file.Program.Contains(call))
	assert.False(t, call.Contains(file.Program))
	assert.False(t, (*Node)(nil).Is("t"))
	assert.Nil(t, (*Node)(nil).FirstArgument())
	assert.Equal(t, "", file.Text(nil))
	assert.Equal(t, "CallExpression", KindCall.String())
}
