package detectors

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"i18ncheck/internal/config"
	"i18ncheck/internal/jsast"
)

func TestGuardPair(t *testing.T) {
	tests := []struct {
		checked, used string
		match         bool
	}{
		{"item.labelKey", "item.labelKey", true},
		{"  item.labelKey  ", "item.labelKey", true},
		{"a +\n\t b", "a + b", true},
		{"item.labelKey", "item.otherKey", false},
		{"a.b", `a["b"]`, false},
		{"a+b", "a + b", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.match, NewGuardPair(tt.checked, tt.used).Match(), "%q vs %q", tt.checked, tt.used)
	}
}

func TestGuardMatcherIsGuarded(t *testing.T) {
	src := `
const a = t.has(key) ? t(key) : key;
const b = t.has(key) ? key : t(key);
const c = t(key);
const d = u.has(key) ? t(key) : key;
`
	file, err := jsast.Parse(context.Background(), "a.js", []byte(src))
	require.NoError(t, err)

	var results []bool
	g := GuardMatcher{Comparison: config.GuardCompareText}
	jsast.Inspect(file.Program, func(n *jsast.Node, ancestors []*jsast.Node) bool {
		if n.Kind == jsast.KindCall && n.Callee.Is("t") {
			results = append(results, g.IsGuarded(file, n, ancestors))
		}
		return true
	})

	assert.Equal(t, []bool{true, false, false, false}, results)
}

func TestGuardMatcherRejectsMissingArgument(t *testing.T) {
	file, err := jsast.Parse(context.Background(), "a.js", []byte(`const a = t.has() ? t() : x;`))
	require.NoError(t, err)

	g := GuardMatcher{}
	var guarded []bool
	jsast.Inspect(file.Program, func(n *jsast.Node, ancestors []*jsast.Node) bool {
		if n.Kind == jsast.KindCall && n.Callee.Is("t") {
			guarded = append(guarded, g.IsGuarded(file, n, ancestors))
		}
		return true
	})
	assert.Equal(t, []bool{false}, guarded)
	assert.False(t, g.IsGuarded(file, nil, nil))
}
