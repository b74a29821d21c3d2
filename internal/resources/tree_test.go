package resources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKeyPath(t *testing.T) {
	tests := []struct {
		key  string
		want KeyPath
		ok   bool
	}{
		{"pizza", KeyPath{"pizza"}, true},
		{"records.contracts", KeyPath{"records", "contracts"}, true},
		{"a.b.c", KeyPath{"a", "b", "c"}, true},
		{"", nil, false},
		{"a..b", nil, false},
		{".a", nil, false},
		{"a.", nil, false},
	}

	for _, tt := range tests {
		path, ok := ParseKeyPath(tt.key)
		assert.Equal(t, tt.ok, ok, tt.key)
		assert.Equal(t, tt.want, path, tt.key)
		if ok {
			assert.Equal(t, tt.key, path.String())
		}
	}
}

func TestResolve(t *testing.T) {
	tree := Tree{
		"pizza": "Pizza",
		"records": map[string]any{
			"contracts": "Contracts",
		},
		"distance": map[string]any{
			"milesAway_one":   "{{count}} mile",
			"milesAway_other": "{{count}} miles",
		},
		"apples_other": "apples",
		"apples_zero":  "no apples",
		"group_one": map[string]any{
			"inner": "x",
		},
		"steps":    []any{"first", map[string]any{"title": "second"}},
		"empty":    nil,
		"flat.key": "flat",
	}

	tests := []struct {
		name  string
		key   string
		want  any
		found bool
	}{
		{"exact leaf", "pizza", "Pizza", true},
		{"nested leaf", "records.contracts", "Contracts", true},
		{"subtree counts as defined", "records", map[string]any{"contracts": "Contracts"}, true},
		{"plural fallback", "distance.milesAway", "{{count}} mile", true},
		{"suffix order", "apples", "no apples", true},
		{"missing", "thisOneIsMissing", nil, false},
		{"missing nested", "records.missing", nil, false},
		{"non-final segment has no plural fallback", "group.inner", nil, false},
		{"descend through leaf", "pizza.slice", nil, false},
		{"array index", "steps.0", "first", true},
		{"array nested", "steps.1.title", "second", true},
		{"array out of range", "steps.2", nil, false},
		{"array non numeric", "steps.first", nil, false},
		{"null value is defined", "empty", nil, true},
		{"dotted literal key is not split", "flat.key", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, ok := ParseKeyPath(tt.key)
			require.True(t, ok)
			v, found := Resolve(tree, path, DefaultPluralSuffixes)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestResolveSuffixList(t *testing.T) {
	tree := Tree{"n_few": "few", "n_many": "many"}

	v, ok := Resolve(tree, KeyPath{"n"}, []string{"many", "few"})
	require.True(t, ok)
	assert.Equal(t, "many", v)

	_, ok = Resolve(tree, KeyPath{"n"}, nil)
	assert.False(t, ok)
}

func TestResolveDoesNotMutate(t *testing.T) {
	tree := Tree{"a": map[string]any{"b_one": "x"}}
	_, ok := Resolve(tree, KeyPath{"a", "b"}, DefaultPluralSuffixes)
	require.True(t, ok)
	assert.Equal(t, Tree{"a": map[string]any{"b_one": "x"}}, tree)
}

func TestResolveEmpty(t *testing.T) {
	_, ok := Resolve(nil, KeyPath{"a"}, nil)
	assert.False(t, ok)
	_, ok = Resolve(Tree{"a": "x"}, nil, nil)
	assert.False(t, ok)
}
