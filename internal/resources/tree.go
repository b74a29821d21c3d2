package resources

import (
	"strconv"
	"strings"
)

// DefaultPluralSuffixes are tried, in order, when the last segment of a key
// has no exact match. They mirror the plural forms i18next stores as
// "<key>_<suffix>" siblings.
var DefaultPluralSuffixes = []string{"zero", "singular", "one", "two", "few", "many", "other"}

// Tree is a namespace's translation resource. Values are strings, numbers,
// booleans, nil, []any or nested map[string]any.
type Tree map[string]any

// KeyPath is a dotted key split into segments.
type KeyPath []string

// ParseKeyPath splits key on ".". It reports false when any segment is empty,
// since such a key can never be found.
func ParseKeyPath(key string) (KeyPath, bool) {
	segments := strings.Split(key, ".")
	for _, s := range segments {
		if s == "" {
			return nil, false
		}
	}
	return KeyPath(segments), true
}

func (p KeyPath) String() string {
	return strings.Join(p, ".")
}

// Resolve looks up path in tree. Every segment but the last must match
// exactly. When the last segment is missing, "<segment>_<suffix>" is tried
// for each suffix in order against the same parent and the first hit wins.
// The tree is never modified.
func Resolve(tree Tree, path KeyPath, suffixes []string) (any, bool) {
	if tree == nil || len(path) == 0 {
		return nil, false
	}

	var parent any = map[string]any(tree)
	last := len(path) - 1
	for _, segment := range path[:last] {
		next, ok := child(parent, segment)
		if !ok {
			return nil, false
		}
		parent = next
	}

	final := path[last]
	if v, ok := child(parent, final); ok {
		return v, true
	}
	for _, suffix := range suffixes {
		if v, ok := child(parent, final+"_"+suffix); ok {
			return v, true
		}
	}
	return nil, false
}

// child descends one level. Arrays are indexed by decimal segments; leaves
// have no children.
func child(node any, segment string) (any, bool) {
	switch t := node.(type) {
	case map[string]any:
		v, ok := t[segment]
		return v, ok
	case Tree:
		v, ok := t[segment]
		return v, ok
	case []any:
		i, err := strconv.Atoi(segment)
		if err != nil || i < 0 || i >= len(t) {
			return nil, false
		}
		return t[i], true
	default:
		return nil, false
	}
}
