package detectors

import "strings"

// NamespaceSeparator splits an explicit namespace from a key ("common:title").
const NamespaceSeparator = ":"

// EffectiveReference is the namespace and key a translation call resolves to.
type EffectiveReference struct {
	Namespace string
	Key       string
}

// Normalize joins prefix and raw key, then picks the namespace. A namespace
// written into the key always wins over the inferred one, which wins over
// the default. The split happens after the prefix is joined, so a prefix may
// itself carry the namespace.
func Normalize(rawKey, prefix, inferredNamespace, defaultNamespace string) EffectiveReference {
	key := rawKey
	if prefix != "" {
		key = prefix + "." + rawKey
	}

	if ns, rest, ok := strings.Cut(key, NamespaceSeparator); ok {
		return EffectiveReference{Namespace: ns, Key: rest}
	}

	ns := inferredNamespace
	if ns == "" {
		ns = defaultNamespace
	}
	return EffectiveReference{Namespace: ns, Key: key}
}
