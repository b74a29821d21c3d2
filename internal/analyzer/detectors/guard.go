package detectors

import (
	"strings"

	"i18ncheck/internal/config"
	"i18ncheck/internal/jsast"
)

// GuardPair holds the normalized source of the expression checked by has()
// and of the expression passed to the translation call.
type GuardPair struct {
	Checked string
	Used    string
}

func NewGuardPair(checked, used string) GuardPair {
	return GuardPair{Checked: normalizeSource(checked), Used: normalizeSource(used)}
}

func (p GuardPair) Match() bool {
	return p.Checked == p.Used
}

// normalizeSource collapses whitespace runs to one space and trims the ends.
func normalizeSource(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// GuardMatcher recognizes `t.has(key) ? t(key) : fallback`. With text
// comparison, arguments match when their whitespace-normalized source is
// equal, so `a.b` and `a["b"]` differ. With structural comparison the
// syntax trees are compared instead, ignoring formatting and comments.
type GuardMatcher struct {
	Comparison string
}

// IsGuarded reports whether call sits in the consequent of a conditional
// whose test is a has() check on the same callee with the same argument.
// ancestors lists the call's ancestors, outermost first.
func (g GuardMatcher) IsGuarded(file *jsast.File, call *jsast.Node, ancestors []*jsast.Node) bool {
	if call == nil || call.Callee == nil || call.Callee.Kind != jsast.KindIdentifier {
		return false
	}
	used := call.FirstArgument()
	if used == nil {
		return false
	}

	for i, anc := range ancestors {
		if anc.Kind != jsast.KindConditional || !hasCheck(anc.Test, call.Callee.Name) {
			continue
		}

		branch := call
		if i+1 < len(ancestors) {
			branch = ancestors[i+1]
		}
		if branch != anc.Consequent {
			continue
		}

		checked := anc.Test.FirstArgument()
		if checked != nil && g.same(file, checked, used) {
			return true
		}
	}
	return false
}

func (g GuardMatcher) same(file *jsast.File, checked, used *jsast.Node) bool {
	if g.Comparison == config.GuardCompareStructural {
		return jsast.Canonical(checked) == jsast.Canonical(used)
	}
	return NewGuardPair(file.Text(checked), file.Text(used)).Match()
}

// hasCheck matches `<name>.has(...)`.
func hasCheck(test *jsast.Node, name string) bool {
	if test == nil || test.Kind != jsast.KindCall || test.Callee == nil {
		return false
	}
	callee := test.Callee
	return callee.Kind == jsast.KindMember && !callee.Computed &&
		callee.Object.Is(name) && callee.Property.Is("has")
}
