package detectors

import (
	"slices"

	actx "i18ncheck/internal/context"
	"i18ncheck/internal/jsast"
	"i18ncheck/internal/resources"
)

// Diagnostic is a finding reported by a detector against a node.
type Diagnostic struct {
	Node      *jsast.Node
	Message   string
	Namespace string
	Key       string
}

// Pass is what a detector sees while one file is visited. Context and Bundle
// are shared read-only state; Report is the diagnostic sink.
type Pass struct {
	Context *actx.AnalysisContext
	Bundle  *resources.Bundle
	Report  func(Diagnostic)
}

// translationCall reports whether call invokes one of the translation
// functions through a bare identifier (t("key"), not i18n.t("key")).
func translationCall(call *jsast.Node, functions []string) bool {
	return call != nil && call.Kind == jsast.KindCall &&
		call.Callee != nil && call.Callee.Kind == jsast.KindIdentifier &&
		slices.Contains(functions, call.Callee.Name)
}
