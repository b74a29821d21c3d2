package context

import "i18ncheck/internal/jsast"

// CallSite is what the surrounding code tells about a translation call.
// Empty fields were not determined.
type CallSite struct {
	Idiom     Idiom
	Namespace string
	Prefix    string
	// Binding is the declaration the callee resolved to, if any.
	Binding *Binding
}

// AnalysisContext is the per-file state shared by the rules: the parsed
// file and its scope tree. It is built once before the file's call
// expressions are visited and is read-only afterwards.
type AnalysisContext struct {
	File      *jsast.File
	Scopes    *ScopeTree
	Producers Producers
}

func NewAnalysisContext(file *jsast.File, producers Producers) *AnalysisContext {
	return &AnalysisContext{
		File:      file,
		Scopes:    BuildScopes(file.Program),
		Producers: producers,
	}
}

// CallSite resolves the callee of call through the enclosing scopes and
// extracts namespace and key prefix from the producer idiom that bound it.
// ancestors lists the call's ancestors, outermost first.
func (c *AnalysisContext) CallSite(call *jsast.Node, ancestors []*jsast.Node) CallSite {
	if call == nil || call.Callee == nil || call.Callee.Kind != jsast.KindIdentifier {
		return CallSite{}
	}

	binding := c.Scopes.Lookup(call.Callee.Name, ancestors)
	if binding == nil {
		return CallSite{}
	}

	for _, idiom := range idioms {
		if site, ok := idiom.extract(binding, c.Producers); ok {
			site.Binding = binding
			return site
		}
	}
	return CallSite{Binding: binding}
}
