package context

import (
	"slices"

	"i18ncheck/internal/jsast"
)

// Idiom identifies how a translation function was produced.
type Idiom int

const (
	IdiomUnknown Idiom = iota
	// IdiomHook: const { t } = useTranslation("ns", { keyPrefix: "p" })
	IdiomHook
	// IdiomAsyncAccessor: const t = await getTranslations("p")
	IdiomAsyncAccessor
	// IdiomSyncAccessor: const t = getTranslations("p")
	IdiomSyncAccessor
)

func (i Idiom) String() string {
	switch i {
	case IdiomHook:
		return "hook"
	case IdiomAsyncAccessor:
		return "async-accessor"
	case IdiomSyncAccessor:
		return "sync-accessor"
	default:
		return "unknown"
	}
}

// Producers names the functions that create translation functions.
type Producers struct {
	// Hooks take a namespace and an optional { keyPrefix } options object.
	Hooks []string
	// Accessors take a key prefix, directly or as { namespace }.
	Accessors []string
}

func DefaultProducers() Producers {
	return Producers{
		Hooks:     []string{"useTranslation"},
		Accessors: []string{"getTranslations", "useTranslations"},
	}
}

// producerIdiom extracts a CallSite from a binding when the binding's
// declaration has the idiom's shape.
type producerIdiom interface {
	extract(b *Binding, p Producers) (CallSite, bool)
}

// idioms are tried in order; their shapes do not overlap.
var idioms = []producerIdiom{hookWithPrefix{}, asyncAccessor{}, syncAccessor{}}

type hookWithPrefix struct{}

func (hookWithPrefix) extract(b *Binding, p Producers) (CallSite, bool) {
	switch b.Form {
	case BindPlain, BindObjectProperty, BindArrayHead:
	default:
		return CallSite{}, false
	}
	call := b.Init()
	if !isProducerCall(call, p.Hooks) {
		return CallSite{}, false
	}

	site := CallSite{Idiom: IdiomHook}
	if len(call.Arguments) > 0 {
		site.Namespace = namespaceArgument(call.Arguments[0])
	}
	if len(call.Arguments) > 1 {
		site.Prefix = stringProperty(call.Arguments[1], "keyPrefix")
	}
	return site, true
}

type asyncAccessor struct{}

func (asyncAccessor) extract(b *Binding, p Producers) (CallSite, bool) {
	init := b.Init()
	if b.Form != BindPlain || init == nil || init.Kind != jsast.KindAwait {
		return CallSite{}, false
	}
	call := jsast.StripTypes(init.Argument)
	if !isProducerCall(call, p.Accessors) {
		return CallSite{}, false
	}
	return CallSite{Idiom: IdiomAsyncAccessor, Prefix: accessorPrefix(call)}, true
}

type syncAccessor struct{}

func (syncAccessor) extract(b *Binding, p Producers) (CallSite, bool) {
	init := b.Init()
	if b.Form != BindPlain || !isProducerCall(init, p.Accessors) {
		return CallSite{}, false
	}
	return CallSite{Idiom: IdiomSyncAccessor, Prefix: accessorPrefix(init)}, true
}

func isProducerCall(n *jsast.Node, names []string) bool {
	return n != nil && n.Kind == jsast.KindCall &&
		n.Callee != nil && n.Callee.Kind == jsast.KindIdentifier &&
		slices.Contains(names, n.Callee.Name)
}

// namespaceArgument reads a namespace literal. For an array of namespaces
// the first one is the default namespace of the hook.
func namespaceArgument(arg *jsast.Node) string {
	switch arg.Kind {
	case jsast.KindString:
		return arg.Value
	case jsast.KindArray:
		if len(arg.Elements) > 0 && arg.Elements[0].Kind == jsast.KindString {
			return arg.Elements[0].Value
		}
	}
	return ""
}

func accessorPrefix(call *jsast.Node) string {
	arg := call.FirstArgument()
	if arg == nil {
		return ""
	}
	switch arg.Kind {
	case jsast.KindString:
		return arg.Value
	case jsast.KindObject:
		return stringProperty(arg, "namespace")
	}
	return ""
}

// stringProperty returns the string literal value of a non-computed property
// of an object literal.
func stringProperty(obj *jsast.Node, name string) string {
	if obj == nil || obj.Kind != jsast.KindObject {
		return ""
	}
	for _, prop := range obj.Properties {
		if prop.Kind != jsast.KindProperty || prop.Computed || prop.Key == nil || prop.Val == nil {
			continue
		}
		if propertyName(prop.Key) != name {
			continue
		}
		if prop.Val.Kind == jsast.KindString {
			return prop.Val.Value
		}
		return ""
	}
	return ""
}

func propertyName(key *jsast.Node) string {
	switch key.Kind {
	case jsast.KindIdentifier:
		return key.Name
	case jsast.KindString:
		return key.Value
	}
	return ""
}
