package detectors

import (
	"fmt"

	"i18ncheck/internal/config"
	"i18ncheck/internal/jsast"
	"i18ncheck/internal/models"
	"i18ncheck/internal/resources"
)

const undefinedKeyMessage = `Translation key "%s" in namespace "%s" is used here but missing in the translations file.`

// UndefinedKeyDetector reports translation calls with a literal key that
// the translation bundle does not define.
type UndefinedKeyDetector struct {
	config *config.Config
}

func NewUndefinedKeyDetector() *UndefinedKeyDetector {
	return NewUndefinedKeyDetectorWithConfig(config.DefaultConfig())
}

func NewUndefinedKeyDetectorWithConfig(cfg *config.Config) *UndefinedKeyDetector {
	return &UndefinedKeyDetector{config: cfg}
}

func (d *UndefinedKeyDetector) SetConfig(cfg *config.Config) {
	d.config = cfg
}

func (d *UndefinedKeyDetector) Name() string {
	return "Undefined Translation Key Detector"
}

func (d *UndefinedKeyDetector) Type() models.IssueType {
	return models.IssueUndefinedKey
}

func (d *UndefinedKeyDetector) Severity() models.Severity {
	return models.SeverityHigh
}

func (d *UndefinedKeyDetector) CheckCall(pass *Pass, call *jsast.Node, ancestors []*jsast.Node) {
	if !translationCall(call, d.config.Translation.Functions) {
		return
	}
	arg := call.FirstArgument()
	if arg == nil || arg.Kind != jsast.KindString {
		// Non-literal keys belong to the string literal detector.
		return
	}

	site := pass.Context.CallSite(call, ancestors)
	ref := Normalize(arg.Value, site.Prefix, site.Namespace, d.config.Rules.UndefinedKeys.DefaultNamespace)

	if _, ok := d.lookup(pass.Bundle, ref); ok {
		return
	}

	pass.Report(Diagnostic{
		Node:      call,
		Message:   fmt.Sprintf(undefinedKeyMessage, ref.Key, ref.Namespace),
		Namespace: ref.Namespace,
		Key:       ref.Key,
	})
}

func (d *UndefinedKeyDetector) lookup(bundle *resources.Bundle, ref EffectiveReference) (any, bool) {
	suffixes := d.config.Translation.PluralSuffixes
	if suffixes == nil {
		suffixes = resources.DefaultPluralSuffixes
	}
	return bundle.Lookup(ref.Namespace, ref.Key, suffixes)
}
