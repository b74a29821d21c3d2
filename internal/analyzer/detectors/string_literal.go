package detectors

import (
	"i18ncheck/internal/config"
	"i18ncheck/internal/jsast"
	"i18ncheck/internal/models"
)

const nonLiteralKeyMessage = "Translation keys must be string literals"

// StringLiteralDetector reports translation calls whose key is not a string
// literal, since such keys cannot be checked against the bundle.
type StringLiteralDetector struct {
	config *config.Config
}

func NewStringLiteralDetector() *StringLiteralDetector {
	return NewStringLiteralDetectorWithConfig(config.DefaultConfig())
}

func NewStringLiteralDetectorWithConfig(cfg *config.Config) *StringLiteralDetector {
	return &StringLiteralDetector{config: cfg}
}

func (d *StringLiteralDetector) SetConfig(cfg *config.Config) {
	d.config = cfg
}

func (d *StringLiteralDetector) Name() string {
	return "Translation Key String Literal Detector"
}

func (d *StringLiteralDetector) Type() models.IssueType {
	return models.IssueNonLiteralKey
}

func (d *StringLiteralDetector) Severity() models.Severity {
	return models.SeverityMedium
}

func (d *StringLiteralDetector) CheckCall(pass *Pass, call *jsast.Node, ancestors []*jsast.Node) {
	if !translationCall(call, d.config.Rules.StringLiteral.Functions) {
		return
	}
	if arg := call.FirstArgument(); arg != nil && arg.Kind == jsast.KindString {
		return
	}

	rule := d.config.Rules.StringLiteral
	if rule.AllowHasProtectedConditionals {
		guard := GuardMatcher{Comparison: rule.GuardComparison}
		if guard.IsGuarded(pass.Context.File, call, ancestors) {
			return
		}
	}

	pass.Report(Diagnostic{Node: call, Message: nonLiteralKeyMessage})
}
