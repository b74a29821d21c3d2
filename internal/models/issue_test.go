package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "HIGH", SeverityHigh.String())
	assert.Equal(t, "UNKNOWN", Severity(42).String())
	assert.Equal(t, "UNKNOWN", Severity(0).String())

	text, err := SeverityMedium.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "MEDIUM", string(text))
}

func TestAnalysisResultAddIssue(t *testing.T) {
	result := NewAnalysisResult()
	assert.False(t, result.HasIssues())

	result.AddIssue(Issue{Type: IssueUndefinedKey, Severity: SeverityHigh})
	result.AddIssue(Issue{Type: IssueUndefinedKey, Severity: SeverityHigh})
	result.AddIssue(Issue{Type: IssueNonLiteralKey, Severity: SeverityMedium})

	assert.True(t, result.HasIssues())
	assert.Equal(t, 3, result.TotalIssues)
	assert.Len(t, result.Issues, 3)
	assert.Equal(t, map[string]int{"HIGH": 2, "MEDIUM": 1}, result.IssuesBySeverity)
	assert.Equal(t, map[string]int{
		"no-undefined-translation-keys":  2,
		"translation-key-string-literal": 1,
	}, result.IssuesByRule)
}
