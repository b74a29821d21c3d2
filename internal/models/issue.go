package models

type Severity int

const (
	SeverityMedium Severity = iota + 1
	SeverityHigh
)

func (s Severity) String() string {
	switch s {
	case SeverityMedium:
		return "MEDIUM"
	case SeverityHigh:
		return "HIGH"
	default:
		return "UNKNOWN"
	}
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

type IssueType string

const (
	IssueUndefinedKey  IssueType = "no-undefined-translation-keys"
	IssueNonLiteralKey IssueType = "translation-key-string-literal"
)

type Issue struct {
	Type      IssueType `json:"rule"`
	Severity  Severity  `json:"severity"`
	File      string    `json:"file"`
	Line      int       `json:"line"`
	Column    int       `json:"column"`
	Message   string    `json:"message"`
	Namespace string    `json:"namespace,omitempty"`
	Key       string    `json:"key,omitempty"`
	Snippet   string    `json:"snippet,omitempty"`
}

type AnalysisResult struct {
	Files            []string       `json:"files_analyzed"`
	SkippedFiles     []string       `json:"files_skipped,omitempty"`
	Namespaces       []string       `json:"namespaces,omitempty"`
	TotalIssues      int            `json:"total_issues"`
	IssuesBySeverity map[string]int `json:"issues_by_severity"`
	IssuesByRule     map[string]int `json:"issues_by_rule"`
	Issues           []Issue        `json:"issues"`
	AnalysisDuration string         `json:"analysis_duration"`
}

func NewAnalysisResult() *AnalysisResult {
	return &AnalysisResult{
		Files:            make([]string, 0),
		Issues:           make([]Issue, 0),
		IssuesBySeverity: make(map[string]int),
		IssuesByRule:     make(map[string]int),
	}
}

func (ar *AnalysisResult) AddIssue(issue Issue) {
	ar.Issues = append(ar.Issues, issue)
	ar.TotalIssues++
	ar.IssuesBySeverity[issue.Severity.String()]++
	ar.IssuesByRule[string(issue.Type)]++
}

func (ar *AnalysisResult) HasIssues() bool {
	return ar.TotalIssues > 0
}
