package analyzer

import (
	"fmt"
	"sort"
	"strings"

	"i18ncheck/internal/config"
	"i18ncheck/internal/models"

	"github.com/fatih/color"
	"github.com/goccy/go-json"
)

// ReportGenerator handles formatting and displaying analysis results
type ReportGenerator struct {
	format string
	config *config.Config
}

// NewReportGenerator creates a new report generator
func NewReportGenerator(format string) *ReportGenerator {
	return &ReportGenerator{
		format: format,
		config: config.DefaultConfig(),
	}
}

func NewReportGeneratorWithConfig(cfg *config.Config) *ReportGenerator {
	return &ReportGenerator{
		format: cfg.Output.Format,
		config: cfg,
	}
}

// Generate creates a formatted report from analysis results
func (r *ReportGenerator) Generate(result *models.AnalysisResult) string {
	switch r.format {
	case "json":
		return r.generateJSON(result)
	case "compact":
		return r.generateCompact(result)
	default:
		return r.generateConsole(result)
	}
}

func (r *ReportGenerator) generateJSON(result *models.AnalysisResult) string {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Sprintf("Error generating JSON report: %v", err)
	}
	return string(data) + "\n"
}

// generateCompact writes one `file:line:col: message [rule]` line per issue.
func (r *ReportGenerator) generateCompact(result *models.AnalysisResult) string {
	var report strings.Builder
	for _, issue := range result.Issues {
		fmt.Fprintf(&report, "%s:%d:%d: %s [%s]\n", issue.File, issue.Line, issue.Column, issue.Message, issue.Type)
	}
	return report.String()
}

func (r *ReportGenerator) generateConsole(result *models.AnalysisResult) string {
	var report strings.Builder

	useColors := true
	verbose := false
	title := "i18ncheck Translation Report"
	if r.config != nil {
		useColors = r.config.Output.Colors
		verbose = r.config.Output.Verbose
		if r.config.ProjectName != "" {
			title += ": " + r.config.ProjectName
		}
	}

	if useColors {
		report.WriteString(color.CyanString("🌐 %s\n", title))
		report.WriteString(color.WhiteString("═══════════════════════════════════════\n\n"))
	} else {
		report.WriteString(title + "\n")
		report.WriteString("=======================================\n\n")
	}

	if verbose && r.config != nil {
		r.writeConfigInfo(&report, result, useColors)
	}

	r.writeSummary(&report, result, useColors)

	if len(result.Issues) > 0 {
		r.writeIssuesByRule(&report, result, useColors)
		report.WriteString("\n")
		r.writeFileIssues(&report, result, useColors)
	} else {
		if useColors {
			report.WriteString(color.GreenString("🎉 All translation keys check out!\n\n"))
		} else {
			report.WriteString("All translation keys check out!\n\n")
		}
	}

	if useColors {
		report.WriteString(color.WhiteString("Analysis completed in %s\n", result.AnalysisDuration))
	} else {
		fmt.Fprintf(&report, "Analysis completed in %s\n", result.AnalysisDuration)
	}

	return report.String()
}

// getSeverityDisplay returns emoji and color function for a severity level
func (r *ReportGenerator) getSeverityDisplay(severity string) (string, func(a ...interface{}) string) {
	switch severity {
	case "HIGH":
		return "❌", color.New(color.FgRed).SprintFunc()
	case "MEDIUM":
		return "⚠️", color.New(color.FgYellow).SprintFunc()
	default:
		return "❓", color.New(color.FgWhite).SprintFunc()
	}
}

func (r *ReportGenerator) writeConfigInfo(report *strings.Builder, result *models.AnalysisResult, useColors bool) {
	uk := r.config.Rules.UndefinedKeys
	lines := []string{
		fmt.Sprintf("   Translation functions: %s", strings.Join(r.config.Translation.Functions, ", ")),
		fmt.Sprintf("   Literal key functions: %s", strings.Join(r.config.Rules.StringLiteral.Functions, ", ")),
		fmt.Sprintf("   Default namespace: %s", uk.DefaultNamespace),
	}
	if uk.Enabled {
		lines = append(lines, fmt.Sprintf("   Namespace mapping: %s", uk.NamespaceTranslationMappingFile))
	}
	if len(result.Namespaces) > 0 {
		lines = append(lines, fmt.Sprintf("   Namespaces: %s", strings.Join(result.Namespaces, ", ")))
	}

	if useColors {
		report.WriteString(color.WhiteString("📋 Configuration:\n"))
		for _, line := range lines {
			report.WriteString(color.CyanString("%s\n", line))
		}
	} else {
		report.WriteString("Configuration:\n")
		for _, line := range lines {
			report.WriteString(line + "\n")
		}
	}
	report.WriteString("\n")
}

func (r *ReportGenerator) writeSummary(report *strings.Builder, result *models.AnalysisResult, useColors bool) {
	if useColors {
		report.WriteString(color.WhiteString("📊 Summary:\n"))
	} else {
		report.WriteString("Summary:\n")
	}
	fmt.Fprintf(report, "   Files analyzed: %d\n", len(result.Files))
	if len(result.SkippedFiles) > 0 {
		fmt.Fprintf(report, "   Files skipped: %d\n", len(result.SkippedFiles))
	}
	fmt.Fprintf(report, "   Issues found: %d\n", result.TotalIssues)
	report.WriteString("\n")
}

func (r *ReportGenerator) writeIssuesByRule(report *strings.Builder, result *models.AnalysisResult, useColors bool) {
	if useColors {
		report.WriteString(color.WhiteString("📋 Issues by Rule:\n"))
	} else {
		report.WriteString("Issues by Rule:\n")
	}

	rules := make([]string, 0, len(result.IssuesByRule))
	for rule := range result.IssuesByRule {
		rules = append(rules, rule)
	}
	sort.Strings(rules)

	for _, rule := range rules {
		count := result.IssuesByRule[rule]
		if useColors {
			fmt.Fprintf(report, "   %s: %s\n", rule, color.YellowString("%d", count))
		} else {
			fmt.Fprintf(report, "   %s: %d\n", rule, count)
		}
	}
}

// writeFileIssues groups issues under their file, one line per issue.
func (r *ReportGenerator) writeFileIssues(report *strings.Builder, result *models.AnalysisResult, useColors bool) {
	currentFile := ""
	for _, issue := range result.Issues {
		if issue.File != currentFile {
			if currentFile != "" {
				report.WriteString("\n")
			}
			currentFile = issue.File
			if useColors {
				report.WriteString(color.New(color.Underline).Sprint(issue.File) + "\n")
			} else {
				report.WriteString(issue.File + "\n")
			}
		}
		r.writeIssueLine(report, issue, useColors)
	}
	report.WriteString("\n")
}

func (r *ReportGenerator) writeIssueLine(report *strings.Builder, issue models.Issue, useColors bool) {
	position := fmt.Sprintf("%d:%d", issue.Line, issue.Column)
	severity := issue.Severity.String()

	if useColors {
		emoji, severityColor := r.getSeverityDisplay(severity)
		fmt.Fprintf(report, "  %-8s %s %s  %s  %s\n",
			position, emoji, severityColor(severity), issue.Message, color.HiBlackString(string(issue.Type)))
		if issue.Snippet != "" {
			report.WriteString(color.HiBlackString("           %s\n", issue.Snippet))
		}
		return
	}

	fmt.Fprintf(report, "  %-8s %s  %s  %s\n", position, severity, issue.Message, issue.Type)
	if issue.Snippet != "" {
		fmt.Fprintf(report, "           %s\n", issue.Snippet)
	}
}
