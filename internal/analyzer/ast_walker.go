package analyzer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"i18ncheck/internal/analyzer/detectors"
	"i18ncheck/internal/config"
	actx "i18ncheck/internal/context"
	"i18ncheck/internal/jsast"
	"i18ncheck/internal/models"
	"i18ncheck/internal/resources"
)

var errFileTooLarge = errors.New("file exceeds max_file_size")

type Analyzer struct {
	config    *config.Config
	loader    *resources.Loader
	detectors []Detector
	logger    zerolog.Logger
}

// Detector is a rule invoked once per call expression, in source order.
type Detector interface {
	Name() string
	Type() models.IssueType
	Severity() models.Severity
	CheckCall(pass *detectors.Pass, call *jsast.Node, ancestors []*jsast.Node)
}

func NewAnalyzer() *Analyzer {
	return NewAnalyzerWithConfig(config.DefaultConfig())
}

func NewAnalyzerWithConfig(cfg *config.Config) *Analyzer {
	analyzer := &Analyzer{
		config: cfg,
		loader: resources.NewLoader(),
		logger: log.With().Str("sys", "analyzer").Logger(),
	}

	if cfg.IsRuleEnabled(string(models.IssueUndefinedKey)) {
		analyzer.detectors = append(analyzer.detectors, detectors.NewUndefinedKeyDetectorWithConfig(cfg))
	}
	if cfg.IsRuleEnabled(string(models.IssueNonLiteralKey)) {
		analyzer.detectors = append(analyzer.detectors, detectors.NewStringLiteralDetectorWithConfig(cfg))
	}

	return analyzer
}

// LoadBundle reads the namespace mapping and every translation resource from
// disk. It returns nil when the undefined-keys rule is disabled.
func (a *Analyzer) LoadBundle() (*resources.Bundle, error) {
	if !a.config.IsRuleEnabled(string(models.IssueUndefinedKey)) {
		return nil, nil
	}
	bundle, err := a.loader.LoadBundle(a.config.Rules.UndefinedKeys.NamespaceTranslationMappingFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load translations: %w", err)
	}
	return bundle, nil
}

type fileOutcome struct {
	issues []models.Issue
	err    error
}

// AnalyzeFiles loads the translation bundle once, then analyzes the files
// with up to max_workers files in flight. Files that cannot be read or
// parsed are skipped; a bundle that cannot be loaded fails the run.
func (a *Analyzer) AnalyzeFiles(ctx context.Context, filenames []string) (*models.AnalysisResult, error) {
	startTime := time.Now()
	result := models.NewAnalysisResult()

	bundle, err := a.LoadBundle()
	if err != nil {
		return nil, err
	}
	if bundle != nil {
		result.Namespaces = bundle.Mapping.Namespaces
	}

	outcomes := make([]fileOutcome, len(filenames))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(a.config.Analysis.MaxWorkers, 1))
	for i, filename := range filenames {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			issues, err := a.analyzeFile(gctx, filename, bundle)
			outcomes[i] = fileOutcome{issues: issues, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, filename := range filenames {
		outcome := outcomes[i]
		if outcome.err != nil {
			// Log error but continue with other files
			a.logger.Warn().Err(outcome.err).Str("file", filename).Msg("Skipping file")
			result.SkippedFiles = append(result.SkippedFiles, filename)
			continue
		}
		result.Files = append(result.Files, filename)
		for _, issue := range outcome.issues {
			result.AddIssue(issue)
		}
	}

	sort.SliceStable(result.Issues, func(i, j int) bool {
		a, b := result.Issues[i], result.Issues[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})

	result.AnalysisDuration = time.Since(startTime).String()

	a.logger.Info().
		Int("files", len(result.Files)).
		Int("skipped", len(result.SkippedFiles)).
		Int("issues", result.TotalIssues).
		Msg("Analysis finished")

	return result, nil
}

func (a *Analyzer) analyzeFile(ctx context.Context, filename string, bundle *resources.Bundle) ([]models.Issue, error) {
	info, err := os.Stat(filename)
	if err != nil {
		return nil, err
	}
	if limit := int64(a.config.Files.MaxFileSize) * 1024; limit > 0 && info.Size() > limit {
		return nil, fmt.Errorf("%w: %d bytes", errFileTooLarge, info.Size())
	}

	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return a.AnalyzeSource(ctx, filename, src, bundle)
}

// AnalyzeSource parses src as the named file and runs the detectors on it.
func (a *Analyzer) AnalyzeSource(ctx context.Context, filename string, src []byte, bundle *resources.Bundle) ([]models.Issue, error) {
	file, err := jsast.Parse(ctx, filename, src)
	if err != nil {
		return nil, err
	}
	if file.HasErrors {
		a.logger.Warn().Str("file", filename).Msg("Syntax errors found, analyzing the recovered tree")
	}
	a.logger.Debug().Str("file", filename).Msg("Parsed source")

	return a.AnalyzeFile(file, bundle), nil
}

// AnalyzeFile runs every detector over the call expressions of a parsed file.
func (a *Analyzer) AnalyzeFile(file *jsast.File, bundle *resources.Bundle) []models.Issue {
	analysisCtx := actx.NewAnalysisContext(file, actx.Producers{
		Hooks:     a.config.Translation.HookProducers,
		Accessors: a.config.Translation.AccessorProducers,
	})

	var issues []models.Issue
	passes := make([]*detectors.Pass, len(a.detectors))
	for i, detector := range a.detectors {
		passes[i] = &detectors.Pass{
			Context: analysisCtx,
			Bundle:  bundle,
			Report: func(d detectors.Diagnostic) {
				issues = append(issues, newIssue(detector, file, d))
			},
		}
	}

	jsast.Inspect(file.Program, func(n *jsast.Node, ancestors []*jsast.Node) bool {
		if n.Kind != jsast.KindCall {
			return true
		}
		for i, detector := range a.detectors {
			detector.CheckCall(passes[i], n, ancestors)
		}
		return true
	})

	return issues
}

// GetDetectorCount returns the number of active detectors
func (a *Analyzer) GetDetectorCount() int {
	return len(a.detectors)
}

// GetDetectorNames returns the names of all active detectors
func (a *Analyzer) GetDetectorNames() []string {
	names := make([]string, len(a.detectors))
	for i, detector := range a.detectors {
		names[i] = detector.Name()
	}
	return names
}

func newIssue(detector Detector, file *jsast.File, d detectors.Diagnostic) models.Issue {
	return models.Issue{
		Type:      detector.Type(),
		Severity:  detector.Severity(),
		File:      file.Name,
		Line:      d.Node.Line,
		Column:    d.Node.Column,
		Message:   d.Message,
		Namespace: d.Namespace,
		Key:       d.Key,
		Snippet:   snippet(file, d.Node),
	}
}

const maxSnippetLen = 80

// snippet returns the node's source on one line, shortened if needed.
func snippet(file *jsast.File, n *jsast.Node) string {
	text := strings.Join(strings.Fields(file.Text(n)), " ")
	if len(text) > maxSnippetLen {
		text = text[:maxSnippetLen-3] + "..."
	}
	return text
}
