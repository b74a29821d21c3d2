package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"syscall"

	"i18ncheck/internal/analyzer"
	"i18ncheck/internal/config"
	"i18ncheck/internal/watcher"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	formatFlag           string
	watchFlag            bool
	configFlag           string
	generateConfigFlag   bool
	mappingFlag          string
	defaultNamespaceFlag string
	allowHasGuardFlag    bool
	guardComparisonFlag  string
	outputFlag           string
	workersFlag          int
	logLevelFlag         string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "i18ncheck [files or directories]",
	Short: "Checks translation keys in JavaScript and TypeScript sources",
	Long: `i18ncheck is a static analysis tool that finds translation calls such as
t("key") in JavaScript and TypeScript code and reports keys that are missing
from the translation files, as well as keys that are not string literals.

Examples:
  i18ncheck src                                   # Analyze a directory
  i18ncheck app/page.tsx                          # Analyze specific files
  i18ncheck --mapping=locales/namespaces.json .   # Use a namespace mapping file
  i18ncheck --format=json .                       # Output results in JSON format
  i18ncheck --config=.i18ncheck.yml .             # Use custom config
  i18ncheck --watch src                           # Re-run on changes
  i18ncheck --generate-config                     # Generate sample config file`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runAnalysis,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		color.Red("%v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&formatFlag, "format", "f", "", "Output format (console, json, compact)")
	rootCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Watch mode for development")
	rootCmd.Flags().StringVarP(&configFlag, "config", "c", "", "Path to configuration file")
	rootCmd.Flags().BoolVar(&generateConfigFlag, "generate-config", false, "Generate sample configuration file")
	rootCmd.Flags().StringVarP(&mappingFlag, "mapping", "m", "", "Namespace to translation file mapping")
	rootCmd.Flags().StringVar(&defaultNamespaceFlag, "default-namespace", "", "Namespace used when none is given")
	rootCmd.Flags().BoolVar(&allowHasGuardFlag, "allow-has-guard", false, "Accept non-literal keys guarded by t.has(key)")
	rootCmd.Flags().StringVar(&guardComparisonFlag, "guard-comparison", "", "Guard argument comparison (text, structural)")
	rootCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Write the report to a file")
	rootCmd.Flags().IntVar(&workersFlag, "workers", 0, "Number of files analyzed in parallel")
	rootCmd.Flags().StringVar(&logLevelFlag, "log-level", "warn", "Log level (debug, info, warn, error)")
}

func setupLogger(level string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:     os.Stderr,
		NoColor: !isatty.IsTerminal(os.Stderr.Fd()),
	}).With().Timestamp().Logger()
	return nil
}

func runAnalysis(cmd *cobra.Command, args []string) error {
	if err := setupLogger(logLevelFlag); err != nil {
		return err
	}

	if generateConfigFlag {
		return generateConfig()
	}

	cfg, err := config.LoadConfig(configFlag)
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if !isatty.IsTerminal(os.Stdout.Fd()) && cfg.Output.OutputFile == "" {
		color.NoColor = true
	}

	if len(args) == 0 {
		args = []string{"."}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if watchFlag {
		return runWatch(ctx, cfg, args)
	}

	hasIssues, err := analyzeOnce(ctx, cfg, args)
	if err != nil {
		return err
	}
	if hasIssues && cfg.Analysis.FailOnIssues {
		os.Exit(1)
	}
	return nil
}

// applyFlags overrides configuration values with explicitly set flags.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if formatFlag != "" {
		cfg.Output.Format = formatFlag
	}
	if outputFlag != "" {
		cfg.Output.OutputFile = outputFlag
	}
	if mappingFlag != "" {
		cfg.Rules.UndefinedKeys.NamespaceTranslationMappingFile = mappingFlag
	}
	if defaultNamespaceFlag != "" {
		cfg.Rules.UndefinedKeys.DefaultNamespace = defaultNamespaceFlag
	}
	if flags.Changed("allow-has-guard") {
		cfg.Rules.StringLiteral.AllowHasProtectedConditionals = allowHasGuardFlag
	}
	if guardComparisonFlag != "" {
		cfg.Rules.StringLiteral.GuardComparison = guardComparisonFlag
	}
	if workersFlag > 0 {
		cfg.Analysis.MaxWorkers = workersFlag
	}
	if cfg.Output.Format != "console" {
		cfg.Output.Colors = false
	}
}

func analyzeOnce(ctx context.Context, cfg *config.Config, args []string) (bool, error) {
	var sourceFiles []string
	for _, arg := range args {
		files, err := collectSourceFiles(arg, cfg)
		if err != nil {
			log.Warn().Err(err).Str("path", arg).Msg("Error collecting files")
			continue
		}
		sourceFiles = append(sourceFiles, files...)
	}

	if len(sourceFiles) == 0 {
		log.Warn().Strs("paths", args).Msg("No JavaScript or TypeScript files found to analyze")
		return false, nil
	}

	analyzerEngine := analyzer.NewAnalyzerWithConfig(cfg)
	reportGen := analyzer.NewReportGeneratorWithConfig(cfg)

	log.Info().
		Int("files", len(sourceFiles)).
		Strs("detectors", analyzerEngine.GetDetectorNames()).
		Msg("Analyzing")

	result, err := analyzerEngine.AnalyzeFiles(ctx, sourceFiles)
	if err != nil {
		return false, fmt.Errorf("analysis failed: %w", err)
	}

	report := reportGen.Generate(result)

	if cfg.Output.OutputFile != "" {
		if err := writeReportToFile(report, cfg.Output.OutputFile); err != nil {
			return false, fmt.Errorf("failed to write report to file: %w", err)
		}
		log.Info().Str("file", cfg.Output.OutputFile).Msg("Report saved")
	} else {
		fmt.Print(report)
	}

	return result.HasIssues(), nil
}

func runWatch(ctx context.Context, cfg *config.Config, args []string) error {
	if _, err := analyzeOnce(ctx, cfg, args); err != nil {
		log.Error().Err(err).Msg("Analysis failed")
	}

	fw, err := watcher.NewFileWatcher(cfg)
	if err != nil {
		return err
	}
	defer fw.Close()

	watchPaths := slices.Clone(args)
	if mapping := cfg.Rules.UndefinedKeys.NamespaceTranslationMappingFile; cfg.Rules.UndefinedKeys.Enabled && mapping != "" {
		watchPaths = append(watchPaths, filepath.Dir(mapping))
	}

	err = fw.Watch(watchPaths, func(changed []string) error {
		log.Info().
			Strs("files", changed).
			Bool("translations", slices.ContainsFunc(changed, watcher.IsResourceFile)).
			Msg("Changes detected, re-running analysis")
		_, err := analyzeOnce(ctx, cfg, args)
		return err
	})
	if err != nil {
		return err
	}

	color.Cyan("👀 Watching %d directories, press Ctrl+C to stop\n", len(fw.GetWatchedPaths()))
	<-ctx.Done()
	return nil
}

func writeReportToFile(report, filePath string) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	return os.WriteFile(filePath, []byte(report), 0644)
}

func generateConfig() error {
	configPath := ".i18ncheck.yml"
	if err := config.GenerateConfig(configPath); err != nil {
		return fmt.Errorf("failed to generate config file: %w", err)
	}
	color.Green("✅ Generated sample configuration file: %s\n", configPath)
	color.Cyan("📝 Edit this file to point at your namespace mapping\n")
	color.Cyan("🚀 Run 'i18ncheck --config=%s .' to use it\n", configPath)
	return nil
}

// collectSourceFiles recursively finds files with an included extension,
// honoring the exclude patterns.
func collectSourceFiles(path string, cfg *config.Config) ([]string, error) {
	filter, err := cfg.Files.Filter()
	if err != nil {
		return nil, err
	}

	var sourceFiles []string

	err = filepath.Walk(path, func(filePath string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, relErr := filepath.Rel(path, filePath)
		if relErr != nil {
			rel = filePath
		}

		if info.IsDir() {
			if filePath != path && filter.Excluded(rel, true) {
				return filepath.SkipDir
			}
			return nil
		}

		if info.Mode()&os.ModeSymlink != 0 {
			if !cfg.Files.FollowSymlinks {
				return nil
			}
			target, err := os.Stat(filePath)
			if err != nil || target.IsDir() {
				return nil
			}
		}

		if !filter.Included(filePath) {
			return nil
		}
		if rel != "." && filter.Excluded(rel, false) {
			return nil
		}

		sourceFiles = append(sourceFiles, filePath)
		return nil
	})

	return sourceFiles, err
}
