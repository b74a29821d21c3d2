package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"i18ncheck/internal/config"
)

func TestCollectSourceFiles(t *testing.T) {
	files, err := collectSourceFiles("../testdata/src", config.DefaultConfig())
	require.NoError(t, err)

	var names []string
	for _, f := range files {
		names = append(names, filepath.Base(f))
	}
	assert.ElementsMatch(t, []string{"Nav.jsx", "page.tsx", "util.js"}, names)
}

func TestCollectSourceFilesExcludes(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"src/app.ts",
		"src/app.test.ts",
		"node_modules/lib/index.js",
		"dist/bundle.js",
		"src/styles.css",
	} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("t('x')"), 0o644))
	}

	cfg := config.DefaultConfig()
	cfg.Files.Exclude = append(cfg.Files.Exclude, "*.test.ts")

	files, err := collectSourceFiles(dir, cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "src", "app.ts")}, files)
}

func TestCollectSourceFilesSingleFile(t *testing.T) {
	files, err := collectSourceFiles("../testdata/src/page.tsx", config.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, []string{"../testdata/src/page.tsx"}, files)

	_, err = collectSourceFiles("../testdata/does-not-exist", config.DefaultConfig())
	assert.Error(t, err)
}

func TestApplyFlags(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().BoolVar(&allowHasGuardFlag, "allow-has-guard", false, "")
	require.NoError(t, cmd.Flags().Set("allow-has-guard", "true"))

	formatFlag, mappingFlag, defaultNamespaceFlag, workersFlag = "json", "m.json", "common", 8
	guardComparisonFlag = config.GuardCompareStructural
	t.Cleanup(func() {
		formatFlag, mappingFlag, defaultNamespaceFlag, workersFlag = "", "", "", 0
		guardComparisonFlag = ""
		allowHasGuardFlag = false
	})

	cfg := config.DefaultConfig()
	applyFlags(cmd, cfg)

	assert.Equal(t, "json", cfg.Output.Format)
	assert.False(t, cfg.Output.Colors)
	assert.Equal(t, "m.json", cfg.Rules.UndefinedKeys.NamespaceTranslationMappingFile)
	assert.Equal(t, "common", cfg.Rules.UndefinedKeys.DefaultNamespace)
	assert.True(t, cfg.Rules.StringLiteral.AllowHasProtectedConditionals)
	assert.Equal(t, config.GuardCompareStructural, cfg.Rules.StringLiteral.GuardComparison)
	assert.Equal(t, 8, cfg.Analysis.MaxWorkers)
	assert.NoError(t, cfg.Validate())
}
