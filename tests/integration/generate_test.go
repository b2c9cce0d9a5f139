package integration

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doctags/doctags-mcp/internal/config"
	"github.com/doctags/doctags-mcp/internal/generator"
	"github.com/doctags/doctags-mcp/internal/notify"
	"github.com/doctags/doctags-mcp/internal/storage"
	"github.com/doctags/doctags-mcp/pkg/types"
)

// buildFixtureTree lays out a realistic documentation root: nested
// primary files, two translation languages, and non-documentation noise.
func buildFixtureTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	files := map[string]string{
		"intro.txt":          "INTRODUCTION\t*intro* *intro-quickstart*\n\nSee |usage| for details.\n",
		"usage.txt":          "USAGE\t*usage*\n\nOptions: *'opt-a'* *'opt-b'*\n",
		"sub/advanced.txt":   "ADVANCED\t*advanced* *advanced-api*\n",
		"intro.nlx":          "INLEIDING\t*inleiding*\n",
		"usage.nlx":          "GEBRUIK\t*gebruik*\n",
		"intro.dez":          "EINLEITUNG\t*einleitung*\n",
		// Suffixes shaped like dot + two lowercase + one char (.org,
		// .rst) are translation groups, so noise files must avoid them.
		"README.md":          "# not documentation\n",
		"sub/notes":          "also not documentation\n",
	}
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

func TestGenerate_EndToEnd(t *testing.T) {
	root := buildFixtureTree(t)

	cfg := config.Default()
	cfg.Roots = []string{root}
	cfg.PrimaryRoot = root
	cfg.DBPath = filepath.Join(t.TempDir(), "catalog.db")

	dbPath, err := cfg.DatabasePath()
	require.NoError(t, err)
	catalog, err := storage.NewSQLiteCatalog(dbPath)
	require.NoError(t, err)
	defer func() { _ = catalog.Close() }()

	capture := &notify.Capture{}
	gen := generator.New(cfg, catalog, capture)

	stats, err := gen.Generate(context.Background(), types.AllRoots, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.RootsProcessed)
	assert.Equal(t, 6, stats.FilesScanned)
	assert.Equal(t, 10, stats.TagsExtracted)
	assert.Equal(t, 3, stats.IndexesWritten)
	assert.Empty(t, stats.Errors)

	// Primary index: sorted, tab-separated, self-registered.
	data, err := os.ReadFile(filepath.Join(root, "tags"))
	require.NoError(t, err)
	assert.Equal(t,
		"'opt-a'\tusage.txt\t/*'opt-a'*\n"+
			"'opt-b'\tusage.txt\t/*'opt-b'*\n"+
			"advanced\tadvanced.txt\t/*advanced*\n"+
			"advanced-api\tadvanced.txt\t/*advanced-api*\n"+
			"help-tags\ttags\t1\n"+
			"intro\tintro.txt\t/*intro*\n"+
			"intro-quickstart\tintro.txt\t/*intro-quickstart*\n"+
			"usage\tusage.txt\t/*usage*\n",
		string(data))

	// Translation indexes, one per language. The primary pass's
	// includeIndexTag applies to them as well.
	nl, err := os.ReadFile(filepath.Join(root, "tags-nl"))
	require.NoError(t, err)
	assert.Equal(t,
		"gebruik\tusage.nlx\t/*gebruik*\n"+
			"help-tags\ttags\t1\n"+
			"inleiding\tintro.nlx\t/*inleiding*\n",
		string(nl))

	de, err := os.ReadFile(filepath.Join(root, "tags-de"))
	require.NoError(t, err)
	assert.Equal(t, "einleitung\tintro.dez\t/*einleitung*\nhelp-tags\ttags\t1\n", string(de))

	// No index beyond the primary and the two language groups.
	matches, err := filepath.Glob(filepath.Join(root, "tags*"))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(root, "tags"),
		filepath.Join(root, "tags-de"),
		filepath.Join(root, "tags-nl"),
	}, matches)

	// Catalog mirrors all three targets.
	record, err := catalog.GetRoot(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, 13, record.TagCount)
	assert.Equal(t, []string{"de", "nl"}, record.Languages)

	entries, err := catalog.LookupTag(context.Background(), "intro", false, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "intro.txt", entries[0].File)
}

func TestGenerate_EndToEnd_Rerun(t *testing.T) {
	root := buildFixtureTree(t)

	cfg := config.Default()
	gen := generator.New(cfg, nil, notify.Discard{})

	_, err := gen.Generate(context.Background(), root, nil)
	require.NoError(t, err)
	first, err := os.ReadFile(filepath.Join(root, "tags"))
	require.NoError(t, err)

	_, err = gen.Generate(context.Background(), root, nil)
	require.NoError(t, err)
	second, err := os.ReadFile(filepath.Join(root, "tags"))
	require.NoError(t, err)

	assert.Equal(t, first, second, "regeneration over an unchanged tree must be byte-identical")
}

func TestGenerate_EndToEnd_DuplicateAcrossFiles(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("*shared*\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "b.txt"), []byte("*shared*\n"), 0644))

	capture := &notify.Capture{}
	gen := generator.New(config.Default(), nil, capture)

	stats, err := gen.Generate(context.Background(), root, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.DuplicateTargets)

	_, statErr := os.Stat(filepath.Join(root, "tags"))
	assert.True(t, os.IsNotExist(statErr))

	warns := capture.BySeverity(notify.SeverityWarn)
	require.Len(t, warns, 1)
	assert.True(t, strings.Contains(warns[0].Text, "a.txt") && strings.Contains(warns[0].Text, "b.txt"),
		"duplicate warning must name both files: %s", warns[0].Text)
}
