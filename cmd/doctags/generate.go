package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/doctags/doctags-mcp/internal/generator"
	"github.com/doctags/doctags-mcp/internal/notify"
	"github.com/doctags/doctags-mcp/internal/storage"
	"github.com/doctags/doctags-mcp/pkg/types"
)

var (
	includeIndexTag bool
	workers         int
	noCatalog       bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [root]",
	Short: "Generate tag index files for a documentation root",
	Long: `Generate scans the given documentation root (or every registered root
when the argument is "ALL" or omitted) and writes the tags index files.
Translated documentation files produce one tags-<lang> index per
language code.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		root := types.AllRoots
		if len(args) == 1 {
			root = args[0]
		}

		var catalog storage.Catalog
		if !noCatalog {
			dbPath, err := cfg.DatabasePath()
			if err != nil {
				return err
			}
			sqliteCatalog, err := storage.NewSQLiteCatalog(dbPath)
			if err != nil {
				return fmt.Errorf("failed to open tag catalog: %w", err)
			}
			defer func() { _ = sqliteCatalog.Close() }()
			catalog = sqliteCatalog
		}

		gen := generator.New(cfg, catalog, notify.Logger{})
		stats, err := gen.Generate(cmd.Context(), root, &generator.Options{
			IncludeIndexTag: includeIndexTag,
			Workers:         workers,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Scanned %d files in %d roots: %d tags, %d indexes written, %d skipped (%s)\n",
			stats.FilesScanned, stats.RootsProcessed, stats.TagsExtracted,
			stats.IndexesWritten, stats.IndexesSkipped, stats.Duration.Round(time.Millisecond))
		if len(stats.Errors) > 0 {
			return fmt.Errorf("%d target(s) failed", len(stats.Errors))
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().BoolVar(&includeIndexTag, "include-index-tag", false,
		"register the self-referential help-tags entry in every index")
	generateCmd.Flags().IntVar(&workers, "workers", 0,
		"concurrent extraction workers (default: config, then NumCPU)")
	generateCmd.Flags().BoolVar(&noCatalog, "no-catalog", false,
		"skip updating the tag catalog database")
}
