package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/doctags/doctags-mcp/internal/generator"
	"github.com/doctags/doctags-mcp/internal/notify"
	"github.com/doctags/doctags-mcp/internal/storage"
	"github.com/doctags/doctags-mcp/pkg/types"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the registered roots and regenerate indexes on change",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if len(cfg.Roots) == 0 {
			return errors.New("no documentation roots registered; add roots to the config file")
		}

		dbPath, err := cfg.DatabasePath()
		if err != nil {
			return err
		}
		catalog, err := storage.NewSQLiteCatalog(dbPath)
		if err != nil {
			return fmt.Errorf("failed to open tag catalog: %w", err)
		}
		defer func() { _ = catalog.Close() }()

		gen := generator.New(cfg, catalog, notify.Logger{})

		// Build everything once before watching.
		if _, err := gen.Generate(cmd.Context(), types.AllRoots, nil); err != nil {
			return err
		}

		watcher, err := generator.NewWatcher(gen, cfg.Roots, nil, cfg.WatchDebounce())
		if err != nil {
			return err
		}
		if err := watcher.Watch(); err != nil {
			return err
		}
		defer func() { _ = watcher.Close() }()

		log.Printf("Watching %d root(s), debounce %s", len(cfg.Roots), cfg.WatchDebounce())

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		sig := <-sigChan
		log.Printf("Received signal %v, stopping watch", sig)
		return nil
	},
}
