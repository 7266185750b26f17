package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/edudesign/internal/app"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	st, dbPath, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	// Log lines would corrupt the alternate screen, so they go to a file.
	log, err := newLogger(cfg, filepath.Join(filepath.Dir(dbPath), "edudesign.log"))
	if err != nil {
		return err
	}
	defer log.Sync()

	providers, err := buildProviders(ctx, cfg, st.EventRepo(), log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Generation and chat will fail until an API key is set.")
	}

	saveDir, err := os.Getwd()
	if err != nil {
		saveDir = "."
	}

	return app.Run(app.Options{
		Designer: newGenerator(providers, log),
		Chatter:  newOrchestrator(providers, cfg, log),
		SaveDir:  saveDir,
	})
}
