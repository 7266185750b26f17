package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/edudesign/internal/config"
	"github.com/abhisek/edudesign/internal/curriculum"
	"github.com/abhisek/edudesign/internal/lessonchat"
	"github.com/abhisek/edudesign/internal/llm"
	"github.com/abhisek/edudesign/internal/logger"
	"github.com/abhisek/edudesign/internal/store"
)

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func openStore(cmd *cobra.Command) (*store.Store, string, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, "", fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, "", fmt.Errorf("open database: %w", err)
	}
	return st, dbPath, nil
}

// newLogger builds the process logger. file overrides log.file when the
// config leaves it empty.
func newLogger(cfg *config.Config, file string) (*logger.Logger, error) {
	opts := logger.Options{Mode: cfg.Log.Mode, Level: cfg.Log.Level, File: cfg.Log.File}
	if opts.File == "" {
		opts.File = file
	}
	log, err := logger.New(opts)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return log, nil
}

// buildProviders returns working providers or, when credentials are
// missing, providers that fail every call with the configuration error.
func buildProviders(ctx context.Context, cfg *config.Config, repo store.EventRepo, log *logger.Logger) (*llm.Providers, error) {
	llmCfg := cfg.LLMConfig()
	providers, err := llm.NewProviders(ctx, llmCfg, repo)
	if err != nil {
		log.Warn("LLM provider not configured", "provider", llmCfg.Provider, "error", err)
		return llm.UnconfiguredProviders(err), err
	}

	log.Info("LLM providers ready",
		"provider", llmCfg.Provider,
		"design_model", providers.Design.ModelID(),
		"chat_model", providers.Chat.ModelID(),
		"images", providers.Images != nil,
	)
	return providers, nil
}

func newGenerator(p *llm.Providers, log *logger.Logger) *curriculum.Generator {
	return curriculum.NewGenerator(p.Design, p.Images, log, curriculum.DefaultConfig())
}

func newOrchestrator(p *llm.Providers, cfg *config.Config, log *logger.Logger) *lessonchat.Orchestrator {
	chatCfg := lessonchat.DefaultConfig()
	chatCfg.MaxHistoryTurns = cfg.Chat.MaxHistoryTurns
	return lessonchat.New(p.Chat, log, chatCfg)
}
