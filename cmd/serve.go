package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/abhisek/edudesign/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve curriculum generation and lesson chat over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}

		st, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		log, err := newLogger(cfg, "")
		if err != nil {
			return err
		}
		defer log.Sync()

		if cfg.Log.Mode == "prod" {
			gin.SetMode(gin.ReleaseMode)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// Missing credentials are reported per request as 502s.
		providers, _ := buildProviders(ctx, cfg, st.EventRepo(), log)

		srv := server.New(server.Config{
			Addr:              cfg.Server.Addr,
			RequestsPerMinute: cfg.Server.RequestsPerMinute,
			Burst:             cfg.Server.Burst,
			AllowedOrigins:    cfg.Server.AllowedOrigins,
			Timeout:           cfg.LLM.Timeout,
		}, newGenerator(providers, log), newOrchestrator(providers, cfg, log), log)

		return srv.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
}
