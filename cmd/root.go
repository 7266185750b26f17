package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/edudesign/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "edudesign",
	Short: "AI curriculum designer with a persona-driven lesson chat",
	Long: "EduDesign turns a free-text theme into a cross-disciplinary curriculum unit " +
		"and lets learners chat about it with a Socratic, enthusiastic or exploring assistant.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to the LLM request log database (overrides EDUDESIGN_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file (overrides EDUDESIGN_CONFIG env var)")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(personasCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then EDUDESIGN_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
