package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/edudesign/internal/curriculum"
)

var generateCmd = &cobra.Command{
	Use:   "generate <theme...>",
	Short: "Generate a curriculum unit from a theme and print it",
	Example: `  edudesign generate "a floating city for 4th graders"
  edudesign generate --format json --image-out cover "volcanoes and community resilience"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		imageOut, _ := cmd.Flags().GetString("image-out")

		theme := strings.TrimSpace(strings.Join(args, " "))
		if theme == "" {
			return errors.New("a theme is required")
		}
		if !validFormat(format) {
			return fmt.Errorf("unknown format %q (want text, markdown, json or yaml)", format)
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cfg.Log.Level == "" {
			cfg.Log.Level = "warn"
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

		providers, err := buildProviders(cmd.Context(), cfg, st.EventRepo(), log)
		if err != nil {
			return fmt.Errorf("LLM provider not configured: %w", err)
		}

		d, err := newGenerator(providers, log).Generate(cmd.Context(), theme)
		if err != nil {
			return err
		}

		if err := writeDesign(cmd.OutOrStdout(), d, format); err != nil {
			return err
		}

		if imageOut != "" {
			path, err := d.WriteImage(imageOut)
			switch {
			case errors.Is(err, curriculum.ErrNoImage):
				fmt.Fprintln(cmd.ErrOrStderr(), "No illustration was produced for this unit.")
			case err != nil:
				return err
			default:
				fmt.Fprintln(cmd.ErrOrStderr(), "Illustration saved to", path)
			}
		}
		return nil
	},
}

func validFormat(format string) bool {
	switch format {
	case "text", "markdown", "json", "yaml":
		return true
	}
	return false
}

func writeDesign(w io.Writer, d *curriculum.Design, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return err
		}
		return enc.Close()
	case "markdown":
		_, err := io.WriteString(w, d.Markdown())
		return err
	default:
		_, err := io.WriteString(w, d.Outline())
		return err
	}
}

func init() {
	generateCmd.Flags().StringP("format", "f", "text", "Output format: text, markdown, json or yaml")
	generateCmd.Flags().StringP("image-out", "o", "", "Save the illustration to this file (extension added from the image type)")
}

