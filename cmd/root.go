package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "lexdraft",
	Short: "Legal document generation from reusable templates",
	Long: `Lexdraft turns legal document templates into finished documents by
substituting placeholder fields, optionally refining the result with an
AI provider. It serves a REST API for template management, document
generation, export, e-signature requests and clause research.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".lexdraft.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
