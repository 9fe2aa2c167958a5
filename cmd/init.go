package cmd

import (
	"github.com/spf13/cobra"

	"github.com/lexdraft/lexdraft/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize lexdraft configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure lexdraft and writes a .lexdraft.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
