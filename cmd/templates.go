package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lexdraft/lexdraft/internal/templates"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Manage document templates",
}

var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		database, err := openDatabase(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		list, err := templates.NewStore(database).List(cmd.Context(), templates.ListFilter{})
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTYPE\tJURISDICTION\tFIELDS\tTITLE")
		for _, t := range list {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", t.ID, t.TemplateType, t.Jurisdiction, len(t.Fields), t.Title)
		}
		return w.Flush()
	},
}

var templatesImportCmd = &cobra.Command{
	Use:   "import <dir>",
	Short: "Import template files from a directory",
	Long: `Walks a directory for template files with YAML front matter and loads
them into the template store. The include and exclude globs from the
config file control which files are considered.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		database, err := openDatabase(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		result, err := templates.NewStore(database).ImportDir(cmd.Context(), args[0], cfg.Templates.Include, cfg.Templates.Exclude)
		if err != nil {
			return err
		}
		fmt.Printf("Imported %d templates (%d skipped)\n", result.Imported, len(result.Skipped))
		return nil
	},
}

func init() {
	templatesCmd.AddCommand(templatesListCmd)
	templatesCmd.AddCommand(templatesImportCmd)
	rootCmd.AddCommand(templatesCmd)
}
