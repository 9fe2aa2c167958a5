package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/lexdraft/lexdraft/internal/audit"
	"github.com/lexdraft/lexdraft/internal/document"
	"github.com/lexdraft/lexdraft/internal/templates"
)

var (
	generateValuesFile string
	generateOutFile    string
	generateTitle      string
	generateEnhance    bool
	generateSave       bool
)

var generateCmd = &cobra.Command{
	Use:   "generate <template-id>",
	Short: "Generate a document from a template",
	Long: `Resolves a template's placeholder fields with values from a YAML file
and writes the finished document to stdout or a file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		values := map[string]string{}
		if generateValuesFile != "" {
			data, err := os.ReadFile(generateValuesFile)
			if err != nil {
				return fmt.Errorf("reading values file: %w", err)
			}
			if err := yaml.Unmarshal(data, &values); err != nil {
				return fmt.Errorf("parsing values file: %w", err)
			}
		}

		ctx := cmd.Context()
		database, err := openDatabase(ctx, cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		templateStore := templates.NewStore(database)
		documentStore := document.NewStore(database)
		auditStore := audit.NewStore(database)

		enhancer := document.NewEnhancer(nil, "")
		if generateEnhance {
			provider, err := createProvider(cfg)
			if err != nil {
				return fmt.Errorf("creating LLM provider: %w", err)
			}
			if provider == nil {
				return fmt.Errorf("--enhance requires a configured LLM provider")
			}
			enhancer = document.NewEnhancer(provider, cfg.Model)
		}
		gen := document.NewGenerator(templateStore, documentStore, enhancer, auditStore, cfg.Jurisdiction)

		templateID := args[0]
		var content string
		var unresolved []string
		if generateEnhance {
			tmpl, err := templateStore.GetByID(ctx, templateID)
			if err != nil {
				return err
			}
			if tmpl == nil {
				return fmt.Errorf("template %s not found", templateID)
			}
			result, err := gen.GenerateEnhanced(ctx, document.EnhancedRequest{
				Template:     tmpl.Content,
				FormData:     values,
				DocumentType: tmpl.TemplateType,
				Jurisdiction: tmpl.Jurisdiction,
				SaveDocument: generateSave,
				Title:        generateTitle,
			})
			if err != nil {
				return err
			}
			content, unresolved = result.Content, result.Unresolved
			if !result.Enhanced {
				fmt.Fprintln(os.Stderr, "Warning: enhancement unavailable, wrote resolved template")
			}
		} else {
			result, err := gen.Generate(ctx, document.GenerateRequest{
				TemplateID: templateID,
				Title:      generateTitle,
				FieldData:  values,
				Save:       generateSave,
			})
			if err != nil {
				return err
			}
			content, unresolved = result.Content, result.Unresolved
		}

		if len(unresolved) > 0 {
			fmt.Fprintf(os.Stderr, "Warning: unresolved placeholders: %v\n", unresolved)
		}

		if generateOutFile != "" {
			if err := os.WriteFile(generateOutFile, []byte(content), 0o644); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
			fmt.Fprintf(os.Stderr, "Wrote %s\n", generateOutFile)
			return nil
		}
		fmt.Println(content)
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVar(&generateValuesFile, "values", "", "YAML file with field values")
	generateCmd.Flags().StringVarP(&generateOutFile, "out", "o", "", "write the document to a file instead of stdout")
	generateCmd.Flags().StringVar(&generateTitle, "title", "", "document title")
	generateCmd.Flags().BoolVar(&generateEnhance, "enhance", false, "refine the document with the configured LLM provider")
	generateCmd.Flags().BoolVar(&generateSave, "save", false, "store the generated document in the database")
	rootCmd.AddCommand(generateCmd)
}
