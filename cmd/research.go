package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lexdraft/lexdraft/internal/progress"
	"github.com/lexdraft/lexdraft/internal/research"
)

var (
	researchLimit        int
	researchJurisdiction string
)

var researchCmd = &cobra.Command{
	Use:   "research",
	Short: "Manage and search the clause library",
}

var researchLoadCmd = &cobra.Command{
	Use:   "load <file.yml>",
	Short: "Load clauses from a YAML file into the library",
	Args:  cobra.ExactArgs(1),
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

		n, err := research.NewClauseStore(database).LoadFile(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Loaded %d clauses\n", n)
		return nil
	},
}

var researchIndexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the clause search index",
	Long:  `Embeds every clause in the library and persists the vector index under the data directory. Requires OPENAI_API_KEY.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		embedder := createEmbedder(cfg)
		if embedder == nil {
			return fmt.Errorf("OPENAI_API_KEY environment variable is not set")
		}

		ctx := cmd.Context()
		database, err := openDatabase(ctx, cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		store := research.NewClauseStore(database)
		index, err := research.NewIndex(store, embedder)
		if err != nil {
			return err
		}

		clauses, err := store.List(ctx, "")
		if err != nil {
			return err
		}
		reporter := progress.NewReporter("Indexing clauses")
		reporter.Start(len(clauses))
		current := 0
		n, err := index.Reindex(ctx, func() {
			current++
			reporter.Update(current, "")
		})
		reporter.Finish()
		if err != nil {
			return err
		}

		if err := index.Persist(cfg.DataDir); err != nil {
			return fmt.Errorf("persisting clause index: %w", err)
		}
		fmt.Printf("Indexed %d clauses\n", n)
		return nil
	},
}

var researchSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the clause library",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		embedder := createEmbedder(cfg)
		if embedder == nil {
			return fmt.Errorf("OPENAI_API_KEY environment variable is not set")
		}

		ctx := cmd.Context()
		database, err := openDatabase(ctx, cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		store := research.NewClauseStore(database)
		index, err := research.NewIndex(store, embedder)
		if err != nil {
			return err
		}
		if err := index.Load(cfg.DataDir); err != nil {
			return fmt.Errorf("loading clause index (run `lexdraft research index` first): %w", err)
		}

		results, err := index.Search(ctx, strings.Join(args, " "), researchJurisdiction, researchLimit)
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Println("No matching clauses.")
			return nil
		}
		for _, r := range results {
			fmt.Printf("%.3f  %s", r.Similarity, r.Clause.Title)
			if r.Clause.Jurisdiction != "" {
				fmt.Printf("  [%s]", r.Clause.Jurisdiction)
			}
			fmt.Println()
			if verbose {
				fmt.Println(r.Clause.Body)
				fmt.Println()
			}
		}
		return nil
	},
}

func init() {
	researchSearchCmd.Flags().IntVar(&researchLimit, "limit", 5, "maximum number of results")
	researchSearchCmd.Flags().StringVar(&researchJurisdiction, "jurisdiction", "", "restrict results to a jurisdiction")
	researchCmd.AddCommand(researchLoadCmd)
	researchCmd.AddCommand(researchIndexCmd)
	researchCmd.AddCommand(researchSearchCmd)
	rootCmd.AddCommand(researchCmd)
}
