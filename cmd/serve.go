package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/lexdraft/lexdraft/internal/audit"
	"github.com/lexdraft/lexdraft/internal/document"
	"github.com/lexdraft/lexdraft/internal/export"
	"github.com/lexdraft/lexdraft/internal/research"
	"github.com/lexdraft/lexdraft/internal/server"
	"github.com/lexdraft/lexdraft/internal/signature"
	"github.com/lexdraft/lexdraft/internal/templates"
)

var serveAllowAll bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the lexdraft API server",
	Long:  `Starts the REST API for template management, document generation, export, e-signature requests and clause research.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		database, err := openDatabase(ctx, cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		provider, err := createProvider(cfg)
		if err != nil {
			return fmt.Errorf("creating LLM provider: %w", err)
		}

		templateStore := templates.NewStore(database)
		documentStore := document.NewStore(database)
		auditStore := audit.NewStore(database)
		enhancer := document.NewEnhancer(provider, cfg.Model)
		gen := document.NewGenerator(templateStore, documentStore, enhancer, auditStore, cfg.Jurisdiction)

		var signatureClient *signature.Client
		if cfg.Signature.BaseURL != "" {
			signatureClient = signature.NewClient(cfg.Signature.BaseURL, cfg.Signature.CallbackURL)
		}

		clauseStore := research.NewClauseStore(database)
		var clauseIndex *research.Index
		if embedder := createEmbedder(cfg); embedder != nil {
			clauseIndex, err = research.NewIndex(clauseStore, embedder)
			if err != nil {
				return fmt.Errorf("creating clause index: %w", err)
			}
			if err := clauseIndex.Load(cfg.DataDir); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not load clause index: %v\n", err)
				fmt.Fprintf(os.Stderr, "Clause search will be empty. Run `lexdraft research index` first.\n")
			}
		}

		srv := server.New(server.Config{
			Port:     cfg.Port,
			PageSize: export.PageSize(cfg.PageSize),
			AllowAll: serveAllowAll,
		}, server.Deps{
			DB:              database,
			Templates:       templateStore,
			Documents:       documentStore,
			Generator:       gen,
			Audit:           auditStore,
			Signatures:      signature.NewStore(database),
			SignatureClient: signatureClient,
			Clauses:         clauseStore,
			ClauseIndex:     clauseIndex,
		})

		errCh := make(chan error, 1)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return err
		case <-stop:
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&serveAllowAll, "allow-all-origins", false, "allow all CORS origins (dev mode)")
	rootCmd.AddCommand(serveCmd)
}
