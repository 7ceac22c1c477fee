package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/aryannaik/advocate-directory/internal/client"
	"github.com/aryannaik/advocate-directory/internal/seed"
	"github.com/aryannaik/advocate-directory/internal/server"
	"github.com/aryannaik/advocate-directory/internal/store"
	"github.com/aryannaik/advocate-directory/internal/tui"
)

var (
	verbose   bool
	batchSize int

	cfg    config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "advocates",
	Short: "Advocate directory: seed, serve and browse",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var warnings []string
		cfg, warnings = loadConfig()

		// The TUI owns the terminal.
		if cmd.Name() == "browse" {
			logger = zap.NewNop()
			return nil
		}

		zc := zap.NewProductionConfig()
		if verbose || cfg.LogLevel == "debug" {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logConfig(logger, cfg, warnings)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the advocate API",
	RunE:  runServe,
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the seed roster in concurrent batches",
	RunE:  runSeed,
}

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Search and sort advocates in the terminal",
	RunE:  runBrowse,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	seedCmd.Flags().IntVar(&batchSize, "batch-size", 0, "Records per insert (overrides SEED_BATCH_SIZE)")

	rootCmd.AddCommand(serveCmd, seedCmd, browseCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLoader(st store.Store) *seed.Loader {
	size := cfg.BatchSize
	if batchSize > 0 {
		size = batchSize
	}
	return seed.NewLoader(st, seed.WithBatchSize(size), seed.WithLogger(logger))
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	st, err := store.Open(ctx, cfg.storeConfig(), logger)
	if err != nil {
		return err
	}
	defer st.Close()

	srv := server.New(cfg.Port, st, newLoader(st), logger)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server stopped", zap.Error(err))
			done <- syscall.SIGTERM
		}
	}()

	<-done
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	st, err := store.Open(ctx, cfg.storeConfig(), logger)
	if err != nil {
		return err
	}
	defer st.Close()

	inserted, err := newLoader(st).Load(ctx, seed.Advocates())
	if err != nil {
		return fmt.Errorf("seed advocates: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d advocates into %s store\n", len(inserted), st.Driver())
	return nil
}

func runBrowse(cmd *cobra.Command, args []string) error {
	c := client.NewClient(cfg.APIURL)
	p := tea.NewProgram(tui.New(cmd.Context(), c.FetchAdvocates), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
