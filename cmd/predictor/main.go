package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"stock-predictor/internal/screener"
	"stock-predictor/internal/store"
)

// Exit codes.
const (
	exitOK        = 0
	exitError     = 1
	exitNoResults = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	os.Exit(exitCode(err))
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, screener.ErrNothingAnalyzed):
		return exitNoResults
	default:
		fmt.Fprintln(os.Stderr, "Error:", err)
		return exitError
	}
}

// cli carries the state resolved by the root command's pre-run hook.
type cli struct {
	configPath string
	cfg        *store.Config
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "predictor",
		Short:         "Score stocks from price history, statements and news",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initializeSystem(); err != nil {
				return err
			}
			cfg, err := loadConfig(cmd.Context(), c.configPath)
			if err != nil {
				return err
			}
			c.cfg = cfg
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			shutdownSystem(context.Background())
		},
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", "config.yaml", "path to config file")

	root.AddCommand(
		newAnalyzeCmd(c),
		newScreenCmd(c),
		newCatalogCmd(c),
		newServeCmd(c),
		newWatchCmd(c),
	)
	return root
}
