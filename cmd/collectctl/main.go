package main

import (
	"context"
	"io"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	collect "github.com/skovsen/D2D_CollectLogic"
	"github.com/skovsen/D2D_CollectLogic/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// app holds what every sub-command shares once flags are parsed.
type app struct {
	cfgPath  string
	logLevel string

	cfg    config.Config
	logger *log.Logger
	stdout io.Writer
	stderr io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	rootCmd := &cobra.Command{
		Use:           "collectctl",
		Short:         "Generate collection scenarios and score two-agent sweep paths",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.PersistentFlags().StringVar(&a.cfgPath, "config", "", "config file (default collect.yaml if present)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug|info|warn|error")

	rootCmd.AddCommand(a.genCmd())
	rootCmd.AddCommand(a.scoreCmd())
	rootCmd.AddCommand(a.maxTurnCmd())
	rootCmd.AddCommand(a.judgeCmd())
	rootCmd.AddCommand(a.runsCmd())
	rootCmd.AddCommand(a.serveCmd())
	rootCmd.AddCommand(a.schemaCmd())
	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = log.NewWithOptions(a.stderr, log.Options{
		Level:           level,
		Prefix:          "collectctl",
		ReportTimestamp: true,
	})
	return nil
}

func (a *app) generator() collect.Generator {
	return collect.Generator{Options: a.cfg.GeneratorOptions()}
}

func (a *app) evaluator() collect.Evaluator {
	return collect.Evaluator{Canvas: a.cfg.CanvasSize()}
}
