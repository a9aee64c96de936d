package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/skovsen/D2D_CollectLogic/internal/judge"
	"github.com/skovsen/D2D_CollectLogic/internal/store"
)

func (a *app) openStore(cmd *cobra.Command, kind, dbPath string) (store.Store, error) {
	if !cmd.Flags().Changed("store") {
		kind = a.cfg.Store.Kind
	}
	if !cmd.Flags().Changed("db-path") {
		dbPath = a.cfg.Store.Path
	}
	s, err := store.NewStore(kind, dbPath)
	if err != nil {
		return nil, err
	}
	if err := s.Init(cmd.Context()); err != nil {
		_ = store.CloseIfSupported(s)
		return nil, err
	}
	return s, nil
}

func (a *app) judgeCmd() *cobra.Command {
	var storeKind, dbPath string

	cmd := &cobra.Command{
		Use:   "judge [input-dir] [output-dir]",
		Short: "Score every output in a directory against the inputs of the same name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore(cmd, storeKind, dbPath)
			if err != nil {
				return err
			}
			defer func() {
				_ = store.CloseIfSupported(s)
			}()

			j := judge.New(s, a.logger, a.evaluator())
			sum, err := j.Run(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "run=%s cases=%d failures=%d total=%s\n",
				sum.RunID, sum.Cases, sum.Failures, humanize.Comma(sum.TotalScore))
			return nil
		},
	}

	cmd.Flags().StringVar(&storeKind, "store", "memory", "store backend: memory|sqlite")
	cmd.Flags().StringVar(&dbPath, "db-path", "collect.db", "sqlite database path")
	return cmd
}

func (a *app) runsCmd() *cobra.Command {
	var storeKind, dbPath string

	cmd := &cobra.Command{
		Use:   "runs [run-id]",
		Short: "List judge runs, or the cases of one run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore(cmd, storeKind, dbPath)
			if err != nil {
				return err
			}
			defer func() {
				_ = store.CloseIfSupported(s)
			}()

			if len(args) == 0 {
				runs, err := s.Runs(cmd.Context())
				if err != nil {
					return err
				}
				for _, r := range runs {
					fmt.Fprintf(a.stdout, "%s %s cases=%d failures=%d total=%s\n",
						r.RunID, humanize.Time(r.StartedAt), r.Cases, r.Failures, humanize.Comma(r.TotalScore))
				}
				return nil
			}

			records, ok, err := s.ListRun(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("run not found: %s", args[0])
			}
			for _, r := range records {
				fmt.Fprintf(a.stdout, "%s score=%s outcome=%s turns=%d", r.Case, humanize.Comma(r.Score), r.Outcome, r.Turns)
				if r.Err != "" {
					fmt.Fprintf(a.stdout, " err=%q", r.Err)
				}
				fmt.Fprintln(a.stdout)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&storeKind, "store", "memory", "store backend: memory|sqlite")
	cmd.Flags().StringVar(&dbPath, "db-path", "collect.db", "sqlite database path")
	return cmd
}
