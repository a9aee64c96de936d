package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	collect "github.com/skovsen/D2D_CollectLogic"
)

func (a *app) scoreCmd() *cobra.Command {
	var (
		turn      int
		svgPath   string
		geoPath   string
		framesDir string
	)

	cmd := &cobra.Command{
		Use:   "score [input] [output]",
		Short: "Replay an output path against an input scenario and print the score",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario, path, err := readCase(args[0], args[1])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("turn") {
				turn = collect.MaxTurn(path)
			}
			return a.runScore(scenario, path, turn, svgPath, geoPath, framesDir)
		},
	}

	cmd.Flags().IntVar(&turn, "turn", 0, "replay up to this turn (default: the last)")
	cmd.Flags().StringVar(&svgPath, "svg", "", "write the final diagram to this file")
	cmd.Flags().StringVar(&geoPath, "geojson", "", "write the final state as GeoJSON to this file")
	cmd.Flags().StringVar(&framesDir, "frames", "", "write one SVG per turn into this directory")
	return cmd
}

func (a *app) runScore(scenario collect.Scenario, path collect.AgentPath, turn int, svgPath, geoPath, framesDir string) error {
	e := a.evaluator()
	res := e.Evaluate(scenario, path, turn)

	a.logger.Debug("replayed", "turn", res.Turn, "time", res.Time, "outcome", res.Outcome,
		"burn_left", res.RemainingBurn, "nonburn_left", res.RemainingNonBurn)
	fmt.Fprintf(a.stdout, "Score = %d\n", res.Score)
	if res.Err != "" {
		fmt.Fprintln(a.stderr, res.Err)
	}
	if res.Outcome == collect.OutcomeOvertime {
		a.logger.Warn("time limit exceeded", "time", res.Time, "limit", collect.TimeLimit)
	}

	if svgPath != "" {
		if err := os.WriteFile(svgPath, []byte(res.SVG), 0o644); err != nil {
			return err
		}
	}
	if geoPath != "" {
		data, err := collect.FeatureCollection(res.Remaining, res.Final).MarshalJSON()
		if err != nil {
			return fmt.Errorf("encode geojson: %w", err)
		}
		if err := os.WriteFile(geoPath, data, 0o644); err != nil {
			return err
		}
	}
	if framesDir != "" {
		if err := os.MkdirAll(framesDir, 0o755); err != nil {
			return err
		}
		for t, frame := range collect.Frames(scenario, path, e.Canvas) {
			name := filepath.Join(framesDir, fmt.Sprintf("%05d.svg", t))
			if err := os.WriteFile(name, []byte(frame), 0o644); err != nil {
				return err
			}
		}
		a.logger.Info("frames written", "dir", framesDir, "count", path.Q()+1)
	}
	return nil
}

func (a *app) maxTurnCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "maxturn [output]",
		Short: "Print the number of turns in an output path",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			path, err := collect.ParsePath(string(data))
			if err != nil {
				return err
			}
			fmt.Fprintln(a.stdout, collect.MaxTurn(path))
			return nil
		},
	}
}

func readCase(inputPath, outputPath string) (collect.Scenario, collect.AgentPath, error) {
	in, err := os.ReadFile(inputPath)
	if err != nil {
		return collect.Scenario{}, collect.AgentPath{}, err
	}
	scenario, err := collect.ParseScenario(string(in))
	if err != nil {
		return collect.Scenario{}, collect.AgentPath{}, fmt.Errorf("%s: %w", inputPath, err)
	}
	out, err := os.ReadFile(outputPath)
	if err != nil {
		return collect.Scenario{}, collect.AgentPath{}, err
	}
	path, err := collect.ParsePath(string(out))
	if err != nil {
		return collect.Scenario{}, collect.AgentPath{}, fmt.Errorf("%s: %w", outputPath, err)
	}
	return scenario, path, nil
}
