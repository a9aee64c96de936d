package main

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func (a *app) genCmd() *cobra.Command {
	var (
		seed    uint64
		count   int
		dir     string
		zipPath string
	)

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate scenarios for consecutive seeds",
		Long: "Generate scenarios for seeds seed..seed+count-1. A single scenario goes to stdout\n" +
			"unless --dir or --zip is given; files are named after the seed, e.g. 0007.txt.",
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if count <= 0 {
				return fmt.Errorf("count must be positive, got %d", count)
			}
			if dir == "" && zipPath == "" && count > 1 {
				return fmt.Errorf("--dir or --zip is required for more than one scenario")
			}
			return a.runGen(seed, count, dir, zipPath)
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", 0, "first seed")
	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of scenarios")
	cmd.Flags().StringVar(&dir, "dir", "", "directory to write NNNN.txt files into")
	cmd.Flags().StringVar(&zipPath, "zip", "", "zip archive to write NNNN.txt entries into")
	return cmd
}

func (a *app) runGen(seed uint64, count int, dir, zipPath string) error {
	gen := a.generator()

	var archive *zip.Writer
	if zipPath != "" {
		f, err := os.Create(zipPath)
		if err != nil {
			return err
		}
		defer f.Close()
		archive = zip.NewWriter(f)
	}
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	for i := 0; i < count; i++ {
		s := seed + uint64(i)
		scenario, err := gen.Generate(s)
		if err != nil {
			return err
		}
		name := fmt.Sprintf("%04d.txt", s)
		text := scenario.String()
		a.logger.Debug("generated", "seed", s, "burn", scenario.Burn, "nonburn", scenario.NonBurn, "recycle", scenario.Recycle)

		if dir == "" && archive == nil {
			fmt.Fprint(a.stdout, text)
			continue
		}
		if dir != "" {
			if err := os.WriteFile(filepath.Join(dir, name), []byte(text), 0o644); err != nil {
				return err
			}
		}
		if archive != nil {
			w, err := archive.Create(name)
			if err != nil {
				return err
			}
			if _, err := w.Write([]byte(text)); err != nil {
				return err
			}
		}
	}

	if archive != nil {
		if err := archive.Close(); err != nil {
			return fmt.Errorf("finish %s: %w", zipPath, err)
		}
	}
	a.logger.Info("generation finished", "first", seed, "count", count)
	return nil
}
