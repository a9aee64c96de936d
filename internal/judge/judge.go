// Package judge scores a directory of solver outputs against the matching
// inputs and records every case in a store.
package judge

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	collect "github.com/skovsen/D2D_CollectLogic"
	"github.com/skovsen/D2D_CollectLogic/internal/store"
)

type Judge struct {
	Store     store.Store
	Logger    *log.Logger
	Evaluator collect.Evaluator

	now func() time.Time
}

// Summary is what a run adds up to.
type Summary struct {
	RunID      string
	Cases      int
	TotalScore int64
	Failures   int
}

func New(s store.Store, logger *log.Logger, e collect.Evaluator) *Judge {
	return &Judge{Store: s, Logger: logger, Evaluator: e, now: time.Now}
}

// Run scores every *.txt input in inputDir against the output of the same
// name in outputDir. Unreadable or invalid outputs are scored 0 with the
// reason recorded; an unreadable input aborts the run.
func (j *Judge) Run(ctx context.Context, inputDir, outputDir string) (Summary, error) {
	cases, err := filepath.Glob(filepath.Join(inputDir, "*.txt"))
	if err != nil {
		return Summary{}, err
	}
	if len(cases) == 0 {
		return Summary{}, fmt.Errorf("no inputs in %s", inputDir)
	}
	sort.Strings(cases)

	sum := Summary{RunID: uuid.NewString()}
	logger := j.Logger.With("run", sum.RunID)
	logger.Info("judging", "cases", len(cases), "inputs", inputDir, "outputs", outputDir)

	for _, inPath := range cases {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		name := filepath.Base(inPath)
		rec, err := j.judgeCase(inPath, filepath.Join(outputDir, name))
		if err != nil {
			return sum, err
		}
		rec.RunID = sum.RunID
		if err := j.Store.SaveResult(ctx, rec); err != nil {
			return sum, fmt.Errorf("save %s: %w", name, err)
		}

		sum.Cases++
		sum.TotalScore += rec.Score
		if rec.Err != "" {
			sum.Failures++
			logger.Warn("case failed", "case", rec.Case, "err", rec.Err)
			continue
		}
		logger.Debug("case scored", "case", rec.Case, "score", rec.Score, "time", rec.Time, "turns", rec.Turns)
	}
	logger.Info("judged", "cases", sum.Cases, "total", sum.TotalScore, "failures", sum.Failures)
	return sum, nil
}

func (j *Judge) judgeCase(inPath, outPath string) (store.Record, error) {
	name := strings.TrimSuffix(filepath.Base(inPath), filepath.Ext(inPath))
	rec := store.Record{Case: name, CreatedAt: j.now()}
	if seed, err := strconv.ParseUint(name, 10, 64); err == nil {
		rec.Seed = seed
	}

	inText, err := os.ReadFile(inPath)
	if err != nil {
		return rec, err
	}
	scenario, err := collect.ParseScenario(string(inText))
	if err != nil {
		return rec, fmt.Errorf("input %s: %w", inPath, err)
	}

	outText, err := os.ReadFile(outPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			rec.Err = "missing output"
			return rec, nil
		}
		return rec, err
	}
	path, err := collect.ParsePath(string(outText))
	if err != nil {
		rec.Err = err.Error()
		return rec, nil
	}

	res := j.Evaluator.Evaluate(scenario, path, collect.MaxTurn(path))
	rec.Score = res.Score
	rec.Err = res.Err
	rec.Outcome = res.Outcome.String()
	rec.Time = res.Time
	rec.Turns = res.Turn
	return rec, nil
}
