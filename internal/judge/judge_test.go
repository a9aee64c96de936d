package judge

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	collect "github.com/skovsen/D2D_CollectLogic"
	"github.com/skovsen/D2D_CollectLogic/internal/store"
)

const sweepAll = "0 0 0 1000000 0 0 0 1000000\n" +
	"1000000 0 1000000 1000000 1000000 0 1000000 1000000\n"

func writeFile(t *testing.T, path, text string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestJudgeRun(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	for _, seed := range []uint64{0, 1, 2} {
		s, err := collect.Generate(seed)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		writeFile(t, filepath.Join(in, fmt.Sprintf("%04d.txt", seed)), s.String())
	}
	writeFile(t, filepath.Join(out, "0000.txt"), sweepAll)
	writeFile(t, filepath.Join(out, "0001.txt"), "1 2 3")

	var logs bytes.Buffer
	st := store.NewMemoryStore()
	j := New(st, log.New(&logs), collect.Evaluator{Canvas: collect.DefaultCanvas})
	j.now = func() time.Time { return time.Unix(100, 0) }

	sum, err := j.Run(context.Background(), in, out)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if sum.Cases != 3 || sum.Failures != 2 {
		t.Fatalf("unexpected summary %+v", sum)
	}
	if sum.TotalScore != collect.Score(2_000_000) {
		t.Fatalf("total = %d", sum.TotalScore)
	}

	records, ok, err := st.ListRun(context.Background(), sum.RunID)
	if err != nil || !ok {
		t.Fatalf("list: ok=%v err=%v", ok, err)
	}
	if records[0].Outcome != "success" || records[0].Turns != 1 {
		t.Fatalf("case 0 = %+v", records[0])
	}
	if !strings.Contains(records[1].Err, "malformed path") {
		t.Fatalf("case 1 err = %q", records[1].Err)
	}
	if records[2].Err != "missing output" || records[2].Seed != 2 {
		t.Fatalf("case 2 = %+v", records[2])
	}
	if !strings.Contains(logs.String(), "case failed") {
		t.Fatalf("missing failure log: %s", logs.String())
	}
}

func TestJudgeRejectsEmptyInputDir(t *testing.T) {
	j := New(store.NewMemoryStore(), log.New(&bytes.Buffer{}), collect.Evaluator{Canvas: collect.DefaultCanvas})
	if _, err := j.Run(context.Background(), t.TempDir(), t.TempDir()); err == nil {
		t.Fatal("expected error for empty input dir")
	}
}

func TestJudgeStopsOnCancel(t *testing.T) {
	in := t.TempDir()
	s, err := collect.Generate(3)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	writeFile(t, filepath.Join(in, "0003.txt"), s.String())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	j := New(store.NewMemoryStore(), log.New(&bytes.Buffer{}), collect.Evaluator{Canvas: collect.DefaultCanvas})
	if _, err := j.Run(ctx, in, t.TempDir()); err == nil {
		t.Fatal("expected context error")
	}
}
