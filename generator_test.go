package collectlogic

import (
	"errors"
	"math/rand/v2"
	"reflect"
	"testing"
)

func TestGenerateCountsFollowSeedType(t *testing.T) {
	for seed := uint64(0); seed < 9; seed++ {
		s, err := Generate(seed)
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if s.Burn != BurnCount {
			t.Fatalf("seed %d: burn=%d", seed, s.Burn)
		}
		switch seed % 3 {
		case 0:
			if s.NonBurn != 0 || s.Recycle < 10 || s.Recycle > 100 {
				t.Fatalf("seed %d: type 0 counts %d %d", seed, s.NonBurn, s.Recycle)
			}
		case 1:
			if s.NonBurn != 100 || s.Recycle != 0 {
				t.Fatalf("seed %d: type 1 counts %d %d", seed, s.NonBurn, s.Recycle)
			}
		case 2:
			if s.NonBurn != 100 || s.Recycle < 1 || s.Recycle > 100 {
				t.Fatalf("seed %d: type 2 counts %d %d", seed, s.NonBurn, s.Recycle)
			}
		}
		if err := s.Validate(); err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	a, err := Generate(42)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	b, err := Generate(42)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatal("same seed produced different scenarios")
	}

	c, err := Generate(45)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if reflect.DeepEqual(a.Garbage, c.Garbage) {
		t.Fatal("different seeds produced identical points")
	}
}

func TestGenerateBurnCoversQuadrants(t *testing.T) {
	for seed := uint64(10); seed < 16; seed++ {
		s, err := Generate(seed)
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if !coversQuadrants(s.Garbage[:s.Burn]) {
			t.Fatalf("seed %d: burn points miss a quadrant", seed)
		}
	}
}

func TestQuadrantThresholds(t *testing.T) {
	cases := []struct {
		x, y int
		want int
		ok   bool
	}{
		{400_000, 400_000, 0, true},
		{1, 600_000, 1, true},
		{600_000, 1, 2, true},
		{999_999, 999_999, 3, true},
		{400_001, 100, 0, false},
		{500_000, 500_000, 0, false},
		{100, 599_999, 0, false},
	}
	for _, tc := range cases {
		got, ok := quadrantOf(Garbage{X: tc.x, Y: tc.y})
		if ok != tc.ok || (ok && got != tc.want) {
			t.Fatalf("quadrantOf(%d, %d) = %d, %v; want %d, %v", tc.x, tc.y, got, ok, tc.want, tc.ok)
		}
	}
}

func TestSampleCategoryThreadsAccumulator(t *testing.T) {
	placed := []Garbage{
		{X: 500_000, Y: 500_000, Category: Burn},
		{X: 300_000, Y: 700_000, Category: Burn},
	}
	g := Generator{Options: DefaultGeneratorOptions}
	rng := rand.New(rand.NewPCG(7, pcgStream))

	batch, next, err := g.sampleCategory(rng, categoryRequest{count: 50, category: Recycle}, placed)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	if len(batch) != 50 {
		t.Fatalf("batch size = %d", len(batch))
	}
	if len(next) != len(placed)+len(batch) {
		t.Fatalf("accumulator size = %d", len(next))
	}
	if len(placed) != 2 {
		t.Fatal("input accumulator was modified")
	}
	for _, b := range batch {
		if b.Category != Recycle {
			t.Fatalf("unexpected category %s", b.Category)
		}
		if !spaced(b.X, b.Y, placed) {
			t.Fatalf("point (%d, %d) too close to an earlier category", b.X, b.Y)
		}
	}
}

func TestGenerateExhaustsBudget(t *testing.T) {
	g := Generator{Options: GeneratorOptions{MaxBatches: 2, MaxDraws: 10}}
	_, err := g.Generate(1)
	if !errors.Is(err, ErrGenerationExhausted) {
		t.Fatalf("expected exhausted budget, got %v", err)
	}
}

func TestPickFollowsWeights(t *testing.T) {
	cls := []cluster{{weight: 0}, {weight: 1}, {weight: 0}}
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 100; i++ {
		if c := pick(rng, cls, 1); c.weight != 1 {
			t.Fatalf("picked zero-weight cluster %+v", c)
		}
	}
}
