package collectlogic

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	orb "github.com/paulmach/orb"
)

// ErrGenerationExhausted is returned when a category could not be placed
// within the generator's retry budget.
var ErrGenerationExhausted = errors.New("generation retry budget exhausted")

// BurnCount is the number of Burn points in every generated scenario.
const BurnCount = 100

// pcgStream is the second PCG seed word. It is fixed so a seed alone
// decides the scenario.
const pcgStream = 0x636f6c6c656374

// Sampling ranges (inclusive on integer draws) and quadrant thresholds.
const (
	minClusters  = 5
	maxClusters  = 10
	minCenter    = 200_000
	maxCenter    = 800_000
	minSpread    = 30_000
	maxSpread    = 90_000
	quadrantLow  = 400_000
	quadrantHigh = 600_000
	fieldEdge    = MaxCoord + 1
)

// quadrants are the four corner regions a Burn batch has to reach.
// Points between the two thresholds on an axis belong to none of them.
var quadrants = [4]orb.Bound{
	{Min: orb.Point{0, 0}, Max: orb.Point{quadrantLow, quadrantLow}},
	{Min: orb.Point{0, quadrantHigh}, Max: orb.Point{quadrantLow, fieldEdge}},
	{Min: orb.Point{quadrantHigh, 0}, Max: orb.Point{fieldEdge, quadrantLow}},
	{Min: orb.Point{quadrantHigh, quadrantHigh}, Max: orb.Point{fieldEdge, fieldEdge}},
}

// GeneratorOptions bounds the rejection loops of the generator.
type GeneratorOptions struct {
	// MaxBatches caps how often a category may restart with fresh clusters.
	MaxBatches int
	// MaxDraws caps the point draws within one batch before it is abandoned.
	MaxDraws int
}

// DefaultGeneratorOptions never trigger on real seeds.
var DefaultGeneratorOptions = GeneratorOptions{
	MaxBatches: 10_000,
	MaxDraws:   1_000_000,
}

// Generator builds scenarios from seeds.
type Generator struct {
	Options GeneratorOptions
}

// Generate builds the scenario for seed with the default options.
func Generate(seed uint64) (Scenario, error) {
	return Generator{Options: DefaultGeneratorOptions}.Generate(seed)
}

// Generate builds the scenario for seed. The same seed and options always
// give the same scenario.
//
// Draw order: the recycle count (types 0 and 2 only), then one batch per
// category in Burn, NonBurn, Recycle order. See sampleCategory for the order
// within a batch.
func (g Generator) Generate(seed uint64) (Scenario, error) {
	rng := rand.New(rand.NewPCG(seed, pcgStream))

	s := Scenario{Burn: BurnCount}
	switch seed % 3 {
	case 0:
		s.Recycle = 10 + rng.IntN(91)
	case 1:
		s.NonBurn = 100
	case 2:
		s.NonBurn = 100
		s.Recycle = 1 + rng.IntN(100)
	}

	requests := []categoryRequest{
		{count: s.Burn, category: Burn, quadrants: true},
		{count: s.NonBurn, category: NonBurn},
		{count: s.Recycle, category: Recycle},
	}

	var placed []Garbage
	s.Garbage = make([]Garbage, 0, s.Burn+s.NonBurn+s.Recycle)
	for _, req := range requests {
		batch, next, err := g.sampleCategory(rng, req, placed)
		if err != nil {
			return Scenario{}, fmt.Errorf("seed %d: %w", seed, err)
		}
		placed = next
		s.Garbage = append(s.Garbage, batch...)
	}
	return s, nil
}

type categoryRequest struct {
	count     int
	category  Category
	quadrants bool
}

type cluster struct {
	weight, cx, cy, sx, sy, theta float64
}

func drawClusters(rng *rand.Rand) []cluster {
	n := minClusters + rng.IntN(maxClusters-minClusters+1)
	cls := make([]cluster, n)
	for i := range cls {
		cls[i] = cluster{
			weight: rng.Float64(),
			cx:     float64(minCenter + rng.IntN(maxCenter-minCenter+1)),
			cy:     float64(minCenter + rng.IntN(maxCenter-minCenter+1)),
			sx:     float64(minSpread + rng.IntN(maxSpread-minSpread+1)),
			sy:     float64(minSpread + rng.IntN(maxSpread-minSpread+1)),
			theta:  rng.Float64() * math.Pi,
		}
	}
	return cls
}

// pick selects a cluster with probability proportional to its weight.
func pick(rng *rand.Rand, cls []cluster, weightSum float64) cluster {
	r := rng.Float64() * weightSum
	idx := 0
	for idx < len(cls)-1 && r >= cls[idx].weight {
		r -= cls[idx].weight
		idx++
	}
	return cls[idx]
}

func (c cluster) sample(rng *rand.Rand) (int, int) {
	dx := rng.NormFloat64() * c.sx
	dy := rng.NormFloat64() * c.sy
	sin, cos := math.Sincos(c.theta)
	x := math.Round(c.cx + cos*dx - sin*dy)
	y := math.Round(c.cy + sin*dx + cos*dy)
	return int(x), int(y)
}

// sampleCategory places req.count points of one category. placed holds every
// point accepted by earlier categories; the returned slice extends it with
// the new batch.
//
// Per batch: the cluster count, then per cluster weight, cx, cy, sx, sy and
// theta. Per draw: the cluster threshold, then the x and y offsets.
func (g Generator) sampleCategory(rng *rand.Rand, req categoryRequest, placed []Garbage) ([]Garbage, []Garbage, error) {
	for attempt := 0; attempt < g.Options.MaxBatches; attempt++ {
		cls := drawClusters(rng)
		var weightSum float64
		for _, c := range cls {
			weightSum += c.weight
		}

		batch := make([]Garbage, 0, req.count)
		for draws := 0; len(batch) < req.count && draws < g.Options.MaxDraws; draws++ {
			x, y := pick(rng, cls, weightSum).sample(rng)
			if !inField(x, y) || !spaced(x, y, placed) || !spaced(x, y, batch) {
				continue
			}
			batch = append(batch, Garbage{X: x, Y: y, Category: req.category})
		}
		if len(batch) < req.count {
			continue
		}
		if req.quadrants && !coversQuadrants(batch) {
			continue
		}

		next := make([]Garbage, 0, len(placed)+len(batch))
		next = append(next, placed...)
		next = append(next, batch...)
		return batch, next, nil
	}
	return nil, placed, fmt.Errorf("%w: %s after %d batches", ErrGenerationExhausted, req.category, g.Options.MaxBatches)
}

func spaced(x, y int, others []Garbage) bool {
	for _, o := range others {
		if distSq(x, y, o.X, o.Y) < MinSpacingSq {
			return false
		}
	}
	return true
}

func quadrantOf(g Garbage) (int, bool) {
	p := g.Point()
	for i, q := range quadrants {
		if q.Contains(p) {
			return i, true
		}
	}
	return 0, false
}

func coversQuadrants(batch []Garbage) bool {
	var hit [len(quadrants)]bool
	for _, g := range batch {
		if i, ok := quadrantOf(g); ok {
			hit[i] = true
		}
	}
	for _, h := range hit {
		if !h {
			return false
		}
	}
	return true
}
