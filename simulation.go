package collectlogic

import (
	"fmt"
	"math"
)

// Scoring constants.
const (
	// TimeLimit is the largest total time that still earns a score.
	TimeLimit = 1e8
	// MaxScore is awarded at exactly TimeLimit and for zero elapsed time.
	MaxScore int64 = 1_000_000
)

// Outcome classifies a finished replay.
type Outcome int

// Possible outcomes. Uncollected and Overtime both score zero.
const (
	OutcomeSuccess Outcome = iota
	OutcomeUncollected
	OutcomeOvertime
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeUncollected:
		return "uncollected"
	case OutcomeOvertime:
		return "overtime"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Result is everything a replay produces.
type Result struct {
	Score   int64
	Err     string
	SVG     string
	Outcome Outcome

	// Time is the total elapsed time over the replayed turns.
	Time float64
	// Turn is the number of turns actually replayed.
	Turn int

	RemainingBurn    int
	RemainingNonBurn int
	// Remaining lists the surviving points in scenario order.
	Remaining []Garbage
	// Final is the frame the agents stand on after the last replayed turn.
	Final Frame
}

// Evaluator replays paths and draws the outcome on Canvas.
type Evaluator struct {
	Canvas Canvas
}

// Evaluate replays path against s up to turn with the default canvas.
func Evaluate(s Scenario, path AgentPath, turn int) Result {
	return Evaluator{Canvas: DefaultCanvas}.Evaluate(s, path, turn)
}

// Evaluate replays path against s for min(turn, q) turns and scores it.
func (e Evaluator) Evaluate(s Scenario, path AgentPath, turn int) Result {
	res := replay(s, path, turn)
	if len(path.Frames) > 0 {
		res.SVG = RenderSVG(res.Remaining, res.Final, e.Canvas)
	}
	return res
}

// replayer folds a path over a scenario one turn at a time.
type replayer struct {
	s         Scenario
	path      AgentPath
	remaining map[[2]int]Category
	elapsed   float64
	turn      int
}

func newReplayer(s Scenario, path AgentPath) *replayer {
	remaining := make(map[[2]int]Category, len(s.Garbage))
	for _, g := range s.Garbage {
		remaining[g.key()] = g.Category
	}
	return &replayer{s: s, path: path, remaining: remaining}
}

// step replays the next turn. The caller keeps turn below path.Q().
func (r *replayer) step() {
	r.turn++
	prev, cur := r.path.Frames[r.turn-1], r.path.Frames[r.turn]

	var cost float64
	for _, a := range Agents {
		cost = max(cost, travel(prev.Segment(a), cur.Segment(a)))
	}
	r.elapsed += cost

	for _, a := range Agents {
		collect(r.remaining, a, sweep(prev.Segment(a), cur.Segment(a)))
	}
}

// result scores the state after the turns replayed so far; SVG is left empty.
func (r *replayer) result() Result {
	res := Result{Time: r.elapsed, Turn: r.turn}
	if len(r.path.Frames) > 0 {
		res.Final = r.path.Frames[r.turn]
	}
	for _, g := range r.s.Garbage {
		if _, ok := r.remaining[g.key()]; !ok {
			continue
		}
		res.Remaining = append(res.Remaining, g)
		switch g.Category {
		case Burn:
			res.RemainingBurn++
		case NonBurn:
			res.RemainingNonBurn++
		case Recycle:
		}
	}

	res.Outcome, res.Score = classify(res.RemainingBurn, res.RemainingNonBurn, r.elapsed)
	if res.Outcome == OutcomeUncollected {
		res.Err = fmt.Sprintf("uncollected burn=%d nonburn=%d", res.RemainingBurn, res.RemainingNonBurn)
	}
	return res
}

// replay runs min(turn, q) turns; it fills every Result field but SVG.
func replay(s Scenario, path AgentPath, turn int) Result {
	r := newReplayer(s, path)
	for turns := max(0, min(turn, path.Q())); r.turn < turns; {
		r.step()
	}
	return r.result()
}

// collect removes every point agent a is allowed to pick up that lies in
// one of the sweep triangles.
func collect(remaining map[[2]int]Category, a Agent, tris [2]triangle) {
	for key, c := range remaining {
		who, ok := c.Collector()
		if !ok || who != a {
			continue
		}
		g := Garbage{X: key[0], Y: key[1], Category: c}
		if tris[0].contains(g.Point()) || tris[1].contains(g.Point()) {
			delete(remaining, key)
		}
	}
}

func classify(remBurn, remNonBurn int, elapsed float64) (Outcome, int64) {
	switch {
	case remBurn+remNonBurn > 0:
		return OutcomeUncollected, 0
	case elapsed > TimeLimit:
		return OutcomeOvertime, 0
	default:
		return OutcomeSuccess, Score(elapsed)
	}
}

// Score converts the elapsed time of a fully collected replay into points:
// round(1e6 * (1 + log2(time / 1e8))). Zero elapsed time is scored as
// MaxScore instead of the undefined log2(0); times beyond TimeLimit score 0.
func Score(elapsed float64) int64 {
	switch {
	case elapsed <= 0:
		return MaxScore
	case elapsed > TimeLimit:
		return 0
	}
	return int64(math.Round(float64(MaxScore) * (1 + math.Log2(elapsed/TimeLimit))))
}
