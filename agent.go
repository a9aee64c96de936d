package collectlogic

import (
	"fmt"
	"strings"

	orb "github.com/paulmach/orb"
)

// Agent is one of the two sweepers moving through the field.
type Agent int

// The two agents of a path. AgentA owns the first four integers of a frame.
const (
	AgentA Agent = iota
	AgentB
)

// Agents lists every agent in frame order.
var Agents = [...]Agent{AgentA, AgentB}

func (a Agent) String() string {
	switch a {
	case AgentA:
		return "A"
	case AgentB:
		return "B"
	default:
		return fmt.Sprintf("Agent(%d)", int(a))
	}
}

// Segment is the pair of endpoints an agent holds at one frame.
type Segment struct {
	P, Q orb.Point
}

// LineString returns the segment as an orb geometry
func (s Segment) LineString() orb.LineString {
	return orb.LineString{s.P, s.Q}
}

// Frame is one positional snapshot: P, P' of agent A followed by R, R' of agent B.
type Frame [8]int

// Segment returns the endpoints held by agent a.
func (f Frame) Segment(a Agent) Segment {
	o := 4 * int(a)
	return Segment{
		P: orb.Point{float64(f[o]), float64(f[o+1])},
		Q: orb.Point{float64(f[o+2]), float64(f[o+3])},
	}
}

// AgentPath is the initial frame followed by one frame per step.
type AgentPath struct {
	Frames []Frame
}

// Q returns the number of steps in the path.
func (p AgentPath) Q() int {
	if len(p.Frames) == 0 {
		return 0
	}
	return len(p.Frames) - 1
}

// MaxTurn returns the last turn a path can be replayed to.
func MaxTurn(p AgentPath) int {
	return p.Q()
}

func (p AgentPath) String() string {
	var b strings.Builder
	for _, f := range p.Frames {
		for i, v := range f {
			if i > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%d", v)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
