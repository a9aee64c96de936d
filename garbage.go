package collectlogic

import (
	"errors"
	"fmt"
	"strings"

	orb "github.com/paulmach/orb"
)

// Field limits shared by the generator and the validator.
const (
	MinCoord = 1
	MaxCoord = 999_999

	// MinSpacingSq is the smallest allowed squared distance between two points.
	MinSpacingSq int64 = 1_000_000
)

// ErrInvalidScenario is returned when a scenario breaks a field invariant.
var ErrInvalidScenario = errors.New("invalid scenario")

// Category classifies a garbage point and decides who may collect it.
type Category int

// The garbage categories, in input block order.
const (
	Burn Category = iota
	NonBurn
	Recycle
)

// Categories lists every category in input block order.
var Categories = [...]Category{Burn, NonBurn, Recycle}

func (c Category) String() string {
	switch c {
	case Burn:
		return "burn"
	case NonBurn:
		return "nonburn"
	case Recycle:
		return "recycle"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

// Collector reports which agent sweeps up c. Recycle has no collector.
func (c Category) Collector() (Agent, bool) {
	switch c {
	case Burn:
		return AgentA, true
	case NonBurn:
		return AgentB, true
	case Recycle:
		return 0, false
	default:
		panic(fmt.Sprintf("collectlogic: unknown category %d", int(c)))
	}
}

// Color is the diagram fill for c.
func (c Category) Color() string {
	switch c {
	case Burn:
		return "#FF0000"
	case NonBurn:
		return "#0000FF"
	case Recycle:
		return "#00AA00"
	default:
		panic(fmt.Sprintf("collectlogic: unknown category %d", int(c)))
	}
}

// Garbage is a single point in the field
type Garbage struct {
	X, Y     int
	Category Category
}

// Point returns the location as an orb point.
func (g Garbage) Point() orb.Point {
	return orb.Point{float64(g.X), float64(g.Y)}
}

func (g Garbage) key() [2]int {
	return [2]int{g.X, g.Y}
}

func distSq(ax, ay, bx, by int) int64 {
	dx := int64(ax - bx)
	dy := int64(ay - by)
	return dx*dx + dy*dy
}

func inField(x, y int) bool {
	return x >= MinCoord && x <= MaxCoord && y >= MinCoord && y <= MaxCoord
}

// Scenario is a full test case: the counts per category and the points,
// Burn block first, then NonBurn, then Recycle.
type Scenario struct {
	Burn, NonBurn, Recycle int
	Garbage                []Garbage
}

// Count returns the number of points of category c.
func (s Scenario) Count(c Category) int {
	switch c {
	case Burn:
		return s.Burn
	case NonBurn:
		return s.NonBurn
	case Recycle:
		return s.Recycle
	default:
		panic(fmt.Sprintf("collectlogic: unknown category %d", int(c)))
	}
}

// Validate checks the block layout, the coordinate range and the minimum spacing.
func (s Scenario) Validate() error {
	if s.Burn < 0 || s.NonBurn < 0 || s.Recycle < 0 {
		return fmt.Errorf("%w: negative count %d %d %d", ErrInvalidScenario, s.Burn, s.NonBurn, s.Recycle)
	}
	if n := s.Burn + s.NonBurn + s.Recycle; n != len(s.Garbage) {
		return fmt.Errorf("%w: counts sum to %d but %d points given", ErrInvalidScenario, n, len(s.Garbage))
	}
	for i, g := range s.Garbage {
		if want := s.categoryAt(i); g.Category != want {
			return fmt.Errorf("%w: point %d is %s, want %s", ErrInvalidScenario, i, g.Category, want)
		}
		if !inField(g.X, g.Y) {
			return fmt.Errorf("%w: point %d (%d, %d) outside [%d, %d]", ErrInvalidScenario, i, g.X, g.Y, MinCoord, MaxCoord)
		}
		for j := 0; j < i; j++ {
			h := s.Garbage[j]
			if distSq(g.X, g.Y, h.X, h.Y) < MinSpacingSq {
				return fmt.Errorf("%w: points %d and %d closer than 1000", ErrInvalidScenario, j, i)
			}
		}
	}
	return nil
}

func (s Scenario) categoryAt(i int) Category {
	switch {
	case i < s.Burn:
		return Burn
	case i < s.Burn+s.NonBurn:
		return NonBurn
	default:
		return Recycle
	}
}

func (s Scenario) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d %d %d\n", s.Burn, s.NonBurn, s.Recycle)
	for _, g := range s.Garbage {
		fmt.Fprintf(&b, "%d %d\n", g.X, g.Y)
	}
	return b.String()
}
