package collectlogic

import (
	orb "github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// triangle is one half of the area an agent's segment sweeps in a turn.
type triangle orb.Ring

// sweep returns the two triangles approximating the quadrilateral covered
// when segment prev moves to cur.
func sweep(prev, cur Segment) [2]triangle {
	return [2]triangle{
		{prev.P, prev.Q, cur.P},
		{cur.P, prev.Q, cur.Q},
	}
}

// cross is the orientation of p relative to the directed line a->b.
func cross(a, b, p orb.Point) float64 {
	return (b[0]-a[0])*(p[1]-a[1]) - (b[1]-a[1])*(p[0]-a[0])
}

// contains reports whether p lies inside t or on its boundary, using the
// inclusive same-sign test on all three edges. A zero-area triangle therefore
// contains its whole supporting line, and a single point contains the plane.
func (t triangle) contains(p orb.Point) bool {
	a, b, c := t[0], t[1], t[2]
	area := cross(a, b, c)
	if area != 0 && !orb.Ring(t).Bound().Contains(p) {
		return false
	}
	ab := cross(a, b, p)
	bc := cross(b, c, p)
	ca := cross(c, a, p)
	return (ab >= 0 && bc >= 0 && ca >= 0) || (ab <= 0 && bc <= 0 && ca <= 0)
}

// travel is the time an agent needs to move from prev to cur.
func travel(prev, cur Segment) float64 {
	return planar.Distance(prev.P, cur.P) + planar.Distance(prev.Q, cur.Q)
}
