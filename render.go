package collectlogic

import (
	"bytes"
	"math"
	"strconv"

	svg "github.com/ajstarks/svgo"
	orb "github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Canvas is the pixel size of the diagram.
type Canvas struct {
	Width, Height int
}

// DefaultCanvas is 800x800.
var DefaultCanvas = Canvas{Width: 800, Height: 800}

// segment colours, agent A first
var agentColors = [...]string{"#880000", "#000088"}

// project maps field coordinates to pixels, flipping the y axis. svgo
// takes integer coordinates, so each point is rounded half away from zero
// to the nearest pixel and may sit up to half a pixel off its exact spot.
func (c Canvas) project(p orb.Point) (int, int) {
	scale := float64(c.Width) / 1_000_000
	x := math.Round(p[0] * scale)
	y := math.Round(float64(c.Height) - p[1]*scale)
	return int(x), int(y)
}

// RenderSVG draws the remaining points and each agent's final segment.
func RenderSVG(remaining []Garbage, final Frame, c Canvas) string {
	var buf bytes.Buffer
	doc := svg.New(&buf)
	doc.Start(c.Width, c.Height,
		`id="vis"`,
		`viewBox="0 0 `+strconv.Itoa(c.Width)+` `+strconv.Itoa(c.Height)+`"`,
		`style="background-color:white"`,
	)
	doc.Style("text/css", "text{font-size:8px;text-anchor:middle;dominant-baseline:central}")

	for _, g := range remaining {
		x, y := c.project(g.Point())
		doc.Circle(x, y, 2, `fill="`+g.Category.Color()+`"`)
	}
	for _, a := range Agents {
		seg := final.Segment(a)
		x1, y1 := c.project(seg.P)
		x2, y2 := c.project(seg.Q)
		doc.Line(x1, y1, x2, y2, `stroke="`+agentColors[a]+`"`)
	}
	doc.End()
	return buf.String()
}

// Frames replays path once and returns one diagram per turn, starting with
// the initial frame.
func Frames(s Scenario, path AgentPath, c Canvas) []string {
	if len(path.Frames) == 0 {
		return nil
	}
	r := newReplayer(s, path)
	out := make([]string, 0, path.Q()+1)
	for {
		res := r.result()
		out = append(out, RenderSVG(res.Remaining, res.Final, c))
		if r.turn == path.Q() {
			return out
		}
		r.step()
	}
}

// FeatureCollection exports the same picture as GeoJSON in field coordinates.
func FeatureCollection(remaining []Garbage, final Frame) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, g := range remaining {
		f := geojson.NewFeature(g.Point())
		f.Properties["category"] = g.Category.String()
		f.Properties["fill"] = g.Category.Color()
		fc.Append(f)
	}
	for _, a := range Agents {
		f := geojson.NewFeature(final.Segment(a).LineString())
		f.Properties["agent"] = a.String()
		f.Properties["stroke"] = agentColors[a]
		fc.Append(f)
	}
	return fc
}

// ScenarioFeatures exports every point of s as GeoJSON.
func ScenarioFeatures(s Scenario) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, c := range Categories {
		var mp orb.MultiPoint
		for _, g := range s.Garbage {
			if g.Category == c {
				mp = append(mp, g.Point())
			}
		}
		f := geojson.NewFeature(mp)
		f.Properties["category"] = c.String()
		f.Properties["count"] = s.Count(c)
		fc.Append(f)
	}
	return fc
}
