package layout

import (
	"math"
	"time"

	"github.com/kingrea/stackhero/internal/catalog"
	"github.com/kingrea/stackhero/internal/phase"
)

// RoutePulse is the length of one ROUTES emphasis loop.
const RoutePulse = 2 * time.Second

// Route is a quadratic curve between two neighbouring modules' chaos boxes.
type Route struct {
	FromID  string
	ToID    string
	Start   Point
	Control Point
	End     Point
}

// Point samples the curve at t in [0,1].
func (r Route) Point(t float64) Point {
	t = clamp01(t)
	u := 1 - t
	return Point{
		X: u*u*r.Start.X + 2*u*t*r.Control.X + t*t*r.End.X,
		Y: u*u*r.Start.Y + 2*u*t*r.Control.Y + t*t*r.End.Y,
	}
}

// Sample returns n+1 evenly spaced points over the first `length` fraction
// of the curve.
func (r Route) Sample(n int, length float64) []Point {
	if n < 1 {
		n = 1
	}
	length = clamp01(length)
	out := make([]Point, 0, n+1)
	for i := 0; i <= n; i++ {
		out = append(out, r.Point(length*float64(i)/float64(n)))
	}
	return out
}

// Routes links each module to the next one (wrapping around) through the
// anchor. Routes are only drawn in CHAOS and ROUTES; STACK yields nil.
func (g Geometry) Routes(modules []catalog.Module, p phase.Phase) []Route {
	if !p.ShowsRoutes() || len(modules) == 0 {
		return nil
	}
	half := g.ChaosSize / 2
	out := make([]Route, len(modules))
	for i, m := range modules {
		next := modules[(i+1)%len(modules)]
		out[i] = Route{
			FromID:  m.ID,
			ToID:    next.ID,
			Start:   Point{X: m.ChaosX + half, Y: m.ChaosY + half},
			Control: g.Anchor,
			End:     Point{X: next.ChaosX + half, Y: next.ChaosY + half},
		}
	}
	return out
}

// Emphasis is the visual weight of the routes at one instant.
type Emphasis struct {
	// Length is the drawn fraction of each path.
	Length      float64
	Opacity     float64
	StrokeWidth float64
}

// Visible reports whether anything should be drawn.
func (e Emphasis) Visible() bool {
	return e.Length > 0 && e.Opacity > 0
}

// EmphasisAt returns route emphasis elapsed into phase p. ROUTES pulses on a
// RoutePulse loop; CHAOS settles into a faint static hint.
func EmphasisAt(p phase.Phase, elapsed time.Duration) Emphasis {
	if elapsed < 0 {
		elapsed = 0
	}
	switch p {
	case phase.Routes:
		t := float64(elapsed%RoutePulse) / float64(RoutePulse)
		return Emphasis{
			Length:      t,
			Opacity:     keyframes(t, 0, 0.6, 0.2),
			StrokeWidth: keyframes(t, 0.5, 2, 0.5),
		}
	case phase.Chaos:
		t := clamp01(float64(elapsed) / float64(RoutePulse))
		return Emphasis{
			Length:      1,
			Opacity:     keyframes(t, 0.1, 0.05),
			StrokeWidth: 0.1,
		}
	}
	return Emphasis{}
}

// keyframes interpolates linearly between evenly spaced values.
func keyframes(t float64, values ...float64) float64 {
	switch len(values) {
	case 0:
		return 0
	case 1:
		return values[0]
	}
	t = clamp01(t)
	pos := t * float64(len(values)-1)
	i := int(math.Floor(pos))
	if i >= len(values)-1 {
		return values[len(values)-1]
	}
	frac := pos - float64(i)
	return values[i] + (values[i+1]-values[i])*frac
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
