package layout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingrea/stackhero/internal/phase"
)

func TestRoutesLinkNeighboursThroughAnchor(t *testing.T) {
	mods := defaultModules(t)
	routes := DefaultGeometry.Routes(mods, phase.Routes)
	require.Len(t, routes, len(mods))

	first := routes[0]
	assert.Equal(t, "mod-0", first.FromID)
	assert.Equal(t, "mod-1", first.ToID)
	assert.Equal(t, Point{X: 122, Y: 162}, first.Start)
	assert.Equal(t, Point{X: 300, Y: 300}, first.Control)
	assert.Equal(t, Point{X: 462, Y: 132}, first.End)

	last := routes[len(routes)-1]
	assert.Equal(t, "mod-6", last.FromID)
	assert.Equal(t, "mod-0", last.ToID, "routes wrap around")

	assert.Equal(t, routes, DefaultGeometry.Routes(mods, phase.Chaos))
	assert.Nil(t, DefaultGeometry.Routes(mods, phase.Stack))
}

func TestRoutePointEndpoints(t *testing.T) {
	r := Route{Start: Point{0, 0}, Control: Point{50, 100}, End: Point{100, 0}}
	assert.Equal(t, r.Start, r.Point(0))
	assert.Equal(t, r.End, r.Point(1))
	assert.Equal(t, Point{X: 50, Y: 50}, r.Point(0.5))
	assert.Equal(t, r.End, r.Point(3), "t is clamped")

	pts := r.Sample(4, 0.5)
	require.Len(t, pts, 5)
	assert.Equal(t, r.Point(0.5), pts[4])
}

func TestEmphasisRoutesPulse(t *testing.T) {
	start := EmphasisAt(phase.Routes, 0)
	assert.Zero(t, start.Opacity)
	assert.InDelta(t, 0.5, start.StrokeWidth, 1e-9)

	mid := EmphasisAt(phase.Routes, time.Second)
	assert.InDelta(t, 0.6, mid.Opacity, 1e-9)
	assert.InDelta(t, 2, mid.StrokeWidth, 1e-9)
	assert.InDelta(t, 0.5, mid.Length, 1e-9)

	looped := EmphasisAt(phase.Routes, 3*time.Second)
	assert.Equal(t, mid, looped, "the pulse repeats every RoutePulse")
}

func TestEmphasisChaosIsFaintAndStatic(t *testing.T) {
	early := EmphasisAt(phase.Chaos, 0)
	assert.InDelta(t, 0.1, early.Opacity, 1e-9)
	late := EmphasisAt(phase.Chaos, 10*time.Second)
	assert.InDelta(t, 0.05, late.Opacity, 1e-9)
	assert.Equal(t, late, EmphasisAt(phase.Chaos, time.Minute))
	assert.True(t, late.Visible())

	routes := EmphasisAt(phase.Routes, time.Second)
	assert.Greater(t, routes.Opacity, early.Opacity)
	assert.Greater(t, routes.StrokeWidth, early.StrokeWidth)

	assert.False(t, EmphasisAt(phase.Stack, time.Second).Visible())
}

func TestKeyframes(t *testing.T) {
	assert.Zero(t, keyframes(0.5))
	assert.Equal(t, 3.0, keyframes(0.7, 3))
	assert.InDelta(t, 0.3, keyframes(0.25, 0, 0.6, 0.2), 1e-9)
	assert.InDelta(t, 0.2, keyframes(1, 0, 0.6, 0.2), 1e-9)
}
