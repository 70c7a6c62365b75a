// Package layout maps a module and the current phase to the transform the
// renderer animates towards. Every function here is pure: the result depends
// only on the geometry, the module's static constants and the phase.
package layout

import (
	"time"

	"github.com/kingrea/stackhero/internal/catalog"
	"github.com/kingrea/stackhero/internal/config"
	"github.com/kingrea/stackhero/internal/phase"
)

// Geometry is the fixed sizing of both layouts in design-space units.
type Geometry struct {
	Canvas      float64
	StackWidth  float64
	StackHeight float64
	StackTop    float64
	StackGap    float64
	StackRadius float64
	ChaosSize   float64
	ChaosRadius float64
	Anchor      Point
	Stagger     time.Duration
}

// DefaultGeometry mirrors the reference 600x600 tile.
var DefaultGeometry = Geometry{
	Canvas:      600,
	StackWidth:  320,
	StackHeight: 48,
	StackTop:    160,
	StackGap:    10,
	StackRadius: 8,
	ChaosSize:   44,
	ChaosRadius: 12,
	Anchor:      Point{X: 300, Y: 300},
	Stagger:     80 * time.Millisecond,
}

// FromConfig converts the configuration geometry and stagger.
func FromConfig(cfg *config.Config) Geometry {
	g := cfg.Geometry
	return Geometry{
		Canvas:      g.Canvas,
		StackWidth:  g.StackWidth,
		StackHeight: g.StackHeight,
		StackTop:    g.StackTop,
		StackGap:    g.StackGap,
		StackRadius: g.StackRadius,
		ChaosSize:   g.ChaosSize,
		ChaosRadius: g.ChaosRadius,
		Anchor:      Point{X: g.Anchor.X, Y: g.Anchor.Y},
		Stagger:     cfg.Timing.Stagger,
	}
}

// Point is a position in design space.
type Point struct {
	X float64
	Y float64
}

// Transform is the rendered box of one module.
type Transform struct {
	X        float64
	Y        float64
	Width    float64
	Height   float64
	Rotation float64
	Radius   float64
	// Delay is how long after the phase change the module starts moving.
	Delay time.Duration
}

// Contains reports whether p falls inside the unrotated box.
func (t Transform) Contains(p Point) bool {
	return p.X >= t.X && p.X < t.X+t.Width && p.Y >= t.Y && p.Y < t.Y+t.Height
}

// Center returns the middle of the box.
func (t Transform) Center() Point {
	return Point{X: t.X + t.Width/2, Y: t.Y + t.Height/2}
}

// StackX is the shared left edge of every stacked module.
func (g Geometry) StackX() float64 {
	return (g.Canvas - g.StackWidth) / 2
}

// StackY is the top edge of stack slot index.
func (g Geometry) StackY(index int) float64 {
	return g.StackTop + float64(index)*(g.StackHeight+g.StackGap)
}

// Resolve returns the target transform of m during p.
func (g Geometry) Resolve(m catalog.Module, p phase.Phase) Transform {
	if p == phase.Stack {
		return Transform{
			X:      g.StackX(),
			Y:      g.StackY(m.Index),
			Width:  g.StackWidth,
			Height: g.StackHeight,
			Radius: g.StackRadius,
			Delay:  time.Duration(m.Index) * g.Stagger,
		}
	}
	return Transform{
		X:        m.ChaosX,
		Y:        m.ChaosY,
		Width:    g.ChaosSize,
		Height:   g.ChaosSize,
		Rotation: m.ChaosR,
		Radius:   g.ChaosRadius,
	}
}

// ResolveAll resolves every module in table order.
func (g Geometry) ResolveAll(modules []catalog.Module, p phase.Phase) []Transform {
	out := make([]Transform, len(modules))
	for i, m := range modules {
		out[i] = g.Resolve(m, p)
	}
	return out
}

// HitTest returns the stack slot containing pt, or -1. Only the stack layout
// is clickable.
func (g Geometry) HitTest(modules []catalog.Module, pt Point) int {
	for _, m := range modules {
		if g.Resolve(m, phase.Stack).Contains(pt) {
			return m.Index
		}
	}
	return -1
}
