// Package motion eases module boxes towards their layout targets with damped
// springs, one spring state per animated channel.
package motion

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"

	"github.com/kingrea/stackhero/internal/layout"
)

// SpringParams describes a physical spring.
type SpringParams struct {
	Stiffness float64
	Damping   float64
	Mass      float64
}

// DefaultSpring is the tile's module transition.
var DefaultSpring = SpringParams{Stiffness: 45, Damping: 15, Mass: 1}

// AngularFrequency returns sqrt(k/m).
func (p SpringParams) AngularFrequency() float64 {
	return math.Sqrt(p.Stiffness / p.Mass)
}

// DampingRatio returns c / (2*sqrt(k*m)).
func (p SpringParams) DampingRatio() float64 {
	return p.Damping / (2 * math.Sqrt(p.Stiffness*p.Mass))
}

const (
	chX = iota
	chY
	chWidth
	chHeight
	chRotation
	chRadius
	channelCount
)

// settleEpsilon is the distance and speed under which a channel counts as at
// rest, in design units.
const settleEpsilon = 0.05

type channel struct {
	pos float64
	vel float64
}

type body struct {
	ch         [channelCount]channel
	target     layout.Transform
	pending    *layout.Transform
	activateAt time.Time
}

// Animator tracks every module's on-screen transform.
type Animator struct {
	spring harmonica.Spring
	bodies []body
}

// New starts an animator at rest on the initial transforms.
func New(initial []layout.Transform, fps int, params SpringParams) *Animator {
	if fps <= 0 {
		fps = 30
	}
	a := &Animator{
		spring: harmonica.NewSpring(harmonica.FPS(fps), params.AngularFrequency(), params.DampingRatio()),
		bodies: make([]body, len(initial)),
	}
	for i, t := range initial {
		a.bodies[i].target = t
		a.bodies[i].ch = channelsOf(t)
	}
	return a
}

// Len returns the number of animated modules.
func (a *Animator) Len() int {
	return len(a.bodies)
}

// Retarget moves every module towards a new transform. A target's Delay
// postpones the switch relative to now.
func (a *Animator) Retarget(targets []layout.Transform, now time.Time) {
	for i := range a.bodies {
		if i >= len(targets) {
			break
		}
		b := &a.bodies[i]
		t := targets[i]
		if t.Delay <= 0 {
			b.target = t
			b.pending = nil
			continue
		}
		b.pending = &t
		b.activateAt = now.Add(t.Delay)
	}
}

// Step advances one frame.
func (a *Animator) Step(now time.Time) {
	for i := range a.bodies {
		b := &a.bodies[i]
		if b.pending != nil && !now.Before(b.activateAt) {
			b.target = *b.pending
			b.pending = nil
		}
		goal := channelsOf(b.target)
		for c := range b.ch {
			b.ch[c].pos, b.ch[c].vel = a.spring.Update(b.ch[c].pos, b.ch[c].vel, goal[c].pos)
		}
	}
}

// Snap places every module on its final target, skipping any delay.
func (a *Animator) Snap() {
	for i := range a.bodies {
		b := &a.bodies[i]
		if b.pending != nil {
			b.target = *b.pending
			b.pending = nil
		}
		b.ch = channelsOf(b.target)
	}
}

// Settled reports whether all modules rest on their targets.
func (a *Animator) Settled() bool {
	for i := range a.bodies {
		b := &a.bodies[i]
		if b.pending != nil {
			return false
		}
		goal := channelsOf(b.target)
		for c := range b.ch {
			if math.Abs(b.ch[c].pos-goal[c].pos) > settleEpsilon || math.Abs(b.ch[c].vel) > settleEpsilon {
				return false
			}
		}
	}
	return true
}

// Current returns the transform of module i as it should be drawn now.
func (a *Animator) Current(i int) layout.Transform {
	if i < 0 || i >= len(a.bodies) {
		return layout.Transform{}
	}
	ch := a.bodies[i].ch
	return layout.Transform{
		X:        ch[chX].pos,
		Y:        ch[chY].pos,
		Width:    ch[chWidth].pos,
		Height:   ch[chHeight].pos,
		Rotation: ch[chRotation].pos,
		Radius:   ch[chRadius].pos,
	}
}

// Frames returns every module's current transform.
func (a *Animator) Frames() []layout.Transform {
	out := make([]layout.Transform, len(a.bodies))
	for i := range a.bodies {
		out[i] = a.Current(i)
	}
	return out
}

func channelsOf(t layout.Transform) [channelCount]channel {
	var ch [channelCount]channel
	ch[chX].pos = t.X
	ch[chY].pos = t.Y
	ch[chWidth].pos = t.Width
	ch[chHeight].pos = t.Height
	ch[chRotation].pos = t.Rotation
	ch[chRadius].pos = t.Radius
	return ch
}
