// Package sequencer drives the hero tile's phase cycle.
//
// The sequencer is a three-state machine with unconditional, time-triggered
// transitions: CHAOS holds for Schedule.Chaos, ROUTES for Schedule.Routes and
// STACK for Schedule.Stack, after which the cycle restarts. It never
// terminates on its own; Stop cancels the pending timer.
package sequencer

import (
	"fmt"
	"sync"
	"time"

	"github.com/kingrea/stackhero/internal/phase"
)

// Schedule holds how long each phase is displayed.
type Schedule struct {
	Chaos  time.Duration
	Routes time.Duration
	Stack  time.Duration
}

// DefaultSchedule is the reference 3000/2500/5000 ms cycle.
var DefaultSchedule = Schedule{
	Chaos:  3000 * time.Millisecond,
	Routes: 2500 * time.Millisecond,
	Stack:  5000 * time.Millisecond,
}

// Hold returns how long p is displayed.
func (s Schedule) Hold(p phase.Phase) time.Duration {
	switch p {
	case phase.Chaos:
		return s.Chaos
	case phase.Routes:
		return s.Routes
	case phase.Stack:
		return s.Stack
	}
	return 0
}

// Period is the length of one full cycle.
func (s Schedule) Period() time.Duration {
	return s.Chaos + s.Routes + s.Stack
}

// Validate rejects schedules with a non-positive hold.
func (s Schedule) Validate() error {
	for _, p := range phase.All {
		if s.Hold(p) <= 0 {
			return fmt.Errorf("sequencer: %s hold must be positive, got %s", p, s.Hold(p))
		}
	}
	return nil
}

// PhaseAt returns the phase shown at elapsed time since activation, and the
// zero-based cycle it belongs to.
func PhaseAt(s Schedule, elapsed time.Duration) (phase.Phase, int) {
	period := s.Period()
	if period <= 0 || elapsed < 0 {
		return phase.Chaos, 0
	}
	cycle := int(elapsed / period)
	offset := elapsed % period
	p := phase.Chaos
	for offset >= s.Hold(p) {
		offset -= s.Hold(p)
		p = p.Next()
	}
	return p, cycle
}

// Change describes one phase transition.
type Change struct {
	From phase.Phase
	To   phase.Phase
	// Cycle counts completed CHAOS entries, starting at 0 on activation.
	Cycle int
	At    time.Time
	// Initial is set for the CHAOS entry emitted by Start.
	Initial bool
}

// Option customizes a Sequencer.
type Option func(*Sequencer)

// WithClock replaces the wall clock, typically with a ManualClock.
func WithClock(c Clock) Option {
	return func(s *Sequencer) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithListener registers a transition callback at construction time.
func WithListener(fn func(Change)) Option {
	return func(s *Sequencer) {
		if fn != nil {
			s.listeners = append(s.listeners, fn)
		}
	}
}

// Sequencer advances the current phase on a timer.
type Sequencer struct {
	schedule Schedule
	clock    Clock

	mu        sync.Mutex
	current   phase.Phase
	cycle     int
	running   bool
	gen       uint64
	timer     Timer
	enteredAt time.Time
	listeners []func(Change)
}

// New builds a stopped sequencer.
func New(schedule Schedule, opts ...Option) (*Sequencer, error) {
	if err := schedule.Validate(); err != nil {
		return nil, err
	}
	s := &Sequencer{schedule: schedule, clock: SystemClock{}, current: phase.Chaos}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// Schedule returns the configured holds.
func (s *Sequencer) Schedule() Schedule {
	return s.schedule
}

// OnChange registers fn to be called after every transition. Listeners run
// on the clock's goroutine and must not block.
func (s *Sequencer) OnChange(fn func(Change)) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// Phase returns the current phase.
func (s *Sequencer) Phase() phase.Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Elapsed returns how long the current phase has been shown.
func (s *Sequencer) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return 0
	}
	return s.clock.Now().Sub(s.enteredAt)
}

// Running reports whether the cycle is active.
func (s *Sequencer) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Start enters CHAOS immediately and arms the first transition. Calling
// Start on a running sequencer does nothing.
func (s *Sequencer) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.gen++
	gen := s.gen
	from := s.current
	s.current = phase.Chaos
	s.cycle = 0
	s.enteredAt = s.clock.Now()
	change := Change{From: from, To: phase.Chaos, At: s.enteredAt, Initial: true}
	listeners := s.snapshotListenersLocked()
	s.mu.Unlock()

	notify(listeners, change)
	s.arm(gen)
}

// Stop cancels the pending transition. It is safe to call on a stopped or
// never-started sequencer, and any callback already in flight is discarded.
func (s *Sequencer) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.running = false
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Sequencer) arm(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running || s.gen != gen {
		return
	}
	hold := s.schedule.Hold(s.current)
	s.timer = s.clock.AfterFunc(hold, func() { s.fire(gen) })
}

func (s *Sequencer) fire(gen uint64) {
	s.mu.Lock()
	if !s.running || s.gen != gen {
		s.mu.Unlock()
		return
	}
	from := s.current
	s.current = from.Next()
	if s.current == phase.Chaos {
		s.cycle++
	}
	s.enteredAt = s.clock.Now()
	s.timer = nil
	change := Change{From: from, To: s.current, Cycle: s.cycle, At: s.enteredAt}
	listeners := s.snapshotListenersLocked()
	s.mu.Unlock()

	// The next hold starts only once listeners have committed this phase.
	notify(listeners, change)
	s.arm(gen)
}

func (s *Sequencer) snapshotListenersLocked() []func(Change) {
	out := make([]func(Change), len(s.listeners))
	copy(out, s.listeners)
	return out
}

func notify(listeners []func(Change), change Change) {
	for _, fn := range listeners {
		fn(change)
	}
}
