// internal/tui/app.go
//
// This is the terminal rendition of the hero tile. It uses bubbletea, which
// follows The Elm Architecture:
//
// 1. Model: the current phase, animated module boxes and the selection
// 2. Update: phase changes, animation frames, keys and mouse clicks
// 3. View: the tile painted onto a cell canvas, plus the details modal
//
// The phase sequencer runs on its own timers and forwards each transition
// into the program through a channel, so all view state is only touched
// inside Update.

package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/stackhero/internal/catalog"
	"github.com/kingrea/stackhero/internal/config"
	"github.com/kingrea/stackhero/internal/layout"
	"github.com/kingrea/stackhero/internal/logging"
	"github.com/kingrea/stackhero/internal/motion"
	"github.com/kingrea/stackhero/internal/phase"
	"github.com/kingrea/stackhero/internal/selection"
	"github.com/kingrea/stackhero/internal/sequencer"
)

const (
	defaultWidth  = 80
	defaultHeight = 30
	minTileRows   = 24
	phaseBacklog  = 64
	backdropDim   = 0.6
	logPanelLines = 6
)

type phaseChangedMsg sequencer.Change

type frameMsg time.Time

// AppOption customizes App construction for tests and alternate runtimes.
type AppOption func(*App)

// WithClock replaces the wall clock used by the sequencer and animations.
func WithClock(c sequencer.Clock) AppOption {
	return func(a *App) {
		if c != nil {
			a.clock = c
		}
	}
}

// WithLogger attaches a session log.
func WithLogger(l *logging.Logger) AppOption {
	return func(a *App) {
		a.logger = l
	}
}

// WithMarkdownRenderer overrides how module descriptions are rendered.
func WithMarkdownRenderer(r MarkdownRenderer) AppOption {
	return func(a *App) {
		if r != nil {
			a.markdown = r
		}
	}
}

// App is the main application model.
type App struct {
	config    *config.Config
	table     *catalog.Table
	modules   []catalog.Module
	geometry  layout.Geometry
	clock     sequencer.Clock
	sequencer *sequencer.Sequencer
	animator  *motion.Animator
	selection *selection.Selection
	logger    *logging.Logger
	markdown  MarkdownRenderer

	phases    chan sequencer.Change
	done      chan struct{}
	closeOnce sync.Once
	closed    bool

	phase          phase.Phase
	phaseStartedAt time.Time
	bootedAt       time.Time
	cycle          int

	keys       keyMap
	help       help.Model
	showLog    bool
	modalCache map[string]string

	// Window size (we get this from bubbletea)
	width  int
	height int
}

// NewApp wires the module table, sequencer and animator for cfg.
func NewApp(cfg *config.Config, opts ...AppOption) (*App, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	table, err := catalog.FromConfig(cfg.Modules)
	if err != nil {
		return nil, err
	}
	app := &App{
		config:     cfg,
		table:      table,
		modules:    table.Modules(),
		geometry:   layout.FromConfig(cfg),
		clock:      sequencer.SystemClock{},
		selection:  selection.New(table),
		markdown:   GlamourRenderer("dark"),
		phases:     make(chan sequencer.Change, phaseBacklog),
		done:       make(chan struct{}),
		phase:      phase.Chaos,
		keys:       newKeyMap(),
		help:       help.New(),
		modalCache: map[string]string{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(app)
		}
	}
	schedule := sequencer.Schedule{
		Chaos:  cfg.Timing.Chaos,
		Routes: cfg.Timing.Routes,
		Stack:  cfg.Timing.Stack,
	}
	seq, err := sequencer.New(schedule,
		sequencer.WithClock(app.clock),
		sequencer.WithListener(app.forwardPhase),
	)
	if err != nil {
		return nil, err
	}
	app.sequencer = seq
	app.animator = motion.New(app.geometry.ResolveAll(app.modules, phase.Chaos), cfg.Timing.FPS, motion.DefaultSpring)
	now := app.clock.Now()
	app.bootedAt = now
	app.phaseStartedAt = now
	return app, nil
}

// Phase returns the phase currently displayed.
func (a *App) Phase() phase.Phase {
	return a.phase
}

// Selected returns the module shown in the details modal, if any.
func (a *App) Selected() (catalog.Module, bool) {
	return a.selection.Current()
}

// Close stops the sequencer and releases the phase listener. It is safe to
// call more than once.
func (a *App) Close() {
	a.closeOnce.Do(func() {
		a.closed = true
		a.sequencer.Stop()
		close(a.done)
		a.logInfo("Hero stopped after %d cycle(s)", a.cycle)
	})
}

// forwardPhase runs on the sequencer's goroutine.
func (a *App) forwardPhase(change sequencer.Change) {
	select {
	case a.phases <- change:
	case <-a.done:
	}
}

func (a *App) waitForPhase() tea.Cmd {
	phases, done := a.phases, a.done
	return func() tea.Msg {
		select {
		case change := <-phases:
			return phaseChangedMsg(change)
		case <-done:
			return nil
		}
	}
}

func (a *App) scheduleFrame() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(a.config.Timing.FPS), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (a *App) logInfo(format string, args ...any) {
	a.logger.Info(format, args...)
}

func (a *App) logWarn(format string, args ...any) {
	a.logger.Warn(format, args...)
}

// Init is called once when the program starts. Mounting the view starts the
// phase cycle.
func (a *App) Init() tea.Cmd {
	a.bootedAt = a.clock.Now()
	a.logInfo("Hero started · %d modules · cycle %s", len(a.modules), a.sequencer.Schedule().Period())
	a.sequencer.Start()
	return tea.Batch(a.waitForPhase(), a.scheduleFrame())
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		return a, nil

	case phaseChangedMsg:
		if a.closed {
			return a, nil
		}
		a.applyPhase(sequencer.Change(msg))
		return a, a.waitForPhase()

	case frameMsg:
		if a.closed {
			return a, nil
		}
		a.animator.Step(a.clock.Now())
		return a, a.scheduleFrame()

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			a.handleClick(msg.X, msg.Y)
		}
		return a, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, a.keys.Quit):
			a.Close()
			return a, tea.Quit
		case key.Matches(msg, a.keys.Close):
			a.closeDetails("key")
		case key.Matches(msg, a.keys.Open):
			if a.phase == phase.Stack {
				a.openDetails(int(msg.String()[0] - '1'))
			}
		case key.Matches(msg, a.keys.Log):
			a.showLog = !a.showLog
		case key.Matches(msg, a.keys.Help):
			a.help.ShowAll = !a.help.ShowAll
		}
	}
	return a, nil
}

func (a *App) applyPhase(change sequencer.Change) {
	a.phase = change.To
	a.phaseStartedAt = change.At
	a.cycle = change.Cycle
	a.animator.Retarget(a.geometry.ResolveAll(a.modules, change.To), change.At)
	if change.Initial {
		return
	}
	a.logInfo("Phase %s → %s (cycle %d)", change.From, change.To, change.Cycle)
}

func (a *App) openDetails(index int) {
	if err := a.selection.Select(index); err != nil {
		a.logWarn("Ignored selection: %v", err)
		return
	}
	m, _ := a.selection.Current()
	a.logInfo("Opened details for %s (%s)", m.Label, m.ID)
}

func (a *App) closeDetails(via string) {
	if !a.selection.Active() {
		return
	}
	m, _ := a.selection.Current()
	a.selection.Clear()
	a.logInfo("Closed details for %s via %s", m.ID, via)
}

// handleClick resolves a left click. With the modal open, clicks on the
// backdrop or the close mark dismiss it; otherwise a click on a stacked
// module opens its details.
func (a *App) handleClick(col, row int) {
	if a.selection.Active() {
		_, box, ok := a.layoutModal()
		if ok && box.contains(col, row) && !box.onClose(col, row) {
			return
		}
		a.closeDetails("click")
		return
	}
	if a.phase != phase.Stack {
		return
	}
	cols, rows := a.tileSize()
	grid := &canvas{cols: cols, rows: rows, size: a.geometry.Canvas}
	tileCol := col - a.tileOffset(cols)
	if !grid.inside(tileCol, row) {
		return
	}
	if idx := a.geometry.HitTest(a.modules, grid.unproject(tileCol, row)); idx >= 0 {
		a.openDetails(idx)
	}
}

func (a *App) screenSize() (int, int) {
	w, h := a.width, a.height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	return w, h
}

// tileSize fits the square tile into the window, leaving one line for help.
func (a *App) tileSize() (int, int) {
	w, h := a.screenSize()
	rows := max(minTileRows, min(h-1, int(float64(w)/cellAspect)))
	return int(float64(rows) * cellAspect), rows
}

func (a *App) tileOffset(cols int) int {
	w, _ := a.screenSize()
	return max(0, (w-cols)/2)
}

// layoutModal renders the modal for the current selection and places it in
// the middle of the tile.
func (a *App) layoutModal() (string, modalBox, bool) {
	m, ok := a.selection.Current()
	if !ok {
		return "", modalBox{}, false
	}
	w, _ := a.screenSize()
	_, rows := a.tileSize()
	outer := modalWidth(w)
	rendered := a.renderModal(m, outer)
	box := modalBox{
		width:  lipgloss.Width(rendered),
		height: lipgloss.Height(rendered),
	}
	box.x = max(0, (w-box.width)/2)
	box.y = max(0, (rows-box.height)/2)
	return rendered, box, true
}

// View paints the current frame.
func (a *App) View() string {
	if a.closed {
		return ""
	}
	cols, rows := a.tileSize()
	grid := newCanvas(cols, rows, a.geometry.Canvas)
	now := a.clock.Now()
	scene{
		geometry:  a.geometry,
		modules:   a.modules,
		frames:    a.animator.Frames(),
		phase:     a.phase,
		inPhase:   now.Sub(a.phaseStartedAt),
		sinceBoot: now.Sub(a.bootedAt),
		selected:  a.selection.Index(),
		title:     a.config.Title,
		caption:   a.config.Caption,
	}.paint(grid)

	dim := 0.0
	if a.selection.Active() {
		dim = backdropDim
	}
	pad := strings.Repeat(" ", a.tileOffset(cols))
	lines := strings.Split(grid.render(dim), "\n")
	for i := range lines {
		lines[i] = pad + lines[i]
	}
	screen := strings.Join(lines, "\n")

	if modal, box, ok := a.layoutModal(); ok {
		w, _ := a.screenSize()
		screen = overlayAt(screen, modal, box.x, box.y, w)
	}

	sections := []string{screen}
	if a.showLog {
		if panel := a.renderLogPanel(); panel != "" {
			sections = append(sections, panel)
		}
	}
	sections = append(sections, a.help.View(a.keys))
	return strings.Join(sections, "\n")
}

func (a *App) renderLogPanel() string {
	lines, total := a.logger.Tail(logPanelLines)
	if len(lines) == 0 {
		return ""
	}
	fileName := filepath.Base(a.logger.Path())
	head := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colorRoute)).
		Render(fmt.Sprintf("LOG · %s · %d line(s)", fileName, total))
	body := lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorChaosLabel)).
		Render(strings.Join(lines, "\n"))
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(colorContour)).
		Padding(0, 1).
		Render(fmt.Sprintf("%s\n%s", head, body))
}
