package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingrea/stackhero/internal/config"
	"github.com/kingrea/stackhero/internal/logging"
	"github.com/kingrea/stackhero/internal/phase"
	"github.com/kingrea/stackhero/internal/sequencer"
)

func newTestApp(t *testing.T, opts ...AppOption) (*App, *sequencer.ManualClock) {
	t.Helper()
	clock := sequencer.NewManualClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	opts = append([]AppOption{WithClock(clock), WithMarkdownRenderer(PlainRenderer)}, opts...)
	app, err := NewApp(config.Default(), opts...)
	require.NoError(t, err)
	t.Cleanup(app.Close)
	require.NotNil(t, app.Init())
	drainPhases(app)
	return app, clock
}

// drainPhases delivers every queued transition the way the program would.
func drainPhases(app *App) {
	for {
		select {
		case change := <-app.phases:
			app.Update(phaseChangedMsg(change))
		default:
			return
		}
	}
}

func advance(app *App, clock *sequencer.ManualClock, d time.Duration) {
	clock.Advance(d)
	drainPhases(app)
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func leftClick(col, row int) tea.MouseMsg {
	return tea.MouseMsg{X: col, Y: row, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

// stackCell returns the screen cell at the centre of a module's stack box.
func stackCell(app *App, index int) (int, int) {
	cols, rows := app.tileSize()
	grid := &canvas{cols: cols, rows: rows, size: app.geometry.Canvas}
	col, row := grid.project(app.geometry.Resolve(app.modules[index], phase.Stack).Center())
	return col + app.tileOffset(cols), row
}

func TestInitStartsInChaos(t *testing.T) {
	app, _ := newTestApp(t)
	assert.Equal(t, phase.Chaos, app.Phase())
	assert.True(t, app.sequencer.Running())
}

func TestPhaseCycleDrivesLayout(t *testing.T) {
	app, clock := newTestApp(t)

	advance(app, clock, 3000*time.Millisecond)
	assert.Equal(t, phase.Routes, app.Phase())

	advance(app, clock, 3000*time.Millisecond)
	require.Equal(t, phase.Stack, app.Phase())
	app.animator.Snap()
	mod3 := app.animator.Current(3)
	assert.Equal(t, 334.0, mod3.Y)
	assert.Zero(t, mod3.Rotation)

	advance(app, clock, 4500*time.Millisecond)
	assert.Equal(t, phase.Chaos, app.Phase())
	assert.Equal(t, 1, app.cycle)
}

func TestFrameStepsAnimation(t *testing.T) {
	app, clock := newTestApp(t)
	advance(app, clock, 5500*time.Millisecond)
	before := app.animator.Current(0)
	clock.Advance(100 * time.Millisecond)
	_, cmd := app.Update(frameMsg(clock.Now()))
	assert.NotNil(t, cmd)
	assert.NotEqual(t, before, app.animator.Current(0))
}

func TestClickSelectsOnlyInStack(t *testing.T) {
	app, clock := newTestApp(t)
	col, row := stackCell(app, 3)

	app.Update(leftClick(col, row))
	_, ok := app.Selected()
	assert.False(t, ok, "clicks during CHAOS are ignored")

	advance(app, clock, 6000*time.Millisecond)
	app.Update(leftClick(col, row))
	m, ok := app.Selected()
	require.True(t, ok)
	assert.Equal(t, "mod-3", m.ID)
}

func TestClickOutsideModulesSelectsNothing(t *testing.T) {
	app, clock := newTestApp(t)
	advance(app, clock, 6000*time.Millisecond)
	app.Update(leftClick(0, 0))
	_, ok := app.Selected()
	assert.False(t, ok)
}

func TestNumberKeysReplaceSelection(t *testing.T) {
	app, clock := newTestApp(t)
	app.Update(runeKey("2"))
	_, ok := app.Selected()
	assert.False(t, ok)

	advance(app, clock, 6000*time.Millisecond)
	app.Update(runeKey("2"))
	app.Update(runeKey("5"))
	m, ok := app.Selected()
	require.True(t, ok)
	assert.Equal(t, "mod-4", m.ID)

	app.Update(runeKey("9"))
	m, _ = app.Selected()
	assert.Equal(t, "mod-4", m.ID, "keys beyond the table are ignored")

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	_, ok = app.Selected()
	assert.False(t, ok)
}

func TestModalClickHandling(t *testing.T) {
	app, clock := newTestApp(t)
	advance(app, clock, 6000*time.Millisecond)
	app.Update(runeKey("1"))

	_, box, ok := app.layoutModal()
	require.True(t, ok)
	app.Update(leftClick(box.x+5, box.y+box.height-3))
	_, ok = app.Selected()
	assert.True(t, ok, "clicks inside the modal keep it open")

	app.Update(leftClick(box.x+box.width-4, box.y+2))
	_, ok = app.Selected()
	assert.False(t, ok, "the close mark dismisses the modal")

	app.Update(runeKey("1"))
	app.Update(leftClick(0, 0))
	_, ok = app.Selected()
	assert.False(t, ok, "the backdrop dismisses the modal")
}

func TestCyclingContinuesWhileSelected(t *testing.T) {
	app, clock := newTestApp(t)
	advance(app, clock, 6000*time.Millisecond)
	app.Update(runeKey("3"))

	advance(app, clock, 5000*time.Millisecond)
	assert.Equal(t, phase.Chaos, app.Phase())
	m, ok := app.Selected()
	require.True(t, ok)
	assert.Equal(t, "mod-2", m.ID)
}

func TestCloseStopsFurtherPhaseChanges(t *testing.T) {
	app, clock := newTestApp(t)
	advance(app, clock, time.Second)
	app.Close()
	app.Close()

	clock.Advance(time.Minute)
	assert.Empty(t, app.phases)
	assert.Equal(t, phase.Chaos, app.Phase())
	assert.False(t, app.sequencer.Running())

	_, cmd := app.Update(frameMsg(clock.Now()))
	assert.Nil(t, cmd)
	assert.Empty(t, app.View())
	assert.Nil(t, app.waitForPhase()())
}

func TestQuitKeyTearsDown(t *testing.T) {
	app, _ := newTestApp(t)
	_, cmd := app.Update(runeKey("q"))
	require.NotNil(t, cmd)
	_, isQuit := cmd().(tea.QuitMsg)
	assert.True(t, isQuit)
	assert.False(t, app.sequencer.Running())
}

func TestViewRendersPhasesAndModal(t *testing.T) {
	app, clock := newTestApp(t)
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	view := app.View()
	assert.Contains(t, view, "From Chaos to Clarity")
	assert.Contains(t, view, "MAPPING")
	assert.Contains(t, view, "GTMSTACK STRATEGIC VISUALIZATION")
	assert.NotContains(t, view, "Unified Data Layer")

	advance(app, clock, 6000*time.Millisecond)
	app.animator.Snap()
	view = app.View()
	for _, label := range []string{"Unified Data Layer", "Predictive Analytics", "INTEGRATED & OPTIMIZED"} {
		assert.Contains(t, view, label)
	}

	app.Update(runeKey("7"))
	view = app.View()
	assert.Contains(t, view, closeMark)
	assert.Contains(t, view, "comprehensive")
	assert.Contains(t, view, "open module")
}

func TestLogPanelShowsRecentEntries(t *testing.T) {
	logger, err := logging.New(filepath.Join(t.TempDir(), "hero.log"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = logger.Close() })

	app, clock := newTestApp(t, WithLogger(logger))
	advance(app, clock, 3000*time.Millisecond)
	app.Update(runeKey("l"))

	view := app.View()
	assert.Contains(t, view, "LOG · hero.log")
	assert.Contains(t, view, "CHAOS → ROUTES")

	lines, _ := logger.Tail(10)
	assert.True(t, strings.Contains(strings.Join(lines, "\n"), "Hero started"))
}
