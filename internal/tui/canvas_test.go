package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingrea/stackhero/internal/layout"
)

func TestProjectRoundTripsCellCentres(t *testing.T) {
	c := newCanvas(60, 30, 600)
	for _, cell := range [][2]int{{0, 0}, {12, 7}, {59, 29}} {
		col, row := c.project(c.unproject(cell[0], cell[1]))
		assert.Equal(t, cell[0], col)
		assert.Equal(t, cell[1], row)
	}
	col, row := c.project(layout.Point{X: 300, Y: 300})
	assert.Equal(t, 30, col)
	assert.Equal(t, 15, row)
}

func TestCanvasTextClipsAndRenders(t *testing.T) {
	c := newCanvas(12, 2, 600)
	c.text(1, 0, "Unified Data Layer", colorTitle, true, 6)
	c.plot(50, 50, "x", colorTitle)
	c.centered(1, "ok", colorIdle, false)

	lines := strings.Split(c.render(0), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, " Unifi…     ", lines[0])
	assert.Equal(t, "     ok     ", lines[1])
}

func TestOverlayAtReplacesRegion(t *testing.T) {
	base := "aaaaaa\nbbbbbb\ncccccc"
	out := overlayAt(base, "XY\nZW", 2, 1, 6)
	assert.Equal(t, "aaaaaa\nbbXYbb\nccZWcc", out)
}

func TestFade(t *testing.T) {
	assert.Equal(t, "#ffffff", fade("#ffffff", "#000000", 1))
	assert.Equal(t, "#000000", fade("#ffffff", "#000000", 0))
	assert.Equal(t, "not-a-colour", fade("not-a-colour", "#000000", 0.5))
}

func TestResolveColorAndIcon(t *testing.T) {
	assert.Equal(t, "#3b82f6", resolveColor("Blue"))
	assert.Equal(t, "#123456", resolveColor("#123456"))
	assert.Equal(t, colorIdle, resolveColor("plaid"))
	assert.Equal(t, "⛁", resolveIcon("database"))
	assert.Equal(t, "■", resolveIcon("unknown"))
}

func TestHeaderColors(t *testing.T) {
	assert.Equal(t, colorChaosLabel, headerColor(0, 0))
	assert.Equal(t, colorRoute, headerColor(0, 1))
	assert.Equal(t, colorIdle, headerColor(0, 2))
	assert.Equal(t, colorTitle, headerColor(2, 2))
}

func TestModalBoxHitAreas(t *testing.T) {
	box := modalBox{x: 10, y: 5, width: 40, height: 12}
	assert.True(t, box.contains(10, 5))
	assert.False(t, box.contains(50, 5))
	assert.True(t, box.onClose(46, 7))
	assert.False(t, box.onClose(20, 7))
}
