package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/kingrea/stackhero/internal/layout"
)

// cellAspect is how many columns match one row visually.
const cellAspect = 2.0

type cell struct {
	glyph string
	fg    string
	bg    string
	bold  bool
}

// canvas is a cell grid onto which the square design space is projected.
type canvas struct {
	cols  int
	rows  int
	size  float64
	cells []cell
}

func newCanvas(cols, rows int, size float64) *canvas {
	c := &canvas{cols: cols, rows: rows, size: size, cells: make([]cell, cols*rows)}
	for i := range c.cells {
		c.cells[i] = cell{glyph: " ", bg: colorTile}
	}
	return c
}

// project maps a design-space point to the cell containing it.
func (c *canvas) project(p layout.Point) (int, int) {
	col := int(math.Floor(p.X / c.size * float64(c.cols)))
	row := int(math.Floor(p.Y / c.size * float64(c.rows)))
	return col, row
}

// unproject returns the design-space centre of a cell.
func (c *canvas) unproject(col, row int) layout.Point {
	return layout.Point{
		X: (float64(col) + 0.5) / float64(c.cols) * c.size,
		Y: (float64(row) + 0.5) / float64(c.rows) * c.size,
	}
}

func (c *canvas) inside(col, row int) bool {
	return col >= 0 && col < c.cols && row >= 0 && row < c.rows
}

func (c *canvas) at(col, row int) *cell {
	if !c.inside(col, row) {
		return nil
	}
	return &c.cells[row*c.cols+col]
}

// plot draws a glyph keeping the cell's background.
func (c *canvas) plot(col, row int, glyph, fg string) {
	if dst := c.at(col, row); dst != nil {
		dst.glyph = glyph
		dst.fg = fg
	}
}

func (c *canvas) fill(col, row, width, height int, bg string) {
	for r := row; r < row+height; r++ {
		for x := col; x < col+width; x++ {
			if dst := c.at(x, r); dst != nil {
				*dst = cell{glyph: " ", bg: bg}
			}
		}
	}
}

// text writes s starting at col, clipped to maxWidth cells when positive.
func (c *canvas) text(col, row int, s, fg string, bold bool, maxWidth int) {
	if maxWidth > 0 && ansi.StringWidth(s) > maxWidth {
		s = ansi.Truncate(s, maxWidth, "…")
	}
	x := col
	for _, r := range s {
		g := string(r)
		if dst := c.at(x, row); dst != nil {
			dst.glyph = g
			dst.fg = fg
			dst.bold = bold
		}
		x += max(1, ansi.StringWidth(g))
	}
}

// centered writes s horizontally centred on row.
func (c *canvas) centered(row int, s, fg string, bold bool) {
	w := ansi.StringWidth(s)
	c.text((c.cols-w)/2, row, s, fg, bold, c.cols)
}

// render turns the grid into styled lines. dim fades every colour towards
// black, used behind the modal backdrop.
func (c *canvas) render(dim float64) string {
	lines := make([]string, c.rows)
	for r := 0; r < c.rows; r++ {
		var b strings.Builder
		row := c.cells[r*c.cols : (r+1)*c.cols]
		start := 0
		for i := 1; i <= len(row); i++ {
			if i < len(row) && sameStyle(row[i], row[start]) {
				continue
			}
			b.WriteString(styleFor(row[start], dim).Render(joinGlyphs(row[start:i])))
			start = i
		}
		lines[r] = b.String()
	}
	return strings.Join(lines, "\n")
}

func sameStyle(a, b cell) bool {
	return a.fg == b.fg && a.bg == b.bg && a.bold == b.bold
}

func joinGlyphs(cells []cell) string {
	var b strings.Builder
	for _, cl := range cells {
		b.WriteString(cl.glyph)
	}
	return b.String()
}

func styleFor(cl cell, dim float64) lipgloss.Style {
	style := lipgloss.NewStyle().Bold(cl.bold)
	if cl.fg != "" {
		style = style.Foreground(lipgloss.Color(fade(cl.fg, "#000000", 1-dim)))
	}
	if cl.bg != "" {
		style = style.Background(lipgloss.Color(fade(cl.bg, "#000000", 1-dim)))
	}
	return style
}
