package tui

import (
	"math"
	"strings"
	"time"

	"github.com/kingrea/stackhero/internal/catalog"
	"github.com/kingrea/stackhero/internal/layout"
	"github.com/kingrea/stackhero/internal/phase"
)

const (
	gridSpacing  = 32.0
	stackCaption = "INTEGRATED & OPTIMIZED"
	captionPulse = 4 * time.Second
)

// scene is everything needed to paint one frame of the tile.
type scene struct {
	geometry  layout.Geometry
	modules   []catalog.Module
	frames    []layout.Transform
	phase     phase.Phase
	inPhase   time.Duration
	sinceBoot time.Duration
	selected  int
	title     string
	caption   string
}

func (s scene) paint(c *canvas) {
	s.paintBackground(c)
	s.paintRoutes(c)
	s.paintModules(c)
	s.paintHeader(c)
	s.paintFooter(c)
}

// paintBackground draws the dot lattice, the dashed rings and the two
// contour curves crossing the centre.
func (s scene) paintBackground(c *canvas) {
	size := s.geometry.Canvas
	for y := gridSpacing / 2; y < size; y += gridSpacing {
		for x := gridSpacing / 2; x < size; x += gridSpacing {
			col, row := c.project(layout.Point{X: x, Y: y})
			c.plot(col, row, "·", colorGridDot)
		}
	}
	center := layout.Point{X: size / 2, Y: size / 2}
	for _, ring := range []struct {
		radius float64
		dashes int
	}{{size * 250 / 600, 48}, {size * 150 / 600, 32}} {
		steps := ring.dashes * 4
		for i := 0; i < steps; i++ {
			if (i/2)%2 == 1 {
				continue
			}
			theta := 2 * math.Pi * float64(i) / float64(steps)
			col, row := c.project(layout.Point{
				X: center.X + ring.radius*math.Cos(theta),
				Y: center.Y + ring.radius*math.Sin(theta),
			})
			c.plot(col, row, "∙", colorGridDot)
		}
	}
	for _, contour := range contours(size) {
		for i, p := range contour.Sample(40, 1) {
			if i%2 == 1 {
				continue
			}
			col, row := c.project(p)
			c.plot(col, row, "╌", fade(colorContour, colorTile, 0.5))
		}
	}
}

// contours returns the two smooth curves crossing the tile, each made of two
// quadratic segments with a mirrored control point.
func contours(size float64) []layout.Route {
	h, q := size/2, size/4
	dip := size / 12
	return []layout.Route{
		{Start: layout.Point{X: 0, Y: h}, Control: layout.Point{X: q, Y: h - dip}, End: layout.Point{X: h, Y: h}},
		{Start: layout.Point{X: h, Y: h}, Control: layout.Point{X: h + q, Y: h + dip}, End: layout.Point{X: size, Y: h}},
		{Start: layout.Point{X: h, Y: 0}, Control: layout.Point{X: h - dip, Y: q}, End: layout.Point{X: h, Y: h}},
		{Start: layout.Point{X: h, Y: h}, Control: layout.Point{X: h + dip, Y: h + q}, End: layout.Point{X: h, Y: size}},
	}
}

func (s scene) paintRoutes(c *canvas) {
	emphasis := layout.EmphasisAt(s.phase, s.inPhase)
	if !emphasis.Visible() {
		return
	}
	glyph := "·"
	if emphasis.StrokeWidth >= 1.25 {
		glyph = "•"
	}
	// Terminal cells cannot go as faint as the design, so lift the floor.
	color := fade(colorRoute, colorTile, math.Min(1, 0.2+emphasis.Opacity*1.3))
	for _, route := range s.geometry.Routes(s.modules, s.phase) {
		for _, p := range route.Sample(64, emphasis.Length) {
			col, row := c.project(p)
			c.plot(col, row, glyph, color)
		}
	}
}

func (s scene) paintModules(c *canvas) {
	for i, m := range s.modules {
		if i >= len(s.frames) {
			break
		}
		s.paintModule(c, m, s.frames[i], i == s.selected)
	}
}

func (s scene) paintModule(c *canvas, m catalog.Module, t layout.Transform, selected bool) {
	col0, row0 := c.project(layout.Point{X: t.X, Y: t.Y})
	col1, row1 := c.project(layout.Point{X: t.X + t.Width, Y: t.Y + t.Height})
	width := max(2, col1-col0)
	height := max(1, row1-row0)
	bg := resolveColor(m.Color)
	tan := math.Tan(t.Rotation * math.Pi / 180)
	mid := float64(height-1) / 2

	for r := 0; r < height; r++ {
		// Rotation is approximated by shearing rows around the box centre.
		shift := int(math.Round(-tan * (float64(r) - mid) * cellAspect))
		c.fill(col0+shift, row0+r, width, 1, fade(bg, colorTile, 0.65+0.35*float64(r+1)/float64(height)))
	}

	icon := resolveIcon(m.Icon)
	stacked := s.phase == phase.Stack && width >= 8
	if !stacked {
		c.text(col0+(width-1)/2, row0+height/2, icon, colorTitle, true, 0)
		return
	}
	if selected {
		c.text(col0, row0, "▌", colorSelected, false, 0)
	}
	c.text(col0+1, row0, icon, colorTitle, true, 0)
	c.text(col0+3, row0, m.Label, colorTitle, true, width-4)
	if height > 1 {
		c.text(col0+3, row0+1, stackCaption, fade(colorTitle, bg, 0.6), false, width-4)
	}
}

func (s scene) paintHeader(c *canvas) {
	_, titleRow := c.project(layout.Point{Y: s.geometry.Canvas * 40 / 600})
	c.centered(titleRow, s.title, colorTitle, true)

	labels := []struct {
		text  string
		color string
	}{
		{strings.ToUpper(phase.Chaos.FriendlyName()), headerColor(phase.Chaos, s.phase)},
		{strings.ToUpper(phase.Routes.FriendlyName()), headerColor(phase.Routes, s.phase)},
		{strings.ToUpper(phase.Stack.FriendlyName()), headerColor(phase.Stack, s.phase)},
	}
	total := 0
	for _, l := range labels {
		total += len(l.text)
	}
	total += 3 * (len(labels) - 1)
	col := (c.cols - total) / 2
	row := titleRow + 1
	for i, l := range labels {
		if i > 0 {
			c.text(col, row, " › ", colorSeparator, false, 0)
			col += 3
		}
		c.text(col, row, l.text, l.color, false, 0)
		col += len(l.text)
	}
}

// headerColor reproduces the indicator palette: CHAOS reads grey while
// active and cyan while routes are mapped, MAPPING is cyan while active and
// THE STACK turns white once reached.
func headerColor(label, current phase.Phase) string {
	switch label {
	case phase.Chaos:
		switch current {
		case phase.Chaos:
			return colorChaosLabel
		case phase.Routes:
			return colorRoute
		}
	case phase.Routes:
		if current == phase.Routes {
			return colorRoute
		}
	case phase.Stack:
		if current == phase.Stack {
			return colorTitle
		}
	}
	return colorIdle
}

func (s scene) paintFooter(c *canvas) {
	_, pillRow := c.project(layout.Point{Y: s.geometry.Canvas * 556 / 600})
	var parts []string
	for _, p := range phase.All {
		if p == s.phase {
			parts = append(parts, "━━━━")
		} else {
			parts = append(parts, "•")
		}
	}
	col := (c.cols - len([]rune(strings.Join(parts, " ")))) / 2
	for _, p := range phase.All {
		text, color := "•", colorPillIdle
		if p == s.phase {
			text = "━━━━"
			color = fade(colorRoute, colorTile, 0.5+0.5*math.Min(1, s.inPhase.Seconds()))
		}
		c.text(col, pillRow, text, color, false, 0)
		col += len([]rune(text)) + 1
	}

	pulse := float64(s.sinceBoot%(2*captionPulse)) / float64(captionPulse)
	if pulse > 1 {
		pulse = 2 - pulse
	}
	c.centered(c.rows-1, strings.ToUpper(s.caption), fade(colorCaption, colorTile, 0.3+0.3*pulse), false)
}
