package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/kingrea/stackhero/internal/catalog"
)

const closeMark = "✕"

// MarkdownRenderer renders a module description wrapped to width cells.
type MarkdownRenderer func(markdown string, width int) (string, error)

// GlamourRenderer renders markdown with glamour's standard style.
func GlamourRenderer(style string) MarkdownRenderer {
	renderers := map[int]*glamour.TermRenderer{}
	return func(markdown string, width int) (string, error) {
		r, ok := renderers[width]
		if !ok {
			var err error
			r, err = glamour.NewTermRenderer(
				glamour.WithStandardStyle(style),
				glamour.WithWordWrap(width),
			)
			if err != nil {
				return "", err
			}
			renderers[width] = r
		}
		out, err := r.Render(markdown)
		if err != nil {
			return "", err
		}
		return strings.Trim(out, "\n"), nil
	}
}

// PlainRenderer wraps text without any markdown styling.
func PlainRenderer(markdown string, width int) (string, error) {
	return lipgloss.NewStyle().Width(width).Render(strings.TrimSpace(markdown)), nil
}

// modalBox is the on-screen rectangle of the details modal.
type modalBox struct {
	x, y          int
	width, height int
}

func (b modalBox) contains(col, row int) bool {
	return col >= b.x && col < b.x+b.width && row >= b.y && row < b.y+b.height
}

// onClose reports whether (col, row) hits the close mark, allowing one cell
// of slack on either side.
func (b modalBox) onClose(col, row int) bool {
	markCol := b.x + b.width - modalPadX - 1
	return row == b.y+modalPadY && col >= markCol-1 && col <= markCol+1
}

// Border plus padding on each side of the modal.
const (
	modalPadX = 3
	modalPadY = 2
)

var modalStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("#334155")).
	Padding(1, 2)

// modalWidth picks the modal's outer width for a screen width.
func modalWidth(screen int) int {
	return max(30, min(64, screen-4))
}

// renderModal lays out the module's badge, label, close mark and
// description.
func (a *App) renderModal(m catalog.Module, outer int) string {
	inner := outer - 2*modalPadX
	badge := lipgloss.NewStyle().
		Background(lipgloss.Color(resolveColor(m.Color))).
		Foreground(lipgloss.Color(colorTitle)).
		Bold(true).
		Render(fmt.Sprintf(" %s ", resolveIcon(m.Icon)))
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorTitle)).
		Render(ansi.Truncate(m.Label, max(1, inner-ansi.StringWidth(badge)-3), "…"))
	head := badge + " " + title
	gap := inner - ansi.StringWidth(head) - ansi.StringWidth(closeMark)
	head += strings.Repeat(" ", max(1, gap)) +
		lipgloss.NewStyle().Foreground(lipgloss.Color(colorIdle)).Render(closeMark)

	body := a.modalBody(m, inner)
	return modalStyle.Width(outer - 2).Render(head + "\n\n" + body)
}

func (a *App) modalBody(m catalog.Module, width int) string {
	key := fmt.Sprintf("%s@%d", m.ID, width)
	if cached, ok := a.modalCache[key]; ok {
		return cached
	}
	out, err := a.markdown(m.Description, width)
	if err != nil {
		a.logWarn("Markdown render failed for %s: %v", m.ID, err)
		out, _ = PlainRenderer(m.Description, width)
	}
	a.modalCache[key] = out
	return out
}

// overlayAt composites an overlay string on top of a base string at the given
// character position (x, y). Both are treated as line-based grids.
func overlayAt(base, overlay string, x, y, width int) string {
	baseLines := strings.Split(base, "\n")
	overlayLines := strings.Split(overlay, "\n")
	overlayWidth := 0
	for _, line := range overlayLines {
		overlayWidth = max(overlayWidth, ansi.StringWidth(line))
	}
	for i, line := range overlayLines {
		row := y + i
		if row < 0 || row >= len(baseLines) {
			continue
		}
		target := padRight(baseLines[row], width)
		left := ansi.Truncate(target, x, "")
		if w := ansi.StringWidth(left); w < x {
			left += strings.Repeat(" ", x-w)
		}
		overlayLine := padRight(line, overlayWidth)
		right := ansi.TruncateLeft(target, x+ansi.StringWidth(overlayLine), "")
		baseLines[row] = left + overlayLine + right
	}
	return strings.Join(baseLines, "\n")
}

// padRight pads s with spaces so its visual width equals width.
func padRight(s string, width int) string {
	w := ansi.StringWidth(s)
	if width <= 0 || w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
