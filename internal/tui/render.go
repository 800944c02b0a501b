package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tilery/tilery/pkg/board"
	"github.com/tilery/tilery/pkg/geom"
)

// =============================================================================
// Styles
// =============================================================================

var (
	colorAccent = lipgloss.Color("36")  // teal - tiles
	colorBright = lipgloss.Color("255") // bright white - letters
	colorGreen  = lipgloss.Color("35")  // green - appearing pulse
	colorDim    = lipgloss.Color("240") // dim gray - ghosts, hints
	colorYellow = lipgloss.Color("220") // amber - selection
)

var (
	styleTile      = lipgloss.NewStyle().Foreground(colorBright)
	styleSelected  = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
	styleAppearing = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	styleGhost     = lipgloss.NewStyle().Foreground(colorDim)
	styleRect      = lipgloss.NewStyle().Foreground(colorAccent)
	styleStatus    = lipgloss.NewStyle().Foreground(colorDim)
	styleCompose   = lipgloss.NewStyle().Foreground(colorYellow)
	styleHelp      = lipgloss.NewStyle().Foreground(colorBright)
	styleToolbar   = lipgloss.NewStyle().Foreground(colorAccent)
)

// paint classes for the cell grid.
type paint uint8

const (
	paintNone paint = iota
	paintTile
	paintSelected
	paintAppearing
	paintGhost
	paintRect
)

var paintStyles = map[paint]lipgloss.Style{
	paintTile:      styleTile,
	paintSelected:  styleSelected,
	paintAppearing: styleAppearing,
	paintGhost:     styleGhost,
	paintRect:      styleRect,
}

// =============================================================================
// Cell grid
// =============================================================================

// grid is a paintable screen buffer. Tiles overwrite freely; the rubber-band
// rectangle only lands on empty cells so it never cuts through tiles.
type grid struct {
	w, h   int
	runes  []rune
	paints []paint
}

func newGrid(w, h int) *grid {
	g := &grid{w: w, h: h, runes: make([]rune, w*h), paints: make([]paint, w*h)}
	for i := range g.runes {
		g.runes[i] = ' '
	}
	return g
}

func (g *grid) set(col, row int, r rune, p paint) {
	if col < 0 || col >= g.w || row < 0 || row >= g.h {
		return
	}
	i := row*g.w + col
	g.runes[i] = r
	g.paints[i] = p
}

func (g *grid) empty(col, row int) bool {
	if col < 0 || col >= g.w || row < 0 || row >= g.h {
		return false
	}
	return g.paints[row*g.w+col] == paintNone
}

// String renders the buffer, styling runs of identically painted cells.
func (g *grid) String() string {
	var b strings.Builder
	for row := 0; row < g.h; row++ {
		start := row * g.w
		col := 0
		for col < g.w {
			p := g.paints[start+col]
			end := col
			for end < g.w && g.paints[start+end] == p {
				end++
			}
			run := string(g.runes[start+col : start+end])
			if style, ok := paintStyles[p]; ok {
				b.WriteString(style.Render(run))
			} else {
				b.WriteString(run)
			}
			col = end
		}
		if row < g.h-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// =============================================================================
// Board rendering
// =============================================================================

// RenderBoard renders a tile list once, without a live session. Used by
// `tilery show` for a static preview.
func RenderBoard(tiles []board.Tile, width, height int) string {
	e := board.NewEngine(CellConfig(), geom.Dims{W: float64(width), H: float64(height)})
	e.Load(tiles)
	v := e.View()

	g := newGrid(width, height)
	for _, t := range v.Tiles {
		drawTile(g, v, t)
	}
	return g.String()
}

// render draws one frame: the board area plus the status bar.
func render(v board.View, width, height int) string {
	if v.HelpVisible {
		return renderHelp(width, height) + "\n" + statusLine(v, width)
	}

	g := newGrid(width, height)
	for _, t := range v.Tiles {
		drawTile(g, v, t)
	}
	if v.SelectionRect != nil {
		drawRect(g, v, *v.SelectionRect)
	}
	if v.ZeroState && len(v.Tiles) == 0 {
		drawCentered(g, height/2, "press space and start typing")
	}
	return g.String() + "\n" + statusLine(v, width)
}

func drawTile(g *grid, v board.View, t board.Tile) {
	p := paintTile
	switch {
	case t.Ghost:
		p = paintGhost
	case v.Appearing.Has(t.ID):
		p = paintAppearing
	case v.Selected.Has(t.ID):
		p = paintSelected
	}

	tw, th := int(CellMetrics.Tile.W), int(CellMetrics.Tile.H)
	col := toCell(t.Offset.X + v.Window.W/2)
	row := toCell(t.Offset.Y + v.Window.H/2)

	for y := 0; y < th; y++ {
		for x := 0; x < tw; x++ {
			g.set(col+x, row+y, boxRune(x, y, tw, th), p)
		}
	}
	g.set(col+tw/2, row+th/2, t.Char, p)
}

// boxRune picks the border rune for position (x, y) inside a tw×th box.
func boxRune(x, y, tw, th int) rune {
	top, bottom := y == 0, y == th-1
	left, right := x == 0, x == tw-1
	switch {
	case top && left:
		return '╭'
	case top && right:
		return '╮'
	case bottom && left:
		return '╰'
	case bottom && right:
		return '╯'
	case top || bottom:
		return '─'
	case left || right:
		return '│'
	}
	return ' '
}

// drawRect draws the rubber-band rectangle outline. Only empty cells are
// painted, so the rectangle never cuts through tiles.
func drawRect(g *grid, v board.View, r geom.BBox) {
	minCol := toCell(r.MinX + v.Window.W/2)
	maxCol := toCell(r.MaxX + v.Window.W/2)
	minRow := toCell(r.MinY + v.Window.H/2)
	maxRow := toCell(r.MaxY + v.Window.H/2)

	for col := minCol; col <= maxCol; col++ {
		for _, row := range []int{minRow, maxRow} {
			if g.empty(col, row) {
				g.set(col, row, '·', paintRect)
			}
		}
	}
	for row := minRow; row <= maxRow; row++ {
		for _, col := range []int{minCol, maxCol} {
			if g.empty(col, row) {
				g.set(col, row, '·', paintRect)
			}
		}
	}
}

// =============================================================================
// Status bar and overlays
// =============================================================================

func statusLine(v board.View, width int) string {
	var s string
	switch {
	case v.Composing:
		s = styleCompose.Render("typing: "+v.ComposeText+"▌") +
			styleStatus.Render("  enter: commit · esc: cancel")
	case v.HelpVisible:
		s = styleStatus.Render("esc: close help")
	default:
		count := 0
		for _, t := range v.Tiles {
			if !t.Ghost {
				count++
			}
		}
		parts := []string{fmt.Sprintf("%d tiles", count)}
		if n := len(v.Selected); n > 0 {
			parts = append(parts, fmt.Sprintf("%d selected", n))
		}
		parts = append(parts, "space: type", "?: help", "q: quit")
		s = styleStatus.Render(strings.Join(parts, " · "))
	}
	if v.TouchUI {
		s += styleStatus.Render("  [touch]")
	}
	return truncate(s, width)
}

// toolbarItem is one tappable entry on the touch toolbar.
type toolbarItem struct {
	label  string
	action board.Action
}

var toolbarItems = []toolbarItem{
	{"type", board.StartCompose{}},
	{"shuffle", board.Shuffle{}},
	{"arrange", board.Arrange{}},
	{"delete", board.DeleteSelection{}},
	{"undo", board.Undo{}},
	{"redo", board.Redo{}},
}

// toolbarLine renders the touch toolbar row. Layout must stay in step with
// toolbarHit: labels bracketed, one space between items, starting at column 0.
func toolbarLine(width int) string {
	var b strings.Builder
	for i, it := range toolbarItems {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(styleToolbar.Render("[" + it.label + "]"))
	}
	return truncate(b.String(), width)
}

// toolbarHit maps a column on the toolbar row to the action under it.
func toolbarHit(col int) (board.Action, bool) {
	pos := 0
	for i, it := range toolbarItems {
		if i > 0 {
			pos++
		}
		end := pos + len(it.label) + 2
		if col >= pos && col < end {
			return it.action, true
		}
		pos = end
	}
	return nil, false
}

var helpLines = []string{
	"tilery",
	"",
	"space        start typing letters",
	"enter        commit typed letters",
	"esc          cancel typing / clear selection",
	"drag         move a tile (or the selection)",
	"mod+click    toggle selection, box-select",
	"s            shuffle",
	"r            arrange (line/circle)",
	"backspace    delete selection",
	"mod+z / y    undo / redo",
	"q            quit",
}

func renderHelp(width, height int) string {
	block := styleHelp.Render(strings.Join(helpLines, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, block)
}

func drawCentered(g *grid, row int, text string) {
	col := (g.w - len([]rune(text))) / 2
	for i, r := range []rune(text) {
		g.set(col+i, row, r, paintGhost)
	}
}

func toCell(f float64) int {
	return int(math.Round(f))
}

func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(s)
}
