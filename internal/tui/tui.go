// Package tui is the terminal frontend: a bubbletea program that translates
// terminal input into board actions and renders the resulting views onto a
// cell grid. The board core never sees the terminal; this package owns the
// whole environment boundary.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tilery/tilery/pkg/board"
	"github.com/tilery/tilery/pkg/geom"
	"github.com/tilery/tilery/pkg/layout"
	"github.com/tilery/tilery/pkg/share"
	"github.com/tilery/tilery/pkg/store"
)

// statusHeight is the number of rows reserved below the board.
const statusHeight = 1

// CellMetrics is the terminal tile footprint: terminal cells are roughly
// twice as tall as wide, so a 6×3 box reads as a square.
var CellMetrics = layout.Metrics{Tile: geom.Dims{W: 6, H: 3}, Gap: 1}

// CellConfig returns a board configuration in cell units.
func CellConfig() board.Config {
	return board.Config{
		Metrics:       CellMetrics,
		PadPointer:    1,
		PadTouch:      2,
		PadTouchSmall: 1,
		SmallWindow:   60,
	}
}

// Options configures a Model.
type Options struct {
	// Tiles is the initial board, typically read from a board file.
	Tiles []board.Tile

	// TouchUI enlarges hit targets and shows the toolbar.
	TouchUI bool

	// Autosave receives the encoded board after every committed change.
	// Nil disables autosave.
	Autosave *store.Debouncer
}

// Model is the bubbletea model wrapping a board engine.
type Model struct {
	engine *board.Engine
	view   board.View

	width   int
	height  int
	ready   bool
	touchUI bool

	autosave *store.Debouncer
	quitting bool
}

// New creates a TUI model. The board area is sized on the first
// WindowSizeMsg; until then the model renders nothing.
func New(opts Options) *Model {
	m := &Model{autosave: opts.Autosave, touchUI: opts.TouchUI}

	engineOpts := []board.EngineOption{}
	if opts.Autosave != nil {
		engineOpts = append(engineOpts, board.WithOnCommit(func(tiles []board.Tile) {
			opts.Autosave.Offer([]byte(share.Encode(tiles)))
		}))
	}
	m.engine = board.NewEngine(CellConfig(), geom.Dims{}, engineOpts...)
	m.engine.Load(opts.Tiles)
	if opts.TouchUI {
		m.engine.Dispatch(board.SetTouchUI{Enabled: true})
	}
	m.view = m.engine.View()
	return m
}

// Engine exposes the underlying engine for tests.
func (m *Model) Engine() *board.Engine { return m.engine }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = m.width > 0 && m.height > m.footerHeight()
		m.view = m.engine.Dispatch(board.Resize{Window: m.boardDims()})
		return m, nil

	case tea.KeyMsg:
		if key := msg.String(); key == "ctrl+c" || (key == "q" && m.engine.State().Composing == nil) {
			m.quitting = true
			if m.autosave != nil {
				m.autosave.Flush()
			}
			return m, tea.Quit
		}
		if a, ok := translateKey(msg); ok {
			m.view = m.engine.Dispatch(a)
		}
		return m, nil

	case tea.MouseMsg:
		boardH := m.height - m.footerHeight()
		if msg.Action == tea.MouseActionPress && msg.Y >= boardH {
			// Footer rows: the status bar, then the touch toolbar. Presses
			// there never start a board gesture; motion and release still
			// pass through so a drag that wanders below the board resolves.
			if m.touchUI && msg.Y == boardH+1 {
				if a, ok := toolbarHit(msg.X); ok {
					m.view = m.engine.Dispatch(a)
				}
			}
			return m, nil
		}
		if a, ok := translateMouse(msg, m.boardDims()); ok {
			m.view = m.engine.Dispatch(a)
		}
		return m, nil
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "loading..."
	}
	out := render(m.view, m.width, m.height-m.footerHeight())
	if m.touchUI {
		out += "\n" + toolbarLine(m.width)
	}
	return out
}

// Run starts the interactive session and blocks until the user quits or ctx
// is cancelled.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(New(opts),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}

// footerHeight is the number of rows below the board: the status bar, plus
// the touch toolbar when the touch UI is on. Constant for a session, since
// the touch UI is chosen at startup.
func (m *Model) footerHeight() int {
	if m.touchUI {
		return statusHeight + 1
	}
	return statusHeight
}

// boardDims is the window size handed to the board: the full terminal minus
// the footer, in cells.
func (m *Model) boardDims() geom.Dims {
	h := m.height - m.footerHeight()
	if h < 0 {
		h = 0
	}
	return geom.Dims{W: float64(m.width), H: float64(h)}
}
