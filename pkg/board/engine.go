package board

import (
	"context"
	"math/rand"
	"time"

	"github.com/tilery/tilery/pkg/geom"
	"github.com/tilery/tilery/pkg/observability"
)

// Engine wraps the pure reducer with the process-owned pieces a session
// needs: the configuration, the random source, and an observer that mirrors
// committed tile lists out (typically into a debounced store writer). The
// engine is synchronous and single-goroutine, matching the event-driven model
// of the frontends; the observer runs after, never during, a transition.
type Engine struct {
	cfg      Config
	rng      *rand.Rand
	state    State
	onCommit func([]Tile)
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithRand sets the random source used by shuffle and arrange. Tests pass a
// fixed seed for reproducible draws.
func WithRand(rng *rand.Rand) EngineOption {
	return func(e *Engine) { e.rng = rng }
}

// WithOnCommit registers an observer called with the new canonical tile list
// after every transition that changed it.
func WithOnCommit(fn func([]Tile)) EngineOption {
	return func(e *Engine) { e.onCommit = fn }
}

// NewEngine creates an engine over an empty board of the given window size.
func NewEngine(cfg Config, window geom.Dims, opts ...EngineOption) *Engine {
	e := &Engine{cfg: cfg, state: NewState(window)}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return e
}

// Load replaces the board wholesale with a decoded tile list, resetting
// history and derived sets. Used once at startup.
func (e *Engine) Load(tiles []Tile) {
	e.state = e.state.WithTiles(tiles)
}

// Dispatch reduces one action and returns the resulting view.
func (e *Engine) Dispatch(a Action) View {
	start := time.Now()
	pre := e.state.Tiles

	e.state = Reduce(e.cfg, e.state, a, e.rng)

	observability.Board().OnAction(context.Background(), actionName(a), time.Since(start))
	if e.onCommit != nil && !tilesEqual(pre, e.state.Tiles) {
		observability.Board().OnCommit(context.Background(), len(e.state.Tiles))
		e.onCommit(cloneTiles(e.state.Tiles))
	}
	return BuildView(e.state)
}

// State returns the current state. Reduce never mutates retained states, so
// handing out the value is safe.
func (e *Engine) State() State { return e.state }

// View projects the current state onto the rendering boundary.
func (e *Engine) View() View { return BuildView(e.state) }

// Config returns the engine's configuration.
func (e *Engine) Config() Config { return e.cfg }

// actionName labels an action for observability hooks.
func actionName(a Action) string {
	switch a.(type) {
	case KeyDown:
		return "key_down"
	case PointerDown:
		return "pointer_down"
	case PointerMove:
		return "pointer_move"
	case PointerUp:
		return "pointer_up"
	case Resize:
		return "resize"
	case StartCompose:
		return "start_compose"
	case SetComposeText:
		return "set_compose_text"
	case ComposeBackspace:
		return "compose_backspace"
	case CancelCompose:
		return "cancel_compose"
	case CommitCompose:
		return "commit_compose"
	case AddFromPrompt:
		return "add_from_prompt"
	case SelectAll:
		return "select_all"
	case Shuffle:
		return "shuffle"
	case Arrange:
		return "arrange"
	case DeleteSelection:
		return "delete_selection"
	case Undo:
		return "undo"
	case Redo:
		return "redo"
	case SetTouchUI:
		return "set_touch_ui"
	case SetHelpVisible:
		return "set_help_visible"
	default:
		return "unknown"
	}
}
