package board

import "github.com/tilery/tilery/pkg/geom"

// View is the rendering boundary: everything a frontend needs to draw one
// frame, derived from a State. The canonical tile list is merged with live
// move previews and the composition ghosts, so renderers never reach into
// gesture state themselves.
type View struct {
	// Tiles is the merged tile list in z-order: canonical tiles (with any
	// move preview applied in place) followed by composition ghosts.
	Tiles []Tile

	// Selected is the effective selection, including the live effect of an
	// active selection box.
	Selected IDSet

	// Appearing holds the IDs that should get a one-shot appearance pulse.
	Appearing IDSet

	// Animate reports whether position changes should ease rather than snap.
	Animate bool

	// SelectionRect is the active rubber-band rectangle, if any.
	SelectionRect *geom.BBox

	// ComposeText is the in-progress composition text; Composing
	// distinguishes "composing with empty text" from "not composing".
	ComposeText string
	Composing   bool

	// Window, TouchUI, HelpVisible and ZeroState mirror the state flags.
	Window      geom.Dims
	TouchUI     bool
	HelpVisible bool
	ZeroState   bool
}

// BuildView projects s onto its rendering boundary.
func BuildView(s State) View {
	v := View{
		Selected:    s.Selection.Clone(),
		Appearing:   s.Appearing.Clone(),
		Animate:     s.Animate,
		Window:      s.Window,
		TouchUI:     s.TouchUI,
		HelpVisible: s.HelpVisible,
		ZeroState:   s.ZeroState,
	}

	v.Tiles = cloneTiles(s.Tiles)
	for _, mv := range s.Moves {
		for i, t := range v.Tiles {
			if p, ok := mv.Preview[t.ID]; ok {
				v.Tiles[i] = p
			}
		}
	}

	if s.Select != nil {
		rect := s.Select.Rect()
		v.SelectionRect = &rect
		if s.Select.Deselecting {
			v.Selected = v.Selected.Diff(s.Select.Tiles)
		} else {
			v.Selected = v.Selected.Union(s.Select.Tiles)
		}
	}

	if s.Composing != nil {
		v.Composing = true
		v.ComposeText = s.Composing.Letters
		v.Tiles = append(v.Tiles, cloneTiles(s.Composing.Preview)...)
	}
	return v
}
