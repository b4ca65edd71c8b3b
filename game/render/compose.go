package render

import "github.com/wricardo/swap-puzzle/game/engine"

// Compose builds the ops for a full frame of v. Every frame starts with a
// clear of the whole board and draws in the order
// tiles, highlight, ghost, borders, overlay.
func Compose(v engine.View, redraw engine.Redraw, image string, theme Theme) []Op {
	f := frame{view: v, image: image, theme: theme}

	switch redraw {
	case engine.RedrawStart:
		f.start()
	case engine.RedrawBoard:
		f.board()
	case engine.RedrawPick:
		f.drag(false)
	case engine.RedrawDrag:
		f.drag(true)
	case engine.RedrawWon:
		f.board()
		f.message(theme.WonMessage)
	default:
		return nil
	}
	return f.ops
}

type frame struct {
	view  engine.View
	image string
	theme Theme
	ops   []Op
}

func (f *frame) bounds() engine.Rect {
	return engine.Rect{W: float64(f.view.Width()), H: float64(f.view.Height())}
}

func (f *frame) add(op Op) {
	f.ops = append(f.ops, op)
}

// start shows the whole picture under the start message
func (f *frame) start() {
	b := f.bounds()
	f.add(Op{Kind: OpClear, Dst: b})
	f.add(Op{Kind: OpBlit, Image: f.image, Src: b, Dst: b, Opacity: 1})
	f.message(f.theme.StartMessage)
}

func (f *frame) board() {
	w, h := f.view.TileWidth, f.view.TileHeight
	f.add(Op{Kind: OpClear, Dst: f.bounds()})
	for _, t := range f.view.Tiles {
		f.add(Op{Kind: OpBlit, Image: f.image, Src: t.SourceRect(w, h), Dst: t.Rect(w, h), Opacity: 1})
	}
	for _, t := range f.view.Tiles {
		f.add(Op{Kind: OpStroke, Dst: t.Rect(w, h), Color: f.theme.BorderColor})
	}
}

// drag draws the board without the selected tile, the hover highlight and
// the selected tile as a translucent ghost centred on the pointer
func (f *frame) drag(hover bool) {
	if f.view.Selected == nil {
		f.board()
		return
	}
	selected := f.view.Tile(*f.view.Selected)
	if selected == nil {
		f.board()
		return
	}

	w, h := f.view.TileWidth, f.view.TileHeight
	f.add(Op{Kind: OpClear, Dst: f.bounds()})
	for _, t := range f.view.Tiles {
		if t.ID == selected.ID {
			continue
		}
		f.add(Op{Kind: OpBlit, Image: f.image, Src: t.SourceRect(w, h), Dst: t.Rect(w, h), Opacity: 1})
	}

	if hover && f.view.Hovered != nil {
		if hovered := f.view.Tile(*f.view.Hovered); hovered != nil {
			f.add(Op{
				Kind:    OpFill,
				Dst:     hovered.Rect(w, h),
				Color:   f.theme.HighlightColor,
				Opacity: f.theme.HighlightOpacity,
			})
		}
	}

	opacity := f.theme.PickOpacity
	if hover {
		opacity = f.theme.DragOpacity
	}
	ghost := GhostRect(f.view.Pointer, w, h)
	f.add(Op{Kind: OpBlit, Image: f.image, Src: selected.SourceRect(w, h), Dst: ghost, Opacity: opacity})

	for _, t := range f.view.Tiles {
		if t.ID == selected.ID {
			continue
		}
		f.add(Op{Kind: OpStroke, Dst: t.Rect(w, h), Color: f.theme.BorderColor})
	}
	f.add(Op{Kind: OpStroke, Dst: ghost, Color: f.theme.BorderColor})
}

// message centres a translucent box with text on the board
func (f *frame) message(text string) {
	if text == "" {
		return
	}
	b := f.bounds()
	f.add(Op{
		Kind:    OpFill,
		Dst:     MessageRect(b, f.theme.MessageWidth, f.theme.MessageHeight),
		Color:   f.theme.BackdropColor,
		Opacity: f.theme.BackdropOpacity,
	})
	f.add(Op{
		Kind:   OpText,
		Text:   text,
		Anchor: engine.Point{X: b.W / 2, Y: b.H / 2},
		Color:  f.theme.TextColor,
	})
}

// GhostRect is the rectangle of a dragged tile centred on the pointer
func GhostRect(p engine.Point, tileWidth, tileHeight int) engine.Rect {
	w, h := float64(tileWidth), float64(tileHeight)
	return engine.Rect{X: p.X - w/2, Y: p.Y - h/2, W: w, H: h}
}

// MessageRect centres a w×h box inside bounds
func MessageRect(bounds engine.Rect, w, h float64) engine.Rect {
	return engine.Rect{
		X: bounds.X + (bounds.W-w)/2,
		Y: bounds.Y + (bounds.H-h)/2,
		W: w,
		H: h,
	}
}
