package render

import (
	"errors"
	"fmt"

	"github.com/wricardo/swap-puzzle/game/engine"
)

var ErrUnsupportedSurface = errors.New("drawing surface unsupported")

// Surface is the drawing target a host provides. Colours are CSS-style hex
// strings ("#rrggbb") or one of the names known to ParseColor.
type Surface interface {
	Clear(r engine.Rect)
	Blit(image string, src, dst engine.Rect, opacity float64)
	StrokeRect(r engine.Rect, color string)
	FillRect(r engine.Rect, color string, opacity float64)
	DrawText(text string, anchor engine.Point, color string)
}

// Capable is implemented by surfaces that can detect missing drawing support
// at runtime (a browser without canvas, a headless display).
type Capable interface {
	Supported() bool
}

// Check reports ErrUnsupportedSurface for a nil surface or one that says it
// cannot draw. Hosts call it once before starting a session.
func Check(s Surface) error {
	if s == nil {
		return fmt.Errorf("%w: no surface", ErrUnsupportedSurface)
	}
	if c, ok := s.(Capable); ok && !c.Supported() {
		return fmt.Errorf("%w: %T", ErrUnsupportedSurface, s)
	}
	return nil
}

// OpKind names a surface call
type OpKind string

const (
	OpClear  OpKind = "clear"
	OpBlit   OpKind = "blit"
	OpStroke OpKind = "stroke"
	OpFill   OpKind = "fill"
	OpText   OpKind = "text"
)

// Op is one recorded surface call. Only the fields relevant to Kind are set.
type Op struct {
	Kind    OpKind       `json:"kind"`
	Image   string       `json:"image,omitempty"`
	Src     engine.Rect  `json:"src"`
	Dst     engine.Rect  `json:"dst"`
	Color   string       `json:"color,omitempty"`
	Opacity float64      `json:"opacity,omitempty"`
	Text    string       `json:"text,omitempty"`
	Anchor  engine.Point `json:"anchor"`
}

// Apply issues the op on s
func (op Op) Apply(s Surface) {
	switch op.Kind {
	case OpClear:
		s.Clear(op.Dst)
	case OpBlit:
		s.Blit(op.Image, op.Src, op.Dst, op.Opacity)
	case OpStroke:
		s.StrokeRect(op.Dst, op.Color)
	case OpFill:
		s.FillRect(op.Dst, op.Color, op.Opacity)
	case OpText:
		s.DrawText(op.Text, op.Anchor, op.Color)
	}
}

// Replay issues ops on s in order
func Replay(s Surface, ops []Op) error {
	if err := Check(s); err != nil {
		return err
	}
	for _, op := range ops {
		op.Apply(s)
	}
	return nil
}

// Recorder is a Surface that keeps every call as an Op
type Recorder struct {
	Ops []Op
}

func (r *Recorder) Clear(rect engine.Rect) {
	r.Ops = append(r.Ops, Op{Kind: OpClear, Dst: rect})
}

func (r *Recorder) Blit(image string, src, dst engine.Rect, opacity float64) {
	r.Ops = append(r.Ops, Op{Kind: OpBlit, Image: image, Src: src, Dst: dst, Opacity: opacity})
}

func (r *Recorder) StrokeRect(rect engine.Rect, color string) {
	r.Ops = append(r.Ops, Op{Kind: OpStroke, Dst: rect, Color: color})
}

func (r *Recorder) FillRect(rect engine.Rect, color string, opacity float64) {
	r.Ops = append(r.Ops, Op{Kind: OpFill, Dst: rect, Color: color, Opacity: opacity})
}

func (r *Recorder) DrawText(text string, anchor engine.Point, color string) {
	r.Ops = append(r.Ops, Op{Kind: OpText, Text: text, Anchor: anchor, Color: color})
}

// Reset drops recorded ops
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
}
