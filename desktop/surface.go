package main

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"
	"golang.org/x/image/font/basicfont"

	"github.com/wricardo/swap-puzzle/game/engine"
	"github.com/wricardo/swap-puzzle/game/render"
)

var messageFace = text.NewGoXFace(basicfont.Face7x13)

// screenSurface draws render ops onto an ebiten screen
type screenSurface struct {
	screen *ebiten.Image
	images map[string]*ebiten.Image
	logger *zap.Logger
}

func (s *screenSurface) Supported() bool {
	return s.screen != nil
}

func (s *screenSurface) Clear(r engine.Rect) {
	s.screen.SubImage(toImageRect(r)).(*ebiten.Image).Clear()
}

func (s *screenSurface) Blit(name string, src, dst engine.Rect, opacity float64) {
	img, ok := s.images[name]
	if !ok {
		s.logger.Warn("blit of unknown image", zap.String("image", name))
		return
	}

	sub := img.SubImage(toImageRect(src)).(*ebiten.Image)
	op := &ebiten.DrawImageOptions{}
	if src.W > 0 && src.H > 0 {
		op.GeoM.Scale(dst.W/src.W, dst.H/src.H)
	}
	op.GeoM.Translate(dst.X, dst.Y)
	op.ColorScale.ScaleAlpha(float32(opacity))
	s.screen.DrawImage(sub, op)
}

func (s *screenSurface) StrokeRect(r engine.Rect, c string) {
	vector.StrokeRect(s.screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), 1, s.color(c, 1), false)
}

func (s *screenSurface) FillRect(r engine.Rect, c string, opacity float64) {
	vector.DrawFilledRect(s.screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), s.color(c, opacity), false)
}

// DrawText centres the text on anchor
func (s *screenSurface) DrawText(msg string, anchor engine.Point, c string) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(anchor.X, anchor.Y)
	op.ColorScale.ScaleWithColor(s.color(c, 1))
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(s.screen, msg, messageFace, op)
}

func (s *screenSurface) color(name string, opacity float64) color.Color {
	c, err := render.ParseColor(name)
	if err != nil {
		s.logger.Warn("unknown colour", zap.String("color", name), zap.Error(err))
		c = color.RGBA{A: 255}
	}
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(opacity*255 + 0.5)}
}

func toImageRect(r engine.Rect) image.Rectangle {
	return image.Rect(int(r.X), int(r.Y), int(r.X+r.W), int(r.Y+r.H))
}
