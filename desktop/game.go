package main

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/wricardo/swap-puzzle/game/asset"
	"github.com/wricardo/swap-puzzle/game/engine"
	"github.com/wricardo/swap-puzzle/game/render"
)

// Game runs one local puzzle inside an ebiten window
type Game struct {
	catalog   *asset.Catalog
	dimension int
	theme     render.Theme
	logger    *zap.Logger

	current asset.Image
	images  map[string]*ebiten.Image
	machine *engine.Machine
	input   pointerTracker
}

// NewGame prepares a puzzle for the named image, or a random one when name is empty
func NewGame(catalog *asset.Catalog, name string, dimension int, theme render.Theme, logger *zap.Logger) (*Game, error) {
	g := &Game{
		catalog:   catalog,
		dimension: dimension,
		theme:     theme,
		logger:    logger,
		images:    make(map[string]*ebiten.Image),
	}
	if err := g.load(name); err != nil {
		return nil, err
	}
	return g, nil
}

// load decodes the image (once) and starts a fresh machine for it
func (g *Game) load(name string) error {
	var (
		img asset.Image
		err error
	)
	if name == "" {
		img, err = g.catalog.Pick(engine.DefaultRandom())
	} else {
		img, err = g.catalog.Get(name)
	}
	if err != nil {
		return err
	}

	if _, ok := g.images[img.Name]; !ok {
		f, err := g.catalog.Open(img.Name)
		if err != nil {
			return err
		}
		decoded, _, err := image.Decode(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("decode %s: %w", img.Name, err)
		}
		g.images[img.Name] = ebiten.NewImageFromImage(decoded)
	}

	machine, err := engine.NewGame(img.Width, img.Height, g.dimension, engine.DefaultRandom())
	if err != nil {
		return fmt.Errorf("image '%s': %w", img.Name, err)
	}

	g.current = img
	g.machine = machine
	g.logger.Info("puzzle ready",
		zap.String("image", img.Name),
		zap.Int("dimension", g.dimension))
	return nil
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		return g.load(g.current.Name)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		return g.load("")
	}

	x, y := ebiten.CursorPosition()
	bounds := g.machine.Board().Bounds()
	mouse := mouseState{
		X:             x,
		Y:             y,
		JustPressed:   inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		JustReleased:  inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
		InsideSurface: bounds.Contains(engine.Point{X: float64(x), Y: float64(y)}),
	}

	for _, ev := range g.input.events(mouse) {
		t := g.machine.Handle(ev)
		if t.Ignored || ev.Type == engine.PointerMove {
			continue
		}
		g.logger.Debug("pointer",
			zap.String("event", string(ev.Type)),
			zap.String("from", string(t.From)),
			zap.String("to", string(t.To)),
			zap.Bool("won", t.Won))
		if t.Won {
			g.logger.Info("puzzle solved",
				zap.String("image", g.current.Name),
				zap.Int("swaps", g.machine.Swaps()))
		}
	}
	return nil
}

// Draw repaints the whole frame for the current state every tick
func (g *Game) Draw(screen *ebiten.Image) {
	surface := &screenSurface{screen: screen, images: g.images, logger: g.logger}
	ops := render.Compose(g.machine.View(), g.machine.Redraw(), g.current.Name, g.theme)
	if err := render.Replay(surface, ops); err != nil {
		g.logger.Error("draw failed", zap.Error(err))
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	b := g.machine.Board()
	return b.Width(), b.Height()
}
