// Command desktop plays the swap puzzle in a local window.
//
// Keys: R restarts the current picture, N picks another one, Esc quits.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/wricardo/swap-puzzle/game/asset"
	"github.com/wricardo/swap-puzzle/game/config"
)

func main() {
	cmd := &cli.Command{
		Name:  "puzzle-desktop",
		Usage: "Play the swap puzzle in a desktop window",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "Path to the YAML config file",
				Value:   "puzzle.yaml",
				Sources: cli.EnvVars("PUZZLE_CONFIG"),
			},
			&cli.StringFlag{
				Name:  "image",
				Usage: "Image to play (random when empty)",
			},
			&cli.IntFlag{
				Name:  "scale",
				Usage: "Window scale factor",
				Value: 1,
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Verbose logging",
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	logger, err := newLogger(cmd.Bool("debug"))
	if err != nil {
		return err
	}
	defer logger.Sync()

	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfgManager, err := config.NewManager(cmd.String("config"))
	if err != nil {
		return err
	}
	cfg := cfgManager.Get()

	catalog, err := asset.NewCatalog(cfg.AssetsDir, logger)
	if err != nil {
		return err
	}

	game, err := NewGame(catalog, cmd.String("image"), cfg.Dimension, cfg.RenderTheme(), logger)
	if err != nil {
		return err
	}

	b := game.machine.Board()
	scale := max(int(cmd.Int("scale")), 1)
	ebiten.SetWindowSize(b.Width()*scale, b.Height()*scale)
	ebiten.SetWindowTitle("Swap Puzzle - " + game.current.Name)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
