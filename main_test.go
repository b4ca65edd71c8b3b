package main

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/wricardo/swap-puzzle/game/config"
	"github.com/wricardo/swap-puzzle/game/engine"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	err := app.Run(context.Background(), append([]string{"puzzle"}, args...))
	return out.String(), err
}

func TestConstants(t *testing.T) {
	assert.NotEmpty(t, Version)
	assert.Equal(t, "Swap Puzzle", AppName)
}

func TestVersionCommand(t *testing.T) {
	out, err := runApp(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "Swap Puzzle v"+Version+"\n", out)
}

func TestConfigPrint_FlagOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "puzzle.yaml")

	out, err := runApp(t, "--config", path, "--dimension", "3", "--addr", ":9999", "config", "print")
	require.NoError(t, err)

	cfg, err := config.Parse([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Dimension)
	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, "assets", cfg.AssetsDir)
}

func TestConfigPrint_InvalidOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "puzzle.yaml")

	_, err := runApp(t, "--config", path, "--dimension", "1", "config", "print")
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "puzzle.yaml")

	out, err := runApp(t, "--config", path, "--assets", "pictures", "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "pictures", cfg.AssetsDir)
	assert.Equal(t, engine.DefaultDimension, cfg.Dimension)

	_, err = runApp(t, "--config", path, "config", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = runApp(t, "--config", path, "--dimension", "5", "config", "init", "--force")
	require.NoError(t, err)
	cfg, err = config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Dimension)
}

func TestInitializeServices(t *testing.T) {
	dir := t.TempDir()
	f, err := os.Create(filepath.Join(dir, "cat.png"))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, 80, 80))))
	require.NoError(t, f.Close())

	cfg := config.Default()
	cfg.AssetsDir = dir

	svcs, err := initializeServices(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Equal(t, 1, svcs.catalog.Len())

	info, err := svcs.game.CreateSession(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "cat.png", info.Image.Name)
	assert.Equal(t, engine.Idle, info.State)
	assert.Equal(t, 1, svcs.sessions.Count())
}

func TestInitializeServices_MissingAssets(t *testing.T) {
	cfg := config.Default()
	cfg.AssetsDir = filepath.Join(t.TempDir(), "missing")

	_, err := initializeServices(cfg, zaptest.NewLogger(t))
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "failed to load assets"))
}
