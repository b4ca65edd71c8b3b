// Command puzzle runs the swap picture puzzle.
//
// It supports these commands:
//  1. "serve" (default) – runs the HTTP server exposing the REST API, the WebSocket hub and the browser client
//  2. "mcp" – runs an MCP server over stdio against an in-process game service
//  3. "config" – writes or prints the YAML configuration
//  4. "version" – prints the version
//
// Flags and PUZZLE_* environment variables override the config file.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wricardo/swap-puzzle/api"
	"github.com/wricardo/swap-puzzle/game/asset"
	"github.com/wricardo/swap-puzzle/game/config"
	"github.com/wricardo/swap-puzzle/game/service"
	"github.com/wricardo/swap-puzzle/game/session"
	"github.com/wricardo/swap-puzzle/transport/mcp"
	"github.com/wricardo/swap-puzzle/transport/websocket"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Swap Puzzle"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "puzzle",
		Usage:   "Swap picture puzzle server",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "Path to the YAML config file",
				Value:   "puzzle.yaml",
				Sources: cli.EnvVars("PUZZLE_CONFIG"),
			},
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "Enable debug logging",
				Sources: cli.EnvVars("PUZZLE_DEBUG"),
			},
			&cli.StringFlag{
				Name:  "addr",
				Usage: "HTTP listen address",
			},
			&cli.StringFlag{
				Name:  "assets",
				Usage: "Directory holding the puzzle images",
			},
			&cli.IntFlag{
				Name:  "dimension",
				Usage: "Tiles per side",
			},
		},
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP server with REST API, WebSocket and browser client",
				Action: serve,
			},
			{
				Name:   "mcp",
				Usage:  "Run an MCP server over stdio",
				Action: serveMCP,
			},
			{
				Name:  "config",
				Usage: "Manage the configuration file",
				Commands: []*cli.Command{
					{
						Name:  "init",
						Usage: "Write the default configuration to --config",
						Flags: []cli.Flag{
							&cli.BoolFlag{Name: "force", Usage: "Overwrite an existing file"},
						},
						Action: configInit,
					},
					{
						Name:   "print",
						Usage:  "Print the effective configuration",
						Action: configPrint,
					},
				},
			},
			{
				Name:  "version",
				Usage: "Show version information",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					fmt.Fprintf(cmd.Root().Writer, "%s v%s\n", AppName, Version)
					return nil
				},
			},
		},
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// loadConfig reads .env, the config file and the flag overrides
func loadConfig(cmd *cli.Command) (*config.Manager, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}

	manager, err := config.NewManager(cmd.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	err = manager.Update(func(c *config.Config) {
		if cmd.IsSet("addr") {
			c.Server.Addr = cmd.String("addr")
		}
		if cmd.IsSet("assets") {
			c.AssetsDir = cmd.String("assets")
		}
		if cmd.IsSet("dimension") {
			c.Dimension = int(cmd.Int("dimension"))
		}
	})
	if err != nil {
		return nil, err
	}
	return manager, nil
}

// services bundles everything the hosts share
type services struct {
	config   *config.Config
	catalog  *asset.Catalog
	sessions *session.Manager
	game     service.GameService
}

func initializeServices(cfg *config.Config, logger *zap.Logger) (*services, error) {
	catalog, err := asset.NewCatalog(cfg.AssetsDir, logger.Named("assets"))
	if err != nil {
		return nil, fmt.Errorf("failed to load assets: %w", err)
	}
	if catalog.Len() == 0 {
		logger.Warn("no images found", zap.String("dir", cfg.AssetsDir))
	}

	sessions := session.NewManager()
	game := service.NewGameService(sessions, catalog, service.Options{
		Dimension: cfg.Dimension,
		Theme:     cfg.RenderTheme(),
	}, logger.Named("service"))

	return &services{
		config:   cfg,
		catalog:  catalog,
		sessions: sessions,
		game:     game,
	}, nil
}

func serve(ctx context.Context, cmd *cli.Command) error {
	logger, err := newLogger(cmd.Bool("debug"))
	if err != nil {
		return err
	}
	defer logger.Sync()

	manager, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cfg := manager.Get()

	svcs, err := initializeServices(cfg, logger)
	if err != nil {
		return err
	}

	hub := websocket.NewHub(api.PointerHandler(svcs.game, logger.Named("ws")), logger.Named("hub"))
	apiServer := api.NewServer(svcs.game, hub, svcs.catalog, logger.Named("api"))

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      apiServer,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return hub.Run(gctx)
	})
	g.Go(func() error {
		return svcs.catalog.Watch(gctx)
	})
	g.Go(func() error {
		return svcs.sessions.RunCleanup(gctx, cfg.Session.CleanupInterval, cfg.Session.MaxIdle, logger.Named("session"))
	})
	g.Go(func() error {
		logger.Info("HTTP server listening",
			zap.String("addr", cfg.Server.Addr),
			zap.String("client", fmt.Sprintf("http://%s/", cfg.Server.Addr)),
			zap.String("websocket", fmt.Sprintf("ws://%s/ws?session=<session_id>", cfg.Server.Addr)))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}

func serveMCP(ctx context.Context, cmd *cli.Command) error {
	logger, err := newLogger(cmd.Bool("debug"))
	if err != nil {
		return err
	}
	defer logger.Sync()

	manager, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cfg := manager.Get()

	svcs, err := initializeServices(cfg, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go svcs.sessions.RunCleanup(ctx, cfg.Session.CleanupInterval, cfg.Session.MaxIdle, logger.Named("session"))

	logger.Info("serving MCP over stdio", zap.String("assets", cfg.AssetsDir))
	return mcp.NewServer(svcs.game, Version, logger.Named("mcp")).ServeStdio()
}

func configInit(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("config")
	if _, err := os.Stat(path); err == nil && !cmd.Bool("force") {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	manager, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := manager.Save(path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.Root().Writer, "Wrote %s\n", path)
	return nil
}

func configPrint(ctx context.Context, cmd *cli.Command) error {
	manager, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	data, err := config.Marshal(manager.Get())
	if err != nil {
		return err
	}
	_, err = cmd.Root().Writer.Write(data)
	return err
}
