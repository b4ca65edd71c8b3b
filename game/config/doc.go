// Package config provides configuration management for the swap puzzle.
//
// The config package handles:
//   - Loading the YAML configuration file over built-in defaults
//   - Validation with field-specific errors
//   - .env loading and PUZZLE_* environment overrides
//   - Writing the effective configuration back out
//
// Configuration Format:
//
//	dimension: 4
//	assets_dir: assets
//	theme:
//	  pick_opacity: 0.8
//	  drag_opacity: 0.6
//	  highlight_color: green
//	  highlight_opacity: 0.4
//	  border_color: black
//	  backdrop_color: black
//	  backdrop_opacity: 0.5
//	  text_color: white
//	  message_width: 200
//	  message_height: 50
//	messages:
//	  start: Click to Start
//	  won: You won !
//	session:
//	  max_idle: 30m
//	  cleanup_interval: 5m
//	server:
//	  addr: localhost:8080
//
// Every key is optional. The dimension is fixed for the lifetime of the
// process.
//
// Usage:
//
//	if err := config.LoadDotEnv(); err != nil {
//		log.Fatal(err)
//	}
//	manager, err := config.NewManager("puzzle.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	cfg := manager.Get()
//
// Environment overrides: PUZZLE_DIMENSION, PUZZLE_ASSETS_DIR, PUZZLE_ADDR,
// PUZZLE_MAX_IDLE, PUZZLE_START_MESSAGE and PUZZLE_WON_MESSAGE.
package config
