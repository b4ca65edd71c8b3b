// Package service provides the business logic layer for the swap puzzle.
//
// The service package implements:
//   - Multi-session puzzle management
//   - Image selection for new sessions
//   - Pointer event dispatch with per-session serialisation
//   - Frame composition for remote surfaces
//
// Core Interfaces:
//
// GameService is the main service interface used by the REST, WebSocket and
// MCP transports. SessionManager stores sessions; ImageSource lists and
// picks the pictures.
//
// Architecture:
//
// Each session owns one engine.Machine. Machines are not safe for concurrent
// use, so every call that reaches a machine goes through Session.Do, which
// holds the session lock. Sessions never share state.
//
// Usage:
//
//	sessions := session.NewManager()
//	catalog, _ := asset.NewCatalog("assets", logger)
//	svc := service.NewGameService(sessions, catalog, service.Options{Dimension: 4}, logger)
//
//	info, err := svc.CreateSession(ctx, "")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := svc.Pointer(ctx, info.ID, engine.Event{Type: engine.PointerDown})
//	// result.Frame holds the ops to draw, if any
package service
