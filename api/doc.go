// Package api provides the HTTP surface of the swap puzzle.
//
// The api package implements:
//   - RESTful endpoints for session lifecycle and pointer events
//   - Frame and board snapshots for remote renderers
//   - Image listing and serving
//   - WebSocket upgrade handling
//   - The embedded browser client
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create a session ({"image": "cat.png"}, optional)
//   - GET /api/sessions - List sessions
//   - GET /api/sessions/{id} - Get one session
//   - DELETE /api/sessions/{id} - Delete a session
//   - POST /api/sessions/{id}/restart - New unshuffled board, same image
//
// Interaction:
//   - POST /api/sessions/{id}/pointer - {"type": "pointer_down", "x": 10, "y": 20}
//   - GET /api/sessions/{id}/frame - Drawing ops for the current state
//   - GET /api/sessions/{id}/board - Tiles, selection and counters
//
// Images:
//   - GET /api/images - Decodable images in the asset directory
//   - GET /assets/{name} - Image bytes
//
// Other:
//   - GET /ws?session={id} - WebSocket; pointer events in, frames out
//   - GET /healthz - Liveness
//   - GET / - Browser client
//
// Errors are returned as {"error": "message"} with 400 for malformed input,
// 404 for unknown sessions or images, 422 for images that cannot be cut at
// the configured dimension and 503 when no images are available.
//
// Every pointer event that changes the picture is also broadcast to the
// session's WebSocket clients, so a REST-driven session can be watched live
// in the browser.
package api
