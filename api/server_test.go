package api

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gorillaws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/wricardo/swap-puzzle/game/asset"
	"github.com/wricardo/swap-puzzle/game/engine"
	"github.com/wricardo/swap-puzzle/game/render"
	"github.com/wricardo/swap-puzzle/game/service"
	"github.com/wricardo/swap-puzzle/game/session"
	"github.com/wricardo/swap-puzzle/transport/websocket"
)

// scripted makes every new board exchange tiles 0 and 1 on the first click
type scripted struct {
	values []int
	next   int
}

func (s *scripted) IntN(n int) int {
	v := s.values[s.next%len(s.values)]
	s.next++
	if v >= n {
		return n - 1
	}
	return v
}

type testEnv struct {
	server  *httptest.Server
	service service.GameService
	hub     *websocket.Hub
}

func setupTestServer(t *testing.T, withHub bool) *testEnv {
	t.Helper()
	logger := zaptest.NewLogger(t)

	dir := t.TempDir()
	f, err := os.Create(filepath.Join(dir, "cat.png"))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, 100, 100))))
	require.NoError(t, f.Close())

	catalog, err := asset.NewCatalog(dir, logger)
	require.NoError(t, err)

	svc := service.NewGameService(session.NewManager(), catalog, service.Options{
		Dimension: 2,
		Theme:     render.DefaultTheme(),
		NewRandom: func() engine.RandomSource { return &scripted{values: []int{3, 2, 0, 0}} },
	}, logger)

	env := &testEnv{service: svc}
	if withHub {
		env.hub = websocket.NewHub(PointerHandler(svc, logger), logger)
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			env.hub.Run(ctx)
			close(done)
		}()
		t.Cleanup(func() {
			cancel()
			<-done
		})
	}

	env.server = httptest.NewServer(NewServer(svc, env.hub, catalog, logger))
	t.Cleanup(env.server.Close)
	return env
}

func do(t *testing.T, method, url string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(data, &v), string(data))
	return v
}

func createSession(t *testing.T, env *testEnv) service.SessionInfo {
	t.Helper()
	resp, data := do(t, "POST", env.server.URL+"/api/sessions", map[string]string{"image": "cat.png"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
	return decode[service.SessionInfo](t, data)
}

func pointer(t *testing.T, env *testEnv, id string, typ engine.EventType, x, y float64) service.EventResult {
	t.Helper()
	resp, data := do(t, "POST", env.server.URL+"/api/sessions/"+id+"/pointer",
		websocket.Inbound{Type: typ, X: x, Y: y})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	return decode[service.EventResult](t, data)
}

func TestHealth(t *testing.T) {
	env := setupTestServer(t, false)
	resp, data := do(t, "GET", env.server.URL+"/healthz", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"healthy"}`, string(data))
}

func TestIndexServed(t *testing.T) {
	env := setupTestServer(t, false)
	resp, data := do(t, "GET", env.server.URL+"/", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), "Swap Puzzle")
}

func TestSessionLifecycle(t *testing.T) {
	env := setupTestServer(t, false)
	info := createSession(t, env)
	assert.Len(t, info.ID, 4)
	assert.Equal(t, engine.Idle, info.State)
	assert.Equal(t, 100, info.Width)

	resp, data := do(t, "GET", env.server.URL+"/api/sessions/"+strings.ToUpper(info.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, info.ID, decode[service.SessionInfo](t, data).ID)

	resp, data = do(t, "GET", env.server.URL+"/api/sessions", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[struct {
		Sessions []service.SessionInfo `json:"sessions"`
		Count    int                   `json:"count"`
	}](t, data)
	assert.Equal(t, 1, list.Count)

	resp, _ = do(t, "DELETE", env.server.URL+"/api/sessions/"+info.ID, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, data = do(t, "GET", env.server.URL+"/api/sessions/"+info.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, decode[map[string]string](t, data)["error"], "session not found")
}

func TestCreateSession_Errors(t *testing.T) {
	env := setupTestServer(t, false)

	resp, _ := do(t, "POST", env.server.URL+"/api/sessions", map[string]string{"image": "dog.png"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	req, err := http.NewRequest("POST", env.server.URL+"/api/sessions", strings.NewReader("{oops"))
	require.NoError(t, err)
	raw, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	raw.Body.Close()
	assert.Equal(t, http.StatusBadRequest, raw.StatusCode)

	// no body picks a random image
	resp, _ = do(t, "POST", env.server.URL+"/api/sessions", nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestPointer_PlayToWin(t *testing.T) {
	env := setupTestServer(t, false)
	info := createSession(t, env)

	res := pointer(t, env, info.ID, engine.PointerDown, 1, 1)
	assert.Equal(t, engine.Shuffled, res.State)
	require.NotNil(t, res.Frame)
	assert.Equal(t, engine.RedrawBoard, res.Frame.Redraw)

	resp, data := do(t, "GET", env.server.URL+"/api/sessions/"+info.ID+"/board", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	view := decode[engine.View](t, data)
	require.Equal(t, engine.Slot{X: 50}, view.Tile(0).Position)
	require.Equal(t, engine.Slot{}, view.Tile(1).Position)

	res = pointer(t, env, info.ID, engine.PointerDown, 75, 25)
	assert.Equal(t, engine.Dragging, res.State)
	res = pointer(t, env, info.ID, engine.PointerMove, 25, 25)
	require.NotNil(t, res.Transition.Hovered)
	assert.Equal(t, engine.TileID(1), *res.Transition.Hovered)
	res = pointer(t, env, info.ID, engine.PointerUp, 25, 25)
	assert.True(t, res.Won)
	assert.Equal(t, engine.Won, res.State)

	resp, data = do(t, "GET", env.server.URL+"/api/sessions/"+info.ID+"/frame", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	frame := decode[service.Frame](t, data)
	assert.Equal(t, engine.RedrawWon, frame.Redraw)
}

func TestPointer_Errors(t *testing.T) {
	env := setupTestServer(t, false)
	info := createSession(t, env)

	resp, _ := do(t, "POST", env.server.URL+"/api/sessions/"+info.ID+"/pointer",
		map[string]any{"type": "wheel", "x": 1, "y": 1})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, "POST", env.server.URL+"/api/sessions/zzzz/pointer",
		websocket.Inbound{Type: engine.PointerDown})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRestartSession(t *testing.T) {
	env := setupTestServer(t, false)
	info := createSession(t, env)
	pointer(t, env, info.ID, engine.PointerDown, 1, 1)

	resp, data := do(t, "POST", env.server.URL+"/api/sessions/"+info.ID+"/restart", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, engine.Idle, decode[service.SessionInfo](t, data).State)
}

func TestImagesAndAssets(t *testing.T) {
	env := setupTestServer(t, false)

	resp, data := do(t, "GET", env.server.URL+"/api/images", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	images := decode[struct {
		Images []asset.Image `json:"images"`
		Count  int           `json:"count"`
	}](t, data)
	require.Equal(t, 1, images.Count)
	assert.Equal(t, "cat.png", images.Images[0].Name)

	resp, data = do(t, "GET", env.server.URL+"/assets/cat.png", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))

	resp, _ = do(t, "GET", env.server.URL+"/assets/missing.png", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = do(t, "GET", env.server.URL+"/assets/.secret", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestWebSocket(t *testing.T) {
	env := setupTestServer(t, true)
	info := createSession(t, env)

	resp, _ := do(t, "GET", env.server.URL+"/ws", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp, _ = do(t, "GET", env.server.URL+"/ws?session=zzzz", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	url := "ws" + strings.TrimPrefix(env.server.URL, "http") + "/ws?session=" + info.ID
	conn, _, err := gorillaws.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	type message struct {
		Event string      `json:"event"`
		Data  FrameUpdate `json:"data"`
		Error string      `json:"error"`
	}
	read := func() message {
		conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		var m message
		require.NoError(t, conn.ReadJSON(&m))
		return m
	}

	first := read()
	assert.Equal(t, websocket.EventFrame, first.Event)
	require.NotNil(t, first.Data.Frame)
	assert.Equal(t, engine.RedrawStart, first.Data.Frame.Redraw)

	require.NoError(t, conn.WriteJSON(websocket.Inbound{Type: engine.PointerDown, X: 5, Y: 5}))
	shuffled := read()
	assert.Equal(t, engine.RedrawBoard, shuffled.Data.Frame.Redraw)
	assert.Equal(t, engine.Shuffled, shuffled.Data.State)

	// REST events are mirrored to the socket
	pointer(t, env, info.ID, engine.PointerDown, 75, 25)
	picked := read()
	assert.Equal(t, engine.RedrawPick, picked.Data.Frame.Redraw)

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "wheel"}))
	failed := read()
	assert.Equal(t, websocket.EventError, failed.Event)
	assert.Contains(t, failed.Error, "invalid pointer event")
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusUnprocessableEntity, statusFor(engine.ErrImageTooSmall))
	assert.Equal(t, http.StatusServiceUnavailable, statusFor(asset.ErrNoAssets))
	assert.Equal(t, http.StatusInternalServerError, statusFor(io.ErrUnexpectedEOF))
}
