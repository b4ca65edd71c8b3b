package api

import (
	"context"

	"go.uber.org/zap"

	"github.com/wricardo/swap-puzzle/game/engine"
	"github.com/wricardo/swap-puzzle/game/service"
	"github.com/wricardo/swap-puzzle/transport/websocket"
)

// FrameUpdate is the payload of a frame message sent to browser clients
type FrameUpdate struct {
	Frame  *service.Frame      `json:"frame"`
	State  engine.State        `json:"state,omitempty"`
	Won    bool                `json:"won,omitempty"`
	Events []service.GameEvent `json:"events,omitempty"`
}

// NewFrameUpdate returns nil when the event needs no redraw
func NewFrameUpdate(result *service.EventResult) *FrameUpdate {
	if result.Frame == nil {
		return nil
	}
	return &FrameUpdate{
		Frame:  result.Frame,
		State:  result.State,
		Won:    result.Won,
		Events: result.Events,
	}
}

// PointerHandler feeds WebSocket pointer events into the service. The
// resulting frame is broadcast to every client of the session.
func PointerHandler(svc service.GameService, logger *zap.Logger) websocket.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(ctx context.Context, sessionID string, ev engine.Event) (*websocket.Message, error) {
		result, err := svc.Pointer(ctx, sessionID, ev)
		if err != nil {
			return nil, err
		}
		logDrop(logger, result)

		update := NewFrameUpdate(result)
		if update == nil {
			return nil, nil
		}
		return &websocket.Message{
			SessionID: result.SessionID,
			Event:     websocket.EventFrame,
			Data:      update,
		}, nil
	}
}

// logDrop writes one compact line per resolved drag
func logDrop(logger *zap.Logger, result *service.EventResult) {
	t := result.Transition
	if t.From != engine.Dragging || t.Event.Type != engine.PointerUp {
		return
	}

	fields := []zap.Field{
		zap.String("session", result.SessionID),
		zap.String("state", string(result.State)),
	}
	if t.Swap != nil {
		fields = append(fields, zap.Int("tile", int(t.Swap.A)), zap.Int("with", int(t.Swap.B)))
	} else {
		fields = append(fields, zap.Bool("swapped", false))
	}
	if result.Won {
		fields = append(fields, zap.Bool("won", true))
	}
	logger.Info("[DROP]", fields...)
}
