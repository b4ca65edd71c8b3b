package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/wricardo/swap-puzzle/game/asset"
	"github.com/wricardo/swap-puzzle/game/engine"
	"github.com/wricardo/swap-puzzle/game/render"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	images   ImageSource
	opts     Options
	logger   *zap.Logger
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, images ImageSource, opts Options, logger *zap.Logger) GameService {
	if opts.Dimension == 0 {
		opts.Dimension = engine.DefaultDimension
	}
	if opts.Theme == (render.Theme{}) {
		opts.Theme = render.DefaultTheme()
	}
	if opts.NewRandom == nil {
		opts.NewRandom = engine.DefaultRandom
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &gameServiceImpl{
		sessions: sessions,
		images:   images,
		opts:     opts,
		logger:   logger,
	}
}

// CreateSession starts a puzzle on the named image, or a random one when name is empty
func (s *gameServiceImpl) CreateSession(ctx context.Context, imageName string) (*SessionInfo, error) {
	img, err := s.pickImage(imageName)
	if err != nil {
		return nil, err
	}

	machine, err := s.newMachine(img)
	if err != nil {
		return nil, err
	}

	// Let session manager generate a proper 4-character ID
	sess, err := s.sessions.Create("", img, machine)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.logger.Info("session created",
		zap.String("session", sess.ID),
		zap.String("image", img.Name),
		zap.Int("dimension", s.opts.Dimension))

	return s.info(sess), nil
}

func (s *gameServiceImpl) pickImage(name string) (asset.Image, error) {
	if name == "" {
		img, err := s.images.Pick(s.opts.NewRandom())
		if err != nil {
			return asset.Image{}, fmt.Errorf("failed to pick image: %w", err)
		}
		return img, nil
	}
	img, err := s.images.Get(name)
	if err != nil {
		return asset.Image{}, fmt.Errorf("image '%s': %w", name, err)
	}
	return img, nil
}

func (s *gameServiceImpl) newMachine(img asset.Image) (*engine.Machine, error) {
	machine, err := engine.NewGame(img.Width, img.Height, s.opts.Dimension, s.opts.NewRandom())
	if err != nil {
		return nil, fmt.Errorf("image '%s': %w", img.Name, err)
	}
	return machine, nil
}

func (s *gameServiceImpl) session(id string) (*Session, error) {
	sess, err := s.sessions.Get(id)
	if err != nil {
		return nil, fmt.Errorf("session '%s': %w", id, err)
	}
	s.sessions.Touch(id)
	return sess, nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	return s.info(sess), nil
}

// ListSessions returns all active sessions, oldest first
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	sessions := s.sessions.List()
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
	})

	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.info(sess))
	}
	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(sessionID); err != nil {
		return fmt.Errorf("session '%s': %w", sessionID, err)
	}
	s.logger.Info("session deleted", zap.String("session", sessionID))
	return nil
}

// RestartSession replaces the machine with a fresh, unshuffled one on the same image
func (s *gameServiceImpl) RestartSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	machine, err := s.newMachine(sess.Image)
	if err != nil {
		return nil, err
	}
	sess.Replace(machine)

	s.logger.Info("session restarted", zap.String("session", sess.ID))
	return s.info(sess), nil
}

// Pointer delivers one pointer event to the session machine
func (s *gameServiceImpl) Pointer(ctx context.Context, sessionID string, ev engine.Event) (*EventResult, error) {
	if !ev.Type.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEvent, ev.Type)
	}

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	result := &EventResult{SessionID: sess.ID}
	sess.Do(func(m *engine.Machine) {
		t := m.Handle(ev)
		result.Transition = t
		result.State = m.State()
		result.Won = m.IsWon()
		result.Events = gameEvents(t, time.Now())
		if t.Redraw != engine.RedrawNone {
			result.Frame = s.frame(sess, m, t.Redraw)
		}
	})

	if !result.Transition.Ignored {
		s.logger.Debug("pointer event",
			zap.String("session", sess.ID),
			zap.String("event", string(ev.Type)),
			zap.String("from", string(result.Transition.From)),
			zap.String("to", string(result.Transition.To)))
	}
	return result, nil
}

// Frame returns the full frame for the current state
func (s *gameServiceImpl) Frame(ctx context.Context, sessionID string) (*Frame, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	var frame *Frame
	sess.Do(func(m *engine.Machine) {
		frame = s.frame(sess, m, m.Redraw())
	})
	return frame, nil
}

// Board returns a snapshot of the session machine
func (s *gameServiceImpl) Board(ctx context.Context, sessionID string) (*engine.View, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	var view engine.View
	sess.Do(func(m *engine.Machine) {
		view = m.View()
	})
	return &view, nil
}

// ListImages returns the pictures sessions can be created with
func (s *gameServiceImpl) ListImages(ctx context.Context) ([]asset.Image, error) {
	return s.images.List(), nil
}

func (s *gameServiceImpl) frame(sess *Session, m *engine.Machine, redraw engine.Redraw) *Frame {
	view := m.View()
	return &Frame{
		SessionID: sess.ID,
		Image:     sess.Image.Name,
		Width:     view.Width(),
		Height:    view.Height(),
		Redraw:    redraw,
		Ops:       render.Compose(view, redraw, sess.Image.Name, s.opts.Theme),
	}
}

func (s *gameServiceImpl) info(sess *Session) *SessionInfo {
	info := &SessionInfo{
		ID:             sess.ID,
		Image:          sess.Image,
		Dimension:      s.opts.Dimension,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt(),
	}
	sess.Do(func(m *engine.Machine) {
		board := m.Board()
		info.State = m.State()
		info.Dimension = board.Dimension
		info.Width = board.Width()
		info.Height = board.Height()
		info.Swaps = m.Swaps()
		info.Drops = m.Drops()
		info.Misplaced = engine.Misplaced(board.Tiles)
		info.Won = m.IsWon()
	})
	return info
}

// gameEvents turns a transition into the events clients display
func gameEvents(t engine.Transition, now time.Time) []GameEvent {
	if t.Ignored {
		return []GameEvent{{
			Type:      EventIgnored,
			Message:   fmt.Sprintf("%s ignored while %s", t.Event.Type, t.From),
			Timestamp: now,
		}}
	}

	var events []GameEvent
	if t.Shuffled {
		events = append(events, GameEvent{Type: EventShuffle, Message: "Tiles shuffled", Timestamp: now})
	}
	if t.From == engine.Shuffled && t.To == engine.Dragging {
		events = append(events, GameEvent{
			Type:      EventPick,
			Message:   fmt.Sprintf("Picked tile %d", *t.Selected),
			Timestamp: now,
			Tile:      t.Selected,
		})
	}
	if t.Swap != nil {
		a, b := t.Swap.A, t.Swap.B
		events = append(events, GameEvent{
			Type:      EventSwap,
			Message:   fmt.Sprintf("Swapped tiles %d and %d", a, b),
			Timestamp: now,
			Tile:      &a,
			With:      &b,
		})
	}
	if t.From == engine.Dragging && t.Event.Type == engine.PointerUp {
		events = append(events, GameEvent{
			Type:      EventDrop,
			Message:   "Tile dropped",
			Timestamp: now,
			Tile:      t.Selected,
		})
	}
	if t.Won {
		events = append(events, GameEvent{Type: EventWon, Message: "Puzzle solved", Timestamp: now})
	}
	return events
}
