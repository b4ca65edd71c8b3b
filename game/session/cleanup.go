package session

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// RunCleanup removes idle sessions every interval until ctx is done
func (m *Manager) RunCleanup(ctx context.Context, interval, maxIdle time.Duration, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if removed := m.CleanupExpired(maxIdle); len(removed) > 0 {
				logger.Info("expired sessions removed",
					zap.Strings("sessions", removed),
					zap.Int("remaining", m.Count()))
			}
		}
	}
}
