package session

import (
	"context"

	"github.com/kailas-cloud/helpboard/internal/domain/appstate"
)

// Persister stores application state per session.
// Load returns domain.ErrSessionNotFound for unknown sessions.
type Persister interface {
	Load(ctx context.Context, sessionID string) (appstate.State, error)
	Save(ctx context.Context, st appstate.State) error
}
