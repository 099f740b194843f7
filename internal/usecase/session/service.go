package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/kailas-cloud/helpboard/internal/domain"
	"github.com/kailas-cloud/helpboard/internal/domain/appstate"
)

// Service manages per-session application state.
// Updates are read-modify-write under a service-wide lock.
type Service struct {
	store Persister
	now   func() time.Time
	mu    sync.Mutex
}

// New creates a session service.
func New(store Persister) *Service {
	return &Service{store: store, now: time.Now}
}

// Get returns the state of a session.
func (s *Service) Get(ctx context.Context, sessionID string) (appstate.State, error) {
	if err := appstate.ValidateSessionID(sessionID); err != nil {
		return appstate.State{}, err
	}
	st, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return appstate.State{}, fmt.Errorf("load session: %w", err)
	}
	return st, nil
}

// SetLanguage switches the UI language.
func (s *Service) SetLanguage(ctx context.Context, sessionID string, l appstate.Language) (appstate.State, error) {
	return s.update(ctx, sessionID, func(st *appstate.State) error {
		return st.SetLanguage(l)
	})
}

// SetOnline records connectivity.
func (s *Service) SetOnline(ctx context.Context, sessionID string, online bool) (appstate.State, error) {
	return s.update(ctx, sessionID, func(st *appstate.State) error {
		st.SetOnline(online)
		return nil
	})
}

// AddNotification appends a notification. A zero timestamp is set to now.
func (s *Service) AddNotification(
	ctx context.Context, sessionID string, n appstate.Notification,
) (appstate.State, error) {
	if n.Timestamp.IsZero() {
		n.Timestamp = s.now().UTC()
	}
	return s.update(ctx, sessionID, func(st *appstate.State) error {
		return st.AddNotification(n)
	})
}

// MarkNotificationRead flags a notification as read.
func (s *Service) MarkNotificationRead(ctx context.Context, sessionID, notificationID string) (appstate.State, error) {
	return s.update(ctx, sessionID, func(st *appstate.State) error {
		if !st.MarkNotificationRead(notificationID) {
			return fmt.Errorf("notification %q: %w", notificationID, domain.ErrNotFound)
		}
		return nil
	})
}

// ClearNotifications drops all notifications.
func (s *Service) ClearNotifications(ctx context.Context, sessionID string) (appstate.State, error) {
	return s.update(ctx, sessionID, func(st *appstate.State) error {
		st.ClearNotifications()
		return nil
	})
}

// SignIn attaches the current user.
func (s *Service) SignIn(ctx context.Context, sessionID string, u appstate.User) (appstate.State, error) {
	return s.update(ctx, sessionID, func(st *appstate.State) error {
		return st.SignIn(u)
	})
}

// SignOut detaches the current user.
func (s *Service) SignOut(ctx context.Context, sessionID string) (appstate.State, error) {
	return s.update(ctx, sessionID, func(st *appstate.State) error {
		st.SignOut()
		return nil
	})
}

// update loads the session (or starts a fresh one), applies fn and saves.
// Nothing is saved when fn fails.
func (s *Service) update(
	ctx context.Context, sessionID string, fn func(st *appstate.State) error,
) (appstate.State, error) {
	if err := appstate.ValidateSessionID(sessionID); err != nil {
		return appstate.State{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.store.Load(ctx, sessionID)
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		st = appstate.New(sessionID)
	case err != nil:
		return appstate.State{}, fmt.Errorf("load session: %w", err)
	}

	if err := fn(&st); err != nil {
		return appstate.State{}, err
	}
	st.UpdatedAt = s.now().UTC()

	if err := s.store.Save(ctx, st); err != nil {
		return appstate.State{}, fmt.Errorf("save session: %w", err)
	}
	return st, nil
}
