package appstate

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/helpboard/internal/domain"
	"github.com/kailas-cloud/helpboard/internal/domain/listing"
)

func TestNew_Defaults(t *testing.T) {
	s := New("s-1")
	if s.Language != Malagasy {
		t.Errorf("expected mg, got %q", s.Language)
	}
	if !s.Online {
		t.Error("new sessions start online")
	}
	if s.Notifications == nil || len(s.Notifications) != 0 {
		t.Error("expected empty, non-nil notifications")
	}
	if s.Authenticated() {
		t.Error("new sessions are anonymous")
	}
}

func TestSetLanguage(t *testing.T) {
	s := New("s-1")
	if err := s.SetLanguage(French); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Language != French {
		t.Errorf("expected fr, got %q", s.Language)
	}
	if err := s.SetLanguage("de"); !errors.Is(err, domain.ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}
	if s.Language != French {
		t.Error("rejected language must not change state")
	}
}

func TestNotifications(t *testing.T) {
	s := New("s-1")
	for _, id := range []string{"n1", "n2", "n3"} {
		if err := s.AddNotification(Notification{ID: id, Type: NotifyMessage, Title: id}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if s.Unread() != 3 {
		t.Fatalf("expected 3 unread, got %d", s.Unread())
	}
	if !s.MarkNotificationRead("n2") {
		t.Error("expected n2 to be found")
	}
	if s.MarkNotificationRead("missing") {
		t.Error("expected missing to not be found")
	}
	if s.Unread() != 2 || !s.Notifications[1].Read {
		t.Errorf("expected n2 read, unread=%d", s.Unread())
	}
	if s.Notifications[0].ID != "n1" || s.Notifications[2].ID != "n3" {
		t.Error("notifications must keep insertion order")
	}

	s.ClearNotifications()
	if len(s.Notifications) != 0 {
		t.Errorf("expected no notifications, got %d", len(s.Notifications))
	}
}

func TestAddNotification_Invalid(t *testing.T) {
	s := New("s-1")
	tests := []Notification{
		{Type: NotifySystem},
		{ID: "n1", Type: "push"},
	}
	for _, n := range tests {
		if err := s.AddNotification(n); !errors.Is(err, domain.ErrInvalidSession) {
			t.Errorf("expected ErrInvalidSession for %+v, got %v", n, err)
		}
	}
}

func TestSignInOut(t *testing.T) {
	s := New("s-1")
	u := User{ID: "user-1", Name: "Rakoto", AccountType: listing.Personal, Role: RoleHelper}
	if err := s.SignIn(u); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.Authenticated() || s.User.ID != "user-1" {
		t.Fatalf("expected signed in user-1, got %+v", s.User)
	}
	s.SignOut()
	if s.Authenticated() {
		t.Error("expected signed out")
	}

	bad := []User{{}, {ID: "u", AccountType: "ngo"}, {ID: "u", Role: "admin"}}
	for _, u := range bad {
		if err := s.SignIn(u); !errors.Is(err, domain.ErrInvalidSession) {
			t.Errorf("expected ErrInvalidSession for %+v, got %v", u, err)
		}
	}
}

func TestValidateSessionID(t *testing.T) {
	for _, id := range []string{"abc", "A_b-9"} {
		if err := ValidateSessionID(id); err != nil {
			t.Errorf("expected %q valid, got %v", id, err)
		}
	}
	for _, id := range []string{"", "has space", "semi;colon"} {
		if err := ValidateSessionID(id); err == nil {
			t.Errorf("expected %q invalid", id)
		}
	}
}
