package appstate

import (
	"fmt"
	"regexp"
	"time"

	"github.com/kailas-cloud/helpboard/internal/domain"
	"github.com/kailas-cloud/helpboard/internal/domain/listing"
)

var sessionIDRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,128}$`)

// Language is a UI language.
type Language string

// Supported languages.
const (
	Malagasy Language = "mg"
	French   Language = "fr"
	English  Language = "en"
)

// DefaultLanguage is used for new sessions.
const DefaultLanguage = Malagasy

// IsValid checks if the language is supported.
func (l Language) IsValid() bool {
	return l == Malagasy || l == French || l == English
}

// NotificationType classifies a notification.
type NotificationType string

// Notification types.
const (
	NotifyMessage        NotificationType = "message"
	NotifyRating         NotificationType = "rating"
	NotifyContactRequest NotificationType = "contact_request"
	NotifySystem         NotificationType = "system"
)

// IsValid checks if the notification type is supported.
func (t NotificationType) IsValid() bool {
	switch t {
	case NotifyMessage, NotifyRating, NotifyContactRequest, NotifySystem:
		return true
	}
	return false
}

// Notification is a message shown to the signed-in user.
type Notification struct {
	ID        string           `json:"id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Read      bool             `json:"is_read"`
	Timestamp time.Time        `json:"timestamp"`
	ActionURL string           `json:"action_url,omitempty"`
}

// Role is what a user does on the platform.
type Role string

// Roles.
const (
	RoleHelper Role = "helper"
	RoleSeeker Role = "seeker"
	RoleBoth   Role = "both"
)

// IsValid checks if the role is supported.
func (r Role) IsValid() bool {
	return r == RoleHelper || r == RoleSeeker || r == RoleBoth
}

// User is the signed-in identity attached to a session.
type User struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	AccountType listing.AccountType `json:"account_type"`
	Role        Role                `json:"role"`
	Region      string              `json:"region,omitempty"`
}

// State is the per-session application state: language, connectivity,
// notifications and the current user.
type State struct {
	SessionID     string         `json:"session_id"`
	User          *User          `json:"user,omitempty"`
	Language      Language       `json:"language"`
	Online        bool           `json:"online"`
	Notifications []Notification `json:"notifications"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// ValidateSessionID checks the session identifier format.
func ValidateSessionID(id string) error {
	if !sessionIDRegex.MatchString(id) {
		return fmt.Errorf("%w: malformed session id", domain.ErrInvalidSession)
	}
	return nil
}

// New returns the default state of a fresh session.
func New(sessionID string) State {
	return State{
		SessionID:     sessionID,
		Language:      DefaultLanguage,
		Online:        true,
		Notifications: []Notification{},
	}
}

// SetLanguage switches the UI language.
func (s *State) SetLanguage(l Language) error {
	if !l.IsValid() {
		return fmt.Errorf("%w: unsupported language %q", domain.ErrInvalidSession, l)
	}
	s.Language = l
	return nil
}

// SetOnline records connectivity.
func (s *State) SetOnline(online bool) {
	s.Online = online
}

// AddNotification appends n. Notifications keep insertion order.
func (s *State) AddNotification(n Notification) error {
	switch {
	case n.ID == "":
		return fmt.Errorf("%w: notification id is required", domain.ErrInvalidSession)
	case !n.Type.IsValid():
		return fmt.Errorf("%w: unsupported notification type %q", domain.ErrInvalidSession, n.Type)
	}
	s.Notifications = append(s.Notifications, n)
	return nil
}

// MarkNotificationRead flags every notification with the given id as read.
// Returns false when none matched.
func (s *State) MarkNotificationRead(id string) bool {
	found := false
	for i := range s.Notifications {
		if s.Notifications[i].ID == id {
			s.Notifications[i].Read = true
			found = true
		}
	}
	return found
}

// ClearNotifications drops every notification.
func (s *State) ClearNotifications() {
	s.Notifications = []Notification{}
}

// Unread counts unread notifications.
func (s *State) Unread() int {
	n := 0
	for i := range s.Notifications {
		if !s.Notifications[i].Read {
			n++
		}
	}
	return n
}

// SignIn attaches u as the current user.
func (s *State) SignIn(u User) error {
	switch {
	case u.ID == "":
		return fmt.Errorf("%w: user id is required", domain.ErrInvalidSession)
	case u.AccountType != "" && !u.AccountType.IsValid():
		return fmt.Errorf("%w: unsupported account type %q", domain.ErrInvalidSession, u.AccountType)
	case u.Role != "" && !u.Role.IsValid():
		return fmt.Errorf("%w: unsupported role %q", domain.ErrInvalidSession, u.Role)
	}
	s.User = &u
	return nil
}

// SignOut removes the current user.
func (s *State) SignOut() {
	s.User = nil
}

// Authenticated reports whether a user is signed in.
func (s *State) Authenticated() bool { return s.User != nil }
