package chi

import (
	"net/http"

	chirouter "github.com/go-chi/chi/v5"

	"github.com/kailas-cloud/helpboard/internal/domain/appstate"
)

type languageRequest struct {
	Language string `json:"language"`
}

type onlineRequest struct {
	Online bool `json:"online"`
}

func sessionID(r *http.Request) string {
	return chirouter.URLParam(r, "session")
}

func (s *Server) writeState(w http.ResponseWriter, r *http.Request, st appstate.State, err error) {
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// GetSession handles GET /sessions/{session}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	st, err := s.sessions.Get(r.Context(), sessionID(r))
	s.writeState(w, r, st, err)
}

// SetLanguage handles PUT /sessions/{session}/language.
func (s *Server) SetLanguage(w http.ResponseWriter, r *http.Request) {
	var req languageRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	st, err := s.sessions.SetLanguage(r.Context(), sessionID(r), appstate.Language(req.Language))
	s.writeState(w, r, st, err)
}

// SetOnline handles PUT /sessions/{session}/online.
func (s *Server) SetOnline(w http.ResponseWriter, r *http.Request) {
	var req onlineRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	st, err := s.sessions.SetOnline(r.Context(), sessionID(r), req.Online)
	s.writeState(w, r, st, err)
}

// SignIn handles PUT /sessions/{session}/user.
func (s *Server) SignIn(w http.ResponseWriter, r *http.Request) {
	var u appstate.User
	if !decodeJSON(w, r, &u) {
		return
	}
	st, err := s.sessions.SignIn(r.Context(), sessionID(r), u)
	s.writeState(w, r, st, err)
}

// SignOut handles DELETE /sessions/{session}/user.
func (s *Server) SignOut(w http.ResponseWriter, r *http.Request) {
	st, err := s.sessions.SignOut(r.Context(), sessionID(r))
	s.writeState(w, r, st, err)
}

// AddNotification handles POST /sessions/{session}/notifications.
func (s *Server) AddNotification(w http.ResponseWriter, r *http.Request) {
	var n appstate.Notification
	if !decodeJSON(w, r, &n) {
		return
	}
	st, err := s.sessions.AddNotification(r.Context(), sessionID(r), n)
	s.writeState(w, r, st, err)
}

// ClearNotifications handles DELETE /sessions/{session}/notifications.
func (s *Server) ClearNotifications(w http.ResponseWriter, r *http.Request) {
	st, err := s.sessions.ClearNotifications(r.Context(), sessionID(r))
	s.writeState(w, r, st, err)
}

// MarkNotificationRead handles POST /sessions/{session}/notifications/{notification}/read.
func (s *Server) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	st, err := s.sessions.MarkNotificationRead(r.Context(), sessionID(r), chirouter.URLParam(r, "notification"))
	s.writeState(w, r, st, err)
}
