package chi

import (
	"net/http"

	chirouter "github.com/go-chi/chi/v5"

	"github.com/kailas-cloud/helpboard/internal/domain/wizard"
)

// WizardStart handles POST /wizards/{flow}/start.
func (s *Server) WizardStart(w http.ResponseWriter, r *http.Request) {
	f, err := wizard.ParseFlow(chirouter.URLParam(r, "flow"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	st, err := wizard.Start(f)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, wizardResponse(f, st))
}

// WizardNext handles POST /wizards/{flow}/next.
func (s *Server) WizardNext(w http.ResponseWriter, r *http.Request) {
	s.wizardStep(w, r, func(f wizard.Flow, req *WizardRequest) (wizard.State, error) {
		return wizard.Next(f, wizard.State(req.State), req.Form)
	})
}

// WizardBack handles POST /wizards/{flow}/back.
func (s *Server) WizardBack(w http.ResponseWriter, r *http.Request) {
	s.wizardStep(w, r, func(f wizard.Flow, req *WizardRequest) (wizard.State, error) {
		return wizard.Back(f, wizard.State(req.State))
	})
}

func (s *Server) wizardStep(
	w http.ResponseWriter, r *http.Request,
	move func(f wizard.Flow, req *WizardRequest) (wizard.State, error),
) {
	var req WizardRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	f, err := wizard.ParseFlow(chirouter.URLParam(r, "flow"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	st, err := move(f, &req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, wizardResponse(f, st))
}
