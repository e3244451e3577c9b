package server

import (
	"errors"
	"net/http"

	"volunteer/pkg/types"
)

func (s *Service) renderTemplate(w http.ResponseWriter, r *http.Request, status int, templateName string, data any) error {
	contactID := sessionContactID(r.Context())

	if setter, ok := data.(types.NavbarDataSetter); ok {
		navbar := types.NavbarData{HasSession: contactID != nil}
		if contactID != nil {
			navbar.ContactID = *contactID
		}
		setter.SetNavbarData(navbar)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if status != http.StatusOK {
		w.WriteHeader(status)
	}

	return s.templates.ExecuteTemplate(w, templateName, data)
}

func (s *Service) internalServerError(w http.ResponseWriter) {
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// renderFatal ends the request with a user-visible error page.
func (s *Service) renderFatal(w http.ResponseWriter, r *http.Request, status int, message string) {
	data := &types.ErrorPageData{
		BasePageData: types.BasePageData{Title: http.StatusText(status)},
		Status:       status,
		Message:      message,
	}

	if err := s.renderTemplate(w, r, status, "page.error", data); err != nil {
		s.logger.WithError(err).Error("failed to render error page")
		s.internalServerError(w)
	}
}

// handleSignUpError maps a sign-up failure onto the page the visitor sees.
func (s *Service) handleSignUpError(w http.ResponseWriter, r *http.Request, err error) {
	var submissionErr *types.SubmissionError

	switch {
	case errors.Is(err, types.ErrInvalidProjectID):
		s.renderFatal(w, r, http.StatusBadRequest, "Could not find valid value for vid.")
	case errors.Is(err, types.ErrProjectNotFound):
		s.renderFatal(w, r, http.StatusNotFound, "Project does not exist.")
	case errors.Is(err, types.ErrNoWorkAvailable):
		s.renderFatal(w, r, http.StatusNotFound, "Project has no volunteer needs defined.")
	case errors.Is(err, types.ErrProfileNotFound):
		s.logger.WithError(err).Error("sign up profile missing")
		s.renderFatal(w, r, http.StatusInternalServerError, "The volunteer sign up profile could not be found.")
	case errors.As(err, &submissionErr):
		s.logger.WithError(err).WithField("stage", submissionErr.Stage).Error("failed to record sign up")
		s.renderFatal(w, r, http.StatusInternalServerError, "We could not record your sign up. Please try again.")
	default:
		s.logger.WithError(err).Error("sign up request failed")
		s.renderFatal(w, r, http.StatusInternalServerError, "Something went wrong. Please try again.")
	}
}
