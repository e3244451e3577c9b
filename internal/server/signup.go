package server

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"volunteer/pkg/types"
)

func projectIDFromRequest(r *http.Request) (int64, error) {
	raw := r.URL.Query().Get("vid")
	if raw == "" {
		return 0, types.ErrInvalidProjectID
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, types.ErrInvalidProjectID
	}

	return id, nil
}

func signUpAction(projectID int64, action string) string {
	q := url.Values{}
	q.Set("vid", strconv.FormatInt(projectID, 10))
	if action != "" {
		q.Set("action", action)
	}
	return "/volunteer/signup?" + q.Encode()
}

func (s *Service) handleGetSignUp(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout())
	defer cancel()

	projectID, err := projectIDFromRequest(r)
	if err != nil {
		s.handleSignUpError(w, r, err)
		return
	}
	action := r.URL.Query().Get("action")

	c := s.newController()
	if err := c.Initialize(ctx, projectID, action); err != nil {
		s.handleSignUpError(w, r, err)
		return
	}

	form, err := c.BuildForm(ctx, sessionContactID(ctx))
	if err != nil {
		s.handleSignUpError(w, r, err)
		return
	}

	data := &types.SignUpPageData{
		BasePageData: types.BasePageData{Title: form.Title},
		Form:         form,
		Action:       signUpAction(projectID, action),
		Values:       form.Defaults,
	}

	if err := s.renderTemplate(w, r, http.StatusOK, "page.signup", data); err != nil {
		s.logger.WithError(err).Error("failed to render sign up page")
		s.internalServerError(w)
	}
}

func (s *Service) handlePostSignUp(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout())
	defer cancel()

	projectID, err := projectIDFromRequest(r)
	if err != nil {
		s.handleSignUpError(w, r, err)
		return
	}
	action := r.URL.Query().Get("action")

	if err := r.ParseForm(); err != nil {
		s.logger.WithError(err).Error("failed to parse sign up form")
		s.renderFatal(w, r, http.StatusBadRequest, "Invalid form submission.")
		return
	}

	contactID := sessionContactID(ctx)

	c := s.newController()
	if err := c.Initialize(ctx, projectID, action); err != nil {
		s.handleSignUpError(w, r, err)
		return
	}

	form, err := c.BuildForm(ctx, contactID)
	if err != nil {
		s.handleSignUpError(w, r, err)
		return
	}

	values := submittedValues(form, r.PostForm)

	if fieldErrors := c.Validate(values); len(fieldErrors) > 0 {
		data := &types.SignUpPageData{
			BasePageData: types.BasePageData{Title: form.Title},
			Form:         form,
			Action:       signUpAction(projectID, action),
			Values:       flattenValues(values),
			Error:        "Please correct the highlighted fields.",
			FieldErrors:  fieldErrors,
		}

		if err := s.renderTemplate(w, r, http.StatusUnprocessableEntity, "page.signup", data); err != nil {
			s.logger.WithError(err).Error("failed to render sign up page")
			s.internalServerError(w)
		}
		return
	}

	activity, err := c.HandleSubmission(ctx, values, contactID)
	if err != nil {
		s.handleSignUpError(w, r, err)
		return
	}

	q := url.Values{}
	q.Set("vid", strconv.FormatInt(projectID, 10))
	if activity.IsTest {
		q.Set("test", "1")
	}

	http.Redirect(w, r, "/volunteer/signup/thanks?"+q.Encode(), http.StatusSeeOther)
}

func (s *Service) handleGetSignUpThanks(w http.ResponseWriter, r *http.Request) {
	projectID, err := projectIDFromRequest(r)
	if err != nil {
		s.handleSignUpError(w, r, err)
		return
	}

	data := &types.SignUpThanksPageData{
		BasePageData: types.BasePageData{Title: "Thank You"},
		ProjectID:    projectID,
		IsTest:       r.URL.Query().Get("test") == "1",
	}

	if err := s.renderTemplate(w, r, http.StatusOK, "page.signup.thanks", data); err != nil {
		s.logger.WithError(err).Error("failed to render thanks page")
		s.internalServerError(w)
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

// submittedValues keeps only the inputs the rendered form offered, so a
// crafted post cannot reach profile fields hidden from the visitor.
func submittedValues(form *types.SignUpForm, posted url.Values) url.Values {
	allowed := map[string]bool{
		types.FieldVolunteerRoleID: true,
		types.FieldVolunteerNeedID: true,
		types.FieldDetails:         true,
	}
	for _, field := range form.ProfileFields {
		allowed[field.Name] = true
	}

	out := url.Values{}
	for name, vals := range posted {
		if allowed[name] {
			out[name] = vals
		}
	}

	return out
}

func flattenValues(values url.Values) map[string]string {
	out := make(map[string]string, len(values))
	for name := range values {
		out[name] = values.Get(name)
	}
	return out
}
