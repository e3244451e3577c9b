package signup

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"volunteer/pkg/types"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

var validate = validator.New()

// BuildForm describes the sign-up page. Profile fields are only offered to a
// visitor with a session contact the profile applies to; everyone else gets
// the built-in fields alone.
func (c *Controller) BuildForm(ctx context.Context, sessionContactID *int64) (*types.SignUpForm, error) {
	if c.stage != stageInitialized {
		return nil, types.ErrOutOfSequence
	}

	form := &types.SignUpForm{
		Title:     "Sign Up to Volunteer for " + c.project.Title,
		ProjectID: c.project.ID,
		Mode:      c.mode,
	}

	fields, err := c.profileFields(ctx, sessionContactID)
	if err != nil {
		return nil, err
	}
	form.ProfileFields = fields

	if len(fields) > 0 {
		defaults, err := c.profileDefaults(ctx, *sessionContactID, fields)
		if err != nil {
			return nil, err
		}
		form.Defaults = defaults
	}

	// a select box with a single possible choice is noise
	if len(c.roles) > 1 {
		form.RoleSelect = &types.SelectField{
			Name:       types.FieldVolunteerRoleID,
			Label:      "Volunteer Role",
			Options:    c.roles,
			IsRequired: true,
		}
	}

	if len(c.shifts) > 1 {
		form.ShiftSelect = &types.SelectField{
			Name:       types.FieldVolunteerNeedID,
			Label:      "Shift",
			Options:    c.shifts,
			IsRequired: true,
		}
	} else if len(c.shifts) == 1 && len(c.roles) <= 1 {
		// with a role choice the lone shift may belong to a role the visitor
		// does not pick, so the need is resolved from the role on submit
		needID := c.shifts[0].Value
		form.DefaultNeedID = &needID
	}

	form.Details = types.TextAreaField{
		Name:  types.FieldDetails,
		Label: "Additional Information",
	}

	form.Submit = types.Button{
		Name:      "submit",
		Label:     "Submit",
		IsDefault: true,
	}

	c.form = form
	c.stage = stageFormBuilt

	return form, nil
}

func (c *Controller) profileFields(ctx context.Context, sessionContactID *int64) ([]*types.ProfileField, error) {
	if c.profileGroupID == 0 || sessionContactID == nil {
		return nil, nil
	}

	applies, err := c.backend.Profiles.ProfileAppliesTo(ctx, c.profileGroupID, *sessionContactID)
	if err != nil {
		return nil, fmt.Errorf("failed to check profile %d for contact %d: %w", c.profileGroupID, *sessionContactID, err)
	}

	if !applies {
		c.logger.WithFields(logrus.Fields{
			"profile_group_id": c.profileGroupID,
			"contact_id":       *sessionContactID,
		}).Debug("profile does not apply to session contact")
		return nil, nil
	}

	fields, err := c.backend.Profiles.ProfileFields(ctx, c.profileGroupID, types.ProfileScopePublicCreate)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile fields for group %d: %w", c.profileGroupID, err)
	}

	return fields, nil
}

// profileDefaults pre-fills the form with what is already known about the
// session contact.
func (c *Controller) profileDefaults(ctx context.Context, contactID int64, fields []*types.ProfileField) (map[string]string, error) {
	values, err := c.backend.Contacts.ContactValues(ctx, contactID)
	if err != nil {
		return nil, fmt.Errorf("failed to load values for contact %d: %w", contactID, err)
	}

	known := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		known[f.Name] = struct{}{}
	}

	defaults := make(map[string]string, len(values))
	for _, v := range values {
		if _, ok := known[v.FieldName]; ok {
			defaults[v.FieldName] = v.Value
		}
	}

	return defaults, nil
}

// Validate checks submitted values against the rendered form and returns
// messages keyed by field name. An empty map means the submission is valid.
func (c *Controller) Validate(values url.Values) map[string]string {
	errs := map[string]string{}

	if c.form == nil {
		errs["form"] = "The sign up form has expired. Please try again."
		return errs
	}

	if c.form.RoleSelect != nil {
		checkChoice(errs, values, c.form.RoleSelect)
	}

	if c.form.ShiftSelect != nil {
		checkChoice(errs, values, c.form.ShiftSelect)
	} else if raw := strings.TrimSpace(values.Get(types.FieldVolunteerNeedID)); raw != "" {
		if c.form.DefaultNeedID == nil || raw != strconv.FormatInt(*c.form.DefaultNeedID, 10) {
			errs[types.FieldVolunteerNeedID] = "Select a valid shift."
		}
	}

	for _, field := range c.form.ProfileFields {
		if msg := checkProfileField(field, strings.TrimSpace(values.Get(field.Name))); msg != "" {
			errs[field.Name] = msg
		}
	}

	return errs
}

func checkChoice(errs map[string]string, values url.Values, sel *types.SelectField) {
	raw := strings.TrimSpace(values.Get(sel.Name))
	if raw == "" {
		if sel.IsRequired {
			errs[sel.Name] = sel.Label + " is required."
		}
		return
	}

	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || !hasOption(sel.Options, value) {
		errs[sel.Name] = "Select a valid " + strings.ToLower(sel.Label) + "."
	}
}

func checkProfileField(field *types.ProfileField, value string) string {
	if value == "" {
		if field.IsRequired {
			return field.Label + " is required."
		}
		return ""
	}

	rule := field.Rule
	if field.Kind == types.FieldKindEmail && !strings.Contains(rule, "email") {
		rule = strings.Trim("email,"+rule, ",")
	}

	if rule != "" {
		if err := validate.Var(value, rule); err != nil {
			return "Enter a valid " + strings.ToLower(field.Label) + "."
		}
	}

	if field.Kind == types.FieldKindSelect && len(field.Options) > 0 {
		for _, opt := range field.Options {
			if opt == value {
				return ""
			}
		}
		return "Select a valid " + strings.ToLower(field.Label) + "."
	}

	return ""
}
