package signup

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"volunteer/internal/utils"
	"volunteer/pkg/types"

	"github.com/go-playground/form/v4"
	"github.com/sirupsen/logrus"
)

var decoder = form.NewDecoder()

// Partition splits submitted values into profile values, keyed by the profile
// field definitions, and everything else. The role selection only drives the
// page and is dropped from both.
func Partition(values url.Values, fields []*types.ProfileField) (map[string]string, url.Values) {
	known := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		known[f.Name] = struct{}{}
	}

	profile := map[string]string{}
	builtin := url.Values{}

	for key, vals := range values {
		if key == types.FieldVolunteerRoleID {
			continue
		}

		if _, ok := known[key]; ok {
			if len(vals) > 0 {
				profile[key] = strings.TrimSpace(vals[0])
			}
			continue
		}

		builtin[key] = vals
	}

	return profile, builtin
}

// HandleSubmission records the sign-up: the contact first, then the activity.
// A failure between the two writes leaves the contact in place.
func (c *Controller) HandleSubmission(ctx context.Context, values url.Values, sessionContactID *int64) (*types.VolunteerActivity, error) {
	if c.stage != stageFormBuilt {
		return nil, types.ErrOutOfSequence
	}

	fields, err := c.backend.Profiles.ProfileFields(ctx, c.profileGroupID, types.ProfileScopeAll)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile fields for group %d: %w", c.profileGroupID, err)
	}

	var roleID *int64
	if raw := strings.TrimSpace(values.Get(types.FieldVolunteerRoleID)); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			roleID = &id
		}
	}

	profileValues, builtinValues := Partition(values, fields)

	var builtins types.SignUpBuiltins
	if err := decoder.Decode(&builtins, builtinValues); err != nil {
		return nil, fmt.Errorf("failed to decode sign up values: %w", err)
	}

	contactID, err := c.backend.Contacts.CreateProfileContact(ctx, profileValues, fields, sessionContactID, c.profileGroupID)
	if errors.Is(err, types.ErrContactNotFound) && sessionContactID != nil {
		c.logger.WithField("contact_id", *sessionContactID).Warn("session contact no longer exists, creating a new contact")
		contactID, err = c.backend.Contacts.CreateProfileContact(ctx, profileValues, fields, nil, c.profileGroupID)
	}
	if err != nil {
		return nil, &types.SubmissionError{Stage: types.StageContact, Err: err}
	}

	statusID, err := c.backend.Options.ActivityStatusID(ctx, types.ActivityStatusAvailable)
	if err != nil {
		return nil, &types.SubmissionError{Stage: types.StageStatus, Err: err}
	}

	activity := c.activityPayload(contactID, statusID, roleID, builtins)

	if err := c.backend.Activities.CreateVolunteerActivity(ctx, activity); err != nil {
		return nil, &types.SubmissionError{Stage: types.StageActivity, Err: err}
	}

	c.logger.WithFields(logrus.Fields{
		"project_id":  c.project.ID,
		"activity_id": activity.ID,
		"contact_id":  contactID,
		"is_test":     activity.IsTest,
	}).Info("volunteer signed up")

	return activity, nil
}

func (c *Controller) activityPayload(contactID, statusID int64, roleID *int64, builtins types.SignUpBuiltins) *types.VolunteerActivity {
	activity := &types.VolunteerActivity{
		ActivityType:      types.ActivityTypeVolunteer,
		Subject:           utils.StringPtr(c.project.Title),
		AssigneeContactID: contactID,
		StatusID:          statusID,
		IsTest:            c.mode.IsTest(),
	}

	needID := builtins.NeedID
	if needID == nil && c.form != nil {
		needID = c.form.DefaultNeedID
	}
	if needID == nil && roleID != nil {
		needID = c.needForRole(*roleID)
	}

	if needID != nil {
		activity.NeedID = utils.Int64Ptr(*needID)
		if need := c.needByID(*needID); need != nil {
			activity.ActivityDateTime = need.StartTime
			activity.Duration = need.Duration
		}
	}

	if details := strings.TrimSpace(builtins.Details); details != "" {
		activity.Details = &details
	}

	return activity
}

// needForRole picks the need a role-only sign-up belongs to: the role's
// flexible need, or its only need. Anything else is left unassigned.
func (c *Controller) needForRole(roleID int64) *int64 {
	var match *types.Need
	count := 0
	for _, need := range c.needs {
		if need.RoleID != roleID {
			continue
		}
		if need.IsFlexible {
			return utils.Int64Ptr(need.ID)
		}
		match = need
		count++
	}

	if count == 1 {
		return utils.Int64Ptr(match.ID)
	}
	return nil
}
