package signup

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"volunteer/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contactID(id int64) *int64 {
	return &id
}

func TestInitialize_ProjectNotFound(t *testing.T) {
	f := newFixture()
	c := f.controller()

	err := c.Initialize(context.Background(), 999999, "")

	assert.ErrorIs(t, err, types.ErrProjectNotFound)
}

func TestInitialize_InvalidProjectID(t *testing.T) {
	c := newFixture().controller()

	assert.ErrorIs(t, c.Initialize(context.Background(), 0, ""), types.ErrInvalidProjectID)
}

func TestInitialize_NoWorkAvailable(t *testing.T) {
	f := newFixture()
	inactive := need(10, 1, at("2024-01-01T09:00"), minutes(60))
	inactive.IsActive = false
	hidden := need(11, 1, at("2024-01-01T09:00"), minutes(60))
	hidden.VisibilityID = adminVisibility
	f.needs.needs = []*types.Need{inactive, hidden}

	err := f.controller().Initialize(context.Background(), 5, "")

	assert.ErrorIs(t, err, types.ErrNoWorkAvailable)
}

func TestInitialize_ProfileNotFound(t *testing.T) {
	f := newFixture()
	f.needs.needs = []*types.Need{need(10, 1, nil, nil)}
	f.profiles.groups = map[string]int64{}

	err := f.controller().Initialize(context.Background(), 5, "")

	assert.ErrorIs(t, err, types.ErrProfileNotFound)
}

func TestInitialize_NeedQueryFailure(t *testing.T) {
	f := newFixture()
	f.needs.err = errors.New("connection reset")

	err := f.controller().Initialize(context.Background(), 5, "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestInitialize_Mode(t *testing.T) {
	tests := []struct {
		action string
		want   types.Mode
	}{
		{action: "", want: types.ModeLive},
		{action: "preview", want: types.ModeTest},
		{action: "1024", want: types.ModeTest},
		{action: "update", want: types.ModeLive},
	}

	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			f := newFixture()
			f.needs.needs = []*types.Need{need(10, 1, nil, nil)}
			c := f.controller()

			require.NoError(t, c.Initialize(context.Background(), 5, tt.action))
			assert.Equal(t, tt.want, c.Mode())
		})
	}
}

func TestInitialize_Twice(t *testing.T) {
	f := newFixture()
	f.needs.needs = []*types.Need{need(10, 1, nil, nil)}
	c := f.controller()

	require.NoError(t, c.Initialize(context.Background(), 5, ""))
	assert.ErrorIs(t, c.Initialize(context.Background(), 5, ""), types.ErrOutOfSequence)
}

func TestScenario_SingleRoleSingleShift(t *testing.T) {
	f := newFixture()
	f.needs.needs = []*types.Need{
		need(50, 1, at("2024-01-01T09:00"), minutes(120)),
		need(51, 1, nil, nil),
	}
	c := f.controller()

	require.NoError(t, c.Initialize(context.Background(), 5, ""))

	assert.Equal(t, []types.Option{{Value: 1, Label: "Litter Picker"}}, c.Roles())
	assert.Equal(t, []types.Option{{Value: 50, Label: "Mon Jan 1, 2024 09:00–11:00"}}, c.Shifts())

	form, err := c.BuildForm(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, "Sign Up to Volunteer for Park Cleanup", form.Title)
	assert.Nil(t, form.RoleSelect)
	assert.Nil(t, form.ShiftSelect)
	require.NotNil(t, form.DefaultNeedID)
	assert.Equal(t, int64(50), *form.DefaultNeedID)
}

func TestBuildForm_SelectorsShownForMultipleChoices(t *testing.T) {
	f := newFixture()
	f.needs.needs = []*types.Need{
		need(10, 1, at("2024-01-01T09:00"), minutes(60)),
		need(11, 2, at("2024-01-02T09:00"), minutes(60)),
	}
	c := f.controller()
	require.NoError(t, c.Initialize(context.Background(), 5, ""))

	form, err := c.BuildForm(context.Background(), nil)
	require.NoError(t, err)

	require.NotNil(t, form.RoleSelect)
	assert.True(t, form.RoleSelect.IsRequired)
	assert.Equal(t, types.FieldVolunteerRoleID, form.RoleSelect.Name)
	assert.Len(t, form.RoleSelect.Options, 2)

	require.NotNil(t, form.ShiftSelect)
	assert.True(t, form.ShiftSelect.IsRequired)
	assert.Equal(t, types.FieldVolunteerNeedID, form.ShiftSelect.Name)
	assert.Len(t, form.ShiftSelect.Options, 2)
	assert.Nil(t, form.DefaultNeedID)

	assert.Equal(t, types.FieldDetails, form.Details.Name)
	assert.False(t, form.Details.IsRequired)
	assert.Equal(t, "Submit", form.Submit.Label)
}

func TestBuildForm_ProfileFieldsNeedSession(t *testing.T) {
	f := newFixture()
	f.needs.needs = []*types.Need{need(10, 1, nil, nil)}

	anon := f.controller()
	require.NoError(t, anon.Initialize(context.Background(), 5, ""))
	form, err := anon.BuildForm(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, form.ProfileFields)

	f.contacts.stored = map[int64][]*types.ContactValue{
		44: {
			{ContactID: 44, FieldName: "email", Value: "jane@example.com"},
			{ContactID: 44, FieldName: "internal_notes", Value: "staff only"},
		},
	}
	known := f.controller()
	require.NoError(t, known.Initialize(context.Background(), 5, ""))
	form, err = known.BuildForm(context.Background(), contactID(44))
	require.NoError(t, err)
	require.Len(t, form.ProfileFields, 2)
	assert.Equal(t, "custom_field_x", form.ProfileFields[0].Name)
	assert.Equal(t, "email", form.ProfileFields[1].Name)
	assert.Equal(t, types.ProfileScopePublicCreate, f.profiles.scopes[len(f.profiles.scopes)-1])
	assert.Equal(t, map[string]string{"email": "jane@example.com"}, form.Defaults)
}

func TestBuildForm_ProfileNotApplyingToContact(t *testing.T) {
	f := newFixture()
	f.needs.needs = []*types.Need{need(10, 1, nil, nil)}
	f.profiles.notApplying = map[int64]bool{44: true}
	c := f.controller()
	require.NoError(t, c.Initialize(context.Background(), 5, ""))

	form, err := c.BuildForm(context.Background(), contactID(44))

	require.NoError(t, err)
	assert.Empty(t, form.ProfileFields)
}

func TestBuildForm_BeforeInitialize(t *testing.T) {
	_, err := newFixture().controller().BuildForm(context.Background(), nil)

	assert.ErrorIs(t, err, types.ErrOutOfSequence)
}

func TestValidate(t *testing.T) {
	f := newFixture()
	f.needs.needs = []*types.Need{
		need(10, 1, at("2024-01-01T09:00"), minutes(60)),
		need(11, 2, at("2024-01-02T09:00"), minutes(60)),
	}
	c := f.controller()
	require.NoError(t, c.Initialize(context.Background(), 5, ""))
	_, err := c.BuildForm(context.Background(), contactID(44))
	require.NoError(t, err)

	errs := c.Validate(url.Values{})
	assert.Contains(t, errs, types.FieldVolunteerRoleID)
	assert.Contains(t, errs, types.FieldVolunteerNeedID)
	assert.Contains(t, errs, "custom_field_x")
	assert.NotContains(t, errs, "email")

	errs = c.Validate(url.Values{
		types.FieldVolunteerRoleID: {"3"},
		types.FieldVolunteerNeedID: {"abc"},
		"custom_field_x":           {"Jane"},
		"email":                    {"not-an-email"},
	})
	assert.Equal(t, "Select a valid volunteer role.", errs[types.FieldVolunteerRoleID])
	assert.Equal(t, "Select a valid shift.", errs[types.FieldVolunteerNeedID])
	assert.Equal(t, "Enter a valid email.", errs["email"])

	errs = c.Validate(url.Values{
		types.FieldVolunteerRoleID: {"2"},
		types.FieldVolunteerNeedID: {"11"},
		"custom_field_x":           {"Jane"},
		"email":                    {"jane@example.com"},
	})
	assert.Empty(t, errs)
}

func TestValidate_DefaultShiftOnly(t *testing.T) {
	f := newFixture()
	f.needs.needs = []*types.Need{need(10, 1, at("2024-01-01T09:00"), minutes(60))}
	c := f.controller()
	require.NoError(t, c.Initialize(context.Background(), 5, ""))
	_, err := c.BuildForm(context.Background(), nil)
	require.NoError(t, err)

	assert.Empty(t, c.Validate(url.Values{types.FieldVolunteerNeedID: {"10"}}))
	assert.Contains(t, c.Validate(url.Values{types.FieldVolunteerNeedID: {"99"}}), types.FieldVolunteerNeedID)
}

func TestPartition(t *testing.T) {
	fields := []*types.ProfileField{{Name: "custom_field_x"}}
	values := url.Values{
		"details":           {"Available weekends"},
		"volunteer_need_id": {"42"},
		"volunteer_role_id": {"1"},
		"custom_field_x":    {"Jane"},
	}

	profile, builtin := Partition(values, fields)

	assert.Equal(t, map[string]string{"custom_field_x": "Jane"}, profile)
	assert.Equal(t, url.Values{
		"details":           {"Available weekends"},
		"volunteer_need_id": {"42"},
	}, builtin)
	assert.NotContains(t, profile, types.FieldVolunteerRoleID)
	assert.NotContains(t, builtin, types.FieldVolunteerRoleID)
}

func readyController(t *testing.T, f *fixture, action string, session *int64) *Controller {
	t.Helper()

	c := f.controller()
	require.NoError(t, c.Initialize(context.Background(), 5, action))
	_, err := c.BuildForm(context.Background(), session)
	require.NoError(t, err)
	return c
}

func TestHandleSubmission_LiveScenario(t *testing.T) {
	f := newFixture()
	f.needs.needs = []*types.Need{
		need(42, 1, at("2024-01-01T09:00"), minutes(120)),
		need(43, 2, at("2024-01-02T09:00"), minutes(60)),
	}
	c := readyController(t, f, "", nil)

	activity, err := c.HandleSubmission(context.Background(), url.Values{
		"details":           {"Available weekends"},
		"volunteer_need_id": {"42"},
		"volunteer_role_id": {"1"},
		"custom_field_x":    {"Jane"},
	}, nil)
	require.NoError(t, err)

	require.Len(t, f.contacts.calls, 1)
	call := f.contacts.calls[0]
	assert.Equal(t, map[string]string{"custom_field_x": "Jane"}, call.values)
	assert.Nil(t, call.contactID)
	assert.Equal(t, int64(profileGroup), call.groupID)

	assert.Equal(t, int64(700), activity.ID)
	assert.Equal(t, int64(300), activity.AssigneeContactID)
	assert.Equal(t, int64(availableStatus), activity.StatusID)
	assert.False(t, activity.IsTest)
	require.NotNil(t, activity.NeedID)
	assert.Equal(t, int64(42), *activity.NeedID)
	require.NotNil(t, activity.Details)
	assert.Equal(t, "Available weekends", *activity.Details)
	assert.Equal(t, "Park Cleanup", *activity.Subject)
	assert.Equal(t, at("2024-01-01T09:00"), activity.ActivityDateTime)
	assert.Equal(t, 120, *activity.Duration)
	assert.Equal(t, types.ActivityTypeVolunteer, activity.ActivityType)
}

func TestHandleSubmission_PreviewIsTest(t *testing.T) {
	f := newFixture()
	f.needs.needs = []*types.Need{need(42, 1, at("2024-01-01T09:00"), minutes(60))}
	c := readyController(t, f, "preview", contactID(44))

	activity, err := c.HandleSubmission(context.Background(), url.Values{}, contactID(44))
	require.NoError(t, err)

	assert.True(t, activity.IsTest)
	assert.Equal(t, int64(44), activity.AssigneeContactID)
	require.NotNil(t, activity.NeedID)
	assert.Equal(t, int64(42), *activity.NeedID)
	assert.Nil(t, activity.Details)
	require.Len(t, f.contacts.calls, 1)
	assert.Equal(t, int64(44), *f.contacts.calls[0].contactID)
}

func TestHandleSubmission_ContactFailure(t *testing.T) {
	f := newFixture()
	f.needs.needs = []*types.Need{need(42, 1, nil, nil)}
	f.contacts.err = errors.New("duplicate key")
	c := readyController(t, f, "", nil)

	_, err := c.HandleSubmission(context.Background(), url.Values{}, nil)

	var subErr *types.SubmissionError
	require.ErrorAs(t, err, &subErr)
	assert.Equal(t, types.StageContact, subErr.Stage)
	assert.Empty(t, f.activities.created)
}

func TestHandleSubmission_ActivityFailure(t *testing.T) {
	f := newFixture()
	f.needs.needs = []*types.Need{need(42, 1, nil, nil)}
	f.activities.err = errors.New("insert failed")
	c := readyController(t, f, "", nil)

	_, err := c.HandleSubmission(context.Background(), url.Values{}, nil)

	var subErr *types.SubmissionError
	require.ErrorAs(t, err, &subErr)
	assert.Equal(t, types.StageActivity, subErr.Stage)
	assert.Len(t, f.contacts.calls, 1)
}

func TestHandleSubmission_MissingAvailableStatus(t *testing.T) {
	f := newFixture()
	f.needs.needs = []*types.Need{need(42, 1, nil, nil)}
	f.options.statuses = map[string]int64{}
	c := readyController(t, f, "", nil)

	_, err := c.HandleSubmission(context.Background(), url.Values{}, nil)

	var subErr *types.SubmissionError
	require.ErrorAs(t, err, &subErr)
	assert.Equal(t, types.StageStatus, subErr.Stage)
	assert.ErrorIs(t, err, types.ErrOptionNotFound)
}

func TestHandleSubmission_BeforeBuildForm(t *testing.T) {
	f := newFixture()
	f.needs.needs = []*types.Need{need(42, 1, nil, nil)}
	c := f.controller()
	require.NoError(t, c.Initialize(context.Background(), 5, ""))

	_, err := c.HandleSubmission(context.Background(), url.Values{}, nil)

	assert.ErrorIs(t, err, types.ErrOutOfSequence)
}

func TestBuildForm_SingleShiftWithRoleChoiceHasNoDefault(t *testing.T) {
	f := newFixture()
	f.needs.needs = []*types.Need{
		need(61, 1, at("2024-01-01T09:00"), minutes(60)),
		flexibleNeed(60, 2),
	}
	c := readyController(t, f, "", nil)

	assert.Len(t, c.Roles(), 2)
	assert.Len(t, c.Shifts(), 1)
	assert.Nil(t, c.form.ShiftSelect)
	assert.Nil(t, c.form.DefaultNeedID)
	assert.Contains(t, c.Validate(url.Values{
		types.FieldVolunteerRoleID: {"2"},
		types.FieldVolunteerNeedID: {"61"},
	}), types.FieldVolunteerNeedID)
}

func TestHandleSubmission_NeedResolvedFromRole(t *testing.T) {
	tests := []struct {
		name     string
		roleID   string
		wantNeed int64
		wantTime *time.Time
	}{
		{name: "flexible role gets its flexible need", roleID: "2", wantNeed: 60},
		{name: "timed role gets its only shift", roleID: "1", wantNeed: 61, wantTime: at("2024-01-01T09:00")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.needs.needs = []*types.Need{
				need(61, 1, at("2024-01-01T09:00"), minutes(60)),
				flexibleNeed(60, 2),
			}
			c := readyController(t, f, "", nil)

			values := url.Values{types.FieldVolunteerRoleID: {tt.roleID}}
			require.Empty(t, c.Validate(values))

			activity, err := c.HandleSubmission(context.Background(), values, nil)
			require.NoError(t, err)

			require.NotNil(t, activity.NeedID)
			assert.Equal(t, tt.wantNeed, *activity.NeedID)
			assert.Equal(t, tt.wantTime, activity.ActivityDateTime)
		})
	}
}

func TestHandleSubmission_RoleWithSeveralShiftsLeavesNeedUnset(t *testing.T) {
	f := newFixture()
	f.needs.needs = []*types.Need{
		need(61, 1, at("2024-01-01T09:00"), minutes(60)),
		need(62, 1, at("2024-01-02T09:00"), minutes(60)),
		need(63, 2, at("2024-01-03T09:00"), minutes(60)),
	}
	c := readyController(t, f, "", nil)

	activity, err := c.HandleSubmission(context.Background(), url.Values{
		types.FieldVolunteerRoleID: {"1"},
	}, nil)
	require.NoError(t, err)

	assert.Nil(t, activity.NeedID)
}

func TestHandleSubmission_DeletedSessionContactGetsNewContact(t *testing.T) {
	f := newFixture()
	f.needs.needs = []*types.Need{need(42, 1, at("2024-01-01T09:00"), minutes(60))}
	f.contacts.missing = map[int64]bool{44: true}
	c := readyController(t, f, "", contactID(44))

	activity, err := c.HandleSubmission(context.Background(), url.Values{}, contactID(44))
	require.NoError(t, err)

	require.Len(t, f.contacts.calls, 2)
	assert.Equal(t, int64(44), *f.contacts.calls[0].contactID)
	assert.Nil(t, f.contacts.calls[1].contactID)
	assert.Equal(t, int64(300), activity.AssigneeContactID)
}
