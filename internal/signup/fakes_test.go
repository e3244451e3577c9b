package signup

import (
	"context"
	"io"
	"time"

	"volunteer/pkg/types"

	"github.com/sirupsen/logrus"
)

type fakeProjects struct {
	projects map[int64]*types.Project
}

func (f *fakeProjects) Project(_ context.Context, id int64) (*types.Project, error) {
	p, ok := f.projects[id]
	if !ok {
		return nil, types.ErrProjectNotFound
	}
	return p, nil
}

// fakeNeeds applies the same active and public filter as the store.
type fakeNeeds struct {
	publicID int64
	needs    []*types.Need
	err      error
}

func (f *fakeNeeds) PublicActiveNeeds(_ context.Context, projectID int64) ([]*types.Need, error) {
	if f.err != nil {
		return nil, f.err
	}

	out := make([]*types.Need, 0)
	for _, n := range f.needs {
		if n.ProjectID == projectID && n.IsActive && n.VisibilityID == f.publicID {
			out = append(out, n)
		}
	}
	return out, nil
}

type fakeOptions struct {
	roles     map[int64]string
	statuses  map[string]int64
	statusErr error
}

func (f *fakeOptions) RoleLabels(context.Context) (map[int64]string, error) {
	return f.roles, nil
}

func (f *fakeOptions) ActivityStatusID(_ context.Context, label string) (int64, error) {
	if f.statusErr != nil {
		return 0, f.statusErr
	}
	id, ok := f.statuses[label]
	if !ok {
		return 0, types.ErrOptionNotFound
	}
	return id, nil
}

type fakeProfiles struct {
	groups      map[string]int64
	fields      []*types.ProfileField
	notApplying map[int64]bool
	scopes      []types.ProfileScope
}

func (f *fakeProfiles) ProfileGroupID(_ context.Context, name string) (int64, error) {
	id, ok := f.groups[name]
	if !ok {
		return 0, types.ErrProfileNotFound
	}
	return id, nil
}

func (f *fakeProfiles) ProfileAppliesTo(_ context.Context, _, contactID int64) (bool, error) {
	return !f.notApplying[contactID], nil
}

func (f *fakeProfiles) ProfileFields(_ context.Context, _ int64, scope types.ProfileScope) ([]*types.ProfileField, error) {
	f.scopes = append(f.scopes, scope)
	if scope == types.ProfileScopeAll {
		return f.fields, nil
	}

	out := make([]*types.ProfileField, 0)
	for _, field := range f.fields {
		if field.Visibility == types.ProfileVisibilityPublic && !field.IsViewOnly {
			out = append(out, field)
		}
	}
	return out, nil
}

type contactCall struct {
	values    map[string]string
	contactID *int64
	groupID   int64
}

type fakeContacts struct {
	nextID  int64
	err     error
	missing map[int64]bool
	calls  []contactCall
	stored map[int64][]*types.ContactValue
}

func (f *fakeContacts) ContactValues(_ context.Context, contactID int64) ([]*types.ContactValue, error) {
	return f.stored[contactID], nil
}

func (f *fakeContacts) CreateProfileContact(_ context.Context, values map[string]string, _ []*types.ProfileField, contactID *int64, groupID int64) (int64, error) {
	f.calls = append(f.calls, contactCall{values: values, contactID: contactID, groupID: groupID})
	if f.err != nil {
		return 0, f.err
	}
	if contactID != nil {
		if f.missing[*contactID] {
			return 0, types.ErrContactNotFound
		}
		return *contactID, nil
	}
	return f.nextID, nil
}

type fakeActivities struct {
	nextID  int64
	err     error
	created []*types.VolunteerActivity
}

func (f *fakeActivities) CreateVolunteerActivity(_ context.Context, a *types.VolunteerActivity) error {
	if f.err != nil {
		return f.err
	}
	a.ID = f.nextID
	a.CreatedAt = time.Now()
	f.created = append(f.created, a)
	return nil
}

const (
	publicVisibility = 1
	adminVisibility  = 2
	availableStatus  = 9
	profileGroup     = 12
)

type fixture struct {
	projects   *fakeProjects
	needs      *fakeNeeds
	options    *fakeOptions
	profiles   *fakeProfiles
	contacts   *fakeContacts
	activities *fakeActivities
}

func newFixture() *fixture {
	return &fixture{
		projects: &fakeProjects{projects: map[int64]*types.Project{
			5: {ID: 5, Title: "Park Cleanup", IsActive: true},
		}},
		needs: &fakeNeeds{publicID: publicVisibility},
		options: &fakeOptions{
			roles:    map[int64]string{1: "Litter Picker", 2: "Coordinator", 3: "Driver"},
			statuses: map[string]int64{"Available": availableStatus, "Scheduled": 1},
		},
		profiles: &fakeProfiles{
			groups: map[string]int64{"volunteer_sign_up": profileGroup},
			fields: []*types.ProfileField{
				{Name: "custom_field_x", Label: "First Name", Kind: types.FieldKindText, Visibility: types.ProfileVisibilityPublic, IsRequired: true},
				{Name: "email", Label: "Email", Kind: types.FieldKindEmail, Visibility: types.ProfileVisibilityPublic},
				{Name: "internal_notes", Label: "Notes", Kind: types.FieldKindText, Visibility: types.ProfileVisibilityUser},
			},
		},
		contacts:   &fakeContacts{nextID: 300},
		activities: &fakeActivities{nextID: 700},
	}
}

func (f *fixture) controller() *Controller {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return New(Backend{
		Projects:   f.projects,
		Needs:      f.needs,
		Options:    f.options,
		Profiles:   f.profiles,
		Contacts:   f.contacts,
		Activities: f.activities,
		Times:      NewShiftFormatter("", ""),
	}, Options{
		ProfileName:       "volunteer_sign_up",
		FlexibleRoleLabel: "Any",
	}, logger)
}

func at(value string) *time.Time {
	t, err := time.Parse("2006-01-02T15:04", value)
	if err != nil {
		panic(err)
	}
	return &t
}

func minutes(m int) *int {
	return &m
}

func need(id, roleID int64, start *time.Time, duration *int) *types.Need {
	return &types.Need{
		ID:           id,
		ProjectID:    5,
		RoleID:       roleID,
		IsActive:     true,
		VisibilityID: publicVisibility,
		StartTime:    start,
		Duration:     duration,
	}
}

func flexibleNeed(id, roleID int64) *types.Need {
	n := need(id, roleID, nil, nil)
	n.IsFlexible = true
	return n
}
