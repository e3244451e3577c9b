package signup

import (
	"context"
	"errors"
	"fmt"

	"volunteer/pkg/types"

	"github.com/sirupsen/logrus"
)

type ProjectFinder interface {
	Project(ctx context.Context, projectID int64) (*types.Project, error)
}

type NeedFinder interface {
	PublicActiveNeeds(ctx context.Context, projectID int64) ([]*types.Need, error)
}

type OptionLookup interface {
	RoleLabels(ctx context.Context) (map[int64]string, error)
	ActivityStatusID(ctx context.Context, label string) (int64, error)
}

type ProfileStore interface {
	ProfileGroupID(ctx context.Context, name string) (int64, error)
	ProfileAppliesTo(ctx context.Context, groupID, contactID int64) (bool, error)
	ProfileFields(ctx context.Context, groupID int64, scope types.ProfileScope) ([]*types.ProfileField, error)
}

type ContactStore interface {
	ContactValues(ctx context.Context, contactID int64) ([]*types.ContactValue, error)
	CreateProfileContact(ctx context.Context, values map[string]string, fields []*types.ProfileField, contactID *int64, groupID int64) (int64, error)
}

type ActivityWriter interface {
	CreateVolunteerActivity(ctx context.Context, activity *types.VolunteerActivity) error
}

// Backend bundles the collaborators a Controller reads from and writes to.
type Backend struct {
	Projects   ProjectFinder
	Needs      NeedFinder
	Options    OptionLookup
	Profiles   ProfileStore
	Contacts   ContactStore
	Activities ActivityWriter
	Times      TimeFormatter
}

type Options struct {
	ProfileName       string
	FlexibleRoleLabel string
}

type stage int

const (
	stageNew stage = iota
	stageInitialized
	stageFormBuilt
)

// Controller drives one visitor's request through the sign-up page. It is
// request scoped and must not be shared between requests.
type Controller struct {
	backend Backend
	opts    Options
	logger  *logrus.Logger

	stage          stage
	project        *types.Project
	needs          []*types.Need
	roles          []types.Option
	shifts         []types.Option
	mode           types.Mode
	profileGroupID int64
	form           *types.SignUpForm
}

func New(backend Backend, opts Options, logger *logrus.Logger) *Controller {
	if backend.Times == nil {
		backend.Times = NewShiftFormatter("", "")
	}

	return &Controller{
		backend: backend,
		opts:    opts,
		logger:  logger,
		mode:    types.ModeLive,
	}
}

// Initialize loads the project and its public needs, derives the selectable
// roles and shifts and resolves the sign-up profile.
func (c *Controller) Initialize(ctx context.Context, projectID int64, action string) error {
	if c.stage != stageNew {
		return types.ErrOutOfSequence
	}

	if projectID <= 0 {
		return types.ErrInvalidProjectID
	}

	project, err := c.backend.Projects.Project(ctx, projectID)
	if err != nil {
		if errors.Is(err, types.ErrProjectNotFound) {
			return err
		}
		return fmt.Errorf("failed to load project %d: %w", projectID, err)
	}
	c.project = project

	needs, err := c.backend.Needs.PublicActiveNeeds(ctx, projectID)
	if err != nil {
		return fmt.Errorf("failed to load needs for project %d: %w", projectID, err)
	}
	if len(needs) == 0 {
		return types.ErrNoWorkAvailable
	}
	c.needs = needs

	labels, err := c.backend.Options.RoleLabels(ctx)
	if err != nil {
		return fmt.Errorf("failed to load role labels: %w", err)
	}

	c.roles = ComputeRoles(needs, c.opts.FlexibleRoleLabel, labels)
	c.shifts = ComputeShifts(needs, c.backend.Times)
	c.mode = types.ModeFromAction(action)

	groupID, err := c.backend.Profiles.ProfileGroupID(ctx, c.opts.ProfileName)
	if err != nil {
		if errors.Is(err, types.ErrProfileNotFound) {
			return err
		}
		return fmt.Errorf("failed to resolve profile %s: %w", c.opts.ProfileName, err)
	}
	c.profileGroupID = groupID

	c.logger.WithFields(logrus.Fields{
		"project_id": projectID,
		"needs":      len(needs),
		"roles":      len(c.roles),
		"shifts":     len(c.shifts),
		"mode":       c.mode,
	}).Debug("sign up page initialized")

	c.stage = stageInitialized

	return nil
}

func (c *Controller) Project() *types.Project {
	return c.project
}

func (c *Controller) Mode() types.Mode {
	return c.mode
}

func (c *Controller) Roles() []types.Option {
	return c.roles
}

func (c *Controller) Shifts() []types.Option {
	return c.shifts
}

func (c *Controller) needByID(id int64) *types.Need {
	for _, need := range c.needs {
		if need.ID == id {
			return need
		}
	}
	return nil
}
