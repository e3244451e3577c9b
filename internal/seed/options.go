package seed

import (
	"context"
	"fmt"

	"volunteer/internal/store"
	"volunteer/pkg/types"
)

// Values are what needs and activities store, so they must never change once
// rows reference them.
const (
	RoleGreeter   int64 = 1
	RoleSetupCrew int64 = 2
	RoleCleanup   int64 = 3
	RoleFlexible  int64 = 4

	VisibilityPublic int64 = 1
	VisibilityAdmin  int64 = 2

	StatusAvailable int64 = 1
	StatusCompleted int64 = 2
	StatusCancelled int64 = 3
)

type optionGroupSeed struct {
	Group  types.OptionGroup
	Values []types.OptionValue
}

func optionGroups() []optionGroupSeed {
	return []optionGroupSeed{
		{
			Group: types.OptionGroup{Name: types.OptionGroupVolunteerRole, Title: "Volunteer Role", IsActive: true},
			Values: []types.OptionValue{
				{Name: "greeter", Label: "Greeter", Value: RoleGreeter, Weight: 1, IsActive: true},
				{Name: "setup_crew", Label: "Setup Crew", Value: RoleSetupCrew, Weight: 2, IsActive: true},
				{Name: "cleanup", Label: "Cleanup", Value: RoleCleanup, Weight: 3, IsActive: true},
				{Name: "flexible", Label: "Flexible", Value: RoleFlexible, Weight: 4, IsActive: true},
			},
		},
		{
			Group: types.OptionGroup{Name: types.OptionGroupVisibility, Title: "Visibility", IsActive: true},
			Values: []types.OptionValue{
				{Name: types.VisibilityPublic, Label: "Public Pages", Value: VisibilityPublic, Weight: 1, IsActive: true},
				{Name: "admin", Label: "Public Pages and Listings", Value: VisibilityAdmin, Weight: 2, IsActive: true},
			},
		},
		{
			Group: types.OptionGroup{Name: types.OptionGroupActivityStatus, Title: "Activity Status", IsActive: true},
			Values: []types.OptionValue{
				{Name: "available", Label: types.ActivityStatusAvailable, Value: StatusAvailable, Weight: 1, IsActive: true},
				{Name: "completed", Label: "Completed", Value: StatusCompleted, Weight: 2, IsActive: true},
				{Name: "cancelled", Label: "Cancelled", Value: StatusCancelled, Weight: 3, IsActive: true},
			},
		},
	}
}

// SeedOptions syncs the option groups the sign-up page reads: volunteer
// roles, need visibility and activity statuses.
func SeedOptions(ctx context.Context, repo *store.OptionRepository) error {
	for _, seed := range optionGroups() {
		group := seed.Group
		groupID, err := repo.UpsertOptionGroup(ctx, &group)
		if err != nil {
			return err
		}

		for _, value := range seed.Values {
			value.OptionGroupID = groupID
			if err := repo.UpsertOptionValue(ctx, &value); err != nil {
				return fmt.Errorf("option %s.%s: %w", group.Name, value.Name, err)
			}
		}

		fmt.Printf("✓ Synced option group %s (%d values)\n", group.Name, len(seed.Values))
	}

	return nil
}
