package seed

import (
	"context"
	"fmt"
	"time"

	"volunteer/internal/store"
	"volunteer/internal/utils"
	"volunteer/pkg/types"
)

const DemoProjectID int64 = 1

// nextSaturday returns 00:00 of the first Saturday strictly after now.
func nextSaturday(now time.Time) time.Time {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	offset := (int(time.Saturday) - int(day.Weekday()) + 7) % 7
	if offset == 0 {
		offset = 7
	}
	return day.AddDate(0, 0, offset)
}

// demoNeeds covers the interesting cases of the page: several roles, a
// repeated role, an overnight shift, a flexible need, an admin-only need and
// an inactive one.
func demoNeeds(projectID int64, now time.Time) []types.Need {
	saturday := nextSaturday(now)
	at := func(days, hour int) *time.Time {
		t := saturday.AddDate(0, 0, days).Add(time.Duration(hour) * time.Hour)
		return &t
	}

	return []types.Need{
		{ID: 101, ProjectID: projectID, RoleID: RoleGreeter, IsActive: true, VisibilityID: VisibilityPublic, StartTime: at(0, 8), Duration: utils.IntPtr(120), Quantity: utils.IntPtr(2)},
		{ID: 102, ProjectID: projectID, RoleID: RoleSetupCrew, IsActive: true, VisibilityID: VisibilityPublic, StartTime: at(0, 7), Duration: utils.IntPtr(90), Quantity: utils.IntPtr(6)},
		{ID: 103, ProjectID: projectID, RoleID: RoleCleanup, IsActive: true, VisibilityID: VisibilityPublic, StartTime: at(0, 14), Duration: utils.IntPtr(180), Quantity: utils.IntPtr(8)},
		{ID: 104, ProjectID: projectID, RoleID: RoleGreeter, IsActive: true, VisibilityID: VisibilityPublic, StartTime: at(1, 8), Duration: utils.IntPtr(120), Quantity: utils.IntPtr(2)},
		{ID: 105, ProjectID: projectID, RoleID: RoleCleanup, IsActive: true, VisibilityID: VisibilityPublic, StartTime: at(1, 22), Duration: utils.IntPtr(240), Quantity: utils.IntPtr(4)},
		{ID: 106, ProjectID: projectID, RoleID: RoleFlexible, IsFlexible: true, IsActive: true, VisibilityID: VisibilityPublic, Quantity: utils.IntPtr(10)},
		{ID: 107, ProjectID: projectID, RoleID: RoleSetupCrew, IsActive: true, VisibilityID: VisibilityAdmin, StartTime: at(-1, 18), Duration: utils.IntPtr(60)},
		{ID: 108, ProjectID: projectID, RoleID: RoleGreeter, IsActive: false, VisibilityID: VisibilityPublic, StartTime: at(2, 9), Duration: utils.IntPtr(60)},
	}
}

// SeedDemoProject syncs the demo project and its needs. Needs not listed in
// demoNeeds are deleted.
func SeedDemoProject(ctx context.Context, projects *store.ProjectRepository, needs *store.NeedRepository, now time.Time) error {
	project := &types.Project{
		ID:          DemoProjectID,
		Title:       "Riverside Park Cleanup",
		Description: utils.StringPtr("Help us clear the riverbank trail before the summer season."),
		IsActive:    true,
	}

	if err := projects.UpsertProject(ctx, project); err != nil {
		return err
	}

	list := demoNeeds(project.ID, now)
	keep := make([]int64, 0, len(list))
	for _, need := range list {
		if err := needs.UpsertNeed(ctx, &need); err != nil {
			return fmt.Errorf("need %d: %w", need.ID, err)
		}
		keep = append(keep, need.ID)
	}

	if err := needs.DeleteNeedsExcept(ctx, project.ID, keep); err != nil {
		return err
	}

	fmt.Printf("✓ Synced project %d with %d needs\n", project.ID, len(list))
	return nil
}
