package seed

import (
	"context"
	"fmt"

	"volunteer/internal/store"
	"volunteer/pkg/types"
)

func profileFields() []types.ProfileField {
	return []types.ProfileField{
		{Name: "first_name", Label: "First Name", Kind: types.FieldKindText, Rule: "max=64", IsRequired: true, Visibility: types.ProfileVisibilityPublic, IsActive: true, Weight: 1},
		{Name: "last_name", Label: "Last Name", Kind: types.FieldKindText, Rule: "max=64", IsRequired: true, Visibility: types.ProfileVisibilityPublic, IsActive: true, Weight: 2},
		{Name: "email", Label: "Email", Kind: types.FieldKindEmail, Rule: "max=254", IsRequired: true, Visibility: types.ProfileVisibilityPublic, IsActive: true, Weight: 3},
		{Name: "phone", Label: "Phone", Kind: types.FieldKindPhone, Rule: "max=32", Visibility: types.ProfileVisibilityPublic, IsActive: true, Weight: 4},
		{Name: "shirt_size", Label: "T-Shirt Size", Kind: types.FieldKindSelect, Visibility: types.ProfileVisibilityPublic, IsActive: true, Weight: 5, Options: []string{"S", "M", "L", "XL"}},
		{Name: "coordinator_notes", Label: "Coordinator Notes", Kind: types.FieldKindTextArea, Visibility: types.ProfileVisibilityUser, IsActive: true, Weight: 6},
		{Name: "volunteer_since", Label: "Volunteer Since", Kind: types.FieldKindText, Visibility: types.ProfileVisibilityPublic, IsViewOnly: true, IsActive: true, Weight: 7},
	}
}

// SeedProfile syncs the sign-up profile group and its fields. Fields the page
// never shows (admin-only or view-only) are seeded too so the scope filters
// have something to exclude.
func SeedProfile(ctx context.Context, repo *store.ProfileRepository, name string) error {
	group := &types.ProfileGroup{
		Name:      name,
		Title:     "Volunteer Sign Up",
		GroupType: types.ContactTypeIndividual,
		IsActive:  true,
	}

	groupID, err := repo.UpsertProfileGroup(ctx, group)
	if err != nil {
		return err
	}

	fields := profileFields()
	for _, field := range fields {
		field.GroupID = groupID
		if err := repo.UpsertProfileField(ctx, &field); err != nil {
			return fmt.Errorf("profile field %s: %w", field.Name, err)
		}
	}

	fmt.Printf("✓ Synced profile %s (%d fields)\n", name, len(fields))
	return nil
}
