package signup

import (
	"fmt"
	"sort"

	"volunteer/pkg/types"
)

// ComputeRoles returns the distinct roles offered by needs, sorted by label.
// Needs sharing a role id collapse into one entry that keeps the position of
// the first occurrence. This is only safe because the label depends on the
// role id and the flexible flag, never on the need itself.
func ComputeRoles(needs []*types.Need, flexibleLabel string, labels map[int64]string) []types.Option {
	roles := make([]types.Option, 0, len(needs))
	index := make(map[int64]int, len(needs))

	for _, need := range needs {
		label := roleLabel(need, flexibleLabel, labels)

		if i, ok := index[need.RoleID]; ok {
			roles[i].Label = label
			continue
		}

		index[need.RoleID] = len(roles)
		roles = append(roles, types.Option{Value: need.RoleID, Label: label})
	}

	sort.SliceStable(roles, func(i, j int) bool {
		return roles[i].Label < roles[j].Label
	})

	return roles
}

func roleLabel(need *types.Need, flexibleLabel string, labels map[int64]string) string {
	if need.IsFlexible {
		return flexibleLabel
	}

	if label, ok := labels[need.RoleID]; ok && label != "" {
		return label
	}

	return fmt.Sprintf("Role %d", need.RoleID)
}

// ComputeShifts returns one entry per need with a start time, in need order.
func ComputeShifts(needs []*types.Need, formatter TimeFormatter) []types.Option {
	shifts := make([]types.Option, 0, len(needs))

	for _, need := range needs {
		if need.StartTime == nil || need.StartTime.IsZero() {
			continue
		}

		shifts = append(shifts, types.Option{
			Value: need.ID,
			Label: formatter.FormatRange(*need.StartTime, need.Duration),
		})
	}

	return shifts
}

func hasOption(options []types.Option, value int64) bool {
	for _, o := range options {
		if o.Value == value {
			return true
		}
	}
	return false
}
