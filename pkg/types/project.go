package types

import "time"

type Project struct {
	ID          int64     `db:"id"`
	Title       string    `db:"title"`
	Description *string   `db:"description"`
	IsActive    bool      `db:"is_active"`
	CreatedAt   time.Time `db:"created_at"`
}

// Need is a requestable unit of volunteer work under a project.
// Duration is in minutes.
type Need struct {
	ID           int64      `db:"id"`
	ProjectID    int64      `db:"project_id"`
	RoleID       int64      `db:"role_id"`
	IsFlexible   bool       `db:"is_flexible"`
	IsActive     bool       `db:"is_active"`
	VisibilityID int64      `db:"visibility_id"`
	StartTime    *time.Time `db:"start_time"`
	Duration     *int       `db:"duration"`
	Quantity     *int       `db:"quantity"`
	CreatedAt    time.Time  `db:"created_at"`
}

// Option is one entry of an ordered choice list offered to the visitor.
type Option struct {
	Value int64
	Label string
}

type OptionGroup struct {
	ID       int64  `db:"id"`
	Name     string `db:"name"`
	Title    string `db:"title"`
	IsActive bool   `db:"is_active"`
}

type OptionValue struct {
	ID            int64  `db:"id"`
	OptionGroupID int64  `db:"option_group_id"`
	Name          string `db:"name"`
	Label         string `db:"label"`
	Value         int64  `db:"value"`
	Weight        int    `db:"weight"`
	IsActive      bool   `db:"is_active"`
}

const (
	OptionGroupVolunteerRole  = "volunteer_role"
	OptionGroupVisibility     = "visibility"
	OptionGroupActivityStatus = "activity_status"

	VisibilityPublic        = "public"
	ActivityStatusAvailable = "Available"
)
