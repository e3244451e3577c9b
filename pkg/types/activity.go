package types

import "time"

const ActivityTypeVolunteer = "Volunteer"

// VolunteerActivity records one sign-up. IsTest marks preview submissions so
// they can be excluded from reporting.
type VolunteerActivity struct {
	ID                int64      `db:"id"`
	ActivityType      string     `db:"activity_type"`
	Subject           *string    `db:"subject"`
	AssigneeContactID int64      `db:"assignee_contact_id"`
	NeedID            *int64     `db:"need_id"`
	StatusID          int64      `db:"status_id"`
	IsTest            bool       `db:"is_test"`
	Details           *string    `db:"details"`
	ActivityDateTime  *time.Time `db:"activity_date_time"`
	Duration          *int       `db:"duration"`
	CreatedAt         time.Time  `db:"created_at"`
}
