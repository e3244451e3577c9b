package types

import "time"

type ProfileScope int

const (
	// ProfileScopeAll returns every active field of a group.
	ProfileScopeAll ProfileScope = iota
	// ProfileScopePublicCreate returns the fields an anonymous visitor may fill in.
	ProfileScopePublicCreate
)

const (
	ProfileVisibilityUser   = "user"
	ProfileVisibilityPublic = "public"
)

type ProfileGroup struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Title     string    `db:"title"`
	GroupType string    `db:"group_type"`
	IsActive  bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
}

// ProfileField describes one dynamically discovered profile field. Rule holds
// validator tags applied to the submitted value, e.g. "email,max=254".
type ProfileField struct {
	ID         int64    `db:"id"`
	GroupID    int64    `db:"profile_group_id"`
	Name       string   `db:"field_name"`
	Label      string   `db:"label"`
	Kind       string   `db:"field_type"`
	Rule       string   `db:"validation"`
	IsRequired bool     `db:"is_required"`
	Visibility string   `db:"visibility"`
	IsViewOnly bool     `db:"is_view_only"`
	IsActive   bool     `db:"is_active"`
	Weight     int      `db:"weight"`
	Options    []string `db:"options"`
}

const (
	FieldKindText     = "text"
	FieldKindEmail    = "email"
	FieldKindPhone    = "tel"
	FieldKindTextArea = "textarea"
	FieldKindSelect   = "select"
)

type Contact struct {
	ID          int64     `db:"id"`
	ContactType string    `db:"contact_type"`
	Hash        string    `db:"hash"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type ContactValue struct {
	ContactID int64     `db:"contact_id"`
	FieldName string    `db:"field_name"`
	Value     string    `db:"value"`
	UpdatedAt time.Time `db:"updated_at"`
}

const ContactTypeIndividual = "Individual"
