package types

const (
	FieldVolunteerRoleID = "volunteer_role_id"
	FieldVolunteerNeedID = "volunteer_need_id"
	FieldDetails         = "details"
)

// SignUpForm describes the sign-up page for one project. Selectors are nil
// when they would offer a single choice.
type SignUpForm struct {
	Title         string
	ProjectID     int64
	Mode          Mode
	ProfileFields []*ProfileField
	Defaults      map[string]string
	RoleSelect    *SelectField
	ShiftSelect   *SelectField
	DefaultNeedID *int64
	Details       TextAreaField
	Submit        Button
}

type SelectField struct {
	Name       string
	Label      string
	Options    []Option
	IsRequired bool
}

type TextAreaField struct {
	Name       string
	Label      string
	IsRequired bool
}

type Button struct {
	Name      string
	Label     string
	IsDefault bool
}

// SignUpBuiltins holds the submitted values that are not profile fields.
type SignUpBuiltins struct {
	NeedID  *int64 `form:"volunteer_need_id"`
	Details string `form:"details"`
}
