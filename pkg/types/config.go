package types

type Config struct {
	Environment       string `envconfig:"ENVIRONMENT" default:"development"`
	ServerPort        uint   `envconfig:"SERVER_PORT" default:"8080" validate:"min=1,max=65535"`
	DatabaseURL       string `envconfig:"DATABASE_URL" validate:"required"`
	ReadTimeoutSec    uint   `envconfig:"READ_TIMEOUT_SEC" default:"10"`
	WriteTimeoutSec   uint   `envconfig:"WRITE_TIMEOUT_SEC" default:"15"`
	RequestTimeoutSec uint   `envconfig:"REQUEST_TIMEOUT_SEC" default:"5"`

	// Sign-up page
	ProfileName       string `envconfig:"PROFILE_NAME" default:"volunteer_sign_up" validate:"required"`
	FlexibleRoleLabel string `envconfig:"FLEXIBLE_ROLE_LABEL" default:"Any" validate:"required"`
	ShiftDateLayout   string `envconfig:"SHIFT_DATE_LAYOUT" default:"Mon Jan 2, 2006"`
	ShiftTimeLayout   string `envconfig:"SHIFT_TIME_LAYOUT" default:"15:04"`

	// Session identity is issued by the host site. This service only decodes it.
	SessionCookieName string `envconfig:"SESSION_COOKIE_NAME" default:"volunteer_session"`

	// Cookie encryption keys (base64 encoded)
	// openssl rand -base64 32
	// to generate values
	CookieHashKey  string `envconfig:"COOKIE_HASH_KEY" validate:"required,base64"`  // 32 or 64 bytes
	CookieBlockKey string `envconfig:"COOKIE_BLOCK_KEY" validate:"omitempty,base64"` // 16, 24, or 32 bytes
}
