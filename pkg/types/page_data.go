package types

type NavbarData struct {
	HasSession bool
	ContactID  int64
}

type NavbarDataSetter interface {
	SetNavbarData(data NavbarData)
}

type BasePageData struct {
	Title  string
	Navbar NavbarData
}

func (d *BasePageData) SetNavbarData(data NavbarData) {
	d.Navbar = data
}

type SignUpPageData struct {
	BasePageData
	Form        *SignUpForm
	Action      string
	Values      map[string]string
	Error       string
	FieldErrors map[string]string
}

type SignUpThanksPageData struct {
	BasePageData
	ProjectID int64
	IsTest    bool
}

type ErrorPageData struct {
	BasePageData
	Status  int
	Message string
}
