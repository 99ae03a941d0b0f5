// Package routepath centralizes web route constants.
package routepath

// Root is the authenticated to-do list page.
const Root = "/"

// AuthPrefix groups the public authentication routes.
const AuthPrefix = "/auth/"

const (
	Register = "/auth/register"
	Login    = "/auth/login"
	Logout   = "/auth/logout"
)

const (
	Add          = "/add"
	UpdatePrefix = "/update/"
	DeletePrefix = "/delete/"
)
