package auth

import "errors"

// Sentinels returned by Service and LocalProvider. Handlers map them to
// response codes with errors.Is.
var (
	ErrDBNil             = errors.New("auth: database connection is nil")
	ErrUnknownPermission = errors.New("auth: permission is not in the catalog")

	// ErrUserNameOrEmailExists is returned by CreateUser when either value is taken.
	ErrUserNameOrEmailExists = errors.New("auth: username or email already taken")

	ErrUserAccountDisabled = errors.New("auth: account disabled")
	ErrInvalidPassword     = errors.New("auth: password mismatch")
	ErrUserNotFound        = errors.New("auth: no such user")

	// ErrRoleNotFound is returned when assigning a role id with no row behind it.
	ErrRoleNotFound = errors.New("auth: no such role")
)
