package rolemanagement

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/peopledesk/peopledesk/internal/db/controller/role"
)

// Kind classifies a failed operation.
type Kind string

const (
	// KindValidation marks malformed input such as a missing name or unknown permission key.
	KindValidation Kind = "validation_error"
	// KindConflict marks a duplicate name, a lost concurrent update or a role still held by users.
	KindConflict Kind = "conflict"
	// KindNotFound marks an unknown role id.
	KindNotFound Kind = "not_found"
	// KindForbidden marks an attempt to delete the protected role.
	KindForbidden Kind = "forbidden"
	// KindInternal marks a persistence failure. Details are logged, never returned.
	KindInternal Kind = "internal_error"
)

// MsgInternal is the only message callers ever see for internal errors.
const MsgInternal = "An internal error occurred. Please try again later."

// Error is returned by every Service operation that fails.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}

	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is an *Error of kind k.
func IsKind(err error, k Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == k
	}

	return false
}

func validationError(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// fromStore converts a role store error into an *Error. Unknown errors are
// logged with op and returned as internal errors.
func fromStore(op string, err error) *Error {
	switch {
	case errors.Is(err, role.ErrRoleNotFound):
		return &Error{Kind: KindNotFound, Message: "Role not found", Err: err}
	case errors.Is(err, role.ErrRoleNameExists):
		return &Error{Kind: KindConflict, Message: "A role with this name already exists", Err: err}
	case errors.Is(err, role.ErrConcurrentUpdate):
		return &Error{Kind: KindConflict, Message: "The role was modified by another request, please retry", Err: err}
	case errors.Is(err, role.ErrInvalidPermission):
		return &Error{Kind: KindValidation, Message: "Invalid permission", Err: err}
	case errors.Is(err, role.ErrRoleNameEmpty):
		return &Error{Kind: KindValidation, Message: "Role name is required", Err: err}
	case errors.Is(err, role.ErrProtectedRole):
		return &Error{Kind: KindForbidden, Message: "The Super Admin role cannot be deleted", Err: err}
	case errors.Is(err, role.ErrRoleInUse):
		return &Error{Kind: KindConflict, Message: "Cannot delete a role that is assigned to users", Err: err}
	}

	log.Error().Err(err).Str("operation", op).Msg("role management failed")

	return &Error{Kind: KindInternal, Message: MsgInternal, Err: err}
}
