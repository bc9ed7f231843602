package logger

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
)

var (
	ErrAppNameIsEmpty     = errors.New("logger: app name missing")
	ErrServiceNameIsEmpty = errors.New("logger: service name missing")

	// ErrHookNotInitialized is returned by LevelCounter before any hook exists.
	ErrHookNotInitialized = errors.New("logger: prometheus hook not registered")
)

// ErrorHandler reports events zerolog failed to write. It must not log
// through zerolog itself.
func ErrorHandler(err error) {
	_, _ = fmt.Fprintln(os.Stderr, "peopledesk: dropped log event:", err)
}
