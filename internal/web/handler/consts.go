package handler

import "errors"

const (
	// RootPath is the root path the route group.
	RootPath = "/"

	// IDParam is the route parameter holding a numeric id.
	IDParam = "id"

	// MsgInvalidBody is returned when a request body is not valid JSON.
	MsgInvalidBody = "Invalid request body"
)

// ErrMissingDependency is returned by Init if app or a dependency is nil.
var ErrMissingDependency = errors.New("app, config, db, catalog or auth service is nil")
