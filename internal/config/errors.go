package config

import "github.com/pkg/errors"

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("config webserver.port listening port can not be 0")

	// ErrUnsupportedEngine error if config db.engine is not mysql, postgres or sqlite.
	ErrUnsupportedEngine = errors.New("config db.engine is not supported")

	// ErrEmptyDBName error if config db.name is empty.
	ErrEmptyDBName = errors.New("config db.name can not be empty")
)
