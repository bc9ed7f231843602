package handler

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/peopledesk/peopledesk/internal/auth"
	"github.com/peopledesk/peopledesk/internal/config"
	"github.com/peopledesk/peopledesk/internal/permission"
)

// Dependencies are the shared services handed to every handler.
type Dependencies struct {
	Config  *config.Config
	DB      *gorm.DB
	Catalog *permission.Catalog
	Auth    *auth.Service
	Local   *auth.LocalProvider
}

// Validate returns ErrMissingDependency if a required dependency is nil.
func (d Dependencies) Validate() error {
	if d.Config == nil || d.DB == nil || d.Catalog == nil || d.Auth == nil || d.Local == nil {
		return ErrMissingDependency
	}

	return nil
}

// Service is the interface for a web handler service.
type Service interface {
	Init(app *fiber.App, deps Dependencies) error
}
