package auth

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"github.com/peopledesk/peopledesk/internal/db/models"
	"github.com/peopledesk/peopledesk/internal/permission"
)

// Service resolves the permissions of users and decides access.
type Service struct {
	db      *gorm.DB
	catalog *permission.Catalog

	// lookups collapses concurrent permission queries for the same user.
	lookups singleflight.Group
}

// NewService creates a new auth service. Route requirements are checked against catalog.
func NewService(db *gorm.DB, catalog *permission.Catalog) *Service {
	return &Service{db: db, catalog: catalog}
}

// UserPermissions returns the permission keys granted to a user through their role.
// Inactive and unknown users hold no permissions.
func (s *Service) UserPermissions(ctx context.Context, userID uint64) ([]string, error) {
	if s == nil || s.db == nil {
		return nil, ErrDBNil
	}

	// The shared load must outlive the caller that started it. Each caller
	// still stops waiting when its own context ends.
	detached := context.WithoutCancel(ctx)

	lookup := s.lookups.DoChan(strconv.FormatUint(userID, 10), func() (any, error) {
		return s.loadPermissions(detached, userID)
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("failed to get user permissions: %w", ctx.Err())
	case res := <-lookup:
		if res.Err != nil {
			return nil, res.Err
		}

		// callers sharing a lookup must not share the slice
		return slices.Clone(res.Val.([]string)), nil //nolint:forcetypeassert
	}
}

func (s *Service) loadPermissions(ctx context.Context, userID uint64) ([]string, error) {
	var permissions []string

	err := s.db.WithContext(ctx).Table("roles_permissions").
		Joins("JOIN users ON users.role_id = roles_permissions.role_id").
		Where("users.id = ? AND users.active = ? AND roles_permissions.allow_deny = ?",
			userID, true, models.Allow).
		Order("roles_permissions.permission").
		Pluck("roles_permissions.permission", &permissions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get user permissions: %w", err)
	}

	return permissions, nil
}

// HasPermission checks if a user has a specific permission.
func (s *Service) HasPermission(ctx context.Context, userID uint64, required string) (bool, error) {
	granted, err := s.UserPermissions(ctx, userID)
	if err != nil {
		return false, err
	}

	return Granted(granted, required), nil
}

// HasAnyPermission checks if a user has at least one of the given permissions.
func (s *Service) HasAnyPermission(ctx context.Context, userID uint64, required []string) (bool, error) {
	granted, err := s.UserPermissions(ctx, userID)
	if err != nil {
		return false, err
	}

	return GrantedAny(granted, required), nil
}

// HasAllPermissions checks if a user has all of the given permissions.
func (s *Service) HasAllPermissions(ctx context.Context, userID uint64, required []string) (bool, error) {
	granted, err := s.UserPermissions(ctx, userID)
	if err != nil {
		return false, err
	}

	return GrantedAll(granted, required), nil
}
