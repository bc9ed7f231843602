// Package role provides transactional CRUD operations for roles and their permission rows.
//
// The permission set of a role is stored only as rows in roles_permissions.
// Every write runs in a single transaction so readers never see a role
// between the delete and the insert of its permission rows.
package role

import (
	"context"
	"slices"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/peopledesk/peopledesk/internal/db/models"
	"github.com/peopledesk/peopledesk/internal/permission"
)

const (
	idQueryPattern     = "id = ?"
	roleIDQueryPattern = "role_id = ?"
)

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
	// ErrValidatorNil is returned when the store has no permission validator.
	ErrValidatorNil = errors.New("permission validator is nil")
	// ErrRoleNotFound is returned when a role does not exist.
	ErrRoleNotFound = errors.New("role not found")
	// ErrRoleNameEmpty is returned when a role name is empty.
	ErrRoleNameEmpty = errors.New("role name cannot be empty")
	// ErrRoleNameExists is returned when another role already uses the name.
	ErrRoleNameExists = errors.New("role with this name already exists")
	// ErrInvalidPermission is returned when a permission key is not in the catalog.
	ErrInvalidPermission = errors.New("invalid permission")
	// ErrProtectedRole is returned when deleting the super admin role.
	ErrProtectedRole = errors.New("role is protected and cannot be deleted")
	// ErrRoleInUse is returned when deleting a role that is still assigned to users.
	ErrRoleInUse = errors.New("role is assigned to users")
	// ErrConcurrentUpdate is returned when the role changed between read and write.
	ErrConcurrentUpdate = errors.New("role was modified concurrently")
)

// Input holds the fields of a new role.
type Input struct {
	Name        string
	Description string
	Permissions []string
}

// Patch holds the fields of a partial update. A nil field is left unchanged.
// A non-nil Permissions replaces the whole permission set, an empty slice clears it.
type Patch struct {
	Name        *string
	Description *string
	Permissions *[]string
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Permissions == nil
}

// sameAs reports whether applying the patch would leave current as it is.
// keys are the distinct supplied permission keys.
func (p Patch) sameAs(current *models.Role, keys []string) bool {
	if p.Name != nil && *p.Name != current.Name {
		return false
	}

	if p.Description != nil && *p.Description != current.Description {
		return false
	}

	if p.Permissions == nil {
		return true
	}

	// deny rows are dropped by a replacement, so they count as a difference
	if len(keys) != len(current.Permissions) {
		return false
	}

	return slices.Equal(slices.Sorted(slices.Values(keys)), current.PermissionKeys())
}

// Store persists roles.
type Store struct {
	db        *gorm.DB
	validator permission.Validator
}

// New creates a role store. Permission keys are checked with v before every write.
func New(db *gorm.DB, v permission.Validator) *Store {
	return &Store{db: db, validator: v}
}

func (s *Store) ready() error {
	if s == nil || s.db == nil {
		return ErrDBNil
	}

	if s.validator == nil {
		return ErrValidatorNil
	}

	return nil
}

// Create inserts a role and one allow row per distinct permission key.
// Nothing is written when a key is invalid or the name is taken.
func (s *Store) Create(ctx context.Context, in Input) (*models.Role, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	if in.Name == "" {
		return nil, ErrRoleNameEmpty
	}

	keys := distinct(in.Permissions)
	if err := s.validate(keys); err != nil {
		return nil, err
	}

	role := &models.Role{
		Name:        in.Name,
		Description: in.Description,
		Version:     1,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := nameTaken(tx, in.Name, 0)
		if err != nil {
			return err
		}

		if taken {
			return ErrRoleNameExists
		}

		if err = tx.Omit(clause.Associations).Create(role).Error; err != nil {
			return translate(err, "failed to create role")
		}

		role.Permissions, err = insertPermissions(tx, role.ID, keys)

		return err
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, role.ID)
}

// Get returns the role with its permission rows, sorted by key.
func (s *Store) Get(ctx context.Context, id uint) (*models.Role, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	return load(s.db.WithContext(ctx), id)
}

// GetByName returns the role with exactly the given name.
func (s *Store) GetByName(ctx context.Context, name string) (*models.Role, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	if name == "" {
		return nil, ErrRoleNameEmpty
	}

	var role models.Role

	err := s.db.WithContext(ctx).
		Preload("Permissions", orderByPermission).
		Where("name = ?", name).
		First(&role).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRoleNotFound
	}

	if err != nil {
		return nil, errors.Wrap(err, "failed to load role by name")
	}

	return &role, nil
}

// List returns all roles ordered by name.
func (s *Store) List(ctx context.Context) ([]models.Role, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	var roles []models.Role

	err := s.db.WithContext(ctx).
		Preload("Permissions", orderByPermission).
		Order("name ASC").
		Find(&roles).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list roles")
	}

	return roles, nil
}

// Update applies a partial update. A patch that changes no field returns the
// role unchanged, without a new version or updated_at.
//
// Checks run in this order: role exists, permission keys valid, name free.
// When permissions are supplied all existing rows are replaced.
// The role version is compared and incremented in the same statement.
func (s *Store) Update(ctx context.Context, id uint, patch Patch) (*models.Role, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	if patch.Name != nil && *patch.Name == "" {
		return nil, ErrRoleNameEmpty
	}

	var (
		keys   []string
		result *models.Role
	)

	if patch.Permissions != nil {
		keys = distinct(*patch.Permissions)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := load(tx, id)
		if err != nil {
			return err
		}

		if patch.IsEmpty() {
			result = current
			return nil
		}

		if patch.Permissions != nil {
			if err = s.validate(keys); err != nil {
				return err
			}
		}

		if patch.sameAs(current, keys) {
			result = current
			return nil
		}

		updates := map[string]any{
			"version": gorm.Expr("version + ?", 1),
		}

		if patch.Name != nil {
			if *patch.Name != current.Name {
				taken, errTaken := nameTaken(tx, *patch.Name, current.ID)
				if errTaken != nil {
					return errTaken
				}

				if taken {
					return ErrRoleNameExists
				}
			}

			updates["name"] = *patch.Name
		}

		if patch.Description != nil {
			updates["description"] = *patch.Description
		}

		res := tx.Model(&models.Role{}).
			Where("id = ? AND version = ?", current.ID, current.Version).
			Updates(updates)
		if res.Error != nil {
			return translate(res.Error, "failed to update role")
		}

		if res.RowsAffected == 0 {
			return ErrConcurrentUpdate
		}

		if patch.Permissions != nil {
			if err = tx.Where(roleIDQueryPattern, current.ID).Delete(&models.RolePermission{}).Error; err != nil {
				return errors.Wrap(err, "failed to remove role permissions")
			}

			if _, err = insertPermissions(tx, current.ID, keys); err != nil {
				return err
			}
		}

		result, err = load(tx, id)

		return err
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// Delete removes a role and its permission rows.
// The super admin role and roles still assigned to users can not be deleted.
func (s *Store) Delete(ctx context.Context, id uint) error {
	if err := s.ready(); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var role models.Role

		err := tx.First(&role, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoleNotFound
		}

		if err != nil {
			return errors.Wrap(err, "failed to load role")
		}

		if role.IsProtected() {
			return ErrProtectedRole
		}

		users, err := countUsers(tx, role.ID)
		if err != nil {
			return err
		}

		if users > 0 {
			return errors.Wrapf(ErrRoleInUse, "%d user(s) assigned", users)
		}

		if err = tx.Where(roleIDQueryPattern, role.ID).Delete(&models.RolePermission{}).Error; err != nil {
			return errors.Wrap(err, "failed to remove role permissions")
		}

		// users.role_id references roles.id, so a user assigned after the
		// count above makes this statement fail.
		res := tx.Where(idQueryPattern, role.ID).Delete(&models.Role{})
		if errors.Is(res.Error, gorm.ErrForeignKeyViolated) {
			return errors.Wrap(ErrRoleInUse, "user assigned concurrently")
		}

		if res.Error != nil {
			return errors.Wrap(res.Error, "failed to delete role")
		}

		if res.RowsAffected == 0 {
			return ErrRoleNotFound
		}

		return nil
	})
}

// CountUsers returns how many users are assigned to the role.
func (s *Store) CountUsers(ctx context.Context, id uint) (int64, error) {
	if err := s.ready(); err != nil {
		return 0, err
	}

	return countUsers(s.db.WithContext(ctx), id)
}

func (s *Store) validate(keys []string) error {
	if key, found := permission.FirstInvalid(s.validator, keys); found {
		return errors.Wrapf(ErrInvalidPermission, "permission %q is not recognized", key)
	}

	return nil
}
