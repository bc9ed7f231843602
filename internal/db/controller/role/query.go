package role

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/peopledesk/peopledesk/internal/db/models"
)

func orderByPermission(db *gorm.DB) *gorm.DB {
	return db.Order("permission ASC")
}

func load(db *gorm.DB, id uint) (*models.Role, error) {
	var role models.Role

	err := db.Preload("Permissions", orderByPermission).First(&role, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRoleNotFound
	}

	if err != nil {
		return nil, errors.Wrap(err, "failed to load role")
	}

	return &role, nil
}

// nameTaken reports whether a role other than excludeID uses name.
func nameTaken(db *gorm.DB, name string, excludeID uint) (bool, error) {
	var count int64

	q := db.Model(&models.Role{}).Where("name = ?", name)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	if err := q.Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to check role name")
	}

	return count > 0, nil
}

func countUsers(db *gorm.DB, roleID uint) (int64, error) {
	var count int64

	if err := db.Model(&models.User{}).Where(roleIDQueryPattern, roleID).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count role users")
	}

	return count, nil
}

func insertPermissions(db *gorm.DB, roleID uint, keys []string) ([]models.RolePermission, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	rows := make([]models.RolePermission, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, models.RolePermission{
			RoleID:     roleID,
			Permission: key,
			AllowDeny:  models.Allow,
		})
	}

	if err := db.Create(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to insert role permissions")
	}

	return rows, nil
}

// translate maps unique constraint violations to ErrRoleNameExists.
// This covers the race where two writers pass the name check at the same time.
func translate(err error, msg string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrRoleNameExists
	}

	return errors.Wrap(err, msg)
}

// distinct removes duplicates and keeps the first occurrence order.
func distinct(keys []string) []string {
	if len(keys) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))

	for _, key := range keys {
		if _, ok := seen[key]; ok {
			continue
		}

		seen[key] = struct{}{}
		out = append(out, key)
	}

	return out
}
