package daemon

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/peopledesk/peopledesk/internal/auth"
	"github.com/peopledesk/peopledesk/internal/config"
	"github.com/peopledesk/peopledesk/internal/db/controller/role"
	"github.com/peopledesk/peopledesk/internal/db/models"
	"github.com/peopledesk/peopledesk/internal/permission"
)

// ErrAdminPasswordEmpty is returned when the initial admin account must be created without a password.
var ErrAdminPasswordEmpty = errors.New("admin.password must be set to create the initial admin user")

// Seed mirrors the catalog into the permissions table, makes sure the super
// admin role exists and creates the configured administrator when no user exists.
// It is safe to run on every start.
func Seed(ctx context.Context, cfg *config.Config, db *gorm.DB, catalog *permission.Catalog) error {
	if err := seedCatalog(ctx, db, catalog); err != nil {
		return err
	}

	superAdmin, err := seedSuperAdmin(ctx, db, catalog)
	if err != nil {
		return err
	}

	return seedAdmin(ctx, cfg, db, superAdmin.ID)
}

func seedCatalog(ctx context.Context, db *gorm.DB, catalog *permission.Catalog) error {
	entries := catalog.ListAll()
	keys := make([]string, 0, len(entries))
	rows := make([]models.CatalogEntry, 0, len(entries))

	for _, p := range entries {
		keys = append(keys, p.Key)
		rows = append(rows, models.CatalogEntry{
			Key:         p.Key,
			Category:    p.Category,
			Description: p.Description,
		})
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(rows) > 0 {
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "permission_key"}},
				DoUpdates: clause.AssignmentColumns([]string{"category", "description", "updated_at"}),
			}).Create(&rows).Error
			if err != nil {
				return errors.Wrap(err, "failed to mirror permission catalog")
			}
		}

		stale := tx.Where("permission_key NOT IN ?", keys)
		if len(keys) == 0 {
			stale = tx.Where("1 = 1")
		}

		if err := stale.Delete(&models.CatalogEntry{}).Error; err != nil {
			return errors.Wrap(err, "failed to prune permission catalog")
		}

		return nil
	})
}

func seedSuperAdmin(ctx context.Context, db *gorm.DB, catalog *permission.Catalog) (*models.Role, error) {
	store := role.New(db, catalog)

	existing, err := store.GetByName(ctx, models.SuperAdminRoleName)
	if err == nil {
		return existing, nil
	}

	if !errors.Is(err, role.ErrRoleNotFound) {
		return nil, err
	}

	created, err := store.Create(ctx, role.Input{
		Name:        models.SuperAdminRoleName,
		Description: "Full access to every feature",
		Permissions: []string{permission.Wildcard},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create super admin role")
	}

	log.Info().Uint("role_id", created.ID).Msg("created super admin role")

	return created, nil
}

func seedAdmin(ctx context.Context, cfg *config.Config, db *gorm.DB, roleID uint) error {
	var count int64

	if err := db.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return errors.Wrap(err, "failed to count users")
	}

	if count > 0 {
		return nil
	}

	if cfg.Admin.Password == "" {
		return ErrAdminPasswordEmpty
	}

	user, err := auth.NewLocalProvider(db).CreateUser(ctx, auth.NewUser{
		Username: cfg.Admin.Username,
		Email:    cfg.Admin.Email,
		Password: cfg.Admin.Password,
		RoleID:   roleID,
	})
	if err != nil {
		return errors.Wrap(err, "failed to create admin user")
	}

	log.Warn().Str("username", user.Username).Msg("created initial admin user, change its password")

	return nil
}
