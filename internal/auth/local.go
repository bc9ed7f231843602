package auth

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/peopledesk/peopledesk/internal/db/models"
)

const whereID = "id = ?"

// NewUser holds the fields of a local account to create.
type NewUser struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	RoleID    uint
}

// LocalProvider handles local database authentication and user accounts.
type LocalProvider struct {
	db *gorm.DB
}

// NewLocalProvider creates a new local authentication provider.
func NewLocalProvider(db *gorm.DB) *LocalProvider {
	return &LocalProvider{
		db: db,
	}
}

// Authenticate authenticates a user against the local database.
func (p *LocalProvider) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	if p == nil || p.db == nil {
		return nil, ErrDBNil
	}

	var user models.User

	err := p.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	if !user.Active {
		return nil, ErrUserAccountDisabled
	}

	if !user.VerifyPassword(password) {
		return nil, ErrInvalidPassword
	}

	return &user, nil
}

// CreateUser creates a new active local user holding an existing role.
func (p *LocalProvider) CreateUser(ctx context.Context, in NewUser) (*models.User, error) {
	if p == nil || p.db == nil {
		return nil, ErrDBNil
	}

	hashedPassword, err := models.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Active:    true,
		Username:  in.Username,
		Email:     in.Email,
		Password:  hashedPassword,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		RoleID:    in.RoleID,
	}

	err = p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if errRole := roleExists(tx, in.RoleID); errRole != nil {
			return errRole
		}

		var count int64

		if errCount := tx.Model(&models.User{}).
			Where("username = ? OR email = ?", in.Username, in.Email).
			Count(&count).Error; errCount != nil {
			return fmt.Errorf("failed to check existing user: %w", errCount)
		}

		if count > 0 {
			return ErrUserNameOrEmailExists
		}

		if errCreate := tx.Create(&user).Error; errCreate != nil {
			if errors.Is(errCreate, gorm.ErrDuplicatedKey) {
				return ErrUserNameOrEmailExists
			}

			if errors.Is(errCreate, gorm.ErrForeignKeyViolated) {
				return ErrRoleNotFound
			}

			return fmt.Errorf("failed to create user: %w", errCreate)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// AssignRole assigns an existing role to a user.
func (p *LocalProvider) AssignRole(ctx context.Context, userID uint64, roleID uint) error {
	if p == nil || p.db == nil {
		return ErrDBNil
	}

	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := roleExists(tx, roleID); err != nil {
			return err
		}

		var count int64

		if err := tx.Model(&models.User{}).Where(whereID, userID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check user: %w", err)
		}

		if count == 0 {
			return ErrUserNotFound
		}

		err := tx.Model(&models.User{}).Where(whereID, userID).Update("role_id", roleID).Error
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return ErrRoleNotFound
		}

		if err != nil {
			return fmt.Errorf("failed to assign role: %w", err)
		}

		return nil
	})
}

// GetUserByID retrieves a user by ID.
func (p *LocalProvider) GetUserByID(ctx context.Context, userID uint64) (*models.User, error) {
	if p == nil || p.db == nil {
		return nil, ErrDBNil
	}

	var user models.User

	err := p.db.WithContext(ctx).First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return &user, nil
}

// ListUsers returns one page of users ordered by username and the total count.
// A limit of zero or less returns all users.
func (p *LocalProvider) ListUsers(ctx context.Context, limit, offset int) ([]models.User, int64, error) {
	if p == nil || p.db == nil {
		return nil, 0, ErrDBNil
	}

	var (
		users []models.User
		total int64
	)

	if err := p.db.WithContext(ctx).Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	query := p.db.WithContext(ctx).Model(&models.User{})
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	if err := query.Order("username ASC").Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	return users, total, nil
}

func roleExists(db *gorm.DB, roleID uint) error {
	var count int64

	if err := db.Model(&models.Role{}).Where(whereID, roleID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check role: %w", err)
	}

	if count == 0 {
		return ErrRoleNotFound
	}

	return nil
}
