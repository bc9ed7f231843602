package rolemanagement

import (
	"context"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/peopledesk/peopledesk/internal/db/controller/role"
	"github.com/peopledesk/peopledesk/internal/db/dbtest"
	"github.com/peopledesk/peopledesk/internal/db/models"
	"github.com/peopledesk/peopledesk/internal/permission"
)

func setupService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	db := dbtest.Open(t)
	catalog := permission.Default()

	return New(role.New(db, catalog), catalog), db
}

func ptr[T any](v T) *T {
	return &v
}

func requireKind(t *testing.T, err error, kind Kind) *Error {
	t.Helper()

	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, kind, e.Kind)

	return e
}

func TestListAvailablePermissions(t *testing.T) {
	catalog := permission.MustNew(
		permission.Permission{Key: "b:read", Category: "B"},
		permission.Permission{Key: "a.read", Category: "A"},
		permission.Permission{Key: "b:write", Category: "B"},
	)
	s := New(nil, catalog)

	view := s.ListAvailablePermissions()
	require.Len(t, view.Permissions, 3)
	assert.Equal(t, "b:read", view.Permissions[0].Key)
	assert.Equal(t, []string{"A", "B"}, view.Categories)
}

func TestCreateRole(t *testing.T) {
	testCases := []struct {
		name         string
		req          CreateRequest
		expectedKind Kind
		expectedMsg  string
	}{
		{
			name:         "missing name",
			req:          CreateRequest{Permissions: []string{permission.StaffRead}},
			expectedKind: KindValidation,
			expectedMsg:  "Role name is required",
		},
		{
			name:         "blank name",
			req:          CreateRequest{Name: "   "},
			expectedKind: KindValidation,
			expectedMsg:  "Role name is required",
		},
		{
			name:         "name too long",
			req:          CreateRequest{Name: strings.Repeat("x", 101)},
			expectedKind: KindValidation,
			expectedMsg:  "Role name must be at most 100 characters",
		},
		{
			name: "invalid permission names first bad key",
			req: CreateRequest{
				Name:        "HR Manager",
				Permissions: []string{permission.StaffRead, "not-a-real-permission", "also-bad"},
			},
			expectedKind: KindValidation,
			expectedMsg:  "Invalid permission: not-a-real-permission",
		},
		{
			name: "success",
			req: CreateRequest{
				Name:        "  HR Manager ",
				Description: "Manages staff",
				Permissions: []string{permission.StaffUpdate, permission.StaffRead},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, db := setupService(t)

			view, err := s.CreateRole(context.Background(), tc.req)
			if tc.expectedKind != "" {
				e := requireKind(t, err, tc.expectedKind)
				assert.Equal(t, tc.expectedMsg, e.Message)
				assert.Nil(t, view)

				var n int64
				require.NoError(t, db.Model(&models.Role{}).Count(&n).Error)
				assert.Zero(t, n)

				return
			}

			require.NoError(t, err)
			assert.NotZero(t, view.ID)
			assert.Equal(t, "HR Manager", view.Name)
			assert.Equal(t, "Manages staff", view.Description)
			assert.ElementsMatch(t, []string{permission.StaffRead, permission.StaffUpdate}, view.Permissions)
			assert.False(t, view.CreatedAt.IsZero())
		})
	}
}

func TestCreateRoleTwiceConflicts(t *testing.T) {
	s, _ := setupService(t)
	ctx := context.Background()

	first, err := s.CreateRole(ctx, CreateRequest{Name: "HR Manager"})
	require.NoError(t, err)
	assert.NotZero(t, first.ID)

	_, err = s.CreateRole(ctx, CreateRequest{Name: "HR Manager"})
	e := requireKind(t, err, KindConflict)
	assert.Equal(t, "A role with this name already exists", e.Message)

	roles, err := s.ListRoles(ctx)
	require.NoError(t, err)
	assert.Len(t, roles, 1)
}

func TestUpdateRole(t *testing.T) {
	s, db := setupService(t)
	ctx := context.Background()

	created, err := s.CreateRole(ctx, CreateRequest{
		Name:        "Clerk",
		Permissions: []string{permission.StaffRead},
	})
	require.NoError(t, err)

	_, err = s.CreateRole(ctx, CreateRequest{Name: "Auditor"})
	require.NoError(t, err)

	t.Run("replace permissions", func(t *testing.T) {
		view, errUpdate := s.UpdateRole(ctx, created.ID, UpdateRequest{
			Permissions: &[]string{permission.StaffRead, permission.StaffUpdate},
		})
		require.NoError(t, errUpdate)
		assert.ElementsMatch(t, []string{permission.StaffRead, permission.StaffUpdate}, view.Permissions)

		var n int64
		require.NoError(t, db.Model(&models.RolePermission{}).Where("role_id = ?", created.ID).Count(&n).Error)
		assert.Equal(t, int64(2), n)
	})

	t.Run("rename trims", func(t *testing.T) {
		view, errUpdate := s.UpdateRole(ctx, created.ID, UpdateRequest{Name: ptr(" Senior Clerk ")})
		require.NoError(t, errUpdate)
		assert.Equal(t, "Senior Clerk", view.Name)
	})

	t.Run("empty name", func(t *testing.T) {
		_, errUpdate := s.UpdateRole(ctx, created.ID, UpdateRequest{Name: ptr("  ")})
		e := requireKind(t, errUpdate, KindValidation)
		assert.Equal(t, "Role name must not be empty", e.Message)
	})

	t.Run("name conflict", func(t *testing.T) {
		_, errUpdate := s.UpdateRole(ctx, created.ID, UpdateRequest{Name: ptr("Auditor")})
		requireKind(t, errUpdate, KindConflict)
	})

	t.Run("invalid permission", func(t *testing.T) {
		_, errUpdate := s.UpdateRole(ctx, created.ID, UpdateRequest{Permissions: &[]string{"staff:*"}})
		e := requireKind(t, errUpdate, KindValidation)
		assert.Equal(t, "Invalid permission: staff:*", e.Message)
	})

	t.Run("unknown role wins over invalid permission", func(t *testing.T) {
		_, errUpdate := s.UpdateRole(ctx, 999, UpdateRequest{Permissions: &[]string{"bogus"}})
		requireKind(t, errUpdate, KindNotFound)
	})

	t.Run("no fields", func(t *testing.T) {
		before, errGet := s.GetRole(ctx, created.ID)
		require.NoError(t, errGet)

		after, errUpdate := s.UpdateRole(ctx, created.ID, UpdateRequest{})
		require.NoError(t, errUpdate)
		assert.Equal(t, before.Name, after.Name)
		assert.Equal(t, before.Permissions, after.Permissions)
		assert.True(t, before.UpdatedAt.Equal(after.UpdatedAt))
	})
}

func TestDeleteRole(t *testing.T) {
	s, db := setupService(t)
	ctx := context.Background()

	admin, err := s.CreateRole(ctx, CreateRequest{Name: models.SuperAdminRoleName, Permissions: []string{permission.Wildcard}})
	require.NoError(t, err)

	used, err := s.CreateRole(ctx, CreateRequest{Name: "Employee"})
	require.NoError(t, err)
	dbtest.CreateUser(t, db, "jane", used.ID)

	free, err := s.CreateRole(ctx, CreateRequest{Name: "Contractor", Permissions: []string{permission.LeaveRequest}})
	require.NoError(t, err)

	requireKind(t, s.DeleteRole(ctx, admin.ID), KindForbidden)
	requireKind(t, s.DeleteRole(ctx, used.ID), KindConflict)
	requireKind(t, s.DeleteRole(ctx, 12345), KindNotFound)

	require.NoError(t, s.DeleteRole(ctx, free.ID))
	requireKind(t, s.DeleteRole(ctx, free.ID), KindNotFound)

	var n int64
	require.NoError(t, db.Model(&models.RolePermission{}).Where("role_id = ?", free.ID).Count(&n).Error)
	assert.Zero(t, n)
}

type failingStore struct {
	RoleStore
}

func (failingStore) List(context.Context) ([]models.Role, error) {
	return nil, errors.New("connection refused")
}

func TestInternalErrorsAreHidden(t *testing.T) {
	s := New(failingStore{}, permission.Default())

	_, err := s.ListRoles(context.Background())
	e := requireKind(t, err, KindInternal)
	assert.Equal(t, MsgInternal, e.Message)
	assert.NotContains(t, e.Message, "connection refused")
	assert.True(t, IsKind(err, KindInternal))
	assert.False(t, IsKind(errors.New("x"), KindInternal))
}
