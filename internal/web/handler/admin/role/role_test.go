package role_test

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peopledesk/peopledesk/internal/db/dbtest"
	"github.com/peopledesk/peopledesk/internal/db/models"
	"github.com/peopledesk/peopledesk/internal/permission"
	"github.com/peopledesk/peopledesk/internal/rolemanagement"
	"github.com/peopledesk/peopledesk/internal/web/handler"
	"github.com/peopledesk/peopledesk/internal/web/handler/admin/role"
	"github.com/peopledesk/peopledesk/internal/web/webtest"
)

type fixture struct {
	app    *fiber.App
	deps   handler.Dependencies
	admin  string // session holding "*"
	viewer string // session holding staff:read only
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	deps, _ := webtest.Dependencies(t)
	app := fiber.New()

	svc := &role.Service{}
	require.NoError(t, svc.Init(app, deps))

	admin := webtest.SeedUser(t, deps.DB, "admin", models.SuperAdminRoleName, permission.Wildcard)
	viewer := webtest.SeedUser(t, deps.DB, "viewer", "Viewer", permission.StaffRead)

	return &fixture{
		app:    app,
		deps:   deps,
		admin:  webtest.Login(t, admin.ID),
		viewer: webtest.Login(t, viewer.ID),
	}
}

func (f *fixture) create(t *testing.T, body any) rolemanagement.RoleView {
	t.Helper()

	resp, out := webtest.Do(t, f.app, fiber.MethodPost, role.Path, body, f.admin)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, out.Message)

	var view rolemanagement.RoleView
	webtest.DecodeData(t, out, &view)

	return view
}

func rolePath(id any) string {
	return fmt.Sprintf("%s/%v", role.Path, id)
}

func TestListPermissions(t *testing.T) {
	f := newFixture(t)

	resp, out := webtest.Do(t, f.app, fiber.MethodGet, role.Path+"/permissions", nil, f.viewer)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var catalog rolemanagement.CatalogView
	webtest.DecodeData(t, out, &catalog)

	assert.Len(t, catalog.Permissions, f.deps.Catalog.Len())
	assert.IsNonDecreasing(t, catalog.Categories)

	resp, _ = webtest.Do(t, f.app, fiber.MethodGet, role.Path+"/permissions", nil, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestCreate(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name       string
		session    string
		body       any
		wantStatus int
		wantKind   string
	}{
		{
			name:       "created",
			session:    f.admin,
			body:       rolemanagement.CreateRequest{Name: "HR Manager", Permissions: []string{permission.StaffRead}},
			wantStatus: fiber.StatusCreated,
		},
		{
			name:       "duplicate name",
			session:    f.admin,
			body:       rolemanagement.CreateRequest{Name: "HR Manager"},
			wantStatus: fiber.StatusConflict,
			wantKind:   string(rolemanagement.KindConflict),
		},
		{
			name:       "missing name",
			session:    f.admin,
			body:       rolemanagement.CreateRequest{Name: "  "},
			wantStatus: fiber.StatusBadRequest,
			wantKind:   string(rolemanagement.KindValidation),
		},
		{
			name:       "unknown permission",
			session:    f.admin,
			body:       rolemanagement.CreateRequest{Name: "Broken", Permissions: []string{"nope:nope"}},
			wantStatus: fiber.StatusBadRequest,
			wantKind:   string(rolemanagement.KindValidation),
		},
		{
			name:       "malformed body",
			session:    f.admin,
			body:       "{",
			wantStatus: fiber.StatusBadRequest,
			wantKind:   string(rolemanagement.KindValidation),
		},
		{
			name:       "lacking roles:create",
			session:    f.viewer,
			body:       rolemanagement.CreateRequest{Name: "Sneaky"},
			wantStatus: fiber.StatusForbidden,
			wantKind:   "forbidden",
		},
		{
			name:       "anonymous",
			body:       rolemanagement.CreateRequest{Name: "Sneaky"},
			wantStatus: fiber.StatusUnauthorized,
			wantKind:   "unauthorized",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, out := webtest.Do(t, f.app, fiber.MethodPost, role.Path, tt.body, tt.session)
			require.Equal(t, tt.wantStatus, resp.StatusCode, out.Message)
			assert.Equal(t, tt.wantKind, out.Error)
			assert.Equal(t, tt.wantStatus == fiber.StatusCreated, out.Success)
		})
	}

	var count int64
	require.NoError(t, f.deps.DB.Model(&models.Role{}).Where("name IN ?", []string{"Broken", "Sneaky"}).
		Count(&count).Error)
	assert.Zero(t, count)
}

func TestGet(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, rolemanagement.CreateRequest{
		Name:        "Payroll",
		Permissions: []string{permission.PayrollRead, permission.PayrollProcess},
	})

	tests := []struct {
		name       string
		path       string
		session    string
		wantStatus int
	}{
		{"found", rolePath(created.ID), f.admin, fiber.StatusOK},
		{"not found", rolePath(9999), f.admin, fiber.StatusNotFound},
		{"invalid id", rolePath("abc"), f.admin, fiber.StatusBadRequest},
		{"lacking roles:read", rolePath(created.ID), f.viewer, fiber.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, out := webtest.Do(t, f.app, fiber.MethodGet, tt.path, nil, tt.session)
			require.Equal(t, tt.wantStatus, resp.StatusCode)

			if tt.wantStatus != fiber.StatusOK {
				return
			}

			var view rolemanagement.RoleView
			webtest.DecodeData(t, out, &view)
			assert.Equal(t, "Payroll", view.Name)
			assert.ElementsMatch(t, []string{permission.PayrollRead, permission.PayrollProcess}, view.Permissions)
		})
	}
}

func TestListIsOpenToAuthenticatedUsers(t *testing.T) {
	f := newFixture(t)

	resp, out := webtest.Do(t, f.app, fiber.MethodGet, role.Path, nil, f.viewer)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var views []rolemanagement.RoleView
	webtest.DecodeData(t, out, &views)
	assert.Len(t, views, 2)
}

func TestUpdate(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, rolemanagement.CreateRequest{Name: "Clerk", Permissions: []string{permission.StaffRead}})
	f.create(t, rolemanagement.CreateRequest{Name: "Taken"})

	tests := []struct {
		name       string
		path       string
		body       any
		wantStatus int
		wantPerms  []string
	}{
		{
			name:       "replace permissions",
			path:       rolePath(created.ID),
			body:       map[string]any{"permissions": []string{permission.LeaveView, permission.LeaveApprove}},
			wantStatus: fiber.StatusOK,
			wantPerms:  []string{permission.LeaveApprove, permission.LeaveView},
		},
		{
			name:       "empty body keeps role",
			path:       rolePath(created.ID),
			wantStatus: fiber.StatusOK,
			wantPerms:  []string{permission.LeaveApprove, permission.LeaveView},
		},
		{
			name:       "clear permissions",
			path:       rolePath(created.ID),
			body:       map[string]any{"permissions": []string{}},
			wantStatus: fiber.StatusOK,
			wantPerms:  []string{},
		},
		{
			name:       "rename to taken name",
			path:       rolePath(created.ID),
			body:       map[string]any{"name": "Taken"},
			wantStatus: fiber.StatusConflict,
		},
		{
			name:       "unknown permission",
			path:       rolePath(created.ID),
			body:       map[string]any{"permissions": []string{"bogus"}},
			wantStatus: fiber.StatusBadRequest,
		},
		{
			name:       "unknown role",
			path:       rolePath(9999),
			body:       map[string]any{"name": "Ghost"},
			wantStatus: fiber.StatusNotFound,
		},
		{
			name:       "invalid id",
			path:       rolePath(-1),
			body:       map[string]any{"name": "Ghost"},
			wantStatus: fiber.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, out := webtest.Do(t, f.app, fiber.MethodPut, tt.path, tt.body, f.admin)
			require.Equal(t, tt.wantStatus, resp.StatusCode, out.Message)

			if tt.wantPerms == nil {
				return
			}

			var view rolemanagement.RoleView
			webtest.DecodeData(t, out, &view)
			assert.Equal(t, "Clerk", view.Name)
			assert.ElementsMatch(t, tt.wantPerms, view.Permissions)
		})
	}
}

func TestDelete(t *testing.T) {
	f := newFixture(t)

	unused := f.create(t, rolemanagement.CreateRequest{Name: "Temp"})
	assigned := f.create(t, rolemanagement.CreateRequest{Name: "Assigned"})
	dbtest.CreateUser(t, f.deps.DB, "holder", assigned.ID)

	var superAdmin models.Role
	require.NoError(t, f.deps.DB.Where("name = ?", models.SuperAdminRoleName).First(&superAdmin).Error)

	tests := []struct {
		name       string
		id         any
		session    string
		wantStatus int
	}{
		{"super admin is protected", superAdmin.ID, f.admin, fiber.StatusBadRequest},
		{"role with users", assigned.ID, f.admin, fiber.StatusBadRequest},
		{"not found", 9999, f.admin, fiber.StatusNotFound},
		{"invalid id", "x", f.admin, fiber.StatusBadRequest},
		{"lacking roles:delete", unused.ID, f.viewer, fiber.StatusForbidden},
		{"deleted", unused.ID, f.admin, fiber.StatusOK},
		{"deleted twice", unused.ID, f.admin, fiber.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, out := webtest.Do(t, f.app, fiber.MethodDelete, rolePath(tt.id), nil, tt.session)
			require.Equal(t, tt.wantStatus, resp.StatusCode, out.Message)
		})
	}

	var rows int64
	require.NoError(t, f.deps.DB.Model(&models.Role{}).Where("id = ?", superAdmin.ID).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)
}
