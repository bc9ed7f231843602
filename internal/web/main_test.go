package web_test

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peopledesk/peopledesk/internal/db/dbtest"
	"github.com/peopledesk/peopledesk/internal/db/models"
	"github.com/peopledesk/peopledesk/internal/permission"
	"github.com/peopledesk/peopledesk/internal/web"
	"github.com/peopledesk/peopledesk/internal/web/handler/login"
	"github.com/peopledesk/peopledesk/internal/web/session"
	"github.com/peopledesk/peopledesk/internal/web/webtest"
)

func newService(t *testing.T) (*web.Service, *webtest.Storage) {
	t.Helper()

	db := dbtest.Open(t)
	webtest.SeedUser(t, db, "admin", models.SuperAdminRoleName, permission.Wildcard)

	cfg := webtest.Config()
	cfg.Webserver.ShutDownTime = 0

	store := &webtest.Storage{}

	svc, err := web.New(cfg, db, permission.Default(), store)
	require.NoError(t, err)

	return svc, store
}

func TestNewRejectsNilDependencies(t *testing.T) {
	_, err := web.New(nil, nil, nil, nil)
	assert.ErrorIs(t, err, web.ErrNilDependency)
}

func TestCheckAlive(t *testing.T) {
	svc, _ := newService(t)

	resp, err := svc.App.Test(httptest.NewRequest(fiber.MethodGet, web.CheckAlivePath, nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, svc.Alive())
}

func TestMetrics(t *testing.T) {
	svc, _ := newService(t)

	resp, err := svc.App.Test(httptest.NewRequest(fiber.MethodGet, web.MetricsPath, nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "go_goroutines")
}

func TestUnknownRouteUsesEnvelope(t *testing.T) {
	svc, _ := newService(t)

	sid := webtest.Login(t, 1)

	resp, out := webtest.Do(t, svc.App, fiber.MethodGet, "/does-not-exist", nil, sid)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.False(t, out.Success)
}

func TestProtectedRoutesNeedSession(t *testing.T) {
	svc, _ := newService(t)

	for _, path := range []string{"/role-management", "/role-management/permissions", "/users", login.MePath} {
		resp, out := webtest.Do(t, svc.App, fiber.MethodGet, path, nil, "")
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, path)
		assert.Equal(t, "unauthorized", out.Error, path)
	}
}

func TestLoginAndManageRoles(t *testing.T) {
	svc, store := newService(t)

	resp, _ := webtest.Do(t, svc.App, fiber.MethodPost, login.Path,
		login.Request{Username: "admin", Password: "password1"}, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, 1, store.Len())

	var sid string

	for _, c := range resp.Cookies() {
		if c.Name == session.CookieName {
			sid = c.Value
		}
	}

	require.NotEmpty(t, sid)

	resp, out := webtest.Do(t, svc.App, fiber.MethodPost, "/role-management",
		`{"name":"Recruiter","permissions":["staff:read","staff:create"]}`, sid)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, out.Message)

	resp, out = webtest.Do(t, svc.App, fiber.MethodGet, login.MePath, nil, sid)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var me login.Me
	webtest.DecodeData(t, out, &me)
	assert.Equal(t, []string{permission.Wildcard}, me.Permissions)

	resp, _ = webtest.Do(t, svc.App, fiber.MethodPost, "/logout", nil, sid)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Zero(t, store.Len())

	resp, _ = webtest.Do(t, svc.App, fiber.MethodGet, "/role-management", nil, sid)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestShutdownDrains(t *testing.T) {
	svc, _ := newService(t)
	require.True(t, svc.Alive())

	svc.Shutdown()

	assert.False(t, svc.Alive())
}
