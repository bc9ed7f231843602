// Package webtest provides fixtures for handler tests.
package webtest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/peopledesk/peopledesk/internal/auth"
	"github.com/peopledesk/peopledesk/internal/config"
	"github.com/peopledesk/peopledesk/internal/db/dbtest"
	"github.com/peopledesk/peopledesk/internal/db/models"
	"github.com/peopledesk/peopledesk/internal/permission"
	"github.com/peopledesk/peopledesk/internal/web/handler"
	"github.com/peopledesk/peopledesk/internal/web/response"
	"github.com/peopledesk/peopledesk/internal/web/session"
)

// Storage is a minimal in-memory fiber.Storage.
type Storage struct {
	mu   sync.RWMutex
	data map[string][]byte
}

var _ fiber.Storage = (*Storage)(nil)

// Get implements fiber.Storage.
func (s *Storage) Get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	if !ok {
		return nil, nil
	}

	out := make([]byte, len(v))
	copy(out, v)

	return out, nil
}

// Set implements fiber.Storage. Expiration is ignored.
func (s *Storage) Set(key string, val []byte, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		s.data = make(map[string][]byte)
	}

	buf := make([]byte, len(val))
	copy(buf, val)
	s.data[key] = buf

	return nil
}

// Delete implements fiber.Storage.
func (s *Storage) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)

	return nil
}

// Reset implements fiber.Storage.
func (s *Storage) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = make(map[string][]byte)

	return nil
}

// Close implements fiber.Storage.
func (s *Storage) Close() error { return nil }

// Len returns the number of stored sessions.
func (s *Storage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.data)
}

// Config returns a minimal valid config.
func Config() *config.Config {
	return &config.Config{
		DevMode: true,
		DB:      config.DB{Engine: config.EngineSQLite, Name: ":memory:"},
		Webserver: config.Webserver{
			URL:          "http://localhost",
			Port:         3000,
			ShutDownTime: 1,
			Session:      config.Session{ExpiryTime: time.Minute},
		},
	}
}

// Dependencies opens a fresh database and session store and returns handler dependencies.
func Dependencies(t *testing.T) (handler.Dependencies, *Storage) {
	t.Helper()

	db := dbtest.Open(t)
	catalog := permission.Default()
	store := &Storage{data: make(map[string][]byte)}

	session.Init(store, time.Minute)

	return handler.Dependencies{
		Config:  Config(),
		DB:      db,
		Catalog: catalog,
		Auth:    auth.NewService(db, catalog),
		Local:   auth.NewLocalProvider(db),
	}, store
}

// SeedUser creates a role holding keys and an active user with password "password1" on it.
func SeedUser(t *testing.T, db *gorm.DB, username, roleName string, keys ...string) *models.User {
	t.Helper()

	r := &models.Role{Name: roleName, Version: 1}
	require.NoError(t, db.Omit("Permissions").Create(r).Error)

	for _, key := range keys {
		require.NoError(t, db.Create(&models.RolePermission{
			RoleID:     r.ID,
			Permission: key,
			AllowDeny:  models.Allow,
		}).Error)
	}

	hash, err := models.HashPassword("password1")
	require.NoError(t, err)

	u := &models.User{
		Active:   true,
		Username: username,
		Email:    username + "@example.com",
		Password: hash,
		RoleID:   r.ID,
	}
	require.NoError(t, db.Create(u).Error)

	return u
}

// Login writes a session for userID and returns its ID.
func Login(t *testing.T, userID uint64) string {
	t.Helper()

	id, err := session.GenerateSessionID()
	require.NoError(t, err)
	require.NoError(t, (&session.Data{UserID: userID}).Write(id, time.Minute))

	return id
}

// Do sends a request to app and decodes the JSON envelope of the response.
// A nil body sends no body. sessionID may be empty.
func Do(t *testing.T, app *fiber.App, method, path string, body any, sessionID string) (*http.Response, response.Body) {
	t.Helper()

	var reader io.Reader

	if body != nil {
		raw, ok := body.(string)
		if !ok {
			encoded, err := json.Marshal(body)
			require.NoError(t, err)

			raw = string(encoded)
		}

		reader = bytes.NewBufferString(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}

	if sessionID != "" {
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: sessionID})
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded response.Body

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	if len(raw) > 0 && json.Valid(raw) {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}

	return resp, decoded
}

// DecodeData re-decodes the data field of an envelope into out.
func DecodeData(t *testing.T, body response.Body, out any) {
	t.Helper()

	raw, err := json.Marshal(body.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out))
}
