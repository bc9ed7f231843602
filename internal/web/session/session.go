// Package session keeps logged-in user state in the configured fiber storage.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// CookieName is the name of the cookie carrying the session ID.
const CookieName = "session"

const localsKey = "session"

var (
	// ErrNotFound is returned when no data is stored for a session ID.
	ErrNotFound = errors.New("session not found")
	// ErrNotInitialized is returned when Init has not been called.
	ErrNotInitialized = errors.New("session store not initialized")
)

// Store is the global session store instance.
var Store *session.Store //nolint:gochecknoglobals

// Data represents the session data structure.
type Data struct {
	UserID   uint64 `json:"user_id"`
	Username string `json:"username"`
}

// Write writes the session data for the given session ID with an expiration duration.
func (s *Data) Write(sessionID string, exp time.Duration) error {
	if Store == nil {
		return ErrNotInitialized
	}

	out, err := json.Marshal(s)
	if err != nil {
		return err
	}

	return Store.Storage.Set(sessionID, out, exp)
}

// Read reads the session data for the given session ID.
func (s *Data) Read(sessionID string) error {
	if Store == nil {
		return ErrNotInitialized
	}

	if sessionID == "" {
		return ErrNotFound
	}

	byteData, err := Store.Storage.Get(sessionID)
	if err != nil {
		return err
	}

	if len(byteData) == 0 {
		return ErrNotFound
	}

	return json.Unmarshal(byteData, s)
}

// Delete removes the session data for the given session ID.
func Delete(sessionID string) error {
	if Store == nil {
		return ErrNotInitialized
	}

	return Store.Storage.Delete(sessionID)
}

// Init initializes the session store. A nil storage keeps sessions in memory.
func Init(storage fiber.Storage, expiration time.Duration) {
	Store = session.New(session.Config{
		Storage:    storage,
		Expiration: expiration,
	})
}

// Expiration returns the configured session lifetime.
func Expiration() time.Duration {
	if Store == nil {
		return 0
	}

	return Store.Expiration
}

// SetLocals stores the session data of the current request.
func SetLocals(c *fiber.Ctx, data *Data) {
	c.Locals(localsKey, data)
}

// FromLocals returns the session data of the current request, if any.
func FromLocals(c *fiber.Ctx) (*Data, bool) {
	data, ok := c.Locals(localsKey).(*Data)
	if !ok || data == nil || data.UserID == 0 {
		return nil, false
	}

	return data, true
}

// GenerateSessionID generates a new secure random session ID.
func GenerateSessionID() (string, error) {
	// 32 bytes = 256 bits
	b := make([]byte, 32) //nolint:mnd
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return hex.EncodeToString(b), nil
}
