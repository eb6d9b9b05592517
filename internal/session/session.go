// Package session wraps fiber's session middleware. Session state lives in
// a Postgres table keyed by the cookie's session id, so restarting the
// server does not log anyone out.
package session

import (
	"time"

	"github.com/crotools/cro-admin-backend/internal/config"
	"github.com/gofiber/fiber/v2"
	fibersession "github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/storage/postgres/v3"
)

const (
	cookieName = "cro_admin_session"
	userIDKey  = "user_id"
)

// NewStore builds the production store backed by a Postgres table.
func NewStore(cfg *config.Config) *fibersession.Store {
	storage := postgres.New(postgres.Config{
		ConnectionURI: cfg.ConnectionURI(),
		Table:         cfg.SessionTable,
		GCInterval:    10 * time.Minute,
	})
	return NewStoreWithStorage(cfg, storage)
}

// NewStoreWithStorage lets tests swap in fiber's in-memory storage.
func NewStoreWithStorage(cfg *config.Config, storage fiber.Storage) *fibersession.Store {
	return fibersession.New(fibersession.Config{
		Storage:        storage,
		Expiration:     cfg.SessionTTL,
		KeyLookup:      "cookie:" + cookieName,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})
}

// SetLoginUser binds the user id to the request's session.
func SetLoginUser(c *fiber.Ctx, store *fibersession.Store, userID int) error {
	sess, err := store.Get(c)
	if err != nil {
		return err
	}
	sess.Set(userIDKey, userID)
	return sess.Save()
}

// GetLoginUserID returns the authenticated user id, or false when the
// request carries no live session.
func GetLoginUserID(c *fiber.Ctx, store *fibersession.Store) (int, bool) {
	sess, err := store.Get(c)
	if err != nil {
		return 0, false
	}
	id, ok := sess.Get(userIDKey).(int)
	return id, ok
}

// Clear destroys the session and expires the cookie.
func Clear(c *fiber.Ctx, store *fibersession.Store) error {
	sess, err := store.Get(c)
	if err != nil {
		return err
	}
	return sess.Destroy()
}
