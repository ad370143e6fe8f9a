package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
)

var Store *session.Store

const (
	sessionUserKey = "user_id"

	// RememberExpiry is used when the login request sets remember=true.
	RememberExpiry = 30 * 24 * time.Hour
	defaultExpiry  = 24 * time.Hour
)

func InitSessionStore() {
	Store = session.New(session.Config{
		Expiration:     defaultExpiry,
		KeyLookup:      "cookie:session_id",
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
		KeyGenerator:   uuid.NewString,
	})
}

// LoginSession binds the user to the request session. remember stretches
// the session (and cookie) lifetime from one day to thirty.
func LoginSession(c *fiber.Ctx, userID uint, remember bool) error {
	sess, err := Store.Get(c)
	if err != nil {
		return err
	}
	sess.Set(sessionUserKey, userID)
	if remember {
		sess.SetExpiry(RememberExpiry)
	}
	return sess.Save()
}

// LogoutSession destroys the request session if one exists.
func LogoutSession(c *fiber.Ctx) error {
	sess, err := Store.Get(c)
	if err != nil {
		return err
	}
	return sess.Destroy()
}

// SessionUserID reads the user id bound to the request session, without
// requiring one to exist.
func SessionUserID(c *fiber.Ctx) (uint, bool) {
	sess, err := Store.Get(c)
	if err != nil {
		return 0, false
	}
	id, ok := sess.Get(sessionUserKey).(uint)
	return id, ok && id != 0
}
