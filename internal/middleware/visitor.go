package middleware

import (
	"net/http"
	"time"

	"skillCompare/pkg/logger"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pobyzaarif/goshortcute"
)

const (
	VisitorCookieName = "skillcompare_visitor"
	visitorCookieTTL  = 365 * 24 * time.Hour
)

// SealVisitorID encrypts a visitor id into a cookie value.
func SealVisitorID(id, key string) (string, error) {
	sealed, err := goshortcute.AESCBCEncrypt([]byte(id), []byte(key))
	if err != nil {
		return "", err
	}
	return goshortcute.StringtoBase64Encode(sealed), nil
}

// OpenVisitorID reverses SealVisitorID. Anything that does not decrypt to
// a uuid is rejected.
func OpenVisitorID(value, key string) (id string, ok bool) {
	defer func() {
		// malformed padding can panic inside the cipher helpers
		if recover() != nil {
			id, ok = "", false
		}
	}()

	raw := goshortcute.StringtoBase64Decode(value)
	if raw == "" {
		return "", false
	}

	plain, err := goshortcute.AESCBCDecrypt([]byte(raw), []byte(key))
	if err != nil {
		return "", false
	}

	parsed, err := uuid.Parse(plain)
	if err != nil {
		return "", false
	}
	return parsed.String(), true
}

// Visitor assigns every browser a stable anonymous id carried in a sealed
// cookie and exposes it to handlers as "visitor_id".
func Visitor(key string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cookie, err := c.Cookie(VisitorCookieName); err == nil {
				if id, ok := OpenVisitorID(cookie.Value, key); ok {
					c.Set("visitor_id", id)
					return next(c)
				}
			}

			id := uuid.NewString()
			sealed, err := SealVisitorID(id, key)
			if err != nil {
				logger.Error("failed to seal visitor cookie", err)
				return echo.NewHTTPError(http.StatusInternalServerError, "failed to start visitor session")
			}

			c.SetCookie(&http.Cookie{
				Name:     VisitorCookieName,
				Value:    sealed,
				Path:     "/",
				Expires:  time.Now().Add(visitorCookieTTL),
				HttpOnly: true,
				Secure:   c.IsTLS(),
				SameSite: http.SameSiteLaxMode,
			})
			c.Set("visitor_id", id)

			return next(c)
		}
	}
}
