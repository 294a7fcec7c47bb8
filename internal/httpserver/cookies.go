package httpserver

import (
	"net/http"
	"time"

	"github.com/carecraft/storefront/internal/middleware/auth"
	"github.com/carecraft/storefront/internal/token"
)

func CreateCookie(name string, value string, path string, expTime time.Time, secure bool) *http.Cookie {
	cookie := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Expires:  expTime,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return cookie
}

func sessionCookie(value string, secure bool) *http.Cookie {
	return CreateCookie(auth.CookieName, value, "/", time.Now().Add(token.TTL), secure)
}

func expiredSessionCookie(secure bool) *http.Cookie {
	return CreateCookie(auth.CookieName, "", "/", time.Now().Add(-1*time.Hour), secure)
}
