// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements SessionAuth, which resolves the opaque bearer token
// issued at login into the live session object. Protected routes run behind
// it; on success the session and the employee ID are stashed in the Gin
// context for handlers and for rate-limit keying.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/VishnaviKothuri/DTDC-frontend/internal/session"
)

const (
	// HeaderSessionToken is the fallback header carrying the session token
	// when no Authorization bearer is present.
	HeaderSessionToken = "X-Session-Token"

	// ctxKeySession is the Gin context key holding the *session.Session.
	ctxKeySession = "session"
	// ctxKeySessionToken is the Gin context key holding the raw token.
	ctxKeySessionToken = "sessionToken"
)

// SessionFrom returns the resolved session stashed by SessionAuth. The
// second return is false on routes outside the protected group.
func SessionFrom(c *gin.Context) (*session.Session, bool) {
	v, ok := c.Get(ctxKeySession)
	if !ok {
		return nil, false
	}
	s, ok := v.(*session.Session)
	return s, ok
}

// TokenFrom returns the raw session token stashed by SessionAuth.
func TokenFrom(c *gin.Context) string {
	v, ok := c.Get(ctxKeySessionToken)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// SessionAuth returns a Gin middleware that authenticates requests against
// the session manager.
//
// Token lookup order:
//  1. "Authorization: Bearer <token>"
//  2. "X-Session-Token: <token>"
//
// A missing, unknown, or expired token aborts with 401 and the standard
// error envelope. On success the middleware stashes the session, the raw
// token, and the employee ID (under "userID", the key the rate limiter and
// access logger already understand).
func SessionAuth(mgr *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			token = strings.TrimSpace(c.GetHeader(HeaderSessionToken))
		}
		if token == "" {
			abortUnauthorized(c, "missing session token")
			return
		}

		sess, ok := mgr.Get(token)
		if !ok {
			abortUnauthorized(c, "session expired or unknown")
			return
		}

		c.Set(ctxKeySession, sess)
		c.Set(ctxKeySessionToken, token)
		c.Set("userID", sess.EmployeeID)
		c.Next()
	}
}

// bearerToken extracts the token from an "Authorization: Bearer x" value,
// returning "" for any other scheme.
func bearerToken(h string) string {
	const prefix = "Bearer "
	h = strings.TrimSpace(h)
	if len(h) > len(prefix) && strings.EqualFold(h[:len(prefix)], prefix) {
		return strings.TrimSpace(h[len(prefix):])
	}
	return ""
}

// abortUnauthorized writes the standard 401 envelope without depending on
// the handlers package (which would create an import cycle).
func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"request_id": c.Writer.Header().Get("X-Request-ID"),
		"code":       "unauthorized",
		"message":    msg,
	})
}
