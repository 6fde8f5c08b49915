package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/norsbakery/storefront/config"
	"github.com/norsbakery/storefront/pkg/util"
)

// Context keys for session information
const (
	SessionIDKey   = "session_id"
	AccessTokenKey = "access_token"
)

// LoginPath is where RequireLogin sends anonymous visitors.
const LoginPath = "/login"

type SessionMiddleware struct {
	secret     string
	cookieName string
	ttl        time.Duration
	secure     bool
}

func NewSessionMiddleware(cfg *config.SessionConfig) *SessionMiddleware {
	return &SessionMiddleware{
		secret:     cfg.Secret,
		cookieName: cfg.CookieName,
		ttl:        cfg.TTL,
		secure:     cfg.Secure,
	}
}

// Load restores the visitor's session from the signed cookie, or starts a
// new one when the cookie is missing, tampered with or expired. A cookie
// past half its lifetime is re-issued with the same claims so active
// visitors keep their session id.
func (m *SessionMiddleware) Load() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		raw, err := c.Cookie(m.cookieName)
		if err == nil && raw != "" {
			claims, err := util.ParseSessionToken(raw, m.secret)
			if err == nil {
				c.Set(SessionIDKey, claims.SessionID)
				c.Set(AccessTokenKey, claims.AccessToken)
				if m.needsRenewal(claims) {
					if err := m.issue(c, claims.SessionID, claims.AccessToken); err != nil {
						log.Warn("Failed to renew session cookie", map[string]interface{}{
							"error": err.Error(),
						})
					}
				}
				c.Next()
				return
			}
			log.Debug("Discarding session cookie", map[string]interface{}{
				"expired": errors.Is(err, util.ErrExpiredToken),
			})
		}

		sessionID := util.NewSessionID()
		if err := m.issue(c, sessionID, ""); err != nil {
			log.Error("Failed to issue session cookie", err)
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		log.Debug("New session started", map[string]interface{}{
			"session_id": sessionID,
		})
		c.Next()
	}
}

// SignIn attaches an identity-service access token to the current session.
// The session id, and with it the cart, is kept.
func (m *SessionMiddleware) SignIn(c *gin.Context, accessToken string) error {
	return m.issue(c, m.sessionIDOrNew(c), accessToken)
}

// SignOut drops the access token but keeps the session id.
func (m *SessionMiddleware) SignOut(c *gin.Context) error {
	return m.issue(c, m.sessionIDOrNew(c), "")
}

// RequireLogin redirects visitors without an access token to the login page.
func (m *SessionMiddleware) RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetAccessToken(c) == "" {
			GetLoggerFromContext(c).Debug("Login required, redirecting", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			c.Redirect(http.StatusSeeOther, LoginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

func (m *SessionMiddleware) issue(c *gin.Context, sessionID, accessToken string) error {
	token, err := util.GenerateSessionToken(sessionID, accessToken, m.secret, m.ttl)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cookieName, token, int(m.ttl.Seconds()), "/", "", m.secure, true)
	c.Set(SessionIDKey, sessionID)
	c.Set(AccessTokenKey, accessToken)
	return nil
}

func (m *SessionMiddleware) needsRenewal(claims *util.SessionClaims) bool {
	if claims.ExpiresAt == nil {
		return true
	}
	return time.Until(claims.ExpiresAt.Time) < m.ttl/2
}

func (m *SessionMiddleware) sessionIDOrNew(c *gin.Context) string {
	if id := GetSessionID(c); id != "" {
		return id
	}
	return util.NewSessionID()
}

// GetSessionID returns the current visitor's session id.
func GetSessionID(c *gin.Context) string {
	return c.GetString(SessionIDKey)
}

// GetAccessToken returns the signed-in visitor's access token, or "".
func GetAccessToken(c *gin.Context) string {
	return c.GetString(AccessTokenKey)
}
