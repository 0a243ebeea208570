package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tripwise/pkg/utils"
)

const SessionIDKey = "session_id"

type SessionCookie struct {
	Name   string
	Secure bool
}

// SessionMiddleware resolves the wizard session from a signed cookie. A missing,
// expired or forged cookie starts a new session. The cookie is re-issued on
// every request so active sessions keep sliding forward.
func SessionMiddleware(signer *utils.SessionSigner, cookie SessionCookie) gin.HandlerFunc {
	return func(c *gin.Context) {
		var sessionID string
		if raw, err := c.Cookie(cookie.Name); err == nil {
			if sid, err := signer.Parse(raw); err == nil {
				sessionID = sid
			}
		}
		if sessionID == "" {
			sessionID = uuid.New().String()
		}

		token, err := signer.Issue(sessionID)
		if err != nil {
			utils.RespondError(c, http.StatusInternalServerError, utils.MsgInternalServerError)
			c.Abort()
			return
		}
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cookie.Name, token, int(signer.TTL().Seconds()), "/", "", cookie.Secure, true)

		c.Set(SessionIDKey, sessionID)
		c.Next()
	}
}

// SessionID returns the id set by SessionMiddleware.
func SessionID(c *gin.Context) string {
	return c.GetString(SessionIDKey)
}
