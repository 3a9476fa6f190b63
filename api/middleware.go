package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/fintrack/backend/auth"
	"github.com/fintrack/backend/logging"
	"github.com/gin-gonic/gin"
)

const claimsKey = "claims"

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	return token, token != ""
}

// tokenErrorMessage turns a verification failure into the message sent to
// the client.
func tokenErrorMessage(err error) string {
	switch {
	case errors.Is(err, auth.ErrTokenExpired):
		return "Token has expired"
	case errors.Is(err, auth.ErrTokenSignature):
		return "Invalid token signature"
	case errors.Is(err, auth.ErrTokenPayload):
		return "Invalid token payload: missing userName"
	case errors.Is(err, auth.ErrSessionNotFound):
		return "Token not found in session store"
	case errors.Is(err, auth.ErrSessionMismatch):
		return "Token mismatch - session may have been invalidated"
	case errors.Is(err, auth.ErrSessionUnavailable):
		return "Failed to verify session"
	default:
		return "Invalid token format"
	}
}

// verify authenticates the bearer token of the request. On failure it has
// already answered 401.
func (h *Handler) verify(c *gin.Context) (*auth.Claims, bool) {
	token, ok := bearerToken(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "No token provided")
		return nil, false
	}
	claims, err := h.auth.Verify(c.Request.Context(), token)
	if err != nil {
		event := logging.FromContext(c).Warn()
		if errors.Is(err, auth.ErrSessionUnavailable) {
			event = logging.FromContext(c).Error()
		}
		event.Err(err).Msg("token verification failed")
		fail(c, http.StatusUnauthorized, tokenErrorMessage(err))
		return nil, false
	}
	return claims, true
}

// AuthMiddleware rejects requests without a valid bearer token and stores
// the verified claims for the handlers.
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := h.verify(c)
		if !ok {
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

func currentClaims(c *gin.Context) *auth.Claims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*auth.Claims)
	return claims
}
