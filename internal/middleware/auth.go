package middleware

import (
	"net/http"
	"strings"

	"coworkspace/internal/domain"
	"coworkspace/internal/pkg/jwt"
	"coworkspace/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// TokenCookie is the cookie set on login and cleared on logout.
const TokenCookie = "token"

const identityKey = "identity"

type tokenValidator interface {
	ValidateToken(tokenStr string) (*jwt.Claims, error)
}

// JWTAuth resolves the caller identity from a Bearer token, falling back
// to the token cookie, and stores it on the request context.
func JWTAuth(validator tokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, code, msg := extractToken(c)
		if code != "" {
			response.Error(c, http.StatusUnauthorized, code, msg)
			c.Abort()
			return
		}

		claims, err := validator.ValidateToken(tokenStr)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			c.Abort()
			return
		}

		identity := domain.Identity{UserID: claims.UserID, Role: domain.UserRole(claims.Role)}
		if !identity.Authenticated() {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Token carries an unknown role")
			c.Abort()
			return
		}

		SetIdentity(c, identity)
		c.Next()
	}
}

func extractToken(c *gin.Context) (token, code, msg string) {
	h := c.GetHeader("Authorization")
	if h == "" {
		if cookie, err := c.Cookie(TokenCookie); err == nil && cookie != "" && cookie != "none" {
			return cookie, "", ""
		}
		return "", "AUTH_HEADER_MISSING", "Missing Authorization header"
	}

	if !strings.HasPrefix(h, "Bearer ") {
		return "", "INVALID_AUTH_FORMAT", "Authorization header must be: Bearer <token>"
	}

	token = strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	if token == "" {
		return "", "INVALID_AUTH_FORMAT", "Empty token"
	}
	return token, "", ""
}

// SetIdentity stores the resolved identity. user_id and role are kept for
// request logging.
func SetIdentity(c *gin.Context, identity domain.Identity) {
	c.Set(identityKey, identity)
	c.Set("user_id", identity.UserID)
	c.Set("role", string(identity.Role))
}

// IdentityFrom returns the identity resolved by JWTAuth.
func IdentityFrom(c *gin.Context) (domain.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return domain.Identity{}, false
	}
	identity, ok := v.(domain.Identity)
	return identity, ok && identity.Authenticated()
}
