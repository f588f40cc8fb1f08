package middlewares

import (
	"context"
	"net/http"
	"strings"

	"cleanindia-be/apperr"
	"cleanindia-be/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	// TokenCookie is the cookie the login handler sets.
	TokenCookie = "token"

	userIDKey = "user_id"
	roleKey   = "role"
)

// Authenticator is the part of the auth service the gates need.
type Authenticator interface {
	Verify(token string) (*services.Identity, error)
	AuthorizeStaff(ctx context.Context, id primitive.ObjectID) (*services.Identity, error)
}

// AuthMiddleware accepts a token from the token cookie or an Authorization
// header and stores the caller's id and role on the context.
func AuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			abort(c, http.StatusUnauthorized, "Unauthorized, no token")
			return
		}

		identity, err := auth.Verify(token)
		if err != nil {
			abort(c, http.StatusUnauthorized, "Invalid token")
			return
		}

		c.Set(userIDKey, identity.UserID)
		c.Set(roleKey, identity.Role)
		c.Next()
	}
}

// StaffMiddleware must run after AuthMiddleware. It reloads the caller so a
// demoted or deactivated account loses access immediately.
func StaffMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := UserID(c)
		if !ok {
			abort(c, http.StatusUnauthorized, "Unauthorized, no token")
			return
		}

		identity, err := auth.AuthorizeStaff(c.Request.Context(), userID)
		if err != nil {
			if apperr.KindOf(err) == apperr.KindForbidden {
				abort(c, http.StatusForbidden, err.Error())
				return
			}
			_ = c.Error(err)
			abort(c, http.StatusInternalServerError, "Something went wrong")
			return
		}

		c.Set(roleKey, identity.Role)
		c.Next()
	}
}

// UserID returns the authenticated caller set by AuthMiddleware.
func UserID(c *gin.Context) (primitive.ObjectID, bool) {
	v, exists := c.Get(userIDKey)
	if !exists {
		return primitive.NilObjectID, false
	}
	id, ok := v.(primitive.ObjectID)
	return id, ok
}

func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(TokenCookie); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return strings.TrimSpace(authHeader)
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "message": message})
}
