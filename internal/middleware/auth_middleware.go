package middleware

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	autherrors "github.com/dhruv2311-dot/odoo-gcet/internal/auth/errors"
	"github.com/dhruv2311-dot/odoo-gcet/internal/domain"
	"github.com/dhruv2311-dot/odoo-gcet/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		authHeader := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Token not found", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})

		if err != nil || !token.Valid {
			errObj := autherrors.ErrInvalidToken
			if err != nil && strings.Contains(err.Error(), "expired") {
				errObj = autherrors.ErrTokenExpired
			}
			response.Error(c, errObj.HTTPStatus, errObj.Code, errObj.Message, nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token claims", nil)
			c.Abort()
			return
		}

		userID, ok := claims["user_id"].(string)
		if !ok || userID == "" {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "User ID not found in token", nil)
			c.Abort()
			return
		}

		email, _ := claims["email"].(string)

		// Unknown role strings parse to the zero role, which passes no
		// RequireRole gate.
		roleStr, _ := claims["role"].(string)
		role, _ := domain.ParseRole(roleStr)

		c.Set("user_id", userID)
		c.Set("email", email)
		c.Set("role", role.String())

		c.Next()
	}
}

// RequireRole rejects callers below the required access level. It runs
// before the handler, so a 403 can never leave partial writes behind.
func RequireRole(required domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := domain.ParseRole(c.GetString("role"))
		if !ok || !role.Can(required) {
			response.Error(c, autherrors.ErrForbidden.HTTPStatus, autherrors.ErrForbidden.Code, autherrors.ErrForbidden.Message, nil)
			c.Abort()
			return
		}

		c.Next()
	}
}

// CurrentIdentity resolves the authenticated caller from the gin context.
// Handlers pass the identity down explicitly instead of letting services
// read the request context.
func CurrentIdentity(c *gin.Context) (domain.Identity, bool) {
	userID := c.GetString("user_id")
	if userID == "" {
		return domain.Identity{}, false
	}

	role, ok := domain.ParseRole(c.GetString("role"))
	if !ok {
		return domain.Identity{}, false
	}

	return domain.Identity{
		UserID: userID,
		Email:  c.GetString("email"),
		Role:   role,
	}, true
}
