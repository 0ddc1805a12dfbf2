package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/pos-register/internal/infrastructure/client"
	"github.com/sangkips/pos-register/internal/presentation/http/dto/response"
	"github.com/sangkips/pos-register/pkg/utils"
)

// Context keys set by AuthMiddleware
const (
	CompanyIDKey       = "company_id"
	UserIDKey          = "user_id"
	UserEmailKey       = "user_email"
	UserRolesKey       = "user_roles"
	UserPermissionsKey = "user_permissions"
)

// AuthMiddleware validates the bearer token and identifies the terminal. The raw token is
// forwarded to the retail backend with every call made for the request.
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		tokenString := parts[1]

		claims, err := jwtManager.ValidateAccessToken(tokenString)
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(CompanyIDKey, claims.CompanyID)
		c.Set(UserIDKey, claims.UserID)
		c.Set(UserEmailKey, claims.Email)
		c.Set(UserRolesKey, claims.Roles)
		c.Set(UserPermissionsKey, claims.Permissions)

		c.Request = c.Request.WithContext(client.WithAuthToken(c.Request.Context(), tokenString))

		c.Next()
	}
}

// RequirePermission creates a middleware that requires a specific permission
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userPermissions, ok := stringsFrom(c, UserPermissionsKey)
		if !ok {
			response.Forbidden(c, "Access denied")
			c.Abort()
			return
		}

		if !contains(userPermissions, permission) {
			response.Forbidden(c, "You do not have permission to perform this action")
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireRole creates a middleware that requires one of the given roles
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRoles, ok := stringsFrom(c, UserRolesKey)
		if !ok {
			response.Forbidden(c, "Access denied")
			c.Abort()
			return
		}

		for _, r := range roles {
			if contains(userRoles, r) {
				c.Next()
				return
			}
		}

		response.Forbidden(c, "Insufficient role privileges")
		c.Abort()
	}
}

func stringsFrom(c *gin.Context, key string) ([]string, bool) {
	v, exists := c.Get(key)
	if !exists {
		return nil, false
	}
	s, ok := v.([]string)
	return s, ok
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}

// GetCompanyID returns the company of the authenticated terminal, or 0.
func GetCompanyID(c *gin.Context) int64 {
	return c.GetInt64(CompanyIDKey)
}

// GetUserID returns the authenticated cashier, or 0.
func GetUserID(c *gin.Context) int64 {
	return c.GetInt64(UserIDKey)
}
