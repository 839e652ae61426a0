package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/slot-scheduler/internal/config"
	"github.com/BruksfildServices01/slot-scheduler/internal/domain/access"
	"github.com/BruksfildServices01/slot-scheduler/internal/httperr"
)

const (
	ContextUserID = "userID"
	ContextScope  = "scope"
)

// AuthMiddleware verifies an HS256 bearer token and stores the caller
// scope. Expected claims: sub (user id), role, tenantId (staff only).
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing_authorization_header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c, "invalid_authorization_header")
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			abortUnauthorized(c, "invalid_token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortUnauthorized(c, "invalid_token_claims")
			return
		}

		scope, ok := scopeFromClaims(claims)
		if !ok {
			abortUnauthorized(c, "invalid_token_payload")
			return
		}

		c.Set(ContextUserID, scope.UserID)
		c.Set(ContextScope, scope)

		c.Next()
	}
}

func scopeFromClaims(claims jwt.MapClaims) (access.Scope, bool) {
	sub, ok := claims["sub"].(float64)
	if !ok || sub <= 0 {
		return access.Scope{}, false
	}

	roleStr, _ := claims["role"].(string)
	role, ok := access.ParseRole(roleStr)
	if !ok {
		return access.Scope{}, false
	}

	scope := access.Scope{Role: role, UserID: uint(sub)}

	if tenant, ok := claims["tenantId"].(float64); ok && tenant > 0 {
		scope.TenantID = uint(tenant)
	}
	if role == access.RoleTenant && scope.TenantID == 0 {
		return access.Scope{}, false
	}

	return scope, true
}

// ScopeFrom returns the scope stored by AuthMiddleware.
func ScopeFrom(c *gin.Context) access.Scope {
	if v, ok := c.Get(ContextScope); ok {
		if s, ok := v.(access.Scope); ok {
			return s
		}
	}
	return access.Scope{}
}

func abortUnauthorized(c *gin.Context, code string) {
	httperr.Unauthorized(c, code, "unauthorized")
	c.Abort()
}
