package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	jwtpkg "northpole/wishhub/pkg/jwt"
	"northpole/wishhub/pkg/response"
)

const ContextKeyUserClaims = "user_claims"

type principalKey struct{}

// WithPrincipal records the authenticated principal on the request context
// so the authorization gate can compare it against the principal an
// operation demands.
func WithPrincipal(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, principalKey{}, subject)
}

// PrincipalFromContext returns the authenticated principal, if any.
func PrincipalFromContext(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(principalKey{}).(string)
	return subject, ok
}

func JWTAuth(jwtManager *jwtpkg.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "invalid authorization format")
			c.Abort()
			return
		}

		claims, err := jwtManager.Validate(parts[1])
		if err != nil {
			response.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextKeyUserClaims, claims)
		c.Request = c.Request.WithContext(WithPrincipal(c.Request.Context(), claims.Subject))
		c.Next()
	}
}
