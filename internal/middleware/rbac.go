package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/inkyard/petstock-api/internal/models"
	appErrors "github.com/inkyard/petstock-api/pkg/errors"
	"github.com/inkyard/petstock-api/pkg/response"
)

// RequireRoles enforces role-based access control for routes. It must
// run after JWT so the resolved claims are present.
func RequireRoles(roles ...models.AccountRole) gin.HandlerFunc {
	allowed := make(map[models.AccountRole]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		claims, ok := Claims(c)
		if !ok {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		if _, ok := allowed[claims.Role]; !ok {
			response.Error(c, appErrors.ErrForbidden)
			c.Abort()
			return
		}

		c.Next()
	}
}
