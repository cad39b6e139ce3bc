package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/inkyard/petstock-api/internal/models"
	"github.com/inkyard/petstock-api/internal/service"
	appErrors "github.com/inkyard/petstock-api/pkg/errors"
	"github.com/inkyard/petstock-api/pkg/response"
)

// ContextUserKey is the gin context key storing the resolved claims.
const ContextUserKey = "currentAccount"

// JWT protects routes by requiring a valid access token. The account
// behind the token is re-resolved against the store on every request,
// so a block or deletion takes effect immediately even for tokens
// issued earlier.
func JWT(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header"))
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		account, err := authService.ResolveAccount(c.Request.Context(), claims.AccountID)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		// Role comes from the store, not the token, so a role would
		// never be trusted beyond the account's current state.
		claims.Role = account.Role
		claims.Username = account.Username

		c.Set(ContextUserKey, claims)
		c.Next()
	}
}

// Claims extracts the resolved JWT claims from the context.
func Claims(c *gin.Context) (*models.JWTClaims, bool) {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*models.JWTClaims)
	return claims, ok
}
