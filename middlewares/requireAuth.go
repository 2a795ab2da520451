package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/warungku/warungku-api/utils"
)

// ClaimsContextKey is where RequireAuth stores the verified session claims.
const ClaimsContextKey = "claims"

// RequireAuth verifies the session cookie and aborts with 401 on any
// missing, malformed, or expired token. It never falls back to a default
// tenant: handlers behind it can rely on claims.StoreID being the verified
// tenant boundary.
func RequireAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString, err := ctx.Cookie(utils.SessionCookieName)
		if err != nil || tokenString == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}

		claims, err := utils.ValidateToken(tokenString)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}

		ctx.Set(ClaimsContextKey, claims)
		ctx.Next()
	}
}

// GetClaims returns the session claims set by RequireAuth.
func GetClaims(ctx *gin.Context) (*utils.Claims, bool) {
	value, exists := ctx.Get(ClaimsContextKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*utils.Claims)
	return claims, ok
}
