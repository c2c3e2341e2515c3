package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireRole 허용된 역할만 통과시킨다. JWTAuth 다음에 사용한다.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		if !allowed[GetCurrentRole(c)] {
			c.JSON(http.StatusForbidden, gin.H{
				"code":    403,
				"message": "권한이 없습니다",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
