package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"omnily-go-admin/pkg/jwt"
	"omnily-go-admin/pkg/response"
	"omnily-go-admin/redis"
)

// Jwt validates the bearer token and places the session identity in the
// context: uid, rid, type, organizationId and the userInfo map handlers read
// through utils.GetOrgID.
func Jwt() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Request.Header.Get("Authorization")
		if token == "" {
			response.Abort(c, response.AUTH_ERROR, "missing token")
			return
		}
		if len(token) > 7 && token[:7] == "Bearer " {
			token = token[7:]
		}

		manager := jwt.NewSecureJWTManager()
		claims, err := manager.ValidateToken(token)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				response.Abort(c, response.AUTH_ERROR, "authorization expired")
				return
			}
			response.Abort(c, response.AUTH_ERROR, err.Error())
			return
		}

		// A newer login supersedes this session.
		if stored, err := redis.GetToken(fmt.Sprintf("%d", claims.UID)); err == nil && stored != token {
			response.Abort(c, response.AUTH_ERROR, "session superseded by a newer login")
			return
		}

		c.Set("uid", claims.UID)
		c.Set("rid", claims.RID)
		c.Set("type", claims.TYPE)
		c.Set("organizationId", claims.OrganizationID)
		c.Set("userInfo", map[string]string{
			"id":             fmt.Sprintf("%d", claims.UID),
			"organizationId": claims.OrganizationID,
		})
		c.Next()
	}
}
