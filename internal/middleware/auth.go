package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/clothique/ecommerce-backend/utils"
)

// tokenFromRequest reads the signed token from the http-only cookie or,
// failing that, the Authorization bearer header.
func tokenFromRequest(c *gin.Context, cookieName string) string {
	if token, err := c.Cookie(cookieName); err == nil && token != "" {
		return token
	}
	authHeader := c.GetHeader("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

// UserAuth gates customer routes. The authenticated principal is made
// explicit through the context keys userId and username.
func UserAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c, "accessToken")
		if token == "" {
			c.JSON(http.StatusUnauthorized, utils.ErrorResponse(http.StatusUnauthorized, "Unauthorized request"))
			c.Abort()
			return
		}

		claims, err := utils.VerifyAccessToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, utils.ErrorResponse(http.StatusUnauthorized, err.Error()))
			c.Abort()
			return
		}

		c.Set("userId", claims.UserID)
		c.Set("username", claims.Username)
		c.Next()
	}
}

// AdminAuth gates the admin namespace. Admin tokens are signed with their
// own secret, so a customer token never passes here.
func AdminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c, "adminToken")
		if token == "" {
			c.JSON(http.StatusUnauthorized, utils.ErrorResponse(http.StatusUnauthorized, "Unauthorized request"))
			c.Abort()
			return
		}

		claims, err := utils.VerifyAdminToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, utils.ErrorResponse(http.StatusUnauthorized, err.Error()))
			c.Abort()
			return
		}

		c.Set("adminId", claims.AdminID)
		c.Set("adminUsername", claims.Username)
		c.Next()
	}
}
