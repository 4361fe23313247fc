package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/clothique/ecommerce-backend/internal/config"
)

var validate = validator.New()

// currentUserID resolves the authenticated principal set by the auth
// middleware into an ObjectID.
func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	v, ok := c.Get("userId")
	if !ok {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(v.(string))
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

// currentAdminID resolves the authenticated admin set by the admin
// middleware into an ObjectID.
func currentAdminID(c *gin.Context) (primitive.ObjectID, bool) {
	v, ok := c.Get("adminId")
	if !ok {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(v.(string))
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

func cookieSecure() bool {
	return config.GetEnv("COOKIE_SECURE", "true") == "true"
}

func setAuthCookies(c *gin.Context, accessToken, refreshToken string) {
	c.SetCookie("accessToken", accessToken, 24*3600, "/", "", cookieSecure(), true)
	c.SetCookie("refreshToken", refreshToken, 10*24*3600, "/", "", cookieSecure(), true)
}

func clearAuthCookies(c *gin.Context) {
	c.SetCookie("accessToken", "", -1, "/", "", cookieSecure(), true)
	c.SetCookie("refreshToken", "", -1, "/", "", cookieSecure(), true)
}
