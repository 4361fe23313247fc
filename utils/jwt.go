package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/clothique/ecommerce-backend/internal/config"
)

// Customer and admin sessions use separate secrets so a token from one
// namespace can never be replayed against the other.

type UserClaims struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type AdminClaims struct {
	AdminID  string `json:"adminId"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

var ErrInvalidToken = errors.New("invalid or expired token")

func accessSecret() []byte {
	return []byte(config.GetEnv("ACCESS_TOKEN_SECRET", "dev-access-secret"))
}

func refreshSecret() []byte {
	return []byte(config.GetEnv("REFRESH_TOKEN_SECRET", "dev-refresh-secret"))
}

func adminSecret() []byte {
	return []byte(config.GetEnv("ADMIN_TOKEN_SECRET", "dev-admin-secret"))
}

func signUserToken(userID, username string, secret []byte, ttl time.Duration) (string, error) {
	claims := &UserClaims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func GenerateAccessToken(userID, username string) (string, error) {
	return signUserToken(userID, username, accessSecret(), 24*time.Hour)
}

func GenerateRefreshToken(userID, username string) (string, error) {
	return signUserToken(userID, username, refreshSecret(), 10*24*time.Hour)
}

func GenerateAdminToken(adminID, username string) (string, error) {
	claims := &AdminClaims{
		AdminID:  adminID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(adminSecret())
}

func verifyUserToken(tokenString string, secret []byte) (*UserClaims, error) {
	claims := &UserClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func VerifyAccessToken(tokenString string) (*UserClaims, error) {
	return verifyUserToken(tokenString, accessSecret())
}

func VerifyRefreshToken(tokenString string) (*UserClaims, error) {
	return verifyUserToken(tokenString, refreshSecret())
}

func VerifyAdminToken(tokenString string) (*AdminClaims, error) {
	claims := &AdminClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return adminSecret(), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
