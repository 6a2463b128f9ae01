package auth

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNoCredential   = errors.New("missing access token")
	ErrInvalidToken   = errors.New("invalid access token")
	ErrMissingUserID  = errors.New("token has no user id claim")
	ErrUnexpectedAlgo = errors.New("unexpected token signing method")
)

// ExtractAccessToken pulls the session credential from the request,
// preferring the cookie over the Authorization header.
func ExtractAccessToken(r *http.Request) string {
	if cookie, err := r.Cookie("access_token"); err == nil {
		if cookie.Value != "" {
			return cookie.Value
		}
	}

	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	return ""
}

// VerifyToken validates the JWT and returns the authenticated user id.
func VerifyToken(tokenStr string) (uint, error) {
	if tokenStr == "" {
		return 0, ErrNoCredential
	}

	secret := []byte(os.Getenv("SECRET_KEY"))
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrUnexpectedAlgo
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}

	uid, ok := claims["user_id"].(float64)
	if !ok {
		return 0, ErrMissingUserID
	}

	return uint(uid), nil
}
