package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"nutritrack-backend/models"
)

// TokenVerifier turns a bearer token into the subject uid and role it was
// issued for. Constructed once at startup and injected wherever tokens are
// checked.
type TokenVerifier interface {
	Verify(tokenString string) (uid string, role string, err error)
}

type JWTVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret []byte) *JWTVerifier {
	return &JWTVerifier{secret: secret}
}

func (v *JWTVerifier) Verify(tokenString string) (string, string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return "", "", fmt.Errorf("%w: invalid token", models.ErrUnauthorized)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", fmt.Errorf("%w: invalid claims", models.ErrUnauthorized)
	}

	uid, _ := claims["uid"].(string)
	role, _ := claims["role"].(string)
	if uid == "" || role == "" {
		return "", "", fmt.Errorf("%w: uid or role claim missing", models.ErrUnauthorized)
	}
	return uid, role, nil
}

func GenerateJWT(secret []byte, uid, role string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid":  uid,
		"role": role,
		"exp":  time.Now().Add(time.Hour * 72).Unix(),
	})
	return token.SignedString(secret)
}
