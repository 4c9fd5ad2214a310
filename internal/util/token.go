package util

import (
	"time"

	"github.com/accredhub/backend/internal/config"
	"github.com/accredhub/backend/internal/model"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWTClaims is the capability snapshot embedded in every issued token. Role and
// school are read back from here at request time, never re-derived from the
// stored user record; a role or tenant change requires a fresh login.
type JWTClaims struct {
	UserID   uuid.UUID  `json:"id"`
	SchoolID *uuid.UUID `json:"schoolId"`
	Role     string     `json:"role"`
	jwt.RegisteredClaims
}

func GenerateToken(u *model.User) (string, error) {
	cfg := config.LoadAuthConfig()
	claims := JWTClaims{
		UserID:   u.ID,
		SchoolID: u.SchoolID,
		Role:     u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(cfg.JWTExpire)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

func ValidateToken(tokenString string) (*JWTClaims, error) {
	cfg := config.LoadAuthConfig()
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, jwt.ErrSignatureInvalid
}
