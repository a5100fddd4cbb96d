package auth

import (
	"fmt"
	"time"

	"nibash_backend/internal/config"
	"nibash_backend/pkg/apperrors"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carried by every access token.
type Claims struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

const issuer = "nibash"

// GenerateToken issues a signed HS256 token for the user.
func GenerateToken(userID, email, role string) (string, error) {
	cfg := config.GetConfig()
	now := time.Now()
	expiresAt := now.Add(time.Duration(cfg.JWT.TTLHours) * time.Hour)

	claims := &Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWT.Secret))
}

// ParseToken verifies the signature and time claims, returning distinct
// errors for expired, not-yet-valid and malformed tokens so the session
// endpoint can surface the reason.
func ParseToken(tokenString string) (*Claims, error) {
	cfg := config.GetConfig()

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(cfg.JWT.Secret), nil
	})
	if err != nil {
		switch {
		case apperrors.Is(err, jwt.ErrTokenExpired):
			return nil, apperrors.ErrTokenExpired
		case apperrors.Is(err, jwt.ErrTokenNotValidYet):
			return nil, apperrors.ErrTokenNotYetValid
		default:
			return nil, apperrors.ErrTokenMalformed
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperrors.ErrTokenMalformed
	}

	return claims, nil
}
