package utils

import (
	"crypto/rand"
	"encoding/base64"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const AccessTokenDuration = 15 * time.Minute

// Claims portées par l'access token FasoMarket.
type Claims struct {
	UserID     string `json:"user_id"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	BoutiqueID string `json:"boutique_id,omitempty"`
	TokenID    string `json:"token_id"`
	jwt.RegisteredClaims
}

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "super_secret"
	}
	return []byte(secret)
}

// GenerateAccessToken génère un access token court avec un token_id
// aléatoire (pour la blacklist au logout).
func GenerateAccessToken(userID, email, role, boutiqueID string) (string, string, error) {
	tokenID := uuid.NewString()

	claims := Claims{
		UserID:     userID,
		Email:      email,
		Role:       role,
		BoutiqueID: boutiqueID,
		TokenID:    tokenID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(AccessTokenDuration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(jwtSecret())
	return signed, tokenID, err
}

// ParseAccessToken valide la signature et l'expiration, et rend les claims.
func ParseAccessToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return jwtSecret(), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// GenerateRefreshToken génère un refresh token opaque (stocké dans Redis).
func GenerateRefreshToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// GetTokenExpirationDuration rend le temps restant avant expiration,
// pour dimensionner la blacklist.
func GetTokenExpirationDuration(claims *Claims) time.Duration {
	if claims.ExpiresAt == nil {
		return AccessTokenDuration
	}
	restant := time.Until(claims.ExpiresAt.Time)
	if restant < 0 {
		return 0
	}
	return restant
}
