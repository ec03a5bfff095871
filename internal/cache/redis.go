package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"fasomarket_back_end/internal/database"
)

var ctx = context.Background()

// --- Refresh Tokens ---

// StoreRefreshToken stocke un refresh token pour un utilisateur
func StoreRefreshToken(userID, refreshToken string, duration time.Duration) error {
	key := fmt.Sprintf("refresh:%s", userID)
	return database.Redis.Set(ctx, key, refreshToken, duration).Err()
}

// GetRefreshToken récupère le refresh token d'un utilisateur
func GetRefreshToken(userID string) (string, error) {
	key := fmt.Sprintf("refresh:%s", userID)
	return database.Redis.Get(ctx, key).Result()
}

// DeleteRefreshToken supprime le refresh token (logout)
func DeleteRefreshToken(userID string) error {
	key := fmt.Sprintf("refresh:%s", userID)
	return database.Redis.Del(ctx, key).Err()
}

// --- Blacklist JWT (révocation avant expiration) ---

// BlacklistToken ajoute un token JWT à la blacklist
func BlacklistToken(tokenID string, duration time.Duration) error {
	key := fmt.Sprintf("blacklist:%s", tokenID)
	return database.Redis.Set(ctx, key, "revoked", duration).Err()
}

// IsTokenBlacklisted vérifie si un token est blacklisté
func IsTokenBlacklisted(tokenID string) bool {
	key := fmt.Sprintf("blacklist:%s", tokenID)
	exists, err := database.Redis.Exists(ctx, key).Result()
	if err != nil {
		log.Printf("⚠️ Erreur vérification blacklist: %v", err)
		return false
	}
	return exists > 0
}

// --- Ban utilisateurs (modération admin) ---

// BanUser bannit un utilisateur (révocation permanente)
func BanUser(userID string) error {
	key := fmt.Sprintf("banned:%s", userID)
	// Pas d'expiration = permanent
	return database.Redis.Set(ctx, key, "true", 0).Err()
}

// UnbanUser débannit un utilisateur
func UnbanUser(userID string) error {
	key := fmt.Sprintf("banned:%s", userID)
	return database.Redis.Del(ctx, key).Err()
}

// IsUserBanned vérifie si un utilisateur est banni
func IsUserBanned(userID string) bool {
	key := fmt.Sprintf("banned:%s", userID)
	exists, err := database.Redis.Exists(ctx, key).Result()
	if err != nil {
		log.Printf("⚠️ Erreur vérification ban: %v", err)
		return false
	}
	return exists > 0
}

// --- Rate Limiting ---

// IncrementRateLimit incrémente le compteur de rate limit
func IncrementRateLimit(key string, window time.Duration) (int64, error) {
	pipe := database.Redis.Pipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)
	_, err := pipe.Exec(ctx)
	if err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

// GetRateLimit récupère le compteur de rate limit
func GetRateLimit(key string) (int64, error) {
	val, err := database.Redis.Get(ctx, key).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return val, err
}
