package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"fasomarket_back_end/internal/database"
	"fasomarket_back_end/internal/models"
)

const VariantesCacheTTL = 10 * time.Minute

// ErrVarianteCacheMiss est renvoyée quand le produit n'est pas en cache.
var ErrVarianteCacheMiss = redis.Nil

// magasinKV est le strict nécessaire du client Redis utilisé par le
// cache de variantes ; les tests lui substituent une map en mémoire.
type magasinKV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// CacheVariantes est le cache de listes de variantes, clé par produit.
// Collaborateur explicite du couche d'accès catalogue : il est peuplé
// uniquement après une lecture réussie, et invalidé par toute mutation
// vendeur sur les variantes du produit.
type CacheVariantes struct {
	kv  magasinKV
	ttl time.Duration
}

// NewCacheVariantes construit le cache au-dessus du Redis partagé.
func NewCacheVariantes() *CacheVariantes {
	return &CacheVariantes{kv: redisKV{}, ttl: VariantesCacheTTL}
}

func cleVariantes(produitID string) string {
	return "variantes:" + produitID
}

// Recuperer rend la liste en cache, ou ErrVarianteCacheMiss.
func (c *CacheVariantes) Recuperer(ctx context.Context, produitID string) ([]models.Variante, error) {
	data, err := c.kv.Get(ctx, cleVariantes(produitID))
	if err != nil {
		return nil, err
	}
	var variantes []models.Variante
	if err := json.Unmarshal([]byte(data), &variantes); err != nil {
		return nil, err
	}
	return variantes, nil
}

// Stocker met la liste en cache. À n'appeler qu'après une lecture
// Scylla réussie — jamais sur un résultat dégradé.
func (c *CacheVariantes) Stocker(ctx context.Context, produitID string, variantes []models.Variante) error {
	data, err := json.Marshal(variantes)
	if err != nil {
		return err
	}
	return c.kv.Set(ctx, cleVariantes(produitID), string(data), c.ttl)
}

// Invalider purge l'entrée d'un produit. Toute mutation vendeur
// (création, édition, suppression, génération) passe par ici avant de
// répondre.
func (c *CacheVariantes) Invalider(ctx context.Context, produitID string) error {
	return c.kv.Del(ctx, cleVariantes(produitID))
}

// redisKV adapte le client Redis global au contrat magasinKV.
type redisKV struct{}

func (redisKV) Get(ctx context.Context, key string) (string, error) {
	return database.Redis.Get(ctx, key).Result()
}

func (redisKV) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return database.Redis.Set(ctx, key, value, ttl).Err()
}

func (redisKV) Del(ctx context.Context, keys ...string) error {
	return database.Redis.Del(ctx, keys...).Err()
}
