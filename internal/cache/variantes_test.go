package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fasomarket_back_end/internal/models"
)

// fauxKV simule Redis avec une map ; errGet force un échec de lecture.
type fauxKV struct {
	donnees map[string]string
	errGet  error
}

func newFauxKV() *fauxKV {
	return &fauxKV{donnees: make(map[string]string)}
}

func (f *fauxKV) Get(_ context.Context, key string) (string, error) {
	if f.errGet != nil {
		return "", f.errGet
	}
	val, ok := f.donnees[key]
	if !ok {
		return "", ErrVarianteCacheMiss
	}
	return val, nil
}

func (f *fauxKV) Set(_ context.Context, key, value string, _ time.Duration) error {
	f.donnees[key] = value
	return nil
}

func (f *fauxKV) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.donnees, k)
	}
	return nil
}

func cacheDeTest() (*CacheVariantes, *fauxKV) {
	kv := newFauxKV()
	return &CacheVariantes{kv: kv, ttl: VariantesCacheTTL}, kv
}

func TestCacheVariantesAllerRetour(t *testing.T) {
	c, _ := cacheDeTest()
	ctx := context.Background()

	_, err := c.Recuperer(ctx, "p1")
	assert.ErrorIs(t, err, ErrVarianteCacheMiss)

	variantes := []models.Variante{
		{Couleur: "Rouge", Taille: "M", Stock: 3},
		{Couleur: "Bleu", Taille: "L", Stock: 0},
	}
	require.NoError(t, c.Stocker(ctx, "p1", variantes))

	relues, err := c.Recuperer(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, relues, 2)
	assert.Equal(t, "Rouge", relues[0].Couleur)
	assert.Equal(t, 0, relues[1].Stock)

	// Les produits sont isolés entre eux.
	_, err = c.Recuperer(ctx, "p2")
	assert.ErrorIs(t, err, ErrVarianteCacheMiss)
}

func TestCacheVariantesInvalidation(t *testing.T) {
	c, kv := cacheDeTest()
	ctx := context.Background()

	require.NoError(t, c.Stocker(ctx, "p1", []models.Variante{{Stock: 1}}))
	require.NoError(t, c.Stocker(ctx, "p2", []models.Variante{{Stock: 2}}))

	require.NoError(t, c.Invalider(ctx, "p1"))

	_, err := c.Recuperer(ctx, "p1")
	assert.ErrorIs(t, err, ErrVarianteCacheMiss)

	// L'invalidation est par clé, pas globale.
	relues, err := c.Recuperer(ctx, "p2")
	require.NoError(t, err)
	assert.Len(t, relues, 1)

	assert.Len(t, kv.donnees, 1)
}

func TestCacheVariantesListeVide(t *testing.T) {
	// Une liste vide est un résultat valide et se met en cache : un
	// produit sans variantes ne doit pas provoquer une relecture Scylla
	// à chaque affichage.
	c, _ := cacheDeTest()
	ctx := context.Background()

	require.NoError(t, c.Stocker(ctx, "p1", nil))
	relues, err := c.Recuperer(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, relues)
}
