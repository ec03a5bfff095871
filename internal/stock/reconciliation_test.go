package stock

import (
	"testing"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"

	"fasomarket_back_end/internal/models"
)

func TestCalculerBilan(t *testing.T) {
	tests := []struct {
		nom         string
		stockGlobal int
		stocks      []int
		disponible  int
		suralloc    int
	}{
		{"bilan sain", 10, []int{4, 4}, 2, 0},
		{"tout alloué", 10, []int{6, 4}, 0, 0},
		{"surallocation", 10, []int{7, 4}, -1, 1},
		{"sans variantes", 10, nil, 10, 0},
		{"stock global nul", 0, []int{3}, -3, 3},
	}

	for _, tc := range tests {
		t.Run(tc.nom, func(t *testing.T) {
			var variantes []models.Variante
			for _, s := range tc.stocks {
				variantes = append(variantes, models.Variante{Stock: s})
			}

			bilan := CalculerBilan(tc.stockGlobal, variantes)
			assert.Equal(t, tc.stockGlobal, bilan.StockGlobal)
			assert.Equal(t, tc.stockGlobal-tc.disponible, bilan.StockVariantesTotal)
			assert.Equal(t, tc.disponible, bilan.StockDisponible)
			assert.Equal(t, tc.suralloc > 0, bilan.EnSurallocation())
			assert.Equal(t, tc.suralloc, bilan.Surallocation())
		})
	}
}

func TestEditionSurallouePersisteSansClamp(t *testing.T) {
	// Produit à 10 en stock global, deux variantes à 4. Passer la
	// première à 7 met le bilan à -1 : l'édition est conservée telle
	// quelle et l'avertissement porte l'ampleur du dépassement.
	v1, v2 := gocql.TimeUUID(), gocql.TimeUUID()
	variantes := []models.Variante{
		{ID: v1, Stock: 4},
		{ID: v2, Stock: 4},
	}

	variantes[0].Stock = 7
	bilan := CalculerBilan(10, variantes)

	assert.Equal(t, 11, bilan.StockVariantesTotal)
	assert.Equal(t, -1, bilan.StockDisponible)
	assert.True(t, bilan.EnSurallocation())
	assert.Equal(t, 1, bilan.Surallocation())
	assert.Equal(t, 7, variantes[0].Stock) // jamais rabaissé d'office
}

func TestBorneConseillee(t *testing.T) {
	v1, v2 := gocql.TimeUUID(), gocql.TimeUUID()
	variantes := []models.Variante{
		{ID: v1, Stock: 4},
		{ID: v2, Stock: 4},
	}

	// 10 - 8 + 4 = 6 : la contribution propre de la variante éditée
	// est d'abord retranchée.
	assert.Equal(t, 6, BorneConseillee(10, variantes, v2))
	assert.Equal(t, 6, BorneConseillee(10, variantes, v1))

	// Variante inconnue : contribution nulle.
	assert.Equal(t, 2, BorneConseillee(10, variantes, gocql.TimeUUID()))

	// Déjà suralloué : la borne devient négative, l'éditeur la voit.
	variantes[0].Stock = 9
	assert.Equal(t, -3+4, BorneConseillee(10, variantes, v2))
}
