package stock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fasomarket_back_end/internal/models"
)

func varTest(couleur, taille string, stk int) models.Variante {
	return models.Variante{Couleur: couleur, Taille: taille, Stock: stk}
}

func TestOptionsDimension(t *testing.T) {
	variantes := []models.Variante{
		varTest("Rouge", "M", 3),
		varTest("Bleu", "L", 0),
		varTest("Rouge", "L", 2), // doublon de couleur, première apparition conservée
		{Taille: "XL", Stock: 1}, // pas de couleur
	}

	assert.Equal(t, []string{"Rouge", "Bleu"}, OptionsDimension(variantes, models.DimCouleur))
	assert.Equal(t, []string{"M", "L", "XL"}, OptionsDimension(variantes, models.DimTaille))
	assert.Empty(t, OptionsDimension(variantes, models.DimModele))
}

func TestOptionSelectionnable(t *testing.T) {
	// Exemple de référence : Rouge/M en stock, Bleu/L en rupture.
	variantes := []models.Variante{
		varTest("Rouge", "M", 3),
		varTest("Bleu", "L", 0),
	}

	tests := []struct {
		nom     string
		sel     Selection
		dim     models.Dimension
		valeur  string
		attendu bool
	}{
		{"couleur Rouge sans sélection", Selection{}, models.DimCouleur, "Rouge", true},
		{"couleur Bleu en rupture", Selection{}, models.DimCouleur, "Bleu", false},
		{"taille M après choix Rouge", Selection{Couleur: "Rouge"}, models.DimTaille, "M", true},
		{"taille L après choix Rouge", Selection{Couleur: "Rouge"}, models.DimTaille, "L", false},
		{"changement de couleur ignore le choix courant de la dimension évaluée",
			Selection{Couleur: "Bleu"}, models.DimCouleur, "Rouge", true},
	}

	for _, tc := range tests {
		t.Run(tc.nom, func(t *testing.T) {
			assert.Equal(t, tc.attendu, OptionSelectionnable(variantes, tc.sel, tc.dim, tc.valeur))
		})
	}
}

func TestResoudreSelection(t *testing.T) {
	variantes := []models.Variante{
		varTest("Rouge", "M", 3),
		varTest("Rouge", "L", 1),
		varTest("Bleu", "M", 2),
	}

	v := ResoudreSelection(variantes, Selection{Couleur: "Rouge", Taille: "L"})
	require.NotNil(t, v)
	assert.Equal(t, "L", v.Taille)

	// Sélection partielle : la première correspondante gagne.
	v = ResoudreSelection(variantes, Selection{Couleur: "Rouge"})
	require.NotNil(t, v)
	assert.Equal(t, "M", v.Taille)

	assert.Nil(t, ResoudreSelection(variantes, Selection{Couleur: "Vert"}))
}

func TestResoudreSelectionDoublon(t *testing.T) {
	// Deux variantes portant les mêmes attributs : l'ordre catalogue
	// départage, première gagnante.
	variantes := []models.Variante{
		{Couleur: "Rouge", Stock: 1, AjustementPrix: 100},
		{Couleur: "Rouge", Stock: 5, AjustementPrix: 200},
	}
	v := ResoudreSelection(variantes, Selection{Couleur: "Rouge"})
	require.NotNil(t, v)
	assert.Equal(t, 100.0, v.AjustementPrix)
}

func TestSelectionParDefaut(t *testing.T) {
	t.Run("première variante en stock", func(t *testing.T) {
		variantes := []models.Variante{
			varTest("Rouge", "M", 0),
			varTest("Bleu", "L", 4),
			varTest("Vert", "S", 2),
		}
		v := SelectionParDefaut(variantes)
		require.NotNil(t, v)
		assert.Equal(t, "Bleu", v.Couleur)
	})

	t.Run("tout en rupture, pas de défaut", func(t *testing.T) {
		variantes := []models.Variante{varTest("Rouge", "M", 0), varTest("Bleu", "L", 0)}
		assert.Nil(t, SelectionParDefaut(variantes))
	})

	t.Run("liste vide", func(t *testing.T) {
		assert.Nil(t, SelectionParDefaut(nil))
	})
}

func TestResoudre(t *testing.T) {
	variantes := []models.Variante{
		varTest("Rouge", "M", 3),
		varTest("Bleu", "L", 0),
	}

	res := Resoudre(variantes, Selection{Couleur: "Rouge"})

	require.Contains(t, res.Options, models.DimTaille)
	tailles := res.Options[models.DimTaille]
	require.Len(t, tailles, 2)
	assert.Equal(t, Option{Valeur: "M", Selectionnable: true}, tailles[0])
	assert.Equal(t, Option{Valeur: "L", Selectionnable: false}, tailles[1])

	require.NotNil(t, res.Variante)
	assert.Equal(t, "Rouge", res.Variante.Couleur)
	assert.Equal(t, 3, res.Variante.Stock)
}

func TestStockTotalEtPrix(t *testing.T) {
	t.Run("liste vide", func(t *testing.T) {
		assert.Equal(t, 0, StockTotal(nil))
		assert.Equal(t, 0.0, PrixMin(nil))
		assert.Equal(t, 0.0, PrixMax(nil))
	})

	t.Run("liste remplie", func(t *testing.T) {
		variantes := []models.Variante{
			{Stock: 3, AjustementPrix: -500},
			{Stock: 0, AjustementPrix: 1000},
			{Stock: 7, AjustementPrix: 250},
		}
		assert.Equal(t, 10, StockTotal(variantes))
		assert.Equal(t, -500.0, PrixMin(variantes))
		assert.Equal(t, 1000.0, PrixMax(variantes))
	})
}
