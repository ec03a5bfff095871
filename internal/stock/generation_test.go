package stock

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fasomarket_back_end/internal/models"
)

func TestCombinaisonsAGenerer(t *testing.T) {
	t.Run("produit cartésien complet", func(t *testing.T) {
		combos := CombinaisonsAGenerer(
			[]string{"Rouge", "Bleu"},
			[]string{"M", "L"},
			nil,
			nil,
		)
		assert.Len(t, combos, 4)
		assert.Equal(t, models.Variante{Couleur: "Rouge", Taille: "M"}, combos[0])
		assert.Equal(t, models.Variante{Couleur: "Bleu", Taille: "L"}, combos[3])
	})

	t.Run("les combinaisons existantes sont écartées", func(t *testing.T) {
		existantes := []models.Variante{{Couleur: "Rouge", Taille: "M", Stock: 3}}
		combos := CombinaisonsAGenerer([]string{"Rouge", "Bleu"}, []string{"M"}, nil, existantes)
		assert.Len(t, combos, 1)
		assert.Equal(t, "Bleu", combos[0].Couleur)
	})

	t.Run("un seul axe renseigné", func(t *testing.T) {
		combos := CombinaisonsAGenerer([]string{"Rouge"}, nil, nil, nil)
		assert.Len(t, combos, 1)
		assert.Equal(t, "", combos[0].Taille)
	})

	t.Run("aucun axe", func(t *testing.T) {
		// Le seul candidat est la variante sans attribut ; s'il existe
		// déjà une variante nue, rien à générer.
		combos := CombinaisonsAGenerer(nil, nil, nil, nil)
		assert.Len(t, combos, 1)

		combos = CombinaisonsAGenerer(nil, nil, nil, []models.Variante{{}})
		assert.Empty(t, combos)
	})
}
