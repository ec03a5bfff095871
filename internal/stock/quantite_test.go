package stock

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPeutIncrementer(t *testing.T) {
	assert.True(t, PeutIncrementer(1, 3))
	assert.True(t, PeutIncrementer(2, 3))
	assert.False(t, PeutIncrementer(3, 3)) // qte == stock : plafond atteint
	assert.False(t, PeutIncrementer(1, 0))
}

func TestPeutDecrementer(t *testing.T) {
	assert.True(t, PeutDecrementer(2))
	assert.False(t, PeutDecrementer(1)) // le retrait total passe par la suppression
	assert.False(t, PeutDecrementer(0))
}

func TestValiderAjout(t *testing.T) {
	tests := []struct {
		nom    string
		qte    int
		stock  int
		rejete bool
	}{
		{"ajout normal", 2, 5, false},
		{"tout le stock", 5, 5, false},
		{"au-delà du stock", 6, 5, true},
		{"rupture", 1, 0, true},
		{"quantité nulle", 0, 5, true},
		{"quantité négative", -1, 5, true},
	}

	for _, tc := range tests {
		t.Run(tc.nom, func(t *testing.T) {
			err := ValiderAjout(tc.qte, tc.stock)
			if tc.rejete {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
