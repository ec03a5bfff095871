package produit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugifier(t *testing.T) {
	tests := []struct {
		nom  string
		slug string
	}{
		{"Électroménager", "electromenager"},
		{"Mode et Vêtements", "mode-et-vetements"},
		{"Téléphones", "telephones"},
		{"  Beauté  ", "beaute"},
		{"L'artisanat", "lartisanat"},
	}

	for _, tt := range tests {
		t.Run(tt.nom, func(t *testing.T) {
			assert.Equal(t, tt.slug, slugifier(tt.nom))
		})
	}
}
