package stock

import (
	"github.com/gocql/gocql"

	"fasomarket_back_end/internal/models"
)

// BilanStock met en regard le stock déclaré au niveau produit et la
// somme des stocks de ses variantes. StockDisponible peut être négatif :
// c'est l'état de surallocation, signalé mais jamais corrigé d'office.
type BilanStock struct {
	StockGlobal         int `json:"stockGlobal"`
	StockVariantesTotal int `json:"stockVariantesTotal"`
	StockDisponible     int `json:"stockDisponible"`
}

// CalculerBilan calcule le bilan à partir du stock produit et de la
// liste de variantes telle qu'elle vient d'être relue.
func CalculerBilan(stockGlobal int, variantes []models.Variante) BilanStock {
	total := StockTotal(variantes)
	return BilanStock{
		StockGlobal:         stockGlobal,
		StockVariantesTotal: total,
		StockDisponible:     stockGlobal - total,
	}
}

// EnSurallocation dit si les variantes réclament plus que le stock
// global n'en déclare.
func (b BilanStock) EnSurallocation() bool {
	return b.StockDisponible < 0
}

// Surallocation retourne l'ampleur du dépassement, 0 quand le bilan
// est sain. C'est cette valeur que le tableau de bord vendeur affiche.
func (b BilanStock) Surallocation() int {
	if b.StockDisponible < 0 {
		return -b.StockDisponible
	}
	return 0
}

// BorneConseillee est le maximum indicatif proposé à l'éditeur pour le
// stock d'une variante : la valeur au-delà de laquelle le produit passe
// en surallocation, la contribution actuelle de la variante étant
// d'abord retranchée. Indicatif seulement : une saisie au-dessus est
// persistée telle quelle, avec l'avertissement de bilan.
func BorneConseillee(stockGlobal int, variantes []models.Variante, varianteID gocql.UUID) int {
	total := StockTotal(variantes)
	actuel := 0
	for _, v := range variantes {
		if v.ID == varianteID {
			actuel = v.Stock
			break
		}
	}
	return stockGlobal - total + actuel
}
