package models

import (
	"time"

	"github.com/gocql/gocql"
)

type MouvementStock struct {
	ID         gocql.UUID  `json:"id"`
	ProduitID  gocql.UUID  `json:"produitId"`
	VarianteID *gocql.UUID `json:"varianteId,omitempty"`
	Type       string      `json:"type"` // "vente", "reapprovisionnement", "retour", "ajustement"
	Quantite   int         `json:"quantite"`
	StockAvant int         `json:"stockAvant"`
	StockApres int         `json:"stockApres"`
	Motif      string      `json:"motif"`
	CommandeID *gocql.UUID `json:"commandeId,omitempty"`
	UserID     string      `json:"userId"`
	CreatedAt  time.Time   `json:"createdAt"`
}

type AlerteStock struct {
	ID          gocql.UUID `json:"id"`
	ProduitID   gocql.UUID `json:"produitId"`
	NomProduit  string     `json:"nomProduit"`
	StockActuel int        `json:"stockActuel"`
	SeuilAlerte int        `json:"seuilAlerte"`
	TypeAlerte  string     `json:"typeAlerte"` // "stock_faible", "rupture", "surallocation"
	Resolue     bool       `json:"resolue"`
	CreatedAt   time.Time  `json:"createdAt"`
	ResolueAt   *time.Time `json:"resolueAt,omitempty"`
}
