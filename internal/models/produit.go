package models

import (
	"time"

	"github.com/gocql/gocql"
)

type Produit struct {
	ID            gocql.UUID `json:"id" db:"produit_id"`
	BoutiqueID    gocql.UUID `json:"boutiqueId" db:"boutique_id"`
	Nom           string     `json:"nom" db:"nom"`
	Description   string     `json:"description" db:"description"`
	Prix          float64    `json:"prix" db:"prix"`
	QuantiteStock int        `json:"quantiteStock" db:"quantite_stock"`
	SeuilAlerte   int        `json:"seuilAlerte" db:"seuil_alerte"`
	CategorieID   gocql.UUID `json:"categorieId" db:"categorie_id"`
	ImageURLs     []string   `json:"imageUrls" db:"image_urls"`
	Tags          []string   `json:"tags" db:"tags"`
	Statut        string     `json:"statut" db:"statut"` // "en_attente", "approuve", "suspendu"
	AVariantes    bool       `json:"aVariantes" db:"a_variantes"`
	CreatedAt     *time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     *time.Time `json:"updatedAt" db:"updated_at"`
}

// StockFaible indique si le produit est sous son seuil d'alerte
func (p Produit) StockFaible() bool {
	return p.QuantiteStock <= p.SeuilAlerte
}

type Categorie struct {
	ID        gocql.UUID `json:"id" db:"categorie_id"`
	Nom       string     `json:"nom" db:"nom"`
	Slug      string     `json:"slug" db:"slug"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
}
