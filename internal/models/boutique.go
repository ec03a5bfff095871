package models

import (
	"time"

	"github.com/gocql/gocql"
)

type Boutique struct {
	ID          gocql.UUID `json:"id"`
	VendeurID   string     `json:"vendeurId"`
	Nom         string     `json:"nom"`
	Description string     `json:"description"`
	Ville       string     `json:"ville"`
	Telephone   string     `json:"telephone"`
	LogoURL     string     `json:"logoUrl,omitempty"`
	Statut      string     `json:"statut"` // "en_attente", "approuvee", "suspendue"
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
