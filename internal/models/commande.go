package models

import (
	"time"

	"github.com/gocql/gocql"
)

type Commande struct {
	ID            gocql.UUID        `json:"id"`
	ClientID      string            `json:"clientId"`
	Articles      []ArticleCommande `json:"articles"`
	Total         float64           `json:"total"`
	Statut        string            `json:"statut"`       // "en_attente", "payee", "expediee", "livree", "annulee"
	ModePaiement  string            `json:"modePaiement"` // "carte", "livraison"
	AdresseID     *gocql.UUID       `json:"adresseId,omitempty"`
	CodeRetrait   string            `json:"codeRetrait,omitempty"`
	PaymentIntent string            `json:"paymentIntent,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

type ArticleCommande struct {
	ProduitID  string  `json:"produitId"`
	VarianteID string  `json:"varianteId,omitempty"`
	Nom        string  `json:"nom"`
	Attributs  string  `json:"attributs,omitempty"`
	Prix       float64 `json:"prix"`
	Quantite   int     `json:"quantite"`
}

type Adresse struct {
	ID        gocql.UUID `json:"id"`
	UserID    string     `json:"userId"`
	Ligne     string     `json:"ligne"`
	Quartier  string     `json:"quartier,omitempty"`
	Ville     string     `json:"ville"`
	Telephone string     `json:"telephone"`
	CreatedAt time.Time  `json:"createdAt"`
}
