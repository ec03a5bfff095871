package models

// ArticlePanier est une ligne de panier stockée dans Redis. VarianteID
// est vide quand le produit est acheté sans variante.
type ArticlePanier struct {
	ProduitID  string  `json:"produitId"`
	VarianteID string  `json:"varianteId,omitempty"`
	Nom        string  `json:"nom"`
	Attributs  string  `json:"attributs,omitempty"` // ex: "Rouge / M"
	Prix       float64 `json:"prix"`
	Quantite   int     `json:"quantite"`
	ImageURL   string  `json:"imageUrl,omitempty"`
}
