package models

type User struct {
	ID         string  `json:"id"`
	Email      string  `json:"email"`
	Nom        string  `json:"nom"`
	Telephone  string  `json:"telephone,omitempty"`
	Ville      string  `json:"ville,omitempty"`
	Role       string  `json:"role"` // "client", "vendeur", "admin"
	Provider   string  `json:"provider"`
	BoutiqueID *string `json:"boutiqueId,omitempty"`
	Password   string  `json:"-"`
}
