package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Dimension identifie un axe d'attribut d'une variante. Le jeu de
// dimensions est fermé : couleur, taille, modèle.
type Dimension string

const (
	DimCouleur Dimension = "couleur"
	DimTaille  Dimension = "taille"
	DimModele  Dimension = "modele"
)

// Dimensions liste les axes dans l'ordre d'affichage des sélecteurs.
var Dimensions = []Dimension{DimCouleur, DimTaille, DimModele}

// Variante est une combinaison d'attributs d'un produit avec son propre
// stock et son ajustement de prix. Un attribut vide ("") est absent :
// une colonne text nulle côté Scylla se scanne en chaîne vide.
type Variante struct {
	ID             gocql.UUID `json:"id" db:"variante_id"`
	ProduitID      gocql.UUID `json:"produitId" db:"produit_id"`
	Couleur        string     `json:"couleur,omitempty" db:"couleur"`
	Taille         string     `json:"taille,omitempty" db:"taille"`
	Modele         string     `json:"modele,omitempty" db:"modele"`
	AjustementPrix float64    `json:"ajustementPrix" db:"ajustement_prix"`
	Stock          int        `json:"stock" db:"stock"`
	Actif          bool       `json:"actif" db:"actif"`
	CreatedAt      time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time  `json:"updatedAt" db:"updated_at"`
}

// Attribut retourne la valeur portée sur une dimension, "" si absente.
func (v Variante) Attribut(d Dimension) string {
	switch d {
	case DimCouleur:
		return v.Couleur
	case DimTaille:
		return v.Taille
	case DimModele:
		return v.Modele
	}
	return ""
}

// MemesAttributs compare deux variantes dimension par dimension.
func (v Variante) MemesAttributs(autre Variante) bool {
	for _, d := range Dimensions {
		if v.Attribut(d) != autre.Attribut(d) {
			return false
		}
	}
	return true
}
