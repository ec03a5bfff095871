// Package stock porte le modèle de cohérence variantes/stock de
// FasoMarket : résolution de sélection d'attributs, bilan de stock
// (réconciliation stock global / stock variantes) et garde-fou de
// quantité panier. Fonctions pures, sans I/O : les handlers et le
// checkout les appellent sur des listes déjà chargées.
package stock

import "fasomarket_back_end/internal/models"

// Selection est le choix partiel d'attributs courant sur une fiche
// produit. Une valeur vide signifie "dimension pas encore choisie".
type Selection struct {
	Couleur string `json:"couleur,omitempty"`
	Taille  string `json:"taille,omitempty"`
	Modele  string `json:"modele,omitempty"`
}

// Valeur retourne le choix porté sur une dimension, "" si non choisie.
func (s Selection) Valeur(d models.Dimension) string {
	switch d {
	case models.DimCouleur:
		return s.Couleur
	case models.DimTaille:
		return s.Taille
	case models.DimModele:
		return s.Modele
	}
	return ""
}

// OptionsDimension projette les variantes sur une dimension : valeurs
// distinctes non vides, dans l'ordre de première apparition du
// catalogue. L'ordre n'a pas de sens métier mais il est déterministe.
func OptionsDimension(variantes []models.Variante, d models.Dimension) []string {
	var options []string
	vues := make(map[string]bool)
	for _, v := range variantes {
		val := v.Attribut(d)
		if val == "" || vues[val] {
			continue
		}
		vues[val] = true
		options = append(options, val)
	}
	return options
}

// OptionSelectionnable dit si choisir `valeur` sur la dimension `d`
// mène encore à au moins une variante en stock, compte tenu des choix
// déjà faits sur les autres dimensions. Réévaluée à chaque changement
// de sélection, jamais mémoïsée d'une sélection à l'autre.
func OptionSelectionnable(variantes []models.Variante, sel Selection, d models.Dimension, valeur string) bool {
	for _, v := range variantes {
		if v.Stock <= 0 {
			continue
		}
		if v.Attribut(d) != valeur {
			continue
		}
		if correspondSauf(v, sel, d) {
			return true
		}
	}
	return false
}

// correspondSauf vérifie que la variante respecte la sélection sur
// toutes les dimensions déjà choisies, sauf celle en cours d'évaluation.
func correspondSauf(v models.Variante, sel Selection, sauf models.Dimension) bool {
	for _, d := range models.Dimensions {
		if d == sauf {
			continue
		}
		if choix := sel.Valeur(d); choix != "" && v.Attribut(d) != choix {
			return false
		}
	}
	return true
}

// ResoudreSelection retourne la variante correspondant à la sélection
// sur chaque dimension qu'elle précise, nil si aucune ne correspond.
// En cas de doublon d'attributs (l'unicité n'est pas imposée côté
// base), la première dans l'ordre du catalogue gagne.
func ResoudreSelection(variantes []models.Variante, sel Selection) *models.Variante {
	for i := range variantes {
		if correspond(variantes[i], sel) {
			return &variantes[i]
		}
	}
	return nil
}

func correspond(v models.Variante, sel Selection) bool {
	for _, d := range models.Dimensions {
		if choix := sel.Valeur(d); choix != "" && v.Attribut(d) != choix {
			return false
		}
	}
	return true
}

// SelectionParDefaut choisit la première variante en stock dans l'ordre
// du catalogue. Nil quand tout est en rupture : la fiche affiche alors
// la première variante à titre indicatif, sans la présélectionner.
func SelectionParDefaut(variantes []models.Variante) *models.Variante {
	for i := range variantes {
		if variantes[i].Stock > 0 {
			return &variantes[i]
		}
	}
	return nil
}

// Option est une valeur proposée dans un sélecteur, avec son état.
type Option struct {
	Valeur         string `json:"valeur"`
	Selectionnable bool   `json:"selectionnable"`
}

// Resultat regroupe ce qu'une fiche produit affiche pour une sélection
// donnée : les options par dimension et la variante résolue.
type Resultat struct {
	Options  map[models.Dimension][]Option `json:"options"`
	Variante *models.Variante              `json:"variante,omitempty"`
}

// Resoudre évalue la sélection complète d'un coup : options de chaque
// dimension avec leur sélectionnabilité, et variante résolue s'il y en
// a une.
func Resoudre(variantes []models.Variante, sel Selection) Resultat {
	res := Resultat{Options: make(map[models.Dimension][]Option)}
	for _, d := range models.Dimensions {
		valeurs := OptionsDimension(variantes, d)
		if len(valeurs) == 0 {
			continue
		}
		options := make([]Option, 0, len(valeurs))
		for _, val := range valeurs {
			options = append(options, Option{
				Valeur:         val,
				Selectionnable: OptionSelectionnable(variantes, sel, d, val),
			})
		}
		res.Options[d] = options
	}
	res.Variante = ResoudreSelection(variantes, sel)
	return res
}

// StockTotal somme le stock de toutes les variantes.
func StockTotal(variantes []models.Variante) int {
	total := 0
	for _, v := range variantes {
		total += v.Stock
	}
	return total
}

// PrixMin retourne le plus petit ajustement de prix, 0 sur liste vide.
func PrixMin(variantes []models.Variante) float64 {
	if len(variantes) == 0 {
		return 0
	}
	min := variantes[0].AjustementPrix
	for _, v := range variantes[1:] {
		if v.AjustementPrix < min {
			min = v.AjustementPrix
		}
	}
	return min
}

// PrixMax retourne le plus grand ajustement de prix, 0 sur liste vide.
func PrixMax(variantes []models.Variante) float64 {
	if len(variantes) == 0 {
		return 0
	}
	max := variantes[0].AjustementPrix
	for _, v := range variantes[1:] {
		if v.AjustementPrix > max {
			max = v.AjustementPrix
		}
	}
	return max
}
