package stock

import "fasomarket_back_end/internal/models"

// CombinaisonsAGenerer construit le produit cartésien
// couleurs × tailles × modeles et écarte les combinaisons qu'une
// variante existante porte déjà. Une liste d'axe vide est traitée comme
// un axe absent (une seule valeur vide), pas comme un produit nul.
func CombinaisonsAGenerer(couleurs, tailles, modeles []string, existantes []models.Variante) []models.Variante {
	if len(couleurs) == 0 {
		couleurs = []string{""}
	}
	if len(tailles) == 0 {
		tailles = []string{""}
	}
	if len(modeles) == 0 {
		modeles = []string{""}
	}

	var combinaisons []models.Variante
	for _, c := range couleurs {
		for _, t := range tailles {
			for _, m := range modeles {
				candidat := models.Variante{Couleur: c, Taille: t, Modele: m}
				if existeDeja(candidat, existantes) {
					continue
				}
				combinaisons = append(combinaisons, candidat)
			}
		}
	}
	return combinaisons
}

func existeDeja(candidat models.Variante, existantes []models.Variante) bool {
	for _, v := range existantes {
		if v.MemesAttributs(candidat) {
			return true
		}
	}
	return false
}
