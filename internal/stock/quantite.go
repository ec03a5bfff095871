package stock

import "fmt"

// Garde-fou de quantité côté panier. Protection consultative : la
// vérification qui fait foi est la relecture du stock au checkout. Le
// but est d'éviter des requêtes manifestement vouées à l'échec.

// PeutIncrementer dit si le panier peut passer de qte à qte+1 sans
// dépasser le stock connu.
func PeutIncrementer(qte, stockDisponible int) bool {
	return qte+1 <= stockDisponible
}

// PeutDecrementer dit si la ligne peut descendre d'une unité sans
// passer sous 1. Descendre à zéro se fait par suppression de la ligne.
func PeutDecrementer(qte int) bool {
	return qte-1 >= 1
}

// ValiderAjout rejette un ajout au panier avant tout appel réseau
// quand la quantité demandée est invalide ou dépasse le stock connu.
func ValiderAjout(qteDemandee, stockDisponible int) error {
	if qteDemandee <= 0 {
		return fmt.Errorf("quantité invalide: %d", qteDemandee)
	}
	if stockDisponible == 0 {
		return fmt.Errorf("produit en rupture de stock")
	}
	if qteDemandee > stockDisponible {
		return fmt.Errorf("quantité demandée (%d) supérieure au stock disponible (%d)", qteDemandee, stockDisponible)
	}
	return nil
}
