package produit

import (
	"context"
	"encoding/json"
	"log"

	"fasomarket_back_end/internal/database"
	"fasomarket_back_end/internal/models"
)

// CanalAlertesStock est le canal Redis du flux temps réel des alertes
// de stock (consommé par le WebSocket du tableau de bord vendeur).
const CanalAlertesStock = "alertes_stock"

// PublierAlerteStock pousse une alerte sur le canal pub/sub. Échec
// non bloquant : l'alerte reste lisible via GET /vendeur/alertes-stock.
func PublierAlerteStock(alerte models.AlerteStock) {
	payload, err := json.Marshal(alerte)
	if err != nil {
		return
	}

	if err := database.Redis.Publish(context.Background(), CanalAlertesStock, payload).Err(); err != nil {
		log.Printf("⚠️ Erreur publication alerte stock: %v", err)
	}
}
