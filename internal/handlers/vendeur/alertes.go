package vendeur

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"fasomarket_back_end/internal/database"
	"fasomarket_back_end/internal/handlers/produit"
	"fasomarket_back_end/internal/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Autoriser toutes les origines (à ajuster en production)
		return true
	},
}

// AlertesWebSocket pousse les alertes de stock au tableau de bord
// vendeur dès leur publication sur Redis.
func AlertesWebSocket(c *gin.Context) {
	if c.GetString("user_id") == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ Erreur upgrade WebSocket: %v", err)
		return
	}
	defer conn.Close()

	ctx := context.Background()

	pubsub := database.Redis.Subscribe(ctx, produit.CanalAlertesStock)
	defer pubsub.Close()

	ch := pubsub.Channel()

	conn.WriteJSON(gin.H{
		"type":    "connected",
		"message": "Flux d'alertes stock activé",
	})

	for {
		select {
		case msg := <-ch:
			var alerte models.AlerteStock
			if err := json.Unmarshal([]byte(msg.Payload), &alerte); err != nil {
				log.Printf("⚠️ Alerte stock illisible: %v", err)
				continue
			}

			if err := conn.WriteJSON(gin.H{
				"type":   "alerte_stock",
				"alerte": alerte,
			}); err != nil {
				log.Printf("❌ Erreur envoi WebSocket: %v", err)
				return
			}
		case <-time.After(30 * time.Second):
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
