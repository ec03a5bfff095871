package client

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"fasomarket_back_end/internal/database"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Autoriser toutes les origines (à ajuster en production)
		return true
	},
}

// PanierWebSocket pousse le panier à jour dès qu'une autre session du
// même utilisateur le modifie.
func PanierWebSocket(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
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

	pubsub := database.Redis.Subscribe(ctx, clePanier(userID))
	defer pubsub.Close()

	ch := pubsub.Channel()

	conn.WriteJSON(gin.H{
		"type":    "connected",
		"message": "Synchronisation panier activée",
	})

	for {
		select {
		case msg := <-ch:
			if msg.Payload != "updated" && msg.Payload != "cleared" {
				continue
			}

			panier, err := lirePanier(ctx, userID)
			if err != nil {
				panier = nil
			}

			response := gin.H{
				"type":  "cart_updated",
				"items": panier,
				"total": totalPanier(panier),
				"count": len(panier),
			}

			if err := conn.WriteJSON(response); err != nil {
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
