package paiement

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/paymentintent"
	"github.com/stripe/stripe-go/v83/webhook"

	"fasomarket_back_end/internal/database"
)

// CreatePaymentIntent - POST /paiement/intent
// Crée un PaymentIntent Stripe pour une commande en attente de
// paiement par carte.
func CreatePaymentIntent(c *gin.Context) {
	userID := c.GetString("user_id")
	email := c.GetString("email")

	if userID == "" || email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	var req struct {
		CommandeID string `json:"commandeId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le champ 'commandeId' est obligatoire"})
		return
	}

	commandeID, err := gocql.ParseUUID(req.CommandeID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}

	session, err := database.GetCommandesSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var clientID, statut, modePaiement string
	var total float64
	if err := session.Query(`SELECT client_id, statut, mode_paiement, total FROM commandes WHERE commande_id = ?`, commandeID).
		Scan(&clientID, &statut, &modePaiement, &total); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	if clientID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Accès refusé"})
		return
	}
	if modePaiement != "carte" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cette commande est payable à la livraison"})
		return
	}
	if statut != "en_attente" {
		c.JSON(http.StatusConflict, gin.H{"error": "Commande déjà payée ou annulée"})
		return
	}

	// XOF est une devise sans décimales chez Stripe: le montant est le
	// total en francs CFA, sans multiplication par 100.
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(total)),
		Currency: stripe.String("xof"),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
		Metadata: map[string]string{
			"user_id":     userID,
			"email":       email,
			"commande_id": commandeID.String(),
		},
	}

	intent, err := paymentintent.New(params)
	if err != nil {
		log.Println("❌ Erreur Stripe:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := session.Query(`UPDATE commandes SET payment_intent = ?, updated_at = ? WHERE commande_id = ?`,
		intent.ID, time.Now(), commandeID).Exec(); err != nil {
		log.Printf("⚠️ Erreur enregistrement payment_intent: %v", err)
	}

	log.Printf("💳 PaymentIntent créé : %s (%.0f FCFA) pour %s", intent.ID, total, email)

	c.JSON(http.StatusOK, gin.H{
		"clientSecret": intent.ClientSecret,
		"paymentId":    intent.ID,
	})
}

// StripeWebhook - POST /paiement/webhook
func StripeWebhook(c *gin.Context) {
	const MaxBodyBytes = int64(65536)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)

	payload, err := c.GetRawData()
	if err != nil {
		log.Println("❌ Lecture payload échouée:", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Échec lecture body"})
		return
	}

	secret := os.Getenv("STRIPE_WEBHOOK_SECRET")
	var event stripe.Event

	if secret == "" {
		log.Println("⚠️ Pas de STRIPE_WEBHOOK_SECRET — mode test")
		if err := json.Unmarshal(payload, &event); err != nil {
			log.Println("❌ JSON invalide:", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "JSON invalide"})
			return
		}
	} else {
		event, err = webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), secret)
		if err != nil {
			log.Println("❌ Signature Stripe invalide:", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Signature invalide"})
			return
		}
	}

	log.Printf("📥 Événement Stripe reçu : %s", event.Type)
	handleStripeEvent(event)

	c.Status(http.StatusOK)
}

func handleStripeEvent(event stripe.Event) {
	if event.Type != "payment_intent.succeeded" {
		log.Printf("ℹ️ Événement ignoré : %s", event.Type)
		return
	}

	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		log.Println("❌ Erreur décodage PaymentIntent:", err)
		return
	}

	commandeIDStr := pi.Metadata["commande_id"]
	clientID := pi.Metadata["user_id"]
	if commandeIDStr == "" || clientID == "" {
		log.Println("⚠️ Métadonnées incomplètes")
		return
	}

	commandeID, err := gocql.ParseUUID(commandeIDStr)
	if err != nil {
		log.Printf("❌ commande_id invalide dans les métadonnées: %s", commandeIDStr)
		return
	}

	session, err := database.GetCommandesSession()
	if err != nil {
		log.Printf("❌ Erreur connexion Scylla: %v", err)
		return
	}

	// Idempotence: le webhook peut être rejoué par Stripe
	var statut string
	if err := session.Query(`SELECT statut FROM commandes WHERE commande_id = ?`, commandeID).
		Scan(&statut); err != nil {
		log.Printf("❌ Commande %s introuvable pour le paiement %s", commandeID, pi.ID)
		return
	}
	if statut == "payee" {
		log.Printf("🔁 Commande %s déjà payée, on ignore.", commandeID)
		return
	}

	now := time.Now()
	if err := session.Query(`UPDATE commandes SET statut = 'payee', payment_intent = ?, updated_at = ? WHERE commande_id = ?`,
		pi.ID, now, commandeID).Exec(); err != nil {
		log.Printf("❌ Erreur mise à jour commande %s: %v", commandeID, err)
		return
	}

	if err := session.Query(`UPDATE commandes_par_client SET statut = 'payee' WHERE client_id = ? AND commande_id = ?`,
		clientID, commandeID).Exec(); err != nil {
		log.Printf("⚠️ Erreur mise à jour commandes_par_client: %v", err)
	}

	log.Printf("✅ Commande %s marquée payée (PaymentIntent %s)", commandeID, pi.ID)
}
