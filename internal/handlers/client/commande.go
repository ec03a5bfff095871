package client

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"log"
	"math/big"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"fasomarket_back_end/internal/cache"
	"fasomarket_back_end/internal/database"
	"fasomarket_back_end/internal/handlers/produit"
	"fasomarket_back_end/internal/models"
	"fasomarket_back_end/internal/utils"
)

var cacheVariantes = cache.NewCacheVariantes()

// genererCodeRetrait produit un code à 6 chiffres présenté au retrait
// en point relais.
func genererCodeRetrait() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return fmt.Sprintf("%06d", time.Now().UnixNano()%1000000)
	}
	return fmt.Sprintf("%06d", n.Int64())
}

// CreerCommande - POST /commandes
// Transforme le panier Redis en commande après re-validation du stock
// de chaque ligne, puis décrémente les stocks.
func CreerCommande(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	var req struct {
		ModePaiement string      `json:"modePaiement" binding:"required"`
		AdresseID    *gocql.UUID `json:"adresseId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le champ 'modePaiement' est obligatoire"})
		return
	}
	if req.ModePaiement != "carte" && req.ModePaiement != "livraison" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Mode de paiement invalide ('carte' ou 'livraison')"})
		return
	}

	ctx := context.Background()

	panier, err := lirePanier(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}
	if len(panier) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le panier est vide"})
		return
	}

	// Re-validation du stock de chaque ligne au moment du checkout:
	// le panier peut être périmé par rapport au stock réel.
	infos := make([]*ligneInfo, len(panier))
	for i, article := range panier {
		info, err := chargerLigneInfo(article.ProduitID, article.VarianteID)
		if err != nil {
			c.JSON(http.StatusConflict, gin.H{
				"error":   "Un article du panier n'est plus disponible",
				"produit": article.Nom,
			})
			return
		}
		if article.Quantite > info.Stock {
			c.JSON(http.StatusConflict, gin.H{
				"error":          "Stock insuffisant pour un article du panier",
				"produit":        article.Nom,
				"stockRestant":   info.Stock,
				"quantiteVoulue": article.Quantite,
			})
			return
		}
		infos[i] = info
	}

	commande := models.Commande{
		ID:           gocql.TimeUUID(),
		ClientID:     userID,
		Statut:       "en_attente",
		ModePaiement: req.ModePaiement,
		AdresseID:    req.AdresseID,
		CodeRetrait:  genererCodeRetrait(),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	total := 0.0
	for i, article := range panier {
		commande.Articles = append(commande.Articles, models.ArticleCommande{
			ProduitID:  article.ProduitID,
			VarianteID: article.VarianteID,
			Nom:        article.Nom,
			Attributs:  article.Attributs,
			Prix:       infos[i].Prix,
			Quantite:   article.Quantite,
		})
		total += infos[i].Prix * float64(article.Quantite)
	}
	commande.Total = total

	sessionCommandes, err := database.GetCommandesSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	articlesJSON, _ := json.Marshal(commande.Articles)

	if err := sessionCommandes.Query(`INSERT INTO commandes
	    (commande_id, client_id, articles, total, statut, mode_paiement, adresse_id, code_retrait, created_at, updated_at)
	    VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		commande.ID, commande.ClientID, string(articlesJSON), commande.Total, commande.Statut,
		commande.ModePaiement, commande.AdresseID, commande.CodeRetrait,
		commande.CreatedAt, commande.UpdatedAt).Exec(); err != nil {
		log.Printf("❌ Erreur création commande: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création commande"})
		return
	}

	if err := sessionCommandes.Query(`INSERT INTO commandes_par_client (client_id, commande_id, total, statut, created_at)
	    VALUES (?, ?, ?, ?, ?)`,
		commande.ClientID, commande.ID, commande.Total, commande.Statut, commande.CreatedAt).Exec(); err != nil {
		log.Printf("⚠️ Erreur indexation commandes_par_client: %v", err)
	}

	// Décrément des stocks ligne par ligne, avec traçabilité
	for i, article := range panier {
		decrementerStock(c, article, infos[i].Stock)
	}

	// Vider le panier une fois la commande enregistrée
	pipe := database.Redis.Pipeline()
	pipe.Del(ctx, clePanier(userID))
	pipe.Publish(ctx, clePanier(userID), "cleared")
	pipe.Exec(ctx)

	database.Redis.Del(ctx, "produits:tous")

	// Confirmation par email avec QR de retrait et reçu PDF
	go envoyerConfirmationCommande(c.GetString("email"), commande)

	log.Printf("✅ Commande créée: %s (total: %.0f FCFA, %d articles)", commande.ID, commande.Total, len(commande.Articles))

	c.JSON(http.StatusCreated, commande)
}

// decrementerStock retire la quantité commandée du stock de la ligne
// (variante ou produit) et enregistre le mouvement.
func decrementerStock(c *gin.Context, article models.ArticlePanier, stockAvant int) {
	session, err := database.GetProduitsSession()
	if err != nil {
		log.Printf("❌ Erreur connexion Scylla pour décrément stock: %v", err)
		return
	}

	pid, err := gocql.ParseUUID(article.ProduitID)
	if err != nil {
		return
	}

	stockApres := stockAvant - article.Quantite

	mouvement := models.MouvementStock{
		ID:         gocql.TimeUUID(),
		ProduitID:  pid,
		Type:       "vente",
		Quantite:   -article.Quantite,
		StockAvant: stockAvant,
		StockApres: stockApres,
		Motif:      "Commande client",
		UserID:     c.GetString("user_id"),
		CreatedAt:  time.Now(),
	}

	if article.VarianteID != "" {
		vid, err := gocql.ParseUUID(article.VarianteID)
		if err != nil {
			return
		}
		if err := session.Query(`UPDATE variantes_produit SET stock = ?, updated_at = ? WHERE produit_id = ? AND variante_id = ?`,
			stockApres, time.Now(), pid, vid).Exec(); err != nil {
			log.Printf("❌ Erreur décrément stock variante %s: %v", vid, err)
			return
		}
		mouvement.VarianteID = &vid
		cacheVariantes.Invalider(context.Background(), article.ProduitID)
	} else {
		if err := session.Query(`UPDATE produits SET quantite_stock = ?, updated_at = ? WHERE produit_id = ?`,
			stockApres, time.Now(), pid).Exec(); err != nil {
			log.Printf("❌ Erreur décrément stock produit %s: %v", pid, err)
			return
		}
	}

	if err := session.Query(`INSERT INTO mouvements_stock
	    (id, produit_id, variante_id, type, quantite, stock_avant, stock_apres, motif, user_id, created_at)
	    VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		mouvement.ID, mouvement.ProduitID, mouvement.VarianteID, mouvement.Type,
		mouvement.Quantite, mouvement.StockAvant, mouvement.StockApres, mouvement.Motif,
		mouvement.UserID, mouvement.CreatedAt).Exec(); err != nil {
		log.Printf("⚠️ Erreur enregistrement mouvement vente: %v", err)
	}

	// Alerte de stock faible sur le produit porteur
	var nom string
	var seuil int
	var quantiteStock int
	if err := session.Query(`SELECT nom, seuil_alerte, quantite_stock FROM produits WHERE produit_id = ?`, pid).
		Scan(&nom, &seuil, &quantiteStock); err == nil {
		stockCourant := quantiteStock
		if article.VarianteID != "" {
			stockCourant = stockApres
		}
		produit.VerifierAlerteStock(session, pid, nom, stockCourant, seuil)
	}
}

func envoyerConfirmationCommande(email string, commande models.Commande) {
	if email == "" {
		return
	}

	qrBase64, err := utils.GenerateCodeRetraitQR(commande.ID.String(), commande.CodeRetrait)
	if err != nil {
		log.Printf("⚠️ Erreur génération QR retrait: %v", err)
		qrBase64 = ""
	}

	var pdfRecu []byte
	if base := utils.GetFrontendRecuBaseURL(); base != "" {
		pdfRecu, err = utils.RenderRecuPDF(base, commande.ID.String(), qrBase64)
		if err != nil {
			log.Printf("⚠️ Erreur génération reçu PDF: %v", err)
			pdfRecu = nil
		}
	}

	html := utils.GenerateOrderConfirmationHTML(commande)
	if err := utils.SendConfirmationEmail(email, "Confirmation de votre commande FasoMarket", html, pdfRecu); err != nil {
		log.Printf("⚠️ Erreur envoi email confirmation: %v", err)
		return
	}

	log.Printf("📧 Email de confirmation envoyé à %s pour la commande %s", email, commande.ID)
}

// GetCommandes - GET /commandes (historique du client)
func GetCommandes(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	session, err := database.GetCommandesSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT commande_id, total, statut, created_at FROM commandes_par_client WHERE client_id = ?`,
		userID).Iter()

	commandes := []gin.H{}
	var commandeID gocql.UUID
	var total float64
	var statut string
	var createdAt time.Time

	for iter.Scan(&commandeID, &total, &statut, &createdAt) {
		commandes = append(commandes, gin.H{
			"id":        commandeID,
			"total":     total,
			"statut":    statut,
			"createdAt": createdAt,
		})
	}

	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture commandes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"commandes": commandes,
		"total":     len(commandes),
	})
}

// GetCommande - GET /commandes/:id
func GetCommande(c *gin.Context) {
	userID := c.GetString("user_id")
	role := c.GetString("role")

	commandeID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}

	session, err := database.GetCommandesSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var commande models.Commande
	var articlesJSON string
	if err := session.Query(`SELECT commande_id, client_id, articles, total, statut, mode_paiement, adresse_id, code_retrait, created_at, updated_at
	    FROM commandes WHERE commande_id = ?`, commandeID).
		Scan(&commande.ID, &commande.ClientID, &articlesJSON, &commande.Total, &commande.Statut,
			&commande.ModePaiement, &commande.AdresseID, &commande.CodeRetrait,
			&commande.CreatedAt, &commande.UpdatedAt); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande non trouvée"})
		return
	}

	if commande.ClientID != userID && role != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Accès refusé"})
		return
	}

	if articlesJSON != "" {
		if err := json.Unmarshal([]byte(articlesJSON), &commande.Articles); err != nil {
			log.Printf("⚠️ Erreur décodage articles commande %s: %v", commande.ID, err)
		}
	}

	c.JSON(http.StatusOK, commande)
}
