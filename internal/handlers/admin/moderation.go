package admin

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"fasomarket_back_end/internal/cache"
	"fasomarket_back_end/internal/database"
	"fasomarket_back_end/internal/models"
	"fasomarket_back_end/internal/services"
)

// GetProduitsEnAttente - GET /admin/produits/en-attente
func GetProduitsEnAttente(c *gin.Context) {
	session, err := database.GetProduitsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT produit_id, boutique_id, nom, description, prix, quantite_stock, seuil_alerte, categorie_id, image_urls, tags, statut, a_variantes, created_at, updated_at
	    FROM produits WHERE statut = 'en_attente' ALLOW FILTERING`).Iter()

	produits := []models.Produit{}
	var p models.Produit
	for iter.Scan(&p.ID, &p.BoutiqueID, &p.Nom, &p.Description, &p.Prix, &p.QuantiteStock,
		&p.SeuilAlerte, &p.CategorieID, &p.ImageURLs, &p.Tags, &p.Statut, &p.AVariantes,
		&p.CreatedAt, &p.UpdatedAt) {
		produits = append(produits, p)
		p = models.Produit{}
	}

	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produits"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"produits": produits,
		"total":    len(produits),
	})
}

// changerStatutProduit applique un statut de modération et tient les
// caches et l'index de recherche à jour.
func changerStatutProduit(c *gin.Context, statut string) {
	produitID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	session, err := database.GetProduitsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var p models.Produit
	if err := session.Query(`SELECT produit_id, boutique_id, nom, description, prix, quantite_stock, seuil_alerte, categorie_id, image_urls, tags, statut, a_variantes, created_at, updated_at
	    FROM produits WHERE produit_id = ?`, produitID).
		Scan(&p.ID, &p.BoutiqueID, &p.Nom, &p.Description, &p.Prix, &p.QuantiteStock,
			&p.SeuilAlerte, &p.CategorieID, &p.ImageURLs, &p.Tags, &p.Statut, &p.AVariantes,
			&p.CreatedAt, &p.UpdatedAt); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit non trouvé"})
		return
	}

	if err := session.Query(`UPDATE produits SET statut = ?, updated_at = ? WHERE produit_id = ?`,
		statut, time.Now(), produitID).Exec(); err != nil {
		log.Printf("❌ Erreur modération produit %s: %v", produitID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la modération"})
		return
	}

	database.Redis.Del(context.Background(), "produits:tous")

	p.Statut = statut
	if statut == "approuve" {
		go services.IndexProduit(p)
	} else {
		go services.DeleteProduitIndex(produitID.String())
	}

	log.Printf("✅ Produit %s passé au statut '%s'", produitID, statut)

	c.JSON(http.StatusOK, gin.H{
		"message": "Statut du produit mis à jour",
		"statut":  statut,
	})
}

// ApprouverProduit - POST /admin/produits/:id/approuver
func ApprouverProduit(c *gin.Context) {
	changerStatutProduit(c, "approuve")
}

// SuspendreProduit - POST /admin/produits/:id/suspendre
func SuspendreProduit(c *gin.Context) {
	changerStatutProduit(c, "suspendu")
}

// GetBoutiquesEnAttente - GET /admin/boutiques/en-attente
func GetBoutiquesEnAttente(c *gin.Context) {
	session, err := database.GetUtilisateursSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT boutique_id, vendeur_id, nom, description, ville, telephone, logo_url, statut, created_at, updated_at
	    FROM boutiques WHERE statut = 'en_attente' ALLOW FILTERING`).Iter()

	boutiques := []models.Boutique{}
	var b models.Boutique
	for iter.Scan(&b.ID, &b.VendeurID, &b.Nom, &b.Description, &b.Ville, &b.Telephone,
		&b.LogoURL, &b.Statut, &b.CreatedAt, &b.UpdatedAt) {
		boutiques = append(boutiques, b)
	}

	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture boutiques"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"boutiques": boutiques,
		"total":     len(boutiques),
	})
}

func changerStatutBoutique(c *gin.Context, statut string) {
	boutiqueID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID boutique invalide"})
		return
	}

	session, err := database.GetUtilisateursSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var existante gocql.UUID
	if err := session.Query(`SELECT boutique_id FROM boutiques WHERE boutique_id = ?`, boutiqueID).
		Scan(&existante); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Boutique non trouvée"})
		return
	}

	if err := session.Query(`UPDATE boutiques SET statut = ?, updated_at = ? WHERE boutique_id = ?`,
		statut, time.Now(), boutiqueID).Exec(); err != nil {
		log.Printf("❌ Erreur modération boutique %s: %v", boutiqueID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la modération"})
		return
	}

	log.Printf("✅ Boutique %s passée au statut '%s'", boutiqueID, statut)

	c.JSON(http.StatusOK, gin.H{
		"message": "Statut de la boutique mis à jour",
		"statut":  statut,
	})
}

// ApprouverBoutique - POST /admin/boutiques/:id/approuver
func ApprouverBoutique(c *gin.Context) {
	changerStatutBoutique(c, "approuvee")
}

// SuspendreBoutique - POST /admin/boutiques/:id/suspendre
func SuspendreBoutique(c *gin.Context) {
	changerStatutBoutique(c, "suspendue")
}

// BanUser - POST /admin/users/:id/ban
func BanUser(c *gin.Context) {
	targetUserID := c.Param("id")

	if err := cache.BanUser(targetUserID); err != nil {
		log.Printf("❌ Erreur ban user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur ban"})
		return
	}

	_ = cache.DeleteRefreshToken(targetUserID)

	log.Printf("✅ User banni: %s", targetUserID)

	c.JSON(http.StatusOK, gin.H{"message": "Utilisateur banni"})
}

// UnbanUser - POST /admin/users/:id/unban
func UnbanUser(c *gin.Context) {
	targetUserID := c.Param("id")

	if err := cache.UnbanUser(targetUserID); err != nil {
		log.Printf("❌ Erreur unban user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur unban"})
		return
	}

	log.Printf("✅ User débanni: %s", targetUserID)

	c.JSON(http.StatusOK, gin.H{"message": "Utilisateur débanni"})
}
