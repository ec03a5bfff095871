package vendeur

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"fasomarket_back_end/internal/database"
	"fasomarket_back_end/internal/models"
)

// CreateBoutique - POST /vendeur/boutique
// Un vendeur n'a qu'une seule boutique, soumise à validation admin.
func CreateBoutique(c *gin.Context) {
	userID := c.GetString("user_id")

	if c.GetString("boutique_id") != "" {
		c.JSON(http.StatusConflict, gin.H{"error": "Vous avez déjà une boutique"})
		return
	}

	var input struct {
		Nom         string `json:"nom" binding:"required"`
		Description string `json:"description"`
		Ville       string `json:"ville" binding:"required"`
		Telephone   string `json:"telephone" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nom, ville et téléphone sont obligatoires"})
		return
	}

	session, err := database.GetUtilisateursSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	boutique := models.Boutique{
		ID:          gocql.TimeUUID(),
		VendeurID:   userID,
		Nom:         input.Nom,
		Description: input.Description,
		Ville:       input.Ville,
		Telephone:   input.Telephone,
		Statut:      "en_attente",
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := session.Query(`INSERT INTO boutiques
	    (boutique_id, vendeur_id, nom, description, ville, telephone, logo_url, statut, created_at, updated_at)
	    VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		boutique.ID, boutique.VendeurID, boutique.Nom, boutique.Description, boutique.Ville,
		boutique.Telephone, boutique.LogoURL, boutique.Statut, boutique.CreatedAt,
		boutique.UpdatedAt).Exec(); err != nil {
		log.Printf("❌ Erreur création boutique: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création boutique"})
		return
	}

	// Rattacher la boutique au compte vendeur
	if err := session.Query(`UPDATE utilisateurs SET boutique_id = ? WHERE user_id = ?`,
		boutique.ID.String(), userID).Exec(); err != nil {
		log.Printf("⚠️ Erreur rattachement boutique au vendeur %s: %v", userID, err)
	}

	log.Printf("✅ Boutique créée: %s (%s) en attente de validation", boutique.Nom, boutique.ID)

	c.JSON(http.StatusCreated, boutique)
}

// GetMaBoutique - GET /vendeur/boutique
func GetMaBoutique(c *gin.Context) {
	boutiqueIDStr := c.GetString("boutique_id")
	if boutiqueIDStr == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "Aucune boutique associée à ce compte"})
		return
	}

	boutiqueID, err := gocql.ParseUUID(boutiqueIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Boutique invalide"})
		return
	}

	session, err := database.GetUtilisateursSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var b models.Boutique
	if err := session.Query(`SELECT boutique_id, vendeur_id, nom, description, ville, telephone, logo_url, statut, created_at, updated_at
	    FROM boutiques WHERE boutique_id = ?`, boutiqueID).
		Scan(&b.ID, &b.VendeurID, &b.Nom, &b.Description, &b.Ville, &b.Telephone,
			&b.LogoURL, &b.Statut, &b.CreatedAt, &b.UpdatedAt); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Boutique non trouvée"})
		return
	}

	c.JSON(http.StatusOK, b)
}

// UpdateBoutique - PUT /vendeur/boutique
func UpdateBoutique(c *gin.Context) {
	boutiqueIDStr := c.GetString("boutique_id")
	if boutiqueIDStr == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "Aucune boutique associée à ce compte"})
		return
	}
	boutiqueID, err := gocql.ParseUUID(boutiqueIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Boutique invalide"})
		return
	}

	var req struct {
		Nom         *string `json:"nom"`
		Description *string `json:"description"`
		Ville       *string `json:"ville"`
		Telephone   *string `json:"telephone"`
		LogoURL     *string `json:"logoUrl"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	session, err := database.GetUtilisateursSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	updates := []string{}
	values := []interface{}{}

	if req.Nom != nil {
		updates = append(updates, "nom = ?")
		values = append(values, *req.Nom)
	}
	if req.Description != nil {
		updates = append(updates, "description = ?")
		values = append(values, *req.Description)
	}
	if req.Ville != nil {
		updates = append(updates, "ville = ?")
		values = append(values, *req.Ville)
	}
	if req.Telephone != nil {
		updates = append(updates, "telephone = ?")
		values = append(values, *req.Telephone)
	}
	if req.LogoURL != nil {
		updates = append(updates, "logo_url = ?")
		values = append(values, *req.LogoURL)
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Aucune mise à jour fournie"})
		return
	}

	updates = append(updates, "updated_at = ?")
	values = append(values, time.Now())
	values = append(values, boutiqueID)

	query := `UPDATE boutiques SET ` + updates[0]
	for i := 1; i < len(updates); i++ {
		query += ", " + updates[i]
	}
	query += " WHERE boutique_id = ?"

	if err := session.Query(query, values...).Exec(); err != nil {
		log.Printf("❌ Erreur mise à jour boutique: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la mise à jour"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Boutique mise à jour avec succès"})
}

// GetBoutiquePublique - GET /boutiques/:id (fiche publique)
func GetBoutiquePublique(c *gin.Context) {
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

	var b models.Boutique
	if err := session.Query(`SELECT boutique_id, vendeur_id, nom, description, ville, telephone, logo_url, statut, created_at, updated_at
	    FROM boutiques WHERE boutique_id = ?`, boutiqueID).
		Scan(&b.ID, &b.VendeurID, &b.Nom, &b.Description, &b.Ville, &b.Telephone,
			&b.LogoURL, &b.Statut, &b.CreatedAt, &b.UpdatedAt); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Boutique non trouvée"})
		return
	}

	if b.Statut != "approuvee" {
		c.JSON(http.StatusNotFound, gin.H{"error": "Boutique non trouvée"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":          b.ID,
		"nom":         b.Nom,
		"description": b.Description,
		"ville":       b.Ville,
		"logoUrl":     b.LogoURL,
	})
}

// GetProduitsBoutique - GET /vendeur/produits (catalogue du vendeur, tous statuts)
func GetProduitsBoutique(c *gin.Context) {
	boutiqueIDStr := c.GetString("boutique_id")
	if boutiqueIDStr == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "Aucune boutique associée à ce compte"})
		return
	}
	boutiqueID, err := gocql.ParseUUID(boutiqueIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Boutique invalide"})
		return
	}

	session, err := database.GetProduitsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT produit_id, boutique_id, nom, description, prix, quantite_stock, seuil_alerte, categorie_id, image_urls, tags, statut, a_variantes, created_at, updated_at
	    FROM produits WHERE boutique_id = ? ALLOW FILTERING`, boutiqueID).Iter()

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
