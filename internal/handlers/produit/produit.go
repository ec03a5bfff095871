package produit

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"fasomarket_back_end/internal/database"
	"fasomarket_back_end/internal/models"
	"fasomarket_back_end/internal/services"
)

const colonnesProduit = `produit_id, boutique_id, nom, description, prix, quantite_stock, seuil_alerte, categorie_id, image_urls, tags, statut, a_variantes, created_at, updated_at`

// CreateProduit - POST /produits (vendeur)
func CreateProduit(c *gin.Context) {
	var p models.Produit

	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if p.Nom == "" || p.Prix <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nom et prix sont obligatoires"})
		return
	}
	if p.QuantiteStock < 0 || p.SeuilAlerte < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Stock et seuil d'alerte doivent être positifs"})
		return
	}
	if p.CategorieID == (gocql.UUID{}) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le champ 'categorieId' est obligatoire"})
		return
	}

	boutiqueIDStr := c.GetString("boutique_id")
	if boutiqueIDStr == "" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Aucune boutique associée à ce compte"})
		return
	}
	boutiqueID, err := gocql.ParseUUID(boutiqueIDStr)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Boutique invalide"})
		return
	}

	session, err := database.GetProduitsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var nomCategorie string
	if err := session.Query(`SELECT nom FROM categories WHERE categorie_id = ?`, p.CategorieID).Scan(&nomCategorie); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Catégorie introuvable"})
		return
	}

	p.ID = gocql.TimeUUID()
	p.BoutiqueID = boutiqueID
	p.Statut = "en_attente" // soumis à la modération admin
	p.AVariantes = false
	now := time.Now()
	p.CreatedAt = &now
	p.UpdatedAt = &now

	query := `INSERT INTO produits (` + colonnesProduit + `)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	if err := session.Query(query, p.ID, p.BoutiqueID, p.Nom, p.Description, p.Prix,
		p.QuantiteStock, p.SeuilAlerte, p.CategorieID, p.ImageURLs, p.Tags, p.Statut,
		p.AVariantes, p.CreatedAt, p.UpdatedAt).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création produit: " + err.Error()})
		return
	}

	// Index par catégorie pour les listings
	if err := session.Query(`INSERT INTO produits_par_categorie (categorie_id, produit_id, nom, prix, quantite_stock) VALUES (?, ?, ?, ?, ?)`,
		p.CategorieID, p.ID, p.Nom, p.Prix, p.QuantiteStock).Exec(); err != nil {
		log.Printf("⚠️ Erreur indexation produits_par_categorie: %v", err)
	}

	// 🔄 Indexation Elasticsearch
	go services.IndexProduit(p)

	c.JSON(http.StatusCreated, p)
}

// GetAllProduits - GET /produits (catalogue public, cache Redis)
func GetAllProduits(c *gin.Context) {
	ctx := context.Background()
	cacheKey := "produits:tous"

	if val, err := database.Redis.Get(ctx, cacheKey).Result(); err == nil && val != "" {
		var cached []models.Produit
		if err := json.Unmarshal([]byte(val), &cached); err == nil {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	session, err := database.GetProduitsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT ` + colonnesProduit + ` FROM produits`).Iter()

	produits := []models.Produit{}
	var p models.Produit

	for iter.Scan(&p.ID, &p.BoutiqueID, &p.Nom, &p.Description, &p.Prix, &p.QuantiteStock,
		&p.SeuilAlerte, &p.CategorieID, &p.ImageURLs, &p.Tags, &p.Statut, &p.AVariantes,
		&p.CreatedAt, &p.UpdatedAt) {
		// Le catalogue public ne montre que les produits approuvés
		if p.Statut == "approuve" {
			produits = append(produits, p)
		}
		p = models.Produit{}
	}

	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produits: " + err.Error()})
		return
	}

	if data, err := json.Marshal(produits); err == nil {
		database.Redis.Set(ctx, cacheKey, data, time.Hour)
	}

	c.JSON(http.StatusOK, produits)
}

// GetProduit - GET /produits/:id
func GetProduit(c *gin.Context) {
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
	if err := session.Query(`SELECT `+colonnesProduit+` FROM produits WHERE produit_id = ?`, produitID).
		Scan(&p.ID, &p.BoutiqueID, &p.Nom, &p.Description, &p.Prix, &p.QuantiteStock,
			&p.SeuilAlerte, &p.CategorieID, &p.ImageURLs, &p.Tags, &p.Statut, &p.AVariantes,
			&p.CreatedAt, &p.UpdatedAt); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit non trouvé"})
		return
	}

	c.JSON(http.StatusOK, p)
}

// UpdateProduit - PUT /produits/:id (vendeur)
func UpdateProduit(c *gin.Context) {
	produitID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	var req struct {
		Nom         *string  `json:"nom"`
		Description *string  `json:"description"`
		Prix        *float64 `json:"prix"`
		Tags        []string `json:"tags"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	session, err := database.GetProduitsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var boutiqueID gocql.UUID
	if err := session.Query(`SELECT boutique_id FROM produits WHERE produit_id = ?`, produitID).
		Scan(&boutiqueID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit non trouvé"})
		return
	}
	if !boutiqueAutorisee(c, boutiqueID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Ce produit n'appartient pas à votre boutique"})
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
	if req.Prix != nil {
		if *req.Prix <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Le prix doit être positif"})
			return
		}
		updates = append(updates, "prix = ?")
		values = append(values, *req.Prix)
	}
	if req.Tags != nil {
		updates = append(updates, "tags = ?")
		values = append(values, req.Tags)
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Aucune mise à jour fournie"})
		return
	}

	updates = append(updates, "updated_at = ?")
	values = append(values, time.Now())
	values = append(values, produitID)

	query := `UPDATE produits SET ` + updates[0]
	for i := 1; i < len(updates); i++ {
		query += ", " + updates[i]
	}
	query += " WHERE produit_id = ?"

	if err := session.Query(query, values...).Exec(); err != nil {
		log.Printf("❌ Erreur mise à jour produit: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la mise à jour"})
		return
	}

	database.Redis.Del(context.Background(), "produits:tous")

	c.JSON(http.StatusOK, gin.H{"message": "Produit mis à jour avec succès"})
}

// DeleteProduit - DELETE /produits/:id (vendeur)
func DeleteProduit(c *gin.Context) {
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

	var boutiqueID gocql.UUID
	if err := session.Query(`SELECT boutique_id FROM produits WHERE produit_id = ?`, produitID).
		Scan(&boutiqueID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit non trouvé"})
		return
	}
	if !boutiqueAutorisee(c, boutiqueID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Ce produit n'appartient pas à votre boutique"})
		return
	}

	if err := session.Query(`DELETE FROM produits WHERE produit_id = ?`, produitID).Exec(); err != nil {
		log.Printf("❌ Erreur suppression produit: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la suppression"})
		return
	}

	database.Redis.Del(context.Background(), "produits:tous")
	cacheVariantes.Invalider(context.Background(), produitID.String())
	go services.DeleteProduitIndex(produitID.String())

	c.JSON(http.StatusOK, gin.H{"message": "Produit supprimé avec succès"})
}

// RechercherProduits - GET /produits/recherche?q=...
func RechercherProduits(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "paramètre 'q' manquant"})
		return
	}

	// 🔎 Recherche Elasticsearch, URLs signées MinIO pour les images
	results, err := services.RechercherProduits(query)
	if err != nil {
		log.Printf("❌ Erreur recherche Elastic: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Recherche temporairement indisponible"})
		return
	}

	for i := range results {
		if urls, ok := results[i]["imageUrls"].([]interface{}); ok {
			signed := []string{}
			for _, u := range urls {
				if str, ok := u.(string); ok && str != "" {
					signedURL, err := services.GenerateSignedURL(context.Background(), str, 24*time.Hour)
					if err == nil {
						signed = append(signed, signedURL)
					}
				}
			}
			results[i]["imageUrls"] = signed
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"resultats": results,
		"total":     len(results),
	})
}

// UploadImageProduit - POST /produits/:id/images (vendeur)
func UploadImageProduit(c *gin.Context) {
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

	var boutiqueID gocql.UUID
	var imageURLs []string
	if err := session.Query(`SELECT boutique_id, image_urls FROM produits WHERE produit_id = ?`, produitID).
		Scan(&boutiqueID, &imageURLs); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit non trouvé"})
		return
	}
	if !boutiqueAutorisee(c, boutiqueID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Ce produit n'appartient pas à votre boutique"})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fichier 'image' manquant"})
		return
	}

	objectPath, err := services.UploadImageProduit(produitID.String(), file)
	if err != nil {
		log.Printf("❌ Erreur upload MinIO: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de l'upload de l'image"})
		return
	}

	imageURLs = append(imageURLs, objectPath)
	if err := session.Query(`UPDATE produits SET image_urls = ?, updated_at = ? WHERE produit_id = ?`,
		imageURLs, time.Now(), produitID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur enregistrement image"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Image ajoutée avec succès",
		"chemin":  objectPath,
	})
}
