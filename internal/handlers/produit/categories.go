package produit

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"fasomarket_back_end/internal/database"
	"fasomarket_back_end/internal/models"
)

// GetCategories - GET /categories
func GetCategories(c *gin.Context) {
	session, err := database.GetProduitsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT categorie_id, nom, slug, created_at FROM categories`).Iter()

	categories := []models.Categorie{}
	var cat models.Categorie
	for iter.Scan(&cat.ID, &cat.Nom, &cat.Slug, &cat.CreatedAt) {
		categories = append(categories, cat)
	}

	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture catégories"})
		return
	}

	c.JSON(http.StatusOK, categories)
}

// CreateCategorie - POST /admin/categories
func CreateCategorie(c *gin.Context) {
	var req struct {
		Nom string `json:"nom" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le champ 'nom' est obligatoire"})
		return
	}

	session, err := database.GetProduitsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	cat := models.Categorie{
		ID:        gocql.TimeUUID(),
		Nom:       req.Nom,
		Slug:      slugifier(req.Nom),
		CreatedAt: time.Now(),
	}

	if err := session.Query(`INSERT INTO categories (categorie_id, nom, slug, created_at) VALUES (?, ?, ?, ?)`,
		cat.ID, cat.Nom, cat.Slug, cat.CreatedAt).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création catégorie"})
		return
	}

	c.JSON(http.StatusCreated, cat)
}

// GetProduitsParCategorie - GET /categories/:id/produits
func GetProduitsParCategorie(c *gin.Context) {
	categorieID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID catégorie invalide"})
		return
	}

	session, err := database.GetProduitsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT produit_id, nom, prix, quantite_stock FROM produits_par_categorie WHERE categorie_id = ?`,
		categorieID).Iter()

	produits := []gin.H{}
	var produitID gocql.UUID
	var nom string
	var prix float64
	var quantiteStock int

	for iter.Scan(&produitID, &nom, &prix, &quantiteStock) {
		produits = append(produits, gin.H{
			"id":            produitID,
			"nom":           nom,
			"prix":          prix,
			"quantiteStock": quantiteStock,
		})
	}

	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produits"})
		return
	}

	c.JSON(http.StatusOK, produits)
}

func slugifier(nom string) string {
	slug := strings.ToLower(strings.TrimSpace(nom))
	remplacements := strings.NewReplacer(
		" ", "-", "é", "e", "è", "e", "ê", "e", "à", "a", "ç", "c", "ô", "o", "'", "",
	)
	return remplacements.Replace(slug)
}
