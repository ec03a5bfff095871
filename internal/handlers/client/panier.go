package client

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"fasomarket_back_end/internal/database"
	"fasomarket_back_end/internal/models"
	"fasomarket_back_end/internal/stock"
)

const PanierTTL = 30 * 24 * time.Hour // 30 jours

func clePanier(userID string) string {
	return "cart:" + userID
}

// ligneInfo regroupe ce qu'il faut savoir du produit (et de sa variante
// éventuelle) pour valider une ligne de panier.
type ligneInfo struct {
	Nom       string
	Prix      float64
	Stock     int
	Attributs string
	ImageURL  string
}

func chargerLigneInfo(produitID string, varianteID string) (*ligneInfo, error) {
	session, err := database.GetProduitsSession()
	if err != nil {
		return nil, err
	}

	pid, err := gocql.ParseUUID(produitID)
	if err != nil {
		return nil, err
	}

	var (
		nom       string
		prix      float64
		stockProd int
		imageURLs []string
		statut    string
	)
	if err := session.Query(`SELECT nom, prix, quantite_stock, image_urls, statut FROM produits WHERE produit_id = ?`, pid).
		Scan(&nom, &prix, &stockProd, &imageURLs, &statut); err != nil {
		return nil, err
	}
	if statut != "approuve" {
		return nil, gocql.ErrNotFound
	}

	info := &ligneInfo{Nom: nom, Prix: prix, Stock: stockProd}
	if len(imageURLs) > 0 {
		info.ImageURL = imageURLs[0]
	}

	if varianteID != "" {
		vid, err := gocql.ParseUUID(varianteID)
		if err != nil {
			return nil, err
		}

		var v models.Variante
		if err := session.Query(`SELECT variante_id, couleur, taille, modele, ajustement_prix, stock, actif
		                         FROM variantes_produit WHERE produit_id = ? AND variante_id = ?`, pid, vid).
			Scan(&v.ID, &v.Couleur, &v.Taille, &v.Modele, &v.AjustementPrix, &v.Stock, &v.Actif); err != nil {
			return nil, err
		}
		if !v.Actif {
			return nil, gocql.ErrNotFound
		}

		// Le stock et le prix de la ligne sont ceux de la variante
		info.Stock = v.Stock
		info.Prix = prix + v.AjustementPrix

		attrs := []string{}
		for _, d := range models.Dimensions {
			if val := v.Attribut(d); val != "" {
				attrs = append(attrs, val)
			}
		}
		info.Attributs = strings.Join(attrs, " / ")
	}

	return info, nil
}

func lirePanier(ctx context.Context, userID string) ([]models.ArticlePanier, error) {
	data, err := database.Redis.Get(ctx, clePanier(userID)).Result()
	if err != nil || data == "" {
		return []models.ArticlePanier{}, nil
	}
	var panier []models.ArticlePanier
	if err := json.Unmarshal([]byte(data), &panier); err != nil {
		return nil, err
	}
	return panier, nil
}

func sauverPanier(ctx context.Context, userID string, panier []models.ArticlePanier) {
	pipe := database.Redis.Pipeline()
	if len(panier) == 0 {
		pipe.Del(ctx, clePanier(userID))
	} else {
		jsonData, _ := json.Marshal(panier)
		pipe.Set(ctx, clePanier(userID), jsonData, PanierTTL)
	}
	pipe.Publish(ctx, clePanier(userID), "updated")
	pipe.Exec(ctx)
}

func totalPanier(panier []models.ArticlePanier) float64 {
	total := 0.0
	for _, a := range panier {
		total += a.Prix * float64(a.Quantite)
	}
	return total
}

func repondrePanier(c *gin.Context, message string, panier []models.ArticlePanier) {
	resp := gin.H{
		"items": panier,
		"total": totalPanier(panier),
		"count": len(panier),
	}
	if message != "" {
		resp["message"] = message
	}
	c.JSON(http.StatusOK, resp)
}

// memeLigne compare produit + variante: deux variantes du même produit
// sont des lignes distinctes du panier.
func memeLigne(a models.ArticlePanier, produitID, varianteID string) bool {
	return a.ProduitID == produitID && a.VarianteID == varianteID
}

// GetPanier - GET /panier
func GetPanier(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	panier, err := lirePanier(context.Background(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur décodage panier"})
		return
	}

	repondrePanier(c, "", panier)
}

// AddToPanier - POST /panier/articles
func AddToPanier(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	var input struct {
		ProduitID  string `json:"produitId" binding:"required"`
		VarianteID string `json:"varianteId"`
		Quantite   int    `json:"quantite" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	info, err := chargerLigneInfo(input.ProduitID, input.VarianteID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	ctx := context.Background()
	panier, err := lirePanier(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}

	found := false
	for i := range panier {
		if memeLigne(panier[i], input.ProduitID, input.VarianteID) {
			nouvelleQuantite := panier[i].Quantite + input.Quantite
			if err := stock.ValiderAjout(nouvelleQuantite, info.Stock); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Stock insuffisant pour cette quantité"})
				return
			}
			panier[i].Quantite = nouvelleQuantite
			found = true
			break
		}
	}
	if !found {
		if err := stock.ValiderAjout(input.Quantite, info.Stock); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Stock insuffisant"})
			return
		}
		panier = append(panier, models.ArticlePanier{
			ProduitID:  input.ProduitID,
			VarianteID: input.VarianteID,
			Nom:        info.Nom,
			Attributs:  info.Attributs,
			Prix:       info.Prix,
			Quantite:   input.Quantite,
			ImageURL:   info.ImageURL,
		})
	}

	sauverPanier(ctx, userID, panier)
	repondrePanier(c, "Produit ajouté au panier", panier)
}

// IncrementArticle - PATCH /panier/articles/:produitId/increment?varianteId=...
// La quantité ne dépasse jamais le stock de la ligne.
func IncrementArticle(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	produitID := c.Param("produitId")
	varianteID := c.Query("varianteId")

	ctx := context.Background()
	panier, err := lirePanier(ctx, userID)
	if err != nil || len(panier) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Panier vide"})
		return
	}

	for i := range panier {
		if memeLigne(panier[i], produitID, varianteID) {
			info, err := chargerLigneInfo(produitID, varianteID)
			if err != nil {
				c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
				return
			}
			if !stock.PeutIncrementer(panier[i].Quantite, info.Stock) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Quantité maximale atteinte pour ce stock"})
				return
			}
			panier[i].Quantite++
			sauverPanier(ctx, userID, panier)
			repondrePanier(c, "Quantité mise à jour", panier)
			return
		}
	}

	c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable dans le panier"})
}

// DecrementArticle - PATCH /panier/articles/:produitId/decrement?varianteId=...
// La quantité ne descend jamais sous 1: pour retirer la ligne, DELETE.
func DecrementArticle(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	produitID := c.Param("produitId")
	varianteID := c.Query("varianteId")

	ctx := context.Background()
	panier, err := lirePanier(ctx, userID)
	if err != nil || len(panier) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Panier vide"})
		return
	}

	for i := range panier {
		if memeLigne(panier[i], produitID, varianteID) {
			if !stock.PeutDecrementer(panier[i].Quantite) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "La quantité minimale est de 1"})
				return
			}
			panier[i].Quantite--
			sauverPanier(ctx, userID, panier)
			repondrePanier(c, "Quantité mise à jour", panier)
			return
		}
	}

	c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable dans le panier"})
}

// RemoveFromPanier - DELETE /panier/articles/:produitId?varianteId=...
func RemoveFromPanier(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	produitID := c.Param("produitId")
	varianteID := c.Query("varianteId")

	ctx := context.Background()
	panier, err := lirePanier(ctx, userID)
	if err != nil || len(panier) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Panier vide"})
		return
	}

	nouveau := []models.ArticlePanier{}
	found := false
	for _, a := range panier {
		if memeLigne(a, produitID, varianteID) {
			found = true
			continue
		}
		nouveau = append(nouveau, a)
	}

	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit non trouvé dans le panier"})
		return
	}

	sauverPanier(ctx, userID, nouveau)
	repondrePanier(c, "Produit supprimé du panier", nouveau)
}

// ClearPanier - DELETE /panier
func ClearPanier(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	ctx := context.Background()
	pipe := database.Redis.Pipeline()
	pipe.Del(ctx, clePanier(userID))
	pipe.Publish(ctx, clePanier(userID), "cleared")
	pipe.Exec(ctx)

	c.JSON(http.StatusOK, gin.H{
		"message": "Panier vidé avec succès",
		"items":   []models.ArticlePanier{},
		"total":   0,
		"count":   0,
	})
}
