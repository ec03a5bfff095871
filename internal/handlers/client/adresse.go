package client

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"fasomarket_back_end/internal/database"
	"fasomarket_back_end/internal/models"
)

// GetAdresses - GET /adresses
func GetAdresses(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	session, err := database.GetUtilisateursSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT adresse_id, user_id, ligne, quartier, ville, telephone, created_at
	    FROM adresses WHERE user_id = ? ALLOW FILTERING`, userID).Iter()

	adresses := []models.Adresse{}
	var a models.Adresse
	for iter.Scan(&a.ID, &a.UserID, &a.Ligne, &a.Quartier, &a.Ville, &a.Telephone, &a.CreatedAt) {
		adresses = append(adresses, a)
	}

	if err := iter.Close(); err != nil {
		log.Printf("❌ Erreur lecture adresses: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture adresses"})
		return
	}

	c.JSON(http.StatusOK, adresses)
}

// CreateAdresse - POST /adresses
func CreateAdresse(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	var input struct {
		Ligne     string `json:"ligne" binding:"required"`
		Quartier  string `json:"quartier"`
		Ville     string `json:"ville" binding:"required"`
		Telephone string `json:"telephone" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ligne, ville et téléphone sont obligatoires"})
		return
	}

	session, err := database.GetUtilisateursSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	adresse := models.Adresse{
		ID:        gocql.TimeUUID(),
		UserID:    userID,
		Ligne:     input.Ligne,
		Quartier:  input.Quartier,
		Ville:     input.Ville,
		Telephone: input.Telephone,
		CreatedAt: time.Now(),
	}

	if err := session.Query(`INSERT INTO adresses (adresse_id, user_id, ligne, quartier, ville, telephone, created_at)
	    VALUES (?, ?, ?, ?, ?, ?, ?)`,
		adresse.ID, adresse.UserID, adresse.Ligne, adresse.Quartier, adresse.Ville,
		adresse.Telephone, adresse.CreatedAt).Exec(); err != nil {
		log.Printf("❌ Erreur création adresse: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création adresse"})
		return
	}

	c.JSON(http.StatusCreated, adresse)
}

// DeleteAdresse - DELETE /adresses/:id
func DeleteAdresse(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	adresseID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID adresse invalide"})
		return
	}

	session, err := database.GetUtilisateursSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var proprietaire string
	if err := session.Query(`SELECT user_id FROM adresses WHERE adresse_id = ?`, adresseID).
		Scan(&proprietaire); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Adresse non trouvée"})
		return
	}
	if proprietaire != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cette adresse ne vous appartient pas"})
		return
	}

	if err := session.Query(`DELETE FROM adresses WHERE adresse_id = ?`, adresseID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression adresse"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Adresse supprimée"})
}
