package client

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/markbates/goth/gothic"

	"fasomarket_back_end/internal/config"
	"fasomarket_back_end/internal/database"
	"fasomarket_back_end/internal/models"
)

type ctxKey string

const providerKey ctxKey = "provider"

// BeginAuth - GET /auth/:provider
func BeginAuth(c *gin.Context) {
	provider := c.Param("provider")
	if provider == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "aucun provider spécifié"})
		return
	}

	c.Request = c.Request.WithContext(
		context.WithValue(c.Request.Context(), providerKey, provider),
	)

	gothic.BeginAuthHandler(c.Writer, c.Request)
}

// CallbackAuth - GET /auth/:provider/callback
// Crée le compte client au premier passage puis émet les tokens
// locaux comme un login classique.
func CallbackAuth(c *gin.Context) {
	provider := c.Param("provider")
	if provider == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "aucun provider spécifié"})
		return
	}

	c.Request = c.Request.WithContext(
		context.WithValue(c.Request.Context(), providerKey, provider),
	)

	gothUser, err := gothic.CompleteUserAuth(c.Writer, c.Request)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if gothUser.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le provider n'a pas fourni d'email"})
		return
	}

	user, err := upsertUtilisateurOAuth(gothUser.Email, gothUser.Name, provider)
	if err != nil {
		log.Printf("❌ Erreur création utilisateur OAuth: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur"})
		return
	}

	resp, err := GenerateAuthTokens(*user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération tokens"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GoogleMobileAuth - POST /auth/google/mobile
// L'app mobile échange directement le code d'autorisation, sans
// session cookie goth.
func GoogleMobileAuth(c *gin.Context) {
	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le champ 'code' est obligatoire"})
		return
	}

	token, err := config.GoogleOAuthConfig.Exchange(c.Request.Context(), req.Code)
	if err != nil {
		log.Printf("❌ Erreur échange code Google: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Code d'autorisation invalide"})
		return
	}

	httpClient := config.GoogleOAuthConfig.Client(c.Request.Context(), token)
	resp, err := httpClient.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération profil Google"})
		return
	}
	defer resp.Body.Close()

	var profil struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&profil); err != nil || profil.Email == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Profil Google illisible"})
		return
	}

	user, err := upsertUtilisateurOAuth(profil.Email, profil.Name, "google")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur"})
		return
	}

	tokens, err := GenerateAuthTokens(*user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération tokens"})
		return
	}

	c.JSON(http.StatusOK, tokens)
}

// upsertUtilisateurOAuth retrouve ou crée le compte lié à un provider.
func upsertUtilisateurOAuth(email, nom, provider string) (*models.User, error) {
	session, err := database.GetUtilisateursSession()
	if err != nil {
		return nil, err
	}

	email = strings.ToLower(email)

	var userID string
	if err := session.Query(`SELECT user_id FROM utilisateurs_par_email WHERE email = ? AND provider = ?`,
		email, provider).Scan(&userID); err == nil {
		var user models.User
		var boutiqueID *string
		if err := session.Query(`SELECT user_id, email, nom, telephone, ville, role, provider, boutique_id
		                         FROM utilisateurs WHERE user_id = ?`, userID).
			Scan(&user.ID, &user.Email, &user.Nom, &user.Telephone, &user.Ville, &user.Role,
				&user.Provider, &boutiqueID); err != nil {
			return nil, err
		}
		user.BoutiqueID = boutiqueID
		return &user, nil
	}

	if nom == "" {
		nom = email
	}

	user := models.User{
		ID:       gocql.TimeUUID().String(),
		Email:    email,
		Nom:      nom,
		Role:     "client",
		Provider: provider,
	}

	if err := session.Query(`INSERT INTO utilisateurs (user_id, email, nom, role, provider, created_at)
	                         VALUES (?, ?, ?, ?, ?, ?)`,
		user.ID, user.Email, user.Nom, user.Role, user.Provider, time.Now()).Exec(); err != nil {
		return nil, err
	}

	if err := session.Query(`INSERT INTO utilisateurs_par_email (email, provider, user_id) VALUES (?, ?, ?)`,
		user.Email, provider, user.ID).Exec(); err != nil {
		log.Printf("⚠️ Erreur indexation email OAuth: %v", err)
	}

	log.Printf("✅ Compte créé via %s: %s", provider, user.Email)

	return &user, nil
}
