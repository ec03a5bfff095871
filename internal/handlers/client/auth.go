package client

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"fasomarket_back_end/internal/cache"
	"fasomarket_back_end/internal/database"
	"fasomarket_back_end/internal/models"
	"fasomarket_back_end/internal/utils"
)

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type"`
	User         gin.H  `json:"user"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// GenerateAuthTokens émet la paire access/refresh et stocke le refresh dans Redis
func GenerateAuthTokens(user models.User) (*LoginResponse, error) {
	boutiqueID := ""
	if user.BoutiqueID != nil {
		boutiqueID = *user.BoutiqueID
	}

	accessToken, tokenID, err := utils.GenerateAccessToken(user.ID, user.Email, user.Role, boutiqueID)
	if err != nil {
		return nil, err
	}

	refreshToken, err := utils.GenerateRefreshToken()
	if err != nil {
		return nil, err
	}

	if err := cache.StoreRefreshToken(user.ID, refreshToken, 30*24*time.Hour); err != nil {
		log.Printf("⚠️ Erreur stockage refresh token: %v", err)
	}

	log.Printf("✅ Tokens générés - Access: %s, Refresh stocké pour user: %s", tokenID, user.ID)

	return &LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    900,
		TokenType:    "Bearer",
		User: gin.H{
			"user_id":     user.ID,
			"email":       user.Email,
			"nom":         user.Nom,
			"role":        user.Role,
			"boutique_id": user.BoutiqueID,
		},
	}, nil
}

// Register - POST /auth/register
func Register(c *gin.Context) {
	var input struct {
		Nom       string `json:"nom" binding:"required"`
		Email     string `json:"email" binding:"required,email"`
		Password  string `json:"password" binding:"required,min=8"`
		Telephone string `json:"telephone"`
		Ville     string `json:"ville"`
		Vendeur   bool   `json:"vendeur"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données d'inscription invalides"})
		return
	}

	session, err := database.GetUtilisateursSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	// email déjà pris pour un compte local ?
	var existingID string
	if err := session.Query(`SELECT user_id FROM utilisateurs_par_email WHERE email = ? AND provider = 'local'`, email).
		Scan(&existingID); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Un compte avec cet email existe déjà"})
		return
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur interne"})
		return
	}

	role := "client"
	if input.Vendeur {
		role = "vendeur"
	}

	user := models.User{
		ID:        gocql.TimeUUID().String(),
		Email:     email,
		Nom:       input.Nom,
		Telephone: input.Telephone,
		Ville:     input.Ville,
		Role:      role,
		Provider:  "local",
		Password:  hashedPassword,
	}

	if err := session.Query(`INSERT INTO utilisateurs (user_id, email, nom, telephone, ville, role, provider, password_hash, created_at)
	                         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Email, user.Nom, user.Telephone, user.Ville, user.Role, user.Provider,
		user.Password, time.Now()).Exec(); err != nil {
		log.Printf("❌ Erreur création utilisateur: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur"})
		return
	}

	if err := session.Query(`INSERT INTO utilisateurs_par_email (email, provider, user_id) VALUES (?, 'local', ?)`,
		user.Email, user.ID).Exec(); err != nil {
		log.Printf("⚠️ Erreur indexation email: %v", err)
	}

	resp, err := GenerateAuthTokens(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération tokens"})
		return
	}

	log.Printf("✅ Nouvel utilisateur inscrit: %s (%s)", user.Email, user.Role)

	c.JSON(http.StatusCreated, resp)
}

// Login - POST /auth/login
func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email et mot de passe requis"})
		return
	}

	session, err := database.GetUtilisateursSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	var userID string
	if err := session.Query(`SELECT user_id FROM utilisateurs_par_email WHERE email = ? AND provider = 'local'`, email).
		Scan(&userID); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	var user models.User
	var boutiqueID *string
	if err := session.Query(`SELECT user_id, email, nom, telephone, ville, role, provider, password_hash, boutique_id
	                         FROM utilisateurs WHERE user_id = ?`, userID).
		Scan(&user.ID, &user.Email, &user.Nom, &user.Telephone, &user.Ville, &user.Role,
			&user.Provider, &user.Password, &boutiqueID); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}
	user.BoutiqueID = boutiqueID

	ok, err := utils.VerifyPassword(input.Password, user.Password)
	if err != nil || !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	if cache.IsUserBanned(user.ID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Compte banni"})
		return
	}

	resp, err := GenerateAuthTokens(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération tokens"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// RefreshAccessToken - POST /auth/refresh
func RefreshAccessToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Refresh token manquant"})
		return
	}

	authHeader := c.GetHeader("Authorization")
	if len(authHeader) < 8 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Access token manquant"})
		return
	}

	claims, err := utils.ParseAccessToken(authHeader[7:])
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token invalide"})
		return
	}

	if cache.IsUserBanned(claims.UserID) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Compte banni"})
		return
	}

	stored, err := cache.GetRefreshToken(claims.UserID)
	if err != nil {
		log.Printf("❌ Refresh token non trouvé pour user %s: %v", claims.UserID, err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token invalide ou expiré"})
		return
	}
	if stored != req.RefreshToken {
		log.Printf("❌ Refresh token ne correspond pas pour user %s", claims.UserID)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token invalide"})
		return
	}

	newAccessToken, tokenID, err := utils.GenerateAccessToken(claims.UserID, claims.Email, claims.Role, claims.BoutiqueID)
	if err != nil {
		log.Printf("❌ Erreur génération nouveau token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	log.Printf("✅ Access token renouvelé - TokenID: %s, User: %s", tokenID, claims.UserID)

	c.JSON(http.StatusOK, gin.H{
		"access_token": newAccessToken,
		"expires_in":   900,
		"token_type":   "Bearer",
	})
}

// Logout - POST /auth/logout
func Logout(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	tokenID := c.GetString("token_id")

	if err := cache.DeleteRefreshToken(userID); err != nil {
		log.Printf("⚠️ Erreur suppression refresh token: %v", err)
	}

	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 {
		if claims, err := utils.ParseAccessToken(authHeader[7:]); err == nil {
			duration := utils.GetTokenExpirationDuration(claims)
			if err := cache.BlacklistToken(tokenID, duration); err != nil {
				log.Printf("⚠️ Erreur blacklist token: %v", err)
			}
			log.Printf("✅ Token blacklisté: %s (expire dans %v)", tokenID, duration)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Déconnexion réussie"})
}

// GetProfile - GET /auth/me
func GetProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	session, err := database.GetUtilisateursSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var user models.User
	var boutiqueID *string
	if err := session.Query(`SELECT user_id, email, nom, telephone, ville, role, provider, boutique_id
	                         FROM utilisateurs WHERE user_id = ?`, userID).
		Scan(&user.ID, &user.Email, &user.Nom, &user.Telephone, &user.Ville, &user.Role,
			&user.Provider, &boutiqueID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur non trouvé"})
		return
	}
	user.BoutiqueID = boutiqueID

	c.JSON(http.StatusOK, user)
}
