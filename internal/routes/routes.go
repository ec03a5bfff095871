package routes

import (
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"fasomarket_back_end/internal/handlers/admin"
	"fasomarket_back_end/internal/handlers/client"
	"fasomarket_back_end/internal/handlers/paiement"
	"fasomarket_back_end/internal/handlers/produit"
	"fasomarket_back_end/internal/handlers/vendeur"
	"fasomarket_back_end/internal/middleware"
)

func RegisterRoutes(r *gin.Engine) {
	allowedOrigins := []string{"http://localhost:5173"}
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		allowedOrigins = strings.Split(origins, ",")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Stripe-Signature"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	api.Use(middleware.APIRateLimit())

	// ===== Public =====
	api.POST("/auth/register", client.Register)
	api.POST("/auth/login", middleware.LoginRateLimit(), client.Login)
	api.POST("/auth/refresh", client.RefreshAccessToken)
	api.GET("/auth/:provider", client.BeginAuth)
	api.GET("/auth/:provider/callback", client.CallbackAuth)
	api.POST("/auth/google/mobile", client.GoogleMobileAuth)

	api.GET("/produits", produit.GetAllProduits)
	api.GET("/produits/recherche", produit.RechercherProduits)
	api.GET("/produits/:id", produit.GetProduit)
	api.GET("/produits/:id/variantes", produit.GetVariantes)
	api.GET("/produits/:id/selection", produit.GetSelectionVariante)

	api.GET("/categories", produit.GetCategories)
	api.GET("/categories/:id/produits", produit.GetProduitsParCategorie)

	api.GET("/boutiques/:id", vendeur.GetBoutiquePublique)

	// Stripe appelle ce endpoint sans JWT, la signature fait foi
	api.POST("/paiement/webhook", paiement.StripeWebhook)

	// ===== Client authentifié =====
	auth := api.Group("/")
	auth.Use(middleware.AuthRequired())
	{
		auth.POST("/auth/logout", client.Logout)
		auth.GET("/auth/me", client.GetProfile)

		auth.GET("/panier", client.GetPanier)
		auth.GET("/panier/ws", client.PanierWebSocket)
		auth.POST("/panier/articles", client.AddToPanier)
		auth.PATCH("/panier/articles/:produitId/increment", client.IncrementArticle)
		auth.PATCH("/panier/articles/:produitId/decrement", client.DecrementArticle)
		auth.DELETE("/panier/articles/:produitId", client.RemoveFromPanier)
		auth.DELETE("/panier", client.ClearPanier)

		auth.GET("/adresses", client.GetAdresses)
		auth.POST("/adresses", client.CreateAdresse)
		auth.DELETE("/adresses/:id", client.DeleteAdresse)

		auth.POST("/commandes", client.CreerCommande)
		auth.GET("/commandes", client.GetCommandes)
		auth.GET("/commandes/:id", client.GetCommande)

		auth.POST("/paiement/intent", paiement.CreatePaymentIntent)
	}

	// ===== Vendeur =====
	vendeurGroup := api.Group("/")
	vendeurGroup.Use(middleware.AuthRequired(), middleware.RequireVendeur)
	{
		vendeurGroup.POST("/vendeur/boutique", vendeur.CreateBoutique)
		vendeurGroup.GET("/vendeur/boutique", vendeur.GetMaBoutique)
		vendeurGroup.PUT("/vendeur/boutique", vendeur.UpdateBoutique)
		vendeurGroup.GET("/vendeur/produits", vendeur.GetProduitsBoutique)
		vendeurGroup.GET("/vendeur/mouvements-stock", produit.GetMouvementsStock)
		vendeurGroup.GET("/vendeur/alertes-stock", produit.GetAlertesStock)
		vendeurGroup.GET("/vendeur/alertes/ws", vendeur.AlertesWebSocket)

		vendeurGroup.POST("/produits", produit.CreateProduit)
		vendeurGroup.PUT("/produits/:id", produit.UpdateProduit)
		vendeurGroup.DELETE("/produits/:id", produit.DeleteProduit)
		vendeurGroup.POST("/produits/:id/images", produit.UploadImageProduit)

		vendeurGroup.GET("/produits/:id/stock-info", produit.GetStockInfo)
		vendeurGroup.PUT("/produits/:id/stock", produit.UpdateStockProduit)

		vendeurGroup.POST("/produits/:id/variantes", produit.CreateVariante)
		vendeurGroup.POST("/produits/:id/variantes/generer", produit.GenererVariantes)
		vendeurGroup.PUT("/produits/:id/variantes/:varianteId", produit.UpdateVariante)
		vendeurGroup.DELETE("/produits/:id/variantes/:varianteId", produit.DeleteVariante)
	}

	// ===== Admin =====
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.AuthRequired(), middleware.RequireAdmin)
	{
		adminGroup.GET("/produits/en-attente", admin.GetProduitsEnAttente)
		adminGroup.POST("/produits/:id/approuver", admin.ApprouverProduit)
		adminGroup.POST("/produits/:id/suspendre", admin.SuspendreProduit)

		adminGroup.GET("/boutiques/en-attente", admin.GetBoutiquesEnAttente)
		adminGroup.POST("/boutiques/:id/approuver", admin.ApprouverBoutique)
		adminGroup.POST("/boutiques/:id/suspendre", admin.SuspendreBoutique)

		adminGroup.POST("/users/:id/ban", admin.BanUser)
		adminGroup.POST("/users/:id/unban", admin.UnbanUser)

		adminGroup.POST("/categories", produit.CreateCategorie)
	}
}
