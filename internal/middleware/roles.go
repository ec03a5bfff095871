package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireAdmin vérifie que l'utilisateur a le rôle "admin"
func RequireAdmin(c *gin.Context) {
	role, exists := c.Get("role")
	if !exists || role != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Accès réservé aux administrateurs"})
		c.Abort()
		return
	}
	c.Next()
}

// RequireVendeur vérifie que l'utilisateur a le rôle "vendeur" (les
// admins passent aussi, pour la modération des fiches).
func RequireVendeur(c *gin.Context) {
	role, exists := c.Get("role")
	if !exists || (role != "vendeur" && role != "admin") {
		c.JSON(http.StatusForbidden, gin.H{"error": "Accès réservé aux vendeurs"})
		c.Abort()
		return
	}
	c.Next()
}
