package produit

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"fasomarket_back_end/internal/database"
	"fasomarket_back_end/internal/models"
	"fasomarket_back_end/internal/stock"
)

// GetStockInfo - GET /produits/:id/stock-info
// Bilan stock global / stock variantes. Toujours recalculé depuis une
// relecture, jamais depuis un état local. La surallocation est
// signalée avec son ampleur, jamais corrigée.
func GetStockInfo(c *gin.Context) {
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

	var stockGlobal, seuilAlerte int
	if err := session.Query(`SELECT quantite_stock, seuil_alerte FROM produits WHERE produit_id = ?`, produitID).
		Scan(&stockGlobal, &seuilAlerte); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit non trouvé"})
		return
	}

	variantes, err := ChargerVariantes(c.Request.Context(), produitID)
	if err != nil {
		// Dégradé : bilan sans variantes, signalé au caller
		log.Printf("⚠️ Variantes illisibles pour %s, bilan dégradé: %v", produitID, err)
		bilan := stock.CalculerBilan(stockGlobal, nil)
		c.JSON(http.StatusOK, gin.H{
			"stockGlobal":         bilan.StockGlobal,
			"stockVariantesTotal": bilan.StockVariantesTotal,
			"stockDisponible":     bilan.StockDisponible,
			"seuilAlerte":         seuilAlerte,
			"avertissement":       "Variantes temporairement indisponibles, bilan partiel",
		})
		return
	}

	bilan := stock.CalculerBilan(stockGlobal, variantes)

	// Bornes conseillées par variante pour l'éditeur de stock vendeur
	bornes := make(map[string]int, len(variantes))
	for _, v := range variantes {
		bornes[v.ID.String()] = stock.BorneConseillee(stockGlobal, variantes, v.ID)
	}

	reponse := gin.H{
		"stockGlobal":         bilan.StockGlobal,
		"stockVariantesTotal": bilan.StockVariantesTotal,
		"stockDisponible":     bilan.StockDisponible,
		"seuilAlerte":         seuilAlerte,
		"bornesConseillees":   bornes,
	}
	if bilan.EnSurallocation() {
		reponse["surallocation"] = bilan.Surallocation()
	}

	c.JSON(http.StatusOK, reponse)
}

// UpdateStockProduit - PUT /produits/:id/stock
// Met à jour le stock produit indépendamment des variantes.
func UpdateStockProduit(c *gin.Context) {
	produitID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	var req struct {
		QuantiteStock *int `json:"quantiteStock" binding:"required"`
		SeuilAlerte   *int `json:"seuilAlerte"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
		return
	}

	if *req.QuantiteStock < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le stock ne peut pas être négatif"})
		return
	}
	if req.SeuilAlerte != nil && *req.SeuilAlerte < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le seuil d'alerte ne peut pas être négatif"})
		return
	}

	session, err := database.GetProduitsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var stockAvant, seuilActuel int
	var nomProduit string
	var boutiqueID gocql.UUID
	if err := session.Query(`SELECT quantite_stock, seuil_alerte, nom, boutique_id FROM produits WHERE produit_id = ?`, produitID).
		Scan(&stockAvant, &seuilActuel, &nomProduit, &boutiqueID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit non trouvé"})
		return
	}
	if !boutiqueAutorisee(c, boutiqueID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Ce produit n'appartient pas à votre boutique"})
		return
	}

	seuil := seuilActuel
	if req.SeuilAlerte != nil {
		seuil = *req.SeuilAlerte
	}

	updateQuery := `UPDATE produits SET quantite_stock = ?, seuil_alerte = ?, updated_at = ? WHERE produit_id = ?`
	if err := session.Query(updateQuery, *req.QuantiteStock, seuil, time.Now(), produitID).Exec(); err != nil {
		log.Printf("❌ Erreur mise à jour stock: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la mise à jour du stock"})
		return
	}

	// Enregistrer le mouvement de stock
	mouvement := models.MouvementStock{
		ID:         gocql.TimeUUID(),
		ProduitID:  produitID,
		Type:       "ajustement",
		Quantite:   *req.QuantiteStock - stockAvant,
		StockAvant: stockAvant,
		StockApres: *req.QuantiteStock,
		Motif:      "Mise à jour stock produit",
		UserID:     c.GetString("user_id"),
		CreatedAt:  time.Now(),
	}

	insertMouvementQuery := `
		INSERT INTO mouvements_stock (
			id, produit_id, type, quantite, stock_avant, stock_apres, motif, user_id, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	if err := session.Query(insertMouvementQuery,
		mouvement.ID, mouvement.ProduitID, mouvement.Type, mouvement.Quantite,
		mouvement.StockAvant, mouvement.StockApres, mouvement.Motif, mouvement.UserID,
		mouvement.CreatedAt,
	).Exec(); err != nil {
		log.Printf("⚠️ Erreur enregistrement mouvement stock: %v", err)
	}

	VerifierAlerteStock(session, produitID, nomProduit, *req.QuantiteStock, seuil)

	database.Redis.Del(c.Request.Context(), "produits:tous")

	log.Printf("✅ Stock mis à jour pour %s: %d -> %d", nomProduit, stockAvant, *req.QuantiteStock)
	c.JSON(http.StatusOK, gin.H{
		"message":       "Stock mis à jour avec succès",
		"stockAvant":    stockAvant,
		"quantiteStock": *req.QuantiteStock,
		"seuilAlerte":   seuil,
	})
}

// GetMouvementsStock - GET /vendeur/mouvements-stock
func GetMouvementsStock(c *gin.Context) {
	produitIDStr := c.Query("produit_id")
	limitStr := c.DefaultQuery("limit", "50")

	limit, _ := strconv.Atoi(limitStr)
	if limit > 100 {
		limit = 100
	}

	var query string
	var args []interface{}

	if produitIDStr != "" {
		produitID, err := gocql.ParseUUID(produitIDStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
			return
		}
		query = `SELECT id, produit_id, variante_id, type, quantite, stock_avant, stock_apres, motif, user_id, created_at
				 FROM mouvements_stock WHERE produit_id = ? LIMIT ? ALLOW FILTERING`
		args = []interface{}{produitID, limit}
	} else {
		query = `SELECT id, produit_id, variante_id, type, quantite, stock_avant, stock_apres, motif, user_id, created_at
				 FROM mouvements_stock LIMIT ?`
		args = []interface{}{limit}
	}

	session, err := database.GetProduitsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(query, args...).Iter()

	var mouvements []models.MouvementStock
	var m models.MouvementStock

	for iter.Scan(&m.ID, &m.ProduitID, &m.VarianteID, &m.Type, &m.Quantite,
		&m.StockAvant, &m.StockApres, &m.Motif, &m.UserID, &m.CreatedAt) {
		mouvements = append(mouvements, m)
		m = models.MouvementStock{}
	}

	if err := iter.Close(); err != nil {
		log.Printf("❌ Erreur récupération mouvements: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"mouvements": mouvements,
		"total":      len(mouvements),
	})
}

// GetAlertesStock - GET /vendeur/alertes-stock
func GetAlertesStock(c *gin.Context) {
	session, err := database.GetProduitsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	query := `SELECT id, produit_id, nom_produit, stock_actuel, seuil_alerte, type_alerte,
			  resolue, created_at FROM alertes_stock WHERE resolue = false ALLOW FILTERING`

	iter := session.Query(query).Iter()

	var alertes []models.AlerteStock
	var a models.AlerteStock

	for iter.Scan(&a.ID, &a.ProduitID, &a.NomProduit, &a.StockActuel,
		&a.SeuilAlerte, &a.TypeAlerte, &a.Resolue, &a.CreatedAt) {
		alertes = append(alertes, a)
	}

	if err := iter.Close(); err != nil {
		log.Printf("❌ Erreur récupération alertes: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"alertes": alertes,
		"total":   len(alertes),
	})
}

// VerifierAlerteStock crée une alerte quand le stock passe sous le
// seuil, et la publie sur Redis pour le flux temps réel vendeur.
func VerifierAlerteStock(session *gocql.Session, produitID gocql.UUID, nomProduit string, stockActuel, seuil int) {
	if stockActuel > seuil {
		return
	}

	typeAlerte := "stock_faible"
	if stockActuel == 0 {
		typeAlerte = "rupture"
	}

	alerte := models.AlerteStock{
		ID:          gocql.TimeUUID(),
		ProduitID:   produitID,
		NomProduit:  nomProduit,
		StockActuel: stockActuel,
		SeuilAlerte: seuil,
		TypeAlerte:  typeAlerte,
		Resolue:     false,
		CreatedAt:   time.Now(),
	}

	insertQuery := `
		INSERT INTO alertes_stock (
			id, produit_id, nom_produit, stock_actuel, seuil_alerte, type_alerte, resolue, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	if err := session.Query(insertQuery,
		alerte.ID, alerte.ProduitID, alerte.NomProduit, alerte.StockActuel,
		alerte.SeuilAlerte, alerte.TypeAlerte, alerte.Resolue, alerte.CreatedAt,
	).Exec(); err != nil {
		log.Printf("⚠️ Erreur enregistrement alerte stock: %v", err)
		return
	}

	PublierAlerteStock(alerte)
}
