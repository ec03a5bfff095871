package produit

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"fasomarket_back_end/internal/cache"
	"fasomarket_back_end/internal/database"
	"fasomarket_back_end/internal/models"
	"fasomarket_back_end/internal/stock"
)

// cacheVariantes est le cache partagé des listes de variantes, peuplé
// sur lecture réussie et invalidé par chaque mutation vendeur.
var cacheVariantes = cache.NewCacheVariantes()

const colonnesVariante = `variante_id, produit_id, couleur, taille, modele, ajustement_prix, stock, actif, created_at, updated_at`

// ChargerVariantes lit les variantes actives d'un produit : cache
// d'abord, Scylla en repli. En cas d'échec de lecture, liste vide +
// erreur au caller — pas de retry, pas de mise en cache du dégradé.
func ChargerVariantes(ctx context.Context, produitID gocql.UUID) ([]models.Variante, error) {
	if variantes, err := cacheVariantes.Recuperer(ctx, produitID.String()); err == nil {
		return variantes, nil
	}

	session, err := database.GetProduitsSession()
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + colonnesVariante + `
			  FROM variantes_produit WHERE produit_id = ? AND actif = true ALLOW FILTERING`

	iter := session.Query(query, produitID).Iter()

	variantes := []models.Variante{}
	var v models.Variante

	for iter.Scan(&v.ID, &v.ProduitID, &v.Couleur, &v.Taille, &v.Modele,
		&v.AjustementPrix, &v.Stock, &v.Actif, &v.CreatedAt, &v.UpdatedAt) {
		variantes = append(variantes, v)
	}

	if err := iter.Close(); err != nil {
		return nil, err
	}

	if err := cacheVariantes.Stocker(ctx, produitID.String(), variantes); err != nil {
		log.Printf("⚠️ Erreur mise en cache variantes %s: %v", produitID, err)
	}

	return variantes, nil
}

// GetVariantes - GET /produits/:id/variantes
func GetVariantes(c *gin.Context) {
	produitID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	variantes, err := ChargerVariantes(c.Request.Context(), produitID)
	if err != nil {
		log.Printf("❌ Erreur récupération variantes: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"variantes":  variantes,
		"total":      len(variantes),
		"stockTotal": stock.StockTotal(variantes),
		"prixMin":    stock.PrixMin(variantes),
		"prixMax":    stock.PrixMax(variantes),
	})
}

// GetSelectionVariante - GET /produits/:id/selection
// Résout une sélection partielle d'attributs : options encore
// sélectionnables par dimension, variante correspondante, défaut.
func GetSelectionVariante(c *gin.Context) {
	produitID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	variantes, err := ChargerVariantes(c.Request.Context(), produitID)
	if err != nil {
		log.Printf("❌ Erreur récupération variantes: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	sel := stock.Selection{
		Couleur: c.Query("couleur"),
		Taille:  c.Query("taille"),
		Modele:  c.Query("modele"),
	}

	resultat := stock.Resoudre(variantes, sel)

	reponse := gin.H{
		"options":  resultat.Options,
		"variante": resultat.Variante,
	}
	if defaut := stock.SelectionParDefaut(variantes); defaut != nil {
		reponse["selectionParDefaut"] = defaut
	}

	c.JSON(http.StatusOK, reponse)
}

// CreateVariante - POST /produits/:id/variantes
func CreateVariante(c *gin.Context) {
	produitID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	var req struct {
		Couleur        string  `json:"couleur"`
		Taille         string  `json:"taille"`
		Modele         string  `json:"modele"`
		AjustementPrix float64 `json:"ajustementPrix"`
		Stock          int     `json:"stock"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
		return
	}

	if req.Stock < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le stock ne peut pas être négatif"})
		return
	}

	session, err := database.GetProduitsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	// Vérifier que le produit existe et appartient bien au vendeur
	var boutiqueID gocql.UUID
	var stockGlobal int
	if err := session.Query(`SELECT boutique_id, quantite_stock FROM produits WHERE produit_id = ?`, produitID).
		Scan(&boutiqueID, &stockGlobal); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit non trouvé"})
		return
	}
	if !boutiqueAutorisee(c, boutiqueID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Ce produit n'appartient pas à votre boutique"})
		return
	}

	// Refuser le doublon d'attributs : même combinaison déjà portée
	existantes, err := ChargerVariantes(c.Request.Context(), produitID)
	if err == nil {
		candidat := models.Variante{Couleur: req.Couleur, Taille: req.Taille, Modele: req.Modele}
		for _, v := range existantes {
			if v.MemesAttributs(candidat) {
				c.JSON(http.StatusConflict, gin.H{"error": "Cette combinaison d'attributs existe déjà"})
				return
			}
		}
	}

	variante := models.Variante{
		ID:             gocql.TimeUUID(),
		ProduitID:      produitID,
		Couleur:        req.Couleur,
		Taille:         req.Taille,
		Modele:         req.Modele,
		AjustementPrix: req.AjustementPrix,
		Stock:          req.Stock,
		Actif:          true,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	insertQuery := `
		INSERT INTO variantes_produit (
			variante_id, produit_id, couleur, taille, modele, ajustement_prix, stock, actif, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	if err := session.Query(insertQuery,
		variante.ID, variante.ProduitID, variante.Couleur, variante.Taille, variante.Modele,
		variante.AjustementPrix, variante.Stock, variante.Actif, variante.CreatedAt, variante.UpdatedAt,
	).Exec(); err != nil {
		log.Printf("❌ Erreur création variante: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la création de la variante"})
		return
	}

	// Marquer le produit comme ayant des variantes
	if err := session.Query(`UPDATE produits SET a_variantes = true, updated_at = ? WHERE produit_id = ?`,
		time.Now(), produitID).Exec(); err != nil {
		log.Printf("⚠️ Erreur mise à jour a_variantes: %v", err)
	}

	if err := cacheVariantes.Invalider(c.Request.Context(), produitID.String()); err != nil {
		log.Printf("⚠️ Erreur invalidation cache variantes: %v", err)
	}

	log.Printf("✅ Variante créée pour produit %s", produitID)
	c.JSON(http.StatusCreated, gin.H{
		"message":  "Variante créée avec succès",
		"variante": variante,
	})
}

// UpdateVariante - PUT /produits/:id/variantes/:varianteId
// Mise à jour partielle. Une édition de stock enregistre un mouvement,
// invalide le cache, puis relit tout pour recalculer le bilan — jamais
// de fusion optimiste locale. Une saisie au-dessus de la borne
// conseillée est persistée telle quelle, avec avertissement.
func UpdateVariante(c *gin.Context) {
	produitID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	varianteID, err := gocql.ParseUUID(c.Param("varianteId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID variante invalide"})
		return
	}

	var req struct {
		Stock          *int     `json:"stock"`
		AjustementPrix *float64 `json:"ajustementPrix"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	if req.Stock == nil && req.AjustementPrix == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Aucune mise à jour fournie"})
		return
	}

	if req.Stock != nil && *req.Stock < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le stock ne peut pas être négatif"})
		return
	}

	session, err := database.GetProduitsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var boutiqueID gocql.UUID
	var stockGlobal int
	if err := session.Query(`SELECT boutique_id, quantite_stock FROM produits WHERE produit_id = ?`, produitID).
		Scan(&boutiqueID, &stockGlobal); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit non trouvé"})
		return
	}
	if !boutiqueAutorisee(c, boutiqueID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Ce produit n'appartient pas à votre boutique"})
		return
	}

	var stockAvant int
	if err := session.Query(`SELECT stock FROM variantes_produit WHERE produit_id = ? AND variante_id = ?`, produitID, varianteID).
		Scan(&stockAvant); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Variante non trouvée"})
		return
	}

	// Construire la requête de mise à jour dynamiquement
	updates := []string{}
	values := []interface{}{}

	if req.Stock != nil {
		updates = append(updates, "stock = ?")
		values = append(values, *req.Stock)
	}

	if req.AjustementPrix != nil {
		updates = append(updates, "ajustement_prix = ?")
		values = append(values, *req.AjustementPrix)
	}

	updates = append(updates, "updated_at = ?")
	values = append(values, time.Now())
	values = append(values, produitID, varianteID)

	query := `UPDATE variantes_produit SET ` + updates[0]
	for i := 1; i < len(updates); i++ {
		query += ", " + updates[i]
	}
	query += " WHERE produit_id = ? AND variante_id = ?"

	if err := session.Query(query, values...).Exec(); err != nil {
		log.Printf("❌ Erreur mise à jour variante: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la mise à jour"})
		return
	}

	if req.Stock != nil && *req.Stock != stockAvant {
		enregistrerMouvementVariante(session, produitID, varianteID, stockAvant, *req.Stock, c.GetString("user_id"))
	}

	if err := cacheVariantes.Invalider(c.Request.Context(), produitID.String()); err != nil {
		log.Printf("⚠️ Erreur invalidation cache variantes: %v", err)
	}

	// Relecture complète pour le bilan : les deux compteurs vivent dans
	// des tables distinctes, la relecture évite toute dérive locale.
	variantes, err := ChargerVariantes(c.Request.Context(), produitID)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"message": "Variante mise à jour avec succès"})
		return
	}

	bilan := stock.CalculerBilan(stockGlobal, variantes)
	reponse := gin.H{
		"message": "Variante mise à jour avec succès",
		"bilan":   bilan,
	}
	if bilan.EnSurallocation() {
		reponse["avertissement"] = gin.H{
			"type":           "surallocation",
			"depassement":    bilan.Surallocation(),
			"stockGlobal":    bilan.StockGlobal,
			"stockVariantes": bilan.StockVariantesTotal,
		}
		log.Printf("⚠️ Surallocation produit %s: %d unités au-delà du stock global", produitID, bilan.Surallocation())
	}

	c.JSON(http.StatusOK, reponse)
}

// DeleteVariante - DELETE /produits/:id/variantes/:varianteId
func DeleteVariante(c *gin.Context) {
	produitID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	varianteID, err := gocql.ParseUUID(c.Param("varianteId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID variante invalide"})
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

	// Marquer comme inactive plutôt que supprimer
	query := `UPDATE variantes_produit SET actif = false, updated_at = ? WHERE produit_id = ? AND variante_id = ?`
	if err := session.Query(query, time.Now(), produitID, varianteID).Exec(); err != nil {
		log.Printf("❌ Erreur suppression variante: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la suppression"})
		return
	}

	if err := cacheVariantes.Invalider(c.Request.Context(), produitID.String()); err != nil {
		log.Printf("⚠️ Erreur invalidation cache variantes: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Variante supprimée avec succès"})
}

// GenererVariantes - POST /produits/:id/variantes/generer
// Génère le produit cartésien couleurs × tailles × modeles côté
// serveur, en sautant les combinaisons déjà existantes.
func GenererVariantes(c *gin.Context) {
	produitID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	var req struct {
		Couleurs       []string `json:"couleurs"`
		Tailles        []string `json:"tailles"`
		Modeles        []string `json:"modeles"`
		StockInitial   int      `json:"stockInitial"`
		AjustementPrix float64  `json:"ajustementPrix"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
		return
	}

	if len(req.Couleurs) == 0 && len(req.Tailles) == 0 && len(req.Modeles) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Au moins un axe d'attributs est requis"})
		return
	}

	if req.StockInitial < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le stock initial ne peut pas être négatif"})
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

	existantes, err := ChargerVariantes(c.Request.Context(), produitID)
	if err != nil {
		log.Printf("❌ Erreur lecture variantes existantes: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	combinaisons := stock.CombinaisonsAGenerer(req.Couleurs, req.Tailles, req.Modeles, existantes)

	insertQuery := `
		INSERT INTO variantes_produit (
			variante_id, produit_id, couleur, taille, modele, ajustement_prix, stock, actif, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	creees := 0
	for _, combo := range combinaisons {
		now := time.Now()
		if err := session.Query(insertQuery,
			gocql.TimeUUID(), produitID, combo.Couleur, combo.Taille, combo.Modele,
			req.AjustementPrix, req.StockInitial, true, now, now,
		).Exec(); err != nil {
			log.Printf("❌ Erreur génération variante: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":  "Erreur lors de la génération",
				"creees": creees,
			})
			return
		}
		creees++
	}

	if creees > 0 {
		if err := session.Query(`UPDATE produits SET a_variantes = true, updated_at = ? WHERE produit_id = ?`,
			time.Now(), produitID).Exec(); err != nil {
			log.Printf("⚠️ Erreur mise à jour a_variantes: %v", err)
		}
	}

	if err := cacheVariantes.Invalider(c.Request.Context(), produitID.String()); err != nil {
		log.Printf("⚠️ Erreur invalidation cache variantes: %v", err)
	}

	log.Printf("✅ %d variante(s) générée(s) pour produit %s (%d déjà existantes)",
		creees, produitID, len(existantes))
	c.JSON(http.StatusCreated, gin.H{
		"message":        "Variantes générées avec succès",
		"creees":         creees,
		"dejaExistantes": len(existantes),
	})
}

// enregistrerMouvementVariante trace l'édition de stock d'une variante
// dans l'historique des mouvements. L'échec n'annule pas l'édition.
func enregistrerMouvementVariante(session *gocql.Session, produitID, varianteID gocql.UUID, stockAvant, stockApres int, userID string) {
	mouvement := models.MouvementStock{
		ID:         gocql.TimeUUID(),
		ProduitID:  produitID,
		VarianteID: &varianteID,
		Type:       "ajustement",
		Quantite:   stockApres - stockAvant,
		StockAvant: stockAvant,
		StockApres: stockApres,
		Motif:      "Édition stock variante",
		UserID:     userID,
		CreatedAt:  time.Now(),
	}

	insertQuery := `
		INSERT INTO mouvements_stock (
			id, produit_id, variante_id, type, quantite, stock_avant, stock_apres, motif, user_id, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	if err := session.Query(insertQuery,
		mouvement.ID, mouvement.ProduitID, mouvement.VarianteID, mouvement.Type,
		mouvement.Quantite, mouvement.StockAvant, mouvement.StockApres, mouvement.Motif,
		mouvement.UserID, mouvement.CreatedAt,
	).Exec(); err != nil {
		log.Printf("⚠️ Erreur enregistrement mouvement stock variante: %v", err)
	}
}

// boutiqueAutorisee vérifie que la boutique du token possède le
// produit. Les admins passent toujours (modération).
func boutiqueAutorisee(c *gin.Context, boutiqueProduit gocql.UUID) bool {
	if c.GetString("role") == "admin" {
		return true
	}
	return c.GetString("boutique_id") == boutiqueProduit.String()
}
