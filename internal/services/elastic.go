package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/elastic/go-elasticsearch/v8/esapi"

	"fasomarket_back_end/internal/database"
	"fasomarket_back_end/internal/models"
)

//
// --- INDEXATION DANS ELASTICSEARCH ---
//

// IndexProduit indexe un produit dans Elasticsearch (appelé en
// goroutine après création/mise à jour, l'échec n'est pas bloquant).
func IndexProduit(p models.Produit) {
	if database.Elastic == nil {
		log.Println("⚠️ Elastic non initialisé, impossible d'indexer:", p.Nom)
		return
	}

	data, _ := json.Marshal(p)
	req := esapi.IndexRequest{
		Index:      "produits",
		DocumentID: p.ID.String(),
		Body:       bytes.NewReader(data),
		Refresh:    "true",
	}

	res, err := req.Do(context.Background(), database.Elastic)
	if err != nil {
		log.Println("❌ Erreur envoi Elastic:", err)
		return
	}
	defer res.Body.Close()

	if res.IsError() {
		log.Printf("⚠️ Elastic a renvoyé une erreur pour %s: %s", p.Nom, res.String())
	} else {
		log.Printf("✅ Produit indexé dans Elasticsearch: %s", p.Nom)
	}
}

// DeleteProduitIndex retire un produit de l'index (suppression ou
// suspension par la modération).
func DeleteProduitIndex(produitID string) {
	if database.Elastic == nil {
		return
	}

	req := esapi.DeleteRequest{
		Index:      "produits",
		DocumentID: produitID,
	}

	res, err := req.Do(context.Background(), database.Elastic)
	if err != nil {
		log.Println("❌ Erreur suppression index Elastic:", err)
		return
	}
	defer res.Body.Close()
}

//
// --- RECHERCHE DANS ELASTICSEARCH ---
//

// RechercherProduits cherche par nom, description ou tags
func RechercherProduits(query string) ([]map[string]interface{}, error) {
	if database.Elastic == nil {
		return nil, errors.New("client Elasticsearch non initialisé")
	}

	var buf bytes.Buffer
	q := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": map[string]interface{}{
					"multi_match": map[string]interface{}{
						"query":  query,
						"fields": []string{"nom", "description", "tags"},
					},
				},
				"filter": map[string]interface{}{
					"term": map[string]interface{}{
						"statut.keyword": "approuve",
					},
				},
			},
		},
	}

	if err := json.NewEncoder(&buf).Encode(q); err != nil {
		return nil, fmt.Errorf("erreur encodage requête: %v", err)
	}

	req := esapi.SearchRequest{
		Index: []string{"produits"},
		Body:  &buf,
	}
	res, err := req.Do(context.Background(), database.Elastic)
	if err != nil {
		return nil, fmt.Errorf("erreur requête Elastic: %v", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("Elastic a renvoyé une erreur: %s", res.String())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source map[string]interface{} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}

	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("erreur décodage réponse: %v", err)
	}

	results := make([]map[string]interface{}, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		results = append(results, hit.Source)
	}

	return results, nil
}
