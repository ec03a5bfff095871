package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"fasomarket_back_end/internal/database"
)

// UploadImageProduit téléverse une image produit dans le bucket
// FasoMarket, sous un nom unique, et retourne le chemin objet.
func UploadImageProduit(produitID string, file *multipart.FileHeader) (string, error) {
	if database.MinIO == nil {
		return "", fmt.Errorf("MinIO non initialisé")
	}

	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	objectName := fmt.Sprintf("produits/%s/%s%s", produitID, uuid.NewString(), path.Ext(file.Filename))
	bucket := os.Getenv("MINIO_BUCKET")

	_, err = database.MinIO.PutObject(context.Background(), bucket, objectName, f, file.Size,
		minio.PutObjectOptions{ContentType: file.Header.Get("Content-Type")})
	if err != nil {
		return "", err
	}

	return objectName, nil
}

// GenerateSignedURL génère une URL signée avec expiration pour servir
// une image du bucket. Accepte un chemin objet ou une URL complète.
func GenerateSignedURL(ctx context.Context, objectPath string, duration time.Duration) (string, error) {
	if database.MinIO == nil {
		return "", fmt.Errorf("MinIO non initialisé")
	}

	bucket := os.Getenv("MINIO_BUCKET")

	// Ne garder que le chemin relatif au bucket
	key := objectPath
	prefix := fmt.Sprintf("http://%s/%s/", os.Getenv("MINIO_ENDPOINT"), bucket)
	key = strings.TrimPrefix(key, prefix)

	reqParams := make(url.Values)
	presignedURL, err := database.MinIO.PresignedGetObject(ctx, bucket, key, duration, reqParams)
	if err != nil {
		return "", err
	}

	return presignedURL.String(), nil
}
