package utils

import (
	"encoding/base64"

	"github.com/skip2/go-qrcode"
)

// GenerateCodeRetraitQR encode le code de retrait d'une commande en QR
// base64, prêt à mettre dans un <img src="..."> (page reçu, e-mail).
// Le livreur ou le point relais scanne ce code à la remise.
func GenerateCodeRetraitQR(commandeID, codeRetrait string) (string, error) {
	contenu := "fasomarket:retrait:" + commandeID + ":" + codeRetrait

	png, err := qrcode.Encode(contenu, qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
