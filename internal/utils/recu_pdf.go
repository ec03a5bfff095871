package utils

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// RenderRecuPDF charge la page reçu du frontend FasoMarket et
// l'imprime en PDF (pièce jointe de l'e-mail de confirmation).
// frontendURL ressemble à: https://fasomarket.bf/recu
func RenderRecuPDF(frontendURL, commandeID, qrBase64 string) ([]byte, error) {
	q := url.Values{}
	q.Set("id", commandeID)
	q.Set("qr", qrBase64)

	fullURL := fmt.Sprintf("%s?%s", frontendURL, q.Encode())

	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	// timeout pour éviter de bloquer l'envoi d'e-mail
	ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var pdfBuf []byte

	err := chromedp.Run(ctx,
		chromedp.Navigate(fullURL),
		chromedp.WaitVisible("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}

	return pdfBuf, nil
}

// GetFrontendRecuBaseURL retourne l'URL de la page reçu du frontend
func GetFrontendRecuBaseURL() string {
	base := os.Getenv("FRONTEND_URL")
	if base == "" {
		base = "http://localhost:3000"
	}
	return base + "/recu"
}
