package utils

import (
	"bytes"
	"fmt"
	"log"
	"os"

	"github.com/wneessen/go-mail"

	"fasomarket_back_end/internal/models"
)

// SendConfirmationEmail envoie la confirmation de commande, avec le
// reçu PDF en pièce jointe quand il a pu être généré.
func SendConfirmationEmail(to, subject, htmlBody string, pdfAttachment []byte) error {
	msg := mail.NewMsg()

	if err := msg.From("noreply@fasomarket.bf"); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	if pdfAttachment != nil {
		msg.AttachReader("recu_fasomarket.pdf", bytes.NewReader(pdfAttachment))
	}

	client, err := mail.NewClient(os.Getenv("SMTP_HOST"),
		mail.WithPort(587),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de l'e-mail à", to)
	return client.DialAndSend(msg)
}

// GenerateOrderConfirmationHTML génère le HTML de confirmation de commande
func GenerateOrderConfirmationHTML(commande models.Commande) string {
	articlesHTML := ""
	for _, article := range commande.Articles {
		nom := article.Nom
		if article.Attributs != "" {
			nom += " (" + article.Attributs + ")"
		}
		articlesHTML += fmt.Sprintf(`
			<tr>
				<td>%s</td>
				<td>%d</td>
				<td>%.0f FCFA</td>
				<td>%.0f FCFA</td>
			</tr>`, nom, article.Quantite, article.Prix, article.Prix*float64(article.Quantite))
	}

	codeRetraitHTML := ""
	if commande.CodeRetrait != "" {
		codeRetraitHTML = fmt.Sprintf(`
		<p style="margin-top: 20px;">Votre code de retrait : <strong style="font-size: 18px;">%s</strong></p>`,
			commande.CodeRetrait)
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>Confirmation de commande</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Confirmation de votre commande</h2>
		<p>Bonjour,</p>
		<p>Votre commande FasoMarket a été confirmée avec succès.</p>

		<h3>Détails de la commande</h3>
		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background-color: #f0f0f0;">
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Produit</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Quantité</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Prix unitaire</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Total</th>
				</tr>
			</thead>
			<tbody>
				%s
			</tbody>
			<tfoot>
				<tr>
					<td colspan="3" style="padding: 10px; text-align: right; font-weight: bold;">Total:</td>
					<td style="padding: 10px; font-weight: bold;">%.0f FCFA</td>
				</tr>
			</tfoot>
		</table>
		%s
		<p style="margin-top: 30px; color: #555;">
			Cordialement,<br>
			<strong>L'équipe FasoMarket</strong>
		</p>
	</div>
</body>
</html>`, articlesHTML, commande.Total, codeRetraitHTML)
}
