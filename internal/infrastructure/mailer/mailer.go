package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/skinpredict/backend/internal/domain"
)

// SMTPMailer sends analysis result emails over SMTP with STARTTLS
type SMTPMailer struct {
	host     string
	port     string
	from     string
	password string
	log      *logrus.Entry
}

// New creates an SMTP mailer
func New(host, port, from, password string) *SMTPMailer {
	return &SMTPMailer{
		host:     host,
		port:     port,
		from:     from,
		password: password,
		log:      logrus.WithField("component", "mailer"),
	}
}

// SendResults emails the skin analysis results to the recipient
func (m *SMTPMailer) SendResults(ctx context.Context, recipient string, results *domain.SkinAnalysis) error {
	body := buildResultsBody(results)

	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %s\r\n", m.from))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", recipient))
	msg.WriteString("Subject: Your SkinPredict Analysis Results\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	addr := fmt.Sprintf("%s:%s", m.host, m.port)
	auth := smtp.PlainAuth("", m.from, m.password, m.host)

	m.log.Infof("sending results email to %s", recipient)
	if err := smtp.SendMail(addr, auth, m.from, []string{recipient}, []byte(msg.String())); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// buildResultsBody renders the HTML results email: analysis summary plus a
// routine recommendation block keyed on the detected skin type
func buildResultsBody(results *domain.SkinAnalysis) string {
	var b strings.Builder

	b.WriteString(`<html><body style="font-family: Arial, sans-serif; line-height: 1.6;">`)
	b.WriteString(`<h2 style="color: #3b82f6;">Your SkinPredict Analysis Results</h2>`)
	b.WriteString(`<p>Thank you for using SkinPredict! Here are your skin analysis results:</p>`)
	b.WriteString(`<div style="background-color: #f0f9ff; padding: 15px; border-radius: 5px; margin: 20px 0;">`)
	b.WriteString(`<h3 style="margin-top: 0; color: #1e40af;">Skin Type Analysis</h3>`)
	b.WriteString(fmt.Sprintf("<p><strong>Skin Type:</strong> %s (%.2f%% confidence)</p>",
		results.SkinType.Type, results.SkinType.Confidence))

	b.WriteString(`<h3 style="color: #1e40af;">Detected Skin Issues:</h3>`)
	if len(results.SkinIssues) == 0 {
		b.WriteString(`<p>No significant skin issues detected.</p>`)
	} else {
		b.WriteString("<ul>")
		for _, issue := range results.SkinIssues {
			b.WriteString(fmt.Sprintf("<li><strong>%s:</strong> %.2f%% confidence</li>",
				issue.Name, issue.Confidence))
		}
		b.WriteString("</ul>")
	}

	b.WriteString(`<h3 style="color: #1e40af;">Recommendations:</h3>`)
	b.WriteString(recommendationsFor(results.SkinType.Type))

	b.WriteString(`</div>`)
	b.WriteString(`<p style="font-style: italic; color: #64748b;">This analysis is for informational purposes only ` +
		`and should not replace professional medical advice. If you have skin concerns, please consult with a dermatologist.</p>`)
	b.WriteString(`<p>Thank you for using SkinPredict!</p>`)
	b.WriteString(`</body></html>`)

	return b.String()
}

func recommendationsFor(skinType domain.SkinType) string {
	switch skinType {
	case domain.SkinTypeDry:
		return `<ul>
<li>Use a gentle, hydrating cleanser</li>
<li>Apply moisturizer while skin is still damp</li>
<li>Look for products with hyaluronic acid, glycerin, ceramides</li>
<li>Avoid hot water and harsh soaps</li>
<li>Consider using a humidifier, especially during winter</li>
</ul>`
	case domain.SkinTypeOily:
		return `<ul>
<li>Use a foaming or gel cleanser</li>
<li>Choose oil-free, non-comedogenic products</li>
<li>Consider products with salicylic acid, niacinamide, or clay</li>
<li>Use a lightweight moisturizer (don't skip this step!)</li>
<li>Blotting papers can help during the day</li>
</ul>`
	default:
		return `<ul>
<li>Use a gentle cleanser</li>
<li>Regular exfoliation (1-2 times per week)</li>
<li>Apply moisturizer daily</li>
<li>Don't forget sunscreen with SPF 30 or higher</li>
<li>Stay hydrated and maintain a balanced diet</li>
</ul>`
	}
}
