// utils/email.go
package utils

import (
	"fmt"
	"html"
	"log"
	"strings"

	"go-qkart/models"

	"github.com/keighl/postmark"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/shopspring/decimal"
)

type emailSender interface {
	send(from, to, subject, htmlBody, textBody string) error
}

type postmarkSender struct {
	client *postmark.Client
}

func (s *postmarkSender) send(from, to, subject, htmlBody, textBody string) error {
	_, err := s.client.SendEmail(postmark.Email{
		From:     from,
		To:       to,
		Subject:  subject,
		HtmlBody: htmlBody,
		TextBody: textBody,
	})
	return err
}

type sendgridSender struct {
	client *sendgrid.Client
}

func (s *sendgridSender) send(from, to, subject, htmlBody, textBody string) error {
	message := mail.NewSingleEmail(mail.NewEmail("", from), subject, mail.NewEmail("", to), textBody, htmlBody)
	resp, err := s.client.Send(message)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid responded %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

// EmailService sends transactional mail through Postmark or SendGrid. The
// zero provider disables sending.
type EmailService struct {
	sender emailSender
	from   string
}

// NewEmailService initializes the EmailService for provider ("postmark",
// "sendgrid" or "" for none)
func NewEmailService(provider, from, postmarkToken, sendgridKey string) *EmailService {
	es := &EmailService{from: from}
	switch provider {
	case "postmark":
		es.sender = &postmarkSender{client: postmark.NewClient(postmarkToken, "")}
	case "sendgrid":
		es.sender = &sendgridSender{client: sendgrid.NewSendClient(sendgridKey)}
	}
	return es
}

// Enabled reports whether a provider is configured
func (es *EmailService) Enabled() bool {
	return es != nil && es.sender != nil
}

// SendEmail sends a basic email to the specified recipient
func (es *EmailService) SendEmail(toEmail, subject, htmlContent, textContent string) error {
	if !es.Enabled() {
		return nil
	}

	if err := es.sender.send(es.from, toEmail, subject, htmlContent, textContent); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Printf("email %q sent to %s", subject, toEmail)
	return nil
}

// Receipt describes a completed checkout
type Receipt struct {
	Name          string
	Email         string
	Items         []models.CartItem
	Total         decimal.Decimal
	WalletBalance int64
}

// SendCheckoutReceipt mails the user a summary of what they paid for
func (es *EmailService) SendCheckoutReceipt(r Receipt) error {
	subject := "Your QKart order"
	return es.SendEmail(r.Email, subject, receiptHTML(r), receiptText(r))
}

func receiptText(r Receipt) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\nThank you for shopping with QKart! You paid for:\n\n", r.Name)
	for _, item := range r.Items {
		fmt.Fprintf(&b, "- %s x %d @ %s\n", item.Product.Name, item.Quantity, decimal.NewFromFloat(item.Product.Cost).String())
	}
	fmt.Fprintf(&b, "\nTotal: %s\nRemaining wallet balance: %d\n", r.Total.String(), r.WalletBalance)
	return b.String()
}

func receiptHTML(r Receipt) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<strong>Dear %s,</strong><br><br>Thank you for shopping with QKart! You paid for:<ul>", html.EscapeString(r.Name))
	for _, item := range r.Items {
		fmt.Fprintf(&b, "<li>%s x %d @ %s</li>", html.EscapeString(item.Product.Name), item.Quantity, decimal.NewFromFloat(item.Product.Cost).String())
	}
	fmt.Fprintf(&b, "</ul>Total: <strong>%s</strong><br>Remaining wallet balance: <strong>%d</strong>", r.Total.String(), r.WalletBalance)
	return b.String()
}
