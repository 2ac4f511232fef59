package services

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"hostelhub-server/models"

	"github.com/sony/gobreaker"
	"gopkg.in/gomail.v2"
)

// Mailer sends transactional mail through SMTP. The dialer is wrapped in a
// circuit breaker so a dead SMTP relay cannot stall notice publishing.
type Mailer struct {
	breaker *gobreaker.CircuitBreaker
}

func NewMailer() *Mailer {
	return &Mailer{
		breaker: gobreaker.NewCircuitBreaker(
			gobreaker.Settings{
				Name:        "smtp",
				MaxRequests: 1,
				Timeout:     10 * time.Second,
				Interval:    0,
				ReadyToTrip: func(counts gobreaker.Counts) bool {
					return counts.ConsecutiveFailures > 2
				},
				OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
					log.Printf("Circuit Breaker '%s' changed from '%s' to '%s'\n", name, from, to)
				},
			},
		),
	}
}

func (m *Mailer) send(to, subject, body string) error {
	smtpServer := os.Getenv("SMTP_SERVER")
	smtpPort, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	smtpEmail := os.Getenv("SMTP_EMAIL")
	smtpPassword := os.Getenv("SMTP_PASSWORD")

	message := gomail.NewMessage()
	message.SetHeader("From", smtpEmail)
	message.SetHeader("To", to)
	message.SetHeader("Subject", subject)
	message.SetBody("text/plain", body)

	_, err := m.breaker.Execute(func() (interface{}, error) {
		client := gomail.NewDialer(smtpServer, smtpPort, smtpEmail, smtpPassword)
		return nil, client.DialAndSend(message)
	})
	return err
}

// SendNoticeMail delivers a published notice to one recipient.
func (m *Mailer) SendNoticeMail(notice *models.Notice, email string) error {
	body := fmt.Sprintf("%s\n\n%s", notice.Title, notice.Body)
	return m.send(email, "Hostel Notice: "+notice.Title, body)
}

// SendReceiptMail emails a payment receipt link to the payer.
func (m *Mailer) SendReceiptMail(payment *models.Payment, email, receiptURL string) error {
	body := fmt.Sprintf(
		"Receipt %s\nAmount: %s %s\nStatus: %s\n\nDownload: %s",
		payment.ReceiptNumber, payment.Amount.StringFixed(2), payment.Currency, payment.Status, receiptURL)
	return m.send(email, "Payment Receipt "+payment.ReceiptNumber, body)
}
