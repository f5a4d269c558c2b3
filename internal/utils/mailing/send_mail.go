package mailing

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/jamshiddins/vendbot/entities"
	"github.com/jamshiddins/vendbot/internal/utils"
	"gopkg.in/gomail.v2"
)

type MailConfig struct {
	AppURL       string
	SMTPHost     string
	SMTPPort     string
	SMTPSender   string
	SMTPEmail    string
	SMTPPassword string
	AlertEmail   string
}

func LoadMailConfig() MailConfig {
	return MailConfig{
		AppURL:       utils.GetConfig("APP_URL"),
		SMTPHost:     utils.GetConfig("SMTP_HOST"),
		SMTPPort:     utils.GetConfig("SMTP_PORT"),
		SMTPSender:   utils.GetConfig("SMTP_SENDER_NAME"),
		SMTPEmail:    utils.GetConfig("SMTP_AUTH_EMAIL"),
		SMTPPassword: utils.GetConfig("SMTP_AUTH_PASSWORD"),
		AlertEmail:   utils.GetConfig("ALERT_EMAIL"),
	}
}

func SendMail(toEmail string, subject string, body string) error {
	emailConfig := LoadMailConfig()

	mailer := gomail.NewMessage()
	mailer.SetHeader("From", emailConfig.SMTPEmail)
	mailer.SetHeader("To", toEmail)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body)
	port, err := strconv.Atoi(emailConfig.SMTPPort)
	if err != nil {
		return err
	}
	dialer := gomail.NewDialer(
		emailConfig.SMTPHost,
		port,
		emailConfig.SMTPEmail,
		emailConfig.SMTPPassword,
	)

	return dialer.DialAndSend(mailer)
}

// LowStockMailer sends a warehouse alert when a stock entry drops to the
// critical level. Satisfies allocation.LowStockNotifier.
type LowStockMailer struct{}

func NewLowStockMailer() *LowStockMailer {
	return &LowStockMailer{}
}

func (m *LowStockMailer) NotifyLowStock(ctx context.Context, entry entities.StockEntry) {
	cfg := LoadMailConfig()
	if cfg.AlertEmail == "" {
		return
	}

	name := fmt.Sprintf("ingredient type %d", entry.IngredientTypeID)
	unit := ""
	if entry.IngredientType != nil {
		name = entry.IngredientType.DisplayName()
		unit = entry.IngredientType.Unit
	}

	subject := "Critical stock level: " + name
	body := fmt.Sprintf(
		"<p>Stock for <b>%s</b> is at a critical level: %.3f %s on hand (%.3f reserved).</p>"+
			"<p>Please schedule a restock.</p>",
		name, entry.Quantity, unit, entry.Reserved,
	)
	if err := SendMail(cfg.AlertEmail, subject, body); err != nil {
		log.Printf("low stock alert for %s not sent: %v", name, err)
	}
}
