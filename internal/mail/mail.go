package mail

import (
	"context"
	"fmt"
	"time"

	"github.com/mailersend/mailersend-go"
	"go.uber.org/zap"

	"github.com/sgurzheyev/Clean-Egypt-co/internal/constants"
	"github.com/sgurzheyev/Clean-Egypt-co/internal/logger"
	"github.com/sgurzheyev/Clean-Egypt-co/internal/models"
	"github.com/sgurzheyev/Clean-Egypt-co/internal/utils"
)

// Mailer отправляет клиенту письмо-подтверждение, если он указал email.
type Mailer struct {
	ms        *mailersend.Mailersend
	fromName  string
	fromEmail string
}

// NewMailer возвращает nil, если ключ API не задан: письма тогда не отправляются.
func NewMailer(apiKey, fromName, fromEmail string) *Mailer {
	if apiKey == "" || fromEmail == "" {
		return nil
	}
	return &Mailer{
		ms:        mailersend.NewMailersend(apiKey),
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

// SendOrderConfirmation отправляет подтверждение о принятом заказе.
func (m *Mailer) SendOrderConfirmation(ctx context.Context, order models.Order) error {
	if m == nil {
		return nil
	}
	if !order.Email.Valid || order.Email.String == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	subject := fmt.Sprintf("CleanEgypt — order #%d received", order.ID)
	text := fmt.Sprintf(
		"Hi %s!\n\nWe received your %s request: %.0f sq.m., %s.\nOur operator will contact you at %s shortly.\n\nCleanEgypt.co",
		order.ClientName,
		constants.ModeDisplayMap[order.OrderType],
		order.AreaSize,
		utils.USDWithEGP(order.OfferAmountUSD, constants.USDToEGPRate),
		utils.FormatPhoneNumber(order.Phone),
	)
	html := fmt.Sprintf(
		"<p>Hi %s!</p><p>We received your <b>%s</b> request: %.0f sq.m., <b>%s</b>.</p><p>Our operator will contact you at %s shortly.</p><p>CleanEgypt.co</p>",
		order.ClientName,
		constants.ModeDisplayMap[order.OrderType],
		order.AreaSize,
		utils.USDWithEGP(order.OfferAmountUSD, constants.USDToEGPRate),
		utils.FormatPhoneNumber(order.Phone),
	)

	message := m.ms.Email.NewMessage()
	message.SetFrom(mailersend.From{Name: m.fromName, Email: m.fromEmail})
	message.SetRecipients([]mailersend.Recipient{{Email: order.Email.String}})
	message.SetSubject(subject)
	message.SetHTML(html)
	message.SetText(text)

	if _, err := m.ms.Email.Send(ctx, message); err != nil {
		return err
	}
	logger.Log.Info("confirmation email sent", zap.Int64("order_id", order.ID))
	return nil
}
