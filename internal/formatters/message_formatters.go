package formatters

import (
	"fmt"
	"strings"

	"github.com/sgurzheyev/Clean-Egypt-co/internal/constants"
	"github.com/sgurzheyev/Clean-Egypt-co/internal/models"
	"github.com/sgurzheyev/Clean-Egypt-co/internal/utils"
)

const separator = "─ ─ ─ ─ ─ ─ ─ ─ ─ ─ ─ ─ ─"

// FormatNewOrderNotification форматирует HTML-сообщение о новом заказе
// для оператора и рабочей группы. loyaltyCount — сколько заказов уже было
// с этого номера телефона (0, если клиент новый).
func FormatNewOrderNotification(order models.Order, loyaltyCount int) string {
	var b strings.Builder

	if order.OrderType == constants.MODE_HOME {
		b.WriteString("🏠 <b>NEW HOME CLEANING ORDER</b>\n")
	} else {
		b.WriteString("🌆 <b>NEW CITY CLEANUP DONATION</b>\n")
	}
	b.WriteString(separator + "\n")

	b.WriteString("👤 <b>CLIENT:</b>\n")
	b.WriteString(fmt.Sprintf(" •  Name: %s", utils.EscapeTelegramHTML(order.ClientName)))
	if loyaltyCount > 1 {
		b.WriteString(fmt.Sprintf(" (⭐ %d orders)", loyaltyCount))
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf(" •  Phone: %s\n", utils.EscapeTelegramHTML(utils.FormatPhoneNumber(order.Phone))))
	if order.Email.Valid && order.Email.String != "" {
		b.WriteString(fmt.Sprintf(" •  Email: %s\n", utils.EscapeTelegramHTML(order.Email.String)))
	}
	b.WriteString("\n")

	b.WriteString("📋 <b>ORDER:</b>\n")
	b.WriteString(fmt.Sprintf(" •  Area: %.0f sq.m.\n", order.AreaSize))
	label := "Offer"
	if order.OrderType == constants.MODE_CITY {
		label = "Donation"
	}
	b.WriteString(fmt.Sprintf(" •  %s: %s\n", label, utils.USDWithEGP(order.OfferAmountUSD, constants.USDToEGPRate)))
	if order.Details != "" {
		b.WriteString(fmt.Sprintf(" •  Details: %s\n", utils.EscapeTelegramHTML(order.Details)))
	}
	if len(order.Photos) > 0 {
		b.WriteString(fmt.Sprintf(" •  Photos: %d\n", len(order.Photos)))
	}
	gps := order.GPS
	if gps == "" {
		gps = constants.GPSUnavailable
	}
	b.WriteString(fmt.Sprintf(" •  GPS: %s\n", utils.EscapeTelegramHTML(gps)))

	b.WriteString(separator + "\n")
	b.WriteString(fmt.Sprintf("Order #%d • status: %s", order.ID, order.Status))

	return b.String()
}

// FormatRechargeMessage — текст для wa.me-ссылки пополнения баланса.
func FormatRechargeMessage(telegramID int64) string {
	return fmt.Sprintf("Hi Sergio! I want to top up my balance. My ID: %d", telegramID)
}

// FormatTakeJobMessage — текст для wa.me-ссылки контакта с клиентом после взятия заказа.
func FormatTakeJobMessage(orderID string, depositEGP float64) string {
	return fmt.Sprintf("Deposit of %.0f EGP locked for order #%s. I am your cleaner, where do we start?", depositEGP, orderID)
}

// FormatFinishJobMessage — текст для wa.me-ссылки оператору по завершении работы.
func FormatFinishJobMessage(orderID string) string {
	return fmt.Sprintf("Order #%s is finished. Please verify and release my deposit.", orderID)
}
