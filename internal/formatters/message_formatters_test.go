package formatters

import (
	"database/sql"
	"strings"
	"testing"

	"github.com/sgurzheyev/Clean-Egypt-co/internal/constants"
	"github.com/sgurzheyev/Clean-Egypt-co/internal/models"
)

func TestFormatNewOrderNotificationContainsNameAndOffer(t *testing.T) {
	order := models.Order{
		ID:             7,
		OrderType:      constants.MODE_HOME,
		AreaSize:       50,
		OfferAmountUSD: 20,
		ClientName:     "Ahmed",
		Phone:          "+201012345678",
		Status:         constants.STATUS_PENDING,
	}

	msg := FormatNewOrderNotification(order, 0)

	if !strings.Contains(msg, "Ahmed") {
		t.Errorf("уведомление не содержит имени клиента: %q", msg)
	}
	if !strings.Contains(msg, "20") {
		t.Errorf("уведомление не содержит суммы предложения: %q", msg)
	}
	if !strings.Contains(msg, "950 EGP") {
		t.Errorf("уведомление не содержит эквивалента в EGP: %q", msg)
	}
	if !strings.Contains(msg, constants.GPSUnavailable) {
		t.Errorf("пустой GPS должен отображаться сентинелом: %q", msg)
	}
}

func TestFormatNewOrderNotificationCityUsesDonation(t *testing.T) {
	order := models.Order{
		OrderType:      constants.MODE_CITY,
		AreaSize:       500,
		OfferAmountUSD: 10,
		ClientName:     "Mona",
		Phone:          "+201512345678",
		GPS:            "30.0444, 31.2357",
		Status:         constants.STATUS_PENDING,
	}

	msg := FormatNewOrderNotification(order, 3)

	if !strings.Contains(msg, "Donation") {
		t.Errorf("в режиме city сумма должна называться Donation: %q", msg)
	}
	if !strings.Contains(msg, "CITY CLEANUP") {
		t.Errorf("нет заголовка city-режима: %q", msg)
	}
	if !strings.Contains(msg, "3 orders") {
		t.Errorf("счётчик лояльности не отображён: %q", msg)
	}
	if !strings.Contains(msg, "30.0444, 31.2357") {
		t.Errorf("координаты не отображены: %q", msg)
	}
}

func TestFormatNewOrderNotificationEscapesHTML(t *testing.T) {
	order := models.Order{
		OrderType:      constants.MODE_HOME,
		ClientName:     "<script>",
		Phone:          "+201012345678",
		Details:        "a < b & c",
		OfferAmountUSD: 5,
		Email:          sql.NullString{String: "x@y.com", Valid: true},
	}

	msg := FormatNewOrderNotification(order, 0)

	if strings.Contains(msg, "<script>") {
		t.Errorf("имя клиента не экранировано: %q", msg)
	}
	if !strings.Contains(msg, "a &lt; b &amp; c") {
		t.Errorf("детали не экранированы: %q", msg)
	}
}
