package utils

import (
	"fmt"
	"math"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sgurzheyev/Clean-Egypt-co/internal/constants"
)

// FormatPhoneNumber форматирует нормализованный номер для отображения,
// например "+20 101 416 7909". Нераспознанный номер возвращается как есть.
func FormatPhoneNumber(phone string) string {
	re := regexp.MustCompile(`[^\d+]`)
	cleaned := re.ReplaceAllString(phone, "")

	if strings.HasPrefix(cleaned, "+20") && len(cleaned) == 13 {
		return fmt.Sprintf("+20 %s %s %s", cleaned[3:6], cleaned[6:9], cleaned[9:13])
	}
	if strings.HasPrefix(cleaned, "0") && len(cleaned) == 11 {
		return fmt.Sprintf("+20 %s %s %s", cleaned[1:4], cleaned[4:7], cleaned[7:11])
	}
	return phone
}

// EscapeTelegramHTML экранирует спецсимволы для parse_mode=HTML.
func EscapeTelegramHTML(text string) string {
	var replacer = strings.NewReplacer(
		"&", "&amp;", "<", "&lt;", ">", "&gt;",
	)
	return replacer.Replace(text)
}

// USDWithEGP форматирует сумму в долларах с приблизительным эквивалентом
// в фунтах: "$20 (~950 EGP)". rate — курс USD→EGP.
func USDWithEGP(usd float64, rate float64) string {
	return fmt.Sprintf("$%.0f (~%.0f EGP)", usd, math.Round(usd*rate))
}

// PhotoObjectName генерирует имя объекта для фотографии заказа:
// метка времени + uuid + исходное имя файла, очищенное от путей.
func PhotoObjectName(originalName string) string {
	base := filepath.Base(strings.ReplaceAll(originalName, "\\", "/"))
	base = strings.ReplaceAll(base, " ", "_")
	return fmt.Sprintf("%d_%s_%s", time.Now().Unix(), uuid.New().String(), base)
}

// WhatsAppLink собирает wa.me-ссылку с предзаполненным сообщением.
// wa.me принимает только цифры, поэтому номер очищается от "+" и пробелов.
func WhatsAppLink(phone, message string) string {
	digits := regexp.MustCompile(`\D`).ReplaceAllString(phone, "")
	return fmt.Sprintf(constants.WhatsAppLinkFormat, digits, url.QueryEscape(message))
}
