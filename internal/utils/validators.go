package utils

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	nonPhoneChars = regexp.MustCompile(`[^\d+]`)
	egyptMobile   = regexp.MustCompile(`^\+201[0125]\d{8}$`)
	emailPattern  = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// ValidatePhoneNumber проверяет и нормализует египетский мобильный номер.
// Принимает формы +201XXXXXXXXX, 201XXXXXXXXX, 01XXXXXXXXX и возвращает
// номер в формате +201XXXXXXXXX или ошибку.
func ValidatePhoneNumber(phone string) (string, error) {
	phone = strings.TrimSpace(phone)
	digitsOnly := nonPhoneChars.ReplaceAllString(phone, "")

	var normalized string
	switch {
	case strings.HasPrefix(digitsOnly, "+20"):
		normalized = digitsOnly
	case strings.HasPrefix(digitsOnly, "20") && len(digitsOnly) == 12:
		normalized = "+" + digitsOnly
	case strings.HasPrefix(digitsOnly, "0") && len(digitsOnly) == 11:
		normalized = "+2" + digitsOnly
	default:
		return "", fmt.Errorf("неверный формат номера телефона: '%s', ожидается +201XXXXXXXXX или 01XXXXXXXXX", phone)
	}

	if !egyptMobile.MatchString(normalized) {
		return "", fmt.Errorf("поддерживаются только египетские мобильные номера (+2010/11/12/15...)")
	}
	return normalized, nil
}

// ValidateEmail проверяет, похожа ли строка на адрес почты.
// Пустая строка допустима: email в заказе не обязателен.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil
	}
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("некорректный email: '%s'", email)
	}
	return nil
}

// ValidateLocation проверяет корректность координат широты и долготы.
func ValidateLocation(latitude, longitude float64) error {
	if latitude < -90 || latitude > 90 {
		return fmt.Errorf("широта должна быть в диапазоне [-90, 90], получено: %.6f", latitude)
	}
	if longitude < -180 || longitude > 180 {
		return fmt.Errorf("долгота должна быть в диапазоне [-180, 180], получено: %.6f", longitude)
	}
	return nil
}
