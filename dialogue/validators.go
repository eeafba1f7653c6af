package dialogue

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Границы значений полей
const (
	minAmount       = 0.01
	maxAmount       = 999999999999.99
	maxStringLength = 500
)

// ValidFieldValue проверяет значение поля схемы.
// Невалидное значение считается отсутствующим: поле остается
// в списке missing, даже если каллер прислал непустую строку
func ValidFieldValue(field, value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}

	switch {
	case field == "inn" || strings.HasSuffix(field, "_inn"):
		return validINN(value)
	case field == "bik" || strings.HasSuffix(field, "_bik"):
		return validBIK(value)
	case field == "amount" || strings.HasSuffix(field, "_amount"):
		_, ok := ParseAmount(value)
		return ok
	default:
		return utf8.RuneCountInString(value) <= maxStringLength
	}
}

// validINN проверяет длину ИНН: ровно 10 или 12 цифр.
// Контрольная сумма намеренно не проверяется; ряды из одинаковых
// цифр отклоняются как заведомо фиктивные
func validINN(value string) bool {
	if !digitsOnly(value) {
		return false
	}
	if len(value) != 10 && len(value) != 12 {
		return false
	}
	return !allSameDigit(value)
}

// validBIK проверяет БИК: ровно 9 цифр, не все одинаковые
func validBIK(value string) bool {
	return digitsOnly(value) && len(value) == 9 && !allSameDigit(value)
}

// ParseAmount парсит сумму из пользовательского значения.
// Понимает слова-множители ("50 тыс", "1.5 млн") и валюту;
// запятая считается десятичным разделителем при отсутствии точки.
// Возвращает false, если сумма вне диапазона [0.01, 999999999999.99]
func ParseAmount(value string) (float64, bool) {
	lowered := strings.ToLower(strings.TrimSpace(value))

	multiplier := 1.0
	switch {
	case strings.Contains(lowered, "млн"), strings.Contains(lowered, "миллион"):
		multiplier = 1000000
	case strings.Contains(lowered, "тыс"), strings.HasSuffix(lowered, "к"):
		multiplier = 1000
	}

	var builder strings.Builder
	for _, r := range lowered {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' {
			builder.WriteRune(r)
		}
	}
	number := builder.String()
	if number == "" {
		return 0, false
	}

	if strings.Contains(number, ".") {
		number = strings.ReplaceAll(number, ",", "")
	} else {
		number = strings.ReplaceAll(number, ",", ".")
	}

	parsed, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return 0, false
	}

	amount := parsed * multiplier
	if amount < minAmount || amount > maxAmount {
		return 0, false
	}
	return amount, true
}

func digitsOnly(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func allSameDigit(value string) bool {
	for i := 1; i < len(value); i++ {
		if value[i] != value[0] {
			return false
		}
	}
	return true
}
