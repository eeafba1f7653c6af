package extraction

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Число с разделителями тысяч (пробелы) или десятичной частью (точка/запятая)
const numberExpr = `(\d{1,3}(?: \d{3})+|\d+(?:[.,]\d+)?)`

var (
	// Число с обязательным словом-множителем: "50 тысяч", "1.5 млн"
	amountMagnitudePattern = regexp.MustCompile(numberExpr + `\s*(тыс(?:яч[а-яё]*)?\.?|млн\.?|миллион[а-яё]*)`)

	// Число с обязательным словом валюты: "50000 рублей", "300 руб."
	amountCurrencyPattern = regexp.MustCompile(numberExpr + `\s*(руб[а-яё]*\.?|р\.)`)

	// Число после ключевого слова суммы: "сумма 120000", "стоимостью 45000"
	amountKeywordPattern = regexp.MustCompile(`(?:сумм[а-яё]*|стоимость[а-яё]*|цен[а-яё]*|бюджет[а-яё]*)\s*(?:в|на|составляет)?\s*:?\s*` + numberExpr)
)

// amountRule извлекает денежную сумму и приводит ее к каноническому
// десятичному виду: "50 тысяч" -> "50000.0", "1.5 млн" -> "1500000.0".
// Число без множителя, валюты и ключевого слова суммой не считается
type amountRule struct{}

func (r *amountRule) Key() string { return "amount" }

func (r *amountRule) Find(text string, taken []Span) (Match, bool) {
	type candidate struct {
		pattern   *regexp.Regexp
		magnitude bool
	}
	candidates := []candidate{
		{amountMagnitudePattern, true},
		{amountCurrencyPattern, false},
		{amountKeywordPattern, false},
	}

	for _, cand := range candidates {
		for _, idx := range cand.pattern.FindAllStringSubmatchIndex(text, -1) {
			span := Span{Start: idx[0], End: idx[1]}
			if !spanFree(span, taken) {
				continue
			}

			number := text[idx[2]:idx[3]]
			multiplier := 1.0
			if cand.magnitude {
				multiplier = magnitudeMultiplier(text[idx[4]:idx[5]])
			}

			value, ok := parseAmountValue(number, multiplier)
			if !ok {
				continue
			}
			return Match{Key: r.Key(), Value: value, Span: span}, true
		}
	}
	return Match{}, false
}

func magnitudeMultiplier(word string) float64 {
	word = strings.TrimSuffix(strings.TrimSpace(word), ".")
	switch {
	case strings.HasPrefix(word, "тыс"):
		return 1000
	case strings.HasPrefix(word, "млн"), strings.HasPrefix(word, "миллион"):
		return 1000000
	}
	return 1
}

// parseAmountValue парсит число и возвращает каноническую десятичную строку.
// Запятая считается десятичным разделителем только при отсутствии точки
func parseAmountValue(number string, multiplier float64) (string, bool) {
	number = strings.ReplaceAll(number, " ", "")
	if strings.Contains(number, ".") {
		number = strings.ReplaceAll(number, ",", "")
	} else {
		number = strings.ReplaceAll(number, ",", ".")
	}

	parsed, err := strconv.ParseFloat(number, 64)
	if err != nil || parsed <= 0 {
		return "", false
	}

	value := parsed * multiplier
	return FormatAmount(value), true
}

// FormatAmount форматирует сумму в канонический вид с явной десятичной частью
func FormatAmount(value float64) string {
	if value == math.Trunc(value) {
		return strconv.FormatFloat(value, 'f', 1, 64)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
