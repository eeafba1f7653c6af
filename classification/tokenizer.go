package classification

import (
	"strings"
	"unicode"

	"github.com/kljensen/snowball"
)

// Токены-заполнители: конкретные числа не несут смысла для классификации,
// важен сам факт присутствия числа или суммы
const (
	numberToken = "<num>"
	amountToken = "<amount>"
)

var amountSuffixes = []string{"тыс", "млн", "миллион", "руб"}

// Tokenize разбивает нормализованный текст на токены для векторизации:
// числа заменяются заполнителями, русские слова приводятся к основе
func Tokenize(text string) []string {
	fields := strings.Fields(text)
	tokens := make([]string, 0, len(fields))

	for i, field := range fields {
		token := strings.Trim(field, `"',.:`)
		if token == "" {
			continue
		}

		if isNumeric(token) {
			if followedByAmountWord(fields, i) {
				tokens = append(tokens, amountToken)
			} else {
				tokens = append(tokens, numberToken)
			}
			continue
		}

		tokens = append(tokens, stemWord(token))
	}

	return tokens
}

// NGrams строит n-граммы токенов от min до max слов, части соединяются "_"
func NGrams(tokens []string, min, max int) []string {
	if min < 1 {
		min = 1
	}
	if max < min {
		max = min
	}

	grams := make([]string, 0, len(tokens)*(max-min+1))
	for n := min; n <= max; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			grams = append(grams, strings.Join(tokens[i:i+n], "_"))
		}
	}
	return grams
}

func stemWord(word string) string {
	if !isCyrillic(word) {
		return word
	}
	stemmed, err := snowball.Stem(word, "russian", true)
	if err != nil || stemmed == "" {
		return word
	}
	return stemmed
}

func isNumeric(token string) bool {
	hasDigit := false
	for _, r := range token {
		if unicode.IsDigit(r) {
			hasDigit = true
			continue
		}
		if r != '.' && r != ',' && r != ' ' {
			return false
		}
	}
	return hasDigit
}

func isCyrillic(token string) bool {
	for _, r := range token {
		if !unicode.Is(unicode.Cyrillic, r) {
			return false
		}
	}
	return token != ""
}

func followedByAmountWord(fields []string, i int) bool {
	if i+1 >= len(fields) {
		return false
	}
	next := strings.ToLower(fields[i+1])
	for _, suffix := range amountSuffixes {
		if strings.HasPrefix(next, suffix) {
			return true
		}
	}
	return false
}
