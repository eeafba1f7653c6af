package normalization

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// retainedPunctuation - знаки, которые сохраняются при нормализации.
// Точка и запятая нужны для сумм, дефис для 44-ФЗ, кавычки для названий,
// двоеточие для конструкций вида "ИНН: 1234567890".
const retainedPunctuation = `-.,:"'/№`

// Normalizer приводит пользовательский текст к канонической форме
// для последующей классификации и извлечения сущностей
type Normalizer struct {
	corrections map[string]string
	canonical   map[string]bool
	corrector   *Corrector
}

// NewNormalizer создает нормализатор со словарем исправлений.
// Словарь отображает опечатку в каноническую форму; нечеткий поиск
// по словарю использует порог threshold (0 - значение по умолчанию).
func NewNormalizer(corrections map[string]string, threshold float64) *Normalizer {
	if corrections == nil {
		corrections = map[string]string{}
	}

	canonical := make(map[string]bool, len(corrections))
	vocabulary := make([]string, 0, len(corrections)*2)
	for typo, canon := range corrections {
		vocabulary = append(vocabulary, typo)
		if !canonical[canon] {
			canonical[canon] = true
			vocabulary = append(vocabulary, canon)
		}
	}

	return &Normalizer{
		corrections: corrections,
		canonical:   canonical,
		corrector:   NewCorrector(vocabulary, threshold),
	}
}

// Normalize выполняет полную нормализацию текста
func (n *Normalizer) Normalize(text string) string {
	// 1. Приведение к нижнему регистру
	text = strings.ToLower(text)

	// 2. Приведение Unicode к форме NFC
	text = norm.NFC.String(text)

	// 3. Нормализация кавычек и дефисов
	text = normalizeQuotes(text)
	text = normalizeHyphens(text)

	// 4. Удаление символов вне сохраняемого набора
	text = stripDisallowed(text)

	// 5. Схлопывание пробелов
	text = strings.Join(strings.Fields(text), " ")

	// 6. Исправление опечаток по словарю (по целым токенам)
	text = n.correctTokens(text)

	return strings.TrimSpace(text)
}

// DictionarySize возвращает размер словаря исправлений
func (n *Normalizer) DictionarySize() int {
	if n == nil {
		return 0
	}
	return len(n.corrections)
}

// correctTokens применяет словарь исправлений к каждому токену.
// Замена только по целому токену, чтобы не портить имена собственные
func (n *Normalizer) correctTokens(text string) string {
	if len(n.corrections) == 0 {
		return text
	}

	words := strings.Fields(text)
	for i, word := range words {
		words[i] = n.correctToken(word)
	}
	return strings.Join(words, " ")
}

func (n *Normalizer) correctToken(word string) string {
	// Числа, идентификаторы и короткие слова не исправляем
	if utf8.RuneCountInString(word) < 3 || !isAlphabetic(word) {
		return word
	}

	if canon, ok := n.corrections[word]; ok {
		return canon
	}
	if n.canonical[word] {
		return word
	}

	match, score, ok := n.corrector.BestMatch(word)
	if !ok || score <= applyThreshold || match == word {
		return word
	}
	if canon, found := n.corrections[match]; found {
		return canon
	}
	return match
}

func isAlphabetic(word string) bool {
	for _, r := range word {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func normalizeQuotes(text string) string {
	replacements := map[rune]rune{
		'“': '"',  // left double quotation mark
		'”': '"',  // right double quotation mark
		'‘': '\'', // left single quotation mark
		'’': '\'', // right single quotation mark
		'«': '"',
		'»': '"',
		'„': '"',
		'‚': '\'',
	}

	var builder strings.Builder
	for _, r := range text {
		if replacement, ok := replacements[r]; ok {
			builder.WriteRune(replacement)
		} else {
			builder.WriteRune(r)
		}
	}
	return builder.String()
}

func normalizeHyphens(text string) string {
	text = strings.ReplaceAll(text, "—", "-")
	text = strings.ReplaceAll(text, "–", "-")
	text = strings.ReplaceAll(text, "−", "-")
	return text
}

// stripDisallowed заменяет недопустимые символы пробелами,
// чтобы соседние слова не склеивались
func stripDisallowed(text string) string {
	var builder strings.Builder
	builder.Grow(len(text))
	for _, r := range text {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r):
			builder.WriteRune(r)
		case strings.ContainsRune(retainedPunctuation, r):
			builder.WriteRune(r)
		default:
			builder.WriteRune(' ')
		}
	}
	return builder.String()
}
