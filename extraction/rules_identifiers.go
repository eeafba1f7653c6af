package extraction

import (
	"regexp"
	"strings"
)

var (
	customerINNPattern = regexp.MustCompile(`(?:инн|inn)[\s:]*([0-9]+)`)
	bareINNPattern     = regexp.MustCompile(`(?:^|[^0-9])([0-9]{12}|[0-9]{10})(?:[^0-9]|$)`)
	bikPattern         = regexp.MustCompile(`(?:бик|bik)[\s:]*([0-9]+)`)
	documentIDPattern  = regexp.MustCompile(`(?:^|[^0-9])([0-9]{4,})(?:[^0-9]|$)`)

	// Слова, после которых числовой ряд является суммой, а не идентификатором
	magnitudeAfterPattern = regexp.MustCompile(`^\s*(?:тыс|млн|миллион|руб)`)
)

// customerINNRule извлекает ИНН, указанный рядом со словом "инн".
// Принимаются только ряды из ровно 10 или 12 цифр, контрольная сумма не проверяется
type customerINNRule struct{}

func (r *customerINNRule) Key() string { return "customer_inn" }

func (r *customerINNRule) Find(text string, taken []Span) (Match, bool) {
	for _, idx := range customerINNPattern.FindAllStringSubmatchIndex(text, -1) {
		span := Span{Start: idx[0], End: idx[1]}
		if !spanFree(span, taken) {
			continue
		}
		digits := text[idx[2]:idx[3]]
		if len(digits) != 10 && len(digits) != 12 {
			continue
		}
		return Match{Key: r.Key(), Value: digits, Span: span}, true
	}
	return Match{}, false
}

// innRule извлекает ИНН без контекстного слова: одиночный ряд из 10 или 12 цифр
type innRule struct{}

func (r *innRule) Key() string { return "inn" }

func (r *innRule) Find(text string, taken []Span) (Match, bool) {
	for _, idx := range bareINNPattern.FindAllStringSubmatchIndex(text, -1) {
		span := Span{Start: idx[2], End: idx[3]}
		if !spanFree(span, taken) {
			continue
		}
		return Match{Key: r.Key(), Value: text[idx[2]:idx[3]], Span: span}, true
	}
	return Match{}, false
}

// bikRule извлекает БИК: ровно 9 цифр рядом со словом "бик"
type bikRule struct{}

func (r *bikRule) Key() string { return "bik" }

func (r *bikRule) Find(text string, taken []Span) (Match, bool) {
	for _, idx := range bikPattern.FindAllStringSubmatchIndex(text, -1) {
		span := Span{Start: idx[0], End: idx[1]}
		if !spanFree(span, taken) {
			continue
		}
		digits := text[idx[2]:idx[3]]
		if len(digits) != 9 {
			continue
		}
		return Match{Key: r.Key(), Value: digits, Span: span}, true
	}
	return Match{}, false
}

// documentIDRule извлекает номер документа: свободный ряд из 4 и более цифр,
// не занятый правилами ИНН/БИК/суммы и не являющийся началом суммы
type documentIDRule struct{}

func (r *documentIDRule) Key() string { return "document_id" }

func (r *documentIDRule) Find(text string, taken []Span) (Match, bool) {
	for _, idx := range documentIDPattern.FindAllStringSubmatchIndex(text, -1) {
		span := Span{Start: idx[2], End: idx[3]}
		if !spanFree(span, taken) {
			continue
		}
		rest := text[span.End:]
		if magnitudeAfterPattern.MatchString(strings.ToLower(rest)) {
			continue
		}
		return Match{Key: r.Key(), Value: text[span.Start:span.End], Span: span}, true
	}
	return Match{}, false
}
