package extraction

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	lawPattern      = regexp.MustCompile(`(?:(44|223)\s*-?\s*фз|фз\s*-?\s*(44|223))`)
	deadlinePattern = regexp.MustCompile(`(?:^|[^0-9])([0-9]{1,2}[./][0-9]{1,2}[./][0-9]{2,4})(?:[^0-9]|$)`)
	companyPattern  = regexp.MustCompile(`(?:компани[а-яё]*|фирм[а-яё]*|организаци[а-яё]*)\s+(.+)`)
	orgFormPattern  = regexp.MustCompile(`(?:^|[^а-яё])((?:ооо|оао|пао|зао|ип|ао|гуп|муп)\s+.+)`)
	contractPattern = regexp.MustCompile(`(?:контракт[а-яё]*|договор[а-яё]*)\s+(?:на|для|о)\s+(.+)`)
	ksPattern       = regexp.MustCompile(`(?:^|[^а-яё])(?:кс|котировочн[а-яё]*\s+сесси[а-яё]*|сесси[а-яё]*)\s+(?:на|для|о)\s+(.+)`)

	// Токены, на которых обрывается захват свободного названия
	nameStopTokens = map[string]bool{
		"инн": true, "бик": true, "на": true, "с": true, "по": true,
		"за": true, "стоимостью": true, "и": true,
	}
	nameStopPrefixes = []string{"сумм", "руб", "тыс", "млн", "цен", "бюджет"}
)

// lawRule извлекает основание закупки: 44-ФЗ или 223-ФЗ
type lawRule struct{}

func (r *lawRule) Key() string { return "law" }

func (r *lawRule) Find(text string, taken []Span) (Match, bool) {
	for _, idx := range lawPattern.FindAllStringSubmatchIndex(text, -1) {
		span := Span{Start: idx[0], End: idx[1]}
		if !spanFree(span, taken) {
			continue
		}
		number := submatch(text, idx, 1)
		if number == "" {
			number = submatch(text, idx, 2)
		}
		return Match{Key: r.Key(), Value: number + "-ФЗ", Span: span}, true
	}
	return Match{}, false
}

// deadlineRule извлекает дату вида 12.05.2024 или 12/05/24
type deadlineRule struct{}

func (r *deadlineRule) Key() string { return "deadline" }

func (r *deadlineRule) Find(text string, taken []Span) (Match, bool) {
	for _, idx := range deadlinePattern.FindAllStringSubmatchIndex(text, -1) {
		span := Span{Start: idx[2], End: idx[3]}
		if !spanFree(span, taken) {
			continue
		}
		value := strings.ReplaceAll(text[span.Start:span.End], "/", ".")
		return Match{Key: r.Key(), Value: value, Span: span}, true
	}
	return Match{}, false
}

// categoryRule ищет термин из лексикона категорий, первый найденный побеждает
type categoryRule struct {
	lexicon []string
}

func newCategoryRule(lexicon []string) *categoryRule {
	return &categoryRule{lexicon: lexicon}
}

func (r *categoryRule) Key() string { return "category" }

func (r *categoryRule) Find(text string, taken []Span) (Match, bool) {
	for _, term := range r.lexicon {
		start := strings.Index(text, term)
		if start < 0 {
			continue
		}
		if !tokenBoundaryBefore(text, start) {
			continue
		}
		span := Span{Start: start, End: start + len(term)}
		if !spanFree(span, taken) {
			continue
		}
		return Match{Key: r.Key(), Value: term, Span: span}, true
	}
	return Match{}, false
}

// companyNameRule извлекает название компании после слов "компания", "фирма"
type companyNameRule struct{}

func (r *companyNameRule) Key() string { return "company_name" }

func (r *companyNameRule) Find(text string, taken []Span) (Match, bool) {
	return findNameMatch(companyPattern, r.Key(), text, taken)
}

// customerNameRule извлекает название организации по организационно-правовой
// форме: ООО, ОАО, ПАО, ЗАО, АО, ИП и далее до стоп-токена или конца текста
type customerNameRule struct{}

func (r *customerNameRule) Key() string { return "customer_name" }

func (r *customerNameRule) Find(text string, taken []Span) (Match, bool) {
	return findNameMatch(orgFormPattern, r.Key(), text, taken)
}

// contractNameRule извлекает предмет контракта: "контракт на <предмет>"
type contractNameRule struct{}

func (r *contractNameRule) Key() string { return "contract_name" }

func (r *contractNameRule) Find(text string, taken []Span) (Match, bool) {
	return findNameMatch(contractPattern, r.Key(), text, taken)
}

// ksNameRule извлекает предмет котировочной сессии
type ksNameRule struct{}

func (r *ksNameRule) Key() string { return "ks_name" }

func (r *ksNameRule) Find(text string, taken []Span) (Match, bool) {
	return findNameMatch(ksPattern, r.Key(), text, taken)
}

// findNameMatch применяет шаблон свободного названия и обрезает захват
// по стоп-токенам, числам и уже занятым интервалам
func findNameMatch(pattern *regexp.Regexp, key, text string, taken []Span) (Match, bool) {
	for _, idx := range pattern.FindAllStringSubmatchIndex(text, -1) {
		capStart := idx[2]
		if capStart < 0 {
			continue
		}
		value, end := trimNameCapture(text, capStart, idx[3], taken)
		if value == "" {
			continue
		}
		span := Span{Start: capStart, End: end}
		if !spanFree(span, taken) {
			continue
		}
		return Match{Key: key, Value: value, Span: span}, true
	}
	return Match{}, false
}

// trimNameCapture обрезает захваченный фрагмент на первом стоп-токене,
// числовом токене или границе занятого интервала
func trimNameCapture(text string, start, end int, taken []Span) (string, int) {
	for _, t := range taken {
		if t.Start >= start && t.Start < end {
			end = t.Start
		}
	}

	captured := text[start:end]
	words := strings.Fields(captured)
	kept := make([]string, 0, len(words))
	consumed := 0
	searchFrom := 0
	for _, word := range words {
		token := strings.Trim(word, `"',.`)
		if token == "" || nameStopToken(token) {
			break
		}
		kept = append(kept, word)
		wordPos := strings.Index(captured[searchFrom:], word)
		if wordPos >= 0 {
			consumed = searchFrom + wordPos + len(word)
			searchFrom = consumed
		}
	}
	if len(kept) == 0 {
		return "", start
	}

	value := strings.Join(kept, " ")
	value = strings.Trim(value, `"',. `)
	value = strings.Join(strings.Fields(value), " ")
	if len([]rune(value)) < 3 {
		return "", start
	}
	return value, start + consumed
}

func nameStopToken(token string) bool {
	if nameStopTokens[token] {
		return true
	}
	for _, prefix := range nameStopPrefixes {
		if strings.HasPrefix(token, prefix) {
			return true
		}
	}
	for _, r := range token {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// tokenBoundaryBefore проверяет, что перед позицией нет буквы или цифры
func tokenBoundaryBefore(text string, pos int) bool {
	if pos == 0 {
		return true
	}
	runes := []rune(text[:pos])
	last := runes[len(runes)-1]
	return !unicode.IsLetter(last) && !unicode.IsDigit(last)
}

func submatch(text string, idx []int, group int) string {
	start, end := idx[2*group], idx[2*group+1]
	if start < 0 || end < 0 {
		return ""
	}
	return text[start:end]
}
