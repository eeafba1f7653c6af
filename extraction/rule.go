package extraction

// Span полуинтервал [Start, End) в байтах нормализованного текста
type Span struct {
	Start int
	End   int
}

// Overlaps сообщает, пересекаются ли интервалы
func (s Span) Overlaps(other Span) bool {
	return s.Start < other.End && other.Start < s.End
}

// Match найденная сущность: ключ, нормализованное значение и интервал в тексте
type Match struct {
	Key   string
	Value string
	Span  Span
}

// ExtractionRule правило извлечения одной сущности.
// Find возвращает не более одного совпадения, не пересекающегося
// с уже занятыми интервалами taken
type ExtractionRule interface {
	Key() string
	Find(text string, taken []Span) (Match, bool)
}

// Extractor прогоняет правила в порядке приоритета.
// Интервал совпадения правила исключается из поиска всех последующих правил,
// поэтому одна и та же часть текста не попадает в две сущности
type Extractor struct {
	rules []ExtractionRule
}

// NewExtractor создает экстрактор со стандартным набором правил.
// categories - лексикон категорий; nil включает встроенный лексикон
func NewExtractor(categories []string) *Extractor {
	if len(categories) == 0 {
		categories = DefaultCategories()
	}

	return &Extractor{
		rules: []ExtractionRule{
			&customerINNRule{},
			&innRule{},
			&bikRule{},
			&amountRule{},
			&lawRule{},
			&deadlineRule{},
			&documentIDRule{},
			newCategoryRule(categories),
			&companyNameRule{},
			&customerNameRule{},
			&contractNameRule{},
			&ksNameRule{},
		},
	}
}

// Keys возвращает ключи сущностей в порядке приоритета правил
func (e *Extractor) Keys() []string {
	keys := make([]string, 0, len(e.rules))
	for _, rule := range e.rules {
		keys = append(keys, rule.Key())
	}
	return keys
}

// Extract возвращает отображение ключ сущности -> значение.
// Отсутствие совпадения означает отсутствие ключа, пустые значения не пишутся
func (e *Extractor) Extract(text string) map[string]string {
	result := make(map[string]string)
	for _, m := range e.Matches(text) {
		result[m.Key] = m.Value
	}
	return result
}

// Matches возвращает совпадения с интервалами в порядке приоритета правил
func (e *Extractor) Matches(text string) []Match {
	if text == "" {
		return nil
	}

	var taken []Span
	var matches []Match
	for _, rule := range e.rules {
		m, ok := rule.Find(text, taken)
		if !ok || m.Value == "" {
			continue
		}
		taken = append(taken, m.Span)
		matches = append(matches, m)
	}
	return matches
}

// spanFree сообщает, свободен ли интервал от уже занятых
func spanFree(span Span, taken []Span) bool {
	for _, t := range taken {
		if span.Overlaps(t) {
			return false
		}
	}
	return true
}
