package normalization

import "unicode/utf8"

// LevenshteinDistance вычисляет редакционное расстояние между строками
// Работает по рунам, использует две строки матрицы вместо полной
func LevenshteinDistance(a, b string) int {
	if a == b {
		return 0
	}
	if a == "" {
		return utf8.RuneCountInString(b)
	}
	if b == "" {
		return utf8.RuneCountInString(a)
	}

	ra := []rune(a)
	rb := []rune(b)

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)

	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}

// StringSimilarity возвращает схожесть строк в диапазоне [0, 1]
func StringSimilarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	la := utf8.RuneCountInString(a)
	lb := utf8.RuneCountInString(b)
	maxLen := la
	if lb > maxLen {
		maxLen = lb
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(LevenshteinDistance(a, b))/float64(maxLen)
}

// Corrector исправляет опечатки по словарю канонических терминов
type Corrector struct {
	vocabulary []string
	threshold  float64
}

// applyThreshold - минимальная схожесть, при которой замена действительно применяется.
// Порог поиска (threshold) может быть ниже, но замена слова происходит только
// при схожести выше applyThreshold, иначе исправления портят обычные слова.
const applyThreshold = 0.7

// NewCorrector создает корректор с заданным словарем и порогом поиска
func NewCorrector(vocabulary []string, threshold float64) *Corrector {
	if threshold <= 0 {
		threshold = 0.6
	}
	return &Corrector{
		vocabulary: vocabulary,
		threshold:  threshold,
	}
}

// BestMatch находит наиболее похожий термин словаря
// Возвращает термин и схожесть; ok=false если ничего не прошло порог
func (c *Corrector) BestMatch(word string) (string, float64, bool) {
	if c == nil || word == "" {
		return "", 0, false
	}

	best := ""
	bestScore := 0.0
	for _, term := range c.vocabulary {
		score := StringSimilarity(word, term)
		if score > bestScore {
			best = term
			bestScore = score
		}
	}

	if bestScore < c.threshold {
		return "", 0, false
	}
	return best, bestScore, true
}

// CorrectToken возвращает исправленный токен
// Замена применяется только при схожести выше applyThreshold
func (c *Corrector) CorrectToken(word string) string {
	match, score, ok := c.BestMatch(word)
	if !ok || score <= applyThreshold || match == word {
		return word
	}
	return match
}

// VocabularySize возвращает размер словаря корректора
func (c *Corrector) VocabularySize() int {
	if c == nil {
		return 0
	}
	return len(c.vocabulary)
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
