package classification

import (
	"math"
	"sort"
)

// Vectorizer переводит токены в разреженный TF-IDF вектор.
// Словарь и IDF фиксируются при обучении и не меняются при инференсе
type Vectorizer struct {
	Vocabulary  map[string]int `json:"vocabulary"`
	IDF         []float64      `json:"idf"`
	NGramMin    int            `json:"ngram_min"`
	NGramMax    int            `json:"ngram_max"`
	MaxFeatures int            `json:"max_features"`
	MaxDocRatio float64        `json:"max_doc_ratio"`
}

// fitVectorizer строит словарь по корпусу токенизированных документов.
// Термы, встречающиеся более чем в maxDocRatio документов, отбрасываются;
// остаются maxFeatures самых частых (при равенстве - в алфавитном порядке)
func fitVectorizer(docs [][]string, maxFeatures, ngramMin, ngramMax int, maxDocRatio float64) *Vectorizer {
	docFreq := make(map[string]int)
	for _, tokens := range docs {
		seen := make(map[string]bool)
		for _, gram := range NGrams(tokens, ngramMin, ngramMax) {
			if !seen[gram] {
				seen[gram] = true
				docFreq[gram]++
			}
		}
	}

	total := len(docs)
	maxDF := int(maxDocRatio * float64(total))
	if maxDF < 1 {
		maxDF = total
	}

	type termFreq struct {
		term string
		df   int
	}
	terms := make([]termFreq, 0, len(docFreq))
	for term, df := range docFreq {
		if total > 1 && df > maxDF {
			continue
		}
		terms = append(terms, termFreq{term: term, df: df})
	}

	sort.Slice(terms, func(i, j int) bool {
		if terms[i].df != terms[j].df {
			return terms[i].df > terms[j].df
		}
		return terms[i].term < terms[j].term
	})
	if maxFeatures > 0 && len(terms) > maxFeatures {
		terms = terms[:maxFeatures]
	}

	vocabulary := make(map[string]int, len(terms))
	idf := make([]float64, len(terms))
	for i, tf := range terms {
		vocabulary[tf.term] = i
		idf[i] = math.Log(float64(1+total)/float64(1+tf.df)) + 1
	}

	return &Vectorizer{
		Vocabulary:  vocabulary,
		IDF:         idf,
		NGramMin:    ngramMin,
		NGramMax:    ngramMax,
		MaxFeatures: maxFeatures,
		MaxDocRatio: maxDocRatio,
	}
}

// Transform возвращает L2-нормированный разреженный TF-IDF вектор.
// Норма считается по возрастанию индексов, чтобы сумма квадратов
// не зависела от порядка обхода map
func (v *Vectorizer) Transform(tokens []string) map[int]float64 {
	vector := make(map[int]float64)
	for _, gram := range NGrams(tokens, v.NGramMin, v.NGramMax) {
		if idx, ok := v.Vocabulary[gram]; ok {
			vector[idx] += v.IDF[idx]
		}
	}

	indices := sortedIndices(vector)
	var sumSquares float64
	for _, idx := range indices {
		sumSquares += vector[idx] * vector[idx]
	}
	if sumSquares > 0 {
		norm := math.Sqrt(sumSquares)
		for _, idx := range indices {
			vector[idx] /= norm
		}
	}
	return vector
}

// sortedIndices возвращает индексы разреженного вектора по возрастанию
func sortedIndices(vector map[int]float64) []int {
	indices := make([]int, 0, len(vector))
	for idx := range vector {
		indices = append(indices, idx)
	}
	sort.Ints(indices)
	return indices
}
