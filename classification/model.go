package classification

import (
	"fmt"
	"math"
	"time"
)

// ModelVersion версия формата артефакта модели
const ModelVersion = 1

// Model обученная модель классификации намерений: TF-IDF векторизация
// и мультиномиальный наивный Байес. После загрузки модель неизменяема
// и безопасна для одновременного использования из многих горутин
type Model struct {
	Version        int            `json:"version"`
	TrainedAt      time.Time      `json:"trained_at"`
	Classes        []string       `json:"classes"`
	ClassLogPrior  []float64      `json:"class_log_prior"`
	FeatureLogProb [][]float64    `json:"feature_log_prob"`
	SampleCounts   map[string]int `json:"sample_counts"`
	Vectorizer     *Vectorizer    `json:"vectorizer"`
}

// Validate проверяет целостность загруженного артефакта
func (m *Model) Validate() error {
	if m == nil {
		return fmt.Errorf("model is nil")
	}
	if len(m.Classes) < 2 {
		return fmt.Errorf("model has %d classes, need at least 2", len(m.Classes))
	}
	if m.Vectorizer == nil || len(m.Vectorizer.Vocabulary) == 0 {
		return fmt.Errorf("model vectorizer is empty")
	}
	if len(m.ClassLogPrior) != len(m.Classes) {
		return fmt.Errorf("class prior size %d does not match %d classes", len(m.ClassLogPrior), len(m.Classes))
	}
	if len(m.FeatureLogProb) != len(m.Classes) {
		return fmt.Errorf("feature matrix has %d rows for %d classes", len(m.FeatureLogProb), len(m.Classes))
	}
	features := len(m.Vectorizer.IDF)
	for i, row := range m.FeatureLogProb {
		if len(row) != features {
			return fmt.Errorf("feature row %d has %d columns, expected %d", i, len(row), features)
		}
	}
	return nil
}

// Probabilities возвращает апостериорное распределение по классам.
// Сумма вероятностей равна 1; порядок соответствует Classes.
// Суммирование идет по возрастанию индексов: сложение float неассоциативно,
// обход map давал бы чуть разные суммы от вызова к вызову
func (m *Model) Probabilities(tokens []string) []float64 {
	vector := m.Vectorizer.Transform(tokens)
	indices := sortedIndices(vector)

	scores := make([]float64, len(m.Classes))
	for c := range m.Classes {
		score := m.ClassLogPrior[c]
		for _, idx := range indices {
			score += vector[idx] * m.FeatureLogProb[c][idx]
		}
		scores[c] = score
	}

	return softmaxFromLogs(scores)
}

// softmaxFromLogs нормирует логарифмические оценки через log-sum-exp,
// избегая переполнения при больших по модулю значениях
func softmaxFromLogs(scores []float64) []float64 {
	maxScore := math.Inf(-1)
	for _, s := range scores {
		if s > maxScore {
			maxScore = s
		}
	}

	probs := make([]float64, len(scores))
	var sum float64
	for i, s := range scores {
		probs[i] = math.Exp(s - maxScore)
		sum += probs[i]
	}
	if sum == 0 {
		uniform := 1.0 / float64(len(scores))
		for i := range probs {
			probs[i] = uniform
		}
		return probs
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}
