package classification

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// Sample обучающий пример: текст запроса и ожидаемое намерение
type Sample struct {
	Text   string `json:"text"`
	Intent string `json:"intent"`
}

// TrainerConfig параметры обучения
type TrainerConfig struct {
	MaxFeatures int     // максимум термов в словаре
	NGramMin    int     // минимальная длина n-граммы в словах
	NGramMax    int     // максимальная длина n-граммы в словах
	MaxDocRatio float64 // терм отбрасывается, если встречается в большей доле документов
	Alpha       float64 // сглаживание Лапласа
}

// DefaultTrainerConfig возвращает параметры обучения по умолчанию
func DefaultTrainerConfig() TrainerConfig {
	return TrainerConfig{
		MaxFeatures: 2000,
		NGramMin:    1,
		NGramMax:    3,
		MaxDocRatio: 0.8,
		Alpha:       1.0,
	}
}

// Train обучает модель на размеченных примерах.
// normalize применяется к каждому тексту перед токенизацией (nil - без нормализации).
// Классы сортируются по алфавиту, чтобы артефакт был детерминированным
func Train(samples []Sample, normalize func(string) string, cfg TrainerConfig) (*Model, error) {
	if len(samples) < 2 {
		return nil, fmt.Errorf("обучающая выборка слишком мала: %d примеров", len(samples))
	}

	classSet := make(map[string]bool)
	docs := make([][]string, 0, len(samples))
	labels := make([]string, 0, len(samples))
	counts := make(map[string]int)
	for _, s := range samples {
		if s.Text == "" || s.Intent == "" {
			continue
		}
		text := s.Text
		if normalize != nil {
			text = normalize(text)
		}
		docs = append(docs, Tokenize(text))
		labels = append(labels, s.Intent)
		classSet[s.Intent] = true
		counts[s.Intent]++
	}
	if len(classSet) < 2 {
		return nil, fmt.Errorf("обучающая выборка содержит %d класс(ов), нужно минимум 2", len(classSet))
	}

	classes := make([]string, 0, len(classSet))
	for class := range classSet {
		classes = append(classes, class)
	}
	sort.Strings(classes)
	classIndex := make(map[string]int, len(classes))
	for i, class := range classes {
		classIndex[class] = i
	}

	vectorizer := fitVectorizer(docs, cfg.MaxFeatures, cfg.NGramMin, cfg.NGramMax, cfg.MaxDocRatio)
	features := len(vectorizer.IDF)
	if features == 0 {
		return nil, fmt.Errorf("после векторизации не осталось ни одного терма")
	}

	// Накопление TF-IDF весов по классам для мультиномиального Байеса
	featureTotals := make([][]float64, len(classes))
	for i := range featureTotals {
		featureTotals[i] = make([]float64, features)
	}
	for d, tokens := range docs {
		c := classIndex[labels[d]]
		vector := vectorizer.Transform(tokens)
		for _, idx := range sortedIndices(vector) {
			featureTotals[c][idx] += vector[idx]
		}
	}

	featureLogProb := make([][]float64, len(classes))
	for c := range classes {
		var classTotal float64
		for _, w := range featureTotals[c] {
			classTotal += w
		}
		denominator := classTotal + cfg.Alpha*float64(features)
		row := make([]float64, features)
		for idx, w := range featureTotals[c] {
			row[idx] = math.Log((w + cfg.Alpha) / denominator)
		}
		featureLogProb[c] = row
	}

	// Равномерный априор компенсирует несбалансированность классов выборки
	prior := make([]float64, len(classes))
	uniform := math.Log(1.0 / float64(len(classes)))
	for i := range prior {
		prior[i] = uniform
	}

	return &Model{
		Version:        ModelVersion,
		TrainedAt:      time.Now().UTC(),
		Classes:        classes,
		ClassLogPrior:  prior,
		FeatureLogProb: featureLogProb,
		SampleCounts:   counts,
		Vectorizer:     vectorizer,
	}, nil
}
