package classification

import (
	"errors"
	"sort"
	"sync/atomic"
)

// ErrModelNotInitialized возвращается при попытке классификации
// до загрузки артефакта модели
var ErrModelNotInitialized = errors.New("модель классификации не инициализирована")

// State состояние жизненного цикла классификатора
type State int32

const (
	StateUninitialized State = iota
	StateLoading
	StateReady
)

// String возвращает строковое представление состояния
func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	default:
		return "uninitialized"
	}
}

// Prediction намерение с вероятностью, элемент ранжированного списка
type Prediction struct {
	Intent      string  `json:"intent"`
	IntentName  string  `json:"intent_name"`
	Probability float64 `json:"probability"`
}

// Result результат классификации одного текста
type Result struct {
	Intent         string             `json:"intent"`
	IntentName     string             `json:"intent_name"`
	Confidence     float64            `json:"confidence"`
	Probabilities  map[string]float64 `json:"all_probabilities,omitempty"`
	TopPredictions []Prediction       `json:"top_predictions,omitempty"`
}

// Classifier потокобезопасная обертка над обученной моделью.
// Модель загружается один раз при старте процесса; после перехода
// в состояние Ready все вызовы Classify только читают модель
type Classifier struct {
	state atomic.Int32
	model atomic.Pointer[Model]
}

// NewClassifier создает классификатор в состоянии Uninitialized
func NewClassifier() *Classifier {
	return &Classifier{}
}

// State возвращает текущее состояние классификатора
func (c *Classifier) State() State {
	return State(c.state.Load())
}

// Ready сообщает, загружена ли модель
func (c *Classifier) Ready() bool {
	return c.State() == StateReady
}

// Model возвращает загруженную модель или nil
func (c *Classifier) Model() *Model {
	return c.model.Load()
}

// LoadArtifact загружает артефакт модели из файла.
// Переход Uninitialized -> Loading -> Ready выполняется один раз;
// при ошибке загрузки классификатор возвращается в Uninitialized
func (c *Classifier) LoadArtifact(path string) error {
	c.state.Store(int32(StateLoading))

	model, err := LoadArtifact(path)
	if err != nil {
		c.state.Store(int32(StateUninitialized))
		return err
	}

	c.model.Store(model)
	c.state.Store(int32(StateReady))
	return nil
}

// Use устанавливает уже обученную модель (обход файлового артефакта)
func (c *Classifier) Use(model *Model) error {
	if err := model.Validate(); err != nil {
		return err
	}
	c.model.Store(model)
	c.state.Store(int32(StateReady))
	return nil
}

// Classify классифицирует нормализованный текст.
// Возвращает лучшее намерение (argmax распределения) и его вероятность;
// при detailed дополнительно полное распределение и топ-3 намерений
func (c *Classifier) Classify(normalized string, detailed bool) (*Result, error) {
	model := c.Model()
	if !c.Ready() || model == nil {
		return nil, ErrModelNotInitialized
	}

	tokens := Tokenize(normalized)
	probs := model.Probabilities(tokens)

	best := 0
	for i := 1; i < len(probs); i++ {
		if probs[i] > probs[best] {
			best = i
		}
	}

	result := &Result{
		Intent:     model.Classes[best],
		IntentName: DisplayName(model.Classes[best]),
		Confidence: probs[best],
	}

	if detailed {
		result.Probabilities = make(map[string]float64, len(model.Classes))
		ranked := make([]Prediction, len(model.Classes))
		for i, class := range model.Classes {
			result.Probabilities[class] = probs[i]
			ranked[i] = Prediction{
				Intent:      class,
				IntentName:  DisplayName(class),
				Probability: probs[i],
			}
		}
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].Probability > ranked[j].Probability
		})
		if len(ranked) > 3 {
			ranked = ranked[:3]
		}
		result.TopPredictions = ranked
	}

	return result, nil
}
