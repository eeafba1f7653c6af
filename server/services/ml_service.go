package services

import (
	"errors"
	"log/slog"
	"time"
	"unicode/utf8"

	"intentserver/classification"
	"intentserver/database"
	"intentserver/dialogue"
	"intentserver/extraction"
	"intentserver/normalization"
	apperrors "intentserver/server/errors"
)

// Ограничения входных данных
const (
	MaxTextLength = 1000
	MaxBatchSize  = 10
)

// healthProbeText канонический текст для проверки живости модели
const healthProbeText = "тест"

// PredictionResult результат классификации одного текста
type PredictionResult struct {
	OriginalText   string                      `json:"original_text"`
	ProcessedText  string                      `json:"processed_text"`
	Intent         string                      `json:"intent"`
	IntentName     string                      `json:"intent_name"`
	Confidence     float64                     `json:"confidence"`
	Entities       map[string]string           `json:"entities"`
	Timestamp      string                      `json:"timestamp"`
	Probabilities  map[string]float64          `json:"all_probabilities,omitempty"`
	TopPredictions []classification.Prediction `json:"top_predictions,omitempty"`
	Error          string                      `json:"error,omitempty"`
}

// BatchResult результат пакетной классификации
type BatchResult struct {
	Results        []*PredictionResult `json:"results"`
	TotalProcessed int                 `json:"total_processed"`
}

// ModelInfo диагностическая информация о модели
type ModelInfo struct {
	IsTrained                bool           `json:"is_trained"`
	Intents                  []string       `json:"intents"`
	IntentNames              []string       `json:"intent_names"`
	CorrectionDictionarySize int            `json:"correction_dictionary_size"`
	EntityPatterns           []string       `json:"entity_patterns"`
	TrainedAt                string         `json:"trained_at,omitempty"`
	SampleCounts             map[string]int `json:"sample_counts,omitempty"`
}

// HealthStatus результат проверки работоспособности модели
type HealthStatus struct {
	Status         string `json:"status"` // healthy | unavailable
	Message        string `json:"message"`
	TestPrediction string `json:"test_prediction,omitempty"`
}

// MLService объединяет текстовый конвейер и хранилище истории.
// Все компоненты неизменяемы после старта, сервис безопасен
// для одновременного использования из многих горутин
type MLService struct {
	normalizer *normalization.Normalizer
	extractor  *extraction.Extractor
	classifier *classification.Classifier
	analyzer   *dialogue.Analyzer
	history    *database.HistoryDB
}

// NewMLService создает сервис поверх готовых компонентов.
// history может быть nil - история тогда не ведется
func NewMLService(
	normalizer *normalization.Normalizer,
	extractor *extraction.Extractor,
	classifier *classification.Classifier,
	history *database.HistoryDB,
) *MLService {
	return &MLService{
		normalizer: normalizer,
		extractor:  extractor,
		classifier: classifier,
		analyzer:   dialogue.NewAnalyzer(normalizer, extractor, classifier),
		history:    history,
	}
}

// Predict классифицирует один текст и извлекает сущности
func (s *MLService) Predict(text string, detailed bool) (*PredictionResult, error) {
	if err := validateText(text); err != nil {
		return nil, err
	}

	start := time.Now()
	normalized := s.normalizer.Normalize(text)

	classified, err := s.classifier.Classify(normalized, detailed)
	if err != nil {
		return nil, classificationError(err)
	}

	entities := s.extractor.Extract(normalized)

	result := &PredictionResult{
		OriginalText:   text,
		ProcessedText:  normalized,
		Intent:         classified.Intent,
		IntentName:     classified.IntentName,
		Confidence:     classified.Confidence,
		Entities:       entities,
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
		Probabilities:  classified.Probabilities,
		TopPredictions: classified.TopPredictions,
	}

	s.recordQuery(text, classified.Intent, classified.Confidence, time.Since(start))
	return result, nil
}

// PredictBatch классифицирует до 10 текстов за один вызов.
// Порядок результатов совпадает с порядком входных текстов;
// сбой одного элемента не прерывает обработку остальных
func (s *MLService) PredictBatch(texts []string) (*BatchResult, error) {
	if len(texts) == 0 {
		return nil, apperrors.NewValidationError("список текстов пуст", nil)
	}
	if len(texts) > MaxBatchSize {
		return nil, apperrors.NewValidationError("за один запрос можно обработать не более 10 текстов", nil)
	}

	results := make([]*PredictionResult, 0, len(texts))
	processed := 0
	for _, text := range texts {
		result, err := s.Predict(text, false)
		if err != nil {
			var appErr *apperrors.AppError
			if errors.As(err, &appErr) && appErr.Code == 503 {
				// Без модели нет смысла продолжать пакет
				return nil, err
			}
			results = append(results, &PredictionResult{
				OriginalText: text,
				Intent:       classification.IntentError,
				IntentName:   classification.DisplayName(classification.IntentError),
				Confidence:   0.0,
				Entities:     map[string]string{},
				Timestamp:    time.Now().UTC().Format(time.RFC3339),
				Error:        err.Error(),
			})
			continue
		}
		results = append(results, result)
		processed++
	}

	return &BatchResult{Results: results, TotalProcessed: processed}, nil
}

// ModelInfo возвращает диагностическую информацию без побочных эффектов
func (s *MLService) ModelInfo() *ModelInfo {
	info := &ModelInfo{
		IsTrained:                s.classifier.Ready(),
		Intents:                  classification.Intents(),
		CorrectionDictionarySize: s.normalizer.DictionarySize(),
		EntityPatterns:           s.extractor.Keys(),
	}

	for _, code := range info.Intents {
		info.IntentNames = append(info.IntentNames, classification.DisplayName(code))
	}

	if model := s.classifier.Model(); model != nil {
		info.TrainedAt = model.TrainedAt.Format(time.RFC3339)
		info.SampleCounts = model.SampleCounts
	}
	return info
}

// IntentsDictionary возвращает статическое отображение код -> имя намерения
func (s *MLService) IntentsDictionary() map[string]string {
	return classification.IntentNames()
}

// Health выполняет одну контрольную классификацию,
// подтверждая что модель загружена и отвечает
func (s *MLService) Health() *HealthStatus {
	if !s.classifier.Ready() {
		return &HealthStatus{
			Status:  "unavailable",
			Message: "Модель классификации не загружена",
		}
	}

	normalized := s.normalizer.Normalize(healthProbeText)
	result, err := s.classifier.Classify(normalized, false)
	if err != nil {
		return &HealthStatus{
			Status:  "unavailable",
			Message: "Модель не отвечает: " + err.Error(),
		}
	}

	return &HealthStatus{
		Status:         "healthy",
		Message:        "Модель загружена и отвечает",
		TestPrediction: result.IntentName,
	}
}

// Analyze выполняет составной анализ запроса: классификация,
// извлечение сущностей и диспетчеризация по намерению
func (s *MLService) Analyze(text string, detailed bool) (*dialogue.AnalysisResult, error) {
	if err := validateText(text); err != nil {
		return nil, err
	}

	start := time.Now()
	result, err := s.analyzer.Analyze(text, detailed)
	if err != nil {
		return nil, classificationError(err)
	}

	s.recordQuery(text, result.MLData.Intent, result.MLData.Confidence, time.Since(start))
	return result, nil
}

// CompleteData выполняет один шаг протокола дозаполнения данных
func (s *MLService) CompleteData(dataType string, provided, additional map[string]string) (*dialogue.CompletionResult, error) {
	result, err := dialogue.Complete(dataType, provided, additional)
	if err != nil {
		if errors.Is(err, dialogue.ErrUnknownDataType) {
			return nil, apperrors.NewValidationError(err.Error(), nil)
		}
		return nil, apperrors.NewInternalError("сбой протокола дозаполнения", err)
	}
	return result, nil
}

// recordQuery асинхронно пишет запись истории; сбои записи
// логируются и никогда не влияют на ответ пользователю
func (s *MLService) recordQuery(text, intent string, confidence float64, duration time.Duration) {
	if s.history == nil {
		return
	}

	record := database.QueryRecord{
		Text:       text,
		Intent:     intent,
		Confidence: confidence,
		Duration:   duration,
	}
	go func() {
		if err := s.history.SaveQuery(record); err != nil {
			slog.Error("не удалось сохранить запись истории запросов", "error", err)
		}
	}()
}

func validateText(text string) error {
	if text == "" {
		return apperrors.NewValidationError("текст запроса не может быть пустым", nil)
	}
	if utf8.RuneCountInString(text) > MaxTextLength {
		return apperrors.NewValidationError("текст запроса длиннее 1000 символов", nil)
	}
	return nil
}

// classificationError переводит ошибки классификатора в ошибки приложения
func classificationError(err error) error {
	if errors.Is(err, classification.ErrModelNotInitialized) {
		return apperrors.NewServiceUnavailableError("модель классификации не инициализирована", err)
	}
	return apperrors.NewInternalError("сбой классификации", err)
}
