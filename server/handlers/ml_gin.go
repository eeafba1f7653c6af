package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "intentserver/server/errors"
	"intentserver/server/services"
)

// PredictRequest тело запроса классификации
type PredictRequest struct {
	Text     string `json:"text" binding:"required,min=1,max=1000"`
	Detailed bool   `json:"detailed"`
}

// PredictBatchRequest тело запроса пакетной классификации
type PredictBatchRequest struct {
	Texts []string `json:"texts" binding:"required,min=1,max=10"`
}

// IntentsResponse словарь намерений
type IntentsResponse struct {
	Intents    map[string]string `json:"intents"`
	TotalCount int               `json:"total_count"`
}

// MLHandler обработчики операций классификации
type MLHandler struct {
	service *services.MLService
}

// NewMLHandler создает обработчик операций классификации
func NewMLHandler(service *services.MLService) *MLHandler {
	return &MLHandler{service: service}
}

// HandlePredictGin обработчик классификации текста
// @Summary Классифицировать запрос
// @Description Определяет намерение текста и извлекает сущности
// @Tags ml
// @Accept json
// @Produce json
// @Param request body PredictRequest true "Текст для классификации"
// @Success 200 {object} services.PredictionResult "Результат классификации"
// @Failure 400 {object} ErrorResponse "Неверный запрос"
// @Failure 503 {object} ErrorResponse "Модель не инициализирована"
// @Router /api/ml/predict [post]
func (h *MLHandler) HandlePredictGin(c *gin.Context) {
	var req PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperrors.NewValidationError("неверный формат тела запроса", err)
		SendJSONError(c, appErr.StatusCode(), appErr.UserMessage())
		return
	}

	result, err := h.service.Predict(req.Text, req.Detailed)
	if err != nil {
		SendAppError(c, err)
		return
	}

	SendJSONResponse(c, http.StatusOK, result)
}

// HandlePredictBatchGin обработчик пакетной классификации
// @Summary Классифицировать несколько запросов
// @Description Классифицирует от 1 до 10 текстов, порядок результатов сохраняется
// @Tags ml
// @Accept json
// @Produce json
// @Param request body PredictBatchRequest true "Тексты для классификации"
// @Success 200 {object} services.BatchResult "Результаты классификации"
// @Failure 400 {object} ErrorResponse "Неверный запрос"
// @Failure 503 {object} ErrorResponse "Модель не инициализирована"
// @Router /api/ml/predict/batch [post]
func (h *MLHandler) HandlePredictBatchGin(c *gin.Context) {
	var req PredictBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperrors.NewValidationError("неверный формат тела запроса", err)
		SendJSONError(c, appErr.StatusCode(), appErr.UserMessage())
		return
	}

	result, err := h.service.PredictBatch(req.Texts)
	if err != nil {
		SendAppError(c, err)
		return
	}

	SendJSONResponse(c, http.StatusOK, result)
}

// HandleModelInfoGin обработчик информации о модели
// @Summary Информация о модели
// @Description Возвращает состояние модели, намерения и шаблоны сущностей
// @Tags ml
// @Produce json
// @Success 200 {object} services.ModelInfo "Информация о модели"
// @Router /api/ml/info [get]
func (h *MLHandler) HandleModelInfoGin(c *gin.Context) {
	SendJSONResponse(c, http.StatusOK, h.service.ModelInfo())
}

// HandleIntentsGin обработчик словаря намерений
// @Summary Словарь намерений
// @Description Возвращает отображение код намерения -> человекочитаемое имя
// @Tags ml
// @Produce json
// @Success 200 {object} IntentsResponse "Словарь намерений"
// @Router /api/ml/intents [get]
func (h *MLHandler) HandleIntentsGin(c *gin.Context) {
	intents := h.service.IntentsDictionary()
	SendJSONResponse(c, http.StatusOK, IntentsResponse{
		Intents:    intents,
		TotalCount: len(intents),
	})
}

// HandleHealthGin обработчик проверки работоспособности модели
// @Summary Проверка модели
// @Description Выполняет контрольную классификацию для проверки модели
// @Tags ml
// @Produce json
// @Success 200 {object} services.HealthStatus "Состояние модели"
// @Failure 503 {object} services.HealthStatus "Модель недоступна"
// @Router /api/ml/health [get]
func (h *MLHandler) HandleHealthGin(c *gin.Context) {
	health := h.service.Health()
	status := http.StatusOK
	if health.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}
	SendJSONResponse(c, status, health)
}
