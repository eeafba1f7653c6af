package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "intentserver/server/errors"
	"intentserver/server/services"
)

// AnalyzeRequest тело запроса составного анализа
type AnalyzeRequest struct {
	Text     string `json:"text" binding:"required,min=1,max=1000"`
	Detailed bool   `json:"detailed"`
}

// CompleteRequest тело запроса дозаполнения данных
type CompleteRequest struct {
	DataType       string            `json:"data_type" binding:"required"`
	ProvidedData   map[string]string `json:"provided_data"`
	AdditionalData map[string]string `json:"additional_data"`
}

// AssistantHandler обработчики составных операций ассистента
type AssistantHandler struct {
	service *services.MLService
}

// NewAssistantHandler создает обработчик операций ассистента
func NewAssistantHandler(service *services.MLService) *AssistantHandler {
	return &AssistantHandler{service: service}
}

// HandleAnalyzeGin обработчик анализа запроса
// @Summary Проанализировать запрос
// @Description Классифицирует запрос, извлекает сущности и строит типизированный ответ
// @Tags assistant
// @Accept json
// @Produce json
// @Param request body AnalyzeRequest true "Текст запроса"
// @Success 200 {object} dialogue.AnalysisResult "Результат анализа"
// @Failure 400 {object} ErrorResponse "Неверный запрос"
// @Failure 503 {object} ErrorResponse "Модель не инициализирована"
// @Router /api/assistant/analyze [post]
func (h *AssistantHandler) HandleAnalyzeGin(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperrors.NewValidationError("неверный формат тела запроса", err)
		SendJSONError(c, appErr.StatusCode(), appErr.UserMessage())
		return
	}

	result, err := h.service.Analyze(req.Text, req.Detailed)
	if err != nil {
		SendAppError(c, err)
		return
	}

	SendJSONResponse(c, http.StatusOK, result)
}

// HandleCompleteGin обработчик дозаполнения данных
// @Summary Дозаполнить данные
// @Description Сливает новые данные с накопленными и возвращает незаполненные поля
// @Tags assistant
// @Accept json
// @Produce json
// @Param request body CompleteRequest true "Данные для дозаполнения"
// @Success 200 {object} dialogue.CompletionResult "Результат дозаполнения"
// @Failure 400 {object} ErrorResponse "Неподдерживаемый тип данных"
// @Router /api/assistant/complete [post]
func (h *AssistantHandler) HandleCompleteGin(c *gin.Context) {
	var req CompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperrors.NewValidationError("неверный формат тела запроса", err)
		SendJSONError(c, appErr.StatusCode(), appErr.UserMessage())
		return
	}

	result, err := h.service.CompleteData(req.DataType, req.ProvidedData, req.AdditionalData)
	if err != nil {
		SendAppError(c, err)
		return
	}

	SendJSONResponse(c, http.StatusOK, result)
}
