package handlers

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"

	apperrors "intentserver/server/errors"
	"intentserver/server/middleware"
)

// ErrorResponse тело JSON ошибки
type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// SendJSONResponse отправляет JSON ответ через Gin context
func SendJSONResponse(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// SendJSONError отправляет JSON ошибку через Gin context и логирует её
func SendJSONError(c *gin.Context, statusCode int, message string) {
	reqID := middleware.GetRequestIDFromGin(c)

	slog.Error("Gin HTTP error",
		"error", message,
		"status_code", statusCode,
		"request_id", reqID,
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	)

	c.JSON(statusCode, ErrorResponse{
		Error:   true,
		Message: message,
	})
}

// SendAppError отправляет ошибку приложения с ее HTTP статусом.
// Неизвестные ошибки отдаются как 500 с общим сообщением
func SendAppError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		SendJSONError(c, appErr.StatusCode(), appErr.UserMessage())
		return
	}
	SendJSONError(c, 500, "Внутренняя ошибка сервера")
}
