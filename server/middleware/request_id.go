package middleware

import "context"

type contextKey string

const requestIDKey contextKey = "request_id"

// SetRequestID сохраняет request ID в контексте запроса
func SetRequestID(ctx context.Context, reqID string) context.Context {
	return context.WithValue(ctx, requestIDKey, reqID)
}

// GetRequestID извлекает request ID из контекста запроса
func GetRequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}
