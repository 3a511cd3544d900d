package logger

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaxRequestIDLength - максимальная длина идентификатора запроса, принятого от клиента.
const MaxRequestIDLength = 64

type requestIDKey struct{}

// ContextWithRequestID кладет в контекст идентификатор запроса.
// Пустой или недопустимый id заменяется новым UUID.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	if !ValidRequestID(id) {
		id = NewRequestID()
	}
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFrom возвращает идентификатор запроса из контекста.
func RequestIDFrom(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok && id != ""
}

// NewRequestID генерирует идентификатор запроса.
func NewRequestID() string {
	return uuid.NewString()
}

// ValidRequestID допускает непустые id до MaxRequestIDLength символов
// из латинских букв, цифр и знаков '-', '_', '.'.
func ValidRequestID(id string) bool {
	if id == "" || len(id) > MaxRequestIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		switch ch := id[i]; {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9':
		case ch == '-', ch == '_', ch == '.':
		default:
			return false
		}
	}
	return true
}

func requestIDField(ctx context.Context) (zap.Field, bool) {
	id, ok := RequestIDFrom(ctx)
	if !ok {
		return zap.Skip(), false
	}
	return zap.String(RequestID, id), true
}

// WithRequestID возвращает logger с полем request_id, если оно есть в ctx.
func (l *Logger) WithRequestID(ctx context.Context) *Logger {
	if field, ok := requestIDField(ctx); ok {
		return l.With(field)
	}
	return l
}
