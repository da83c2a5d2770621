package services

import (
	"errors"
	"fmt"
)

// Ошибки уровня сервисов, пробрасываемые в контроллеры
var (
	ErrHouseNotFound       = errors.New("дом не найден")
	ErrHouseStatusNotFound = errors.New("статус дома не найден")
	ErrRegionNotFound      = errors.New("район не найден")
	ErrLLMNotConfigured    = errors.New("OPENROUTER_API_KEY не задан")
)

// UpstreamError — ошибка внешнего LLM-шлюза с HTTP-статусом ответа
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("ошибка OpenRouter (%d): %s", e.Status, e.Message)
}
