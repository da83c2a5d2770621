package code

// HTTP статус-коды.
const (
	// StatusOK - 200: успех.
	StatusOK = 200
	// StatusBadRequest - 400: ошибка параметров запроса.
	StatusBadRequest = 400
	// StatusNotFound - 404: ресурс не найден.
	StatusNotFound = 404
	// StatusInternalServerError - 500: внутренняя ошибка сервера.
	StatusInternalServerError = 500
	// StatusBadGateway - 502: ошибка внешнего сервиса.
	StatusBadGateway = 502
	// StatusTooManyRequests - 429: слишком много запросов.
	StatusTooManyRequests = 429
)

// Общие коды ошибок (100xxx).
const (
	// ErrSuccess - 200: успех.
	ErrSuccess int = iota + 100000
	// ErrUnknown - 500: неизвестная ошибка.
	ErrUnknown
	// ErrBind - 400: ошибка привязки параметров запроса.
	ErrBind
	// ErrValidation - 400: ошибка валидации параметров запроса.
	ErrValidation
	// ErrTooManyRequests - 429: превышена частота запросов.
	ErrTooManyRequests
)

// Коды ошибок домов и районов (101xxx).
const (
	// ErrRegionNotFound - 404: район не найден.
	ErrRegionNotFound int = iota + 101000
	// ErrHouseNotFound - 404: дом не найден.
	ErrHouseNotFound
	// ErrHouseStatusNotFound - 404: статус дома не найден.
	ErrHouseStatusNotFound
)

// Коды ошибок LLM (102xxx).
const (
	// ErrLLMNotConfigured - 500: ключ OpenRouter не задан.
	ErrLLMNotConfigured int = iota + 102000
	// ErrLLMUpstream - 502: ошибка внешнего LLM сервиса.
	ErrLLMUpstream
	// ErrLLMGeneration - 500: ошибка генерации ответа.
	ErrLLMGeneration
)

// Коды ошибок базы данных (103xxx).
const (
	// ErrDatabase - 500: ошибка базы данных.
	ErrDatabase int = iota + 103000
	// ErrRecordNotFound - 404: запись не найдена.
	ErrRecordNotFound
)
