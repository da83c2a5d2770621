package code

// Сообщения для кодов ошибок
var codeMessageMap = map[int]string{
	// Общие коды
	ErrSuccess:         "Успех",
	ErrUnknown:         "Неизвестная ошибка",
	ErrBind:            "Ошибка привязки параметров запроса",
	ErrValidation:      "Ошибка валидации параметров запроса",
	ErrTooManyRequests: "Слишком много запросов, попробуйте позже",

	// Дома и районы
	ErrRegionNotFound:      "Район не найден",
	ErrHouseNotFound:       "Дом не найден",
	ErrHouseStatusNotFound: "Статус дома не найден",

	// LLM
	ErrLLMNotConfigured: "OPENROUTER_API_KEY не задан",
	ErrLLMUpstream:      "Ошибка внешнего LLM сервиса",
	ErrLLMGeneration:    "Ошибка генерации ответа",

	// База данных
	ErrDatabase:       "Ошибка базы данных",
	ErrRecordNotFound: "Запись не найдена",
}

// HTTP статусы для кодов ошибок
var codeStatusMap = map[int]int{
	ErrSuccess:         StatusOK,
	ErrUnknown:         StatusInternalServerError,
	ErrBind:            StatusBadRequest,
	ErrValidation:      StatusBadRequest,
	ErrTooManyRequests: StatusTooManyRequests,

	ErrRegionNotFound:      StatusNotFound,
	ErrHouseNotFound:       StatusNotFound,
	ErrHouseStatusNotFound: StatusNotFound,

	ErrLLMNotConfigured: StatusInternalServerError,
	ErrLLMUpstream:      StatusBadGateway,
	ErrLLMGeneration:    StatusInternalServerError,

	ErrDatabase:       StatusInternalServerError,
	ErrRecordNotFound: StatusNotFound,
}

// GetMessage возвращает сообщение для кода ошибки
func GetMessage(code int) string {
	if msg, ok := codeMessageMap[code]; ok {
		return msg
	}
	return "Неизвестная ошибка"
}

// GetStatus возвращает HTTP статус для кода ошибки
func GetStatus(code int) int {
	if status, ok := codeStatusMap[code]; ok {
		return status
	}
	return StatusInternalServerError
}
