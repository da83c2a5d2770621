package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Vdyuk/forecast-MVC/config"
)

const (
	openRouterURL = "https://openrouter.ai/api/v1/chat/completions"
	llmModel      = "deepseek/deepseek-chat-v3.1:free"

	llmTemperature  = 0.3
	llmTimeout      = 30 * time.Second
	houseMaxTokens  = 1500
	regionMaxTokens = 500
)

const housePromptTemplate = `Ты — эксперт по мониторингу ГВС. Ответь кратко на русском языке.

Названия статусов нужно возвращать на русском Repair - В ремонте, New - Новый, Resolved - Решен. Work - В работе. None - Статус не задан.

Ответ должен быть кратким и не превышать 1000 токенов. Если информация объёмная — сожми её, сохранив суть.

Если вопрос не относится к теме ГВС или дома — вежливо откажись отвечать.

ИНСТРУКЦИИ:
- Не выдумывай данные.
- Если информации недостаточно — скажи: "Недостаточно данных".
- Используй Markdown: **жирный** для заголовков, списки для перечислений.

Данные: %s

Вопрос: "%s"
`

const regionPromptTemplate = `Ты — эксперт по мониторингу ГВС. Ответь кратко на русском языке.
Ответ должен быть кратким и не превышать 1000 токенов. Если информация объёмная — сожми её, сохранив суть.
Если вопрос не относится к теме ГВС или дома — вежливо откажись отвечать.
ИНСТРУКЦИИ:
- Не выдумывай данные.
- Если информации недостаточно — скажи: "Недостаточно данных".
- Используй Markdown: **жирный** для заголовков, списки для перечислений.
КОНТЕКСТ:
%s
ВОПРОС:
"%s"
`

// InterfaceLLMService определяет интерфейс шлюза к LLM
type InterfaceLLMService interface {
	AskAboutHouse(contextBlock, question string) (string, error)
	AskAboutRegion(contextBlock, question string) (string, error)
}

// LLMService отправляет запросы в OpenRouter
type LLMService struct {
	Config  *config.Config
	BaseURL string // переопределяется в тестах
	Client  *http.Client
}

// NewLLMService создаёт шлюз к OpenRouter
func NewLLMService(cfg *config.Config) *LLMService {
	return &LLMService{
		Config:  cfg,
		BaseURL: openRouterURL,
		Client:  &http.Client{Timeout: llmTimeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type chatErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// AskAboutHouse задаёт вопрос о конкретном доме
func (s *LLMService) AskAboutHouse(contextBlock, question string) (string, error) {
	prompt := fmt.Sprintf(housePromptTemplate, contextBlock, question)
	return s.complete(prompt, houseMaxTokens)
}

// AskAboutRegion задаёт вопрос о районе в целом
func (s *LLMService) AskAboutRegion(contextBlock, question string) (string, error) {
	prompt := fmt.Sprintf(regionPromptTemplate, contextBlock, question)
	return s.complete(prompt, regionMaxTokens)
}

func (s *LLMService) complete(prompt string, maxTokens int) (string, error) {
	if s.Config.OpenRouterAPIKey == "" {
		return "", ErrLLMNotConfigured
	}

	payload, err := json.Marshal(chatRequest{
		Model:       llmModel,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: llmTemperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest(http.MethodPost, s.BaseURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+s.Config.OpenRouterAPIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		var errResp chatErrorResponse
		msg := "Unknown error"
		if json.Unmarshal(body, &errResp) == nil && errResp.Error.Message != "" {
			msg = errResp.Error.Message
		}
		config.Error("OpenRouter %d: %s", resp.StatusCode, msg)
		return "", &UpstreamError{Status: resp.StatusCode, Message: msg}
	}

	var chat chatResponse
	if err := json.Unmarshal(body, &chat); err != nil {
		return "", err
	}
	if len(chat.Choices) == 0 {
		return "", fmt.Errorf("пустой ответ OpenRouter")
	}
	return strings.TrimSpace(chat.Choices[0].Message.Content), nil
}
