package services

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Vdyuk/forecast-MVC/config"
)

func newLLMWithServer(t *testing.T, handler http.HandlerFunc) *LLMService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc := NewLLMService(&config.Config{OpenRouterAPIKey: "test-key"})
	svc.BaseURL = server.URL
	return svc
}

func TestLLMNotConfigured(t *testing.T) {
	svc := NewLLMService(&config.Config{})
	_, err := svc.AskAboutHouse("контекст", "вопрос")
	if !errors.Is(err, ErrLLMNotConfigured) {
		t.Fatalf("ожидалась ErrLLMNotConfigured, получено %v", err)
	}
}

func TestLLMSuccessTrimsAnswer(t *testing.T) {
	var gotReq chatRequest
	svc := newLLMWithServer(t, func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("неверный заголовок Authorization: %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("тело запроса: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "  **Ответ** по дому\n"}},
			},
		})
	})

	answer, err := svc.AskAboutHouse("контекст", "что с домом?")
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if answer != "**Ответ** по дому" {
		t.Errorf("ответ должен быть обрезан: %q", answer)
	}

	if gotReq.Model != llmModel {
		t.Errorf("модель %q, ожидалась %q", gotReq.Model, llmModel)
	}
	if gotReq.MaxTokens != houseMaxTokens {
		t.Errorf("max_tokens = %d, ожидалось %d", gotReq.MaxTokens, houseMaxTokens)
	}
	if gotReq.Temperature != llmTemperature {
		t.Errorf("temperature = %v", gotReq.Temperature)
	}
	if len(gotReq.Messages) != 1 || gotReq.Messages[0].Role != "user" {
		t.Errorf("сообщения: %+v", gotReq.Messages)
	}
}

func TestLLMRegionUsesSmallerBudget(t *testing.T) {
	var gotReq chatRequest
	svc := newLLMWithServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotReq)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "ок"}},
			},
		})
	})

	if _, err := svc.AskAboutRegion("контекст", "вопрос"); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if gotReq.MaxTokens != regionMaxTokens {
		t.Errorf("max_tokens = %d, ожидалось %d", gotReq.MaxTokens, regionMaxTokens)
	}
}

func TestLLMUpstreamError(t *testing.T) {
	svc := newLLMWithServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"message": "Rate limit exceeded"},
		})
	})

	_, err := svc.AskAboutHouse("контекст", "вопрос")
	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("ожидалась UpstreamError, получено %v", err)
	}
	if upstream.Status != http.StatusTooManyRequests || upstream.Message != "Rate limit exceeded" {
		t.Errorf("неверная ошибка: %+v", upstream)
	}
}

func TestLLMUpstreamErrorWithoutBody(t *testing.T) {
	svc := newLLMWithServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := svc.AskAboutHouse("контекст", "вопрос")
	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("ожидалась UpstreamError, получено %v", err)
	}
	if upstream.Message != "Unknown error" {
		t.Errorf("нечитаемое тело должно давать Unknown error: %q", upstream.Message)
	}
}

func TestLLMEmptyChoices(t *testing.T) {
	svc := newLLMWithServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	})

	if _, err := svc.AskAboutHouse("контекст", "вопрос"); err == nil {
		t.Fatal("пустой список choices должен давать ошибку")
	}
}
