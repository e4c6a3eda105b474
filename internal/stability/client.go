// Package stability реализует клиент Stability AI для генерации
// иллюстраций к постам. Один вызов — одна попытка: повторов нет,
// неудача возвращается вызывающему как типизированная ошибка.
package stability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
)

const (
	DefaultBaseURL = "https://api.stability.ai"

	generatePath = "/v1/generation/stable-diffusion-xl-1024-v1-0/text-to-image"
	enginesPath  = "/v1/engines/list"

	// Шаблон всегда делает пчелу главным объектом изображения,
	// какой бы текст ни прислал пользователь
	beePromptTemplate = "A detailed illustration of a bee in the following scene or context: %s. The bee should be the main focus of the image."

	// Фиксированные параметры генерации
	cfgScale  = 7
	imageSize = 1024
	samples   = 1
	steps     = 30
)

var (
	ErrMissingAPIKey = errors.New("ключ Stability API не задан")
	ErrInvalidAPIKey = errors.New("ключ Stability API недействителен или истек")
)

// APIError — ответ сервиса генерации со статусом вне 2xx
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ошибка Stability API: статус %d: %s", e.Status, e.Body)
}

// ParseError — ответ 2xx, в котором нет ожидаемого изображения
type ParseError struct {
	Detail string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("неожиданный ответ Stability API: %s", e.Detail)
}

type Client struct {
	APIKey  string
	BaseURL string
	HTTP    *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		APIKey:  apiKey,
		BaseURL: DefaultBaseURL,
		HTTP:    http.DefaultClient,
	}
}

type textPrompt struct {
	Text string `json:"text"`
}

type generateRequest struct {
	TextPrompts []textPrompt `json:"text_prompts"`
	CfgScale    int          `json:"cfg_scale"`
	Height      int          `json:"height"`
	Width       int          `json:"width"`
	Samples     int          `json:"samples"`
	Steps       int          `json:"steps"`
}

type artifact struct {
	Base64 string `json:"base64"`
}

type generateResponse struct {
	Artifacts []artifact `json:"artifacts"`
}

// Generate превращает текст поста в изображение и возвращает его
// в base64. Результат ровно один: либо изображение, либо ошибка.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	log.Printf("Generating bee image for prompt: %q", prompt)

	if c.APIKey == "" {
		return "", ErrMissingAPIKey
	}
	log.Printf("Using Stability API key %s", maskKey(c.APIKey))

	// Предварительная проверка ключа. Любая неудача, кроме явного 401,
	// не блокирует основной запрос
	if err := c.probe(ctx); err != nil {
		return "", err
	}

	beePrompt := fmt.Sprintf(beePromptTemplate, prompt)

	payload := generateRequest{
		TextPrompts: []textPrompt{{Text: beePrompt}},
		CfgScale:    cfgScale,
		Height:      imageSize,
		Width:       imageSize,
		Samples:     samples,
		Steps:       steps,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("ошибка кодирования запроса: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+generatePath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("ошибка создания запроса: %v", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("ошибка запроса к Stability API: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("ошибка чтения ответа: %v", err)
	}

	log.Printf("Stability API response: status=%d, body=%s", resp.StatusCode, snippet(respBody))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &APIError{Status: resp.StatusCode, Body: snippet(respBody)}
	}

	var parsed generateResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", &ParseError{Detail: err.Error()}
	}

	if len(parsed.Artifacts) == 0 || parsed.Artifacts[0].Base64 == "" {
		return "", &ParseError{Detail: "в ответе нет поля artifacts с изображением"}
	}

	log.Printf("Successfully generated image, %d bytes of base64", len(parsed.Artifacts[0].Base64))
	return parsed.Artifacts[0].Base64, nil
}

// probe проверяет ключ запросом списка моделей. 401 означает
// недействительный ключ и прерывает генерацию; остальные неудачи
// только логируются
func (c *Client) probe(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+enginesPath, nil)
	if err != nil {
		log.Printf("Stability API connectivity test failed: %v", err)
		return nil
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		log.Printf("Stability API connectivity test failed: %v", err)
		return nil
	}
	defer resp.Body.Close()

	log.Printf("Stability API connectivity test: status=%d", resp.StatusCode)

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrInvalidAPIKey
	}

	return nil
}

// maskKey маскирует ключ для логов: первые и последние 5 символов
func maskKey(key string) string {
	if len(key) <= 10 {
		return "*****"
	}
	return fmt.Sprintf("%s...%s (length: %d)", key[:5], key[len(key)-5:], len(key))
}

// snippet обрезает тело ответа до разумного размера для логов
func snippet(body []byte) string {
	const max = 1000
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}
