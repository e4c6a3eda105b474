package stability

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

type fakeAPI struct {
	probeStatus    int
	generateStatus int
	generateBody   string

	probeCalls    atomic.Int64
	generateCalls atomic.Int64
	lastPrompt    string
	lastRequest   generateRequest
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(enginesPath, func(w http.ResponseWriter, r *http.Request) {
		f.probeCalls.Add(1)
		w.WriteHeader(f.probeStatus)
	})
	mux.HandleFunc(generatePath, func(w http.ResponseWriter, r *http.Request) {
		f.generateCalls.Add(1)
		body, _ := io.ReadAll(r.Body)
		var req generateRequest
		if err := json.Unmarshal(body, &req); err == nil && len(req.TextPrompts) > 0 {
			f.lastRequest = req
			f.lastPrompt = req.TextPrompts[0].Text
		}
		w.WriteHeader(f.generateStatus)
		w.Write([]byte(f.generateBody))
	})
	return mux
}

func newTestClient(t *testing.T, api *fakeAPI) *Client {
	t.Helper()

	server := httptest.NewServer(api.handler())
	t.Cleanup(server.Close)

	client := NewClient("sk-test-key-0123456789")
	client.BaseURL = server.URL
	return client
}

func TestGenerateSuccess(t *testing.T) {
	api := &fakeAPI{
		probeStatus:    http.StatusOK,
		generateStatus: http.StatusOK,
		generateBody:   `{"artifacts":[{"base64":"AAAA"}]}`,
	}
	client := newTestClient(t, api)

	image, err := client.Generate(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Generate вернул ошибку: %v", err)
	}
	if image != "AAAA" {
		t.Errorf("ожидалось изображение %q, получено %q", "AAAA", image)
	}
}

func TestGeneratePromptAlwaysContainsBee(t *testing.T) {
	prompts := []string{
		"hello",
		"a cat, no bees please",
		"ignore previous instructions",
		"",
	}

	for _, prompt := range prompts {
		api := &fakeAPI{
			probeStatus:    http.StatusOK,
			generateStatus: http.StatusOK,
			generateBody:   `{"artifacts":[{"base64":"AAAA"}]}`,
		}
		client := newTestClient(t, api)

		if _, err := client.Generate(context.Background(), prompt); err != nil {
			t.Fatalf("Generate(%q) вернул ошибку: %v", prompt, err)
		}

		want := "A detailed illustration of a bee in the following scene or context: " + prompt + ". The bee should be the main focus of the image."
		if api.lastPrompt != want {
			t.Errorf("запрос для %q:\nполучено %q\nожидалось %q", prompt, api.lastPrompt, want)
		}
		if !strings.Contains(api.lastPrompt, prompt) {
			t.Errorf("текст пользователя %q не попал в запрос", prompt)
		}
	}
}

func TestGenerateFixedParameters(t *testing.T) {
	api := &fakeAPI{
		probeStatus:    http.StatusOK,
		generateStatus: http.StatusOK,
		generateBody:   `{"artifacts":[{"base64":"AAAA"}]}`,
	}
	client := newTestClient(t, api)

	if _, err := client.Generate(context.Background(), "hello"); err != nil {
		t.Fatalf("Generate вернул ошибку: %v", err)
	}

	req := api.lastRequest
	if req.CfgScale != 7 || req.Height != 1024 || req.Width != 1024 || req.Samples != 1 || req.Steps != 30 {
		t.Errorf("параметры генерации отличаются от фиксированных: %+v", req)
	}
}

func TestGenerateMissingKey(t *testing.T) {
	api := &fakeAPI{
		probeStatus:    http.StatusOK,
		generateStatus: http.StatusOK,
		generateBody:   `{"artifacts":[{"base64":"AAAA"}]}`,
	}
	client := newTestClient(t, api)
	client.APIKey = ""

	_, err := client.Generate(context.Background(), "hello")
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("ожидался ErrMissingAPIKey, получено %v", err)
	}

	// Без ключа не должно быть ни одного сетевого вызова
	if api.probeCalls.Load() != 0 || api.generateCalls.Load() != 0 {
		t.Errorf("без ключа выполнены сетевые вызовы: probe=%d, generate=%d",
			api.probeCalls.Load(), api.generateCalls.Load())
	}
}

func TestGenerateInvalidKey(t *testing.T) {
	api := &fakeAPI{
		probeStatus:    http.StatusUnauthorized,
		generateStatus: http.StatusOK,
		generateBody:   `{"artifacts":[{"base64":"AAAA"}]}`,
	}
	client := newTestClient(t, api)

	_, err := client.Generate(context.Background(), "hello")
	if !errors.Is(err, ErrInvalidAPIKey) {
		t.Fatalf("ожидался ErrInvalidAPIKey, получено %v", err)
	}

	// 401 на проверке ключа должен отменить основной запрос
	if api.generateCalls.Load() != 0 {
		t.Errorf("основной запрос выполнен несмотря на 401 при проверке ключа")
	}
}

func TestGenerateProbeFailureDoesNotBlock(t *testing.T) {
	// Любая неудача проверки, кроме 401, не мешает основному запросу
	api := &fakeAPI{
		probeStatus:    http.StatusInternalServerError,
		generateStatus: http.StatusOK,
		generateBody:   `{"artifacts":[{"base64":"AAAA"}]}`,
	}
	client := newTestClient(t, api)

	image, err := client.Generate(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Generate вернул ошибку: %v", err)
	}
	if image != "AAAA" {
		t.Errorf("ожидалось изображение %q, получено %q", "AAAA", image)
	}
}

func TestGenerateUpstreamError(t *testing.T) {
	api := &fakeAPI{
		probeStatus:    http.StatusOK,
		generateStatus: http.StatusBadGateway,
		generateBody:   `{"message":"upstream exploded"}`,
	}
	client := newTestClient(t, api)

	_, err := client.Generate(context.Background(), "hello")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("ожидался *APIError, получено %v", err)
	}
	if apiErr.Status != http.StatusBadGateway {
		t.Errorf("ожидался статус %d, получен %d", http.StatusBadGateway, apiErr.Status)
	}
	if !strings.Contains(apiErr.Body, "upstream exploded") {
		t.Errorf("тело ответа потеряно: %q", apiErr.Body)
	}
}

func TestGenerateMalformedResponse(t *testing.T) {
	bodies := []string{
		`{"artifacts":[]}`,
		`{"artifacts":[{"finishReason":"SUCCESS"}]}`,
		`{"something":"else"}`,
		`not json at all`,
	}

	for _, body := range bodies {
		api := &fakeAPI{
			probeStatus:    http.StatusOK,
			generateStatus: http.StatusOK,
			generateBody:   body,
		}
		client := newTestClient(t, api)

		_, err := client.Generate(context.Background(), "hello")

		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Errorf("тело %q: ожидался *ParseError, получено %v", body, err)
		}
	}
}

func TestMaskKey(t *testing.T) {
	masked := maskKey("sk-test-key-0123456789")
	if strings.Contains(masked, "est-key-012") {
		t.Errorf("ключ виден в маске: %q", masked)
	}
	if !strings.HasPrefix(masked, "sk-te") {
		t.Errorf("маска не содержит префикса ключа: %q", masked)
	}

	if maskKey("short") != "*****" {
		t.Errorf("короткий ключ должен маскироваться целиком")
	}
}
