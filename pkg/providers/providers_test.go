package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/solaceapp/solace/pkg/config"
)

func TestOllamaGenerateSendsNativePayload(t *testing.T) {
	var captured map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"response": "  hello there  ", "done": true})
	}))
	defer server.Close()

	p := NewOllamaProvider(server.URL, "mistral:7b", zerolog.Nop())
	got, err := p.Generate(context.Background(), "be kind", "User: hi", GenerateOptions{
		MaxTokens:   150,
		Temperature: 0.8,
		TopP:        0.9,
		Stop:        []string{"User:"},
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if got != "hello there" {
		t.Fatalf("expected trimmed response, got %q", got)
	}

	if captured["model"] != "mistral:7b" {
		t.Errorf("model = %v", captured["model"])
	}
	if captured["stream"] != false {
		t.Errorf("stream = %v", captured["stream"])
	}
	if captured["system"] != "be kind" {
		t.Errorf("system = %v", captured["system"])
	}
	options, ok := captured["options"].(map[string]interface{})
	if !ok {
		t.Fatalf("options missing: %v", captured)
	}
	if options["num_predict"] != float64(150) {
		t.Errorf("num_predict = %v", options["num_predict"])
	}
	if options["temperature"] != 0.8 {
		t.Errorf("temperature = %v", options["temperature"])
	}
}

func TestOllamaGenerateErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	p := NewOllamaProvider(server.URL, "mistral:7b", zerolog.Nop())
	if _, err := p.Generate(context.Background(), "", "hi", GenerateOptions{}); err == nil {
		t.Fatal("expected error on non-200 status")
	}
}

func TestOllamaGenerateTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		json.NewEncoder(w).Encode(map[string]interface{}{"response": "late"})
	}))
	defer server.Close()

	p := NewOllamaProvider(server.URL, "mistral:7b", zerolog.Nop())
	_, err := p.Generate(context.Background(), "", "hi", GenerateOptions{Timeout: 50 * time.Millisecond})
	if err == nil {
		t.Fatal("expected timeout error")
	}
}

func TestOpenAIGenerateParsesChoices(t *testing.T) {
	var captured map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("auth header = %q", auth)
		}
		json.NewDecoder(r.Body).Decode(&captured)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "a warm reply"}},
			},
		})
	}))
	defer server.Close()

	p := NewOpenAIProvider("test-key", server.URL, "gpt-4o-mini", "", zerolog.Nop())
	got, err := p.Generate(context.Background(), "system prompt", "hello", GenerateOptions{MaxTokens: 200})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if got != "a warm reply" {
		t.Fatalf("got %q", got)
	}

	messages, ok := captured["messages"].([]interface{})
	if !ok || len(messages) != 2 {
		t.Fatalf("expected system+user messages, got %v", captured["messages"])
	}
	first := messages[0].(map[string]interface{})
	if first["role"] != "system" {
		t.Errorf("first message role = %v", first["role"])
	}
}

func TestOpenAIGenerateRequiresKey(t *testing.T) {
	p := NewOpenAIProvider("", "", "", "", zerolog.Nop())
	if _, err := p.Generate(context.Background(), "", "hi", GenerateOptions{}); err == nil {
		t.Fatal("expected error without API key")
	}
}

func TestCreateGeneratorDefaultsToOllama(t *testing.T) {
	cfg := config.DefaultConfig()
	gen, err := CreateGenerator(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("CreateGenerator failed: %v", err)
	}
	if gen.Name() != "ollama" {
		t.Fatalf("expected ollama, got %q", gen.Name())
	}
}

func TestCreateGeneratorOpenAIRequiresKey(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Model.Provider = "openai"
	if _, err := CreateGenerator(cfg, zerolog.Nop()); err == nil {
		t.Fatal("expected error for openai without key")
	}
}

func TestCreateGeneratorRejectsUnknown(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Model.Provider = "carrier-pigeon"
	if _, err := CreateGenerator(cfg, zerolog.Nop()); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestCompleterAdapter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"response": "label happy 0.9"})
	}))
	defer server.Close()

	adapter := &CompleterAdapter{Generator: NewOllamaProvider(server.URL, "mistral:7b", zerolog.Nop())}
	got, err := adapter.Complete(context.Background(), "classify this")
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if got != "label happy 0.9" {
		t.Fatalf("got %q", got)
	}
}
