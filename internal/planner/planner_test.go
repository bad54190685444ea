package planner

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

func fakeCompletionServer(t *testing.T, delay time.Duration, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(delay)
		resp := openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: content}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func testService(t *testing.T, baseURL string) *Service {
	t.Helper()
	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = baseURL + "/v1"
	return NewService(openai.NewClientWithConfig(cfg), "test-model", zap.NewNop())
}

func TestGenerate(t *testing.T) {
	srv := fakeCompletionServer(t, 0, "# Plan\n\nDo the thing.")
	defer srv.Close()

	plan, err := testService(t, srv.URL).Generate(context.Background(), "some guidelines")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if plan != "# Plan\n\nDo the thing." {
		t.Errorf("plan = %q", plan)
	}
}

func TestGenerateNotConfigured(t *testing.T) {
	s := NewService(nil, "", zap.NewNop())
	if _, err := s.Generate(context.Background(), "guidelines"); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("err = %v, want ErrNotConfigured", err)
	}
}

func TestGenerateEmptyGuidelines(t *testing.T) {
	srv := fakeCompletionServer(t, 0, "plan")
	defer srv.Close()

	if _, err := testService(t, srv.URL).Generate(context.Background(), "   "); err == nil {
		t.Error("expected error for blank guidelines")
	}
}

func TestGenerateSingleInFlight(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	var enteredOnce sync.Once
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		enteredOnce.Do(func() { close(entered) })
		<-release
		resp := openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: "plan"}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	s := testService(t, srv.URL)

	var wg sync.WaitGroup
	wg.Add(1)
	firstErr := make(chan error, 1)
	go func() {
		defer wg.Done()
		_, err := s.Generate(context.Background(), "guidelines")
		firstErr <- err
	}()

	// Wait until the first generation holds the slot.
	<-entered
	if _, err := s.Generate(context.Background(), "guidelines"); !errors.Is(err, ErrBusy) {
		t.Errorf("concurrent call err = %v, want ErrBusy", err)
	}

	close(release)
	wg.Wait()
	if err := <-firstErr; err != nil {
		t.Errorf("first call err = %v", err)
	}

	// The slot frees up once the first call returns.
	if _, err := s.Generate(context.Background(), "guidelines"); err != nil {
		t.Errorf("follow-up call err = %v", err)
	}
}

func TestGenerateContextCancelled(t *testing.T) {
	srv := fakeCompletionServer(t, 2*time.Second, "plan")
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := testService(t, srv.URL).Generate(ctx, "guidelines"); err == nil {
		t.Error("expected error after context cancellation")
	}
}
