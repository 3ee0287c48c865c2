package scoring

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"civic-reporter-go/internal/platform/config"
	"civic-reporter-go/internal/platform/errors"
	"civic-reporter-go/internal/platform/logging"
)

type completionRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
	Temperature float64 `json:"temperature"`
}

func newCompletionServer(t *testing.T, reply string, capture *completionRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if capture != nil {
			if err := json.NewDecoder(r.Body).Decode(capture); err != nil {
				t.Errorf("decode request: %v", err)
			}
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "cmpl-test",
			"object": "chat.completion",
			"choices": []map[string]any{
				{
					"index": 0,
					"message": map[string]any{
						"role":    "assistant",
						"content": reply,
					},
				},
			},
		})
	}))
}

func testScoringConfig(baseURL string) config.ScoringConfig {
	cfg := config.DefaultConfig().Scoring
	cfg.BaseURL = baseURL
	cfg.APIKey = "test-key"
	return cfg
}

func TestScoreParsesLabelledReply(t *testing.T) {
	var got completionRequest
	server := newCompletionServer(t, "The relevance score: 085", &got)
	defer server.Close()

	s := NewService(testScoringConfig(server.URL+"/v1"), logging.Discard())

	score, err := s.Score(context.Background(), "A pothole in a road", "Huge pothole near the market")
	if err != nil {
		t.Fatalf("Score error: %v", err)
	}
	if score != "085" {
		t.Errorf("score = %q, expected 085", score)
	}

	if got.Model != "openai/gpt-oss-20b" {
		t.Errorf("model = %q", got.Model)
	}
	if got.Temperature != 0.1 {
		t.Errorf("temperature = %v, expected 0.1", got.Temperature)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != "system" {
		t.Fatalf("unexpected messages: %+v", got.Messages)
	}
	prompt := got.Messages[1].Content
	if !strings.Contains(prompt, `IMAGE CAPTION: "A pothole in a road"`) {
		t.Errorf("prompt does not embed caption verbatim:\n%s", prompt)
	}
	if !strings.Contains(prompt, `USER DESCRIPTION: "Huge pothole near the market"`) {
		t.Errorf("prompt does not embed description verbatim:\n%s", prompt)
	}
}

func TestScoreGarbageReplyFallsBack(t *testing.T) {
	server := newCompletionServer(t, "I am unable to help with that.", nil)
	defer server.Close()

	s := NewService(testScoringConfig(server.URL+"/v1"), logging.Discard())

	score, err := s.Score(context.Background(), "caption", "description")
	if err != nil {
		t.Fatalf("Score error: %v", err)
	}
	if score != Fallback {
		t.Errorf("score = %q, expected fallback", score)
	}
}

func TestScoreServerErrorFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"message": "invalid api key"}}`))
	}))
	defer server.Close()

	s := NewService(testScoringConfig(server.URL+"/v1"), logging.Discard())

	score, err := s.Score(context.Background(), "caption", "description")
	if score != Fallback {
		t.Errorf("score = %q, expected fallback", score)
	}
	if !errors.IsKind(err, errors.KindScoring) {
		t.Errorf("expected scoring-kind error, got %v", err)
	}
}

func TestScoreTransportErrorFallsBack(t *testing.T) {
	// Nothing listens on this port.
	s := NewService(testScoringConfig("http://127.0.0.1:1/v1"), logging.Discard())

	score, err := s.Score(context.Background(), "", "")
	if score != Fallback {
		t.Errorf("score = %q, expected fallback", score)
	}
	if !errors.IsKind(err, errors.KindScoring) {
		t.Errorf("expected scoring-kind error, got %v", err)
	}
}
