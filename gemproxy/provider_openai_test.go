package gemproxy

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

func TestOutcomeFromOpenAI(t *testing.T) {
	choice := func(content string, reason openai.FinishReason) openai.ChatCompletionChoice {
		return openai.ChatCompletionChoice{
			Message:      openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: content},
			FinishReason: reason,
		}
	}

	cases := []struct {
		name     string
		resp     openai.ChatCompletionResponse
		wantKind OutcomeKind
		wantText string
	}{
		{"no choices", openai.ChatCompletionResponse{}, OutcomeEmpty, ""},
		{"content filter", openai.ChatCompletionResponse{Choices: []openai.ChatCompletionChoice{choice("", openai.FinishReasonContentFilter)}}, OutcomeSafetyBlocked, ""},
		{"empty content", openai.ChatCompletionResponse{Choices: []openai.ChatCompletionChoice{choice("", openai.FinishReasonStop)}}, OutcomeEmpty, ""},
		{"text", openai.ChatCompletionResponse{Choices: []openai.ChatCompletionChoice{choice("hello", openai.FinishReasonStop)}}, OutcomeSuccess, "hello"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := outcomeFromOpenAI(tc.resp)
			if got.Kind != tc.wantKind || got.Text != tc.wantText {
				t.Fatalf("expected %s/%q, got %s/%q", tc.wantKind, tc.wantText, got.Kind, got.Text)
			}
		})
	}
}

func TestOpenAIProvider_SearchModelAndMessages(t *testing.T) {
	var got []openai.ChatCompletionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		var req openai.ChatCompletionRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		got = append(got, req)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id":"c1","object":"chat.completion","created":1,"model":"`+req.Model+`","choices":[{"index":0,"message":{"role":"assistant","content":"ok"},"finish_reason":"stop"}]}`)
	}))
	defer srv.Close()

	pc, err := newOpenAIProvider(Config{APIKey: "sk-test", BaseURL: srv.URL + "/v1/", SearchModel: "search-model"})
	if err != nil {
		t.Fatalf("newOpenAIProvider: %v", err)
	}

	chat := BuildCallSpec(ChatRequest{Query: "hi"}, "chat-model")
	search := BuildCallSpec(ChatRequest{Query: "hi", IsSearch: true}, "chat-model")
	for _, spec := range []CallSpec{chat, search} {
		out, err := pc.Generate(context.Background(), spec)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if out.Kind != OutcomeSuccess || out.Text != "ok" {
			t.Fatalf("unexpected outcome %+v", out)
		}
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(got))
	}
	if got[0].Model != "chat-model" || got[1].Model != "search-model" {
		t.Fatalf("unexpected models %q, %q", got[0].Model, got[1].Model)
	}
	msgs := got[1].Messages
	if len(msgs) != 2 || msgs[0].Role != openai.ChatMessageRoleSystem || msgs[0].Content != SearchInstruction {
		t.Fatalf("expected system message first, got %+v", msgs)
	}
	if msgs[1].Role != openai.ChatMessageRoleUser || msgs[1].Content != "hi" {
		t.Fatalf("expected user message, got %+v", msgs[1])
	}
}

func TestOpenAIProvider_ErrorSurfacesMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"error":{"message":"invalid api key","type":"invalid_request_error"}}`)
	}))
	defer srv.Close()

	pc, _ := newOpenAIProvider(Config{APIKey: "bad", BaseURL: srv.URL})
	_, err := pc.Generate(context.Background(), BuildCallSpec(ChatRequest{Query: "hi"}, ""))
	if err == nil {
		t.Fatal("expected error")
	}
	res := NormalizeOutcome(CallOutcome{}, err)
	if res.StatusCode != http.StatusInternalServerError || res.Body.Details != err.Error() {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestOpenAIProvider_SearchFallsBackToModel(t *testing.T) {
	p := &openAIProvider{}
	if got := p.modelFor(CallSpec{Model: "m", ToolsEnabled: true}); got != "m" {
		t.Fatalf("expected fallback to spec model, got %q", got)
	}
}
