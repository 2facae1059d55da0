package gemproxy

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

type googleProvider struct {
	client *genai.Client
}

func newGoogleProvider(cfg Config) (providerClient, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingCredential
	}
	gc, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HTTPClient,
		HTTPOptions: genai.HTTPOptions{
			BaseURL: cfg.BaseURL,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("gemproxy: create genai client: %w", err)
	}
	return &googleProvider{client: gc}, nil
}

func (p *googleProvider) Generate(ctx context.Context, spec CallSpec) (CallOutcome, error) {
	cfg := &genai.GenerateContentConfig{}
	if strings.TrimSpace(spec.SystemInstruction) != "" {
		cfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: spec.SystemInstruction}},
		}
	}
	if spec.ToolsEnabled {
		cfg.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}

	res, err := p.client.Models.GenerateContent(ctx, spec.Model, toGenAIContents(spec.Contents), cfg)
	if err != nil {
		return CallOutcome{}, err
	}
	return outcomeFromGenAI(res), nil
}

func toGenAIContents(msgs []Message) []*genai.Content {
	out := make([]*genai.Content, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, &genai.Content{
			Role:  m.Role,
			Parts: []*genai.Part{{Text: m.Text}},
		})
	}
	return out
}

// outcomeFromGenAI classifies a response. A prompt-level block or a SAFETY
// finish on the first candidate is a safety block in either mode.
func outcomeFromGenAI(res *genai.GenerateContentResponse) CallOutcome {
	if res == nil {
		return CallOutcome{Kind: OutcomeEmpty}
	}
	if res.PromptFeedback != nil && res.PromptFeedback.BlockReason != "" {
		return CallOutcome{Kind: OutcomeSafetyBlocked, Message: string(res.PromptFeedback.BlockReason)}
	}
	if len(res.Candidates) == 0 || res.Candidates[0] == nil {
		return CallOutcome{Kind: OutcomeEmpty}
	}

	cand := res.Candidates[0]
	if cand.FinishReason == genai.FinishReasonSafety {
		return CallOutcome{Kind: OutcomeSafetyBlocked, Message: string(cand.FinishReason)}
	}
	if cand.Content == nil {
		return CallOutcome{Kind: OutcomeEmpty}
	}

	var sb strings.Builder
	for _, part := range cand.Content.Parts {
		if part == nil || part.Thought || part.Text == "" {
			continue
		}
		sb.WriteString(part.Text)
	}
	if sb.Len() == 0 {
		return CallOutcome{Kind: OutcomeEmpty}
	}
	return CallOutcome{Kind: OutcomeSuccess, Text: sb.String()}
}
