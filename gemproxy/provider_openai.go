package gemproxy

import (
	"context"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

type openAIProvider struct {
	client      *openai.Client
	searchModel string
}

func newOpenAIProvider(cfg Config) (providerClient, error) {
	if cfg.APIKey == "" {
		return nil, missingCredential(ProviderOpenAI)
	}
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	if cfg.HTTPClient != nil {
		oc.HTTPClient = cfg.HTTPClient
	}
	return &openAIProvider{
		client:      openai.NewClientWithConfig(oc),
		searchModel: cfg.SearchModel,
	}, nil
}

// Generate sends the CallSpec as a chat completion. This surface has no retrieval
// tool, so search mode is routed to the configured search model instead.
func (p *openAIProvider) Generate(ctx context.Context, spec CallSpec) (CallOutcome, error) {
	msgs := make([]openai.ChatCompletionMessage, 0, len(spec.Contents)+1)
	if strings.TrimSpace(spec.SystemInstruction) != "" {
		msgs = append(msgs, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: spec.SystemInstruction,
		})
	}
	for _, m := range spec.Contents {
		msgs = append(msgs, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Text,
		})
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    p.modelFor(spec),
		Messages: msgs,
	})
	if err != nil {
		return CallOutcome{}, err
	}
	return outcomeFromOpenAI(resp), nil
}

func (p *openAIProvider) modelFor(spec CallSpec) string {
	if spec.ToolsEnabled && p.searchModel != "" {
		return p.searchModel
	}
	return spec.Model
}

func outcomeFromOpenAI(resp openai.ChatCompletionResponse) CallOutcome {
	if len(resp.Choices) == 0 {
		return CallOutcome{Kind: OutcomeEmpty}
	}
	choice := resp.Choices[0]
	if choice.FinishReason == openai.FinishReasonContentFilter {
		return CallOutcome{Kind: OutcomeSafetyBlocked, Message: string(choice.FinishReason)}
	}
	if choice.Message.Content == "" {
		return CallOutcome{Kind: OutcomeEmpty}
	}
	return CallOutcome{Kind: OutcomeSuccess, Text: choice.Message.Content}
}
