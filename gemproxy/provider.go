package gemproxy

import (
	"context"
	"fmt"
)

// providerClient is the internal interface each upstream surface implements.
type providerClient interface {
	// Generate performs exactly one upstream call for spec. A returned error
	// means the call itself failed; refusals and empty results are outcomes.
	Generate(ctx context.Context, spec CallSpec) (CallOutcome, error)
}

func newProvider(cfg Config) (providerClient, error) {
	switch cfg.Provider {
	case ProviderGoogle, "":
		return newGoogleProvider(cfg)
	case ProviderOpenAI:
		return newOpenAIProvider(cfg)
	default:
		return nil, fmt.Errorf("gemproxy: unsupported provider %q", cfg.Provider)
	}
}
