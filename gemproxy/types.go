package gemproxy

import "encoding/json"

// Provider identifies which upstream API surface serves the call.
type Provider string

const (
	ProviderGoogle Provider = "google"
	ProviderOpenAI Provider = "openai"
)

// Inbound is a host-neutral view of one incoming call.
//
// Body may be nil, a raw string/[]byte/json.RawMessage that still needs JSON
// decoding, or an already parsed map[string]any. Adapters fill it in whatever
// shape their host runtime delivers.
type Inbound struct {
	Method string
	Body   any
}

// ChatRequest is the validated form of an inbound call.
type ChatRequest struct {
	// Query is kept verbatim; only its trimmed emptiness is checked.
	Query    string
	IsSearch bool
}

// Message is one entry in a call's contents.
type Message struct {
	Role string
	Text string
}

// CallSpec is the provider-agnostic description of the single upstream call
// made for a request. It is derived deterministically from a ChatRequest.
type CallSpec struct {
	Model             string
	Contents          []Message
	SystemInstruction string
	ToolsEnabled      bool
}

// OutcomeKind classifies what the upstream call produced.
type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	// OutcomeEmpty means no candidates or no text came back.
	OutcomeEmpty
	// OutcomeSafetyBlocked means the upstream refused on content policy grounds.
	OutcomeSafetyBlocked
	// OutcomeFailure carries an upstream or configuration failure message.
	OutcomeFailure
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeEmpty:
		return "empty"
	case OutcomeSafetyBlocked:
		return "safety_blocked"
	case OutcomeFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// CallOutcome is the provider-agnostic result of one upstream call.
type CallOutcome struct {
	Kind    OutcomeKind
	Text    string
	Message string
}

// ResponseBody is the JSON document returned to the caller. Exactly one of
// Text or Error is set.
type ResponseBody struct {
	Text    *string `json:"text,omitempty"`
	Error   string  `json:"error,omitempty"`
	Details string  `json:"details,omitempty"`
}

// APIResult is the only externally observable artifact of a request.
type APIResult struct {
	StatusCode int
	Headers    map[string]string
	Body       ResponseBody
}

// MarshalBody renders the JSON body.
func (r APIResult) MarshalBody() ([]byte, error) {
	return json.Marshal(r.Body)
}
