package gemproxy

// System instructions for the two modes. There is no third mode.
const (
	ChatInstruction   = "You are a helpful and concise AI assistant. Respond in Thai and use markdown for formatting."
	SearchInstruction = "You are an expert search assistant. Use Google Search to find up-to-date and relevant information, cite your sources, and summarize the findings clearly in Thai. If no search results are found, state that."
)

// BuildCallSpec maps a validated request to its upstream call.
// An empty model means DefaultModel.
func BuildCallSpec(req ChatRequest, model string) CallSpec {
	if model == "" {
		model = DefaultModel
	}
	spec := CallSpec{
		Model:    model,
		Contents: []Message{{Role: "user", Text: req.Query}},
	}
	if req.IsSearch {
		spec.SystemInstruction = SearchInstruction
		spec.ToolsEnabled = true
	} else {
		spec.SystemInstruction = ChatInstruction
	}
	return spec
}
