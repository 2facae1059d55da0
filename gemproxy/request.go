package gemproxy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// NormalizeRequest validates an inbound call and extracts its ChatRequest.
// The method is checked before the body is looked at. Every error it returns
// is a *RequestError.
func NormalizeRequest(in Inbound) (ChatRequest, error) {
	if strings.ToUpper(strings.TrimSpace(in.Method)) != http.MethodPost {
		return ChatRequest{}, &RequestError{Kind: MethodNotAllowed}
	}

	fields, err := decodeBody(in.Body)
	if err != nil {
		return ChatRequest{}, err
	}

	query, _ := fields["query"].(string)
	if strings.TrimSpace(query) == "" {
		return ChatRequest{}, &RequestError{Kind: MissingQuery}
	}
	// Only a JSON true enables search; "true", 1 and friends do not.
	isSearch, _ := fields["isSearch"].(bool)

	return ChatRequest{Query: query, IsSearch: isSearch}, nil
}

func decodeBody(body any) (map[string]any, error) {
	var raw []byte
	switch b := body.(type) {
	case nil:
		return nil, &RequestError{Kind: MissingBody}
	case map[string]any:
		return b, nil
	case string:
		raw = []byte(b)
	case []byte:
		raw = b
	case json.RawMessage:
		raw = b
	default:
		return nil, &RequestError{Kind: MalformedBody, Detail: fmt.Sprintf("unsupported body type %T", body)}
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, &RequestError{Kind: MissingBody}
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, &RequestError{Kind: MalformedBody, Detail: err.Error()}
	}
	switch t := v.(type) {
	case nil:
		return nil, &RequestError{Kind: MissingBody}
	case map[string]any:
		return t, nil
	default:
		return nil, &RequestError{Kind: MalformedBody, Detail: "request body must be a JSON object"}
	}
}

// InboundFromEnvelope reads a generic decoded event envelope. The method comes
// from "method", or from "httpMethod" for legacy events; "body" is passed on
// as delivered, whether already parsed or still a string.
func InboundFromEnvelope(env map[string]any) Inbound {
	method, _ := env["method"].(string)
	if method == "" {
		method, _ = env["httpMethod"].(string)
	}
	return Inbound{Method: method, Body: env["body"]}
}
