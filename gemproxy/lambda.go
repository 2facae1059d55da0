package gemproxy

import (
	"context"
	"encoding/base64"

	"github.com/aws/aws-lambda-go/events"
)

// HandleAPIGateway adapts the legacy event convention used by Netlify and
// Lambda functions: the method arrives as httpMethod and the body as a raw,
// possibly base64-encoded string. The returned error is always nil.
func (h *Handler) HandleAPIGateway(ctx context.Context, ev events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	in := Inbound{Method: ev.HTTPMethod}
	if isPost(ev.HTTPMethod) {
		in.Body = eventBody(ev)
	}

	res := h.Handle(ctx, in)
	body, err := res.MarshalBody()
	if err != nil {
		// ResponseBody only holds strings; keep the status and fall back to a fixed body.
		body = []byte(`{"error":"Internal Server Error"}`)
	}
	return events.APIGatewayProxyResponse{
		StatusCode: res.StatusCode,
		Headers:    res.Headers,
		Body:       string(body),
	}, nil
}

// eventBody returns the body in a shape NormalizeRequest accepts. A body that
// claims base64 but does not decode is passed through and fails JSON decoding.
func eventBody(ev events.APIGatewayProxyRequest) any {
	if ev.Body == "" {
		return nil
	}
	if ev.IsBase64Encoded {
		if b, err := base64.StdEncoding.DecodeString(ev.Body); err == nil {
			return b
		}
	}
	return ev.Body
}
