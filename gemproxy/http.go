package gemproxy

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
)

// maxBodyBytes limits the size of incoming request bodies.
const maxBodyBytes = 1 << 20 // 1 MB

// ServeHTTP adapts the standard request/response convention. The body is only
// read for POST (compared the same way NormalizeRequest does), so other
// methods are rejected without touching it.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	in := Inbound{Method: r.Method}
	if isPost(r.Method) && r.Body != nil {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			h.writeResult(w, h.track(r.Method, func(reqID string) (APIResult, string) {
				h.log.Warn("request.body.unreadable", "request_id", reqID, "error", err)
				return ResultForError(&RequestError{Kind: MalformedBody, Detail: err.Error()}), ""
			}))
			return
		}
		in.Body = body
	}
	h.writeResult(w, h.Handle(r.Context(), in))
}

func isPost(method string) bool {
	return strings.EqualFold(strings.TrimSpace(method), http.MethodPost)
}

func (h *Handler) writeResult(w http.ResponseWriter, res APIResult) {
	for k, v := range res.Headers {
		w.Header().Set(k, v)
	}
	w.WriteHeader(res.StatusCode)
	if err := json.NewEncoder(w).Encode(res.Body); err != nil {
		h.log.Warn("response.write.failed", "request_id", res.Headers[RequestIDHeader], "error", err)
	}
}
