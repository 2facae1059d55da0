package gemproxy

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// RequestIDHeader carries the per-request ID on every response.
const RequestIDHeader = "X-Request-Id"

// Handler turns one inbound call into one APIResult. It holds no per-request
// state, so a single Handler serves concurrent requests.
type Handler struct {
	cfg      Config
	provider providerClient
	// initErr is set when the configuration cannot serve any request.
	// It is returned as a 500 before any upstream call is attempted.
	initErr error
	log     *slog.Logger
}

// New creates a Handler with the given config.
// Configuration problems are logged once and then reported on every request
// instead of failing here; call Config.Validate first to fail fast.
func New(cfg Config) *Handler {
	cfg = cfg.withDefaults()
	h := &Handler{cfg: cfg, log: cfg.Logger}

	if err := cfg.Validate(); err != nil {
		h.initErr = err
		h.log.Error("config.invalid", "provider", cfg.Provider, "error", err)
		return h
	}
	pc, err := newProvider(cfg)
	if err != nil {
		h.initErr = err
		h.log.Error("provider.init.failed", "provider", cfg.Provider, "error", err)
		return h
	}
	h.provider = pc
	return h
}

// Err reports the configuration error every request will fail with, if any.
func (h *Handler) Err() error {
	return h.initErr
}

// Model returns the upstream model identifier used for every call.
func (h *Handler) Model() string {
	return h.cfg.Model
}

// Handle runs the full request cycle: validate, build the call, invoke the
// upstream once and normalize whatever came back. It never returns an error;
// every failure is already folded into the result.
func (h *Handler) Handle(ctx context.Context, in Inbound) APIResult {
	return h.track(in.Method, func(reqID string) (APIResult, string) {
		return h.handle(ctx, reqID, in)
	})
}

// track assigns a request ID, stamps it on the result of fn and logs the
// completed request. Adapters that fail before reaching Handle go through it too.
func (h *Handler) track(method string, fn func(reqID string) (APIResult, string)) APIResult {
	start := time.Now()
	reqID := uuid.NewString()

	res, mode := fn(reqID)
	res.Headers[RequestIDHeader] = reqID

	h.log.Info("request.done",
		"request_id", reqID,
		"method", method,
		"mode", mode,
		"status", res.StatusCode,
		"duration", time.Since(start),
	)
	return res
}

func (h *Handler) handle(ctx context.Context, reqID string, in Inbound) (APIResult, string) {
	req, err := NormalizeRequest(in)
	if err != nil {
		h.log.Debug("request.invalid", "request_id", reqID, "error", err)
		return ResultForError(err), ""
	}

	mode := "chat"
	if req.IsSearch {
		mode = "search"
	}

	if h.initErr != nil {
		h.log.Error("request.unconfigured", "request_id", reqID, "error", h.initErr)
		return ResultForError(h.initErr), mode
	}

	spec := BuildCallSpec(req, h.cfg.Model)
	outcome, err := h.provider.Generate(ctx, spec)
	if err != nil {
		h.log.Error("upstream.failed",
			"request_id", reqID,
			"model", spec.Model,
			"canceled", errors.Is(err, context.Canceled),
			"error", err,
		)
	} else if outcome.Kind != OutcomeSuccess {
		h.log.Warn("upstream.no_text", "request_id", reqID, "model", spec.Model, "outcome", outcome.Kind.String(), "reason", outcome.Message)
	}
	return NormalizeOutcome(outcome, err), mode
}
