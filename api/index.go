package handler

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/oraraka-deko/gemproxy/gemproxy"
)

var proxy *gemproxy.Handler

// init runs once per cold start. The API key comes from the project's
// environment settings.
func init() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)
	proxy = gemproxy.New(gemproxy.Config{DetectEnv: true, Logger: logger})
}

// Handler is the Vercel entry point.
func Handler(w http.ResponseWriter, r *http.Request) {
	proxy.ServeHTTP(w, r)
}
