package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/oraraka-deko/gemproxy/gemproxy"
)

func main() {
	os.Exit(run())
}

func run() int {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	envFile := fs.String("env-file", ".env", "Environment file to load before reading config")
	host := fs.String("host", "127.0.0.1", "Bind host")
	port := fs.Int("port", 8888, "Listen port")
	verbose := fs.Bool("verbose", false, "Enable verbose logging")
	requireKey := fs.Bool("require-key", false, "Exit at startup when no API key is configured")
	fs.Parse(os.Args[1:])

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("env file not loaded", "path", *envFile, "error", err)
	}

	h := gemproxy.New(gemproxy.Config{DetectEnv: true, Timeout: 120 * time.Second, Logger: logger})
	if err := h.Err(); err != nil && *requireKey {
		slog.Error("configuration error", "error", err)
		return 1
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", *host, *port),
		Handler:      newRouter(h, *verbose),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 150 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nShutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}()

	slog.Info("gemproxy starting", "addr", srv.Addr, "model", h.Model())
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server error", "error", err)
		return 1
	}
	return 0
}

// newRouter mounts the proxy on the paths the browser frontend calls in
// production, so the same client code works against the dev server.
func newRouter(h *gemproxy.Handler, verbose bool) *gin.Engine {
	if !verbose {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"POST", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:   []string{gemproxy.RequestIDHeader},
		MaxAge:          24 * time.Hour,
	}))
	if verbose {
		r.Use(func(c *gin.Context) {
			slog.Debug("request", "method", c.Request.Method, "path", c.Request.URL.Path)
			c.Next()
		})
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	proxy := gin.WrapH(h)
	r.Any("/api/gemini", proxy)
	r.Any("/.netlify/functions/gemini", proxy)
	return r
}
