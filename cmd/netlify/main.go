package main

import (
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/oraraka-deko/gemproxy/gemproxy"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	h := gemproxy.New(gemproxy.Config{DetectEnv: true, Logger: logger})
	lambda.Start(h.HandleAPIGateway)
}
