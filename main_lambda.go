//go:build lambda

package main

import (
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"arrangio/internal/partition"
)

func main() {
	logger := newLogger(os.Getenv("ARRANGIO_LOG_LEVEL"), "json", os.Stderr)
	slog.SetDefault(logger)

	solver, err := partition.NewSolver(partition.DefaultConfig(), partition.WithLogger(logger))
	if err != nil {
		logger.Error("solver setup failed", "error", err)
		os.Exit(1)
	}
	lambda.Start(newHandler(solver, logger))
}
