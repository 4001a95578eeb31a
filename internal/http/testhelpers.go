package httpx

import (
	"io"
	"log/slog"
)

// newDiscardLogger returns a logger that drops everything. Middleware
// tests use it to keep test output clean.
func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
