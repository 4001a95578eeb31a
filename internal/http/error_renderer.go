package httpx

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	apperrors "github.com/proseware/auth-api/internal/errors"
)

// errorBody is the wire shape of every error response. Stack is null
// outside development so traces never leak to production clients.
type errorBody struct {
	Message string  `json:"message"`
	Stack   *string `json:"stack"`
}

// ErrorRenderer converts service-layer errors into the API's error
// responses. One instance is shared by all handlers and middleware.
type ErrorRenderer struct {
	// IsDev controls whether responses carry a stack trace.
	IsDev  bool
	Logger *slog.Logger
}

func (e *ErrorRenderer) logger() *slog.Logger {
	if e != nil && e.Logger != nil {
		return e.Logger
	}
	return slog.Default()
}

// Render writes err as a JSON error response with the status implied by
// its error code. Unknown errors become 500s and are logged with their
// full cause chain; the client only ever sees the safe message.
func (e *ErrorRenderer) Render(w http.ResponseWriter, r *http.Request, err error) {
	status := statusForError(err)

	message := err.Error()
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
	}

	if status >= http.StatusInternalServerError {
		e.logger().ErrorContext(r.Context(), "request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
	}

	body := errorBody{Message: message}
	if e != nil && e.IsDev {
		stack := string(debug.Stack())
		body.Stack = &stack
	}

	WriteJSON(w, status, body)
}

// statusForError maps application error codes onto HTTP statuses.
// Conflicts map to 400 rather than 409 to preserve the API's historical
// duplicate-registration response.
func statusForError(err error) int {
	switch {
	case apperrors.IsValidation(err):
		return http.StatusBadRequest
	case apperrors.IsConflict(err):
		return http.StatusBadRequest
	case apperrors.IsUnauthorized(err):
		return http.StatusUnauthorized
	case apperrors.IsNotFound(err):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
