package httpx

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	apperrors "github.com/proseware/auth-api/internal/errors"
	"github.com/proseware/auth-api/internal/ports"
)

// sessionCookieName is the cookie that carries the session token.
const sessionCookieName = "jwt"

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
// The client receives the standard error body with a generic message.
func Recover(logger *slog.Logger, errs *ErrorRenderer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					errs.Render(w, r, apperrors.Internal("Internal Server Error"))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// AuthGateOptions holds the dependencies of the authentication gate.
type AuthGateOptions struct {
	Tokens ports.TokenIssuer
	Users  ports.UserStore
	Errors *ErrorRenderer
	Logger *slog.Logger
}

// RequireAuth returns a middleware that admits only requests carrying a
// valid session token cookie. The token's subject must resolve to a
// stored user; the resolved user is attached to the request context.
func RequireAuth(opts AuthGateOptions) func(http.Handler) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(sessionCookieName)
			if err != nil || cookie.Value == "" {
				opts.Errors.Render(w, r, apperrors.Unauthorized("Not authorized, no token"))
				return
			}

			subjectID, err := opts.Tokens.Verify(cookie.Value)
			if err != nil {
				logger.WarnContext(r.Context(), "token verification failed",
					slog.String("path", r.URL.Path),
					slog.Any("error", err),
				)
				opts.Errors.Render(w, r, apperrors.Unauthorized("Not authorized, token failed"))
				return
			}

			// A token whose subject no longer resolves (deleted account)
			// is rejected the same way as a bad token.
			u, err := opts.Users.FindByID(r.Context(), subjectID)
			if err != nil {
				logger.WarnContext(r.Context(), "token subject did not resolve",
					slog.String("path", r.URL.Path),
					slog.Any("error", err),
				)
				opts.Errors.Render(w, r, apperrors.Unauthorized("Not authorized, token failed"))
				return
			}

			pub := u.Public()
			ctx := SetUserInContext(r.Context(), &pub)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
