package httpx

import (
	"log/slog"
	"net/http"

	"github.com/proseware/auth-api/internal/ports"
	"github.com/proseware/auth-api/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Users        *service.UserService
	Tokens       ports.TokenIssuer
	Store        ports.UserStore
	CookieDomain string
	// Configuration
	IsDev  bool
	Logger *slog.Logger
}

// NewRouter creates and configures a new HTTP router.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	errs := &ErrorRenderer{IsDev: services.IsDev, Logger: services.Logger}
	userHandlers := &UserHandlers{
		Svc:          services.Users,
		Tokens:       services.Tokens,
		CookieDomain: services.CookieDomain,
		IsDev:        services.IsDev,
		Errors:       errs,
		Logger:       services.Logger,
	}
	requireAuth := RequireAuth(AuthGateOptions{
		Tokens: services.Tokens,
		Users:  services.Store,
		Errors: errs,
		Logger: services.Logger,
	})

	registerUserRoutes(mux, userHandlers, requireAuth)
	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	return mux
}

func registerUserRoutes(mux *http.ServeMux, h *UserHandlers, requireAuth func(http.Handler) http.Handler) {
	mux.Handle("POST /api/users", http.HandlerFunc(h.Register))
	mux.Handle("POST /api/users/auth", http.HandlerFunc(h.Login))
	mux.Handle("POST /api/users/logout", http.HandlerFunc(h.Logout))
	mux.Handle("GET /api/users/profile", requireAuth(http.HandlerFunc(h.GetProfile)))
	mux.Handle("PUT /api/users/profile", requireAuth(http.HandlerFunc(h.UpdateProfile)))
}
