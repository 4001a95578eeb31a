package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proseware/auth-api/internal/auth"
	"github.com/proseware/auth-api/internal/data/memory"
	"github.com/proseware/auth-api/internal/domain/user"
	"github.com/proseware/auth-api/internal/service"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// newTestRouter builds a router over in-memory dependencies. The
// returned store and token service allow tests to seed state and mint
// tokens directly.
func newTestRouter(isDev bool) (http.Handler, *memory.UserStore, *auth.TokenService) {
	store := memory.NewUserStore()
	tokens := auth.NewTokenService([]byte(testSecret), time.Hour)
	users := service.NewUserService(service.UserServiceOptions{
		Store:  store,
		Hasher: auth.NewBcryptHasher(4), // MinCost keeps the tests fast
	})

	router := NewRouter(RouterServices{
		Users:  users,
		Tokens: tokens,
		Store:  store,
		IsDev:  isDev,
	})
	return router, store, tokens
}

func doJSON(router http.Handler, method, path, body string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookieName {
			return c
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

func TestRegister_CreatesUserAndSetsCookie(t *testing.T) {
	router, store, _ := newTestRouter(false)

	rec := doJSON(router, http.MethodPost, "/api/users",
		`{"name":"Ada","email":"ada@example.com","password":"hunter2"}`, nil)

	require.Equal(t, http.StatusCreated, rec.Code)

	var pub user.PublicUser
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pub))
	assert.NotEmpty(t, pub.ID)
	assert.Equal(t, "Ada", pub.Name)
	assert.Equal(t, "ada@example.com", pub.Email)
	assert.Equal(t, 1, store.Len())

	c := sessionCookie(t, rec)
	assert.NotEmpty(t, c.Value)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
	assert.Greater(t, c.MaxAge, 0)
}

func TestRegister_DevModeDropsSecureAttribute(t *testing.T) {
	router, _, _ := newTestRouter(true)

	rec := doJSON(router, http.MethodPost, "/api/users",
		`{"name":"Ada","email":"ada@example.com","password":"hunter2"}`, nil)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.False(t, sessionCookie(t, rec).Secure)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	router, _, _ := newTestRouter(false)

	body := `{"name":"Ada","email":"ada@example.com","password":"hunter2"}`
	require.Equal(t, http.StatusCreated, doJSON(router, http.MethodPost, "/api/users", body, nil).Code)

	rec := doJSON(router, http.MethodPost, "/api/users", body, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var errResp struct {
		Message string  `json:"message"`
		Stack   *string `json:"stack"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, "User already exists", errResp.Message)
	assert.Nil(t, errResp.Stack)
}

func TestRegister_InvalidBody(t *testing.T) {
	router, _, _ := newTestRouter(false)

	rec := doJSON(router, http.MethodPost, "/api/users", `{"name":`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegister_ValidationFailure(t *testing.T) {
	router, store, _ := newTestRouter(false)

	rec := doJSON(router, http.MethodPost, "/api/users",
		`{"name":"Ada","email":"not-an-email","password":"hunter2"}`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, store.Len())
}

func TestLogin_Success(t *testing.T) {
	router, _, _ := newTestRouter(false)

	require.Equal(t, http.StatusCreated, doJSON(router, http.MethodPost, "/api/users",
		`{"name":"Ada","email":"ada@example.com","password":"hunter2"}`, nil).Code)

	rec := doJSON(router, http.MethodPost, "/api/users/auth",
		`{"email":"ada@example.com","password":"hunter2"}`, nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var pub user.PublicUser
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pub))
	assert.Equal(t, "ada@example.com", pub.Email)
	assert.NotEmpty(t, sessionCookie(t, rec).Value)
}

func TestLogin_BadCredentialsAreIndistinguishable(t *testing.T) {
	router, _, _ := newTestRouter(false)

	require.Equal(t, http.StatusCreated, doJSON(router, http.MethodPost, "/api/users",
		`{"name":"Ada","email":"ada@example.com","password":"hunter2"}`, nil).Code)

	for name, body := range map[string]string{
		"wrong password": `{"email":"ada@example.com","password":"wrong"}`,
		"unknown email":  `{"email":"nobody@example.com","password":"hunter2"}`,
	} {
		rec := doJSON(router, http.MethodPost, "/api/users/auth", body, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, name)

		var errResp struct {
			Message string `json:"message"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp), name)
		assert.Equal(t, "Invalid email or password", errResp.Message, name)
	}
}

func TestLogout_ClearsCookie(t *testing.T) {
	router, _, _ := newTestRouter(false)

	rec := doJSON(router, http.MethodPost, "/api/users/logout", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Logged out successfully", resp["message"])

	c := sessionCookie(t, rec)
	assert.Empty(t, c.Value)
	assert.Negative(t, c.MaxAge)
}

func TestProfile_RoundTrip(t *testing.T) {
	router, _, _ := newTestRouter(false)

	reg := doJSON(router, http.MethodPost, "/api/users",
		`{"name":"Ada","email":"ada@example.com","password":"hunter2"}`, nil)
	require.Equal(t, http.StatusCreated, reg.Code)
	cookies := []*http.Cookie{sessionCookie(t, reg)}

	rec := doJSON(router, http.MethodGet, "/api/users/profile", "", cookies)
	require.Equal(t, http.StatusOK, rec.Code)

	var pub user.PublicUser
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pub))
	assert.Equal(t, "Ada", pub.Name)
	assert.Equal(t, "ada@example.com", pub.Email)
}

func TestUpdateProfile_PatchSemantics(t *testing.T) {
	router, _, _ := newTestRouter(false)

	reg := doJSON(router, http.MethodPost, "/api/users",
		`{"name":"Ada","email":"ada@example.com","password":"hunter2"}`, nil)
	require.Equal(t, http.StatusCreated, reg.Code)
	cookies := []*http.Cookie{sessionCookie(t, reg)}

	rec := doJSON(router, http.MethodPut, "/api/users/profile", `{"name":"Ada L."}`, cookies)
	require.Equal(t, http.StatusOK, rec.Code)

	var pub user.PublicUser
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pub))
	assert.Equal(t, "Ada L.", pub.Name)
	assert.Equal(t, "ada@example.com", pub.Email, "omitted email keeps stored value")
}

func TestUpdateProfile_PasswordRotation(t *testing.T) {
	router, _, _ := newTestRouter(false)

	reg := doJSON(router, http.MethodPost, "/api/users",
		`{"name":"Ada","email":"ada@example.com","password":"hunter2"}`, nil)
	require.Equal(t, http.StatusCreated, reg.Code)
	cookies := []*http.Cookie{sessionCookie(t, reg)}

	rec := doJSON(router, http.MethodPut, "/api/users/profile", `{"password":"correcthorse"}`, cookies)
	require.Equal(t, http.StatusOK, rec.Code)

	old := doJSON(router, http.MethodPost, "/api/users/auth",
		`{"email":"ada@example.com","password":"hunter2"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, old.Code)

	fresh := doJSON(router, http.MethodPost, "/api/users/auth",
		`{"email":"ada@example.com","password":"correcthorse"}`, nil)
	assert.Equal(t, http.StatusOK, fresh.Code)
}

func TestErrorBody_StackInDevOnly(t *testing.T) {
	for _, tc := range []struct {
		name      string
		isDev     bool
		wantStack bool
	}{
		{name: "production hides stack", isDev: false, wantStack: false},
		{name: "development includes stack", isDev: true, wantStack: true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			router, _, _ := newTestRouter(tc.isDev)

			rec := doJSON(router, http.MethodPost, "/api/users/auth",
				`{"email":"nobody@example.com","password":"whatever"}`, nil)
			require.Equal(t, http.StatusUnauthorized, rec.Code)

			var errResp struct {
				Message string  `json:"message"`
				Stack   *string `json:"stack"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
			if tc.wantStack {
				require.NotNil(t, errResp.Stack)
				assert.NotEmpty(t, *errResp.Stack)
			} else {
				assert.Nil(t, errResp.Stack)
			}
		})
	}
}
