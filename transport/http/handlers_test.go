package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wealthpath/onboard/adapters/store"
	"github.com/wealthpath/onboard/adapters/tokenizer"
	"github.com/wealthpath/onboard/internal/config"
	"github.com/wealthpath/onboard/service"
)

type stubNotifier struct {
	fail bool
}

func (n *stubNotifier) SendWelcome(ctx context.Context, email, fullName string) error {
	if n.fail {
		return errors.New("mailer down")
	}
	return nil
}

type fixture struct {
	router   *gin.Engine
	store    *store.MemoryStore
	notifier *stubNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mem := store.NewMemoryStore()
	codec := tokenizer.NewJWTTokenizer(config.Tokens{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     time.Minute,
		RefreshTTL:    time.Hour,
	})
	notifier := &stubNotifier{}

	auth := service.NewAuthService(mem, codec, notifier)
	profiles := service.NewProfileService(mem)
	cookies := NewCookieOptions("", false, 3600)

	return &fixture{
		router:   SetupRouter(auth, profiles, codec, cookies),
		store:    mem,
		notifier: notifier,
	}
}

type envelope struct {
	StatusCode int            `json:"statusCode"`
	Data       map[string]any `json:"data"`
	Message    string         `json:"message"`
	Success    bool           `json:"success"`
}

func (f *fixture) do(t *testing.T, method, path string, body any, mutate ...func(*http.Request)) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, m := range mutate {
		m(req)
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	var env envelope
	// Some responses carry non-object data; tolerate that.
	_ = json.Unmarshal(rec.Body.Bytes(), &env)

	return rec, env
}

func withCookie(name, value string) func(*http.Request) {
	return func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}
}

func withHeader(name, value string) func(*http.Request) {
	return func(req *http.Request) {
		req.Header.Set(name, value)
	}
}

func (f *fixture) register(t *testing.T, fullName, email, password string) envelope {
	t.Helper()
	rec, env := f.do(t, http.MethodPost, "/register", gin.H{
		"fullName": fullName,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return env
}

func (f *fixture) login(t *testing.T, email, password string) (string, string) {
	t.Helper()
	rec, env := f.do(t, http.MethodPost, "/login", gin.H{"email": email, "password": password})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	access, _ := env.Data["accessToken"].(string)
	refresh, _ := env.Data["refreshToken"].(string)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	return access, refresh
}

func TestRegisterEndpoint(t *testing.T) {
	f := newFixture(t)

	env := f.register(t, "Alice", "a@x.com", "secret1")
	assert.True(t, env.Success)
	assert.Equal(t, http.StatusCreated, env.StatusCode)
	assert.Equal(t, "Alice", env.Data["fullName"])
	assert.NotContains(t, env.Data, "passwordHash")
	assert.NotContains(t, env.Data, "refreshToken")

	// Duplicate email is a conflict; the first record is untouched.
	rec, env := f.do(t, http.MethodPost, "/register", gin.H{
		"fullName": "Mallory", "email": "A@X.com", "password": "secret2",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.False(t, env.Success)

	f.login(t, "a@x.com", "secret1")
}

func TestRegisterValidation(t *testing.T) {
	f := newFixture(t)

	rec, env := f.do(t, http.MethodPost, "/register", gin.H{"email": "a@x.com"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "All fields are required", env.Message)
	assert.False(t, env.Success)
}

func TestRegisterNotificationFailureIsServerError(t *testing.T) {
	f := newFixture(t)
	f.notifier.fail = true

	rec, env := f.do(t, http.MethodPost, "/register", gin.H{
		"fullName": "Alice", "email": "a@x.com", "password": "secret1",
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.False(t, env.Success)

	// The account exists despite the reported failure.
	_, err := f.store.UserByEmail(context.Background(), "a@x.com")
	assert.NoError(t, err)
}

func TestLoginSetsHardenedCookies(t *testing.T) {
	f := newFixture(t)
	f.register(t, "Alice", "a@x.com", "secret1")

	rec, env := f.do(t, http.MethodPost, "/login", gin.H{"email": "a@x.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User logged in successfully", env.Message)

	user, ok := env.Data["user"].(map[string]any)
	require.True(t, ok)
	assert.NotContains(t, user, "passwordHash")
	assert.NotContains(t, user, "refreshToken")

	cookies := rec.Result().Cookies()
	var names []string
	for _, cookie := range cookies {
		names = append(names, cookie.Name)
		assert.True(t, cookie.HttpOnly, "%s must be HTTP-only", cookie.Name)
	}
	assert.ElementsMatch(t, []string{"accessToken", "refreshToken"}, names)
}

func TestLoginFailures(t *testing.T) {
	f := newFixture(t)
	f.register(t, "Alice", "a@x.com", "secret1")

	rec, _ := f.do(t, http.MethodPost, "/login", gin.H{"email": "a@x.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = f.do(t, http.MethodPost, "/login", gin.H{"email": "nobody@x.com", "password": "secret1"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = f.do(t, http.MethodPost, "/login", gin.H{"email": "", "password": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRefreshCarriers(t *testing.T) {
	f := newFixture(t)
	f.register(t, "Alice", "a@x.com", "secret1")

	// Cookie carrier has priority over a bogus body value.
	_, refresh := f.login(t, "a@x.com", "secret1")
	rec, _ := f.do(t, http.MethodPost, "/refresh-token",
		gin.H{"refreshToken": "bogus"},
		withCookie("refreshToken", refresh),
	)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Body carrier.
	_, refresh = f.login(t, "a@x.com", "secret1")
	rec, _ = f.do(t, http.MethodPost, "/refresh-token", gin.H{"refreshToken": refresh})
	assert.Equal(t, http.StatusOK, rec.Code)

	// Header carrier, lowest priority.
	_, refresh = f.login(t, "a@x.com", "secret1")
	rec, _ = f.do(t, http.MethodPost, "/refresh-token", nil,
		withHeader("x-refresh-token", refresh),
	)
	assert.Equal(t, http.StatusOK, rec.Code)

	// No carrier at all.
	rec, env := f.do(t, http.MethodPost, "/refresh-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Unauthorized request", env.Message)
}

func TestProtectedRoutesRequireAccessToken(t *testing.T) {
	f := newFixture(t)

	rec, _ := f.do(t, http.MethodPost, "/logout", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = f.do(t, http.MethodPost, "/risk-appetite", gin.H{"riskLevel": 3},
		withHeader("Authorization", "Bearer not-a-token"),
	)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTamperedAccessTokenRejected(t *testing.T) {
	f := newFixture(t)
	f.register(t, "Alice", "a@x.com", "secret1")
	access, _ := f.login(t, "a@x.com", "secret1")

	parts := strings.Split(access, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))

	rec, _ := f.do(t, http.MethodPost, "/logout", nil, withCookie("accessToken", tampered))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProfileFormEndpoints(t *testing.T) {
	f := newFixture(t)
	f.register(t, "Alice", "a@x.com", "secret1")
	access, _ := f.login(t, "a@x.com", "secret1")
	auth := withCookie("accessToken", access)

	rec, env := f.do(t, http.MethodPost, "/family-background", gin.H{
		"householdSize": 4,
		"dependents":    0, // zero is a valid answer, not a missing field
		"familyIncome":  50000,
	}, auth)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, true, env.Data["completed"])
	assert.Equal(t, "family-background", env.Data["section"])

	rec, env = f.do(t, http.MethodPost, "/career-info", gin.H{
		"employmentStatus": "employed",
		"jobStability":     4,
		"incomeLevel":      3,
	}, auth)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, true, env.Data["completed"])

	rec, env = f.do(t, http.MethodPost, "/expenses", gin.H{
		"fixedExpenditure":    "1250.50",
		"variableExpenditure": "340.25",
	}, auth)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec, _ = f.do(t, http.MethodPost, "/risk-appetite", gin.H{"riskLevel": 2}, auth)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, _ = f.do(t, http.MethodPost, "/financial-goals", gin.H{
		"goalType":       "retirement",
		"expectedReturn": "7%",
	}, auth)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, _ = f.do(t, http.MethodPost, "/existing-debt", gin.H{
		"currentLoans":   12000,
		"creditCardDebt": 800,
		"otherDebt":      0,
	}, auth)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Missing required field fails validation.
	rec, env = f.do(t, http.MethodPost, "/expenses", gin.H{"fixedExpenditure": 100}, auth)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "All fields are required", env.Message)

	// All six submissions are linked to the user.
	rec2 := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: access})
	f.router.ServeHTTP(rec2, req)
	require.Equal(t, http.StatusOK, rec2.Code)

	var listEnv struct {
		Data []map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec2.Body.Bytes(), &listEnv))
	assert.Len(t, listEnv.Data, 6)
}

func TestSessionLifecycleOverHTTP(t *testing.T) {
	f := newFixture(t)

	f.register(t, "Alice", "a@x.com", "secret1")

	accessOne, refreshOne := f.login(t, "a@x.com", "secret1")

	rec, env := f.do(t, http.MethodPost, "/refresh-token", nil,
		withCookie("refreshToken", refreshOne),
	)
	require.Equal(t, http.StatusOK, rec.Code)
	accessTwo, _ := env.Data["accessToken"].(string)
	refreshTwo, _ := env.Data["refreshToken"].(string)
	assert.NotEqual(t, accessOne, accessTwo)
	assert.NotEqual(t, refreshOne, refreshTwo)

	// Replaying the rotated token fails before its expiry.
	rec, env = f.do(t, http.MethodPost, "/refresh-token", nil,
		withCookie("refreshToken", refreshOne),
	)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Refresh token is expired or used", env.Message)

	// Logout clears both cookies.
	rec, _ = f.do(t, http.MethodPost, "/logout", nil, withCookie("accessToken", accessTwo))
	require.Equal(t, http.StatusOK, rec.Code)
	for _, cookie := range rec.Result().Cookies() {
		assert.Empty(t, cookie.Value)
		assert.Negative(t, cookie.MaxAge)
	}

	// The pre-logout refresh token is dead too.
	rec, _ = f.do(t, http.MethodPost, "/refresh-token", nil,
		withCookie("refreshToken", refreshTwo),
	)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
