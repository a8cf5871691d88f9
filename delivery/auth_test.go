package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/CeKulit/cekulit-backend/domain"
	"github.com/CeKulit/cekulit-backend/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryAccountRepo struct {
	mu       sync.Mutex
	accounts map[string]*domain.Account
}

func newMemoryAccountRepo() *memoryAccountRepo {
	return &memoryAccountRepo{accounts: make(map[string]*domain.Account)}
}

func (r *memoryAccountRepo) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[email]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	copied := *account
	return &copied, nil
}

func (r *memoryAccountRepo) Create(_ context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.accounts[account.Email]; exists {
		return domain.ErrAccountExists
	}
	copied := *account
	r.accounts[account.Email] = &copied
	return nil
}

func (r *memoryAccountRepo) UpdateFields(_ context.Context, email string, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[email]
	if !ok {
		return domain.ErrAccountNotFound
	}

	for key, value := range fields {
		switch key {
		case "name":
			account.Name = value.(string)
		case "age":
			account.Age = value.(string)
		case "gender":
			account.Gender = value.(string)
		case "password":
			account.Password = value.(string)
		case "isVerified":
			account.IsVerified = value.(bool)
		case "is_reset_password":
			account.IsResetPending = value.(bool)
		case "avatarUrl":
			account.AvatarURL = value.(string)
		case "streak":
			account.Streak = value.(int)
		case "lastHit":
			hit := value.(time.Time)
			account.LastHit = &hit
		case "otp":
			if value == nil {
				account.OTP = nil
			} else {
				otp := value.(string)
				account.OTP = &otp
			}
		}
	}
	return nil
}

func (r *memoryAccountRepo) currentOTP(t *testing.T, email string) string {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[email]
	require.True(t, ok, "account %s not stored", email)
	require.NotNil(t, account.OTP, "no outstanding challenge for %s", email)
	return *account.OTP
}

type noopMailer struct{}

func (noopMailer) Send(_, _, _ string) error { return nil }

func newTestRouter() (*gin.Engine, *memoryAccountRepo) {
	gin.SetMode(gin.TestMode)

	repo := newMemoryAccountRepo()
	authService := service.NewAuthService(repo, nil, noopMailer{},
		"test-secret-key-at-least-32-chars!!",
		"https://assets.example.com/edit-profile/avatar.png")

	app := gin.New()
	NewAuthHandler(app, authService, nil)
	NewProfileHandler(app, authService)
	return app, repo
}

func performJSON(app *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)
	return w
}

func TestPing(t *testing.T) {
	app, _ := newTestRouter()

	w := performJSON(app, http.MethodGet, "/ping", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pong")
}

func TestRegisterValidation(t *testing.T) {
	app, _ := newTestRouter()

	tests := []struct {
		name string
		body gin.H
	}{
		{"missing name", gin.H{"email": "a@b.com", "password": "secret12"}},
		{"missing email", gin.H{"name": "Alice", "password": "secret12"}},
		{"missing password", gin.H{"name": "Alice", "email": "a@b.com"}},
		{"invalid email", gin.H{"name": "Alice", "email": "not-an-email", "password": "secret12"}},
		{"short password", gin.H{"name": "Alice", "email": "a@b.com", "password": "short"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performJSON(app, http.MethodPost, "/register", tt.body, "")
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestRegisterVerifyLogin_Scenario(t *testing.T) {
	app, repo := newTestRouter()

	w := performJSON(app, http.MethodPost, "/register", gin.H{
		"name": "Alice", "email": "a@b.com", "password": "secret12",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	// duplicate registration conflicts
	w = performJSON(app, http.MethodPost, "/register", gin.H{
		"name": "Alice", "email": "a@b.com", "password": "secret12",
	}, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	// login before verification is forbidden even with the right password
	w = performJSON(app, http.MethodPost, "/login", gin.H{
		"email": "a@b.com", "password": "secret12",
	}, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "not verified")

	// wrong OTP is forbidden
	otp := repo.currentOTP(t, "a@b.com")
	wrong := "0000"
	if otp == wrong {
		wrong = "9999"
	}
	w = performJSON(app, http.MethodPost, "/otp", gin.H{"email": "a@b.com", "otp": wrong}, "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = performJSON(app, http.MethodPost, "/otp", gin.H{"email": "a@b.com", "otp": otp}, "")
	require.Equal(t, http.StatusOK, w.Code)

	// re-verifying outside a reset flow is a 400
	w = performJSON(app, http.MethodPost, "/otp", gin.H{"email": "a@b.com", "otp": otp}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// bad password is a 401
	w = performJSON(app, http.MethodPost, "/login", gin.H{
		"email": "a@b.com", "password": "wrongpass",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = performJSON(app, http.MethodPost, "/login", gin.H{
		"email": "a@b.com", "password": "secret12",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)

	var loginResp struct {
		UserID string `json:"userId"`
		Token  string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loginResp))
	assert.NotEmpty(t, loginResp.UserID)
	require.NotEmpty(t, loginResp.Token)
	assert.NotContains(t, w.Body.String(), "password")

	// the token opens the protected profile route
	w = performJSON(app, http.MethodGet, "/profile", nil, loginResp.Token)
	require.Equal(t, http.StatusOK, w.Code)

	var profile struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.Equal(t, "Alice", profile.Name)
	assert.Equal(t, "a@b.com", profile.Email)
}

func TestPasswordReset_Scenario(t *testing.T) {
	app, repo := newTestRouter()

	w := performJSON(app, http.MethodPost, "/register", gin.H{
		"name": "Alice", "email": "a@b.com", "password": "secret12",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)
	w = performJSON(app, http.MethodPost, "/otp", gin.H{"email": "a@b.com", "otp": repo.currentOTP(t, "a@b.com")}, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = performJSON(app, http.MethodPost, "/forget-password", gin.H{"email": "nobody@b.com"}, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = performJSON(app, http.MethodPost, "/forget-password", gin.H{"email": "a@b.com"}, "")
	require.Equal(t, http.StatusOK, w.Code)

	// resetting before the new OTP is consumed is forbidden
	w = performJSON(app, http.MethodPost, "/reset-password", gin.H{
		"email": "a@b.com", "newPassword": "newpass99",
	}, "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = performJSON(app, http.MethodPost, "/otp", gin.H{"email": "a@b.com", "otp": repo.currentOTP(t, "a@b.com")}, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = performJSON(app, http.MethodPost, "/reset-password", gin.H{
		"email": "a@b.com", "newPassword": "newpass99",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)

	// old password is dead, new one works
	w = performJSON(app, http.MethodPost, "/login", gin.H{
		"email": "a@b.com", "password": "secret12",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = performJSON(app, http.MethodPost, "/login", gin.H{
		"email": "a@b.com", "password": "newpass99",
	}, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBearerGuard(t *testing.T) {
	app, _ := newTestRouter()

	w := performJSON(app, http.MethodGet, "/profile", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Access Denied")

	w = performJSON(app, http.MethodGet, "/profile", nil, "garbage.token.here")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid token")

	w = performJSON(app, http.MethodPost, "/streak", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestStreakEndpoint(t *testing.T) {
	app, repo := newTestRouter()

	w := performJSON(app, http.MethodPost, "/register", gin.H{
		"name": "Alice", "email": "a@b.com", "password": "secret12",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)
	w = performJSON(app, http.MethodPost, "/otp", gin.H{"email": "a@b.com", "otp": repo.currentOTP(t, "a@b.com")}, "")
	require.Equal(t, http.StatusOK, w.Code)
	w = performJSON(app, http.MethodPost, "/login", gin.H{"email": "a@b.com", "password": "secret12"}, "")
	require.Equal(t, http.StatusOK, w.Code)

	var loginResp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loginResp))

	w = performJSON(app, http.MethodPost, "/streak", nil, loginResp.Token)
	require.Equal(t, http.StatusOK, w.Code)

	var streakResp struct {
		Streak  int       `json:"streak"`
		LastHit time.Time `json:"lastHit"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &streakResp))
	assert.Equal(t, 1, streakResp.Streak)
	assert.WithinDuration(t, time.Now(), streakResp.LastHit, time.Minute)

	w = performJSON(app, http.MethodPost, "/streak", nil, loginResp.Token)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &streakResp))
	assert.Equal(t, 2, streakResp.Streak)
}
