package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/employeehub/payroll-backend-go/internal/domain/auth"
	"github.com/employeehub/payroll-backend-go/internal/pkg/database"
	"github.com/employeehub/payroll-backend-go/internal/pkg/jwt"
	"github.com/employeehub/payroll-backend-go/internal/repository/postgresql"
	authService "github.com/employeehub/payroll-backend-go/internal/service/auth"
	"github.com/stretchr/testify/assert"
)

var (
	testHandlerDB *database.DB
)

const (
	handlerTestAccessExp = "1h"
	handlerTestSecret    = "test-secret-key-for-jwt"
)

func handlerTestInit(t *testing.T) {
	t.Helper()
	if testHandlerDB != nil {
		return
	}
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	var err error
	testHandlerDB, err = database.NewPostgreSQLDB(dsn)
	if err != nil {
		panic("Failed to connect to test database: " + err.Error())
	}
}

func truncateHandlerTables(t *testing.T, ctx context.Context) {
	t.Helper()
	tables := []string{"users"}

	for _, table := range tables {
		_, err := testHandlerDB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			continue
		}
	}
}

func createTestAuthHandler() AuthHandler {
	userRepo := postgresql.NewUserRepository(testHandlerDB)
	jwtSvc := jwt.NewJWTService(handlerTestSecret, handlerTestAccessExp)
	authSvc := authService.NewAuthService(testHandlerDB, userRepo, jwtSvc)
	return NewAuthHandler(authSvc)
}

// ===== HANDLER TESTS =====

func TestAuthHandler_Register_Success(t *testing.T) {
	ctx := context.Background()
	handlerTestInit(t)
	truncateHandlerTables(t, ctx)

	handler := createTestAuthHandler()

	testEmail := fmt.Sprintf("register-%d@example.com", time.Now().UnixNano())
	registerReq := auth.RegisterRequest{
		Name:     "Test Admin",
		Email:    testEmail,
		Password: "SecurePass123!",
		Role:     "admin",
	}
	body, _ := json.Marshal(registerReq)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(body))
	req = req.WithContext(ctx)
	w := httptest.NewRecorder()

	handler.Register(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	err := json.NewDecoder(w.Body).Decode(&resp)
	assert.NoError(t, err)
	assert.True(t, resp["success"].(bool))

	data := resp["data"].(map[string]interface{})
	assert.NotEmpty(t, data["access_token"])
}

func TestAuthHandler_Register_ShortPassword(t *testing.T) {
	ctx := context.Background()
	handlerTestInit(t)
	truncateHandlerTables(t, ctx)

	handler := createTestAuthHandler()

	registerReq := auth.RegisterRequest{
		Name:     "Test User",
		Email:    fmt.Sprintf("short-%d@example.com", time.Now().UnixNano()),
		Password: "short",
	}
	body, _ := json.Marshal(registerReq)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(body))
	req = req.WithContext(ctx)
	w := httptest.NewRecorder()

	handler.Register(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp map[string]interface{}
	err := json.NewDecoder(w.Body).Decode(&resp)
	assert.NoError(t, err)
	assert.False(t, resp["success"].(bool))
}

func TestAuthHandler_Register_InvalidJSON(t *testing.T) {
	ctx := context.Background()
	handlerTestInit(t)

	handler := createTestAuthHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader([]byte("invalid json")))
	req = req.WithContext(ctx)
	w := httptest.NewRecorder()

	handler.Register(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Login_Success(t *testing.T) {
	ctx := context.Background()
	handlerTestInit(t)
	truncateHandlerTables(t, ctx)

	handler := createTestAuthHandler()

	testEmail := fmt.Sprintf("login-%d@example.com", time.Now().UnixNano())
	registerBody, _ := json.Marshal(auth.RegisterRequest{
		Name:     "Login User",
		Email:    testEmail,
		Password: "SecurePass123!",
	})
	registerRec := httptest.NewRecorder()
	handler.Register(registerRec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(registerBody)).WithContext(ctx))
	assert.Equal(t, http.StatusCreated, registerRec.Code)

	loginBody, _ := json.Marshal(auth.LoginRequest{
		Email:    testEmail,
		Password: "SecurePass123!",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(loginBody))
	req = req.WithContext(ctx)
	w := httptest.NewRecorder()

	handler.Login(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	err := json.NewDecoder(w.Body).Decode(&resp)
	assert.NoError(t, err)
	assert.True(t, resp["success"].(bool))

	data := resp["data"].(map[string]interface{})
	assert.NotEmpty(t, data["access_token"])
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	ctx := context.Background()
	handlerTestInit(t)
	truncateHandlerTables(t, ctx)

	handler := createTestAuthHandler()

	testEmail := fmt.Sprintf("wrongpass-%d@example.com", time.Now().UnixNano())
	registerBody, _ := json.Marshal(auth.RegisterRequest{
		Name:     "Wrong Pass User",
		Email:    testEmail,
		Password: "SecurePass123!",
	})
	registerRec := httptest.NewRecorder()
	handler.Register(registerRec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(registerBody)).WithContext(ctx))
	assert.Equal(t, http.StatusCreated, registerRec.Code)

	loginBody, _ := json.Marshal(auth.LoginRequest{
		Email:    testEmail,
		Password: "NotThePassword1!",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(loginBody))
	req = req.WithContext(ctx)
	w := httptest.NewRecorder()

	handler.Login(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Login_UnknownEmail(t *testing.T) {
	ctx := context.Background()
	handlerTestInit(t)
	truncateHandlerTables(t, ctx)

	handler := createTestAuthHandler()

	loginBody, _ := json.Marshal(auth.LoginRequest{
		Email:    "nobody@example.com",
		Password: "SecurePass123!",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(loginBody))
	req = req.WithContext(ctx)
	w := httptest.NewRecorder()

	handler.Login(w, req)

	// Unknown email and wrong password are indistinguishable.
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
