package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/docuvia/docuvia-api/internal/dto"
	"github.com/docuvia/docuvia-api/internal/handler"
	"github.com/docuvia/docuvia-api/internal/middleware"
	"github.com/docuvia/docuvia-api/internal/service"
)

type mockUserService struct {
	registerResp dto.UserResponse
	registerErr  error
	loginResp    dto.LoginResponse
	loginErr     error
	listResp     []dto.UserResponse
	getResp      dto.UserResponse
	getErr       error
	updateErr    error
	deactivated  []uint
	lastCtx      context.Context
}

func (m *mockUserService) Register(_ context.Context, _ dto.RegisterUserRequest) (dto.UserResponse, error) {
	return m.registerResp, m.registerErr
}

func (m *mockUserService) Login(_ context.Context, _ dto.LoginRequest) (dto.LoginResponse, error) {
	return m.loginResp, m.loginErr
}

func (m *mockUserService) ListActive(ctx context.Context) ([]dto.UserResponse, error) {
	m.lastCtx = ctx
	return m.listResp, nil
}

func (m *mockUserService) Get(_ context.Context, _ uint) (dto.UserResponse, error) {
	return m.getResp, m.getErr
}

func (m *mockUserService) UpdateRole(_ context.Context, _ uint, _ dto.UpdateRoleRequest) (dto.UserResponse, error) {
	return m.getResp, m.updateErr
}

func (m *mockUserService) Deactivate(_ context.Context, id uint) error {
	m.deactivated = append(m.deactivated, id)
	return nil
}

func newUserApp(svc service.UserService) *fiber.App {
	app := fiber.New()
	handler.NewUserHandler(svc, zerolog.New(io.Discard)).Register(app.Group("/api/v1/users"))
	return app
}

func jsonRequest(t *testing.T, method, target string, payload interface{}) *http.Request {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeResponse(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()

	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(target))
}

func TestUserHandlerRegisterCreated(t *testing.T) {
	svc := &mockUserService{registerResp: dto.UserResponse{ID: 7, Email: "new@example.com"}}
	app := newUserApp(svc)

	req := jsonRequest(t, http.MethodPost, "/api/v1/users/register", dto.RegisterUserRequest{
		Email:    "new@example.com",
		Password: "strong-password",
		FullName: "New User",
	})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var body struct {
		Success bool            `json:"success"`
		Message string          `json:"message"`
		Data    map[string]uint `json:"data"`
	}
	decodeResponse(t, resp, &body)
	require.True(t, body.Success)
	require.Equal(t, "user registered", body.Message)
	require.Equal(t, uint(7), body.Data["id"])
}

func TestUserHandlerRegisterDuplicateEmail(t *testing.T) {
	svc := &mockUserService{registerErr: service.ErrEmailTaken}
	app := newUserApp(svc)

	req := jsonRequest(t, http.MethodPost, "/api/v1/users/register", dto.RegisterUserRequest{
		Email:    "dup@example.com",
		Password: "strong-password",
		FullName: "Dup",
	})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestUserHandlerLoginRejections(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"bad credentials", service.ErrInvalidCredentials, fiber.StatusUnauthorized},
		{"deactivated account", service.ErrUserInactive, fiber.StatusUnauthorized},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := newUserApp(&mockUserService{loginErr: tc.err})

			req := jsonRequest(t, http.MethodPost, "/api/v1/users/login", dto.LoginRequest{
				Email:    "who@example.com",
				Password: "whatever",
			})
			resp, err := app.Test(req)
			require.NoError(t, err)
			require.Equal(t, tc.status, resp.StatusCode)
		})
	}
}

func TestUserHandlerGetNotFound(t *testing.T) {
	app := newUserApp(&mockUserService{getErr: service.ErrUserNotFound})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/users/42", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestUserHandlerInvalidID(t *testing.T) {
	app := newUserApp(&mockUserService{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/users/abc", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/users/0", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestUserHandlerPropagatesCorrelationID(t *testing.T) {
	svc := &mockUserService{}
	app := fiber.New()
	app.Use(middleware.CorrelationID())
	handler.NewUserHandler(svc, zerolog.New(io.Discard)).Register(app.Group("/api/v1/users"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	req.Header.Set("X-Correlation-ID", "corr-123")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NotNil(t, svc.lastCtx)
	require.Equal(t, "corr-123", middleware.CorrelationIDFromContext(svc.lastCtx))
}

func TestUserHandlerDeactivate(t *testing.T) {
	svc := &mockUserService{}
	app := newUserApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/v1/users/3", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, []uint{3}, svc.deactivated)
}
