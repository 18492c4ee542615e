package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/albedo-hq/support-portal/internal/auth"
	"github.com/albedo-hq/support-portal/internal/domain"
	"github.com/albedo-hq/support-portal/internal/observability"
	apperrors "github.com/albedo-hq/support-portal/pkg/util"
)

func newTestApp(metrics *observability.Metrics) *fiber.App {
	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), metrics, 5*time.Second)
	return app
}

func decodeBody(t *testing.T, resp io.Reader) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp).Decode(&body))
	return body
}

func TestErrorEnvelopeIsFlat(t *testing.T) {
	app := newTestApp(nil)
	app.Get("/missing", func(c *fiber.Ctx) error {
		return apperrors.NewNotFound("Ticket")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)

	body := decodeBody(t, resp.Body)
	assert.Equal(t, "Ticket not found", body["error"])
	_, hasDetails := body["details"]
	assert.False(t, hasDetails)
}

func TestValidationErrorEnvelopeCarriesDetails(t *testing.T) {
	app := newTestApp(nil)
	app.Post("/submit", func(c *fiber.Ctx) error {
		return apperrors.NewValidationError([]string{"email: is required", "message: must be at least 10 characters"})
	})

	resp, err := app.Test(httptest.NewRequest("POST", "/submit", nil))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	body := decodeBody(t, resp.Body)
	assert.Equal(t, "Validation error", body["error"])
	details, ok := body["details"].([]any)
	require.True(t, ok)
	assert.Len(t, details, 2)
}

func TestUnknownErrorsBecomeOpaque500(t *testing.T) {
	app := newTestApp(nil)
	app.Get("/boom", func(c *fiber.Ctx) error {
		return pgx.ErrTxClosed
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
	body := decodeBody(t, resp.Body)
	assert.Equal(t, "Internal server error", body["error"])
}

func TestPanicRecoveredAs500(t *testing.T) {
	app := newTestApp(nil)
	app.Get("/panic", func(c *fiber.Ctx) error {
		panic("unexpected")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/panic", nil))
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
	body := decodeBody(t, resp.Body)
	assert.Equal(t, "Internal server error", body["error"])
}

func TestMetricsRecordRequestsAndErrors(t *testing.T) {
	metrics := observability.NewMetrics()
	app := newTestApp(metrics)
	app.Get("/ok", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "ok"})
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/ok", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, int64(1), metrics.RequestTotal("/ok", "GET", 200))
}

// fakeUserStore backs the auth middleware in route guard tests.
type fakeUserStore struct {
	users map[string]*domain.User
}

func (s *fakeUserStore) Create(ctx context.Context, user *domain.User) error { return nil }
func (s *fakeUserStore) Update(ctx context.Context, user *domain.User) error { return nil }
func (s *fakeUserStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}
func (s *fakeUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}
func (s *fakeUserStore) List(ctx context.Context) ([]domain.User, error) { return nil, nil }

func newGuardedApp(t *testing.T) (*fiber.App, *auth.TokenManager, *fakeUserStore) {
	t.Helper()
	store := &fakeUserStore{users: map[string]*domain.User{
		"admin-1":  {ID: "admin-1", Email: "root@albedo.example", Role: domain.RoleSuperAdmin, Active: true},
		"agent-1":  {ID: "agent-1", Email: "agent@albedo.example", Role: domain.RoleSupportAgent, Active: true},
		"viewer-1": {ID: "viewer-1", Email: "viewer@albedo.example", Role: domain.RoleViewer, Active: true},
		"gone-1":   {ID: "gone-1", Email: "gone@albedo.example", Role: domain.RoleSupportAgent, Active: false},
	}}
	tokens := auth.NewTokenManager("test-secret", 60)
	middleware := auth.NewMiddleware(tokens, store)

	app := newTestApp(nil)
	manage := app.Group("/admin", middleware.Handle, auth.RequireRole(domain.RoleSuperAdmin, domain.RoleSupportAgent))
	manage.Get("/tickets", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "listed"})
	})
	manage.Delete("/tickets/:id", auth.RequireRole(domain.RoleSuperAdmin), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "deleted"})
	})
	return app, tokens, store
}

func bearerFor(t *testing.T, tokens *auth.TokenManager, user *domain.User) string {
	t.Helper()
	token, _, err := tokens.GenerateToken(user)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestGuardedRoutesRequireAuth(t *testing.T) {
	app, _, _ := newGuardedApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/admin/tickets", nil))
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)

	req := httptest.NewRequest("GET", "/admin/tickets", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestGuardedRoutesEnforceRoles(t *testing.T) {
	app, tokens, store := newGuardedApp(t)

	cases := []struct {
		name   string
		userID string
		method string
		path   string
		want   int
	}{
		{"agent can list", "agent-1", "GET", "/admin/tickets", 200},
		{"admin can list", "admin-1", "GET", "/admin/tickets", 200},
		{"viewer cannot list", "viewer-1", "GET", "/admin/tickets", 403},
		{"agent cannot delete", "agent-1", "DELETE", "/admin/tickets/t-1", 403},
		{"admin can delete", "admin-1", "DELETE", "/admin/tickets/t-1", 200},
		{"inactive account rejected", "gone-1", "GET", "/admin/tickets", 401},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			req.Header.Set("Authorization", bearerFor(t, tokens, store.users[tc.userID]))
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}
