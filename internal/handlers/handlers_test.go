package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nativedelight/internal/checkout"
	"nativedelight/internal/logger"
	"nativedelight/internal/metrics"
	"nativedelight/internal/middleware"
	"nativedelight/internal/models"
	"nativedelight/internal/session"
)

type menuCatalog struct {
	err error
}

func (m menuCatalog) FetchCategories(ctx context.Context) ([]models.Category, error) {
	if m.err != nil {
		return nil, m.err
	}
	return []models.Category{
		{ID: "c1", Name: "Soups", Subcategories: []models.Subcategory{{ID: "s1", Name: "Pepper"}}},
		{ID: "c2", Name: "Rice"},
	}, nil
}

func (m menuCatalog) FetchMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	if m.err != nil {
		return nil, m.err
	}
	return []models.MenuItem{
		{ID: "a", Name: "A", Price: decimal.NewFromInt(2000), Category: models.MenuItemCategory{Name: "Soups", Subcategory: "Pepper"}},
		{ID: "b", Name: "B", Price: decimal.NewFromInt(1500), Category: models.MenuItemCategory{Name: "Soups"}},
		{ID: "c", Name: "C", Price: decimal.NewFromInt(900), Category: models.MenuItemCategory{Name: "Rice"}},
	}, nil
}

type stubPayments struct {
	resp  *models.PaymentResponse
	err   error
	calls int
}

func (p *stubPayments) InitializePayment(ctx context.Context, draft models.OrderDraft) (*models.PaymentResponse, error) {
	p.calls++
	return p.resp, p.err
}

type failingPinger struct{}

func (failingPinger) Ping(ctx context.Context) error { return errors.New("no primary") }

type testServer struct {
	router   *gin.Engine
	payments *stubPayments
	manager  *session.Manager
}

func newTestServer(t *testing.T, provider menuCatalog, health HealthChecker) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	reg := prometheus.NewRegistry()
	shop := metrics.NewShop(reg)
	payments := &stubPayments{}
	manager := session.NewManager(provider, payments, session.Config{
		Checkout: checkout.Config{Currency: "N", ResetDelay: time.Hour},
	}, shop, logger.Nop())
	t.Cleanup(manager.Close)

	r := gin.New()
	r.Use(middleware.RequestLogger(logger.Nop(), shop))
	Register(r, Dependencies{
		Sessions: manager,
		Tokens:   session.NewTokens("0123456789abcdef0123", time.Hour),
		Health:   health,
		Gatherer: reg,
		Logger:   logger.Nop(),
	})
	return &testServer{router: r, payments: payments, manager: manager}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
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
	if token != "" {
		req.Header.Set(middleware.SessionHeader, token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) newSession(t *testing.T) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/session", "", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Token string        `json:"token"`
		State session.State `json:"state"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, "Soups", resp.State.View.ActiveCategory)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, middleware.SessionCookie, cookies[0].Name)
	return resp.Token
}

func decodeState(t *testing.T, w *httptest.ResponseRecorder) session.State {
	t.Helper()
	var state session.State
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	return state
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
