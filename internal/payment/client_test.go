package payment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nativedelight/internal/checkout"
	"nativedelight/internal/models"
)

var _ checkout.PaymentInitializer = (*Client)(nil)

func sampleDraft() models.OrderDraft {
	return models.OrderDraft{
		Name:    "Ada",
		Email:   "ada@example.com",
		Phone:   "08031234567",
		Address: "Ikeja",
		Items:   []models.OrderDraftItem{{ProductID: "a", Quantity: 2}},
		Amount:  decimal.RequireFromString("4000.50"),
	}
}

func TestInitializePaymentSendsDraft(t *testing.T) {
	var received map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		_, _ = w.Write([]byte(`{"data":{"authorization_url":"https://pay/x"}}`))
	}))
	defer srv.Close()

	resp, err := NewClient(srv.URL, time.Second).InitializePayment(context.Background(), sampleDraft())
	require.NoError(t, err)
	assert.Equal(t, "https://pay/x", resp.RedirectURL())

	assert.Equal(t, "ada@example.com", received["email"])
	assert.Equal(t, 4000.5, received["amount"])
	items, ok := received["items"].([]any)
	require.True(t, ok)
	require.Len(t, items, 1)
	assert.Equal(t, "a", items[0].(map[string]any)["productId"])
}

func TestInitializePaymentWithoutRedirect(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":true}`))
	}))
	defer srv.Close()

	resp, err := NewClient(srv.URL, time.Second).InitializePayment(context.Background(), sampleDraft())
	require.NoError(t, err)
	assert.Empty(t, resp.RedirectURL())
}

func TestInitializePaymentCarriesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"Invalid email address"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).InitializePayment(context.Background(), sampleDraft())
	require.Error(t, err)

	var perr *Error
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, http.StatusBadRequest, perr.StatusCode)
	assert.Equal(t, "Invalid email address", checkout.ServerMessage(err))
}

func TestInitializePaymentNotConfigured(t *testing.T) {
	_, err := NewClient("", 0).InitializePayment(context.Background(), sampleDraft())
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Empty(t, checkout.ServerMessage(err))
}
