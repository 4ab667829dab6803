package facebook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zerovicios/funnel-api/internal/infra/queue"
)

func purchasePayload() queue.ConversionPayload {
	return queue.ConversionPayload{
		EventName:     "Purchase",
		TransactionID: "tx-123",
		Email:         "joao@example.com",
		FBP:           "fb.1.111",
		FBC:           "fb.1.222",
		Currency:      "BRL",
		Value:         167.90,
	}
}

// TestSendConversionSuccess - monta e envia o evento pro pixel
func TestSendConversionSuccess(t *testing.T) {
	var captured capiRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/792797553335143/events", r.URL.Path)
		json.NewDecoder(r.Body).Decode(&captured)
		w.Write([]byte(`{"events_received": 1}`))
	}))
	defer server.Close()

	client := NewClientWithURL("token-abc", "792797553335143", server.URL)
	err := client.SendConversion(context.Background(), purchasePayload())

	assert.NoError(t, err)
	assert.Equal(t, "token-abc", captured.AccessToken)
	assert.Len(t, captured.Data, 1)

	event := captured.Data[0]
	assert.Equal(t, "Purchase", event.EventName)
	assert.Equal(t, "website", event.ActionSource)
	assert.NotZero(t, event.EventTime)
	assert.Equal(t, "fb.1.111", event.UserData.FBP)
	assert.Equal(t, "fb.1.222", event.UserData.FBC)
	assert.Equal(t, []string{"joao@example.com"}, event.UserData.EM)
	assert.Equal(t, "BRL", event.CustomData.Currency)
	assert.Equal(t, 167.90, event.CustomData.Value)
	assert.Equal(t, "tx-123", event.CustomData.TransactionID)
}

// TestSendConversionWithoutToken - sem token é no-op, sem request
func TestSendConversionWithoutToken(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := NewClientWithURL("", "792797553335143", server.URL)
	err := client.SendConversion(context.Background(), purchasePayload())

	assert.NoError(t, err)
	assert.False(t, called)
}

// TestSendConversionRejected - erro do Graph API sobe pro worker nackear
func TestSendConversionRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": {"message": "Invalid OAuth access token"}}`))
	}))
	defer server.Close()

	client := NewClientWithURL("token-expirado", "792797553335143", server.URL)
	err := client.SendConversion(context.Background(), purchasePayload())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}

// TestSendConversionWithoutEmail - em omitido quando não há email
func TestSendConversionWithoutEmail(t *testing.T) {
	var captured capiRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&captured)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	payload := purchasePayload()
	payload.Email = ""

	client := NewClientWithURL("token-abc", "792797553335143", server.URL)
	err := client.SendConversion(context.Background(), payload)

	assert.NoError(t, err)
	assert.Empty(t, captured.Data[0].UserData.EM)
}
