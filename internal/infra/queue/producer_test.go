package queue

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestConversionPayloadWireFormat - as chaves que o worker e a CAPI esperam
func TestConversionPayloadWireFormat(t *testing.T) {
	payload := ConversionPayload{
		EventName:     "Purchase",
		TransactionID: "tx-123",
		Email:         "joao@example.com",
		FBP:           "fb.1.111",
		FBC:           "fb.1.222",
		Currency:      "BRL",
		Value:         167.90,
	}

	body, err := json.Marshal(payload)
	assert.NoError(t, err)

	var data map[string]any
	json.Unmarshal(body, &data)

	assert.Equal(t, "Purchase", data["event_name"])
	assert.Equal(t, "tx-123", data["transaction_id"])
	assert.Equal(t, "BRL", data["currency"])
	assert.Equal(t, 167.90, data["value"])

	var received ConversionPayload
	assert.NoError(t, json.Unmarshal(body, &received))
	assert.Equal(t, payload, received)
}
