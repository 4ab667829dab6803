package facebook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/zerovicios/funnel-api/internal/infra/queue"
)

const defaultGraphURL = "https://graph.facebook.com/v17.0"

// Client fala com a Conversions API (CAPI) do Facebook. Sem token
// configurado o envio vira no-op, por contrato de degradação graciosa.
type Client struct {
	graphURL    string
	accessToken string
	pixelID     string
	http        *http.Client
}

func NewClient(accessToken, pixelID string) *Client {
	return &Client{
		graphURL:    defaultGraphURL,
		accessToken: accessToken,
		pixelID:     pixelID,
		http:        &http.Client{Timeout: 10 * time.Second},
	}
}

// NewClientWithURL existe pros testes apontarem pra um servidor local.
func NewClientWithURL(accessToken, pixelID, graphURL string) *Client {
	c := NewClient(accessToken, pixelID)
	c.graphURL = graphURL
	return c
}

type capiEvent struct {
	EventName    string         `json:"event_name"`
	EventTime    int64          `json:"event_time"`
	ActionSource string         `json:"action_source"`
	UserData     capiUserData   `json:"user_data"`
	CustomData   capiCustomData `json:"custom_data"`
}

type capiUserData struct {
	FBP string   `json:"fbp,omitempty"`
	FBC string   `json:"fbc,omitempty"`
	EM  []string `json:"em,omitempty"`
}

type capiCustomData struct {
	Currency      string  `json:"currency"`
	Value         float64 `json:"value"`
	TransactionID string  `json:"transaction_id"`
}

type capiRequest struct {
	Data        []capiEvent `json:"data"`
	AccessToken string      `json:"access_token"`
}

// SendConversion dispara o evento server-side pro pixel configurado.
func (c *Client) SendConversion(ctx context.Context, payload queue.ConversionPayload) error {
	if c.accessToken == "" || c.pixelID == "" {
		log.Printf("⚠️ CAPI: token/pixel não configurados, pulando evento %s", payload.EventName)
		return nil
	}

	var em []string
	if payload.Email != "" {
		em = []string{payload.Email}
	}

	body := capiRequest{
		Data: []capiEvent{{
			EventName:    payload.EventName,
			EventTime:    time.Now().Unix(),
			ActionSource: "website",
			UserData: capiUserData{
				FBP: payload.FBP,
				FBC: payload.FBC,
				EM:  em,
			},
			CustomData: capiCustomData{
				Currency:      payload.Currency,
				Value:         payload.Value,
				TransactionID: payload.TransactionID,
			},
		}},
		AccessToken: c.accessToken,
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("erro ao marshal evento: %w", err)
	}

	url := fmt.Sprintf("%s/%s/events", c.graphURL, c.pixelID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("erro request facebook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("capi rejeitou (status %d): %s", resp.StatusCode, string(raw))
	}

	log.Printf("🎯 Pixel Facebook (%s) disparado via Server-Side!", payload.EventName)
	return nil
}
