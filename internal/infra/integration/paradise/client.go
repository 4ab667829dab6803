package paradise

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const DefaultBaseURL = "https://multi.paradisepags.com"

// APIError: a Paradise respondeu, mas rejeitou a transação.
type APIError struct {
	StatusCode int
	Details    map[string]any
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api paradise rejeitou (status %d)", e.StatusCode)
}

// DecodeError: a resposta não era JSON (Cloudflare, HTML de erro etc).
// O corpo cru fica guardado pra debug.
type DecodeError struct {
	StatusCode int
	RawBody    string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("resposta ilegível da paradise (status %d)", e.StatusCode)
}

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// CreateTransaction: gera o PIX na Paradise e retorna o QR Code.
func (c *Client) CreateTransaction(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	url := fmt.Sprintf("%s/api/v1/transaction.php", c.baseURL)

	// 1. Converte DTO -> Request da Paradise
	payload := createTransactionRequest{
		Amount:      input.Amount,
		Description: input.Description,
		Reference:   input.Reference,
		PostbackURL: input.PostbackURL,
		ProductHash: input.ProductHash,
		Customer: customerPayload{
			Name:     input.CustomerName,
			Email:    input.CustomerEmail,
			Document: input.CustomerDocument,
			Phone:    input.CustomerPhone,
		},
		Tracking: trackingPayload{
			UTMSource:   "site",
			UTMMedium:   "direct",
			UTMCampaign: "zero_vicios",
		},
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("erro ao marshal transação: %w", err)
	}

	// 2. Cria Request
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	// 3. Envia
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro na conexão com paradise: %w", err)
	}
	defer resp.Body.Close()

	// 4. Lê o corpo inteiro antes de decidir: em erro o corpo cru vale ouro
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta paradise: %w", err)
	}

	var parsed transactionResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		fmt.Printf("❌ RESPOSTA ILEGÍVEL PARADISE (Status %d): %s\n", resp.StatusCode, string(body))
		return nil, &DecodeError{StatusCode: resp.StatusCode, RawBody: string(body)}
	}

	// 5. Trata rejeição (status HTTP ou status do payload)
	if resp.StatusCode < 200 || resp.StatusCode > 299 || parsed.Status != "success" {
		var details map[string]any
		json.Unmarshal(body, &details)
		fmt.Printf("❌ ERRO API PARADISE (Status %d): %s\n", resp.StatusCode, string(body))
		return nil, &APIError{StatusCode: resp.StatusCode, Details: details}
	}

	return &CreateTransactionOutput{
		TransactionID: parsed.TransactionID.String(),
		QRCode:        parsed.QRCode,
		QRCodeBase64:  parsed.QRCodeBase64,
		Amount:        parsed.Amount,
		ExpiresAt:     parsed.ExpiresAt,
	}, nil
}

// setHeaders centraliza os headers obrigatórios
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "ZeroViciosFunnel/1.0")
}
