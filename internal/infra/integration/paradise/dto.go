package paradise

import "encoding/json"

// CreateTransactionInput é o DTO limpo que o usecase monta.
type CreateTransactionInput struct {
	Amount           int // em centavos
	Description      string
	Reference        string
	PostbackURL      string
	ProductHash      string
	CustomerName     string
	CustomerEmail    string
	CustomerDocument string
	CustomerPhone    string
}

// CreateTransactionOutput é o que volta da Paradise já normalizado.
type CreateTransactionOutput struct {
	TransactionID string
	QRCode        string
	QRCodeBase64  string
	Amount        int // em centavos
	ExpiresAt     string
}

// ===== Formato de rede da Paradise =====

type createTransactionRequest struct {
	Amount      int             `json:"amount"`
	Description string          `json:"description"`
	Reference   string          `json:"reference"`
	PostbackURL string          `json:"postback_url"`
	ProductHash string          `json:"productHash"`
	Customer    customerPayload `json:"customer"`
	Tracking    trackingPayload `json:"tracking"`
}

type customerPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Document string `json:"document"`
	Phone    string `json:"phone"`
}

type trackingPayload struct {
	UTMSource   string `json:"utm_source"`
	UTMMedium   string `json:"utm_medium"`
	UTMCampaign string `json:"utm_campaign"`
}

// transaction_id chega como número; json.Number evita notação científica
// ao converter pra string.
type transactionResponse struct {
	Status        string      `json:"status"`
	TransactionID json.Number `json:"transaction_id"`
	QRCode        string      `json:"qr_code"`
	QRCodeBase64  string      `json:"qr_code_base64"`
	Amount        int         `json:"amount"`
	ExpiresAt     string      `json:"expires_at"`
}
