package usecase

import (
	"context"

	"github.com/zerovicios/funnel-api/internal/infra/integration/paradise"
	"github.com/zerovicios/funnel-api/internal/infra/queue"
)

type GeneratePixInput struct {
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone string  `json:"phone"`
	CPF   string  `json:"cpf"`
	Plan  string  `json:"plan"`
	Price float64 `json:"price"`
	FBC   string  `json:"fbc"`
	FBP   string  `json:"fbp"`
}

type GeneratePixOutput struct {
	Success      bool    `json:"success"`
	ID           string  `json:"id"`
	QRCodeBase64 string  `json:"qrCodeBase64"`
	CopiaECola   string  `json:"copiaECola"`
	Provider     string  `json:"provider"`
	Amount       float64 `json:"amount"`
	ExpiresAt    string  `json:"expires_at,omitempty"`
	Message      string  `json:"message"`
}

type ProcessWebhookInput struct {
	ID     string
	Status string
}

type ProcessWebhookOutput struct {
	Found bool
	Paid  bool
}

type PaymentGateway interface {
	CreateTransaction(ctx context.Context, input paradise.CreateTransactionInput) (*paradise.CreateTransactionOutput, error)
}

type ConversionPublisher interface {
	PublishConversion(ctx context.Context, payload queue.ConversionPayload) error
}

type ReceiptSender interface {
	SendPaymentConfirmation(to, name, plan string, price float64) error
}
