package entity

import (
	"context"
	"time"
)

const (
	StatusPending = "pending"
	StatusPaid    = "paid"
	StatusExpired = "expired"
)

// Transaction é o registro de uma cobrança PIX, chaveado pelo ID que o
// gateway emitiu. Criado pelo fluxo de geração, mutado só pelo webhook.
type Transaction struct {
	ID          string     `json:"id"`
	Status      string     `json:"status"`
	Provider    string     `json:"provider"`
	Plan        string     `json:"plan"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	CPF         string     `json:"cpf"`
	Phone       string     `json:"phone"`
	Price       float64    `json:"price"`
	ProductHash string     `json:"product_hash"`
	PixCode     string     `json:"pix_code"`
	FBP         string     `json:"fbp,omitempty"`
	FBC         string     `json:"fbc,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	ExpiresAt   string     `json:"expires_at,omitempty"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
}

type TransactionRepositoryInterface interface {
	Save(ctx context.Context, tx *Transaction) error

	// FindByID retorna (nil, nil) quando a transação não existe.
	FindByID(ctx context.Context, id string) (*Transaction, error)

	UpdateStatus(ctx context.Context, id, status string) error

	// MarkPaid transiciona para paid sob compare-and-set: retorna false
	// quando o registro já estava paid (entrega duplicada do gateway).
	MarkPaid(ctx context.Context, id string, paidAt time.Time) (bool, error)
}
