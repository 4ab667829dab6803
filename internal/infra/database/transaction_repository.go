package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/zerovicios/funnel-api/internal/entity"
)

type TransactionRepository struct {
	DB *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{DB: db}
}

// Save é o upsert único do fluxo de geração. expires_at chega como texto
// do gateway e é convertido aqui.
func (r *TransactionRepository) Save(ctx context.Context, tx *entity.Transaction) error {
	query := `
		INSERT INTO transactions (
			id, status, provider, plan, name, email, cpf, phone,
			price, product_hash, pix_code, fbp, fbc, created_at, expires_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8,
			$9, $10, $11, NULLIF($12, ''), NULLIF($13, ''), $14,
			NULLIF($15, '')::timestamptz
		)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			pix_code = EXCLUDED.pix_code,
			expires_at = EXCLUDED.expires_at,
			updated_at = NOW()
	`

	_, err := r.DB.ExecContext(ctx, query,
		tx.ID,
		tx.Status,
		tx.Provider,
		tx.Plan,
		tx.Name,
		tx.Email,
		tx.CPF,
		tx.Phone,
		tx.Price,
		tx.ProductHash,
		tx.PixCode,
		tx.FBP,
		tx.FBC,
		tx.CreatedAt,
		tx.ExpiresAt,
	)

	if err != nil {
		return fmt.Errorf("erro ao salvar transação: %w", err)
	}

	return nil
}

func (r *TransactionRepository) FindByID(ctx context.Context, id string) (*entity.Transaction, error) {
	query := `
		SELECT id, status, provider, plan, name, email, cpf, phone,
		       price, product_hash, pix_code,
		       COALESCE(fbp, ''), COALESCE(fbc, ''),
		       created_at, COALESCE(expires_at::text, ''), paid_at
		FROM transactions
		WHERE id = $1
	`

	tx := &entity.Transaction{}
	var paidAt sql.NullTime

	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&tx.ID,
		&tx.Status,
		&tx.Provider,
		&tx.Plan,
		&tx.Name,
		&tx.Email,
		&tx.CPF,
		&tx.Phone,
		&tx.Price,
		&tx.ProductHash,
		&tx.PixCode,
		&tx.FBP,
		&tx.FBC,
		&tx.CreatedAt,
		&tx.ExpiresAt,
		&paidAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar transação: %w", err)
	}

	if paidAt.Valid {
		t := paidAt.Time
		tx.PaidAt = &t
	}

	return tx, nil
}

func (r *TransactionRepository) UpdateStatus(ctx context.Context, id, status string) error {
	query := `UPDATE transactions SET status = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.DB.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("erro ao atualizar status: %w", err)
	}
	return nil
}

// MarkPaid transiciona pra paid só se ainda não estava: o WHERE faz o
// compare-and-set que segura entregas duplicadas do gateway.
func (r *TransactionRepository) MarkPaid(ctx context.Context, id string, paidAt time.Time) (bool, error) {
	query := `
		UPDATE transactions
		SET status = $2, paid_at = $3, updated_at = NOW()
		WHERE id = $1 AND status <> $2
	`

	res, err := r.DB.ExecContext(ctx, query, id, entity.StatusPaid, paidAt)
	if err != nil {
		return false, fmt.Errorf("erro ao marcar paid: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}
