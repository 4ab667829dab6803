package worker

import (
	"context"
	"database/sql"
	"log"
	"time"
)

// PixExpirationWorker varre transações pending cujo expires_at do gateway
// já passou e marca como expired. Só toca o banco; nenhum efeito externo.
type PixExpirationWorker struct {
	db           *sql.DB
	tickInterval time.Duration
}

func NewPixExpirationWorker(db *sql.DB) *PixExpirationWorker {
	return &PixExpirationWorker{
		db:           db,
		tickInterval: 1 * time.Minute,
	}
}

func (w *PixExpirationWorker) Start(ctx context.Context) {
	log.Println("🕒 PIX Expiration Worker iniciado")

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.expireOldPix(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ PIX Expiration Worker encerrado")
			return
		case <-ticker.C:
			w.expireOldPix(ctx)
		}
	}
}

func (w *PixExpirationWorker) expireOldPix(ctx context.Context) {
	query := `
		UPDATE transactions
		SET
			status = 'expired',
			updated_at = NOW()
		WHERE
			status = 'pending'
			AND expires_at IS NOT NULL
			AND expires_at < NOW()
		RETURNING id, created_at
	`

	rows, err := w.db.QueryContext(ctx, query)
	if err != nil {
		log.Printf("❌ Erro ao buscar PIX expirados: %v", err)
		return
	}
	defer rows.Close()

	expiredCount := 0
	for rows.Next() {
		var id string
		var createdAt time.Time

		if err := rows.Scan(&id, &createdAt); err != nil {
			log.Printf("⚠️ Erro ao escanear PIX expirado: %v", err)
			continue
		}

		elapsed := time.Since(createdAt)
		log.Printf("⏱️ PIX expirado: transaction=%s elapsed=%s", id, elapsed.Round(time.Minute))
		expiredCount++
	}

	if expiredCount > 0 {
		log.Printf("✅ %d PIX(s) marcados como expired", expiredCount)
	}
}
