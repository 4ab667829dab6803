package usecase

import (
	"context"
	"log"
	"time"

	"github.com/zerovicios/funnel-api/internal/entity"
	"github.com/zerovicios/funnel-api/internal/infra/queue"
)

type ProcessWebhookUseCase struct {
	Repo      entity.TransactionRepositoryInterface
	Publisher ConversionPublisher
	Mailer    ReceiptSender

	nowFunc func() time.Time
}

func NewProcessWebhookUseCase(
	repo entity.TransactionRepositoryInterface,
	publisher ConversionPublisher,
	mailer ReceiptSender,
) *ProcessWebhookUseCase {
	return &ProcessWebhookUseCase{
		Repo:      repo,
		Publisher: publisher,
		Mailer:    mailer,
		nowFunc:   time.Now,
	}
}

// Execute aplica a notificação de status do gateway. O gateway entrega
// at-least-once, então a transição pra paid roda sob compare-and-set e o
// evento de conversão sai no máximo uma vez por transação.
func (uc *ProcessWebhookUseCase) Execute(ctx context.Context, input ProcessWebhookInput) (*ProcessWebhookOutput, error) {
	if input.ID == "" {
		return nil, &DomainError{Code: CodeMissingID, Message: "ID não fornecido"}
	}

	if uc.Repo == nil {
		// Sem banco configurado não há o que atualizar; confirma o
		// recebimento pro gateway parar de reentregar.
		return &ProcessWebhookOutput{Found: false}, nil
	}

	tx, err := uc.Repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, &TechnicalError{Code: CodeInternal, Message: err.Error()}
	}
	if tx == nil {
		log.Printf("Transação não encontrada no banco: %s", input.ID)
		return &ProcessWebhookOutput{Found: false}, nil
	}

	if input.Status != entity.StatusPaid {
		if err := uc.Repo.UpdateStatus(ctx, input.ID, input.Status); err != nil {
			return nil, &TechnicalError{Code: CodeInternal, Message: err.Error()}
		}
		return &ProcessWebhookOutput{Found: true}, nil
	}

	changed, err := uc.Repo.MarkPaid(ctx, input.ID, uc.nowFunc())
	if err != nil {
		return nil, &TechnicalError{Code: CodeInternal, Message: err.Error()}
	}
	if !changed {
		log.Printf("🔁 Entrega duplicada de paid para %s, evento já emitido", input.ID)
		return &ProcessWebhookOutput{Found: true}, nil
	}

	log.Printf("💰 Pagamento Aprovado: %s", input.ID)

	if uc.Publisher != nil {
		payload := queue.ConversionPayload{
			EventName:     "Purchase",
			TransactionID: input.ID,
			Email:         tx.Email,
			FBP:           tx.FBP,
			FBC:           tx.FBC,
			Currency:      "BRL",
			Value:         tx.Price,
		}
		if err := uc.Publisher.PublishConversion(ctx, payload); err != nil {
			// Tracking é best-effort: o ack pro gateway não depende disso.
			log.Printf("⚠️ Falha ao publicar conversão de %s: %v", input.ID, err)
		}
	}

	if uc.Mailer != nil {
		go func(t entity.Transaction) {
			if err := uc.Mailer.SendPaymentConfirmation(t.Email, t.Name, t.Plan, t.Price); err != nil {
				log.Printf("⚠️ Falha no email de confirmação de %s: %v", t.ID, err)
			}
		}(*tx)
	}

	return &ProcessWebhookOutput{Found: true, Paid: true}, nil
}
