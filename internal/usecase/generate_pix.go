package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zerovicios/funnel-api/internal/entity"
	"github.com/zerovicios/funnel-api/internal/infra/integration/paradise"
)

// Telefone de fallback quando o formulário não trouxe nenhum dígito.
const defaultPhone = "11999999999"

type GeneratePixUseCase struct {
	Repo      entity.TransactionRepositoryInterface
	Gateway   PaymentGateway
	SecretKey string
	BaseURL   string
}

func NewGeneratePixUseCase(
	repo entity.TransactionRepositoryInterface,
	gateway PaymentGateway,
	secretKey string,
	baseURL string,
) *GeneratePixUseCase {
	return &GeneratePixUseCase{
		Repo:      repo,
		Gateway:   gateway,
		SecretKey: secretKey,
		BaseURL:   baseURL,
	}
}

func (uc *GeneratePixUseCase) Execute(ctx context.Context, input GeneratePixInput) (*GeneratePixOutput, error) {
	reference := uuid.New().String()

	plan, err := entity.FindPlanByName(input.Plan)
	if err != nil {
		return nil, &DomainError{
			Code:    CodeProductNotFound,
			Message: fmt.Sprintf("Hash não configurado para o plano: %s", input.Plan),
		}
	}

	// Sem a chave do gateway nenhuma chamada externa acontece. Isso é
	// erro de deploy, não do usuário.
	if uc.SecretKey == "" {
		return nil, &TechnicalError{
			Code:    CodeNotConfigured,
			Message: "Configure PARADISE_SECRET_KEY no .env",
		}
	}

	phone := OnlyDigits(input.Phone)
	if phone == "" {
		phone = defaultPhone
	}

	amount := int(math.Round(input.Price * 100))

	gwInput := paradise.CreateTransactionInput{
		Amount:           amount,
		Description:      fmt.Sprintf("%s - Zero Vicios", input.Plan),
		Reference:        reference,
		PostbackURL:      strings.TrimRight(uc.BaseURL, "/") + "/api/webhook",
		ProductHash:      plan.ProductHash,
		CustomerName:     TruncateName(input.Name),
		CustomerEmail:    input.Email,
		CustomerDocument: OnlyDigits(input.CPF),
		CustomerPhone:    phone,
	}

	debug := map[string]string{"plan": input.Plan, "productHash": plan.ProductHash}

	out, err := uc.Gateway.CreateTransaction(ctx, gwInput)
	if err != nil {
		var decodeErr *paradise.DecodeError
		if errors.As(err, &decodeErr) {
			return nil, &DomainError{
				Code:        CodeGatewayDecode,
				Message:     "Erro de comunicação com a Paradise",
				RawResponse: decodeErr.RawBody,
				Debug:       debug,
			}
		}

		var apiErr *paradise.APIError
		if errors.As(err, &apiErr) {
			log.Printf("❌ Erro da Paradise: %v", apiErr.Details)
			return nil, &DomainError{
				Code:    CodeGatewayRejected,
				Message: "Erro na API Paradise",
				Details: apiErr.Details,
				Debug:   debug,
			}
		}

		return nil, &DomainError{
			Code:    CodeGatewayOffline,
			Message: "Erro de comunicação com a Paradise",
			Debug:   debug,
		}
	}

	// Persistência é best-effort: falha no banco não derruba um PIX que o
	// gateway já emitiu.
	if uc.Repo != nil {
		tx := &entity.Transaction{
			ID:          out.TransactionID,
			Status:      entity.StatusPending,
			Provider:    "paradise",
			Plan:        input.Plan,
			Name:        input.Name,
			Email:       input.Email,
			CPF:         input.CPF,
			Phone:       input.Phone,
			Price:       input.Price,
			ProductHash: plan.ProductHash,
			PixCode:     out.QRCode,
			FBP:         input.FBP,
			FBC:         input.FBC,
			CreatedAt:   time.Now(),
			ExpiresAt:   out.ExpiresAt,
		}
		if err := uc.Repo.Save(ctx, tx); err != nil {
			log.Printf("⚠️ Falha ao salvar transação %s: %v", out.TransactionID, err)
		}
	}

	return &GeneratePixOutput{
		Success:      true,
		ID:           out.TransactionID,
		QRCodeBase64: out.QRCodeBase64,
		CopiaECola:   out.QRCode,
		Provider:     "Paradise",
		Amount:       float64(out.Amount) / 100,
		ExpiresAt:    out.ExpiresAt,
		Message:      "PIX real gerado com sucesso!",
	}, nil
}
