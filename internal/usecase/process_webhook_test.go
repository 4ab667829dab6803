package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/zerovicios/funnel-api/internal/entity"
	"github.com/zerovicios/funnel-api/internal/infra/queue"
)

// MockConversionPublisher
type MockConversionPublisher struct {
	mock.Mock
}

func (m *MockConversionPublisher) PublishConversion(ctx context.Context, payload queue.ConversionPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

// ============ TESTES ============

// TestProcessWebhookMissingID - notificação sem ID é rejeitada
func TestProcessWebhookMissingID(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockTransactionRepository)
	uc := NewProcessWebhookUseCase(mockRepo, nil, nil)

	output, err := uc.Execute(ctx, ProcessWebhookInput{Status: "paid"})

	assert.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, IsDomainError(err))

	var domainErr *DomainError
	assert.True(t, errors.As(err, &domainErr))
	assert.Equal(t, CodeMissingID, domainErr.Code)

	mockRepo.AssertNotCalled(t, "FindByID")
}

// TestProcessWebhookUnknownTransaction - ID desconhecido confirma sem efeitos
func TestProcessWebhookUnknownTransaction(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockTransactionRepository)
	mockPublisher := new(MockConversionPublisher)
	mockRepo.On("FindByID", ctx, "tx-999").Return(nil, nil)

	uc := NewProcessWebhookUseCase(mockRepo, mockPublisher, nil)

	output, err := uc.Execute(ctx, ProcessWebhookInput{ID: "tx-999", Status: "paid"})

	assert.NoError(t, err)
	assert.NotNil(t, output)
	assert.False(t, output.Found)
	assert.False(t, output.Paid)

	mockRepo.AssertNotCalled(t, "MarkPaid")
	mockRepo.AssertNotCalled(t, "UpdateStatus")
	mockPublisher.AssertNotCalled(t, "PublishConversion")
}

// TestProcessWebhookPaidPublishesConversion - paid marca e emite Purchase uma vez
func TestProcessWebhookPaidPublishesConversion(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)

	mockRepo := new(MockTransactionRepository)
	mockPublisher := new(MockConversionPublisher)

	tx := &entity.Transaction{
		ID:     "tx-123",
		Status: entity.StatusPending,
		Plan:   "Kit 5 Meses",
		Name:   "João Silva",
		Email:  "joao@example.com",
		Price:  167.90,
		FBP:    "fb.1.111",
		FBC:    "fb.1.222",
	}

	mockRepo.On("FindByID", ctx, "tx-123").Return(tx, nil)
	mockRepo.On("MarkPaid", ctx, "tx-123", now).Return(true, nil)
	mockPublisher.On("PublishConversion", ctx, mock.Anything).Return(nil)

	uc := NewProcessWebhookUseCase(mockRepo, mockPublisher, nil)
	uc.nowFunc = func() time.Time { return now }

	output, err := uc.Execute(ctx, ProcessWebhookInput{ID: "tx-123", Status: "paid"})

	assert.NoError(t, err)
	assert.True(t, output.Found)
	assert.True(t, output.Paid)

	mockPublisher.AssertNumberOfCalls(t, "PublishConversion", 1)
	payload := mockPublisher.Calls[0].Arguments.Get(1).(queue.ConversionPayload)
	assert.Equal(t, "Purchase", payload.EventName)
	assert.Equal(t, "tx-123", payload.TransactionID)
	assert.Equal(t, "joao@example.com", payload.Email)
	assert.Equal(t, "fb.1.111", payload.FBP)
	assert.Equal(t, "fb.1.222", payload.FBC)
	assert.Equal(t, "BRL", payload.Currency)
	assert.Equal(t, 167.90, payload.Value)
}

// TestProcessWebhookDuplicatePaid - reentrega de paid não publica de novo
func TestProcessWebhookDuplicatePaid(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockTransactionRepository)
	mockPublisher := new(MockConversionPublisher)

	paidAt := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	tx := &entity.Transaction{
		ID:     "tx-123",
		Status: entity.StatusPaid,
		Email:  "joao@example.com",
		Price:  167.90,
		PaidAt: &paidAt,
	}

	mockRepo.On("FindByID", ctx, "tx-123").Return(tx, nil)
	// Compare-and-set não altera nada: já estava paid
	mockRepo.On("MarkPaid", ctx, "tx-123", mock.Anything).Return(false, nil)

	uc := NewProcessWebhookUseCase(mockRepo, mockPublisher, nil)

	output, err := uc.Execute(ctx, ProcessWebhookInput{ID: "tx-123", Status: "paid"})

	assert.NoError(t, err)
	assert.True(t, output.Found)
	assert.False(t, output.Paid)

	mockPublisher.AssertNotCalled(t, "PublishConversion")
}

// TestProcessWebhookNonPaidStatus - outros status só atualizam a transação
func TestProcessWebhookNonPaidStatus(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockTransactionRepository)
	mockPublisher := new(MockConversionPublisher)

	tx := &entity.Transaction{ID: "tx-123", Status: entity.StatusPending}

	mockRepo.On("FindByID", ctx, "tx-123").Return(tx, nil)
	mockRepo.On("UpdateStatus", ctx, "tx-123", "failed").Return(nil)

	uc := NewProcessWebhookUseCase(mockRepo, mockPublisher, nil)

	output, err := uc.Execute(ctx, ProcessWebhookInput{ID: "tx-123", Status: "failed"})

	assert.NoError(t, err)
	assert.True(t, output.Found)
	assert.False(t, output.Paid)

	mockRepo.AssertCalled(t, "UpdateStatus", ctx, "tx-123", "failed")
	mockRepo.AssertNotCalled(t, "MarkPaid")
	mockPublisher.AssertNotCalled(t, "PublishConversion")
}

// TestProcessWebhookPublisherFailureIsSwallowed - tracking fora não bloqueia o ack
func TestProcessWebhookPublisherFailureIsSwallowed(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockTransactionRepository)
	mockPublisher := new(MockConversionPublisher)

	tx := &entity.Transaction{ID: "tx-123", Email: "joao@example.com", Price: 123.90}

	mockRepo.On("FindByID", ctx, "tx-123").Return(tx, nil)
	mockRepo.On("MarkPaid", ctx, "tx-123", mock.Anything).Return(true, nil)
	mockPublisher.On("PublishConversion", ctx, mock.Anything).Return(errors.New("channel closed"))

	uc := NewProcessWebhookUseCase(mockRepo, mockPublisher, nil)

	output, err := uc.Execute(ctx, ProcessWebhookInput{ID: "tx-123", Status: "paid"})

	assert.NoError(t, err)
	assert.True(t, output.Found)
	assert.True(t, output.Paid)
}

// TestProcessWebhookWithoutRepo - sem banco o webhook só confirma o recebimento
func TestProcessWebhookWithoutRepo(t *testing.T) {
	ctx := context.Background()

	uc := NewProcessWebhookUseCase(nil, nil, nil)

	output, err := uc.Execute(ctx, ProcessWebhookInput{ID: "tx-123", Status: "paid"})

	assert.NoError(t, err)
	assert.False(t, output.Found)
}
