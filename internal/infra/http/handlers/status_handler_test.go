package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/zerovicios/funnel-api/internal/entity"
)

// MockTransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Save(ctx context.Context, tx *entity.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindByID(ctx context.Context, id string) (*entity.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) UpdateStatus(ctx context.Context, id, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockTransactionRepository) MarkPaid(ctx context.Context, id string, paidAt time.Time) (bool, error) {
	args := m.Called(ctx, id, paidAt)
	return args.Bool(0), args.Error(1)
}

func statusRequest(id string) *http.Request {
	req := httptest.NewRequest("GET", "/api/transactions/"+id+"/status", nil)
	chiCtx := chi.NewRouteContext()
	chiCtx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, chiCtx))
}

// ============ TESTES ============

// TestStatusHandlerPaid
func TestStatusHandlerPaid(t *testing.T) {
	paidAt := time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)

	mockRepo := new(MockTransactionRepository)
	mockRepo.On("FindByID", mock.Anything, "tx-123").Return(&entity.Transaction{
		ID:     "tx-123",
		Status: entity.StatusPaid,
		PaidAt: &paidAt,
	}, nil)

	handler := NewStatusHandler(mockRepo)
	w := httptest.NewRecorder()

	handler.Handle(w, statusRequest("tx-123"))

	assert.Equal(t, http.StatusOK, w.Code)

	var response statusResponse
	json.NewDecoder(w.Body).Decode(&response)
	assert.Equal(t, "tx-123", response.ID)
	assert.Equal(t, "paid", response.Status)
	assert.NotNil(t, response.PaidAt)
	assert.True(t, paidAt.Equal(*response.PaidAt))
}

// TestStatusHandlerNotFound
func TestStatusHandlerNotFound(t *testing.T) {
	mockRepo := new(MockTransactionRepository)
	mockRepo.On("FindByID", mock.Anything, "tx-999").Return(nil, nil)

	handler := NewStatusHandler(mockRepo)
	w := httptest.NewRecorder()

	handler.Handle(w, statusRequest("tx-999"))

	assert.Equal(t, http.StatusNotFound, w.Code)

	var response map[string]string
	json.NewDecoder(w.Body).Decode(&response)
	assert.Equal(t, "Transação não encontrada", response["error"])
}

// TestStatusHandlerWithoutRepo - sem banco o polling devolve 404
func TestStatusHandlerWithoutRepo(t *testing.T) {
	handler := NewStatusHandler(nil)
	w := httptest.NewRecorder()

	handler.Handle(w, statusRequest("tx-123"))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// TestStatusHandlerRepoError
func TestStatusHandlerRepoError(t *testing.T) {
	mockRepo := new(MockTransactionRepository)
	mockRepo.On("FindByID", mock.Anything, "tx-123").Return(nil, errors.New("db down"))

	handler := NewStatusHandler(mockRepo)
	w := httptest.NewRecorder()

	handler.Handle(w, statusRequest("tx-123"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
