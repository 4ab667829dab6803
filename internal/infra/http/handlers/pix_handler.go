package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/zerovicios/funnel-api/internal/infra/http/middleware"
	"github.com/zerovicios/funnel-api/internal/usecase"
)

type PixGenerator interface {
	Execute(ctx context.Context, input usecase.GeneratePixInput) (*usecase.GeneratePixOutput, error)
}

type PixHandler struct {
	UC          PixGenerator
	rateLimiter *RateLimiter
}

func NewPixHandler(uc PixGenerator) *PixHandler {
	return &PixHandler{
		UC:          uc,
		rateLimiter: NewRateLimiter(10, time.Minute), // 10 checkouts/min por IP
	}
}

func (h *PixHandler) Handle(w http.ResponseWriter, r *http.Request) {
	clientIP := getClientIP(r)
	if !h.rateLimiter.Allow(clientIP) {
		writeError(w, http.StatusTooManyRequests, errorResponse{
			Error: "Too many requests. Please try again later.",
		})
		return
	}

	var input usecase.GeneratePixInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, errorResponse{
			Error:   "JSON inválido",
			Message: err.Error(),
		})
		return
	}

	output, err := h.UC.Execute(r.Context(), input)
	if err != nil {
		h.writeUseCaseError(w, err)
		return
	}

	middleware.RecordPixGenerated(input.Plan)
	writeJSON(w, http.StatusOK, output)
}

func (h *PixHandler) writeUseCaseError(w http.ResponseWriter, err error) {
	var domainErr *usecase.DomainError
	if errors.As(err, &domainErr) {
		switch domainErr.Code {
		case usecase.CodeProductNotFound:
			writeError(w, http.StatusBadRequest, errorResponse{
				Error:   "Produto não encontrado",
				Message: domainErr.Message,
			})
		case usecase.CodeGatewayRejected:
			middleware.RecordIntegrationError("paradise")
			writeError(w, http.StatusBadRequest, errorResponse{
				Error:   "Erro na API Paradise",
				Details: domainErr.Details,
				Debug:   domainErr.Debug,
			})
		case usecase.CodeGatewayDecode, usecase.CodeGatewayOffline:
			middleware.RecordIntegrationError("paradise")
			writeError(w, http.StatusBadRequest, errorResponse{
				Error:       "Erro de comunicação com a Paradise",
				RawResponse: domainErr.RawResponse,
				Debug:       domainErr.Debug,
			})
		default:
			writeError(w, http.StatusBadRequest, errorResponse{
				Error: domainErr.Message,
			})
		}
		return
	}

	var techErr *usecase.TechnicalError
	if errors.As(err, &techErr) && techErr.Code == usecase.CodeNotConfigured {
		writeError(w, http.StatusInternalServerError, errorResponse{
			Error:   "Chave API não configurada",
			Message: techErr.Message,
		})
		return
	}

	writeError(w, http.StatusInternalServerError, errorResponse{
		Error:   "Erro interno no servidor",
		Message: err.Error(),
	})
}
