package usecase

// DomainError: falhas de negócio/validação/gateway que viram respostas
// 4xx estruturadas. Details/RawResponse/Debug são devolvidos como
// diagnóstico no corpo do erro.
type DomainError struct {
	Code        string
	Message     string
	Details     any
	RawResponse string
	Debug       any
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

// TechnicalError: falhas de configuração/infra, 5xx.
type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}

// Códigos usados pelos handlers pra mapear status e shape da resposta.
const (
	CodeProductNotFound = "PRODUCT_NOT_FOUND"
	CodeNotConfigured   = "NOT_CONFIGURED"
	CodeGatewayRejected = "GATEWAY_REJECTED"
	CodeGatewayDecode   = "GATEWAY_DECODE"
	CodeGatewayOffline  = "GATEWAY_OFFLINE"
	CodeMissingID       = "MISSING_ID"
	CodeInternal        = "INTERNAL"
)
