// Package funnel modela os comportamentos do cliente que têm contrato:
// a máquina de estados do checkout, o registro de players de vídeo e o
// contador de escassez. Layout e copy ficam fora.
package funnel

import (
	"context"
	"errors"
	"fmt"
)

type CheckoutState string

const (
	StateForm    CheckoutState = "form"
	StateLoading CheckoutState = "loading"
	StatePix     CheckoutState = "pix"
	StateSuccess CheckoutState = "success"
)

// Mensagem genérica quando a falha não trouxe erro do servidor.
const genericPixError = "Erro ao gerar PIX. Verifique os dados e tente novamente."

type FormData struct {
	Name  string
	Email string
	Phone string
	CPF   string
	FBC   string
	FBP   string
}

type PixData struct {
	ID           string
	QRCodeBase64 string
	CopiaECola   string
}

// PixGenerator é o endpoint de geração visto do lado do cliente.
type PixGenerator interface {
	GeneratePix(ctx context.Context, plan string, price float64, form FormData) (*PixData, error)
}

// StatusChecker é o alvo de polling que torna success alcançável.
type StatusChecker interface {
	TransactionStatus(ctx context.Context, id string) (string, error)
}

// ServerError carrega a mensagem estruturada que o endpoint devolveu;
// qualquer outro erro vira a mensagem genérica de conectividade.
type ServerError struct {
	Message string
}

func (e *ServerError) Error() string { return e.Message }

type Checkout struct {
	gen    PixGenerator
	status StatusChecker

	state     CheckoutState
	planName  string
	planPrice float64
	pix       *PixData
	lastError string
}

func NewCheckout(gen PixGenerator, status StatusChecker) *Checkout {
	return &Checkout{
		gen:    gen,
		status: status,
		state:  StateForm,
	}
}

// Open (re)abre o modal para um plano. Sempre volta pro formulário.
func (c *Checkout) Open(planName string, price float64) {
	c.planName = planName
	c.planPrice = price
	c.state = StateForm
	c.pix = nil
	c.lastError = ""
}

// Submit roda form -> loading -> pix, ou volta pro form com a mensagem de
// erro. Enquanto está em loading nenhuma segunda chamada entra.
func (c *Checkout) Submit(ctx context.Context, form FormData) error {
	if c.state != StateForm {
		return fmt.Errorf("submit inválido no estado %s", c.state)
	}

	c.state = StateLoading

	pix, err := c.gen.GeneratePix(ctx, c.planName, c.planPrice, form)
	if err != nil {
		c.state = StateForm
		var srvErr *ServerError
		if errors.As(err, &srvErr) && srvErr.Message != "" {
			c.lastError = srvErr.Message
		} else {
			c.lastError = genericPixError
		}
		return err
	}

	c.pix = pix
	c.lastError = ""
	c.state = StatePix
	return nil
}

// Poll consulta o status da transação enquanto o QR está na tela; um
// paid transiciona pix -> success.
func (c *Checkout) Poll(ctx context.Context) error {
	if c.state != StatePix || c.pix == nil {
		return nil
	}

	status, err := c.status.TransactionStatus(ctx, c.pix.ID)
	if err != nil {
		return err
	}

	if status == "paid" {
		c.state = StateSuccess
	}
	return nil
}

func (c *Checkout) State() CheckoutState { return c.state }
func (c *Checkout) Pix() *PixData        { return c.pix }
func (c *Checkout) LastError() string    { return c.lastError }
