package mail

import (
	"bytes"
	"fmt"
	"path/filepath"
	"text/template"

	"gopkg.in/gomail.v2"
)

type ConfirmationEmailData struct {
	Name     string
	PlanName string
	Price    string
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
}

func NewEmailSender(host string, port int, user, password string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
	}
}

// SendPaymentConfirmation envia o email de compra aprovada. Best-effort:
// quem chama trata o erro como log-only.
func (s *EmailSender) SendPaymentConfirmation(to, name, planName string, price float64) error {
	data := ConfirmationEmailData{
		Name:     name,
		PlanName: planName,
		Price:    fmt.Sprintf("R$ %.2f", price),
	}

	tmplPath := filepath.Join("templates", "confirmation.html")
	t, err := template.ParseFiles(tmplPath)
	if err != nil {
		return fmt.Errorf("erro ao ler template de email: %w", err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return fmt.Errorf("erro ao processar template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", "nao-responda@zerovicios.com.br")
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Pagamento confirmado, %s! Seu %s está a caminho 🚀", name, planName))
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}

	return nil
}
