package usecase

import (
	"regexp"
	"unicode/utf8"
)

var nonDigits = regexp.MustCompile(`\D`)

// OnlyDigits limpa CPF e telefone antes de mandar pro gateway, seja qual
// for a máscara que veio do formulário.
func OnlyDigits(s string) string {
	return nonDigits.ReplaceAllString(s, "")
}

// TruncateName corta no limite de 100 caracteres que a Paradise aceita.
// Conta runas, não bytes: nomes acentuados não podem ser cortados no meio
// de um caractere.
func TruncateName(name string) string {
	if utf8.RuneCountInString(name) <= 100 {
		return name
	}
	return string([]rune(name)[:100])
}
