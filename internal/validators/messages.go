package validators

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var fieldMessages = map[string]string{
	"Email":           "Email inválido",
	"Password":        "Senha deve ter pelo menos 8 caracteres",
	"NewPassword":     "A senha deve ter no mínimo 6 caracteres",
	"ConfirmPassword": "As senhas não coincidem",
	"Token":           "Link de recuperação inválido",
	"FullName":        "Nome deve ter entre 2 e 100 caracteres e conter apenas letras",
	"Name":            "Nome deve ter entre 2 e 100 caracteres e conter apenas letras",
	"Phone":           "Telefone inválido",
	"Date":            "Data inválida",
	"Time":            "Horário inválido",
	"ServiceID":       "Serviço inválido",
	"Category":        "Categoria é obrigatória",
	"Price":           "Preço inválido",
	"DurationMinutes": "Duração inválida",
	"Role":            "Papel inválido",
}

const fallbackMessage = "Dados inválidos"

// FirstMessage maps the first violated rule to a user-facing message.
func FirstMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fallbackMessage
	}

	fe := verrs[0]
	if fe.Tag() == "max" {
		switch fe.Field() {
		case "Password", "NewPassword":
			return "Senha muito longa"
		case "Email":
			return "Email muito longo"
		}
	}
	if fe.Field() == "ConfirmPassword" && fe.Tag() == "required" {
		return "Confirme a senha"
	}
	if msg, ok := fieldMessages[fe.Field()]; ok {
		return msg
	}
	return fallbackMessage
}
