package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

type SettingsValidator struct {
	validate *validator.Validate
}

// NewValidator cria uma nova instância do validador
func NewValidator() *SettingsValidator {
	return &SettingsValidator{
		validate: validator.New(),
	}
}

// Validate realiza validações estruturais (tags) e semânticas (lógica)
func (sv *SettingsValidator) Validate(s *Settings) error {
	if err := sv.validate.Struct(s); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			var errMsgs []string
			for _, e := range validationErrors {
				errMsgs = append(errMsgs, fmt.Sprintf("campo '%s' falhou na regra '%s'", e.Namespace(), e.Tag()))
			}
			return fmt.Errorf("erros de validação estrutural:\n- %s", strings.Join(errMsgs, "\n- "))
		}
		return fmt.Errorf("erro de validação estrutural: %w", err)
	}

	if err := sv.validateSemantics(s); err != nil {
		return fmt.Errorf("erro de validação semântica: %w", err)
	}

	return nil
}

func (sv *SettingsValidator) validateSemantics(s *Settings) error {
	// Lambda não abre listener; porta é ignorada, mas refresh via SQS exige processo longo
	if s.Server.Runtime == RuntimeLambda && s.Clients.RefreshQueueURL != "" {
		return fmt.Errorf("CLIENT_REFRESH_QUEUE_URL não é suportado no runtime lambda")
	}
	return nil
}
