package v1

import (
	"github.com/andreyxaxa/Deletion-Request-Mailer/internal/usecase"
	"github.com/andreyxaxa/Deletion-Request-Mailer/pkg/logger"
	"github.com/go-playground/validator/v10"
)

type V1 struct {
	dr     usecase.DeleteRequestUseCase
	mail   usecase.MailUseCase
	v      *validator.Validate
	logger logger.Interface
}
