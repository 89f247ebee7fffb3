package middleware

import (
	"errors"
	"net/http"

	"quiz-pulse/internal/domain"
	"quiz-pulse/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorResponse is the wire shape every failure takes: a single error
// message. Error codes and causes stay in the server logs.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ErrorHandler is the centralized fiber error handler. It maps domain errors
// to HTTP statuses and keeps the client-facing body generic for faults.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		log := logger.Get()

		var validationErrs domain.ValidationErrors
		if errors.As(err, &validationErrs) {
			log.Warn("Validation errors occurred",
				zap.String("path", c.Path()),
				zap.Int("error_count", len(validationErrs)),
			)
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Error: "Missing required fields",
			})
		}

		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			statusCode := mapDomainErrorToHTTPStatus(domainErr)

			if statusCode >= http.StatusInternalServerError {
				log.Error("Domain error occurred",
					zap.String("code", string(domainErr.Code)),
					zap.String("message", domainErr.Message),
					zap.Int("status", statusCode),
					zap.Error(domainErr.Cause),
				)
			} else {
				log.Warn("Request rejected",
					zap.String("code", string(domainErr.Code)),
					zap.String("message", domainErr.Message),
					zap.Int("status", statusCode),
				)
			}

			return c.Status(statusCode).JSON(ErrorResponse{Error: domainErr.Message})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			log.Warn("Fiber error occurred",
				zap.Int("code", fiberErr.Code),
				zap.String("message", fiberErr.Message),
			)
			return c.Status(fiberErr.Code).JSON(ErrorResponse{Error: fiberErr.Message})
		}

		log.Error("Unknown error occurred",
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "Something went wrong!",
		})
	}
}

// mapDomainErrorToHTTPStatus maps domain error codes to HTTP status codes
func mapDomainErrorToHTTPStatus(err *domain.DomainError) int {
	switch err.Code {
	case domain.CodeNotFound, domain.CodeQuizNotFound:
		return http.StatusNotFound
	case domain.CodeInvalidInput, domain.CodeValidation,
		domain.CodeMissingField, domain.CodeInvalidFormat, domain.CodeOutOfRange:
		return http.StatusBadRequest
	case domain.CodeQuestionBankError:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
