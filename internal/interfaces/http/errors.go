package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/Financeiro-api/internal/application/dto"
	"github.com/jhoicas/Financeiro-api/internal/application/importer"
	"github.com/jhoicas/Financeiro-api/internal/domain"
)

func fail(c *fiber.Ctx, status int, code, msg string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

// respondError traduz erros de domínio para status HTTP. Erros não mapeados viram 500
// sem expor detalhes ao cliente.
func respondError(c *fiber.Ctx, err error) error {
	var missing *importer.MissingColumnsError
	var incomplete *importer.IncompleteRowsError
	switch {
	case errors.As(err, &missing):
		return fail(c, fiber.StatusBadRequest, "MISSING_COLUMNS", missing.Error())
	case errors.As(err, &incomplete):
		return fail(c, fiber.StatusBadRequest, "INCOMPLETE_ROWS", incomplete.Error())
	case errors.Is(err, importer.ErrEmptySheet):
		return fail(c, fiber.StatusBadRequest, "EMPTY_SHEET", err.Error())
	case errors.Is(err, importer.ErrUnsupportedFormat):
		return fail(c, fiber.StatusUnsupportedMediaType, "UNSUPPORTED_FORMAT", err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		return fail(c, fiber.StatusBadRequest, "VALIDATION", err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		return fail(c, fiber.StatusUnauthorized, "UNAUTHORIZED", err.Error())
	case errors.Is(err, domain.ErrForbidden):
		return fail(c, fiber.StatusForbidden, "FORBIDDEN", err.Error())
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return fail(c, fiber.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return fail(c, fiber.StatusConflict, "EMAIL_EXISTS", err.Error())
	case errors.Is(err, domain.ErrConflict):
		return fail(c, fiber.StatusConflict, "CONFLICT", err.Error())
	default:
		log.Error().Err(err).Str("path", c.Path()).Msg("erro interno")
		return fail(c, fiber.StatusInternalServerError, "INTERNAL", "erro interno")
	}
}

func invalidBody(c *fiber.Ctx) error {
	return fail(c, fiber.StatusBadRequest, "INVALID_BODY", "corpo inválido")
}
