package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// paramID lê :id como inteiro positivo.
func paramID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func invalidID(c *fiber.Ctx) error {
	return fail(c, fiber.StatusBadRequest, "INVALID_ID", "id deve ser um inteiro positivo")
}
