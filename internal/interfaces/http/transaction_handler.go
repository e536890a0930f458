package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Financeiro-api/internal/application/dto"
	"github.com/jhoicas/Financeiro-api/internal/application/importer"
	"github.com/jhoicas/Financeiro-api/internal/application/transaction"
)

// TransactionHandler endpoints de lançamentos e importação de planilhas.
type TransactionHandler struct {
	uc       *transaction.UseCase
	importUC *importer.UseCase
	maxBytes int64
}

// NewTransactionHandler constrói o handler; maxBytes limita o tamanho do upload.
func NewTransactionHandler(uc *transaction.UseCase, importUC *importer.UseCase, maxBytes int) *TransactionHandler {
	return &TransactionHandler{uc: uc, importUC: importUC, maxBytes: int64(maxBytes)}
}

// List godoc
// @Summary      Listar lançamentos (paginado)
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        page  query  int  false  "Página (1-based, 20 por página)"  default(1)
// @Success      200   {object}  dto.TransactionListResponse
// @Router       /api/transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListPage(c.UserContext(), GetUserID(c), dto.PageRequest{Page: c.QueryInt("page", 1)})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListByYear godoc
// @Summary      Lançamentos de um ano
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        year  path  int  true  "Ano"
// @Success      200   {array}  dto.TransactionResponse
// @Router       /api/transactions/year/{year} [get]
func (h *TransactionHandler) ListByYear(c *fiber.Ctx) error {
	year, err := c.ParamsInt("year")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "INVALID_YEAR", "ano inválido")
	}
	out, err := h.uc.ListByYear(c.UserContext(), GetUserID(c), year)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obter lançamento
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID do lançamento"
// @Success      200  {object}  dto.TransactionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id} [get]
func (h *TransactionHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	out, err := h.uc.GetByID(c.UserContext(), GetUserID(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar lançamento
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID do lançamento"
// @Param        body  body  dto.EditTransactionRequest  true  "Campos do lançamento"
// @Success      200   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/transactions/{id} [put]
func (h *TransactionHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	var in dto.EditTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetUserID(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Excluir lançamento
// @Tags         transactions
// @Security     Bearer
// @Param        id   path  int  true  "ID do lançamento"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	if err := h.uc.Delete(c.UserContext(), GetUserID(c), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// InsertBatch godoc
// @Summary      Inserir lançamentos em lote
// @Description  Todas as linhas são gravadas numa única transação. Categoria resolvida por nome.
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BatchInsertRequest  true  "Linhas"
// @Success      201   {object}  dto.BatchInsertResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/transactions/batch [post]
func (h *TransactionHandler) InsertBatch(c *fiber.Ctx) error {
	var in dto.BatchInsertRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	n, err := h.uc.InsertBatch(c.UserContext(), GetUserID(c), in.Transactions)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.BatchInsertResponse{Inserted: n})
}

// Import godoc
// @Summary      Importar planilha (.xlsx ou .csv)
// @Description  Colunas obrigatórias: description, amount, date, category_name, status. Com preview=true nada é gravado.
// @Tags         transactions
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file     formData  file  true   "Planilha"
// @Param        preview  query     bool  false  "Só pré-visualizar"
// @Success      200  {object}  dto.ImportPreviewResponse
// @Success      201  {object}  dto.ImportResultResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      413  {object}  dto.ErrorResponse
// @Router       /api/transactions/import [post]
func (h *TransactionHandler) Import(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "MISSING_FILE", "campo multipart 'file' obrigatório")
	}
	if h.maxBytes > 0 && fh.Size > h.maxBytes {
		return fail(c, fiber.StatusRequestEntityTooLarge, "FILE_TOO_LARGE",
			fmt.Sprintf("arquivo maior que %d bytes", h.maxBytes))
	}
	f, err := fh.Open()
	if err != nil {
		return respondError(c, err)
	}
	defer f.Close()

	if c.QueryBool("preview", false) {
		out, err := h.importUC.Preview(fh.Filename, f)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}
	out, err := h.importUC.Import(c.UserContext(), GetUserID(c), fh.Filename, f)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
