package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Financeiro-api/internal/application/analytics"
)

// DashboardHandler trata os endpoints do dashboard financeiro.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler constrói o handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary godoc
// @Summary      Resumo do dashboard
// @Description  Série mensal, fontes de receita, totais do ano e métricas do mês corrente.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        year  query  int  false  "Ano (padrão: ano corrente)"
// @Success      200   {object}  dto.DashboardSummaryDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext(), GetUserID(c), c.QueryInt("year", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

// ReportPDF godoc
// @Summary      Relatório anual em PDF
// @Tags         dashboard
// @Security     Bearer
// @Produce      application/pdf
// @Param        year  query  int  false  "Ano (padrão: ano corrente)"
// @Success      200
// @Router       /api/dashboard/report.pdf [get]
func (h *DashboardHandler) ReportPDF(c *fiber.Ctx) error {
	pdf, filename, err := h.uc.AnnualReportPDF(c.UserContext(), GetUserID(c), c.QueryInt("year", 0))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}
