// Package analytics contém os casos de uso do dashboard financeiro e do
// relatório anual em PDF.
package analytics

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Financeiro-api/internal/application/dto"
	"github.com/jhoicas/Financeiro-api/internal/application/transaction"
	"github.com/jhoicas/Financeiro-api/internal/domain"
	domainanalytics "github.com/jhoicas/Financeiro-api/internal/domain/analytics"
	"github.com/jhoicas/Financeiro-api/internal/domain/entity"
	"github.com/jhoicas/Financeiro-api/internal/domain/repository"
)

const dashboardRecent = 5 // lançamentos no widget "últimas transações"

// DashboardUseCase monta o resumo anual e as métricas do mês corrente.
//
// Fonte de dados: TransactionRepository. Toda a agregação é feita em memória
// pelas funções puras de domain/analytics.
type DashboardUseCase struct {
	txRepo  repository.TransactionRepository
	reports ReportPDFGenerator
	loc     *time.Location
	now     func() time.Time
	title   string
}

// NewDashboardUseCase constrói o caso de uso. now nil usa time.Now.
func NewDashboardUseCase(
	txRepo repository.TransactionRepository,
	reports ReportPDFGenerator,
	loc *time.Location,
	now func() time.Time,
	title string,
) *DashboardUseCase {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &DashboardUseCase{txRepo: txRepo, reports: reports, loc: loc, now: now, title: title}
}

// GetSummary constrói o DashboardSummaryDTO do ano pedido (0 = ano corrente).
//
// Consultas em paralelo:
//  1. lançamentos do ano pedido      → série mensal, distribuição, totais
//  2. lançamentos do ano corrente    → métricas do mês (só se o ano pedido for outro)
//  3. página mais recente (top 5)    → Recent
func (uc *DashboardUseCase) GetSummary(ctx context.Context, userID string, year int) (*dto.DashboardSummaryDTO, error) {
	now := uc.now().In(uc.loc)
	if year == 0 {
		year = now.Year()
	}
	if err := validYear(year); err != nil {
		return nil, err
	}

	var yearTxs, currentTxs, recent []entity.Transaction

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		yearTxs, err = uc.listYear(gctx, userID, year)
		if err != nil {
			return fmt.Errorf("dashboard: transações de %d: %w", year, err)
		}
		return nil
	})
	if year != now.Year() {
		g.Go(func() error {
			var err error
			currentTxs, err = uc.listYear(gctx, userID, now.Year())
			if err != nil {
				return fmt.Errorf("dashboard: transações do ano corrente: %w", err)
			}
			return nil
		})
	}
	g.Go(func() error {
		var err error
		recent, err = uc.txRepo.ListPage(gctx, userID, dashboardRecent, 0)
		if err != nil {
			return fmt.Errorf("dashboard: últimas transações: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if year == now.Year() {
		currentTxs = yearTxs
	}

	ref := time.Date(year, time.January, 1, 0, 0, 0, 0, uc.loc)
	monthly := domainanalytics.MonthlyData(yearTxs, ref)
	metrics := domainanalytics.CalculateCurrentMetrics(currentTxs, now)

	return &dto.DashboardSummaryDTO{
		Year:                year,
		Monthly:             toMonthlyDTO(monthly),
		RevenueDistribution: toPieDTO(domainanalytics.RevenueDistribution(yearTxs)),
		Metrics:             toMetricsDTO(metrics),
		Totals:              toTotalsDTO(domainanalytics.SummarizeYear(monthly)),
		Recent:              transaction.ToResponses(recent),
		DateLabel:           monthLabel(now),
	}, nil
}

// AnnualReportPDF gera o relatório anual em PDF e devolve os bytes e o nome sugerido do arquivo.
func (uc *DashboardUseCase) AnnualReportPDF(ctx context.Context, userID string, year int) ([]byte, string, error) {
	now := uc.now().In(uc.loc)
	if year == 0 {
		year = now.Year()
	}
	if err := validYear(year); err != nil {
		return nil, "", err
	}
	txs, err := uc.listYear(ctx, userID, year)
	if err != nil {
		return nil, "", fmt.Errorf("relatório: transações de %d: %w", year, err)
	}

	monthly := domainanalytics.MonthlyData(txs, time.Date(year, time.January, 1, 0, 0, 0, 0, uc.loc))
	report := AnnualReport{
		Title:        uc.title,
		Year:         year,
		Monthly:      monthly,
		Totals:       domainanalytics.SummarizeYear(monthly),
		Distribution: domainanalytics.RevenueDistribution(txs),
		GeneratedAt:  now,
	}
	pdf, err := uc.reports.GenerateAnnualReport(ctx, report)
	if err != nil {
		return nil, "", fmt.Errorf("relatório: gerar pdf: %w", err)
	}
	return pdf, fmt.Sprintf("relatorio-%d.pdf", year), nil
}

func (uc *DashboardUseCase) listYear(ctx context.Context, userID string, year int) ([]entity.Transaction, error) {
	start, end := transaction.YearBounds(year, uc.loc)
	return uc.txRepo.ListByPeriod(ctx, userID, start, end)
}

func validYear(year int) error {
	if year < 1900 || year > 9999 {
		return fmt.Errorf("%w: ano %d fora do intervalo", domain.ErrInvalidInput, year)
	}
	return nil
}

// monthLabel devolve uma etiqueta legível do mês, ex: "Fevereiro 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
		"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}

func toMonthlyDTO(points []domainanalytics.MonthlyPoint) []dto.MonthlyPointDTO {
	out := make([]dto.MonthlyPointDTO, 0, len(points))
	for _, p := range points {
		out = append(out, dto.MonthlyPointDTO{Name: p.Name, Receita: p.Revenue, Despesa: p.Expense, Lucro: p.Profit})
	}
	return out
}

func toPieDTO(slices []domainanalytics.PieSlice) []dto.PieSliceDTO {
	out := make([]dto.PieSliceDTO, 0, len(slices))
	for _, s := range slices {
		out = append(out, dto.PieSliceDTO{Name: s.Name, Value: s.Value})
	}
	return out
}

func toMetricsDTO(m domainanalytics.CurrentMetrics) dto.CurrentMetricsDTO {
	return dto.CurrentMetricsDTO{
		Receita:       m.Revenue,
		Despesa:       m.Expense,
		Lucro:         m.Profit,
		Margem:        m.Margin,
		ReceitaGrowth: m.RevenueGrowth,
		DespesaGrowth: m.ExpenseGrowth,
		LucroGrowth:   m.ProfitGrowth,
		MargemGrowth:  m.MarginGrowth,
	}
}

func toTotalsDTO(t domainanalytics.YearTotals) dto.YearTotalsDTO {
	return dto.YearTotalsDTO{Receita: t.Revenue, Despesa: t.Expense, Lucro: t.Profit, Margem: t.Margin}
}
