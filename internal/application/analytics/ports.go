package analytics

import (
	"context"
	"time"

	domainanalytics "github.com/jhoicas/Financeiro-api/internal/domain/analytics"
)

// AnnualReport dados consolidados de um ano, prontos para renderização.
type AnnualReport struct {
	Title        string
	Year         int
	Monthly      []domainanalytics.MonthlyPoint
	Totals       domainanalytics.YearTotals
	Distribution []domainanalytics.PieSlice
	GeneratedAt  time.Time
}

// ReportPDFGenerator renderiza o relatório anual em PDF (implementado em infrastructure/pdf).
type ReportPDFGenerator interface {
	GenerateAnnualReport(ctx context.Context, report AnnualReport) ([]byte, error)
}
