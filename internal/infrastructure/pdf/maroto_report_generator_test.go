package pdf_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/Financeiro-api/internal/application/analytics"
	domainanalytics "github.com/jhoicas/Financeiro-api/internal/domain/analytics"
	"github.com/jhoicas/Financeiro-api/internal/infrastructure/pdf"
)

func TestGenerateAnnualReport(t *testing.T) {
	monthly := make([]domainanalytics.MonthlyPoint, 12)
	for i := range monthly {
		monthly[i] = domainanalytics.MonthlyPoint{
			Name:    domainanalytics.MonthNames[i],
			Revenue: decimal.NewFromInt(int64(1000 * (i + 1))),
			Expense: decimal.NewFromInt(400),
			Profit:  decimal.NewFromInt(int64(1000*(i+1) - 400)),
		}
	}
	report := appanalytics.AnnualReport{
		Title:        "Financeiro",
		Year:         2024,
		Monthly:      monthly,
		Totals:       domainanalytics.SummarizeYear(monthly),
		Distribution: []domainanalytics.PieSlice{{Name: "Vendas", Value: decimal.NewFromInt(78000)}},
		GeneratedAt:  time.Date(2024, 12, 31, 18, 0, 0, 0, time.UTC),
	}

	out, err := pdf.NewMarotoReportGenerator().GenerateAnnualReport(context.Background(), report)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestGenerateAnnualReport_SemReceita(t *testing.T) {
	monthly := domainanalytics.MonthlyData(nil, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))
	report := appanalytics.AnnualReport{Year: 2023, Monthly: monthly, Totals: domainanalytics.SummarizeYear(monthly)}

	out, err := pdf.NewMarotoReportGenerator().GenerateAnnualReport(context.Background(), report)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(out[:4]))
}
