package dto

import "github.com/shopspring/decimal"

// MonthlyPointDTO um mês do gráfico de fluxo financeiro.
type MonthlyPointDTO struct {
	Name    string          `json:"name"`
	Receita decimal.Decimal `json:"receita"`
	Despesa decimal.Decimal `json:"despesa"`
	Lucro   decimal.Decimal `json:"lucro"`
}

// PieSliceDTO fatia do gráfico de fontes de receita.
type PieSliceDTO struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// CurrentMetricsDTO cartões de KPI do mês corrente.
// margemGrowth é diferença em pontos percentuais; os demais *Growth são variação percentual.
type CurrentMetricsDTO struct {
	Receita       decimal.Decimal `json:"receita"`
	Despesa       decimal.Decimal `json:"despesa"`
	Lucro         decimal.Decimal `json:"lucro"`
	Margem        decimal.Decimal `json:"margem"`
	ReceitaGrowth decimal.Decimal `json:"receitaGrowth"`
	DespesaGrowth decimal.Decimal `json:"despesaGrowth"`
	LucroGrowth   decimal.Decimal `json:"lucroGrowth"`
	MargemGrowth  decimal.Decimal `json:"margemGrowth"`
}

// YearTotalsDTO consolidado anual.
type YearTotalsDTO struct {
	Receita decimal.Decimal `json:"receita"`
	Despesa decimal.Decimal `json:"despesa"`
	Lucro   decimal.Decimal `json:"lucro"`
	Margem  decimal.Decimal `json:"margem"`
}

// DashboardSummaryDTO resposta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	Year                int                   `json:"year"`
	Monthly             []MonthlyPointDTO     `json:"monthly"`
	RevenueDistribution []PieSliceDTO         `json:"revenue_distribution"`
	Metrics             CurrentMetricsDTO     `json:"metrics"`
	Totals              YearTotalsDTO         `json:"totals"`
	Recent              []TransactionResponse `json:"recent"`
	DateLabel           string                `json:"date_label"` // ex: "Junho 2024"
}
