// Package pdf gera o relatório financeiro anual em PDF.
//
// Layout da página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + Ano              │  Gerado em             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMO: Receita | Despesa | Lucro | Margem                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABELA MENSAL: Mês | Receita | Despesa | Lucro             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FONTES DE RECEITA: Categoria | Valor | Participação        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"

	appanalytics "github.com/jhoicas/Financeiro-api/internal/application/analytics"
	domainanalytics "github.com/jhoicas/Financeiro-api/internal/domain/analytics"
)

// ── Paleta ────────────────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 22, Green: 101, Blue: 52}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 183, Green: 28, Blue: 28}
)

var _ appanalytics.ReportPDFGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa analytics.ReportPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	money moneyFormatter
}

// NewMarotoReportGenerator constrói o gerador com formatação pt-BR.
func NewMarotoReportGenerator() *MarotoReportGenerator {
	return &MarotoReportGenerator{money: newMoneyFormatter(language.BrazilianPortuguese)}
}

// GenerateAnnualReport gera o PDF e devolve seus bytes.
func (g *MarotoReportGenerator) GenerateAnnualReport(_ context.Context, r appanalytics.AnnualReport) ([]byte, error) {
	title := nonEmpty(r.Title, "Relatório Financeiro")
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("%s %d", title, r.Year), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(title, r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.totalsRow(r.Totals))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionRow("FLUXO MENSAL"))
	m.AddRows(tableHeader([]string{"Mês", "Receita", "Despesa", "Lucro"}, []int{3, 3, 3, 3}))
	m.AddRows(g.monthlyRows(r.Monthly)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionRow("FONTES DE RECEITA"))
	if len(r.Distribution) == 0 {
		m.AddRows(row.New(7).Add(col.New(12).Add(
			text.New("Nenhuma receita registrada no período.", props.Text{Size: 8, Color: colorGray, Top: 1}),
		)))
	} else {
		m.AddRows(tableHeader([]string{"Categoria", "Valor", "Participação"}, []int{6, 3, 3}))
		m.AddRows(g.distributionRows(r.Distribution, r.Totals.Revenue)...)
	}

	m.AddRows(line.NewRow(4))
	m.AddRows(row.New(6).Add(col.New(12).Add(
		text.New("Valores em "+reportCurrency.String()+". Despesas exibidas em valor absoluto.", props.Text{
			Size: 7, Color: colorGray, Top: 1,
		}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Seções ────────────────────────────────────────────────────────────────────

func (g *MarotoReportGenerator) headerRow(title string, r appanalytics.AnnualReport) core.Row {
	generated := ""
	if !r.GeneratedAt.IsZero() {
		generated = "Gerado em " + r.GeneratedAt.Format("02/01/2006 15:04")
	}
	return row.New(16).Add(
		col.New(8).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1}),
			text.New(fmt.Sprintf("Relatório anual %d", r.Year), props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New(generated, props.Text{Size: 8, Align: align.Right, Top: 9, Color: colorGray}),
		),
	)
}

func (g *MarotoReportGenerator) totalsRow(t domainanalytics.YearTotals) core.Row {
	cell := func(label, value string, c *props.Color) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1, Align: align.Center}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Color: c, Top: 6, Align: align.Center}),
		)
	}
	return row.New(16).Add(
		cell("RECEITA", g.money.Money(t.Revenue), colorPrimary),
		cell("DESPESA", g.money.Money(t.Expense), colorRed),
		cell("LUCRO", g.money.Money(t.Profit), signColor(t.Profit)),
		cell("MARGEM", g.money.Percent(t.Margin), signColor(t.Margin)),
	)
}

func (g *MarotoReportGenerator) monthlyRows(points []domainanalytics.MonthlyPoint) []core.Row {
	rows := make([]core.Row, 0, len(points))
	for _, p := range points {
		rows = append(rows, row.New(6).Add(
			col.New(3).Add(text.New(p.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(g.money.Money(p.Revenue), props.Text{Size: 8, Top: 1, Align: align.Right})),
			col.New(3).Add(text.New(g.money.Money(p.Expense), props.Text{Size: 8, Top: 1, Align: align.Right})),
			col.New(3).Add(text.New(g.money.Money(p.Profit), props.Text{
				Size: 8, Top: 1, Align: align.Right, Right: 1, Color: signColor(p.Profit),
			})),
		))
	}
	return rows
}

func (g *MarotoReportGenerator) distributionRows(slices []domainanalytics.PieSlice, total decimal.Decimal) []core.Row {
	rows := make([]core.Row, 0, len(slices))
	for _, s := range slices {
		share := decimal.Zero
		if total.IsPositive() {
			share = s.Value.Div(total).Mul(decimal.NewFromInt(100))
		}
		rows = append(rows, row.New(6).Add(
			col.New(6).Add(text.New(s.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(g.money.Money(s.Value), props.Text{Size: 8, Top: 1, Align: align.Right})),
			col.New(3).Add(text.New(g.money.Percent(share), props.Text{Size: 8, Top: 1, Align: align.Right, Right: 1})),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func sectionRow(label string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
	))
}

func tableHeader(labels []string, sizes []int) core.Row {
	cols := make([]core.Col, 0, len(labels))
	for i, l := range labels {
		a := align.Right
		if i == 0 {
			a = align.Left
		}
		cols = append(cols, col.New(sizes[i]).Add(text.New(l, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		})))
	}
	return row.New(6).Add(cols...)
}

func signColor(d decimal.Decimal) *props.Color {
	if d.IsNegative() {
		return colorRed
	}
	return nil
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
