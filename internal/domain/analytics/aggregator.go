// Package analytics reúne as agregações derivadas do dashboard financeiro:
// série mensal de receita/despesa/lucro, distribuição de receita por categoria
// e métricas do mês corrente contra o mês anterior.
//
// Todas as funções são puras: só leem a coleção recebida e alocam a saída.
// O instante de referência é sempre explícito, nunca lido do relógio.
package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Financeiro-api/internal/domain/entity"
)

// MonthNames abreviações fixas, de janeiro a dezembro.
var MonthNames = [12]string{"Jan", "Fev", "Mar", "Abr", "Mai", "Jun", "Jul", "Ago", "Set", "Out", "Nov", "Dez"}

var hundred = decimal.NewFromInt(100)

// MonthlyPoint um ponto da série anual.
type MonthlyPoint struct {
	Name    string
	Revenue decimal.Decimal
	Expense decimal.Decimal // sempre magnitude não negativa
	Profit  decimal.Decimal // Revenue - Expense, pode ser negativo
}

// PieSlice receita acumulada de uma categoria (agrupada por nome).
type PieSlice struct {
	Name  string
	Value decimal.Decimal
}

// CurrentMetrics resumo do mês corrente e crescimento em relação ao mês anterior.
//
// RevenueGrowth, ExpenseGrowth e ProfitGrowth são variações percentuais relativas;
// MarginGrowth é a diferença absoluta em pontos percentuais entre as margens.
type CurrentMetrics struct {
	Revenue       decimal.Decimal
	Expense       decimal.Decimal
	Profit        decimal.Decimal
	Margin        decimal.Decimal
	RevenueGrowth decimal.Decimal
	ExpenseGrowth decimal.Decimal
	ProfitGrowth  decimal.Decimal
	MarginGrowth  decimal.Decimal
}

// YearTotals consolidação dos 12 pontos de uma série.
type YearTotals struct {
	Revenue decimal.Decimal
	Expense decimal.Decimal
	Profit  decimal.Decimal
	Margin  decimal.Decimal
}

// flows acumula as somas brutas de um período.
type flows struct {
	revenue decimal.Decimal
	expense decimal.Decimal // soma bruta; expor sempre via expenseAbs
}

func (f *flows) add(t entity.Transaction) {
	switch {
	case t.IsRevenue():
		f.revenue = f.revenue.Add(t.Amount)
	case t.IsExpense():
		f.expense = f.expense.Add(t.Amount)
	}
}

func (f flows) expenseAbs() decimal.Decimal { return f.expense.Abs() }

func (f flows) profit() decimal.Decimal { return f.revenue.Sub(f.expenseAbs()) }

func (f flows) margin() decimal.Decimal {
	return percentOf(f.profit(), f.revenue)
}

// MonthlyData devolve exatamente 12 pontos (Jan..Dez) do ano de ref.
//
// Um lançamento entra no mês M se sua data, no fuso de ref, cair em M do mesmo ano;
// lançamentos de outros anos são ignorados. Meses sem lançamentos saem zerados.
// Só Year() e Location() de ref são usados.
func MonthlyData(transactions []entity.Transaction, ref time.Time) []MonthlyPoint {
	var buckets [12]flows
	year, loc := ref.Year(), ref.Location()

	for _, t := range transactions {
		d := t.Date.In(loc)
		if d.Year() != year {
			continue
		}
		buckets[d.Month()-1].add(t)
	}

	points := make([]MonthlyPoint, 0, len(buckets))
	for i, b := range buckets {
		points = append(points, MonthlyPoint{
			Name:    MonthNames[i],
			Revenue: b.revenue,
			Expense: b.expenseAbs(),
			Profit:  b.profit(),
		})
	}
	return points
}

// RevenueDistribution soma a receita por nome de categoria.
//
// Categorias homônimas com IDs distintos são fundidas. A ordem é a da primeira
// ocorrência; categorias sem receita não aparecem.
func RevenueDistribution(transactions []entity.Transaction) []PieSlice {
	index := make(map[string]int)
	slices := make([]PieSlice, 0)

	for _, t := range transactions {
		if !t.IsRevenue() {
			continue
		}
		name := t.Category.Name
		i, ok := index[name]
		if !ok {
			i = len(slices)
			index[name] = i
			slices = append(slices, PieSlice{Name: name, Value: decimal.Zero})
		}
		slices[i].Value = slices[i].Value.Add(t.Amount)
	}
	return slices
}

// CalculateCurrentMetrics compara o mês de ref com o mês anterior, ambos no ano de ref.
//
// Em janeiro o mês anterior é dezembro do mesmo ano, e não do ano anterior;
// na prática a base costuma estar vazia e os crescimentos saem zero.
func CalculateCurrentMetrics(transactions []entity.Transaction, ref time.Time) CurrentMetrics {
	year, loc := ref.Year(), ref.Location()
	current := ref.Month()
	previous := PreviousMonth(current)

	var cur, prev flows
	for _, t := range transactions {
		d := t.Date.In(loc)
		if d.Year() != year {
			continue
		}
		switch d.Month() {
		case current:
			cur.add(t)
		case previous:
			prev.add(t)
		}
	}

	curMargin, prevMargin := cur.margin(), prev.margin()

	return CurrentMetrics{
		Revenue:       cur.revenue,
		Expense:       cur.expenseAbs(),
		Profit:        cur.profit(),
		Margin:        curMargin,
		RevenueGrowth: growth(cur.revenue, prev.revenue),
		ExpenseGrowth: growth(cur.expenseAbs(), prev.expenseAbs()),
		ProfitGrowth:  growth(cur.profit(), prev.profit()),
		MarginGrowth:  curMargin.Sub(prevMargin),
	}
}

// PreviousMonth mês anterior sem cruzar a virada do ano (Janeiro -> Dezembro).
func PreviousMonth(m time.Month) time.Month {
	if m == time.January {
		return time.December
	}
	return m - 1
}

// SummarizeYear consolida uma série mensal.
func SummarizeYear(points []MonthlyPoint) YearTotals {
	var totals YearTotals
	for _, p := range points {
		totals.Revenue = totals.Revenue.Add(p.Revenue)
		totals.Expense = totals.Expense.Add(p.Expense)
		totals.Profit = totals.Profit.Add(p.Profit)
	}
	totals.Margin = percentOf(totals.Profit, totals.Revenue)
	return totals
}

// growth (cur - prev) / prev * 100; zero quando não há base positiva.
func growth(cur, prev decimal.Decimal) decimal.Decimal {
	if !prev.IsPositive() {
		return decimal.Zero
	}
	return cur.Sub(prev).Div(prev).Mul(hundred)
}

// percentOf part / whole * 100; zero quando whole não é positivo.
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}
