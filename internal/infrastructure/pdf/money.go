package pdf

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// reportCurrency moeda dos relatórios; os valores são gravados sem moeda no banco.
var reportCurrency = currency.BRL

// moneyFormatter formata valores com separadores do idioma (pt-BR: 1.234,56).
type moneyFormatter struct {
	p      *message.Printer
	symbol string
}

func newMoneyFormatter(tag language.Tag) moneyFormatter {
	return moneyFormatter{p: message.NewPrinter(tag), symbol: "R$"}
}

// Money ex: "R$ 1.234,56"; negativos com sinal antes do símbolo.
func (f moneyFormatter) Money(d decimal.Decimal) string {
	v := d.Round(2).InexactFloat64()
	if v < 0 {
		return "-" + f.symbol + " " + f.p.Sprintf("%.2f", -v)
	}
	return f.symbol + " " + f.p.Sprintf("%.2f", v)
}

// Percent ex: "12,5%".
func (f moneyFormatter) Percent(d decimal.Decimal) string {
	return f.p.Sprintf("%.1f%%", d.Round(1).InexactFloat64())
}
