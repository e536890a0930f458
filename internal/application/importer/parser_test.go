package importer_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Financeiro-api/internal/application/importer"
	"github.com/jhoicas/Financeiro-api/internal/domain"
)

func xlsx(t *testing.T, rows ...[]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

var header = []any{"description", "amount", "date", "category_name", "status"}

func TestParseXLSX(t *testing.T) {
	buf := xlsx(t,
		header,
		[]any{"Venda balcão", 1500.5, 45306, "Vendas", "pago"},
		[]any{"Aluguel", "1.200,00", "05/02/2024", "Aluguel", "pendente"},
	)

	rows, err := importer.Parse("lancamentos.xlsx", buf)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Venda balcão", rows[0].Description)
	assert.True(t, rows[0].Amount.Equal(decimal.RequireFromString("1500.5")))
	assert.Equal(t, "2024-01-15", rows[0].Date, "data serial do Excel")
	assert.Equal(t, "Vendas", rows[0].CategoryName)

	assert.True(t, rows[1].Amount.Equal(decimal.NewFromInt(1200)))
	assert.Equal(t, "2024-02-05", rows[1].Date)
	assert.Equal(t, "pendente", rows[1].Status)
}

func TestParseCSV_Delimiters(t *testing.T) {
	tests := map[string]string{
		"vírgula":         "description,amount,date,category_name,status\nConsultoria,350.00,2024-03-10,Serviços,recebido\n",
		"ponto e vírgula": "Description;Amount;Date;Category Name;Status\r\nConsultoria;R$ 350,00;10/03/2024;Serviços;recebido\r\n",
		"com BOM":         "\ufeffdescription,amount,date,category-name,status\nConsultoria,350,2024-03-10,Serviços,recebido\n",
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			rows, err := importer.Parse("extrato.CSV", strings.NewReader(in))
			require.NoError(t, err)
			require.Len(t, rows, 1)
			assert.Equal(t, "Consultoria", rows[0].Description)
			assert.True(t, rows[0].Amount.Equal(decimal.NewFromInt(350)), rows[0].Amount.String())
			assert.Equal(t, "2024-03-10", rows[0].Date)
			assert.Equal(t, "Serviços", rows[0].CategoryName)
		})
	}
}

func TestParse_MissingColumns(t *testing.T) {
	_, err := importer.Parse("a.csv", strings.NewReader("description,amount,date\nx,1,2024-01-01\n"))
	require.Error(t, err)

	var missing *importer.MissingColumnsError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{importer.ColCategoryName, importer.ColStatus}, missing.Columns)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParse_IncompleteRows(t *testing.T) {
	in := strings.Join([]string{
		"description,amount,date,category_name,status",
		"ok,10,2024-01-01,Vendas,pago",
		",10,2024-01-01,Vendas,pago",
		",,,,",
		"valor zero,0,2024-01-01,Vendas,pago",
		"data ruim,10,ontem,Vendas,pago",
		"valor ruim,dez,2024-01-01,Vendas,pago",
		"ok 2,10,2024-01-02,Vendas,pago",
	}, "\n")

	_, err := importer.Parse("a.csv", strings.NewReader(in))
	require.Error(t, err)

	var incomplete *importer.IncompleteRowsError
	require.True(t, errors.As(err, &incomplete))
	assert.Equal(t, []int{2, 4, 5, 6}, incomplete.Rows)
	assert.Contains(t, err.Error(), "2, 4, 5, 6")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParse_AmountBeyondCentsIsInvalidRow(t *testing.T) {
	in := strings.Join([]string{
		"description,amount,date,category_name,status",
		"ok,10.00,2024-01-01,Vendas,pago",
		"três casas,10.005,2024-01-01,Vendas,pago",
	}, "\n")

	_, err := importer.Parse("a.csv", strings.NewReader(in))

	var incomplete *importer.IncompleteRowsError
	require.True(t, errors.As(err, &incomplete))
	assert.Equal(t, []int{2}, incomplete.Rows)
}

func TestParse_EmptySheet(t *testing.T) {
	for name, in := range map[string]string{
		"vazio":            "",
		"só cabeçalho":     "description,amount,date,category_name,status\n",
		"linhas em branco": "\n\n",
		"dados em branco":  "description,amount,date,category_name,status\n,,,,\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := importer.Parse("a.csv", strings.NewReader(in))
			assert.ErrorIs(t, err, importer.ErrEmptySheet)
		})
	}

	_, err := importer.Parse("a.xlsx", xlsx(t, header))
	assert.ErrorIs(t, err, importer.ErrEmptySheet)
}

func TestParse_UnsupportedFormat(t *testing.T) {
	_, err := importer.Parse("a.pdf", strings.NewReader("x"))
	assert.ErrorIs(t, err, importer.ErrUnsupportedFormat)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = importer.Parse("a.xlsx", strings.NewReader("não é um zip"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParseAmount(t *testing.T) {
	tests := map[string]string{
		"1234.56":     "1234.56",
		"1234,56":     "1234.56",
		"1.234,56":    "1234.56",
		"R$ 1.234,56": "1234.56",
		"-80,00":      "-80",
		" 42 ":        "42",
		"1.23":        "1.23",
		"10.50":       "10.5",
	}
	for in, want := range tests {
		got, err := importer.ParseAmount(in)
		require.NoError(t, err, in)
		assert.True(t, got.Equal(decimal.RequireFromString(want)), "%s -> %s", in, got)
	}

	// Sem vírgula o ponto é decimal, então "1.234" tem três casas e não vira 1234.
	_, err := importer.ParseAmount("1.234")
	assert.Error(t, err)

	for _, in := range []string{"", "R$", "abc", "10.005", "10,005", "R$ 1.234,567"} {
		_, err := importer.ParseAmount(in)
		assert.Error(t, err, in)
	}
}
