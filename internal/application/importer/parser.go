// Package importer lê planilhas de lançamentos (.xlsx ou .csv) e as converte
// em linhas de inserção em lote.
package importer

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Financeiro-api/internal/application/dto"
	"github.com/jhoicas/Financeiro-api/internal/application/transaction"
	"github.com/jhoicas/Financeiro-api/internal/domain"
	"github.com/jhoicas/Financeiro-api/internal/domain/entity"
)

// Colunas obrigatórias do cabeçalho, na ordem em que são reportadas.
const (
	ColDescription  = "description"
	ColAmount       = "amount"
	ColDate         = "date"
	ColCategoryName = "category_name"
	ColStatus       = "status"
)

var requiredColumns = []string{ColDescription, ColAmount, ColDate, ColCategoryName, ColStatus}

var (
	ErrEmptySheet        = fmt.Errorf("%w: a planilha está vazia", domain.ErrInvalidInput)
	ErrUnsupportedFormat = fmt.Errorf("%w: formato não suportado, use .xlsx ou .csv", domain.ErrInvalidInput)
)

// MissingColumnsError cabeçalho sem uma ou mais colunas obrigatórias.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return "colunas obrigatórias ausentes: " + strings.Join(e.Columns, ", ")
}

func (e *MissingColumnsError) Unwrap() error { return domain.ErrInvalidInput }

// IncompleteRowsError linhas com célula obrigatória vazia ou valor ilegível.
// Rows são números de linha de dados, a partir de 1 (o cabeçalho não conta).
type IncompleteRowsError struct {
	Rows []int
}

func (e *IncompleteRowsError) Error() string {
	nums := make([]string, 0, len(e.Rows))
	for _, r := range e.Rows {
		nums = append(nums, strconv.Itoa(r))
	}
	return "linhas incompletas ou inválidas: " + strings.Join(nums, ", ")
}

func (e *IncompleteRowsError) Unwrap() error { return domain.ErrInvalidInput }

// Parse escolhe o leitor pela extensão do arquivo.
func Parse(filename string, r io.Reader) ([]dto.InsertTransactionRequest, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return ParseXLSX(r)
	case ".csv":
		return ParseCSV(r)
	default:
		return nil, ErrUnsupportedFormat
	}
}

// ParseXLSX lê a primeira aba da pasta de trabalho.
func ParseXLSX(r io.Reader) ([]dto.InsertTransactionRequest, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: xlsx ilegível: %v", domain.ErrInvalidInput, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptySheet
	}
	// Valor bruto: datas chegam como número serial e valores sem formatação de moeda.
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("importer: ler aba %q: %w", sheets[0], err)
	}
	return parseRows(rows)
}

// ParseCSV lê um CSV separado por vírgula ou ponto e vírgula (detectado no cabeçalho).
func ParseCSV(r io.Reader) ([]dto.InsertTransactionRequest, error) {
	br := bufio.NewReader(r)
	head, _ := br.Peek(4096)
	if i := bytes.IndexByte(head, '\n'); i >= 0 {
		head = head[:i]
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	if bytes.Count(head, []byte{';'}) > bytes.Count(head, []byte{','}) {
		cr.Comma = ';'
	}

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: csv ilegível: %v", domain.ErrInvalidInput, err)
	}
	return parseRows(rows)
}

func parseRows(rows [][]string) ([]dto.InsertTransactionRequest, error) {
	// Linhas em branco antes do cabeçalho são ignoradas.
	for len(rows) > 0 && isBlank(rows[0]) {
		rows = rows[1:]
	}
	if len(rows) == 0 {
		return nil, ErrEmptySheet
	}

	index := headerIndex(rows[0])
	var missing []string
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}

	out := make([]dto.InsertTransactionRequest, 0, len(rows)-1)
	var bad []int
	for i, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		cell := func(col string) string {
			j := index[col]
			if j >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[j])
		}

		item, ok := parseRow(cell)
		if !ok {
			bad = append(bad, i+1)
			continue
		}
		out = append(out, item)
	}
	if len(bad) > 0 {
		return nil, &IncompleteRowsError{Rows: bad}
	}
	if len(out) == 0 {
		return nil, ErrEmptySheet
	}
	return out, nil
}

func parseRow(cell func(string) string) (dto.InsertTransactionRequest, bool) {
	for _, col := range requiredColumns {
		if cell(col) == "" {
			return dto.InsertTransactionRequest{}, false
		}
	}
	amount, err := ParseAmount(cell(ColAmount))
	if err != nil || amount.IsZero() {
		return dto.InsertTransactionRequest{}, false
	}
	date, err := normalizeDate(cell(ColDate))
	if err != nil {
		return dto.InsertTransactionRequest{}, false
	}
	return dto.InsertTransactionRequest{
		Date:         date,
		Description:  cell(ColDescription),
		Amount:       amount,
		CategoryName: cell(ColCategoryName),
		Status:       cell(ColStatus),
	}, true
}

// ParseAmount aceita "1234.56", "1234,56" e "1.234,56", com ou sem prefixo "R$".
// Sem vírgula o ponto é separador decimal, então "1.234" é lido como 1,234 e
// recusado por ter três casas. Mais de duas casas decimais sempre dá erro.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "R$"))
	s = strings.ReplaceAll(s, " ", "")
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	if s == "" {
		return decimal.Zero, errors.New("valor vazio")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if !entity.FitsAmountScale(d) {
		return decimal.Zero, fmt.Errorf("valor %s com mais de %d casas decimais", s, entity.AmountDecimals)
	}
	return d, nil
}

// normalizeDate devolve a data em YYYY-MM-DD (ou RFC3339 quando traz hora).
// Números são tratados como data serial do Excel.
func normalizeDate(s string) (string, error) {
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return "", err
		}
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
			return t.Format(time.DateOnly), nil
		}
		return t.Format("2006-01-02T15:04:05"), nil
	}
	t, err := transaction.ParseDate(s, time.UTC)
	if err != nil {
		return "", err
	}
	if len(s) == len("02/01/2006") && strings.Count(s, "/") == 2 {
		return t.Format(time.DateOnly), nil
	}
	return s, nil
}

func headerIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}
	return index
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
