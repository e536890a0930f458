package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/Financeiro-api/internal/application/analytics"
	"github.com/jhoicas/Financeiro-api/internal/application/auth"
	"github.com/jhoicas/Financeiro-api/internal/application/category"
	"github.com/jhoicas/Financeiro-api/internal/application/dto"
	"github.com/jhoicas/Financeiro-api/internal/application/importer"
	"github.com/jhoicas/Financeiro-api/internal/application/transaction"
	"github.com/jhoicas/Financeiro-api/internal/infrastructure/memory"
	"github.com/jhoicas/Financeiro-api/internal/infrastructure/notify"
	infrapdf "github.com/jhoicas/Financeiro-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/Financeiro-api/internal/interfaces/http"
	"github.com/jhoicas/Financeiro-api/pkg/logger"
)

var apiNow = time.Date(2024, time.March, 20, 12, 0, 0, 0, time.UTC)

// newAPI monta o router completo sobre o store em memória.
func newAPI(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	txUC := transaction.NewUseCase(store.Transactions(), store.Categories(), store.TxRunner(), transaction.Config{
		DefaultCategoryID: 6,
		Location:          time.UTC,
	})
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC: auth.NewAuthUseCase(store.Users(), notify.NewLogNotifier(logger.Nop(), "http://front/reset"), auth.JWTConfig{
			Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
		}),
		DashboardUC: appanalytics.NewDashboardUseCase(store.Transactions(), infrapdf.NewMarotoReportGenerator(), time.UTC,
			func() time.Time { return apiNow }, "Financeiro"),
		TransactionUC:  txUC,
		CategoryUC:     category.NewUseCase(store.Categories()),
		ImportUC:       importer.NewUseCase(txUC),
		JWTSecret:      testJWTSecret,
		ImportMaxBytes: 1024,
	})
	return app
}

type client struct {
	t     *testing.T
	app   *fiber.App
	token string
}

func (c *client) do(method, path string, body any) *http.Response {
	c.t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(c.t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.app.Test(req, -1)
	require.NoError(c.t, err)
	return resp
}

func (c *client) upload(path, filename, content string) *http.Response {
	c.t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(c.t, err)
	_, err = part.Write([]byte(content))
	require.NoError(c.t, err)
	require.NoError(c.t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.token)
	resp, err := c.app.Test(req, -1)
	require.NoError(c.t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// login registra e autentica um usuário, devolvendo um client com token.
func login(t *testing.T, app *fiber.App, email string) *client {
	t.Helper()
	anon := &client{t: t, app: app}
	resp := anon.do(http.MethodPost, "/api/auth/register", dto.RegisterRequest{Email: email, Password: "senha-forte-1"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = anon.do(http.MethodPost, "/api/auth/login", dto.LoginRequest{Email: email, Password: "senha-forte-1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	res := decode[dto.LoginResponse](t, resp)
	return &client{t: t, app: app, token: res.Token}
}

func TestRouter_AuthFlow(t *testing.T) {
	app := newAPI(t)
	anon := &client{t: t, app: app}

	resp := anon.do(http.MethodGet, "/api/me", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	c := login(t, app, "ana@example.com")

	resp = anon.do(http.MethodPost, "/api/auth/register", dto.RegisterRequest{Email: "ana@example.com", Password: "senha-forte-1"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	resp = anon.do(http.MethodPost, "/api/auth/login", dto.LoginRequest{Email: "ana@example.com", Password: "errada"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	me := decode[dto.UserResponse](t, c.do(http.MethodGet, "/api/me", nil))
	assert.Equal(t, "ana@example.com", me.Email)

	name := "Ana Souza"
	updated := decode[dto.UserResponse](t, c.do(http.MethodPut, "/api/me", dto.UpdateProfileRequest{Name: &name}))
	assert.Equal(t, name, updated.Name)

	resp = c.do(http.MethodPut, "/api/me/password", dto.ChangePasswordRequest{CurrentPassword: "senha-forte-1", NewPassword: "nova-senha-1"})
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = anon.do(http.MethodPost, "/api/auth/forgot-password", dto.ForgotPasswordRequest{Email: "ninguem@example.com"})
	assert.Equal(t, http.StatusAccepted, resp.StatusCode, "email desconhecido responde igual")
	resp.Body.Close()

	resp = anon.do(http.MethodPost, "/api/auth/reset-password", dto.ResetPasswordRequest{Token: "x.y.z", NewPassword: "nova-senha-2"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestRouter_TransactionsAndDashboard(t *testing.T) {
	app := newAPI(t)
	c := login(t, app, "ana@example.com")

	resp := c.do(http.MethodPost, "/api/transactions/batch", map[string]any{
		"transactions": []map[string]any{
			{"date": "2024-02-10", "description": "Venda fevereiro", "amount": 1000, "category_name": "Vendas", "status": "pago"},
			{"date": "2024-03-05", "description": "Venda março", "amount": "1500.00", "category_name": "Vendas", "status": "pago"},
			{"date": "2024-03-08", "description": "Aluguel", "amount": 500, "category_name": "Aluguel", "status": "pago"},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, 3, decode[dto.BatchInsertResponse](t, resp).Inserted)

	page := decode[dto.TransactionListResponse](t, c.do(http.MethodGet, "/api/transactions?page=1", nil))
	require.Len(t, page.Items, 3)
	assert.Equal(t, "Aluguel", page.Items[0].Description)
	assert.False(t, page.Page.HasMore)

	year := decode[[]dto.TransactionResponse](t, c.do(http.MethodGet, "/api/transactions/year/2024", nil))
	assert.Len(t, year, 3)

	resp = c.do(http.MethodGet, "/api/transactions/year/abc", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	id := page.Items[0].ID
	edited := decode[dto.TransactionResponse](t, c.do(http.MethodPut, "/api/transactions/"+itoa(id), map[string]any{
		"date": "2024-03-08", "description": "Aluguel sala", "category_id": 3, "amount": 550, "status": "pago",
	}))
	assert.Equal(t, "Aluguel sala", edited.Description)

	sum := decode[dto.DashboardSummaryDTO](t, c.do(http.MethodGet, "/api/dashboard/summary", nil))
	assert.Equal(t, 2024, sum.Year)
	assert.Equal(t, "Março 2024", sum.DateLabel)
	require.Len(t, sum.Monthly, 12)
	assert.Equal(t, "1500", sum.Metrics.Receita.String())
	assert.Equal(t, "550", sum.Metrics.Despesa.String())
	assert.Equal(t, "50", sum.Metrics.ReceitaGrowth.String())
	require.Len(t, sum.RevenueDistribution, 1)
	assert.Equal(t, "Vendas", sum.RevenueDistribution[0].Name)

	resp = c.do(http.MethodGet, "/api/dashboard/report.pdf?year=2024", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "relatorio-2024.pdf")
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))

	other := login(t, app, "bia@example.com")
	resp = other.do(http.MethodGet, "/api/transactions/"+itoa(id), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "lançamento de outro usuário")
	resp.Body.Close()

	resp = c.do(http.MethodDelete, "/api/transactions/"+itoa(id), nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = c.do(http.MethodDelete, "/api/transactions/0", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestRouter_Import(t *testing.T) {
	app := newAPI(t)
	c := login(t, app, "ana@example.com")

	sheet := "description;amount;date;category_name;status\n" +
		"Consultoria;R$ 800,00;15/03/2024;Serviços;recebido\n" +
		"Combustível;120,50;16/03/2024;Transporte;pago\n"

	resp := c.upload("/api/transactions/import?preview=true", "marco.csv", sheet)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	preview := decode[dto.ImportPreviewResponse](t, resp)
	assert.Equal(t, 2, preview.Count)
	page := decode[dto.TransactionListResponse](t, c.do(http.MethodGet, "/api/transactions", nil))
	assert.Empty(t, page.Items, "preview não grava")

	resp = c.upload("/api/transactions/import", "marco.csv", sheet)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, 2, decode[dto.ImportResultResponse](t, resp).Inserted)

	resp = c.upload("/api/transactions/import", "ruim.csv", "description,amount\nx,1\n")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	er := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "MISSING_COLUMNS", er.Code)
	assert.Contains(t, er.Message, "category_name")

	resp = c.upload("/api/transactions/import", "notas.txt", "x")
	assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)
	resp.Body.Close()

	resp = c.upload("/api/transactions/import", "grande.csv", strings.Repeat("a", 2048))
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
	resp.Body.Close()
}

func TestRouter_Categories(t *testing.T) {
	app := newAPI(t)
	c := login(t, app, "ana@example.com")

	list := decode[[]dto.CategoryResponse](t, c.do(http.MethodGet, "/api/categories", nil))
	assert.Len(t, list, 6)

	resp := c.do(http.MethodPost, "/api/categories", dto.CreateCategoryRequest{Name: "Assinaturas", Type: "despesa"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.CategoryResponse](t, resp)
	assert.Equal(t, "#ccc", created.Color)

	paged := decode[dto.CategoryListResponse](t, c.do(http.MethodGet, "/api/categories?page=1", nil))
	assert.Len(t, paged.Items, 7)

	resp = c.do(http.MethodPut, "/api/categories/1", map[string]any{"name": "Minhas vendas"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = c.do(http.MethodPost, "/api/transactions/batch", map[string]any{
		"transactions": []map[string]any{
			{"date": "2024-03-01", "description": "Streaming", "amount": 40, "category_id": created.ID, "status": "pago"},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = c.do(http.MethodDelete, "/api/categories/"+itoa(created.ID), nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "categoria em uso")
	resp.Body.Close()

	resp = c.do(http.MethodPost, "/api/categories", dto.CreateCategoryRequest{Name: "X", Type: "ativo"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = c.do(http.MethodGet, "/api/categories/999", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }
