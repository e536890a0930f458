// Package transaction contém os casos de uso de lançamentos: listagens,
// edição, exclusão e inserção em lote (formulário ou importação de planilha).
package transaction

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Financeiro-api/internal/application/dto"
	"github.com/jhoicas/Financeiro-api/internal/domain"
	"github.com/jhoicas/Financeiro-api/internal/domain/entity"
	"github.com/jhoicas/Financeiro-api/internal/domain/repository"
)

// Config parâmetros do caso de uso.
type Config struct {
	DefaultCategoryID int64          // categoria usada quando o nome não corresponde a nenhuma
	Location          *time.Location // fuso do usuário para datas sem hora e limites de ano
}

// UseCase casos de uso de lançamentos. Toda operação é escopada ao usuário autenticado.
type UseCase struct {
	repo       repository.TransactionRepository
	categories repository.CategoryRepository
	txRunner   TxRunner
	cfg        Config
}

// NewUseCase constrói o caso de uso.
func NewUseCase(
	repo repository.TransactionRepository,
	categories repository.CategoryRepository,
	txRunner TxRunner,
	cfg Config,
) *UseCase {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &UseCase{repo: repo, categories: categories, txRunner: txRunner, cfg: cfg}
}

// ListByYear devolve os lançamentos de 1º de janeiro a 31 de dezembro de year.
func (uc *UseCase) ListByYear(ctx context.Context, userID string, year int) ([]dto.TransactionResponse, error) {
	if year < 1900 || year > 9999 {
		return nil, fmt.Errorf("%w: ano %d", domain.ErrInvalidInput, year)
	}
	start, end := YearBounds(year, uc.cfg.Location)
	list, err := uc.repo.ListByPeriod(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("transações do ano: %w", err)
	}
	return ToResponses(list), nil
}

// ListPage devolve a página solicitada (20 itens), do mais recente ao mais antigo.
func (uc *UseCase) ListPage(ctx context.Context, userID string, req dto.PageRequest) (*dto.TransactionListResponse, error) {
	req.Normalize()
	// Um item a mais indica se existe próxima página sem um COUNT(*).
	list, err := uc.repo.ListPage(ctx, userID, dto.DefaultPageSize+1, req.Offset())
	if err != nil {
		return nil, fmt.Errorf("listar transações: %w", err)
	}
	hasMore := len(list) > dto.DefaultPageSize
	if hasMore {
		list = list[:dto.DefaultPageSize]
	}
	return &dto.TransactionListResponse{
		Items: ToResponses(list),
		Page:  dto.PageResponse{Page: req.Page, Limit: dto.DefaultPageSize, HasMore: hasMore},
	}, nil
}

// GetByID devolve o lançamento ou domain.ErrNotFound.
func (uc *UseCase) GetByID(ctx context.Context, userID string, id int64) (*dto.TransactionResponse, error) {
	t, err := uc.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("obter transação: %w", err)
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	out := ToResponse(*t)
	return &out, nil
}

// Update substitui data, descrição, categoria, valor, status e forma de pagamento.
// O valor é gravado sempre como magnitude.
func (uc *UseCase) Update(ctx context.Context, userID string, id int64, in dto.EditTransactionRequest) (*dto.TransactionResponse, error) {
	date, err := ParseDate(in.Date, uc.cfg.Location)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if strings.TrimSpace(in.Description) == "" || strings.TrimSpace(in.Status) == "" {
		return nil, fmt.Errorf("%w: description e status são obrigatórios", domain.ErrInvalidInput)
	}
	if !entity.FitsAmountScale(in.Amount) {
		return nil, fmt.Errorf("%w: amount com mais de %d casas decimais", domain.ErrInvalidInput, entity.AmountDecimals)
	}

	current, err := uc.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("obter transação: %w", err)
	}
	if current == nil {
		return nil, domain.ErrNotFound
	}

	category, err := uc.categories.GetByID(ctx, userID, in.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("obter categoria: %w", err)
	}
	if category == nil {
		return nil, fmt.Errorf("%w: categoria %d inexistente", domain.ErrInvalidInput, in.CategoryID)
	}

	current.Date = date
	current.Description = strings.TrimSpace(in.Description)
	current.Amount = in.Amount.Abs()
	current.Status = entity.NormalizeStatus(in.Status)
	current.PaymentMethod = in.PaymentMethod
	current.CategoryID = category.ID
	current.Category = *category

	if err := uc.repo.Update(ctx, current); err != nil {
		return nil, err
	}
	out := ToResponse(*current)
	return &out, nil
}

// Delete remove o lançamento; domain.ErrNotFound se não pertencer ao usuário.
func (uc *UseCase) Delete(ctx context.Context, userID string, id int64) error {
	return uc.repo.Delete(ctx, userID, id)
}

// InsertBatch grava várias linhas numa única transação de BD e devolve quantas foram gravadas.
//
// Lote vazio não faz nada. A categoria de cada linha é, nesta ordem: category_id explícito
// visível ao usuário, a primeira categoria com nome idêntico a category_name, ou a categoria
// padrão configurada. Datas vão para UTC e valores viram magnitude.
func (uc *UseCase) InsertBatch(ctx context.Context, userID string, rows []dto.InsertTransactionRequest) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	categories, err := uc.categories.List(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("listar categorias: %w", err)
	}
	byID := make(map[int64]struct{}, len(categories))
	byName := make(map[string]int64, len(categories))
	for _, c := range categories {
		byID[c.ID] = struct{}{}
		if _, seen := byName[c.Name]; !seen {
			byName[c.Name] = c.ID
		}
	}

	now := time.Now()
	items := make([]entity.Transaction, 0, len(rows))
	for i, r := range rows {
		date, err := ParseDate(r.Date, uc.cfg.Location)
		if err != nil {
			return 0, fmt.Errorf("%w: linha %d: %v", domain.ErrInvalidInput, i+1, err)
		}
		if strings.TrimSpace(r.Description) == "" || strings.TrimSpace(r.Status) == "" {
			return 0, fmt.Errorf("%w: linha %d: description e status são obrigatórios", domain.ErrInvalidInput, i+1)
		}
		if !entity.FitsAmountScale(r.Amount) {
			return 0, fmt.Errorf("%w: linha %d: amount com mais de %d casas decimais", domain.ErrInvalidInput, i+1, entity.AmountDecimals)
		}

		categoryID := uc.cfg.DefaultCategoryID
		if id, ok := byName[r.CategoryName]; ok {
			categoryID = id
		}
		if r.CategoryID != nil {
			if _, ok := byID[*r.CategoryID]; ok {
				categoryID = *r.CategoryID
			}
		}

		items = append(items, entity.Transaction{
			UserID:      userID,
			Date:        date,
			Description: strings.TrimSpace(r.Description),
			Amount:      r.Amount.Abs(),
			Status:      entity.NormalizeStatus(r.Status),
			CategoryID:  categoryID,
			CreatedAt:   now,
		})
	}

	err = uc.txRunner.Run(ctx, func(txRepo repository.TransactionRepository) error {
		for i := range items {
			if err := txRepo.Create(ctx, &items[i]); err != nil {
				return fmt.Errorf("linha %d: %w", i+1, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("inserir lote: %w", err)
	}
	return len(items), nil
}

// YearBounds primeiro e último instante de year em loc.
func YearBounds(year int, loc *time.Location) (start, end time.Time) {
	start = time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	end = start.AddDate(1, 0, 0).Add(-time.Nanosecond)
	return start, end
}
