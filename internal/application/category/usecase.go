// Package category contém os casos de uso de categorias de lançamento.
package category

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

const maxNameLen = 100

// UseCase CRUD de categorias. As categorias padrão são visíveis a todos e somente leitura.
type UseCase struct {
	repo repository.CategoryRepository
}

// NewUseCase constrói o caso de uso.
func NewUseCase(repo repository.CategoryRepository) *UseCase {
	return &UseCase{repo: repo}
}

// List devolve todas as categorias visíveis ao usuário.
func (uc *UseCase) List(ctx context.Context, userID string) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listar categorias: %w", err)
	}
	return toResponses(list), nil
}

// ListPage devolve uma página de categorias visíveis ao usuário.
func (uc *UseCase) ListPage(ctx context.Context, userID string, req dto.PageRequest) (*dto.CategoryListResponse, error) {
	req.Normalize()
	list, err := uc.repo.ListPage(ctx, userID, dto.DefaultPageSize+1, req.Offset())
	if err != nil {
		return nil, fmt.Errorf("listar categorias: %w", err)
	}
	hasMore := len(list) > dto.DefaultPageSize
	if hasMore {
		list = list[:dto.DefaultPageSize]
	}
	return &dto.CategoryListResponse{
		Items: toResponses(list),
		Page:  dto.PageResponse{Page: req.Page, Limit: dto.DefaultPageSize, HasMore: hasMore},
	}, nil
}

// GetByID devolve a categoria ou domain.ErrNotFound.
func (uc *UseCase) GetByID(ctx context.Context, userID string, id int64) (*dto.CategoryResponse, error) {
	c, err := uc.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("obter categoria: %w", err)
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	out := toResponse(*c)
	return &out, nil
}

// Create cria uma categoria própria do usuário. Cor vazia recebe a cor padrão.
func (uc *UseCase) Create(ctx context.Context, userID string, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	name, err := validName(in.Name)
	if err != nil {
		return nil, err
	}
	typ := entity.CategoryType(strings.ToLower(strings.TrimSpace(in.Type)))
	if !typ.Valid() {
		return nil, fmt.Errorf("%w: type deve ser receita ou despesa", domain.ErrInvalidInput)
	}
	c := &entity.Category{
		UserID:    userID,
		Name:      name,
		Color:     colorOrDefault(in.Color),
		Icon:      strings.TrimSpace(in.Icon),
		Type:      typ,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("criar categoria: %w", err)
	}
	out := toResponse(*c)
	return &out, nil
}

// Update altera os campos informados. Categorias padrão devolvem domain.ErrForbidden.
func (uc *UseCase) Update(ctx context.Context, userID string, id int64, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	c, err := uc.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name, err := validName(*in.Name)
		if err != nil {
			return nil, err
		}
		c.Name = name
	}
	if in.Type != nil {
		typ := entity.CategoryType(strings.ToLower(strings.TrimSpace(*in.Type)))
		if !typ.Valid() {
			return nil, fmt.Errorf("%w: type deve ser receita ou despesa", domain.ErrInvalidInput)
		}
		c.Type = typ
	}
	if in.Color != nil {
		c.Color = colorOrDefault(*in.Color)
	}
	if in.Icon != nil {
		c.Icon = strings.TrimSpace(*in.Icon)
	}
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	out := toResponse(*c)
	return &out, nil
}

// Delete remove uma categoria própria. Categorias ainda usadas por lançamentos
// devolvem domain.ErrConflict (vindo do repositório).
func (uc *UseCase) Delete(ctx context.Context, userID string, id int64) error {
	if _, err := uc.owned(ctx, userID, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, userID, id)
}

func (uc *UseCase) owned(ctx context.Context, userID string, id int64) (*entity.Category, error) {
	c, err := uc.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("obter categoria: %w", err)
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if c.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return c, nil
}

func validName(s string) (string, error) {
	name := strings.TrimSpace(s)
	if name == "" || len([]rune(name)) > maxNameLen {
		return "", fmt.Errorf("%w: name obrigatório (até %d caracteres)", domain.ErrInvalidInput, maxNameLen)
	}
	return name, nil
}

func colorOrDefault(s string) string {
	if c := strings.TrimSpace(s); c != "" {
		return c
	}
	return entity.DefaultCategoryColor
}

func toResponse(c entity.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		Color:     c.Color,
		Icon:      c.Icon,
		Type:      string(c.Type),
		Shared:    c.UserID == "",
		CreatedAt: c.CreatedAt,
	}
}

func toResponses(list []entity.Category) []dto.CategoryResponse {
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toResponse(c))
	}
	return out
}
