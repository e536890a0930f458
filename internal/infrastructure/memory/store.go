// Package memory implementa os repositórios em memória. Usado em testes e no
// modo de demonstração, com as mesmas regras de escopo por usuário do Postgres.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/Financeiro-api/internal/application/transaction"
	"github.com/jhoicas/Financeiro-api/internal/domain"
	"github.com/jhoicas/Financeiro-api/internal/domain/entity"
	"github.com/jhoicas/Financeiro-api/internal/domain/repository"
)

// Store guarda usuários, categorias e lançamentos protegidos por um único mutex.
type Store struct {
	mu           sync.RWMutex
	users        map[string]entity.User
	categories   map[int64]entity.Category
	transactions map[int64]entity.Transaction
	nextCategory int64
	nextTx       int64
}

// DefaultCategories categorias compartilhadas semeadas pela migração inicial.
func DefaultCategories() []entity.Category {
	return []entity.Category{
		{ID: 1, Name: "Vendas", Color: "#4caf50", Type: entity.CategoryRevenue},
		{ID: 2, Name: "Serviços", Color: "#2196f3", Type: entity.CategoryRevenue},
		{ID: 3, Name: "Aluguel", Color: "#f44336", Type: entity.CategoryExpense},
		{ID: 4, Name: "Transporte", Color: "#ff9800", Type: entity.CategoryExpense},
		{ID: 5, Name: "Marketing", Color: "#9c27b0", Type: entity.CategoryExpense},
		{ID: 6, Name: "Outros", Color: entity.DefaultCategoryColor, Type: entity.CategoryExpense},
	}
}

// NewStore cria um Store com as categorias padrão.
func NewStore() *Store {
	s := &Store{
		users:        make(map[string]entity.User),
		categories:   make(map[int64]entity.Category),
		transactions: make(map[int64]entity.Transaction),
	}
	for _, c := range DefaultCategories() {
		s.categories[c.ID] = c
		if c.ID > s.nextCategory {
			s.nextCategory = c.ID
		}
	}
	return s
}

func (s *Store) Users() *UserRepo               { return &UserRepo{s: s} }
func (s *Store) Categories() *CategoryRepo      { return &CategoryRepo{s: s} }
func (s *Store) Transactions() *TransactionRepo { return &TransactionRepo{s: s} }
func (s *Store) TxRunner() *TxRunner            { return &TxRunner{s: s} }

// ─────────────────────────────────────────────────────────────────────────────
// Users
// ─────────────────────────────────────────────────────────────────────────────

var _ repository.UserRepository = (*UserRepo)(nil)

type UserRepo struct{ s *Store }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[u.ID]; !ok {
		return domain.ErrNotFound
	}
	for id, other := range r.s.users {
		if id != u.ID && strings.EqualFold(other.Email, u.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.s.users[u.ID] = *u
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Categories
// ─────────────────────────────────────────────────────────────────────────────

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

type CategoryRepo struct{ s *Store }

func visible(c entity.Category, userID string) bool {
	return c.UserID == "" || c.UserID == userID
}

func (r *CategoryRepo) List(_ context.Context, userID string) ([]entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]entity.Category, 0)
	for _, c := range r.s.categories {
		if visible(c, userID) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *CategoryRepo) ListPage(ctx context.Context, userID string, limit, offset int) ([]entity.Category, error) {
	all, _ := r.List(ctx, userID)
	return page(all, limit, offset), nil
}

func (r *CategoryRepo) GetByID(_ context.Context, userID string, id int64) (*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.categories[id]
	if !ok || !visible(c, userID) {
		return nil, nil
	}
	return &c, nil
}

func (r *CategoryRepo) Create(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextCategory++
	c.ID = r.s.nextCategory
	r.s.categories[c.ID] = *c
	return nil
}

func (r *CategoryRepo) Update(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.categories[c.ID]
	if !ok || current.UserID == "" || current.UserID != c.UserID {
		return domain.ErrNotFound
	}
	r.s.categories[c.ID] = *c
	return nil
}

func (r *CategoryRepo) Delete(_ context.Context, userID string, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.categories[id]
	if !ok || current.UserID == "" || current.UserID != userID {
		return domain.ErrNotFound
	}
	for _, t := range r.s.transactions {
		if t.CategoryID == id {
			return fmt.Errorf("%w: categoria em uso por lançamentos", domain.ErrConflict)
		}
	}
	delete(r.s.categories, id)
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Transactions
// ─────────────────────────────────────────────────────────────────────────────

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

type TransactionRepo struct{ s *Store }

// resolve anexa a categoria ao lançamento; chamador segura o lock.
func (r *TransactionRepo) resolve(t entity.Transaction) entity.Transaction {
	if c, ok := r.s.categories[t.CategoryID]; ok {
		t.Category = c
	} else {
		t.Category = entity.Uncategorized()
	}
	return t
}

func (r *TransactionRepo) sorted(userID string, keep func(entity.Transaction) bool) []entity.Transaction {
	out := make([]entity.Transaction, 0)
	for _, t := range r.s.transactions {
		if t.UserID == userID && keep(t) {
			out = append(out, r.resolve(t))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (r *TransactionRepo) ListByPeriod(_ context.Context, userID string, start, end time.Time) ([]entity.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.sorted(userID, func(t entity.Transaction) bool {
		return !t.Date.Before(start) && !t.Date.After(end)
	}), nil
}

func (r *TransactionRepo) ListPage(_ context.Context, userID string, limit, offset int) ([]entity.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := r.sorted(userID, func(entity.Transaction) bool { return true })
	return page(all, limit, offset), nil
}

func (r *TransactionRepo) GetByID(_ context.Context, userID string, id int64) (*entity.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.transactions[id]
	if !ok || t.UserID != userID {
		return nil, nil
	}
	t = r.resolve(t)
	return &t, nil
}

func (r *TransactionRepo) Create(_ context.Context, t *entity.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.categories[t.CategoryID]
	if !ok || !visible(c, t.UserID) {
		return fmt.Errorf("%w: categoria %d inexistente", domain.ErrInvalidInput, t.CategoryID)
	}
	r.s.nextTx++
	t.ID = r.s.nextTx
	t.Category = c
	r.s.transactions[t.ID] = *t
	return nil
}

func (r *TransactionRepo) Update(_ context.Context, t *entity.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.transactions[t.ID]
	if !ok || current.UserID != t.UserID {
		return domain.ErrNotFound
	}
	r.s.transactions[t.ID] = *t
	return nil
}

func (r *TransactionRepo) Delete(_ context.Context, userID string, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.transactions[id]
	if !ok || current.UserID != userID {
		return domain.ErrNotFound
	}
	delete(r.s.transactions, id)
	return nil
}

var _ transaction.TxRunner = (*TxRunner)(nil)

// TxRunner emula uma transação de BD: em caso de erro os lançamentos voltam ao estado anterior.
type TxRunner struct{ s *Store }

func (r *TxRunner) Run(_ context.Context, fn func(txRepo repository.TransactionRepository) error) error {
	r.s.mu.RLock()
	snapshot := make(map[int64]entity.Transaction, len(r.s.transactions))
	for id, t := range r.s.transactions {
		snapshot[id] = t
	}
	next := r.s.nextTx
	r.s.mu.RUnlock()

	if err := fn(r.s.Transactions()); err != nil {
		r.s.mu.Lock()
		r.s.transactions = snapshot
		r.s.nextTx = next
		r.s.mu.Unlock()
		return err
	}
	return nil
}

func page[T any](all []T, limit, offset int) []T {
	if offset >= len(all) {
		return []T{}
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}
