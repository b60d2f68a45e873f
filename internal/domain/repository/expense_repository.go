package repository

import (
	"context"
	"time"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
)

// ExpenseFilter filtros del listado de gastos.
type ExpenseFilter struct {
	CompanyID string
	Category  string
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// ExpenseRepository define el puerto de persistencia para gastos.
type ExpenseRepository interface {
	Create(ctx context.Context, e *entity.Expense) error
	GetByID(ctx context.Context, id string) (*entity.Expense, error)
	List(ctx context.Context, filter ExpenseFilter) ([]*entity.Expense, int, error)
	Delete(ctx context.Context, id string) error
	LastCode(ctx context.Context, companyID string) (string, error)
}
