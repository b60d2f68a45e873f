package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/application/numbering"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/sequence"
)

// ExpenseUseCase registro de gastos operativos (EXP-nnnn).
type ExpenseUseCase struct {
	txRunner repository.TxRunner
	repo     repository.ExpenseRepository
}

// NewExpenseUseCase construye el caso de uso.
func NewExpenseUseCase(txRunner repository.TxRunner, repo repository.ExpenseRepository) *ExpenseUseCase {
	return &ExpenseUseCase{txRunner: txRunner, repo: repo}
}

// Create registra un gasto con código consecutivo.
func (uc *ExpenseUseCase) Create(ctx context.Context, companyID, userID string, in dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: el monto del gasto debe ser mayor que cero", domain.ErrInvalidInput)
	}
	now := time.Now()
	date := now
	if in.Date != nil {
		date = *in.Date
	}
	var expense *entity.Expense
	err := uc.txRunner.Run(ctx, func(r repository.TxRepos) error {
		code, err := numbering.Next(ctx, r.Sequences, companyID, sequence.PrefixExpense, func(ctx context.Context) (string, error) {
			return r.Expenses.LastCode(ctx, companyID)
		})
		if err != nil {
			return err
		}
		expense = &entity.Expense{
			ID:          uuid.New().String(),
			CompanyID:   companyID,
			Code:        code,
			Category:    strings.TrimSpace(in.Category),
			Description: in.Description,
			Amount:      in.Amount,
			Date:        date,
			CreatedBy:   userID,
			CreatedAt:   now,
		}
		return r.Expenses.Create(ctx, expense)
	})
	if err != nil {
		return nil, err
	}
	return toExpenseResponse(expense), nil
}

// List lista gastos por rango de fechas y categoría.
func (uc *ExpenseUseCase) List(ctx context.Context, companyID string, in dto.ExpenseListRequest) (*dto.ExpenseListResponse, error) {
	in.DefaultPage()
	list, total, err := uc.repo.List(ctx, repository.ExpenseFilter{
		CompanyID: companyID,
		Category:  in.Category,
		From:      in.From,
		To:        in.To,
		Limit:     in.Limit,
		Offset:    in.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ExpenseResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *toExpenseResponse(e))
	}
	return &dto.ExpenseListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// Delete elimina un gasto de la empresa.
func (uc *ExpenseUseCase) Delete(ctx context.Context, companyID, id string) error {
	e, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if e == nil || e.CompanyID != companyID {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

func toExpenseResponse(e *entity.Expense) *dto.ExpenseResponse {
	return &dto.ExpenseResponse{
		ID:          e.ID,
		Code:        e.Code,
		Category:    e.Category,
		Description: e.Description,
		Amount:      e.Amount,
		Date:        e.Date,
		CreatedBy:   e.CreatedBy,
		CreatedAt:   e.CreatedAt,
	}
}
