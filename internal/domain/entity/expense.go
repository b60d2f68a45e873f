package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense gasto operativo (arriendo, servicios, nómina...).
type Expense struct {
	ID          string
	CompanyID   string
	Code        string // EXP-0001
	Category    string
	Description string
	Amount      decimal.Decimal
	Date        time.Time
	CreatedBy   string
	CreatedAt   time.Time
}
