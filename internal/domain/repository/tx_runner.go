package repository

import "context"

// TxRepos repositorios ligados a una misma transacción.
type TxRepos struct {
	Items     ItemRepository
	Customers CustomerRepository
	Suppliers SupplierRepository
	Sales     SaleRepository
	Purchases PurchaseRepository
	Payments  PaymentRepository
	Expenses  ExpenseRepository
	Movements StockMovementRepository
	Sequences SequenceRepository
}

// TxRunner ejecuta fn dentro de una transacción: commit si fn devuelve nil, rollback en otro caso.
// Ningún cambio hecho con los repositorios de TxRepos sobrevive a un error.
type TxRunner interface {
	Run(ctx context.Context, fn func(r TxRepos) error) error
}
