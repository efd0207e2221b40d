// Package ports holds application-level ports shared by multiple use cases.
package ports

import (
	"context"

	"github.com/tijara-app/tijara-api/internal/domain/repository"
)

// TxRepos are the repositories bound to one database transaction. The posting
// engine writes inventory, ledger and document rows through the same handle so
// the whole document commits or rolls back as a unit.
type TxRepos struct {
	Accounts     repository.AccountRepository
	Products     repository.ProductRepository
	Inventory    repository.InventoryRepository
	InventoryTxs repository.InventoryTransactionRepository
	Invoices     repository.InvoiceRepository
	Transactions repository.TransactionRepository
}

// TxRunner runs fn inside a database transaction, passing repositories bound
// to that transaction. Commit on nil, rollback on error.
type TxRunner interface {
	Run(ctx context.Context, fn func(r TxRepos) error) error
}
