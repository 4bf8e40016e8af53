package transactions

import (
	"context"

	"bookkeeper/pkg/domain"
)

// Store persists transactions. Implementations return
// sentinel.ErrNotFound for unknown IDs.
type Store interface {
	Insert(ctx context.Context, tx Transaction) error
	GetByID(ctx context.Context, id domain.TransactionID) (Transaction, error)
	ListByAccount(ctx context.Context, accountID domain.AccountID) ([]Transaction, error)
	ListByMerchant(ctx context.Context, merchantID domain.MerchantID) ([]Transaction, error)
	ListRecent(ctx context.Context, limit int) ([]Transaction, error)
}
