package transactions

import (
	"context"
	"sort"
	"sync"

	"bookkeeper/pkg/domain"
	"bookkeeper/pkg/platform/sentinel"
)

// InMemoryStore keeps transactions in memory. Default for local use; the
// Postgres store takes over when a database is configured.
type InMemoryStore struct {
	mu  sync.RWMutex
	txs []Transaction
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Insert(_ context.Context, tx Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txs = append(s.txs, tx)
	return nil
}

func (s *InMemoryStore) GetByID(_ context.Context, id domain.TransactionID) (Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, tx := range s.txs {
		if tx.ID == id {
			return tx, nil
		}
	}
	return Transaction{}, sentinel.ErrNotFound
}

func (s *InMemoryStore) ListByAccount(_ context.Context, accountID domain.AccountID) ([]Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Transaction
	for _, tx := range s.txs {
		if tx.AccountID == accountID {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (s *InMemoryStore) ListByMerchant(_ context.Context, merchantID domain.MerchantID) ([]Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Transaction
	for _, tx := range s.txs {
		if tx.MerchantID != nil && *tx.MerchantID == merchantID {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (s *InMemoryStore) ListRecent(_ context.Context, limit int) ([]Transaction, error) {
	s.mu.RLock()
	out := append([]Transaction{}, s.txs...)
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
