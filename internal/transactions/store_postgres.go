package transactions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"bookkeeper/pkg/domain"
	"bookkeeper/pkg/platform/sentinel"
)

// PostgresStore persists transactions in the transactions table.
//
// Schema:
//
//	CREATE TABLE transactions (
//	    id              UUID PRIMARY KEY,
//	    date            TIMESTAMPTZ NOT NULL,
//	    description     TEXT NOT NULL,
//	    raw_description TEXT NOT NULL,
//	    amount          NUMERIC(18,4) NOT NULL,
//	    currency        TEXT NOT NULL,
//	    bank_id         UUID NOT NULL,
//	    account_id      UUID NOT NULL,
//	    merchant_id     UUID,
//	    category_id     UUID,
//	    imported_at     TIMESTAMPTZ NOT NULL
//	);
//	CREATE INDEX transactions_account_idx ON transactions (account_id, date);
//	CREATE INDEX transactions_merchant_idx ON transactions (merchant_id, date);
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Insert(ctx context.Context, tx Transaction) error {
	query := `
		INSERT INTO transactions (
			id, date, description, raw_description, amount, currency,
			bank_id, account_id, merchant_id, category_id, imported_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	var merchantID, categoryID any
	if tx.MerchantID != nil {
		merchantID = uuid.UUID(*tx.MerchantID)
	}
	if tx.CategoryID != nil {
		categoryID = uuid.UUID(*tx.CategoryID)
	}

	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(tx.ID),
		tx.Date,
		tx.Description,
		tx.RawDescription,
		tx.Amount.String(),
		tx.Currency,
		uuid.UUID(tx.BankID),
		uuid.UUID(tx.AccountID),
		merchantID,
		categoryID,
		tx.ImportedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetByID(ctx context.Context, id domain.TransactionID) (Transaction, error) {
	query := selectColumns + ` WHERE id = $1`
	row := s.db.QueryRowContext(ctx, query, uuid.UUID(id))
	tx, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Transaction{}, sentinel.ErrNotFound
	}
	return tx, err
}

func (s *PostgresStore) ListByAccount(ctx context.Context, accountID domain.AccountID) ([]Transaction, error) {
	query := selectColumns + ` WHERE account_id = $1 ORDER BY date ASC`
	return s.list(ctx, query, uuid.UUID(accountID))
}

func (s *PostgresStore) ListByMerchant(ctx context.Context, merchantID domain.MerchantID) ([]Transaction, error) {
	query := selectColumns + ` WHERE merchant_id = $1 ORDER BY date ASC`
	return s.list(ctx, query, uuid.UUID(merchantID))
}

func (s *PostgresStore) ListRecent(ctx context.Context, limit int) ([]Transaction, error) {
	query := selectColumns + ` ORDER BY date DESC LIMIT $1`
	return s.list(ctx, query, limit)
}

const selectColumns = `
	SELECT id, date, description, raw_description, amount, currency,
	       bank_id, account_id, merchant_id, category_id, imported_at
	FROM transactions
`

func (s *PostgresStore) list(ctx context.Context, query string, args ...any) ([]Transaction, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var out []Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (Transaction, error) {
	var (
		tx         Transaction
		id         uuid.UUID
		bankID     uuid.UUID
		accountID  uuid.UUID
		merchantID uuid.NullUUID
		categoryID uuid.NullUUID
		amount     string
	)
	err := row.Scan(&id, &tx.Date, &tx.Description, &tx.RawDescription, &amount, &tx.Currency,
		&bankID, &accountID, &merchantID, &categoryID, &tx.ImportedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Transaction{}, err
		}
		return Transaction{}, fmt.Errorf("scan transaction: %w", err)
	}

	tx.ID = domain.TransactionID(id)
	tx.BankID = domain.BankID(bankID)
	tx.AccountID = domain.AccountID(accountID)
	if merchantID.Valid {
		m := domain.MerchantID(merchantID.UUID)
		tx.MerchantID = &m
	}
	if categoryID.Valid {
		c := domain.CategoryID(categoryID.UUID)
		tx.CategoryID = &c
	}
	tx.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return Transaction{}, fmt.Errorf("parse transaction amount: %w", err)
	}
	return tx, nil
}
