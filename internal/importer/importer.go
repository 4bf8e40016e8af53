// Package importer reads bank statement CSV exports and turns rows into
// transaction records. Every free-text field goes through the resolver,
// so "BofA" and "Bank of America N.A." land on the same bank identity
// regardless of which export produced the file.
package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"bookkeeper/internal/entities"
	"bookkeeper/internal/entities/models"
	"bookkeeper/internal/platform/metrics"
	"bookkeeper/internal/registry"
	"bookkeeper/internal/resolver"
	"bookkeeper/internal/transactions"
	"bookkeeper/pkg/domain"
	dErrors "bookkeeper/pkg/domain-errors"
	"bookkeeper/pkg/requestcontext"
)

// Statement exports disagree on date formats; try the common ones in
// order.
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"2006-01-02T15:04:05Z07:00",
}

// Outcome labels for the import metrics.
const (
	outcomeImported   = "imported"
	outcomeUnresolved = "unresolved"
	outcomeInvalid    = "invalid"
)

// Importer converts statement CSV rows into stored transactions.
type Importer struct {
	set      *entities.Set
	resolver *resolver.Resolver
	store    transactions.Store
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// New creates an Importer. metrics may be nil in tests.
func New(set *entities.Set, res *resolver.Resolver, store transactions.Store, logger *slog.Logger, m *metrics.Metrics) *Importer {
	return &Importer{set: set, resolver: res, store: store, logger: logger, metrics: m}
}

// Result summarizes one import run.
type Result struct {
	Rows       int `json:"rows"`
	Imported   int `json:"imported"`
	Unresolved int `json:"unresolved"`
	Invalid    int `json:"invalid"`
}

// ImportCSV reads a statement export with a header row. Required columns:
// date, description, amount, bank, account. Optional: currency.
//
// Rows whose bank or account cannot be resolved are skipped and counted
// as unresolved; malformed rows are counted as invalid. A merchant that
// does not resolve leaves the transaction uncategorized rather than
// failing the row.
func (i *Importer) ImportCSV(ctx context.Context, r io.Reader) (Result, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return Result{}, dErrors.Wrap(err, dErrors.CodeBadRequest, "read csv header")
	}
	cols, err := mapColumns(header)
	if err != nil {
		return Result{}, err
	}

	var result Result
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Rows++
			i.countRow(&result, outcomeInvalid)
			i.logger.WarnContext(ctx, "malformed csv row", "error", err)
			continue
		}
		result.Rows++

		outcome := i.importRow(ctx, cols, record)
		i.countRow(&result, outcome)
	}
	return result, nil
}

func (i *Importer) countRow(result *Result, outcome string) {
	switch outcome {
	case outcomeImported:
		result.Imported++
	case outcomeUnresolved:
		result.Unresolved++
	default:
		result.Invalid++
	}
	if i.metrics != nil {
		i.metrics.RecordImportRow(outcome)
	}
}

type columns struct {
	date        int
	description int
	amount      int
	bank        int
	account     int
	currency    int
}

func mapColumns(header []string) (columns, error) {
	cols := columns{date: -1, description: -1, amount: -1, bank: -1, account: -1, currency: -1}
	for idx, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "date":
			cols.date = idx
		case "description":
			cols.description = idx
		case "amount":
			cols.amount = idx
		case "bank":
			cols.bank = idx
		case "account":
			cols.account = idx
		case "currency":
			cols.currency = idx
		}
	}
	if cols.date == -1 || cols.description == -1 || cols.amount == -1 || cols.bank == -1 || cols.account == -1 {
		return cols, dErrors.New(dErrors.CodeBadRequest, "csv header must include date, description, amount, bank, account")
	}
	return cols, nil
}

func (i *Importer) importRow(ctx context.Context, cols columns, record []string) string {
	field := func(idx int) string {
		if idx < 0 || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	date, err := parseDate(field(cols.date))
	if err != nil {
		i.logger.WarnContext(ctx, "unparseable date", "value", field(cols.date))
		return outcomeInvalid
	}
	amount, err := decimal.NewFromString(field(cols.amount))
	if err != nil {
		i.logger.WarnContext(ctx, "unparseable amount", "value", field(cols.amount))
		return outcomeInvalid
	}
	description := field(cols.description)
	if description == "" {
		return outcomeInvalid
	}

	bankRes, err := i.resolver.Resolve(ctx, models.KindBank, field(cols.bank))
	if err != nil {
		i.logger.WarnContext(ctx, "unresolved bank", "value", field(cols.bank))
		return outcomeUnresolved
	}
	bankID, err := domain.ParseBankID(bankRes.EntityID)
	if err != nil {
		return outcomeInvalid
	}

	account, err := i.lookupAccount(ctx, field(cols.account))
	if err != nil {
		i.logger.WarnContext(ctx, "unresolved account", "value", field(cols.account))
		return outcomeUnresolved
	}
	accountID, err := domain.ParseAccountID(account.EntityID)
	if err != nil {
		return outcomeInvalid
	}

	currency := field(cols.currency)
	if currency == "" {
		currency = account.Value.Currency
	}

	tx := transactions.Transaction{
		ID:             domain.NewTransactionID(),
		Date:           date,
		Description:    description,
		RawDescription: description,
		Amount:         amount,
		Currency:       currency,
		BankID:         bankID,
		AccountID:      accountID,
		ImportedAt:     requestcontext.Now(ctx),
	}

	i.attachMerchant(ctx, &tx, description)

	if err := i.store.Insert(ctx, tx); err != nil {
		i.logger.ErrorContext(ctx, "failed to store transaction", "error", err)
		return outcomeInvalid
	}
	return outcomeImported
}

// attachMerchant resolves the statement descriptor to a merchant and, when
// the merchant suggests a category, attaches that too. Both are optional.
func (i *Importer) attachMerchant(ctx context.Context, tx *transactions.Transaction, description string) {
	merchantRes, err := i.resolver.Resolve(ctx, models.KindMerchant, description)
	if err != nil {
		return
	}
	merchantID, err := domain.ParseMerchantID(merchantRes.EntityID)
	if err != nil {
		return
	}
	tx.MerchantID = &merchantID
	tx.Description = merchantRes.CanonicalName

	suggested, err := i.set.Merchants.SuggestCategory(ctx, description)
	if err != nil || suggested == "" {
		return
	}
	category, err := i.set.Categories.FindByName(ctx, suggested)
	if err != nil {
		return
	}
	categoryID, err := domain.ParseCategoryID(category.EntityID)
	if err != nil {
		return
	}
	tx.CategoryID = &categoryID
}

// lookupAccount accepts an account number (full or masked) or an account
// name.
func (i *Importer) lookupAccount(ctx context.Context, s string) (accountVersion, error) {
	if v, err := i.set.Accounts.FindByNumber(ctx, s); err == nil {
		return v, nil
	}
	if v, err := i.set.Accounts.FindByName(ctx, s); err == nil {
		return v, nil
	}
	v, _, err := i.set.Accounts.FindByString(ctx, s)
	if err != nil {
		return v, fmt.Errorf("lookup account %q: %w", s, err)
	}
	return v, nil
}

type accountVersion = registry.Version[models.Account]

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported date format %q", s)
}
