// Package domain defines typed entity identifiers.
//
// Identity is the stable key for an entity across all of its versions.
// Other subsystems (transactions, import) store these IDs as opaque
// foreign keys; the type wrappers prevent cross-kind assignment at
// compile time.
package domain

import (
	"github.com/google/uuid"

	dErrors "bookkeeper/pkg/domain-errors"
)

type (
	// BankID identifies a bank entity across all of its versions.
	BankID uuid.UUID

	// MerchantID identifies a merchant entity across all of its versions.
	MerchantID uuid.UUID

	// CategoryID identifies a category entity across all of its versions.
	CategoryID uuid.UUID

	// AccountID identifies an account entity across all of its versions.
	AccountID uuid.UUID

	// TransactionID identifies an imported transaction record.
	TransactionID uuid.UUID
)

// NewBankID allocates a fresh bank identity.
func NewBankID() BankID { return BankID(uuid.New()) }

// NewMerchantID allocates a fresh merchant identity.
func NewMerchantID() MerchantID { return MerchantID(uuid.New()) }

// NewCategoryID allocates a fresh category identity.
func NewCategoryID() CategoryID { return CategoryID(uuid.New()) }

// NewAccountID allocates a fresh account identity.
func NewAccountID() AccountID { return AccountID(uuid.New()) }

// NewTransactionID allocates a fresh transaction identity.
func NewTransactionID() TransactionID { return TransactionID(uuid.New()) }

func (id BankID) String() string        { return uuid.UUID(id).String() }
func (id MerchantID) String() string    { return uuid.UUID(id).String() }
func (id CategoryID) String() string    { return uuid.UUID(id).String() }
func (id AccountID) String() string     { return uuid.UUID(id).String() }
func (id TransactionID) String() string { return uuid.UUID(id).String() }

func (id BankID) IsNil() bool        { return uuid.UUID(id) == uuid.Nil }
func (id MerchantID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id CategoryID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id AccountID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id TransactionID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// Text marshaling delegates to uuid.UUID so IDs serialize as canonical
// UUID strings. Defined types do not inherit the underlying type's
// methods; without these, encoding/json renders the raw byte array.
func (id BankID) MarshalText() ([]byte, error)        { return uuid.UUID(id).MarshalText() }
func (id MerchantID) MarshalText() ([]byte, error)    { return uuid.UUID(id).MarshalText() }
func (id CategoryID) MarshalText() ([]byte, error)    { return uuid.UUID(id).MarshalText() }
func (id AccountID) MarshalText() ([]byte, error)     { return uuid.UUID(id).MarshalText() }
func (id TransactionID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

func (id *BankID) UnmarshalText(text []byte) error        { return (*uuid.UUID)(id).UnmarshalText(text) }
func (id *MerchantID) UnmarshalText(text []byte) error    { return (*uuid.UUID)(id).UnmarshalText(text) }
func (id *CategoryID) UnmarshalText(text []byte) error    { return (*uuid.UUID)(id).UnmarshalText(text) }
func (id *AccountID) UnmarshalText(text []byte) error     { return (*uuid.UUID)(id).UnmarshalText(text) }
func (id *TransactionID) UnmarshalText(text []byte) error { return (*uuid.UUID)(id).UnmarshalText(text) }

// parseUUID enforces the shared invariant: IDs must be valid, non-nil UUIDs.
func parseUUID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id cannot be empty")
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id is not a valid UUID")
	}
	if parsed == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id cannot be the nil UUID")
	}
	return parsed, nil
}

// ParseBankID parses and validates a bank ID from its string form.
func ParseBankID(s string) (BankID, error) {
	parsed, err := parseUUID(s)
	if err != nil {
		return BankID{}, err
	}
	return BankID(parsed), nil
}

// ParseMerchantID parses and validates a merchant ID from its string form.
func ParseMerchantID(s string) (MerchantID, error) {
	parsed, err := parseUUID(s)
	if err != nil {
		return MerchantID{}, err
	}
	return MerchantID(parsed), nil
}

// ParseCategoryID parses and validates a category ID from its string form.
func ParseCategoryID(s string) (CategoryID, error) {
	parsed, err := parseUUID(s)
	if err != nil {
		return CategoryID{}, err
	}
	return CategoryID(parsed), nil
}

// ParseAccountID parses and validates an account ID from its string form.
func ParseAccountID(s string) (AccountID, error) {
	parsed, err := parseUUID(s)
	if err != nil {
		return AccountID{}, err
	}
	return AccountID(parsed), nil
}

// ParseTransactionID parses and validates a transaction ID from its string form.
func ParseTransactionID(s string) (TransactionID, error) {
	parsed, err := parseUUID(s)
	if err != nil {
		return TransactionID{}, err
	}
	return TransactionID(parsed), nil
}
