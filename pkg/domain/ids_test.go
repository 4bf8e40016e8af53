package domain

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "bookkeeper/pkg/domain-errors"
)

// TestParseUUID_Invariants validates the parsing invariant:
// "IDs must be valid, non-empty, non-nil UUIDs"
func TestParseUUID_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseBankID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParseBankID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParseBankID(uuid.Nil.String())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("accepts valid UUID", func(t *testing.T) {
		validUUID := uuid.New()
		id, err := ParseBankID(validUUID.String())
		require.NoError(t, err)
		assert.Equal(t, BankID(validUUID), id)
	})
}

// TestTypeDistinction verifies the compiler enforces type safety.
// This is a compile-time check - if this compiles, the invariant holds.
func TestTypeDistinction(t *testing.T) {
	bankID := BankID(uuid.New())
	merchantID := MerchantID(uuid.New())

	// These would fail to compile if types were interchangeable:
	// var _ BankID = merchantID   // compile error
	// var _ MerchantID = bankID   // compile error

	// Verify they're distinct at runtime too
	assert.NotEqual(t, uuid.UUID(bankID), uuid.UUID(merchantID))
}

// TestJSONRendersCanonicalString pins the wire form: IDs embedded in
// payloads must marshal as quoted UUID strings, not as the underlying
// byte array, and must unmarshal back from that form.
func TestJSONRendersCanonicalString(t *testing.T) {
	type payload struct {
		BankID   BankID      `json:"bank_id"`
		ParentID *CategoryID `json:"parent_id,omitempty"`
	}

	bankID := NewBankID()
	parentID := NewCategoryID()

	raw, err := json.Marshal(payload{BankID: bankID, ParentID: &parentID})
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"bank_id":"`+bankID.String()+`","parent_id":"`+parentID.String()+`"}`,
		string(raw))

	var decoded payload
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, bankID, decoded.BankID)
	require.NotNil(t, decoded.ParentID)
	assert.Equal(t, parentID, *decoded.ParentID)
}

func TestStringRoundTrip(t *testing.T) {
	id := NewCategoryID()
	parsed, err := ParseCategoryID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
	assert.False(t, id.IsNil())
	assert.True(t, CategoryID{}.IsNil())
}
