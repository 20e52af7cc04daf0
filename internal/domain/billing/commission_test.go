package billing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/schoolkart/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCommission(t *testing.T) {
	invoiceDate := time.Date(2025, time.August, 14, 10, 0, 0, 0, time.UTC)

	t.Run("computes amount and period", func(t *testing.T) {
		c, err := NewCommission(uuid.New(), uuid.New(), uuid.New(), d("1000.00"), d("7.5"), invoiceDate)
		require.NoError(t, err)
		assert.True(t, d("75.00").Equal(c.Amount))
		assert.Equal(t, 8, c.Month)
		assert.Equal(t, 2025, c.Year)
		assert.Equal(t, CommissionPending, c.Status)
		assert.Nil(t, c.SettlementDate)
	})

	t.Run("rounds to paise", func(t *testing.T) {
		c, err := NewCommission(uuid.New(), uuid.New(), uuid.New(), d("333.33"), d("10"), invoiceDate)
		require.NoError(t, err)
		assert.True(t, d("33.33").Equal(c.Amount))
	})

	t.Run("rejects rate above 100", func(t *testing.T) {
		_, err := NewCommission(uuid.New(), uuid.New(), uuid.New(), d("100"), d("120"), invoiceDate)
		assert.Error(t, err)
	})

	t.Run("rejects missing references", func(t *testing.T) {
		_, err := NewCommission(uuid.New(), uuid.Nil, uuid.New(), d("100"), d("5"), invoiceDate)
		assert.Error(t, err)
	})
}

func TestCommissionSettle(t *testing.T) {
	newPending := func(t *testing.T) *Commission {
		c, err := NewCommission(uuid.New(), uuid.New(), uuid.New(), d("500.00"), d("5"), time.Now())
		require.NoError(t, err)
		return c
	}

	t.Run("records reference and date", func(t *testing.T) {
		c := newPending(t)
		require.NoError(t, c.Settle("NEFT-20260815-0042", time.Time{}, "paid via bank"))
		assert.Equal(t, CommissionSettled, c.Status)
		require.NotNil(t, c.SettlementDate)
		assert.Equal(t, "NEFT-20260815-0042", c.PaymentReference)
		assert.Equal(t, "paid via bank", c.Notes)
	})

	t.Run("keeps an explicit date", func(t *testing.T) {
		c := newPending(t)
		settledOn := time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)
		require.NoError(t, c.Settle("UPI-88213345", settledOn, ""))
		require.NotNil(t, c.SettlementDate)
		assert.True(t, settledOn.Equal(*c.SettlementDate))
	})

	t.Run("requires a payment reference", func(t *testing.T) {
		c := newPending(t)
		err := c.Settle("", time.Time{}, "")
		require.Error(t, err)
		assert.Equal(t, CommissionPending, c.Status)
	})

	t.Run("settling twice fails", func(t *testing.T) {
		c := newPending(t)
		require.NoError(t, c.Settle("NEFT-20260801-0001", time.Time{}, ""))
		err := c.Settle("NEFT-20260801-0002", time.Time{}, "")
		require.Error(t, err)
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "ALREADY_SETTLED", derr.Code)
	})
}

func TestCommissionRebase(t *testing.T) {
	t.Run("keeps snapshotted rate", func(t *testing.T) {
		c, err := NewCommission(uuid.New(), uuid.New(), uuid.New(), d("1000.00"), d("5"), time.Now())
		require.NoError(t, err)
		require.NoError(t, c.Rebase(d("2000.00")))
		assert.True(t, d("100.00").Equal(c.Amount))
		assert.True(t, d("5").Equal(c.Rate))
	})

	t.Run("settled commission is immutable", func(t *testing.T) {
		c, err := NewCommission(uuid.New(), uuid.New(), uuid.New(), d("1000.00"), d("5"), time.Now())
		require.NoError(t, err)
		require.NoError(t, c.Settle("NEFT-20260801-0009", time.Time{}, ""))
		assert.Error(t, c.Rebase(d("2000.00")))
	})
}
