package billing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPurchase(t *testing.T) *Purchase {
	t.Helper()
	item, err := NewPurchaseItem(uuid.New(), "Notebook", 100, d("30.00"), d("18"))
	require.NoError(t, err)
	p, err := NewPurchase(uuid.New(), "PO25080001", uuid.New(), []PurchaseItem{item})
	require.NoError(t, err)
	return p
}

func TestNewPurchase(t *testing.T) {
	p := newTestPurchase(t)
	assert.True(t, d("3000.00").Equal(p.Subtotal))
	assert.True(t, d("540.00").Equal(p.GstAmount))
	assert.True(t, d("3540.00").Equal(p.TotalAmount))
	assert.Equal(t, PaymentPending, p.PaymentStatus)
	assert.Nil(t, p.PaymentDate)

	t.Run("requires supplier", func(t *testing.T) {
		item, _ := NewPurchaseItem(uuid.New(), "Notebook", 1, d("30.00"), d("18"))
		_, err := NewPurchase(uuid.New(), "PO25080002", uuid.Nil, []PurchaseItem{item})
		assert.Error(t, err)
	})

	t.Run("requires items", func(t *testing.T) {
		_, err := NewPurchase(uuid.New(), "PO25080003", uuid.New(), nil)
		assert.Error(t, err)
	})
}

func TestPurchaseRecordPayment(t *testing.T) {
	tests := []struct {
		name       string
		payments   []string
		wantStatus PaymentStatus
		wantPaid   string
	}{
		{
			name:       "partial payment",
			payments:   []string{"1000.00"},
			wantStatus: PaymentPartial,
			wantPaid:   "1000.00",
		},
		{
			name:       "full payment",
			payments:   []string{"3540.00"},
			wantStatus: PaymentPaid,
			wantPaid:   "3540.00",
		},
		{
			name:       "installments reach paid",
			payments:   []string{"2000.00", "1540.00"},
			wantStatus: PaymentPaid,
			wantPaid:   "3540.00",
		},
		{
			name:       "overpayment still paid",
			payments:   []string{"4000.00"},
			wantStatus: PaymentPaid,
			wantPaid:   "4000.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPurchase(t)
			for _, amt := range tt.payments {
				require.NoError(t, p.RecordPayment(d(amt)))
			}
			assert.Equal(t, tt.wantStatus, p.PaymentStatus)
			assert.True(t, d(tt.wantPaid).Equal(p.PaidAmount))
			assert.NotNil(t, p.PaymentDate)
		})
	}

	t.Run("rejects non-positive amount", func(t *testing.T) {
		p := newTestPurchase(t)
		assert.Error(t, p.RecordPayment(decimal.Zero))
		assert.Error(t, p.RecordPayment(d("-10")))
		assert.Nil(t, p.PaymentDate)
	})
}

func TestPurchaseReplaceItems(t *testing.T) {
	t.Run("recomputes totals", func(t *testing.T) {
		p := newTestPurchase(t)
		item, _ := NewPurchaseItem(uuid.New(), "Pencil", 10, d("5.00"), d("12"))
		require.NoError(t, p.ReplaceItems([]PurchaseItem{item}))
		assert.True(t, d("50.00").Equal(p.Subtotal))
		assert.True(t, d("56.00").Equal(p.TotalAmount))
	})

	t.Run("payment status follows the new total", func(t *testing.T) {
		p := newTestPurchase(t)
		require.NoError(t, p.RecordPayment(d("100.00")))
		item, _ := NewPurchaseItem(uuid.New(), "Pencil", 10, d("5.00"), d("12"))
		require.NoError(t, p.ReplaceItems([]PurchaseItem{item}))
		assert.Equal(t, PaymentPaid, p.PaymentStatus)
	})

	t.Run("rejects empty item list", func(t *testing.T) {
		p := newTestPurchase(t)
		assert.Error(t, p.ReplaceItems(nil))
	})
}
