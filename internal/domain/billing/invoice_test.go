package billing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

func TestNewInvoiceItem(t *testing.T) {
	tests := []struct {
		name      string
		quantity  int
		unitPrice string
		gstRate   string
		wantSub   string
		wantGst   string
		wantTotal string
		wantErr   bool
	}{
		{
			name:      "standard gst line",
			quantity:  3,
			unitPrice: "100.00",
			gstRate:   "18",
			wantSub:   "300.00",
			wantGst:   "54.00",
			wantTotal: "354.00",
		},
		{
			name:      "rounds gst to paise",
			quantity:  1,
			unitPrice: "99.99",
			gstRate:   "12",
			wantSub:   "99.99",
			wantGst:   "12.00",
			wantTotal: "111.99",
		},
		{
			name:      "zero rated item",
			quantity:  5,
			unitPrice: "40.00",
			gstRate:   "0",
			wantSub:   "200.00",
			wantGst:   "0.00",
			wantTotal: "200.00",
		},
		{
			name:      "zero quantity rejected",
			quantity:  0,
			unitPrice: "10.00",
			gstRate:   "18",
			wantErr:   true,
		},
		{
			name:      "negative quantity rejected",
			quantity:  -2,
			unitPrice: "10.00",
			gstRate:   "18",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := NewInvoiceItem(uuid.New(), "Notebook", tt.quantity, d(tt.unitPrice), d(tt.gstRate))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, d(tt.wantSub).Equal(item.Subtotal), "subtotal %s", item.Subtotal)
			assert.True(t, d(tt.wantGst).Equal(item.GstAmount), "gst %s", item.GstAmount)
			assert.True(t, d(tt.wantTotal).Equal(item.Total), "total %s", item.Total)
		})
	}
}

func TestNewInvoice(t *testing.T) {
	adminID := uuid.New()
	item, err := NewInvoiceItem(uuid.New(), "Notebook", 2, d("50.00"), d("18"))
	require.NoError(t, err)

	t.Run("totals add up", func(t *testing.T) {
		inv, err := NewInvoice(adminID, "INV25080001", uuid.New(), []InvoiceItem{item}, d("10.00"))
		require.NoError(t, err)
		assert.True(t, d("100.00").Equal(inv.Subtotal))
		assert.True(t, d("18.00").Equal(inv.GstAmount))
		assert.True(t, d("108.00").Equal(inv.TotalAmount))
		assert.Equal(t, PaymentPaid, inv.PaymentStatus)
		assert.Equal(t, MethodCash, inv.PaymentMethod)
		assert.Equal(t, inv.ID, inv.Items[0].InvoiceID)
	})

	t.Run("requires a student", func(t *testing.T) {
		_, err := NewInvoice(adminID, "INV25080005", uuid.Nil, []InvoiceItem{item}, decimal.Zero)
		assert.Error(t, err)
	})

	t.Run("requires items", func(t *testing.T) {
		_, err := NewInvoice(adminID, "INV25080002", uuid.New(), nil, decimal.Zero)
		assert.Error(t, err)
	})

	t.Run("rejects negative discount", func(t *testing.T) {
		_, err := NewInvoice(adminID, "INV25080003", uuid.New(), []InvoiceItem{item}, d("-5"))
		assert.Error(t, err)
	})

	t.Run("rejects discount above total", func(t *testing.T) {
		_, err := NewInvoice(adminID, "INV25080004", uuid.New(), []InvoiceItem{item}, d("500.00"))
		assert.Error(t, err)
	})
}

func TestInvoiceReplaceItems(t *testing.T) {
	adminID := uuid.New()
	item, err := NewInvoiceItem(uuid.New(), "Notebook", 2, d("50.00"), d("18"))
	require.NoError(t, err)

	newInvoice := func(t *testing.T) *Invoice {
		inv, err := NewInvoice(adminID, "INV25080010", uuid.New(), []InvoiceItem{item}, decimal.Zero)
		require.NoError(t, err)
		return inv
	}

	t.Run("paid invoice is frozen", func(t *testing.T) {
		inv := newInvoice(t)
		other, _ := NewInvoiceItem(uuid.New(), "Pencil", 10, d("5.00"), d("12"))
		err := inv.ReplaceItems([]InvoiceItem{other}, decimal.Zero)
		assert.Error(t, err)
	})

	t.Run("recomputes totals when editable", func(t *testing.T) {
		inv := newInvoice(t)
		require.NoError(t, inv.SetPayment(PaymentPending, MethodCash))
		other, _ := NewInvoiceItem(uuid.New(), "Pencil", 10, d("5.00"), d("12"))
		require.NoError(t, inv.ReplaceItems([]InvoiceItem{other}, decimal.Zero))
		assert.True(t, d("50.00").Equal(inv.Subtotal))
		assert.True(t, d("6.00").Equal(inv.GstAmount))
		assert.True(t, d("56.00").Equal(inv.TotalAmount))
		assert.Len(t, inv.Items, 1)
	})

	t.Run("rejects empty item list", func(t *testing.T) {
		inv := newInvoice(t)
		require.NoError(t, inv.SetPayment(PaymentPending, MethodCash))
		assert.Error(t, inv.ReplaceItems(nil, decimal.Zero))
	})
}

func TestInvoiceCommissionSnapshot(t *testing.T) {
	item, err := NewInvoiceItem(uuid.New(), "Notebook", 2, d("50.00"), d("18"))
	require.NoError(t, err)
	inv, err := NewInvoice(uuid.New(), "INV25080020", uuid.New(), []InvoiceItem{item}, decimal.Zero)
	require.NoError(t, err)

	schoolID := uuid.New()
	inv.AttachSchool(schoolID, d("10"))
	require.NotNil(t, inv.SchoolID)
	assert.Equal(t, schoolID, *inv.SchoolID)
	assert.True(t, d("10").Equal(inv.CommissionRate))
	assert.True(t, d("10.00").Equal(inv.CommissionAmount), "amount %s", inv.CommissionAmount)

	t.Run("follows the subtotal on edit", func(t *testing.T) {
		require.NoError(t, inv.SetPayment(PaymentPending, MethodCash))
		bigger, _ := NewInvoiceItem(uuid.New(), "Notebook", 4, d("50.00"), d("18"))
		require.NoError(t, inv.ReplaceItems([]InvoiceItem{bigger}, decimal.Zero))
		assert.True(t, d("10").Equal(inv.CommissionRate))
		assert.True(t, d("20.00").Equal(inv.CommissionAmount), "amount %s", inv.CommissionAmount)
	})
}
