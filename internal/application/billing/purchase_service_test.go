package billing

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/schoolkart/backend/internal/domain/billing"
	"github.com/schoolkart/backend/internal/domain/catalog"
	"github.com/schoolkart/backend/internal/domain/partner"
	"github.com/schoolkart/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type purchaseFixture struct {
	purchases *MockPurchaseRepository
	suppliers *MockSupplierRepository
	products  *MockProductRepository
	service   *PurchaseService
}

func newPurchaseFixture() *purchaseFixture {
	f := &purchaseFixture{
		purchases: new(MockPurchaseRepository),
		suppliers: new(MockSupplierRepository),
		products:  new(MockProductRepository),
	}
	uow := &fakeUnitOfWork{repos: billing.TxRepos{
		Purchases: f.purchases,
		Products:  f.products,
	}}
	f.service = NewPurchaseService(f.purchases, f.suppliers, f.products, uow, zap.NewNop())
	return f
}

func newTestSupplier() *partner.Supplier {
	return &partner.Supplier{
		OwnedEntity: shared.NewOwnedEntity(testAdminID),
		Name:        "Bharat Stationery Mart",
		IsActive:    true,
	}
}

func newRecordedPurchase(productID uuid.UUID, quantity int) *billing.Purchase {
	item, _ := billing.NewPurchaseItem(productID, "Notebook", quantity, d("30.00"), d("18"))
	p, _ := billing.NewPurchase(testAdminID, "PO26080001", uuid.New(), []billing.PurchaseItem{item})
	return p
}

func TestPurchaseService_Create(t *testing.T) {
	t.Run("stock rises with the purchase", func(t *testing.T) {
		f := newPurchaseFixture()
		ctx := context.Background()
		supplier := newTestSupplier()
		product := newTestProduct("Notebook", "50.00")

		f.suppliers.On("FindByID", ctx, testScope(), supplier.ID).Return(supplier, nil)
		f.products.On("FindByIDs", ctx, testScope(), mock.Anything).Return([]*catalog.Product{product}, nil)
		f.purchases.On("NextNumber", ctx).Return("PO26080001", nil)
		f.purchases.On("Save", ctx, mock.AnythingOfType("*billing.Purchase")).Return(nil)
		f.products.On("AddStock", ctx, product.ID, 100).Return(nil)

		result, err := f.service.Create(ctx, testScope(), CreatePurchaseRequest{
			SupplierID: supplier.ID.String(),
			Items: []PurchaseItemRequest{
				{ProductID: product.ID.String(), Quantity: 100, UnitPrice: d("30.00")},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, "PO26080001", result.PurchaseNumber)
		assert.Equal(t, "pending", result.PaymentStatus)
		assert.True(t, result.Subtotal.Equal(d("3000.00")), "subtotal %s", result.Subtotal)
		assert.True(t, result.TotalAmount.Equal(d("3540.00")), "total %s", result.TotalAmount)
		f.products.AssertCalled(t, "AddStock", ctx, product.ID, 100)
		f.purchases.AssertExpectations(t)
	})

	t.Run("every line moves stock", func(t *testing.T) {
		f := newPurchaseFixture()
		ctx := context.Background()
		supplier := newTestSupplier()
		notebook := newTestProduct("Notebook", "50.00")
		pencil := newTestProduct("Pencil", "5.00")

		f.suppliers.On("FindByID", ctx, testScope(), supplier.ID).Return(supplier, nil)
		f.products.On("FindByIDs", ctx, testScope(), mock.Anything).
			Return([]*catalog.Product{notebook, pencil}, nil)
		f.purchases.On("NextNumber", ctx).Return("PO26080002", nil)
		f.purchases.On("Save", ctx, mock.AnythingOfType("*billing.Purchase")).Return(nil)
		f.products.On("AddStock", ctx, notebook.ID, 20).Return(nil)
		f.products.On("AddStock", ctx, pencil.ID, 500).Return(nil)

		_, err := f.service.Create(ctx, testScope(), CreatePurchaseRequest{
			SupplierID: supplier.ID.String(),
			Items: []PurchaseItemRequest{
				{ProductID: notebook.ID.String(), Quantity: 20, UnitPrice: d("30.00")},
				{ProductID: pencil.ID.String(), Quantity: 500, UnitPrice: d("2.00")},
			},
		})

		require.NoError(t, err)
		f.products.AssertExpectations(t)
	})

	t.Run("retry number after losing the race", func(t *testing.T) {
		f := newPurchaseFixture()
		ctx := context.Background()
		supplier := newTestSupplier()
		product := newTestProduct("Notebook", "50.00")

		f.suppliers.On("FindByID", ctx, testScope(), supplier.ID).Return(supplier, nil)
		f.products.On("FindByIDs", ctx, testScope(), mock.Anything).Return([]*catalog.Product{product}, nil)
		f.purchases.On("NextNumber", ctx).Return("PO26080003", nil).Once()
		f.purchases.On("Save", ctx, mock.AnythingOfType("*billing.Purchase")).
			Return(shared.ErrDuplicateKey).Once()
		f.purchases.On("NextNumber", ctx).Return("PO26080004", nil).Once()
		f.purchases.On("Save", ctx, mock.AnythingOfType("*billing.Purchase")).Return(nil).Once()
		f.products.On("AddStock", ctx, product.ID, 10).Return(nil)

		result, err := f.service.Create(ctx, testScope(), CreatePurchaseRequest{
			SupplierID: supplier.ID.String(),
			Items: []PurchaseItemRequest{
				{ProductID: product.ID.String(), Quantity: 10, UnitPrice: d("30.00")},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, "PO26080004", result.PurchaseNumber)
		f.purchases.AssertExpectations(t)
	})

	t.Run("reject inactive supplier", func(t *testing.T) {
		f := newPurchaseFixture()
		ctx := context.Background()
		supplier := newTestSupplier()
		supplier.IsActive = false

		f.suppliers.On("FindByID", ctx, testScope(), supplier.ID).Return(supplier, nil)

		_, err := f.service.Create(ctx, testScope(), CreatePurchaseRequest{
			SupplierID: supplier.ID.String(),
			Items: []PurchaseItemRequest{
				{ProductID: uuid.New().String(), Quantity: 1, UnitPrice: d("10")},
			},
		})

		var derr *shared.DomainError
		require.True(t, errors.As(err, &derr))
		assert.Equal(t, "VALIDATION_ERROR", derr.Code)
		f.products.AssertNotCalled(t, "AddStock", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("reject unknown supplier", func(t *testing.T) {
		f := newPurchaseFixture()
		ctx := context.Background()
		supplierID := uuid.New()

		f.suppliers.On("FindByID", ctx, testScope(), supplierID).Return(nil, shared.ErrNotFound)

		_, err := f.service.Create(ctx, testScope(), CreatePurchaseRequest{
			SupplierID: supplierID.String(),
			Items: []PurchaseItemRequest{
				{ProductID: uuid.New().String(), Quantity: 1, UnitPrice: d("10")},
			},
		})

		var derr *shared.DomainError
		require.True(t, errors.As(err, &derr))
		assert.Equal(t, "VALIDATION_ERROR", derr.Code)
	})
}

func TestPurchaseService_Update(t *testing.T) {
	t.Run("replace lines without moving stock", func(t *testing.T) {
		f := newPurchaseFixture()
		ctx := context.Background()
		product := newTestProduct("Notebook", "50.00")
		purchase := newRecordedPurchase(product.ID, 100)

		f.purchases.On("FindByIDUnscoped", ctx, purchase.ID).Return(purchase, nil)
		f.products.On("FindByIDs", ctx, testScope(), mock.Anything).Return([]*catalog.Product{product}, nil)
		f.purchases.On("Save", ctx, purchase).Return(nil)

		result, err := f.service.Update(ctx, testScope(), purchase.ID, UpdatePurchaseRequest{
			Items: []PurchaseItemRequest{
				{ProductID: product.ID.String(), Quantity: 50, UnitPrice: d("28.00")},
			},
		})

		require.NoError(t, err)
		assert.True(t, result.Subtotal.Equal(d("1400.00")), "subtotal %s", result.Subtotal)
		f.products.AssertNotCalled(t, "AddStock", mock.Anything, mock.Anything, mock.Anything)
		f.products.AssertNotCalled(t, "ReleaseStock", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("forbidden for another admin's purchase", func(t *testing.T) {
		f := newPurchaseFixture()
		ctx := context.Background()
		item, _ := billing.NewPurchaseItem(uuid.New(), "Notebook", 10, d("30.00"), d("18"))
		purchase, _ := billing.NewPurchase(uuid.New(), "PO26080005", uuid.New(), []billing.PurchaseItem{item})

		f.purchases.On("FindByIDUnscoped", ctx, purchase.ID).Return(purchase, nil)

		_, err := f.service.Update(ctx, testScope(), purchase.ID, UpdatePurchaseRequest{
			Items: []PurchaseItemRequest{
				{ProductID: uuid.New().String(), Quantity: 1, UnitPrice: d("10")},
			},
		})

		assert.True(t, errors.Is(err, shared.ErrForbidden))
	})
}

func TestPurchaseService_RecordPayment(t *testing.T) {
	t.Run("partial then full payment", func(t *testing.T) {
		f := newPurchaseFixture()
		ctx := context.Background()
		purchase := newRecordedPurchase(uuid.New(), 100)

		f.purchases.On("FindByIDUnscoped", ctx, purchase.ID).Return(purchase, nil)
		f.purchases.On("Save", ctx, purchase).Return(nil)

		result, err := f.service.RecordPayment(ctx, testScope(), purchase.ID, RecordPaymentRequest{Amount: d("1000")})
		require.NoError(t, err)
		assert.Equal(t, "partial", result.PaymentStatus)
		assert.NotNil(t, result.PaymentDate)

		result, err = f.service.RecordPayment(ctx, testScope(), purchase.ID, RecordPaymentRequest{Amount: d("2540")})
		require.NoError(t, err)
		assert.Equal(t, "paid", result.PaymentStatus)
		assert.True(t, result.PaidAmount.Equal(d("3540.00")), "paid %s", result.PaidAmount)
	})

	t.Run("reject non-positive amount", func(t *testing.T) {
		f := newPurchaseFixture()
		ctx := context.Background()
		purchase := newRecordedPurchase(uuid.New(), 10)

		f.purchases.On("FindByIDUnscoped", ctx, purchase.ID).Return(purchase, nil)

		_, err := f.service.RecordPayment(ctx, testScope(), purchase.ID, RecordPaymentRequest{Amount: d("0")})

		var derr *shared.DomainError
		require.True(t, errors.As(err, &derr))
		assert.Equal(t, "VALIDATION_ERROR", derr.Code)
	})
}
