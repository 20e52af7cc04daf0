package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/schoolkart/backend/internal/domain/billing"
	"github.com/schoolkart/backend/internal/domain/catalog"
	"github.com/schoolkart/backend/internal/domain/identity"
	"github.com/schoolkart/backend/internal/domain/partner"
	"github.com/schoolkart/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// PurchaseService handles purchases from suppliers. Recording a purchase
// adds the bought quantities to stock in the same transaction.
type PurchaseService struct {
	purchaseRepo billing.PurchaseRepository
	supplierRepo partner.SupplierRepository
	productRepo  catalog.ProductRepository
	uow          billing.UnitOfWork
	logger       *zap.Logger
}

// NewPurchaseService creates a new PurchaseService
func NewPurchaseService(
	purchaseRepo billing.PurchaseRepository,
	supplierRepo partner.SupplierRepository,
	productRepo catalog.ProductRepository,
	uow billing.UnitOfWork,
	logger *zap.Logger,
) *PurchaseService {
	return &PurchaseService{
		purchaseRepo: purchaseRepo,
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
		uow:          uow,
		logger:       logger.Named("purchase"),
	}
}

// Create records a purchase and increments stock for every line, all
// atomically
func (s *PurchaseService) Create(ctx context.Context, scope identity.Scope, req CreatePurchaseRequest) (*PurchaseResponse, error) {
	supplierID, err := uuid.Parse(req.SupplierID)
	if err != nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Invalid supplier ID")
	}
	supplier, err := s.supplierRepo.FindByID(ctx, scope, supplierID)
	if err != nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Supplier not found")
	}
	if !supplier.IsActive {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Supplier is inactive")
	}

	items, err := s.priceItems(ctx, scope, req.Items)
	if err != nil {
		return nil, err
	}

	number, err := s.purchaseRepo.NextNumber(ctx)
	if err != nil {
		return nil, err
	}

	purchase, err := billing.NewPurchase(scope.AdminID, number, supplier.ID, items)
	if err != nil {
		return nil, err
	}
	purchase.Notes = req.Notes

	// Retry with a fresh number if a concurrent create claimed this one
	for attempt := 0; ; attempt++ {
		err = s.uow.InTransaction(ctx, func(repos billing.TxRepos) error {
			if err := repos.Purchases.Save(ctx, purchase); err != nil {
				return err
			}
			for _, item := range purchase.Items {
				if err := repos.Products.AddStock(ctx, item.ProductID, item.Quantity); err != nil {
					return err
				}
			}
			return nil
		})
		if err == nil {
			break
		}
		if !errors.Is(err, shared.ErrDuplicateKey) || attempt >= numberRetries {
			return nil, err
		}
		number, nerr := s.purchaseRepo.NextNumber(ctx)
		if nerr != nil {
			return nil, nerr
		}
		purchase.PurchaseNumber = number
	}

	s.logger.Info("purchase created",
		zap.String("purchase_id", purchase.ID.String()),
		zap.String("purchase_number", purchase.PurchaseNumber),
		zap.String("total", purchase.TotalAmount.StringFixed(2)))

	resp := ToPurchaseResponse(purchase)
	return &resp, nil
}

// GetByID retrieves a purchase visible to the scope
func (s *PurchaseService) GetByID(ctx context.Context, scope identity.Scope, id uuid.UUID) (*PurchaseResponse, error) {
	purchase, err := s.purchaseRepo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	resp := ToPurchaseResponse(purchase)
	return &resp, nil
}

// List retrieves purchases visible to the scope
func (s *PurchaseService) List(ctx context.Context, scope identity.Scope, filter shared.Filter) (shared.Paginated[PurchaseResponse], error) {
	page, err := s.purchaseRepo.FindAll(ctx, scope, filter)
	if err != nil {
		return shared.Paginated[PurchaseResponse]{}, err
	}

	items := make([]PurchaseResponse, len(page.Items))
	for i, purchase := range page.Items {
		items[i] = ToPurchaseResponse(purchase)
	}
	return shared.NewPaginated(items, page.Total, page.Page, page.Limit), nil
}

// Update replaces a purchase's lines and recomputes its totals. Stock
// already moved at creation; document edits do not move it again.
func (s *PurchaseService) Update(ctx context.Context, scope identity.Scope, id uuid.UUID, req UpdatePurchaseRequest) (*PurchaseResponse, error) {
	purchase, err := s.findOwned(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	items, err := s.priceItems(ctx, scope, req.Items)
	if err != nil {
		return nil, err
	}

	if err := purchase.ReplaceItems(items); err != nil {
		return nil, err
	}
	purchase.Notes = req.Notes

	if err := s.purchaseRepo.Save(ctx, purchase); err != nil {
		return nil, err
	}

	resp := ToPurchaseResponse(purchase)
	return &resp, nil
}

// RecordPayment records a payment against the purchase and recomputes its
// payment status
func (s *PurchaseService) RecordPayment(ctx context.Context, scope identity.Scope, id uuid.UUID, req RecordPaymentRequest) (*PurchaseResponse, error) {
	purchase, err := s.findOwned(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	if err := purchase.RecordPayment(req.Amount); err != nil {
		return nil, err
	}
	if err := s.purchaseRepo.Save(ctx, purchase); err != nil {
		return nil, err
	}

	s.logger.Info("purchase payment recorded",
		zap.String("purchase_id", purchase.ID.String()),
		zap.String("amount", req.Amount.StringFixed(2)),
		zap.String("payment_status", string(purchase.PaymentStatus)))

	resp := ToPurchaseResponse(purchase)
	return &resp, nil
}

// priceItems builds purchase lines from the supplier's quoted prices and
// the products' GST rates
func (s *PurchaseService) priceItems(ctx context.Context, scope identity.Scope, reqs []PurchaseItemRequest) ([]billing.PurchaseItem, error) {
	ids := make([]uuid.UUID, 0, len(reqs))
	for _, r := range reqs {
		id, err := uuid.Parse(r.ProductID)
		if err != nil {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Invalid product ID")
		}
		ids = append(ids, id)
	}

	products, err := s.productRepo.FindByIDs(ctx, scope, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	items := make([]billing.PurchaseItem, 0, len(reqs))
	for i, r := range reqs {
		product, ok := byID[ids[i]]
		if !ok {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Product not found")
		}
		if !product.IsActive {
			return nil, shared.NewDomainError("VALIDATION_ERROR",
				fmt.Sprintf("Product %q is inactive", product.Name))
		}
		item, err := billing.NewPurchaseItem(product.ID, product.Name, r.Quantity, r.UnitPrice, product.GstRate)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *PurchaseService) findOwned(ctx context.Context, scope identity.Scope, id uuid.UUID) (*billing.Purchase, error) {
	purchase, err := s.purchaseRepo.FindByIDUnscoped(ctx, id)
	if err != nil {
		return nil, err
	}
	if !scope.Owns(purchase.CreatedBy) {
		return nil, shared.ErrForbidden
	}
	return purchase, nil
}
