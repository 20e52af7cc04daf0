package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/schoolkart/backend/internal/domain/identity"
	"github.com/schoolkart/backend/internal/domain/partner"
	"github.com/schoolkart/backend/internal/domain/shared"
	"github.com/schoolkart/backend/internal/infrastructure/gst"
	"go.uber.org/zap"
)

// SupplierService handles supplier management
type SupplierService struct {
	supplierRepo partner.SupplierRepository
	logger       *zap.Logger
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(supplierRepo partner.SupplierRepository, logger *zap.Logger) *SupplierService {
	return &SupplierService{
		supplierRepo: supplierRepo,
		logger:       logger.Named("supplier"),
	}
}

// Create registers a new supplier
func (s *SupplierService) Create(ctx context.Context, scope identity.Scope, req CreateSupplierRequest) (*SupplierResponse, error) {
	if req.GSTIN != "" && !gst.ValidateGSTIN(req.GSTIN) {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Invalid GSTIN format")
	}

	supplier, err := partner.NewSupplier(scope.AdminID, req.Name, req.ContactPerson, req.Phone)
	if err != nil {
		return nil, err
	}
	if err := supplier.Update(req.Name, req.ContactPerson, req.Phone, req.Email,
		req.Address, req.GSTIN, req.BankDetails.toDomain()); err != nil {
		return nil, err
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	s.logger.Info("supplier created",
		zap.String("supplier_id", supplier.ID.String()),
		zap.String("name", supplier.Name))

	resp := ToSupplierResponse(supplier)
	return &resp, nil
}

// GetByID retrieves a supplier visible to the scope
func (s *SupplierService) GetByID(ctx context.Context, scope identity.Scope, id uuid.UUID) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	resp := ToSupplierResponse(supplier)
	return &resp, nil
}

// List retrieves suppliers visible to the scope
func (s *SupplierService) List(ctx context.Context, scope identity.Scope, filter shared.Filter) (shared.Paginated[SupplierResponse], error) {
	page, err := s.supplierRepo.FindAll(ctx, scope, filter)
	if err != nil {
		return shared.Paginated[SupplierResponse]{}, err
	}

	items := make([]SupplierResponse, len(page.Items))
	for i, supplier := range page.Items {
		items[i] = ToSupplierResponse(supplier)
	}
	return shared.NewPaginated(items, page.Total, page.Page, page.Limit), nil
}

// Update updates a supplier's details
func (s *SupplierService) Update(ctx context.Context, scope identity.Scope, id uuid.UUID, req UpdateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := s.findOwned(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	if req.GSTIN != "" && !gst.ValidateGSTIN(req.GSTIN) {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Invalid GSTIN format")
	}

	if err := supplier.Update(req.Name, req.ContactPerson, req.Phone, req.Email,
		req.Address, req.GSTIN, req.BankDetails.toDomain()); err != nil {
		return nil, err
	}
	if req.IsActive != nil {
		supplier.SetActive(*req.IsActive)
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	resp := ToSupplierResponse(supplier)
	return &resp, nil
}

// Delete removes a supplier. Suppliers with purchase orders cannot be
// deleted.
func (s *SupplierService) Delete(ctx context.Context, scope identity.Scope, id uuid.UUID) error {
	supplier, err := s.findOwned(ctx, scope, id)
	if err != nil {
		return err
	}

	count, err := s.supplierRepo.CountPurchases(ctx, supplier.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("BUSINESS_RULE", "Supplier has purchase orders and cannot be deleted")
	}

	if err := s.supplierRepo.Delete(ctx, supplier.ID); err != nil {
		return err
	}

	s.logger.Info("supplier deleted", zap.String("supplier_id", id.String()))
	return nil
}

func (s *SupplierService) findOwned(ctx context.Context, scope identity.Scope, id uuid.UUID) (*partner.Supplier, error) {
	supplier, err := s.supplierRepo.FindByIDUnscoped(ctx, id)
	if err != nil {
		return nil, err
	}
	if !scope.Owns(supplier.CreatedBy) {
		return nil, shared.ErrForbidden
	}
	return supplier, nil
}
