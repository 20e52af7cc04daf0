package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/schoolkart/backend/internal/domain/billing"
	"github.com/schoolkart/backend/internal/domain/education"
	"github.com/schoolkart/backend/internal/domain/identity"
	"github.com/schoolkart/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CommissionService handles school commission tracking and settlement.
// Commissions accrue automatically with invoices; this service only reads
// and settles them. Visibility follows school ownership, so a scoped read
// is also the ownership check.
type CommissionService struct {
	commissionRepo billing.CommissionRepository
	schoolRepo     education.SchoolRepository
	logger         *zap.Logger
}

// NewCommissionService creates a new CommissionService
func NewCommissionService(commissionRepo billing.CommissionRepository, schoolRepo education.SchoolRepository, logger *zap.Logger) *CommissionService {
	return &CommissionService{
		commissionRepo: commissionRepo,
		schoolRepo:     schoolRepo,
		logger:         logger.Named("commission"),
	}
}

// GetByID retrieves a commission visible to the scope
func (s *CommissionService) GetByID(ctx context.Context, scope identity.Scope, id uuid.UUID) (*CommissionResponse, error) {
	commission, err := s.commissionRepo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	resp := ToCommissionResponse(commission)
	return &resp, nil
}

// List retrieves commissions visible to the scope
func (s *CommissionService) List(ctx context.Context, scope identity.Scope, filter shared.Filter) (shared.Paginated[CommissionResponse], error) {
	page, err := s.commissionRepo.FindAll(ctx, scope, filter)
	if err != nil {
		return shared.Paginated[CommissionResponse]{}, err
	}

	items := make([]CommissionResponse, len(page.Items))
	for i, commission := range page.Items {
		items[i] = ToCommissionResponse(commission)
	}
	return shared.NewPaginated(items, page.Total, page.Page, page.Limit), nil
}

// ListBySchool retrieves one school's commissions
func (s *CommissionService) ListBySchool(ctx context.Context, scope identity.Scope, schoolID uuid.UUID, filter shared.Filter) (shared.Paginated[CommissionResponse], error) {
	if _, err := s.schoolRepo.FindByID(ctx, scope, schoolID); err != nil {
		return shared.Paginated[CommissionResponse]{}, err
	}

	page, err := s.commissionRepo.FindBySchool(ctx, scope, schoolID, filter)
	if err != nil {
		return shared.Paginated[CommissionResponse]{}, err
	}

	items := make([]CommissionResponse, len(page.Items))
	for i, commission := range page.Items {
		items[i] = ToCommissionResponse(commission)
	}
	return shared.NewPaginated(items, page.Total, page.Page, page.Limit), nil
}

// Summarize aggregates commissions per school and billing period. Month
// and year of zero mean all periods.
func (s *CommissionService) Summarize(ctx context.Context, scope identity.Scope, month, year int) ([]CommissionSummaryResponse, error) {
	if month < 0 || month > 12 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Month must be between 1 and 12")
	}

	summaries, err := s.commissionRepo.Summarize(ctx, scope, month, year)
	if err != nil {
		return nil, err
	}
	return ToCommissionSummaryResponses(summaries), nil
}

// Settle marks a commission paid out to the school, recording the payout
// reference and date. Settling twice is an error and settled commissions
// are immutable from then on.
func (s *CommissionService) Settle(ctx context.Context, scope identity.Scope, id uuid.UUID, req SettleCommissionRequest) (*CommissionResponse, error) {
	commission, err := s.commissionRepo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	var settlementDate time.Time
	if req.SettlementDate != nil {
		settlementDate = *req.SettlementDate
	}
	if err := commission.Settle(req.PaymentReference, settlementDate, req.Notes); err != nil {
		return nil, err
	}
	if err := s.commissionRepo.Save(ctx, commission); err != nil {
		return nil, err
	}

	s.logger.Info("commission settled",
		zap.String("commission_id", commission.ID.String()),
		zap.String("school_id", commission.SchoolID.String()),
		zap.String("amount", commission.Amount.StringFixed(2)))

	resp := ToCommissionResponse(commission)
	return &resp, nil
}
