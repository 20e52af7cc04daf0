package report

import (
	"context"
	"time"

	"github.com/schoolkart/backend/internal/domain/identity"
	"github.com/schoolkart/backend/internal/domain/reporting"
	"github.com/schoolkart/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Reports cover at most one year per query
const maxReportRange = 366 * 24 * time.Hour

// ReportService runs read-only reports and dashboards over the caller's
// visible data
type ReportService struct {
	reportRepo reporting.Repository
	logger     *zap.Logger
}

// NewReportService creates a new ReportService
func NewReportService(reportRepo reporting.Repository, logger *zap.Logger) *ReportService {
	return &ReportService{
		reportRepo: reportRepo,
		logger:     logger.Named("report"),
	}
}

// SalesReport summarizes daily sales over a date range. An empty range
// defaults to the current month.
func (s *ReportService) SalesReport(ctx context.Context, scope identity.Scope, from, to time.Time) (*SalesReportResponse, error) {
	rng, err := normalizeRange(from, to)
	if err != nil {
		return nil, err
	}

	report, err := s.reportRepo.SalesReport(ctx, scope, rng.From, rng.To)
	if err != nil {
		return nil, err
	}
	resp := ToSalesReportResponse(report)
	return &resp, nil
}

// SchoolPerformance ranks schools by sales over a date range
func (s *ReportService) SchoolPerformance(ctx context.Context, scope identity.Scope, from, to time.Time) ([]SchoolPerformanceResponse, error) {
	rng, err := normalizeRange(from, to)
	if err != nil {
		return nil, err
	}

	rows, err := s.reportRepo.SchoolPerformance(ctx, scope, rng.From, rng.To)
	if err != nil {
		return nil, err
	}
	return ToSchoolPerformanceResponses(rows), nil
}

// InventoryValuation values current stock at base price and lists
// products at or below their reorder level
func (s *ReportService) InventoryValuation(ctx context.Context, scope identity.Scope) (*InventoryReportResponse, error) {
	valuation, err := s.reportRepo.InventoryValuation(ctx, scope)
	if err != nil {
		return nil, err
	}
	resp := ToInventoryReportResponse(valuation)
	return &resp, nil
}

// Dashboard builds the landing page snapshot
func (s *ReportService) Dashboard(ctx context.Context, scope identity.Scope) (*DashboardResponse, error) {
	summary, err := s.reportRepo.Dashboard(ctx, scope)
	if err != nil {
		return nil, err
	}
	resp := ToDashboardResponse(summary)
	return &resp, nil
}

// normalizeRange fills missing bounds and rejects inverted or oversized
// ranges. The default window is the current month to date.
func normalizeRange(from, to time.Time) (DateRange, error) {
	now := time.Now()
	if to.IsZero() {
		to = now
	}
	if from.IsZero() {
		from = time.Date(to.Year(), to.Month(), 1, 0, 0, 0, 0, to.Location())
	}
	if to.Before(from) {
		return DateRange{}, shared.NewDomainError("VALIDATION_ERROR", "End date is before start date")
	}
	if to.Sub(from) > maxReportRange {
		return DateRange{}, shared.NewDomainError("VALIDATION_ERROR", "Report range cannot exceed one year")
	}
	return DateRange{From: from, To: to}, nil
}
