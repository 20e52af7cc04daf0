package education

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/schoolkart/backend/internal/domain/education"
	"github.com/schoolkart/backend/internal/domain/identity"
	"github.com/schoolkart/backend/internal/domain/reporting"
	"github.com/schoolkart/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// SchoolService handles school management
type SchoolService struct {
	schoolRepo education.SchoolRepository
	reportRepo reporting.Repository
	logger     *zap.Logger
}

// NewSchoolService creates a new SchoolService
func NewSchoolService(schoolRepo education.SchoolRepository, reportRepo reporting.Repository, logger *zap.Logger) *SchoolService {
	return &SchoolService{
		schoolRepo: schoolRepo,
		reportRepo: reportRepo,
		logger:     logger.Named("school"),
	}
}

// Create registers a new school
func (s *SchoolService) Create(ctx context.Context, scope identity.Scope, req CreateSchoolRequest) (*SchoolResponse, error) {
	exists, err := s.schoolRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A school with this code already exists")
	}

	school, err := education.NewSchool(scope.AdminID, req.Name, req.Code, req.CommissionRate)
	if err != nil {
		return nil, err
	}
	school.Address = req.Address.toDomain()
	school.Contact = req.Contact.toDomain()
	school.PrincipalName = req.PrincipalName

	if err := s.schoolRepo.Save(ctx, school); err != nil {
		return nil, err
	}

	s.logger.Info("school created",
		zap.String("school_id", school.ID.String()),
		zap.String("code", school.Code))

	resp := ToSchoolResponse(school)
	return &resp, nil
}

// GetByID retrieves a school visible to the scope
func (s *SchoolService) GetByID(ctx context.Context, scope identity.Scope, id uuid.UUID) (*SchoolResponse, error) {
	school, err := s.findOwned(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	resp := ToSchoolResponse(school)
	return &resp, nil
}

// List retrieves schools visible to the scope
func (s *SchoolService) List(ctx context.Context, scope identity.Scope, filter shared.Filter) (shared.Paginated[SchoolResponse], error) {
	page, err := s.schoolRepo.FindAll(ctx, scope, filter)
	if err != nil {
		return shared.Paginated[SchoolResponse]{}, err
	}

	items := make([]SchoolResponse, len(page.Items))
	for i, school := range page.Items {
		items[i] = ToSchoolResponse(school)
	}
	return shared.NewPaginated(items, page.Total, page.Page, page.Limit), nil
}

// Update updates a school's details
func (s *SchoolService) Update(ctx context.Context, scope identity.Scope, id uuid.UUID, req UpdateSchoolRequest) (*SchoolResponse, error) {
	school, err := s.findOwned(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	if err := school.Update(req.Name, req.PrincipalName, req.Address.toDomain(), req.Contact.toDomain()); err != nil {
		return nil, err
	}
	if req.CommissionRate != nil {
		if err := school.SetCommissionRate(*req.CommissionRate); err != nil {
			return nil, err
		}
	}
	if req.IsActive != nil {
		school.SetActive(*req.IsActive)
	}

	if err := s.schoolRepo.Save(ctx, school); err != nil {
		return nil, err
	}

	resp := ToSchoolResponse(school)
	return &resp, nil
}

// Delete removes a school. Schools with enrolled students cannot be
// deleted.
func (s *SchoolService) Delete(ctx context.Context, scope identity.Scope, id uuid.UUID) error {
	school, err := s.findOwned(ctx, scope, id)
	if err != nil {
		return err
	}

	count, err := s.schoolRepo.CountStudents(ctx, school.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("BUSINESS_RULE", "School has enrolled students and cannot be deleted")
	}

	if err := s.schoolRepo.Delete(ctx, school.ID); err != nil {
		return err
	}

	s.logger.Info("school deleted", zap.String("school_id", id.String()))
	return nil
}

// Dashboard returns the per-school detail snapshot
func (s *SchoolService) Dashboard(ctx context.Context, scope identity.Scope, id uuid.UUID) (*SchoolDashboardResponse, error) {
	school, err := s.findOwned(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	dash, err := s.reportRepo.SchoolDashboard(ctx, scope, school.ID)
	if err != nil {
		return nil, err
	}

	resp := ToSchoolDashboardResponse(school, dash)
	return &resp, nil
}

// findOwned loads a school and enforces ownership: a school that exists
// but belongs to another admin is forbidden, not hidden.
func (s *SchoolService) findOwned(ctx context.Context, scope identity.Scope, id uuid.UUID) (*education.School, error) {
	school, err := s.schoolRepo.FindByIDUnscoped(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	if !scope.Owns(school.CreatedBy) {
		return nil, shared.ErrForbidden
	}
	return school, nil
}
