package education

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/schoolkart/backend/internal/domain/education"
	"github.com/schoolkart/backend/internal/domain/identity"
	"github.com/schoolkart/backend/internal/domain/shared"
	"github.com/schoolkart/backend/internal/infrastructure/importer"
	"go.uber.org/zap"
)

// StudentService handles student management and bulk import
type StudentService struct {
	studentRepo education.StudentRepository
	schoolRepo  education.SchoolRepository
	logger      *zap.Logger
}

// NewStudentService creates a new StudentService
func NewStudentService(studentRepo education.StudentRepository, schoolRepo education.SchoolRepository, logger *zap.Logger) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		schoolRepo:  schoolRepo,
		logger:      logger.Named("student"),
	}
}

// Create enrolls a new student at a school visible to the scope
func (s *StudentService) Create(ctx context.Context, scope identity.Scope, req CreateStudentRequest) (*StudentResponse, error) {
	schoolID, err := uuid.Parse(req.SchoolID)
	if err != nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Invalid school ID")
	}
	if _, err := s.schoolRepo.FindByID(ctx, scope, schoolID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "School not found")
		}
		return nil, err
	}

	exists, err := s.studentRepo.ExistsByRollNumber(ctx, req.RollNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A student with this roll number already exists")
	}

	student, err := education.NewStudent(scope.AdminID, req.RollNumber, req.Name, schoolID, req.Class)
	if err != nil {
		return nil, err
	}
	student.Section = req.Section
	student.FatherName = req.FatherName
	student.MotherName = req.MotherName
	student.Contact = req.Contact.toDomain()
	student.Address = req.Address.toDomain()
	student.DateOfBirth = req.DateOfBirth
	student.AdmissionDate = req.AdmissionDate

	if err := s.studentRepo.Save(ctx, student); err != nil {
		return nil, err
	}

	s.logger.Info("student enrolled",
		zap.String("student_id", student.ID.String()),
		zap.String("roll_number", student.RollNumber))

	resp := ToStudentResponse(student)
	return &resp, nil
}

// GetByID retrieves a student visible to the scope
func (s *StudentService) GetByID(ctx context.Context, scope identity.Scope, id uuid.UUID) (*StudentResponse, error) {
	student, err := s.findOwned(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	resp := ToStudentResponse(student)
	return &resp, nil
}

// List retrieves students visible to the scope
func (s *StudentService) List(ctx context.Context, scope identity.Scope, filter shared.Filter) (shared.Paginated[StudentResponse], error) {
	page, err := s.studentRepo.FindAll(ctx, scope, filter)
	if err != nil {
		return shared.Paginated[StudentResponse]{}, err
	}

	items := make([]StudentResponse, len(page.Items))
	for i, student := range page.Items {
		items[i] = ToStudentResponse(student)
	}
	return shared.NewPaginated(items, page.Total, page.Page, page.Limit), nil
}

// Search finds students by name or roll number fragment
func (s *StudentService) Search(ctx context.Context, scope identity.Scope, query string, limit int) ([]StudentResponse, error) {
	if query == "" {
		return []StudentResponse{}, nil
	}
	students, err := s.studentRepo.Search(ctx, scope, query, limit)
	if err != nil {
		return nil, err
	}
	items := make([]StudentResponse, len(students))
	for i, student := range students {
		items[i] = ToStudentResponse(student)
	}
	return items, nil
}

// Update updates a student's details, optionally transferring schools
func (s *StudentService) Update(ctx context.Context, scope identity.Scope, id uuid.UUID, req UpdateStudentRequest) (*StudentResponse, error) {
	student, err := s.findOwned(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	if err := student.Update(req.Name, req.Class, req.Section, req.FatherName, req.MotherName,
		req.Contact.toDomain(), req.Address.toDomain()); err != nil {
		return nil, err
	}

	if req.SchoolID != nil {
		schoolID, err := uuid.Parse(*req.SchoolID)
		if err != nil {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Invalid school ID")
		}
		if schoolID != student.SchoolID {
			if _, err := s.schoolRepo.FindByID(ctx, scope, schoolID); err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					return nil, shared.NewDomainError("VALIDATION_ERROR", "School not found")
				}
				return nil, err
			}
			if err := student.TransferTo(schoolID); err != nil {
				return nil, err
			}
		}
	}
	if req.IsActive != nil {
		student.SetActive(*req.IsActive)
	}

	if err := s.studentRepo.Save(ctx, student); err != nil {
		return nil, err
	}

	resp := ToStudentResponse(student)
	return &resp, nil
}

// Delete removes a student
func (s *StudentService) Delete(ctx context.Context, scope identity.Scope, id uuid.UUID) error {
	student, err := s.findOwned(ctx, scope, id)
	if err != nil {
		return err
	}
	return s.studentRepo.Delete(ctx, student.ID)
}

// requiredImportHeaders are the columns a student CSV must carry
var requiredImportHeaders = []string{"roll_number", "name", "class"}

// BulkImport enrolls students from a CSV file into one school. Rows that
// fail validation are reported individually; valid rows are saved in one
// transaction.
func (s *StudentService) BulkImport(ctx context.Context, scope identity.Scope, schoolID uuid.UUID, file io.Reader) (*ImportResult, error) {
	if _, err := s.schoolRepo.FindByID(ctx, scope, schoolID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "School not found")
		}
		return nil, err
	}

	reader, err := importer.NewCSVReader(file)
	if err != nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", err.Error())
	}
	if err := reader.ParseHeader(); err != nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", err.Error())
	}
	if missing := reader.MissingHeaders(requiredImportHeaders); len(missing) > 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR",
			fmt.Sprintf("Missing required columns: %v", missing))
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", err.Error())
	}

	result := &ImportResult{}
	var students []*education.Student
	seen := make(map[string]bool)

	for _, row := range rows {
		rollNumber := row.Get("roll_number")

		if seen[rollNumber] {
			result.Skipped++
			result.Errors = append(result.Errors, ImportRowError{
				Line:    row.LineNumber,
				Message: fmt.Sprintf("Duplicate roll number %q in file", rollNumber),
			})
			continue
		}

		student, err := education.NewStudent(scope.AdminID, rollNumber, row.Get("name"), schoolID, row.Get("class"))
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, ImportRowError{
				Line:    row.LineNumber,
				Message: err.Error(),
			})
			continue
		}

		exists, err := s.studentRepo.ExistsByRollNumber(ctx, rollNumber)
		if err != nil {
			return nil, err
		}
		if exists {
			result.Skipped++
			result.Errors = append(result.Errors, ImportRowError{
				Line:    row.LineNumber,
				Message: fmt.Sprintf("Roll number %q is already enrolled", rollNumber),
			})
			continue
		}

		student.Section = row.Get("section")
		student.FatherName = row.Get("father_name")
		student.MotherName = row.Get("mother_name")
		student.Contact = education.Contact{Phone: row.Get("phone"), Email: row.Get("email")}

		seen[rollNumber] = true
		students = append(students, student)
	}

	if err := s.studentRepo.SaveAll(ctx, students); err != nil {
		return nil, err
	}
	result.Imported = len(students)

	s.logger.Info("students imported",
		zap.String("school_id", schoolID.String()),
		zap.Int("imported", result.Imported),
		zap.Int("skipped", result.Skipped))

	return result, nil
}

// findOwned loads a student and enforces school-derived ownership
func (s *StudentService) findOwned(ctx context.Context, scope identity.Scope, id uuid.UUID) (*education.Student, error) {
	student, err := s.studentRepo.FindByIDUnscoped(ctx, id)
	if err != nil {
		return nil, err
	}
	school, err := s.schoolRepo.FindByIDUnscoped(ctx, student.SchoolID)
	if err != nil {
		return nil, err
	}
	if !scope.Owns(school.CreatedBy) {
		return nil, shared.ErrForbidden
	}
	return student, nil
}
