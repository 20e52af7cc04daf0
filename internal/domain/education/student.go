package education

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/schoolkart/backend/internal/domain/shared"
)

// Student represents a student enrolled at a partner school. Roll numbers
// are globally unique so invoice search can resolve a student without a
// school qualifier.
type Student struct {
	shared.OwnedEntity
	RollNumber    string     `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name          string     `gorm:"type:varchar(200);not null"`
	SchoolID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	School        *School    `gorm:"foreignKey:SchoolID"`
	Class         string     `gorm:"type:varchar(50);not null"`
	Section       string     `gorm:"type:varchar(20)"`
	FatherName    string     `gorm:"type:varchar(200)"`
	MotherName    string     `gorm:"type:varchar(200)"`
	Contact       Contact    `gorm:"embedded;embeddedPrefix:contact_"`
	Address       Address    `gorm:"embedded;embeddedPrefix:address_"`
	DateOfBirth   *time.Time `gorm:"type:date"`
	AdmissionDate *time.Time `gorm:"type:date"`
	IsActive      bool       `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Student) TableName() string {
	return "students"
}

// NewStudent creates a new student owned by the given admin
func NewStudent(createdBy uuid.UUID, rollNumber, name string, schoolID uuid.UUID, class string) (*Student, error) {
	rollNumber = strings.TrimSpace(rollNumber)
	name = strings.TrimSpace(name)
	class = strings.TrimSpace(class)
	if rollNumber == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Roll number is required")
	}
	if name == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Student name is required")
	}
	if schoolID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "School is required")
	}
	if class == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Class is required")
	}

	return &Student{
		OwnedEntity: shared.NewOwnedEntity(createdBy),
		RollNumber:  rollNumber,
		Name:        name,
		SchoolID:    schoolID,
		Class:       class,
		IsActive:    true,
	}, nil
}

// Update updates the student's details. The roll number and school are
// changed through their own methods so uniqueness and scoping checks stay
// in one place.
func (s *Student) Update(name, class, section, fatherName, motherName string, contact Contact, address Address) error {
	name = strings.TrimSpace(name)
	class = strings.TrimSpace(class)
	if name == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Student name is required")
	}
	if class == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Class is required")
	}
	s.Name = name
	s.Class = class
	s.Section = strings.TrimSpace(section)
	s.FatherName = fatherName
	s.MotherName = motherName
	s.Contact = contact
	s.Address = address
	s.UpdatedAt = time.Now()
	return nil
}

// TransferTo moves the student to another school
func (s *Student) TransferTo(schoolID uuid.UUID) error {
	if schoolID == uuid.Nil {
		return shared.NewDomainError("VALIDATION_ERROR", "School is required")
	}
	s.SchoolID = schoolID
	s.School = nil
	s.UpdatedAt = time.Now()
	return nil
}

// SetActive toggles the active flag
func (s *Student) SetActive(active bool) {
	s.IsActive = active
	s.UpdatedAt = time.Now()
}
