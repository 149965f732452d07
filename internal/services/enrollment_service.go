package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/habib-153/oddlogy-server/internal/apperror"
	"github.com/habib-153/oddlogy-server/internal/mailer"
	"github.com/habib-153/oddlogy-server/internal/models"
	"github.com/habib-153/oddlogy-server/internal/storage"
)

type EnrollmentService struct {
	enrollments storage.EnrollmentStore
	courses     storage.CourseStore
	mail        mailer.Mailer
}

func NewEnrollmentService(enrollments storage.EnrollmentStore, courses storage.CourseStore, mail mailer.Mailer) *EnrollmentService {
	return &EnrollmentService{enrollments: enrollments, courses: courses, mail: mail}
}

type CreateEnrollmentInput struct {
	CourseID      string  `json:"course_id" validate:"required"`
	StudentName   string  `json:"student_name" validate:"required"`
	StudentEmail  string  `json:"student_email" validate:"required,email"`
	StudentPhone  string  `json:"student_phone" validate:"required"`
	PaymentMethod string  `json:"payment_method" validate:"required"`
	TransactionID string  `json:"transaction_id" validate:"required"`
	Amount        float64 `json:"amount" validate:"gte=0"`
}

// Create records a pending enrollment request. Any existing non-deleted
// enrollment for the (course, student) pair blocks a new one, whatever its
// status; the error message echoes that status.
func (s *EnrollmentService) Create(ctx context.Context, studentIDHex string, input CreateEnrollmentInput) (*models.Enrollment, error) {
	courseID, err := primitive.ObjectIDFromHex(input.CourseID)
	if err != nil {
		return nil, apperror.BadRequest("Invalid course ID")
	}
	studentID, err := primitive.ObjectIDFromHex(studentIDHex)
	if err != nil {
		return nil, apperror.BadRequest("Invalid user ID")
	}

	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		if err == storage.ErrNotFound {
			return nil, apperror.NotFound("Course not found")
		}
		return nil, err
	}

	existing, err := s.enrollments.FindActive(ctx, courseID, studentID)
	if err == nil {
		return nil, apperror.BadRequest(
			fmt.Sprintf("You already have a %s enrollment for this course", existing.Status))
	}
	if err != storage.ErrNotFound {
		return nil, err
	}

	enrollment := &models.Enrollment{
		ID:             primitive.NewObjectID(),
		CourseID:       courseID,
		StudentID:      studentID,
		StudentName:    input.StudentName,
		StudentEmail:   input.StudentEmail,
		StudentPhone:   input.StudentPhone,
		PaymentMethod:  input.PaymentMethod,
		TransactionID:  input.TransactionID,
		Amount:         input.Amount,
		Status:         models.EnrollmentPending,
		EnrollmentDate: time.Now(),
	}
	if err := s.enrollments.Insert(ctx, enrollment); err != nil {
		return nil, err
	}
	return enrollment, nil
}

func (s *EnrollmentService) List(ctx context.Context, status, courseIDHex string) ([]models.EnrollmentView, error) {
	filter := storage.EnrollmentFilter{Status: models.EnrollmentStatus(status)}
	if courseIDHex != "" {
		courseID, err := primitive.ObjectIDFromHex(courseIDHex)
		if err != nil {
			return nil, apperror.BadRequest("Invalid course ID")
		}
		filter.CourseID = &courseID
	}
	return s.enrollments.List(ctx, filter)
}

type UpdateEnrollmentStatusInput struct {
	Status          models.EnrollmentStatus `json:"status" validate:"required,oneof=approved rejected"`
	RejectionReason string                  `json:"rejection_reason"`
}

// UpdateStatus moves a pending enrollment to approved or rejected. The
// transition happens exactly once; anything already decided stays decided.
func (s *EnrollmentService) UpdateStatus(ctx context.Context, enrollmentIDHex, adminIDHex string, input UpdateEnrollmentStatusInput) (*models.Enrollment, error) {
	enrollmentID, err := primitive.ObjectIDFromHex(enrollmentIDHex)
	if err != nil {
		return nil, apperror.BadRequest("Invalid enrollment ID")
	}
	adminID, err := primitive.ObjectIDFromHex(adminIDHex)
	if err != nil {
		return nil, apperror.BadRequest("Invalid user ID")
	}

	enrollment, err := s.enrollments.GetByID(ctx, enrollmentID)
	if err != nil {
		if err == storage.ErrNotFound {
			return nil, apperror.NotFound("Enrollment not found")
		}
		return nil, err
	}
	if enrollment.Status != models.EnrollmentPending {
		return nil, apperror.BadRequest("Only pending enrollments can be updated")
	}

	switch input.Status {
	case models.EnrollmentApproved:
		if err := s.enrollments.Approve(ctx, enrollment, adminID); err != nil {
			if err == storage.ErrNotFound {
				// Lost the race with a concurrent decision.
				return nil, apperror.BadRequest("Only pending enrollments can be updated")
			}
			return nil, err
		}
		s.notifyApproved(enrollment)
	case models.EnrollmentRejected:
		if err := s.enrollments.Reject(ctx, enrollmentID, adminID, input.RejectionReason); err != nil {
			if err == storage.ErrNotFound {
				return nil, apperror.BadRequest("Only pending enrollments can be updated")
			}
			return nil, err
		}
	default:
		return nil, apperror.BadRequest("Status must be approved or rejected")
	}

	return s.enrollments.GetByID(ctx, enrollmentID)
}

// notifyApproved emails the student in the background; delivery failure
// never fails the approval.
func (s *EnrollmentService) notifyApproved(enrollment *models.Enrollment) {
	courseTitle := ""
	if course, err := s.courses.GetByID(context.Background(), enrollment.CourseID); err == nil {
		courseTitle = course.Title
	}
	go func() {
		if err := s.mail.SendEnrollmentApproved(enrollment.StudentEmail, enrollment.StudentName, courseTitle); err != nil {
			logrus.WithError(err).WithField("enrollment", enrollment.ID.Hex()).
				Warn("approval notification not delivered")
		}
	}()
}
