// Package storage defines the persistence interfaces the services depend on.
// The mongo subpackage carries the production implementations; tests swap in
// in-memory fakes.
package storage

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/habib-153/oddlogy-server/internal/models"
	"github.com/habib-153/oddlogy-server/internal/query"
)

var (
	// ErrNotFound is returned when a document does not exist or is soft-deleted.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicate is returned on a unique-index conflict.
	ErrDuplicate = errors.New("duplicate document")
)

type CourseStore interface {
	Insert(ctx context.Context, course *models.Course) error
	List(ctx context.Context, opts query.Options) ([]models.Course, int64, error)
	ListHome(ctx context.Context, limit int) ([]models.Course, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Course, error)
	GetDetail(ctx context.Context, id primitive.ObjectID) (*models.CourseDetail, error)
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) error
	// SoftDeleteCascade marks the course and every module referencing it deleted.
	SoftDeleteCascade(ctx context.Context, id primitive.ObjectID) error
	ListByStudent(ctx context.Context, studentID primitive.ObjectID) ([]models.Course, error)
	// EnrollStudent atomically adds the student to course.students, bumps
	// student_enrolled and adds the course to user.enrolled_courses.
	EnrollStudent(ctx context.Context, courseID, studentID primitive.ObjectID) error
	PushModule(ctx context.Context, courseID, moduleID primitive.ObjectID) error
	// InstructorCourses runs the dashboard aggregation for one instructor.
	InstructorCourses(ctx context.Context, instructorID primitive.ObjectID) ([]models.InstructorCourse, error)
}

type ModuleStore interface {
	// Insert returns ErrDuplicate when (course, module_number) is taken.
	Insert(ctx context.Context, module *models.Module) error
	List(ctx context.Context) ([]models.Module, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Module, error)
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) error
	SoftDelete(ctx context.Context, id primitive.ObjectID) error
	ListByCourse(ctx context.Context, courseID primitive.ObjectID) ([]models.Module, error)
}

type EnrollmentFilter struct {
	Status   models.EnrollmentStatus
	CourseID *primitive.ObjectID
}

type EnrollmentStore interface {
	Insert(ctx context.Context, enrollment *models.Enrollment) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Enrollment, error)
	// FindActive returns the non-deleted enrollment for (course, student),
	// whatever its status, or ErrNotFound.
	FindActive(ctx context.Context, courseID, studentID primitive.ObjectID) (*models.Enrollment, error)
	List(ctx context.Context, filter EnrollmentFilter) ([]models.EnrollmentView, error)
	// Approve transitions the enrollment and applies the course/user side
	// effects in a single transaction.
	Approve(ctx context.Context, enrollment *models.Enrollment, approvedBy primitive.ObjectID) error
	Reject(ctx context.Context, id primitive.ObjectID, rejectedBy primitive.ObjectID, reason string) error
}

type UserStore interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ListByRole(ctx context.Context, role models.UserRole) ([]models.User, error)
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) error
	SoftDelete(ctx context.Context, id primitive.ObjectID) error
}

type CarouselStore interface {
	Insert(ctx context.Context, image *models.CarouselImage) error
	List(ctx context.Context) ([]models.CarouselImage, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.CarouselImage, error)
}
