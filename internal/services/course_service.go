package services

import (
	"context"
	"net/url"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/habib-153/oddlogy-server/internal/apperror"
	"github.com/habib-153/oddlogy-server/internal/models"
	"github.com/habib-153/oddlogy-server/internal/query"
	"github.com/habib-153/oddlogy-server/internal/storage"
)

const homeCourseLimit = 8

// courseSearchFields are the fields searchTerm matches against.
var courseSearchFields = []string{"title", "description", "course_type"}

// ListMeta carries pagination info alongside list results.
type ListMeta struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

type CourseService struct {
	courses storage.CourseStore
	users   storage.UserStore
}

func NewCourseService(courses storage.CourseStore, users storage.UserStore) *CourseService {
	return &CourseService{courses: courses, users: users}
}

func (s *CourseService) Create(ctx context.Context, course *models.Course) (*models.Course, error) {
	course.ID = primitive.NewObjectID()
	if course.Students == nil {
		course.Students = []primitive.ObjectID{}
	}
	if course.Modules == nil {
		course.Modules = []primitive.ObjectID{}
	}
	if course.CourseStatus == "" {
		course.CourseStatus = models.CourseNotStarted
	}
	course.StudentEnrolled = 0
	course.IsDeleted = false
	course.CreatedAt = time.Now()
	course.UpdatedAt = course.CreatedAt

	if err := s.courses.Insert(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) List(ctx context.Context, params url.Values) ([]models.Course, *ListMeta, error) {
	opts := query.Build(params, courseSearchFields)
	courses, total, err := s.courses.List(ctx, opts)
	if err != nil {
		return nil, nil, err
	}
	return courses, &ListMeta{Page: opts.Page, Limit: opts.Limit, Total: total}, nil
}

func (s *CourseService) Home(ctx context.Context) ([]models.Course, error) {
	return s.courses.ListHome(ctx, homeCourseLimit)
}

func (s *CourseService) Get(ctx context.Context, idHex string) (*models.CourseDetail, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, apperror.BadRequest("Invalid course ID")
	}
	detail, err := s.courses.GetDetail(ctx, id)
	if err != nil {
		if err == storage.ErrNotFound {
			return nil, apperror.NotFound("Course not found")
		}
		return nil, err
	}
	return detail, nil
}

func (s *CourseService) Update(ctx context.Context, idHex string, set bson.M) (*models.Course, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, apperror.BadRequest("Invalid course ID")
	}
	if len(set) == 0 {
		return nil, apperror.BadRequest("Nothing to update")
	}
	set["updated_at"] = time.Now()

	if err := s.courses.Update(ctx, id, set); err != nil {
		if err == storage.ErrNotFound {
			return nil, apperror.NotFound("Course not found")
		}
		return nil, err
	}
	return s.courses.GetByID(ctx, id)
}

// Delete soft-deletes the course and cascades to its modules.
func (s *CourseService) Delete(ctx context.Context, idHex string) error {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return apperror.BadRequest("Invalid course ID")
	}
	if err := s.courses.SoftDeleteCascade(ctx, id); err != nil {
		if err == storage.ErrNotFound {
			return apperror.NotFound("Course not found")
		}
		return err
	}
	return nil
}

func (s *CourseService) ByUser(ctx context.Context, userIDHex string) ([]models.Course, error) {
	userID, err := primitive.ObjectIDFromHex(userIDHex)
	if err != nil {
		return nil, apperror.BadRequest("Invalid user ID")
	}
	return s.courses.ListByStudent(ctx, userID)
}

// DirectEnroll adds the student to the course without the request/approval
// round trip. Used by free/admin flows; the two document mutations ride one
// transaction.
func (s *CourseService) DirectEnroll(ctx context.Context, courseIDHex, userIDHex string) error {
	courseID, err := primitive.ObjectIDFromHex(courseIDHex)
	if err != nil {
		return apperror.BadRequest("Invalid course ID")
	}
	userID, err := primitive.ObjectIDFromHex(userIDHex)
	if err != nil {
		return apperror.BadRequest("Invalid user ID")
	}

	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		if err == storage.ErrNotFound {
			return apperror.NotFound("Course not found")
		}
		return err
	}
	for _, student := range course.Students {
		if student == userID {
			return apperror.BadRequest("You have already enrolled in this course")
		}
	}

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if err == storage.ErrNotFound {
			return apperror.NotFound("User not found")
		}
		return err
	}

	if err := s.courses.EnrollStudent(ctx, courseID, userID); err != nil {
		if err == storage.ErrNotFound {
			return apperror.NotFound("Course or user not found")
		}
		return err
	}
	return nil
}
