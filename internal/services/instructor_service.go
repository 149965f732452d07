package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/habib-153/oddlogy-server/internal/apperror"
	"github.com/habib-153/oddlogy-server/internal/models"
	"github.com/habib-153/oddlogy-server/internal/storage"
)

type InstructorService struct {
	users   storage.UserStore
	courses storage.CourseStore
}

func NewInstructorService(users storage.UserStore, courses storage.CourseStore) *InstructorService {
	return &InstructorService{users: users, courses: courses}
}

func (s *InstructorService) List(ctx context.Context) ([]models.User, error) {
	return s.users.ListByRole(ctx, models.RoleInstructor)
}

func (s *InstructorService) Get(ctx context.Context, idHex string) (*models.User, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, apperror.BadRequest("Invalid instructor ID")
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if err == storage.ErrNotFound {
			return nil, apperror.NotFound("Instructor not found")
		}
		return nil, err
	}
	if user.Role != models.RoleInstructor {
		return nil, apperror.NotFound("Instructor not found")
	}
	return user, nil
}

type UpdateInstructorInput struct {
	Name           *string `json:"name"`
	ProfilePhoto   *string `json:"profile_photo"`
	Designation    *string `json:"designation"`
	Qualifications *string `json:"qualifications"`
	Experience     *string `json:"experience"`
	Specialization *string `json:"specialization"`
	Bio            *string `json:"bio"`
}

func (s *InstructorService) Update(ctx context.Context, idHex string, input UpdateInstructorInput) (*models.User, error) {
	if _, err := s.Get(ctx, idHex); err != nil {
		return nil, err
	}
	id, _ := primitive.ObjectIDFromHex(idHex)

	set := bson.M{}
	if input.Name != nil {
		set["name"] = *input.Name
	}
	if input.ProfilePhoto != nil {
		set["profile_photo"] = *input.ProfilePhoto
	}
	if input.Designation != nil {
		set["designation"] = *input.Designation
	}
	if input.Qualifications != nil {
		set["qualifications"] = *input.Qualifications
	}
	if input.Experience != nil {
		set["experience"] = *input.Experience
	}
	if input.Specialization != nil {
		set["specialization"] = *input.Specialization
	}
	if input.Bio != nil {
		set["bio"] = *input.Bio
	}
	if len(set) == 0 {
		return nil, apperror.BadRequest("Nothing to update")
	}
	set["updated_at"] = time.Now()

	if err := s.users.Update(ctx, id, set); err != nil {
		if err == storage.ErrNotFound {
			return nil, apperror.NotFound("Instructor not found")
		}
		return nil, err
	}
	return s.users.GetByID(ctx, id)
}

func (s *InstructorService) Delete(ctx context.Context, idHex string) error {
	if _, err := s.Get(ctx, idHex); err != nil {
		return err
	}
	id, _ := primitive.ObjectIDFromHex(idHex)
	if err := s.users.SoftDelete(ctx, id); err != nil {
		if err == storage.ErrNotFound {
			return apperror.NotFound("Instructor not found")
		}
		return err
	}
	return nil
}

// MyCourses resolves the instructor from the token email and returns the
// dashboard aggregation rows for their courses.
func (s *InstructorService) MyCourses(ctx context.Context, email string) ([]models.InstructorCourse, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if err == storage.ErrNotFound {
			return nil, apperror.NotFound("Instructor not found")
		}
		return nil, err
	}
	if user.Role != models.RoleInstructor {
		return nil, apperror.NotFound("Instructor not found")
	}
	return s.courses.InstructorCourses(ctx, user.ID)
}
