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

type ModuleService struct {
	modules storage.ModuleStore
	courses storage.CourseStore
}

func NewModuleService(modules storage.ModuleStore, courses storage.CourseStore) *ModuleService {
	return &ModuleService{modules: modules, courses: courses}
}

type CreateModuleInput struct {
	Name         string `json:"name" validate:"required"`
	Description  string `json:"description"`
	ModuleNumber int    `json:"module_number" validate:"required,min=1"`
	VideoURL     string `json:"video_url"`
	CourseID     string `json:"course_id" validate:"required"`
}

// Create inserts the module and pushes its id into the parent course. The
// (course, module_number) uniqueness comes from the partial unique index, so
// a duplicate insert fails before the course document is touched.
func (s *ModuleService) Create(ctx context.Context, input CreateModuleInput) (*models.Module, error) {
	courseID, err := primitive.ObjectIDFromHex(input.CourseID)
	if err != nil {
		return nil, apperror.BadRequest("Invalid course ID")
	}

	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		if err == storage.ErrNotFound {
			return nil, apperror.NotFound("Course not found")
		}
		return nil, err
	}

	now := time.Now()
	module := &models.Module{
		ID:           primitive.NewObjectID(),
		Name:         input.Name,
		Description:  input.Description,
		ModuleNumber: input.ModuleNumber,
		VideoURL:     input.VideoURL,
		Course:       courseID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.modules.Insert(ctx, module); err != nil {
		if err == storage.ErrDuplicate {
			return nil, apperror.BadRequest("Module number already exists for this course")
		}
		return nil, err
	}

	if err := s.courses.PushModule(ctx, courseID, module.ID); err != nil {
		return nil, apperror.Internal("Failed to create module")
	}
	return module, nil
}

func (s *ModuleService) List(ctx context.Context) ([]models.Module, error) {
	return s.modules.List(ctx)
}

func (s *ModuleService) Get(ctx context.Context, idHex string) (*models.Module, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, apperror.BadRequest("Invalid module ID")
	}
	module, err := s.modules.GetByID(ctx, id)
	if err != nil {
		if err == storage.ErrNotFound {
			return nil, apperror.NotFound("Module not found")
		}
		return nil, err
	}
	return module, nil
}

type UpdateModuleInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	VideoURL    *string `json:"video_url"`
	IsCompleted *bool   `json:"is_completed"`
}

func (s *ModuleService) Update(ctx context.Context, idHex string, input UpdateModuleInput) (*models.Module, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, apperror.BadRequest("Invalid module ID")
	}

	set := bson.M{}
	if input.Name != nil {
		set["name"] = *input.Name
	}
	if input.Description != nil {
		set["description"] = *input.Description
	}
	if input.VideoURL != nil {
		set["video_url"] = *input.VideoURL
	}
	if input.IsCompleted != nil {
		set["is_completed"] = *input.IsCompleted
	}
	if len(set) == 0 {
		return nil, apperror.BadRequest("Nothing to update")
	}
	set["updated_at"] = time.Now()

	if err := s.modules.Update(ctx, id, set); err != nil {
		if err == storage.ErrNotFound {
			return nil, apperror.NotFound("Module not found")
		}
		return nil, err
	}
	return s.modules.GetByID(ctx, id)
}

// Delete soft-deletes the module. The id stays in the parent course's
// modules array; population filters it out.
func (s *ModuleService) Delete(ctx context.Context, idHex string) error {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return apperror.BadRequest("Invalid module ID")
	}
	if err := s.modules.SoftDelete(ctx, id); err != nil {
		if err == storage.ErrNotFound {
			return apperror.NotFound("Module not found")
		}
		return err
	}
	return nil
}

func (s *ModuleService) ByCourse(ctx context.Context, courseIDHex string) ([]models.Module, error) {
	courseID, err := primitive.ObjectIDFromHex(courseIDHex)
	if err != nil {
		return nil, apperror.BadRequest("Invalid course ID")
	}
	return s.modules.ListByCourse(ctx, courseID)
}
