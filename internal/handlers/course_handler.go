package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/habib-153/oddlogy-server/internal/apperror"
	"github.com/habib-153/oddlogy-server/internal/httpx"
	"github.com/habib-153/oddlogy-server/internal/middleware"
	"github.com/habib-153/oddlogy-server/internal/models"
	"github.com/habib-153/oddlogy-server/internal/services"
	"github.com/habib-153/oddlogy-server/internal/uploads"
)

const courseMediaFolder = "oddlogy/courses"

type CourseHandler struct {
	service  *services.CourseService
	uploader uploads.Uploader
}

func NewCourseHandler(service *services.CourseService, uploader uploads.Uploader) *CourseHandler {
	return &CourseHandler{service: service, uploader: uploader}
}

type createCourseRequest struct {
	Title          string                `json:"title" validate:"required"`
	Description    string                `json:"description" validate:"required"`
	Instructor     string                `json:"instructor" validate:"required"`
	CourseType     models.CourseType     `json:"course_type" validate:"required,oneof=free paid subscription"`
	CourseCategory models.CourseCategory `json:"course_category" validate:"required"`
	Price          float64               `json:"price" validate:"gte=0"`
	SalePrice      float64               `json:"sale_price" validate:"gte=0"`
	IntroVideo     string                `json:"intro_video"`
}

// CreateCourse accepts JSON or multipart form-data; multipart requests may
// attach banner and thumbnail image files.
func (h *CourseHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	var req createCourseRequest
	if err := httpx.DecodeBody(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := validateStruct(req); err != nil {
		httpx.WriteServiceError(w, err)
		return
	}

	instructorID, err := primitive.ObjectIDFromHex(req.Instructor)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid instructor ID")
		return
	}

	media := models.CourseMedia{IntroVideo: req.IntroVideo}
	if err := h.uploadMedia(r, &media); err != nil {
		httpx.WriteServiceError(w, err)
		return
	}

	course := &models.Course{
		Title:          req.Title,
		Description:    req.Description,
		Instructor:     instructorID,
		CourseType:     req.CourseType,
		CourseCategory: req.CourseCategory,
		Price:          req.Price,
		SalePrice:      req.SalePrice,
		Media:          media,
	}
	created, err := h.service.Create(r.Context(), course)
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, "Course created successfully", created)
}

func (h *CourseHandler) GetCourses(w http.ResponseWriter, r *http.Request) {
	courses, meta, err := h.service.List(r.Context(), r.URL.Query())
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, "Courses retrieved successfully", map[string]interface{}{
		"meta":    meta,
		"courses": courses,
	})
}

func (h *CourseHandler) GetHomeCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.service.Home(r.Context())
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, "Courses retrieved successfully", courses)
}

func (h *CourseHandler) GetCourseByID(w http.ResponseWriter, r *http.Request) {
	detail, err := h.service.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, "Course retrieved successfully", detail)
}

type updateCourseRequest struct {
	Title          *string                `json:"title"`
	Description    *string                `json:"description"`
	Instructor     *string                `json:"instructor"`
	CourseType     *models.CourseType     `json:"course_type"`
	CourseCategory *models.CourseCategory `json:"course_category"`
	CourseStatus   *models.CourseStatus   `json:"course_status"`
	Price          *float64               `json:"price"`
	SalePrice      *float64               `json:"sale_price"`
	IntroVideo     *string                `json:"intro_video"`
}

func (h *CourseHandler) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	var req updateCourseRequest
	if err := httpx.DecodeBody(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	set := bson.M{}
	if req.Title != nil {
		set["title"] = *req.Title
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.Instructor != nil {
		instructorID, err := primitive.ObjectIDFromHex(*req.Instructor)
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "Invalid instructor ID")
			return
		}
		set["instructor"] = instructorID
	}
	if req.CourseType != nil {
		set["course_type"] = *req.CourseType
	}
	if req.CourseCategory != nil {
		set["course_category"] = *req.CourseCategory
	}
	if req.CourseStatus != nil {
		set["course_status"] = *req.CourseStatus
	}
	if req.Price != nil {
		set["price"] = *req.Price
	}
	if req.SalePrice != nil {
		set["sale_price"] = *req.SalePrice
	}
	if req.IntroVideo != nil {
		set["media.intro_video"] = *req.IntroVideo
	}

	var media models.CourseMedia
	if err := h.uploadMedia(r, &media); err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	if media.Banner != "" {
		set["media.banner"] = media.Banner
	}
	if media.Thumbnail != "" {
		set["media.thumbnail"] = media.Thumbnail
	}

	course, err := h.service.Update(r.Context(), mux.Vars(r)["id"], set)
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, "Course updated successfully", course)
}

func (h *CourseHandler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, "Course deleted successfully", nil)
}

func (h *CourseHandler) GetCoursesByUser(w http.ResponseWriter, r *http.Request) {
	courses, err := h.service.ByUser(r.Context(), mux.Vars(r)["userId"])
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, "Courses retrieved successfully", courses)
}

func (h *CourseHandler) EnrollInCourse(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)
	if err := h.service.DirectEnroll(r.Context(), mux.Vars(r)["courseId"], userID); err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, "Enrolled in course successfully", nil)
}

// uploadMedia pushes any attached banner/thumbnail files to storage and
// fills in their URLs. No-op for plain JSON requests.
func (h *CourseHandler) uploadMedia(r *http.Request, media *models.CourseMedia) error {
	if h.uploader == nil {
		return nil
	}
	for _, field := range []string{"banner", "thumbnail"} {
		data, _, ok, err := httpx.FormFile(r, field)
		if err != nil {
			return apperror.BadRequest("Invalid " + field + " file")
		}
		if !ok {
			continue
		}
		url, err := h.uploader.UploadBytes(r.Context(), courseMediaFolder, uuid.NewString(), data)
		if err != nil {
			logrus.WithError(err).WithField("field", field).Error("media upload failed")
			return err
		}
		switch field {
		case "banner":
			media.Banner = url
		case "thumbnail":
			media.Thumbnail = url
		}
	}
	return nil
}
