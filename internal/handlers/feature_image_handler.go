package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/habib-153/oddlogy-server/internal/httpx"
	"github.com/habib-153/oddlogy-server/internal/models"
	"github.com/habib-153/oddlogy-server/internal/storage"
	"github.com/habib-153/oddlogy-server/internal/uploads"
)

const carouselFolder = "oddlogy/carousel"

type FeatureImageHandler struct {
	store    storage.CarouselStore
	uploader uploads.Uploader
}

func NewFeatureImageHandler(store storage.CarouselStore, uploader uploads.Uploader) *FeatureImageHandler {
	return &FeatureImageHandler{store: store, uploader: uploader}
}

func (h *FeatureImageHandler) GetFeatureImages(w http.ResponseWriter, r *http.Request) {
	images, err := h.store.List(r.Context())
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, "Feature images retrieved successfully", images)
}

type createFeatureImageRequest struct {
	Title string `json:"title"`
	Order int    `json:"order"`
}

// CreateFeatureImage takes a multipart request with an "image" file and an
// optional "data" JSON field carrying title/order.
func (h *FeatureImageHandler) CreateFeatureImage(w http.ResponseWriter, r *http.Request) {
	if h.uploader == nil {
		httpx.WriteError(w, http.StatusInternalServerError, "Image storage is not configured")
		return
	}

	var req createFeatureImageRequest
	if err := httpx.DecodeBody(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	data, _, ok, err := httpx.FormFile(r, "image")
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid image file")
		return
	}
	if !ok {
		httpx.WriteError(w, http.StatusBadRequest, "Image file is required")
		return
	}

	publicID := uuid.NewString()
	url, err := h.uploader.UploadBytes(r.Context(), carouselFolder, publicID, data)
	if err != nil {
		logrus.WithError(err).Error("carousel image upload failed")
		httpx.WriteError(w, http.StatusInternalServerError, "Failed to upload image")
		return
	}

	image := &models.CarouselImage{
		ID:        primitive.NewObjectID(),
		Title:     req.Title,
		ImageURL:  url,
		PublicID:  carouselFolder + "/" + publicID,
		Order:     req.Order,
		CreatedAt: time.Now(),
	}
	if err := h.store.Insert(r.Context(), image); err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, "Feature image added successfully", image)
}

func (h *FeatureImageHandler) DeleteFeatureImage(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid image ID")
		return
	}

	image, err := h.store.Delete(r.Context(), id)
	if err != nil {
		if err == storage.ErrNotFound {
			httpx.WriteError(w, http.StatusNotFound, "Feature image not found")
			return
		}
		httpx.WriteServiceError(w, err)
		return
	}

	// Asset cleanup is best-effort; the record is already gone.
	if h.uploader != nil {
		go func(publicID string) {
			if err := h.uploader.Destroy(context.Background(), publicID); err != nil {
				logrus.WithError(err).WithField("public_id", publicID).Warn("asset cleanup failed")
			}
		}(image.PublicID)
	}

	httpx.WriteJSON(w, http.StatusOK, "Feature image deleted successfully", nil)
}
