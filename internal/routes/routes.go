package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/habib-153/oddlogy-server/internal/auth"
	"github.com/habib-153/oddlogy-server/internal/handlers"
	"github.com/habib-153/oddlogy-server/internal/mailer"
	"github.com/habib-153/oddlogy-server/internal/middleware"
	"github.com/habib-153/oddlogy-server/internal/models"
	"github.com/habib-153/oddlogy-server/internal/services"
	"github.com/habib-153/oddlogy-server/internal/storage/mongodb"
	"github.com/habib-153/oddlogy-server/internal/uploads"
)

// SetupRouter wires stores, services and handlers and registers every route
// with its role gate.
func SetupRouter(client *mongo.Client, dbName string, tm *auth.TokenManager, uploader uploads.Uploader, mail mailer.Mailer) *mux.Router {
	courseStore := mongodb.NewCourseStore(client, dbName)
	moduleStore := mongodb.NewModuleStore(client, dbName)
	enrollmentStore := mongodb.NewEnrollmentStore(client, dbName)
	userStore := mongodb.NewUserStore(client, dbName)
	carouselStore := mongodb.NewCarouselStore(client, dbName)

	courseHandler := handlers.NewCourseHandler(services.NewCourseService(courseStore, userStore), uploader)
	moduleHandler := handlers.NewModuleHandler(services.NewModuleService(moduleStore, courseStore))
	enrollmentHandler := handlers.NewEnrollmentHandler(services.NewEnrollmentService(enrollmentStore, courseStore, mail))
	instructorHandler := handlers.NewInstructorHandler(services.NewInstructorService(userStore, courseStore))
	featureImageHandler := handlers.NewFeatureImageHandler(carouselStore, uploader)

	admin := middleware.RequireRoles(tm, models.RoleAdmin)
	adminOrInstructor := middleware.RequireRoles(tm, models.RoleAdmin, models.RoleInstructor)
	instructor := middleware.RequireRoles(tm, models.RoleInstructor)
	user := middleware.RequireRoles(tm, models.RoleUser)
	anyRole := middleware.RequireRoles(tm, models.RoleAdmin, models.RoleInstructor, models.RoleUser)

	router := mux.NewRouter()

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Server is healthy"))
	}).Methods("GET")

	api := router.PathPrefix("/api/v1").Subrouter()

	// Courses
	api.Handle("/courses", adminOrInstructor(http.HandlerFunc(courseHandler.CreateCourse))).Methods("POST")
	api.HandleFunc("/courses", courseHandler.GetCourses).Methods("GET")
	api.HandleFunc("/courses/home", courseHandler.GetHomeCourses).Methods("GET")
	api.HandleFunc("/courses/user/{userId}", courseHandler.GetCoursesByUser).Methods("GET")
	api.Handle("/courses/enroll/{courseId}", user(http.HandlerFunc(courseHandler.EnrollInCourse))).Methods("POST")
	api.HandleFunc("/courses/{id}", courseHandler.GetCourseByID).Methods("GET")
	api.Handle("/courses/{id}", adminOrInstructor(http.HandlerFunc(courseHandler.UpdateCourse))).Methods("PATCH")
	api.Handle("/courses/{id}", admin(http.HandlerFunc(courseHandler.DeleteCourse))).Methods("DELETE")

	// Modules
	api.Handle("/modules", adminOrInstructor(http.HandlerFunc(moduleHandler.CreateModule))).Methods("POST")
	api.HandleFunc("/modules", moduleHandler.GetModules).Methods("GET")
	api.HandleFunc("/modules/course/{courseId}", moduleHandler.GetModulesByCourse).Methods("GET")
	api.HandleFunc("/modules/{id}", moduleHandler.GetModuleByID).Methods("GET")
	api.Handle("/modules/{id}", adminOrInstructor(http.HandlerFunc(moduleHandler.UpdateModule))).Methods("PATCH")
	api.Handle("/modules/{id}", adminOrInstructor(http.HandlerFunc(moduleHandler.DeleteModule))).Methods("DELETE")

	// Enrollments
	api.Handle("/enrollments", anyRole(http.HandlerFunc(enrollmentHandler.CreateEnrollment))).Methods("POST")
	api.Handle("/enrollments", admin(http.HandlerFunc(enrollmentHandler.GetEnrollments))).Methods("GET")
	api.Handle("/enrollments/{enrollmentId}/status", admin(http.HandlerFunc(enrollmentHandler.UpdateEnrollmentStatus))).Methods("PATCH")

	// Instructors
	api.HandleFunc("/instructors", instructorHandler.GetInstructors).Methods("GET")
	api.Handle("/instructors/my-courses", instructor(http.HandlerFunc(instructorHandler.GetMyCourses))).Methods("GET")
	api.HandleFunc("/instructors/{id}", instructorHandler.GetInstructorByID).Methods("GET")
	api.Handle("/instructors/{id}", admin(http.HandlerFunc(instructorHandler.UpdateInstructor))).Methods("PATCH")
	api.Handle("/instructors/{id}", admin(http.HandlerFunc(instructorHandler.DeleteInstructor))).Methods("DELETE")

	// Feature images (home carousel)
	api.HandleFunc("/feature-image", featureImageHandler.GetFeatureImages).Methods("GET")
	api.Handle("/feature-image", admin(http.HandlerFunc(featureImageHandler.CreateFeatureImage))).Methods("POST")
	api.Handle("/feature-image/{id}", admin(http.HandlerFunc(featureImageHandler.DeleteFeatureImage))).Methods("DELETE")

	return router
}
