package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CourseType string

const (
	CourseTypeFree         CourseType = "free"
	CourseTypePaid         CourseType = "paid"
	CourseTypeSubscription CourseType = "subscription"
)

type CourseCategory string

const (
	CategoryWebDevelopment  CourseCategory = "web-development"
	CategoryAppDevelopment  CourseCategory = "app-development"
	CategoryMachineLearning CourseCategory = "machine-learning"
	CategoryDataScience     CourseCategory = "data-science"
	CategoryCyberSecurity   CourseCategory = "cyber-security"
	CategoryMarketing       CourseCategory = "marketing"
	CategoryDesign          CourseCategory = "design"
	CategoryOther           CourseCategory = "other"
)

type CourseStatus string

const (
	CourseNotStarted CourseStatus = "not-started"
	CourseInProgress CourseStatus = "in-progress"
	CourseCompleted  CourseStatus = "completed"
)

type CourseMedia struct {
	Banner     string `json:"banner,omitempty" bson:"banner,omitempty"`
	Thumbnail  string `json:"thumbnail,omitempty" bson:"thumbnail,omitempty"`
	IntroVideo string `json:"intro_video,omitempty" bson:"intro_video,omitempty"`
}

type Course struct {
	ID             primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Title          string               `json:"title" bson:"title"`
	Description    string               `json:"description" bson:"description"`
	Instructor     primitive.ObjectID   `json:"instructor" bson:"instructor"`
	Students       []primitive.ObjectID `json:"students" bson:"students"`
	Modules        []primitive.ObjectID `json:"modules" bson:"modules"`
	CourseType     CourseType           `json:"course_type" bson:"course_type"`
	CourseCategory CourseCategory       `json:"course_category" bson:"course_category"`
	CourseStatus   CourseStatus         `json:"course_status" bson:"course_status"`
	Media          CourseMedia          `json:"media" bson:"media"`
	Price          float64              `json:"price" bson:"price"`
	SalePrice      float64              `json:"sale_price,omitempty" bson:"sale_price,omitempty"`
	// Denormalized count of approved enrollments. Mutated only inside the
	// direct-enroll and approval transactions; the instructor view recomputes
	// it from the enrollments collection instead of trusting this field.
	StudentEnrolled int       `json:"student_enrolled" bson:"student_enrolled"`
	IsDeleted       bool      `json:"is_deleted" bson:"is_deleted"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" bson:"updated_at"`
}
