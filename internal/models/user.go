package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRole string

const (
	RoleAdmin      UserRole = "ADMIN"
	RoleInstructor UserRole = "INSTRUCTOR"
	RoleUser       UserRole = "USER"
)

// InstructorProfile holds the fields only instructors carry.
type InstructorProfile struct {
	Designation    string `json:"designation,omitempty" bson:"designation,omitempty"`
	Qualifications string `json:"qualifications,omitempty" bson:"qualifications,omitempty"`
	Experience     string `json:"experience,omitempty" bson:"experience,omitempty"`
	Specialization string `json:"specialization,omitempty" bson:"specialization,omitempty"`
	Bio            string `json:"bio,omitempty" bson:"bio,omitempty"`
}

type User struct {
	ID                primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Name              string               `json:"name" bson:"name"`
	Email             string               `json:"email" bson:"email"`
	Role              UserRole             `json:"role" bson:"role"`
	ProfilePhoto      string               `json:"profile_photo,omitempty" bson:"profile_photo,omitempty"`
	EnrolledCourses   []primitive.ObjectID `json:"enrolled_courses" bson:"enrolled_courses"`
	InstructorProfile `bson:",inline"`
	IsDeleted         bool      `json:"is_deleted" bson:"is_deleted"`
	CreatedAt         time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" bson:"updated_at"`
}
