package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type EnrollmentStatus string

const (
	EnrollmentPending  EnrollmentStatus = "pending"
	EnrollmentApproved EnrollmentStatus = "approved"
	EnrollmentRejected EnrollmentStatus = "rejected"
)

// Enrollment is a student's request to join a course, carrying payment
// evidence, subject to admin approval. Status moves exactly once from
// pending to approved or rejected.
type Enrollment struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	CourseID  primitive.ObjectID `json:"course_id" bson:"course_id"`
	StudentID primitive.ObjectID `json:"student_id" bson:"student_id"`
	// Contact snapshot taken at request time; kept even if the user record
	// changes later.
	StudentName     string             `json:"student_name" bson:"student_name"`
	StudentEmail    string             `json:"student_email" bson:"student_email"`
	StudentPhone    string             `json:"student_phone" bson:"student_phone"`
	PaymentMethod   string             `json:"payment_method" bson:"payment_method"`
	TransactionID   string             `json:"transaction_id" bson:"transaction_id"`
	Amount          float64            `json:"amount" bson:"amount"`
	Status          EnrollmentStatus   `json:"status" bson:"status"`
	EnrollmentDate  time.Time          `json:"enrollment_date" bson:"enrollment_date"`
	ApprovalDate    *time.Time         `json:"approval_date,omitempty" bson:"approval_date,omitempty"`
	ApprovedBy      primitive.ObjectID `json:"approved_by,omitempty" bson:"approved_by,omitempty"`
	RejectionReason string             `json:"rejection_reason,omitempty" bson:"rejection_reason,omitempty"`
	IsDeleted       bool               `json:"is_deleted" bson:"is_deleted"`
}

// EnrollmentView is an enrollment with its course, student and approver
// references populated by the list aggregation.
type EnrollmentView struct {
	Enrollment `bson:",inline"`
	Course     *EnrollmentCourseRef `json:"course,omitempty" bson:"course,omitempty"`
	Student    *EnrollmentUserRef   `json:"student,omitempty" bson:"student,omitempty"`
	Approver   *EnrollmentUserRef   `json:"approver,omitempty" bson:"approver,omitempty"`
}

type EnrollmentCourseRef struct {
	Title          string         `json:"title" bson:"title"`
	CourseCategory CourseCategory `json:"course_category" bson:"course_category"`
	Price          float64        `json:"price" bson:"price"`
}

type EnrollmentUserRef struct {
	Name  string `json:"name" bson:"name"`
	Email string `json:"email,omitempty" bson:"email,omitempty"`
}
