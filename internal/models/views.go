package models

// InstructorRef is the subset of instructor fields joined into course views.
type InstructorRef struct {
	Name           string `json:"name" bson:"name"`
	Email          string `json:"email" bson:"email"`
	ProfilePhoto   string `json:"profile_photo,omitempty" bson:"profile_photo,omitempty"`
	Designation    string `json:"designation,omitempty" bson:"designation,omitempty"`
	Qualifications string `json:"qualifications,omitempty" bson:"qualifications,omitempty"`
	Specialization string `json:"specialization,omitempty" bson:"specialization,omitempty"`
	Bio            string `json:"bio,omitempty" bson:"bio,omitempty"`
}

// CourseDetail is a course with instructor and non-deleted modules populated.
type CourseDetail struct {
	Course         `bson:",inline"`
	InstructorInfo *InstructorRef `json:"instructor_info,omitempty" bson:"instructor_info,omitempty"`
	ModuleList     []Module       `json:"module_list" bson:"module_list"`
}

// EnrolledStudent is a student profile joined through an approved enrollment.
type EnrolledStudent struct {
	Name         string `json:"name" bson:"name"`
	Email        string `json:"email" bson:"email"`
	ProfilePhoto string `json:"profile_photo,omitempty" bson:"profile_photo,omitempty"`
}

// InstructorCourse is one row of the instructor dashboard aggregation. The
// inline course's student_enrolled field is overwritten by the pipeline with
// the fresh count of approved, non-deleted enrollments.
type InstructorCourse struct {
	Course           `bson:",inline"`
	InstructorInfo   *InstructorRef    `json:"instructor_info,omitempty" bson:"instructor_info,omitempty"`
	ModuleList       []Module          `json:"module_list" bson:"module_list"`
	EnrolledStudents []EnrolledStudent `json:"enrolled_students" bson:"enrolled_students"`
	ModuleCount      int               `json:"module_count" bson:"module_count"`
}
