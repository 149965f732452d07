package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/habib-153/oddlogy-server/internal/apperror"
	"github.com/habib-153/oddlogy-server/internal/models"
)

type instructorFixture struct {
	db         *fakeDB
	service    *InstructorService
	instructor *models.User
}

func newInstructorFixture() *instructorFixture {
	db := newFakeDB()
	instructor := &models.User{
		ID:    primitive.NewObjectID(),
		Name:  "Dr. Karim",
		Email: "karim@oddlogy.com",
		Role:  models.RoleInstructor,
	}
	db.users[instructor.ID] = instructor
	return &instructorFixture{
		db:         db,
		service:    NewInstructorService(&fakeUserStore{db}, &fakeCourseStore{db}),
		instructor: instructor,
	}
}

func TestGetInstructorRejectsOtherRoles(t *testing.T) {
	f := newInstructorFixture()
	student := &models.User{ID: primitive.NewObjectID(), Name: "Rahim", Role: models.RoleUser}
	f.db.users[student.ID] = student

	_, err := f.service.Get(context.Background(), student.ID.Hex())
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperror.StatusOf(err))

	got, err := f.service.Get(context.Background(), f.instructor.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Dr. Karim", got.Name)
}

func TestUpdateInstructorProfile(t *testing.T) {
	f := newInstructorFixture()

	bio := "Teaching Go since 2015"
	updated, err := f.service.Update(context.Background(), f.instructor.ID.Hex(), UpdateInstructorInput{Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, bio, updated.Bio)

	_, err = f.service.Update(context.Background(), f.instructor.ID.Hex(), UpdateInstructorInput{})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperror.StatusOf(err))
}

func TestDeleteInstructor(t *testing.T) {
	f := newInstructorFixture()

	require.NoError(t, f.service.Delete(context.Background(), f.instructor.ID.Hex()))
	assert.True(t, f.instructor.IsDeleted)

	_, err := f.service.Get(context.Background(), f.instructor.ID.Hex())
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperror.StatusOf(err))
}

// The dashboard must derive enrollment counts from approved, non-deleted
// enrollments, not from the stored counter.
func TestMyCoursesRecomputesEnrollmentCount(t *testing.T) {
	f := newInstructorFixture()
	ctx := context.Background()

	course := &models.Course{
		ID:              primitive.NewObjectID(),
		Title:           "Go Masterclass",
		Instructor:      f.instructor.ID,
		StudentEnrolled: 42, // stale by design
	}
	f.db.courses[course.ID] = course

	for _, number := range []int{2, 1} {
		module := &models.Module{ID: primitive.NewObjectID(), Name: "M", ModuleNumber: number, Course: course.ID}
		f.db.modules[module.ID] = module
	}

	addEnrollment := func(status models.EnrollmentStatus, deleted bool) {
		student := &models.User{ID: primitive.NewObjectID(), Name: "S", Email: "s@example.com", Role: models.RoleUser}
		f.db.users[student.ID] = student
		e := &models.Enrollment{
			ID:        primitive.NewObjectID(),
			CourseID:  course.ID,
			StudentID: student.ID,
			Status:    status,
			IsDeleted: deleted,
		}
		f.db.enrollments[e.ID] = e
	}
	addEnrollment(models.EnrollmentApproved, false)
	addEnrollment(models.EnrollmentApproved, false)
	addEnrollment(models.EnrollmentPending, false)
	addEnrollment(models.EnrollmentRejected, false)
	addEnrollment(models.EnrollmentApproved, true)

	rows, err := f.service.MyCourses(ctx, f.instructor.Email)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, 2, row.StudentEnrolled)
	assert.Len(t, row.EnrolledStudents, 2)
	assert.Equal(t, 2, row.ModuleCount)
	require.Len(t, row.ModuleList, 2)
	assert.Equal(t, 1, row.ModuleList[0].ModuleNumber)
}

func TestMyCoursesUnknownEmail(t *testing.T) {
	f := newInstructorFixture()

	_, err := f.service.MyCourses(context.Background(), "nobody@oddlogy.com")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperror.StatusOf(err))
	assert.EqualError(t, err, "Instructor not found")
}

func TestListInstructors(t *testing.T) {
	f := newInstructorFixture()
	student := &models.User{ID: primitive.NewObjectID(), Role: models.RoleUser}
	f.db.users[student.ID] = student

	instructors, err := f.service.List(context.Background())
	require.NoError(t, err)
	require.Len(t, instructors, 1)
	assert.Equal(t, models.RoleInstructor, instructors[0].Role)
}
