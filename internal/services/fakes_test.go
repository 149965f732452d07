package services

import (
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/habib-153/oddlogy-server/internal/models"
	"github.com/habib-153/oddlogy-server/internal/query"
	"github.com/habib-153/oddlogy-server/internal/storage"
)

// fakeDB backs the in-memory store fakes. Error fields inject failures to
// exercise the all-or-nothing paths.
type fakeDB struct {
	courses     map[primitive.ObjectID]*models.Course
	modules     map[primitive.ObjectID]*models.Module
	enrollments map[primitive.ObjectID]*models.Enrollment
	users       map[primitive.ObjectID]*models.User

	enrollErr  error
	approveErr error
	pushErr    error
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		courses:     map[primitive.ObjectID]*models.Course{},
		modules:     map[primitive.ObjectID]*models.Module{},
		enrollments: map[primitive.ObjectID]*models.Enrollment{},
		users:       map[primitive.ObjectID]*models.User{},
	}
}

func (db *fakeDB) addToSet(set []primitive.ObjectID, id primitive.ObjectID) ([]primitive.ObjectID, bool) {
	for _, existing := range set {
		if existing == id {
			return set, false
		}
	}
	return append(set, id), true
}

// ---- CourseStore ----

type fakeCourseStore struct{ db *fakeDB }

var _ storage.CourseStore = (*fakeCourseStore)(nil)

func (s *fakeCourseStore) Insert(_ context.Context, course *models.Course) error {
	s.db.courses[course.ID] = course
	return nil
}

func (s *fakeCourseStore) List(_ context.Context, _ query.Options) ([]models.Course, int64, error) {
	out := []models.Course{}
	for _, c := range s.db.courses {
		if !c.IsDeleted {
			out = append(out, *c)
		}
	}
	return out, int64(len(out)), nil
}

func (s *fakeCourseStore) ListHome(ctx context.Context, limit int) ([]models.Course, error) {
	out, _, err := s.List(ctx, query.Options{})
	if err != nil {
		return nil, err
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *fakeCourseStore) GetByID(_ context.Context, id primitive.ObjectID) (*models.Course, error) {
	course, ok := s.db.courses[id]
	if !ok || course.IsDeleted {
		return nil, storage.ErrNotFound
	}
	copied := *course
	return &copied, nil
}

func (s *fakeCourseStore) GetDetail(ctx context.Context, id primitive.ObjectID) (*models.CourseDetail, error) {
	course, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := &models.CourseDetail{Course: *course, ModuleList: []models.Module{}}
	if instructor, ok := s.db.users[course.Instructor]; ok {
		detail.InstructorInfo = &models.InstructorRef{Name: instructor.Name, Email: instructor.Email}
	}
	for _, m := range s.db.modules {
		if m.Course == id && !m.IsDeleted {
			detail.ModuleList = append(detail.ModuleList, *m)
		}
	}
	sort.Slice(detail.ModuleList, func(i, j int) bool {
		return detail.ModuleList[i].ModuleNumber < detail.ModuleList[j].ModuleNumber
	})
	return detail, nil
}

func (s *fakeCourseStore) Update(_ context.Context, id primitive.ObjectID, set bson.M) error {
	course, ok := s.db.courses[id]
	if !ok || course.IsDeleted {
		return storage.ErrNotFound
	}
	if title, ok := set["title"].(string); ok {
		course.Title = title
	}
	return nil
}

func (s *fakeCourseStore) SoftDeleteCascade(_ context.Context, id primitive.ObjectID) error {
	course, ok := s.db.courses[id]
	if !ok || course.IsDeleted {
		return storage.ErrNotFound
	}
	course.IsDeleted = true
	for _, m := range s.db.modules {
		if m.Course == id {
			m.IsDeleted = true
		}
	}
	return nil
}

func (s *fakeCourseStore) ListByStudent(_ context.Context, studentID primitive.ObjectID) ([]models.Course, error) {
	out := []models.Course{}
	for _, c := range s.db.courses {
		if c.IsDeleted {
			continue
		}
		for _, student := range c.Students {
			if student == studentID {
				out = append(out, *c)
				break
			}
		}
	}
	return out, nil
}

func (s *fakeCourseStore) EnrollStudent(_ context.Context, courseID, studentID primitive.ObjectID) error {
	if s.db.enrollErr != nil {
		return s.db.enrollErr
	}
	course, ok := s.db.courses[courseID]
	if !ok || course.IsDeleted {
		return storage.ErrNotFound
	}
	user, ok := s.db.users[studentID]
	if !ok || user.IsDeleted {
		return storage.ErrNotFound
	}
	var added bool
	course.Students, added = s.db.addToSet(course.Students, studentID)
	if added {
		course.StudentEnrolled++
	}
	user.EnrolledCourses, _ = s.db.addToSet(user.EnrolledCourses, courseID)
	return nil
}

func (s *fakeCourseStore) PushModule(_ context.Context, courseID, moduleID primitive.ObjectID) error {
	if s.db.pushErr != nil {
		return s.db.pushErr
	}
	course, ok := s.db.courses[courseID]
	if !ok || course.IsDeleted {
		return storage.ErrNotFound
	}
	course.Modules = append(course.Modules, moduleID)
	return nil
}

// InstructorCourses mirrors the aggregation contract: modules sorted by
// number, students joined through approved non-deleted enrollments, and
// student_enrolled recomputed from those enrollments.
func (s *fakeCourseStore) InstructorCourses(ctx context.Context, instructorID primitive.ObjectID) ([]models.InstructorCourse, error) {
	out := []models.InstructorCourse{}
	for _, c := range s.db.courses {
		if c.IsDeleted || c.Instructor != instructorID {
			continue
		}
		row := models.InstructorCourse{Course: *c, ModuleList: []models.Module{}, EnrolledStudents: []models.EnrolledStudent{}}
		for _, m := range s.db.modules {
			if m.Course == c.ID && !m.IsDeleted {
				row.ModuleList = append(row.ModuleList, *m)
			}
		}
		sort.Slice(row.ModuleList, func(i, j int) bool {
			return row.ModuleList[i].ModuleNumber < row.ModuleList[j].ModuleNumber
		})
		for _, e := range s.db.enrollments {
			if e.CourseID != c.ID || e.Status != models.EnrollmentApproved || e.IsDeleted {
				continue
			}
			if student, ok := s.db.users[e.StudentID]; ok {
				row.EnrolledStudents = append(row.EnrolledStudents, models.EnrolledStudent{
					Name: student.Name, Email: student.Email,
				})
			}
		}
		row.StudentEnrolled = len(row.EnrolledStudents)
		row.ModuleCount = len(row.ModuleList)
		out = append(out, row)
	}
	return out, nil
}

// ---- ModuleStore ----

type fakeModuleStore struct{ db *fakeDB }

var _ storage.ModuleStore = (*fakeModuleStore)(nil)

func (s *fakeModuleStore) Insert(_ context.Context, module *models.Module) error {
	for _, m := range s.db.modules {
		if m.Course == module.Course && m.ModuleNumber == module.ModuleNumber && !m.IsDeleted {
			return storage.ErrDuplicate
		}
	}
	s.db.modules[module.ID] = module
	return nil
}

func (s *fakeModuleStore) List(_ context.Context) ([]models.Module, error) {
	out := []models.Module{}
	for _, m := range s.db.modules {
		if !m.IsDeleted {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (s *fakeModuleStore) GetByID(_ context.Context, id primitive.ObjectID) (*models.Module, error) {
	module, ok := s.db.modules[id]
	if !ok || module.IsDeleted {
		return nil, storage.ErrNotFound
	}
	copied := *module
	return &copied, nil
}

func (s *fakeModuleStore) Update(_ context.Context, id primitive.ObjectID, set bson.M) error {
	module, ok := s.db.modules[id]
	if !ok || module.IsDeleted {
		return storage.ErrNotFound
	}
	if name, ok := set["name"].(string); ok {
		module.Name = name
	}
	if completed, ok := set["is_completed"].(bool); ok {
		module.IsCompleted = completed
	}
	return nil
}

func (s *fakeModuleStore) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	module, ok := s.db.modules[id]
	if !ok || module.IsDeleted {
		return storage.ErrNotFound
	}
	module.IsDeleted = true
	return nil
}

func (s *fakeModuleStore) ListByCourse(_ context.Context, courseID primitive.ObjectID) ([]models.Module, error) {
	out := []models.Module{}
	for _, m := range s.db.modules {
		if m.Course == courseID && !m.IsDeleted {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ModuleNumber < out[j].ModuleNumber })
	return out, nil
}

// ---- EnrollmentStore ----

type fakeEnrollmentStore struct{ db *fakeDB }

var _ storage.EnrollmentStore = (*fakeEnrollmentStore)(nil)

func (s *fakeEnrollmentStore) Insert(_ context.Context, enrollment *models.Enrollment) error {
	s.db.enrollments[enrollment.ID] = enrollment
	return nil
}

func (s *fakeEnrollmentStore) GetByID(_ context.Context, id primitive.ObjectID) (*models.Enrollment, error) {
	enrollment, ok := s.db.enrollments[id]
	if !ok || enrollment.IsDeleted {
		return nil, storage.ErrNotFound
	}
	copied := *enrollment
	return &copied, nil
}

func (s *fakeEnrollmentStore) FindActive(_ context.Context, courseID, studentID primitive.ObjectID) (*models.Enrollment, error) {
	for _, e := range s.db.enrollments {
		if e.CourseID == courseID && e.StudentID == studentID && !e.IsDeleted {
			copied := *e
			return &copied, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *fakeEnrollmentStore) List(_ context.Context, filter storage.EnrollmentFilter) ([]models.EnrollmentView, error) {
	out := []models.EnrollmentView{}
	for _, e := range s.db.enrollments {
		if e.IsDeleted {
			continue
		}
		if filter.Status != "" && e.Status != filter.Status {
			continue
		}
		if filter.CourseID != nil && e.CourseID != *filter.CourseID {
			continue
		}
		view := models.EnrollmentView{Enrollment: *e}
		if course, ok := s.db.courses[e.CourseID]; ok {
			view.Course = &models.EnrollmentCourseRef{Title: course.Title, CourseCategory: course.CourseCategory, Price: course.Price}
		}
		if student, ok := s.db.users[e.StudentID]; ok {
			view.Student = &models.EnrollmentUserRef{Name: student.Name, Email: student.Email}
		}
		out = append(out, view)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].EnrollmentDate.After(out[j].EnrollmentDate)
	})
	return out, nil
}

func (s *fakeEnrollmentStore) Approve(_ context.Context, enrollment *models.Enrollment, approvedBy primitive.ObjectID) error {
	if s.db.approveErr != nil {
		return s.db.approveErr
	}
	stored, ok := s.db.enrollments[enrollment.ID]
	if !ok || stored.IsDeleted || stored.Status != models.EnrollmentPending {
		return storage.ErrNotFound
	}
	course, ok := s.db.courses[enrollment.CourseID]
	if !ok || course.IsDeleted {
		return storage.ErrNotFound
	}

	now := stored.EnrollmentDate
	stored.Status = models.EnrollmentApproved
	stored.ApprovedBy = approvedBy
	stored.ApprovalDate = &now

	var added bool
	course.Students, added = s.db.addToSet(course.Students, enrollment.StudentID)
	if added {
		course.StudentEnrolled++
	}
	if user, ok := s.db.users[enrollment.StudentID]; ok {
		user.EnrolledCourses, _ = s.db.addToSet(user.EnrolledCourses, enrollment.CourseID)
	}
	return nil
}

func (s *fakeEnrollmentStore) Reject(_ context.Context, id primitive.ObjectID, rejectedBy primitive.ObjectID, reason string) error {
	stored, ok := s.db.enrollments[id]
	if !ok || stored.IsDeleted || stored.Status != models.EnrollmentPending {
		return storage.ErrNotFound
	}
	now := stored.EnrollmentDate
	stored.Status = models.EnrollmentRejected
	stored.ApprovedBy = rejectedBy
	stored.ApprovalDate = &now
	stored.RejectionReason = reason
	return nil
}

// ---- UserStore ----

type fakeUserStore struct{ db *fakeDB }

var _ storage.UserStore = (*fakeUserStore)(nil)

func (s *fakeUserStore) GetByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	user, ok := s.db.users[id]
	if !ok || user.IsDeleted {
		return nil, storage.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range s.db.users {
		if u.Email == email && !u.IsDeleted {
			copied := *u
			return &copied, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *fakeUserStore) ListByRole(_ context.Context, role models.UserRole) ([]models.User, error) {
	out := []models.User{}
	for _, u := range s.db.users {
		if u.Role == role && !u.IsDeleted {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (s *fakeUserStore) Update(_ context.Context, id primitive.ObjectID, set bson.M) error {
	user, ok := s.db.users[id]
	if !ok || user.IsDeleted {
		return storage.ErrNotFound
	}
	if name, ok := set["name"].(string); ok {
		user.Name = name
	}
	if bio, ok := set["bio"].(string); ok {
		user.Bio = bio
	}
	return nil
}

func (s *fakeUserStore) SoftDelete(_ context.Context, id primitive.ObjectID) error {
	user, ok := s.db.users[id]
	if !ok || user.IsDeleted {
		return storage.ErrNotFound
	}
	user.IsDeleted = true
	return nil
}
