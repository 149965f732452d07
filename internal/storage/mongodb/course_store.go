// Package mongodb implements the storage interfaces on the mongo driver.
package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/habib-153/oddlogy-server/internal/models"
	"github.com/habib-153/oddlogy-server/internal/query"
	"github.com/habib-153/oddlogy-server/internal/storage"
)

type CourseStore struct {
	client  *mongo.Client
	courses *mongo.Collection
	modules *mongo.Collection
	users   *mongo.Collection
}

func NewCourseStore(client *mongo.Client, dbName string) *CourseStore {
	db := client.Database(dbName)
	return &CourseStore{
		client:  client,
		courses: db.Collection("courses"),
		modules: db.Collection("modules"),
		users:   db.Collection("users"),
	}
}

func (s *CourseStore) Insert(ctx context.Context, course *models.Course) error {
	_, err := s.courses.InsertOne(ctx, course)
	return err
}

func (s *CourseStore) List(ctx context.Context, opts query.Options) ([]models.Course, int64, error) {
	total, err := s.courses.CountDocuments(ctx, opts.Filter)
	if err != nil {
		return nil, 0, err
	}

	cursor, err := s.courses.Find(ctx, opts.Filter, opts.Find)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	courses := []models.Course{}
	if err = cursor.All(ctx, &courses); err != nil {
		return nil, 0, err
	}
	return courses, total, nil
}

func (s *CourseStore) ListHome(ctx context.Context, limit int) ([]models.Course, error) {
	findOpts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetProjection(bson.M{
			"title":            1,
			"description":      1,
			"course_type":      1,
			"course_category":  1,
			"media":            1,
			"price":            1,
			"sale_price":       1,
			"student_enrolled": 1,
			"created_at":       1,
		})

	cursor, err := s.courses.Find(ctx, bson.M{"is_deleted": false}, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	courses := []models.Course{}
	if err = cursor.All(ctx, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func (s *CourseStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Course, error) {
	var course models.Course
	err := s.courses.FindOne(ctx, bson.M{"_id": id, "is_deleted": false}).Decode(&course)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &course, nil
}

// GetDetail populates the instructor profile and the non-deleted modules,
// sorted by module_number. Soft-deleted modules never survive this join.
func (s *CourseStore) GetDetail(ctx context.Context, id primitive.ObjectID) (*models.CourseDetail, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": id, "is_deleted": false}}},
		{{Key: "$lookup", Value: bson.M{
			"from":     "users",
			"let":      bson.M{"instructorId": "$instructor"},
			"pipeline": bson.A{
				bson.M{"$match": bson.M{"$expr": bson.M{"$eq": bson.A{"$_id", "$$instructorId"}}}},
				bson.M{"$project": bson.M{
					"_id":            0,
					"name":           1,
					"email":          1,
					"profile_photo":  1,
					"designation":    1,
					"qualifications": 1,
					"specialization": 1,
					"bio":            1,
				}},
			},
			"as": "instructor_info",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$instructor_info", "preserveNullAndEmptyArrays": true}}},
		{{Key: "$lookup", Value: bson.M{
			"from": "modules",
			"let":  bson.M{"courseId": "$_id"},
			"pipeline": bson.A{
				bson.M{"$match": bson.M{
					"$expr":      bson.M{"$eq": bson.A{"$course", "$$courseId"}},
					"is_deleted": false,
				}},
				bson.M{"$sort": bson.M{"module_number": 1}},
			},
			"as": "module_list",
		}}},
	}

	cursor, err := s.courses.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []models.CourseDetail
	if err = cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, storage.ErrNotFound
	}
	return &results[0], nil
}

func (s *CourseStore) Update(ctx context.Context, id primitive.ObjectID, set bson.M) error {
	res, err := s.courses.UpdateOne(ctx, bson.M{"_id": id, "is_deleted": false}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// SoftDeleteCascade marks the course deleted, then every module of the
// course. The two updates are sequential, not transactional; module reads
// filter on is_deleted anyway.
func (s *CourseStore) SoftDeleteCascade(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.courses.UpdateOne(ctx, bson.M{"_id": id, "is_deleted": false},
		bson.M{"$set": bson.M{"is_deleted": true}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return storage.ErrNotFound
	}

	_, err = s.modules.UpdateMany(ctx, bson.M{"course": id},
		bson.M{"$set": bson.M{"is_deleted": true}})
	return err
}

func (s *CourseStore) ListByStudent(ctx context.Context, studentID primitive.ObjectID) ([]models.Course, error) {
	cursor, err := s.courses.Find(ctx, bson.M{"students": studentID, "is_deleted": false})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	courses := []models.Course{}
	if err = cursor.All(ctx, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

// EnrollStudent applies the course-side and user-side writes of a direct
// enrollment in one transaction; any failure aborts both.
func (s *CourseStore) EnrollStudent(ctx context.Context, courseID, studentID primitive.ObjectID) error {
	session, err := s.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		res, err := s.courses.UpdateOne(sc,
			bson.M{"_id": courseID, "is_deleted": false},
			bson.M{"$addToSet": bson.M{"students": studentID}})
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 0 {
			return nil, storage.ErrNotFound
		}
		// Only bump the counter when the student was actually added.
		if res.ModifiedCount == 1 {
			if _, err := s.courses.UpdateOne(sc,
				bson.M{"_id": courseID},
				bson.M{"$inc": bson.M{"student_enrolled": 1}}); err != nil {
				return nil, err
			}
		}

		res, err = s.users.UpdateOne(sc,
			bson.M{"_id": studentID, "is_deleted": false},
			bson.M{"$addToSet": bson.M{"enrolled_courses": courseID}})
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 0 {
			return nil, storage.ErrNotFound
		}
		return nil, nil
	})
	return err
}

func (s *CourseStore) PushModule(ctx context.Context, courseID, moduleID primitive.ObjectID) error {
	res, err := s.courses.UpdateOne(ctx, bson.M{"_id": courseID, "is_deleted": false},
		bson.M{"$push": bson.M{"modules": moduleID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// InstructorCourses joins modules and approved enrollments (with their
// student profiles) onto each of the instructor's courses. student_enrolled
// is recomputed from the joined enrollments rather than read from the stored
// counter.
func (s *CourseStore) InstructorCourses(ctx context.Context, instructorID primitive.ObjectID) ([]models.InstructorCourse, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"instructor": instructorID, "is_deleted": false}}},
		{{Key: "$lookup", Value: bson.M{
			"from": "users",
			"let":  bson.M{"instructorId": "$instructor"},
			"pipeline": bson.A{
				bson.M{"$match": bson.M{"$expr": bson.M{"$eq": bson.A{"$_id", "$$instructorId"}}}},
				bson.M{"$project": bson.M{
					"_id":            0,
					"name":           1,
					"email":          1,
					"profile_photo":  1,
					"designation":    1,
					"qualifications": 1,
					"specialization": 1,
					"bio":            1,
				}},
			},
			"as": "instructor_info",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$instructor_info", "preserveNullAndEmptyArrays": true}}},
		{{Key: "$lookup", Value: bson.M{
			"from": "modules",
			"let":  bson.M{"courseId": "$_id"},
			"pipeline": bson.A{
				bson.M{"$match": bson.M{
					"$expr":      bson.M{"$eq": bson.A{"$course", "$$courseId"}},
					"is_deleted": false,
				}},
				bson.M{"$sort": bson.M{"module_number": 1}},
			},
			"as": "module_list",
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from": "enrollments",
			"let":  bson.M{"courseId": "$_id"},
			"pipeline": bson.A{
				bson.M{"$match": bson.M{
					"$expr":      bson.M{"$eq": bson.A{"$course_id", "$$courseId"}},
					"status":     models.EnrollmentApproved,
					"is_deleted": false,
				}},
				bson.M{"$lookup": bson.M{
					"from":         "users",
					"localField":   "student_id",
					"foreignField": "_id",
					"as":           "student",
				}},
				bson.M{"$unwind": "$student"},
				bson.M{"$replaceRoot": bson.M{"newRoot": "$student"}},
				bson.M{"$project": bson.M{
					"_id":           0,
					"name":          1,
					"email":         1,
					"profile_photo": 1,
				}},
			},
			"as": "enrolled_students",
		}}},
		{{Key: "$addFields", Value: bson.M{
			"student_enrolled": bson.M{"$size": "$enrolled_students"},
			"module_count":     bson.M{"$size": "$module_list"},
		}}},
		{{Key: "$sort", Value: bson.M{"created_at": -1}}},
	}

	cursor, err := s.courses.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	results := []models.InstructorCourse{}
	if err = cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}
