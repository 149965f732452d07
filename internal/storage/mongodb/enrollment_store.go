package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/habib-153/oddlogy-server/internal/models"
	"github.com/habib-153/oddlogy-server/internal/storage"
)

type EnrollmentStore struct {
	client      *mongo.Client
	enrollments *mongo.Collection
	courses     *mongo.Collection
	users       *mongo.Collection
}

func NewEnrollmentStore(client *mongo.Client, dbName string) *EnrollmentStore {
	db := client.Database(dbName)
	return &EnrollmentStore{
		client:      client,
		enrollments: db.Collection("enrollments"),
		courses:     db.Collection("courses"),
		users:       db.Collection("users"),
	}
}

func (s *EnrollmentStore) Insert(ctx context.Context, enrollment *models.Enrollment) error {
	_, err := s.enrollments.InsertOne(ctx, enrollment)
	return err
}

func (s *EnrollmentStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	err := s.enrollments.FindOne(ctx, bson.M{"_id": id, "is_deleted": false}).Decode(&enrollment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &enrollment, nil
}

func (s *EnrollmentStore) FindActive(ctx context.Context, courseID, studentID primitive.ObjectID) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	err := s.enrollments.FindOne(ctx, bson.M{
		"course_id":  courseID,
		"student_id": studentID,
		"is_deleted": false,
	}).Decode(&enrollment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &enrollment, nil
}

// List populates course, student and approver references and sorts
// newest-first by enrollment date.
func (s *EnrollmentStore) List(ctx context.Context, filter storage.EnrollmentFilter) ([]models.EnrollmentView, error) {
	match := bson.M{"is_deleted": false}
	if filter.Status != "" {
		match["status"] = filter.Status
	}
	if filter.CourseID != nil {
		match["course_id"] = *filter.CourseID
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.M{"enrollment_date": -1}}},
		{{Key: "$lookup", Value: bson.M{
			"from": "courses",
			"let":  bson.M{"courseId": "$course_id"},
			"pipeline": bson.A{
				bson.M{"$match": bson.M{"$expr": bson.M{"$eq": bson.A{"$_id", "$$courseId"}}}},
				bson.M{"$project": bson.M{"_id": 0, "title": 1, "course_category": 1, "price": 1}},
			},
			"as": "course",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$course", "preserveNullAndEmptyArrays": true}}},
		{{Key: "$lookup", Value: bson.M{
			"from": "users",
			"let":  bson.M{"studentId": "$student_id"},
			"pipeline": bson.A{
				bson.M{"$match": bson.M{"$expr": bson.M{"$eq": bson.A{"$_id", "$$studentId"}}}},
				bson.M{"$project": bson.M{"_id": 0, "name": 1, "email": 1}},
			},
			"as": "student",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$student", "preserveNullAndEmptyArrays": true}}},
		{{Key: "$lookup", Value: bson.M{
			"from": "users",
			"let":  bson.M{"approverId": "$approved_by"},
			"pipeline": bson.A{
				bson.M{"$match": bson.M{"$expr": bson.M{"$eq": bson.A{"$_id", "$$approverId"}}}},
				bson.M{"$project": bson.M{"_id": 0, "name": 1}},
			},
			"as": "approver",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$approver", "preserveNullAndEmptyArrays": true}}},
	}

	cursor, err := s.enrollments.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	views := []models.EnrollmentView{}
	if err = cursor.All(ctx, &views); err != nil {
		return nil, err
	}
	return views, nil
}

// Approve transitions the enrollment to approved and applies the course and
// user side effects in one transaction. The status filter inside the update
// keeps the transition single-shot even under a concurrent approval.
func (s *EnrollmentStore) Approve(ctx context.Context, enrollment *models.Enrollment, approvedBy primitive.ObjectID) error {
	session, err := s.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	now := time.Now()
	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		res, err := s.enrollments.UpdateOne(sc,
			bson.M{"_id": enrollment.ID, "status": models.EnrollmentPending, "is_deleted": false},
			bson.M{"$set": bson.M{
				"status":        models.EnrollmentApproved,
				"approved_by":   approvedBy,
				"approval_date": now,
			}})
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 0 {
			return nil, storage.ErrNotFound
		}

		res, err = s.courses.UpdateOne(sc,
			bson.M{"_id": enrollment.CourseID, "is_deleted": false},
			bson.M{"$addToSet": bson.M{"students": enrollment.StudentID}})
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 0 {
			return nil, storage.ErrNotFound
		}
		if res.ModifiedCount == 1 {
			if _, err := s.courses.UpdateOne(sc,
				bson.M{"_id": enrollment.CourseID},
				bson.M{"$inc": bson.M{"student_enrolled": 1}}); err != nil {
				return nil, err
			}
		}

		if _, err := s.users.UpdateOne(sc,
			bson.M{"_id": enrollment.StudentID},
			bson.M{"$addToSet": bson.M{"enrolled_courses": enrollment.CourseID}}); err != nil {
			return nil, err
		}
		return nil, nil
	})
	return err
}

func (s *EnrollmentStore) Reject(ctx context.Context, id primitive.ObjectID, rejectedBy primitive.ObjectID, reason string) error {
	res, err := s.enrollments.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.EnrollmentPending, "is_deleted": false},
		bson.M{"$set": bson.M{
			"status":           models.EnrollmentRejected,
			"approved_by":      rejectedBy,
			"approval_date":    time.Now(),
			"rejection_reason": reason,
		}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}
