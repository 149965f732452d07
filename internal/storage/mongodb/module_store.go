package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/habib-153/oddlogy-server/internal/models"
	"github.com/habib-153/oddlogy-server/internal/storage"
)

type ModuleStore struct {
	modules *mongo.Collection
}

func NewModuleStore(client *mongo.Client, dbName string) *ModuleStore {
	return &ModuleStore{modules: client.Database(dbName).Collection("modules")}
}

// Insert relies on the partial unique index on (course, module_number); a
// duplicate key error is the uniqueness signal, not a prior check query.
func (s *ModuleStore) Insert(ctx context.Context, module *models.Module) error {
	_, err := s.modules.InsertOne(ctx, module)
	if mongo.IsDuplicateKeyError(err) {
		return storage.ErrDuplicate
	}
	return err
}

func (s *ModuleStore) List(ctx context.Context) ([]models.Module, error) {
	findOpts := options.Find().SetSort(bson.D{
		{Key: "course", Value: 1},
		{Key: "module_number", Value: 1},
	})
	cursor, err := s.modules.Find(ctx, bson.M{"is_deleted": false}, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	modules := []models.Module{}
	if err = cursor.All(ctx, &modules); err != nil {
		return nil, err
	}
	return modules, nil
}

func (s *ModuleStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Module, error) {
	var module models.Module
	err := s.modules.FindOne(ctx, bson.M{"_id": id, "is_deleted": false}).Decode(&module)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &module, nil
}

func (s *ModuleStore) Update(ctx context.Context, id primitive.ObjectID, set bson.M) error {
	res, err := s.modules.UpdateOne(ctx, bson.M{"_id": id, "is_deleted": false}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// SoftDelete leaves the module id in the parent course's modules array;
// population filters deleted modules out at read time.
func (s *ModuleStore) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	return s.Update(ctx, id, bson.M{"is_deleted": true})
}

func (s *ModuleStore) ListByCourse(ctx context.Context, courseID primitive.ObjectID) ([]models.Module, error) {
	findOpts := options.Find().SetSort(bson.D{{Key: "module_number", Value: 1}})
	cursor, err := s.modules.Find(ctx, bson.M{"course": courseID, "is_deleted": false}, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	modules := []models.Module{}
	if err = cursor.All(ctx, &modules); err != nil {
		return nil, err
	}
	return modules, nil
}
