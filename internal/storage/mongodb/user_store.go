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

type UserStore struct {
	users *mongo.Collection
}

func NewUserStore(client *mongo.Client, dbName string) *UserStore {
	return &UserStore{users: client.Database(dbName).Collection("users")}
}

func (s *UserStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, bson.M{"_id": id, "is_deleted": false}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, bson.M{"email": email, "is_deleted": false}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) ListByRole(ctx context.Context, role models.UserRole) ([]models.User, error) {
	findOpts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.users.Find(ctx, bson.M{"role": role, "is_deleted": false}, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UserStore) Update(ctx context.Context, id primitive.ObjectID, set bson.M) error {
	res, err := s.users.UpdateOne(ctx, bson.M{"_id": id, "is_deleted": false}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *UserStore) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	return s.Update(ctx, id, bson.M{"is_deleted": true})
}
