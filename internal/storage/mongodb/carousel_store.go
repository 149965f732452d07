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

type CarouselStore struct {
	images *mongo.Collection
}

func NewCarouselStore(client *mongo.Client, dbName string) *CarouselStore {
	return &CarouselStore{images: client.Database(dbName).Collection("carousel_images")}
}

func (s *CarouselStore) Insert(ctx context.Context, image *models.CarouselImage) error {
	_, err := s.images.InsertOne(ctx, image)
	return err
}

func (s *CarouselStore) List(ctx context.Context) ([]models.CarouselImage, error) {
	findOpts := options.Find().SetSort(bson.D{
		{Key: "order", Value: 1},
		{Key: "created_at", Value: -1},
	})
	cursor, err := s.images.Find(ctx, bson.M{}, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	images := []models.CarouselImage{}
	if err = cursor.All(ctx, &images); err != nil {
		return nil, err
	}
	return images, nil
}

// Delete removes the record and returns it so the caller can clean up the
// uploaded asset.
func (s *CarouselStore) Delete(ctx context.Context, id primitive.ObjectID) (*models.CarouselImage, error) {
	var image models.CarouselImage
	err := s.images.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&image)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &image, nil
}
