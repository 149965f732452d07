package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CarouselImage is a homepage feature image managed by admins.
type CarouselImage struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title     string             `json:"title,omitempty" bson:"title,omitempty"`
	ImageURL  string             `json:"image_url" bson:"image_url"`
	PublicID  string             `json:"public_id" bson:"public_id"`
	Order     int                `json:"order" bson:"order"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}
