package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Module is an ordered content unit (video + description) belonging to
// exactly one course. (course, module_number) is unique among non-deleted
// modules, enforced by a partial unique index at the collection level.
type Module struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Description  string             `json:"description" bson:"description"`
	ModuleNumber int                `json:"module_number" bson:"module_number"`
	VideoURL     string             `json:"video_url" bson:"video_url"`
	Course       primitive.ObjectID `json:"course" bson:"course"`
	IsCompleted  bool               `json:"is_completed" bson:"is_completed"`
	IsDeleted    bool               `json:"is_deleted" bson:"is_deleted"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`
}
