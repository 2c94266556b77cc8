package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the single document kind in the system. Tweets are referenced by
// opaque id only and never modeled here.
type User struct {
	ID           primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Name         string               `json:"name" bson:"name"`
	Username     string               `json:"username" bson:"username"`
	Email        string               `json:"email" bson:"email"`
	PasswordHash string               `json:"-" bson:"password_hash"` // Never expose in JSON
	Followers    []primitive.ObjectID `json:"followers" bson:"followers"`
	Following    []primitive.ObjectID `json:"following" bson:"following"`
	Bookmarks    []string             `json:"bookmarks" bson:"bookmarks"`
	CreatedAt    time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at" bson:"updated_at"`
}
