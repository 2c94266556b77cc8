package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "chirp/internal/errors"
	"chirp/internal/model"
)

const usersCollection = "users"

// UserRepository defines user persistence operations. The guarded mutators
// (AddFollower, RemoveFollowing, RemoveBookmark) are conditional single
// document updates: they report false and leave the document untouched
// when the membership precondition does not hold, so two concurrent
// requests on the same pair cannot double-apply a toggle.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindAllExcept(ctx context.Context, id primitive.ObjectID) ([]model.User, error)
	AddFollower(ctx context.Context, targetID, actorID primitive.ObjectID) (bool, error)
	AddFollowing(ctx context.Context, actorID, targetID primitive.ObjectID) error
	RemoveFollowing(ctx context.Context, actorID, targetID primitive.ObjectID) (bool, error)
	RemoveFollower(ctx context.Context, targetID, actorID primitive.ObjectID) error
	AddBookmark(ctx context.Context, userID primitive.ObjectID, itemID string) error
	RemoveBookmark(ctx context.Context, userID primitive.ObjectID, itemID string) (bool, error)
	EnsureIndexes(ctx context.Context) error
}

type userRepository struct {
	coll *mongo.Collection
}

// NewUserRepository builds a MongoDB-backed repository.
func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepository{coll: db.Collection(usersCollection)}
}

// EnsureIndexes creates the unique email index backing the one-account-per-
// email invariant.
func (r *userRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Followers == nil {
		user.Followers = []primitive.ObjectID{}
	}
	if user.Following == nil {
		user.Following = []primitive.ObjectID{}
	}
	if user.Bookmarks == nil {
		user.Bookmarks = []string{}
	}

	_, err := r.coll.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return apperrors.ErrUserAlreadyExists
	}
	return err
}

func (r *userRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	var user model.User
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, apperrors.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, apperrors.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindAllExcept(ctx context.Context, id primitive.ObjectID) ([]model.User, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$ne": id}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []model.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// AddFollower adds actor to target's follower set. Returns false without
// mutating when actor is already present.
func (r *userRepository) AddFollower(ctx context.Context, targetID, actorID primitive.ObjectID) (bool, error) {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": targetID, "followers": bson.M{"$ne": actorID}},
		bson.M{
			"$addToSet": bson.M{"followers": actorID},
			"$set":      bson.M{"updated_at": time.Now()},
		})
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

func (r *userRepository) AddFollowing(ctx context.Context, actorID, targetID primitive.ObjectID) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": actorID},
		bson.M{
			"$addToSet": bson.M{"following": targetID},
			"$set":      bson.M{"updated_at": time.Now()},
		})
	return err
}

// RemoveFollowing removes target from actor's following set. Returns false
// without mutating when target is not present.
func (r *userRepository) RemoveFollowing(ctx context.Context, actorID, targetID primitive.ObjectID) (bool, error) {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": actorID, "following": targetID},
		bson.M{
			"$pull": bson.M{"following": targetID},
			"$set":  bson.M{"updated_at": time.Now()},
		})
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

func (r *userRepository) RemoveFollower(ctx context.Context, targetID, actorID primitive.ObjectID) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": targetID},
		bson.M{
			"$pull": bson.M{"followers": actorID},
			"$set":  bson.M{"updated_at": time.Now()},
		})
	return err
}

func (r *userRepository) AddBookmark(ctx context.Context, userID primitive.ObjectID, itemID string) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{
			"$addToSet": bson.M{"bookmarks": itemID},
			"$set":      bson.M{"updated_at": time.Now()},
		})
	return err
}

// RemoveBookmark removes itemID from the user's bookmark set. Returns false
// without mutating when the item is not bookmarked.
func (r *userRepository) RemoveBookmark(ctx context.Context, userID primitive.ObjectID, itemID string) (bool, error) {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": userID, "bookmarks": itemID},
		bson.M{
			"$pull": bson.M{"bookmarks": itemID},
			"$set":  bson.M{"updated_at": time.Now()},
		})
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}
