package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"chirp/internal/cache"
	apperrors "chirp/internal/errors"
	"chirp/internal/model"
	"chirp/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// BookmarkAction reports which way a bookmark toggle went.
type BookmarkAction string

const (
	// BookmarkSaved means the item was added to the bookmark set.
	BookmarkSaved BookmarkAction = "saved"
	// BookmarkRemoved means the item was removed from the bookmark set.
	BookmarkRemoved BookmarkAction = "removed"
)

// FollowResult names both parties of a follow/unfollow mutation.
type FollowResult struct {
	ActorName  string
	TargetName string
}

// UserService handles profile reads and relationship mutations.
type UserService interface {
	Profile(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	OtherUsers(ctx context.Context, id primitive.ObjectID) ([]model.User, error)
	Follow(ctx context.Context, actorID, targetID primitive.ObjectID) (*FollowResult, error)
	Unfollow(ctx context.Context, actorID, targetID primitive.ObjectID) (*FollowResult, error)
	ToggleBookmark(ctx context.Context, userID primitive.ObjectID, itemID string) (BookmarkAction, error)
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
}

// NewUserService creates a new user service.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{
		repo:  repo,
		cache: cache,
	}
}

func (s *userService) cacheKey(id primitive.ObjectID) string {
	return fmt.Sprintf("user:%s", id.Hex())
}

// Profile retrieves a user by id with caching.
func (s *userService) Profile(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, userCacheTTL)
	}

	return user, nil
}

// OtherUsers lists every user except the given one.
func (s *userService) OtherUsers(ctx context.Context, id primitive.ObjectID) ([]model.User, error) {
	users, err := s.repo.FindAllExcept(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, apperrors.ErrNoUsersFound
	}
	return users, nil
}

// Follow adds actor to target's follower set and target to actor's
// following set. The follower side runs first under a membership guard, so
// concurrent duplicate follows cannot both succeed.
func (s *userService) Follow(ctx context.Context, actorID, targetID primitive.ObjectID) (*FollowResult, error) {
	if actorID == targetID {
		return nil, apperrors.ErrSelfFollow
	}

	actor, err := s.repo.FindByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	target, err := s.repo.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	added, err := s.repo.AddFollower(ctx, targetID, actorID)
	if err != nil {
		return nil, fmt.Errorf("add follower: %w", err)
	}
	if !added {
		return nil, &apperrors.AlreadyFollowingError{Name: target.Name}
	}

	if err := s.repo.AddFollowing(ctx, actorID, targetID); err != nil {
		return nil, fmt.Errorf("add following: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(actorID), s.cacheKey(targetID))

	return &FollowResult{ActorName: actor.Name, TargetName: target.Name}, nil
}

// Unfollow reverses Follow. The following side runs first under a
// membership guard.
func (s *userService) Unfollow(ctx context.Context, actorID, targetID primitive.ObjectID) (*FollowResult, error) {
	actor, err := s.repo.FindByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	target, err := s.repo.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	removed, err := s.repo.RemoveFollowing(ctx, actorID, targetID)
	if err != nil {
		return nil, fmt.Errorf("remove following: %w", err)
	}
	if !removed {
		return nil, apperrors.ErrNotFollowing
	}

	if err := s.repo.RemoveFollower(ctx, targetID, actorID); err != nil {
		return nil, fmt.Errorf("remove follower: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(actorID), s.cacheKey(targetID))

	return &FollowResult{ActorName: actor.Name, TargetName: target.Name}, nil
}

// ToggleBookmark flips the item's membership in the user's bookmark set.
// The removal attempt doubles as the membership test, so each call flips
// state exactly once even under concurrent toggles.
func (s *userService) ToggleBookmark(ctx context.Context, userID primitive.ObjectID, itemID string) (BookmarkAction, error) {
	if _, err := s.repo.FindByID(ctx, userID); err != nil {
		return "", err
	}

	removed, err := s.repo.RemoveBookmark(ctx, userID, itemID)
	if err != nil {
		return "", fmt.Errorf("remove bookmark: %w", err)
	}
	if removed {
		_ = s.cache.Delete(ctx, s.cacheKey(userID))
		return BookmarkRemoved, nil
	}

	if err := s.repo.AddBookmark(ctx, userID, itemID); err != nil {
		return "", fmt.Errorf("add bookmark: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(userID))

	return BookmarkSaved, nil
}
