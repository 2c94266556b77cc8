package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	apperrors "chirp/internal/errors"
	"chirp/internal/model"
)

func TestUserService_Follow(t *testing.T) {
	actorID := primitive.NewObjectID()
	targetID := primitive.NewObjectID()
	actor := &model.User{ID: actorID, Name: "Ann"}
	target := &model.User{ID: targetID, Name: "Ben"}

	tests := []struct {
		name          string
		actorID       primitive.ObjectID
		targetID      primitive.ObjectID
		setupMock     func(*MockUserRepository)
		check         func(*testing.T, *FollowResult, error)
	}{
		{
			name:     "successful follow",
			actorID:  actorID,
			targetID: targetID,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, actorID).Return(actor, nil)
				m.On("FindByID", mock.Anything, targetID).Return(target, nil)
				m.On("AddFollower", mock.Anything, targetID, actorID).Return(true, nil)
				m.On("AddFollowing", mock.Anything, actorID, targetID).Return(nil)
			},
			check: func(t *testing.T, result *FollowResult, err error) {
				assert.NoError(t, err)
				assert.Equal(t, "Ann", result.ActorName)
				assert.Equal(t, "Ben", result.TargetName)
			},
		},
		{
			name:     "already following leaves state unchanged",
			actorID:  actorID,
			targetID: targetID,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, actorID).Return(actor, nil)
				m.On("FindByID", mock.Anything, targetID).Return(target, nil)
				m.On("AddFollower", mock.Anything, targetID, actorID).Return(false, nil)
			},
			check: func(t *testing.T, result *FollowResult, err error) {
				var alreadyFollowing *apperrors.AlreadyFollowingError
				assert.ErrorAs(t, err, &alreadyFollowing)
				assert.Equal(t, "Ben", alreadyFollowing.Name)
				assert.Equal(t, "User already followed Ben", err.Error())
				assert.Nil(t, result)
			},
		},
		{
			name:      "self follow rejected",
			actorID:   actorID,
			targetID:  actorID,
			setupMock: func(m *MockUserRepository) {},
			check: func(t *testing.T, result *FollowResult, err error) {
				assert.ErrorIs(t, err, apperrors.ErrSelfFollow)
				assert.Nil(t, result)
			},
		},
		{
			name:     "unknown target",
			actorID:  actorID,
			targetID: targetID,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, actorID).Return(actor, nil)
				m.On("FindByID", mock.Anything, targetID).Return(nil, apperrors.ErrUserNotFound)
			},
			check: func(t *testing.T, result *FollowResult, err error) {
				assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
				assert.Nil(t, result)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := NewUserService(mockRepo, nil)
			result, err := svc.Follow(context.Background(), tt.actorID, tt.targetID)

			tt.check(t, result, err)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_Unfollow(t *testing.T) {
	actorID := primitive.NewObjectID()
	targetID := primitive.NewObjectID()
	actor := &model.User{ID: actorID, Name: "Ann"}
	target := &model.User{ID: targetID, Name: "Ben"}

	t.Run("successful unfollow", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, actorID).Return(actor, nil)
		mockRepo.On("FindByID", mock.Anything, targetID).Return(target, nil)
		mockRepo.On("RemoveFollowing", mock.Anything, actorID, targetID).Return(true, nil)
		mockRepo.On("RemoveFollower", mock.Anything, targetID, actorID).Return(nil)

		svc := NewUserService(mockRepo, nil)
		result, err := svc.Unfollow(context.Background(), actorID, targetID)

		assert.NoError(t, err)
		assert.Equal(t, "Ann", result.ActorName)
		assert.Equal(t, "Ben", result.TargetName)
		mockRepo.AssertExpectations(t)
	})

	t.Run("not following", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, actorID).Return(actor, nil)
		mockRepo.On("FindByID", mock.Anything, targetID).Return(target, nil)
		mockRepo.On("RemoveFollowing", mock.Anything, actorID, targetID).Return(false, nil)

		svc := NewUserService(mockRepo, nil)
		result, err := svc.Unfollow(context.Background(), actorID, targetID)

		assert.ErrorIs(t, err, apperrors.ErrNotFollowing)
		assert.Nil(t, result)
		// RemoveFollower must not run when the guard fails
		mockRepo.AssertNotCalled(t, "RemoveFollower", mock.Anything, mock.Anything, mock.Anything)
		mockRepo.AssertExpectations(t)
	})
}

func TestUserService_ToggleBookmark(t *testing.T) {
	userID := primitive.NewObjectID()
	user := &model.User{ID: userID, Name: "Ann"}
	const tweetID = "tweet-42"

	t.Run("save when absent", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, userID).Return(user, nil)
		mockRepo.On("RemoveBookmark", mock.Anything, userID, tweetID).Return(false, nil)
		mockRepo.On("AddBookmark", mock.Anything, userID, tweetID).Return(nil)

		svc := NewUserService(mockRepo, nil)
		action, err := svc.ToggleBookmark(context.Background(), userID, tweetID)

		assert.NoError(t, err)
		assert.Equal(t, BookmarkSaved, action)
		mockRepo.AssertExpectations(t)
	})

	t.Run("remove when present", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, userID).Return(user, nil)
		mockRepo.On("RemoveBookmark", mock.Anything, userID, tweetID).Return(true, nil)

		svc := NewUserService(mockRepo, nil)
		action, err := svc.ToggleBookmark(context.Background(), userID, tweetID)

		assert.NoError(t, err)
		assert.Equal(t, BookmarkRemoved, action)
		mockRepo.AssertNotCalled(t, "AddBookmark", mock.Anything, mock.Anything, mock.Anything)
		mockRepo.AssertExpectations(t)
	})

	t.Run("unknown user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, userID).Return(nil, apperrors.ErrUserNotFound)

		svc := NewUserService(mockRepo, nil)
		action, err := svc.ToggleBookmark(context.Background(), userID, tweetID)

		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
		assert.Empty(t, action)
		mockRepo.AssertExpectations(t)
	})
}

func TestUserService_OtherUsers(t *testing.T) {
	userID := primitive.NewObjectID()

	t.Run("returns everyone else", func(t *testing.T) {
		others := []model.User{
			{ID: primitive.NewObjectID(), Name: "Ben"},
			{ID: primitive.NewObjectID(), Name: "Cara"},
		}
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindAllExcept", mock.Anything, userID).Return(others, nil)

		svc := NewUserService(mockRepo, nil)
		users, err := svc.OtherUsers(context.Background(), userID)

		assert.NoError(t, err)
		assert.Len(t, users, 2)
		mockRepo.AssertExpectations(t)
	})

	t.Run("empty result", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindAllExcept", mock.Anything, userID).Return([]model.User{}, nil)

		svc := NewUserService(mockRepo, nil)
		users, err := svc.OtherUsers(context.Background(), userID)

		assert.ErrorIs(t, err, apperrors.ErrNoUsersFound)
		assert.Nil(t, users)
		mockRepo.AssertExpectations(t)
	})
}

func TestUserService_Profile(t *testing.T) {
	userID := primitive.NewObjectID()

	t.Run("found", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID, Name: "Ann"}, nil)

		svc := NewUserService(mockRepo, nil)
		user, err := svc.Profile(context.Background(), userID)

		assert.NoError(t, err)
		assert.Equal(t, "Ann", user.Name)
		mockRepo.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, userID).Return(nil, apperrors.ErrUserNotFound)

		svc := NewUserService(mockRepo, nil)
		user, err := svc.Profile(context.Background(), userID)

		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
		assert.Nil(t, user)
		mockRepo.AssertExpectations(t)
	})
}
