package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	apperrors "chirp/internal/errors"
	"chirp/internal/service"
)

// UserHandler handles profile reads and relationship mutations.
type UserHandler struct {
	userService service.UserService
	log         *logrus.Logger
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService, log *logrus.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		log:         log,
	}
}

// ActorRequest carries the acting user's id in the request body, the way
// the frontend has always sent it.
type ActorRequest struct {
	ID string `json:"id" validate:"required"`
}

// Profile godoc
// @Summary Get a user profile
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /profile/{id} [get]
func (h *UserHandler) Profile(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{
			Message: "invalid user id",
		})
	}

	user, err := h.userService.Profile(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err, "profile")
	}

	return c.JSON(http.StatusOK, Response{
		Data:    user,
		Success: true,
	})
}

// OtherUsers godoc
// @Summary List all users except the given one
// @Tags users
// @Produce json
// @Param id path string true "Excluded user ID"
// @Success 200 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /otheruser/{id} [get]
func (h *UserHandler) OtherUsers(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{
			Message: "invalid user id",
		})
	}

	users, err := h.userService.OtherUsers(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err, "other users")
	}

	return c.JSON(http.StatusOK, Response{
		Data:    users,
		Success: true,
	})
}

// Follow godoc
// @Summary Follow a user
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "Target user ID"
// @Param request body ActorRequest true "Acting user"
// @Success 200 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /follow/{id} [post]
func (h *UserHandler) Follow(c echo.Context) error {
	actorID, targetID, err := h.bindRelationshipIDs(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{
			Message: err.Error(),
		})
	}

	result, err := h.userService.Follow(c.Request().Context(), actorID, targetID)
	if err != nil {
		return h.fail(c, err, "follow")
	}

	return c.JSON(http.StatusOK, Response{
		Message: fmt.Sprintf("%s just followed %s", result.ActorName, result.TargetName),
		Success: true,
	})
}

// Unfollow godoc
// @Summary Unfollow a user
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "Target user ID"
// @Param request body ActorRequest true "Acting user"
// @Success 200 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /unfollow/{id} [post]
func (h *UserHandler) Unfollow(c echo.Context) error {
	actorID, targetID, err := h.bindRelationshipIDs(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{
			Message: err.Error(),
		})
	}

	result, err := h.userService.Unfollow(c.Request().Context(), actorID, targetID)
	if err != nil {
		return h.fail(c, err, "unfollow")
	}

	return c.JSON(http.StatusOK, Response{
		Message: fmt.Sprintf("%s unfollowed %s", result.ActorName, result.TargetName),
		Success: true,
	})
}

// Bookmark godoc
// @Summary Toggle a tweet bookmark
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "Tweet ID"
// @Param request body ActorRequest true "Acting user"
// @Success 200 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /bookmark/{id} [put]
func (h *UserHandler) Bookmark(c echo.Context) error {
	var req ActorRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{
			Message: "invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{
			Message: "invalid request body",
		})
	}

	userID, err := primitive.ObjectIDFromHex(req.ID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{
			Message: "invalid user id",
		})
	}

	action, err := h.userService.ToggleBookmark(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return h.fail(c, err, "bookmark")
	}

	message := "Saved to bookmarks."
	if action == service.BookmarkRemoved {
		message = "Removed from bookmarks."
	}

	return c.JSON(http.StatusOK, Response{
		Message: message,
		Success: true,
	})
}

// bindRelationshipIDs reads the actor id from the body and the target id
// from the path.
func (h *UserHandler) bindRelationshipIDs(c echo.Context) (actorID, targetID primitive.ObjectID, err error) {
	var req ActorRequest
	if err := c.Bind(&req); err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, fmt.Errorf("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, fmt.Errorf("invalid request body")
	}

	actorID, err = primitive.ObjectIDFromHex(req.ID)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, fmt.Errorf("invalid user id")
	}
	targetID, err = primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, fmt.Errorf("invalid user id")
	}
	return actorID, targetID, nil
}

func (h *UserHandler) fail(c echo.Context, err error, op string) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	if httpErr.StatusCode == http.StatusInternalServerError {
		h.log.WithError(err).Error(op)
	}
	return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
}
