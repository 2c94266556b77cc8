package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a user lookup matches no document.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserAlreadyExists is returned when registering an email that is taken.
	ErrUserAlreadyExists = errors.New("User already exists")
	// ErrInvalidCredentials is returned for an unknown email or a wrong password.
	ErrInvalidCredentials = errors.New("Incorrect email or password")
	// ErrNotFollowing is returned when unfollowing a user that was never followed.
	ErrNotFollowing = errors.New("User has not followed yet")
	// ErrSelfFollow is returned when a user tries to follow themselves.
	ErrSelfFollow = errors.New("cannot follow yourself")
	// ErrNoUsersFound is returned when a user listing comes back empty.
	ErrNoUsersFound = errors.New("No users found")
)

// AlreadyFollowingError carries the target's display name so the response
// can say who is already followed.
type AlreadyFollowingError struct {
	Name string
}

func (e *AlreadyFollowingError) Error() string {
	return fmt.Sprintf("User already followed %s", e.Name)
}

// ErrorResponse is the failure envelope returned to clients.
type ErrorResponse struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
	}
}

// ToErrorResponse converts an HTTPError to the client envelope.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Message: e.Message,
		Success: false,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unknown errors collapse
// to a generic 500 so store detail never leaks to clients.
func MapErrorToHTTP(err error) *HTTPError {
	var alreadyFollowing *AlreadyFollowingError
	if errors.As(err, &alreadyFollowing) {
		return NewHTTPError(http.StatusBadRequest, alreadyFollowing.Error())
	}

	switch {
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrUserAlreadyExists):
		return NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrNotFollowing), errors.Is(err, ErrSelfFollow):
		return NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNoUsersFound):
		return NewHTTPError(http.StatusNotFound, err.Error())
	default:
		return NewHTTPError(http.StatusInternalServerError, "Internal Server Error")
	}
}
