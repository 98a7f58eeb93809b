package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mossii/statusboard/internal/model"
	"github.com/mossii/statusboard/internal/services/lock"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeNameRequired       = "NAME_REQUIRED"
	CodePlayerNotFound     = "PLAYER_NOT_FOUND"
	CodeGameNotFound       = "GAME_NOT_FOUND"
	CodeBoardLocked        = "BOARD_LOCKED"
	CodePassphraseRequired = "PASSPHRASE_REQUIRED"
	CodeWrongPassphrase    = "WRONG_PASSPHRASE"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	// Model errors
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "Game not found"}}
	case errors.Is(err, model.ErrNameRequired):
		return &httpError{http.StatusBadRequest, APIError{CodeNameRequired, "Name is required"}}

	// Lock errors
	case errors.Is(err, lock.ErrWrongPassphrase):
		return &httpError{http.StatusUnauthorized, APIError{CodeWrongPassphrase, "Falsches Passwort"}}
	case errors.Is(err, lock.ErrPassphraseRequired):
		return &httpError{http.StatusConflict, APIError{CodePassphraseRequired, "Passphrase required to unlock"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewBoardLockedError creates the error returned when a mutation hits a locked board
func NewBoardLockedError() error {
	return &httpError{http.StatusLocked, APIError{CodeBoardLocked, "Board is locked"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
