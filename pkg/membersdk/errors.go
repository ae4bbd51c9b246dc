package membersdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/rendezvous/pkg/httpx"
)

// ============================================================================
// Error Codes
// ============================================================================

const (
	ErrorCodeInvalidRequest       = "invalid_request"
	ErrorCodeValidation           = "validation_error"
	ErrorCodeInvalidCredentials   = "invalid_credentials"
	ErrorCodeInvalidToken         = "invalid_token"
	ErrorCodeAccessDenied         = "access_denied"
	ErrorCodeNotFound             = "not_found"
	ErrorCodeConflict             = "conflict"
	ErrorCodeInvalidTransition    = "invalid_transition"
	ErrorCodePartialFailure       = "partial_failure"
	ErrorCodeUnsupportedMediaType = "unsupported_media_type"
	ErrorCodeServerError          = "server_error"
)

// ============================================================================
// APIError
// ============================================================================

// APIError is the error body every endpoint returns. It implements error so
// the server can write it and the client can return it.
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the machine readable error code (e.g. "not_found")
	Code string `json:"error"`

	// Description is a human-readable description of the error
	Description string `json:"error_description"`

	// Stage is set on partial role reconciliation failures ("add" or "remove")
	Stage string `json:"stage,omitempty"`

	// Applied lists roles that were already added when a reconciliation
	// failed at the remove stage
	Applied []string `json:"applied,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes e as a JSON response.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error:            e.Code,
		ErrorDescription: e.Description,
		Stage:            e.Stage,
		Applied:          e.Applied,
	})
}

// WithDescription returns a copy of e with a different description.
func (e *APIError) WithDescription(desc string) *APIError {
	cp := *e
	cp.Description = desc
	return &cp
}

// ============================================================================
// Predefined Errors
// ============================================================================

var (
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}

	// ErrInvalidCredentials never says whether the username or the password
	// was wrong.
	ErrInvalidCredentials = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidCredentials,
		Description: "invalid username or password",
	}

	ErrInvalidToken = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidToken,
		Description: "the access token is missing, invalid or expired",
	}

	ErrAccessDenied = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeAccessDenied,
		Description: "access denied",
	}

	ErrNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeNotFound,
		Description: "resource not found",
	}

	ErrConflict = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeConflict,
		Description: "resource already exists",
	}

	ErrInvalidTransition = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeInvalidTransition,
		Description: "the photo cannot move to the requested state",
	}

	ErrUnsupportedMediaType = &APIError{
		StatusCode:  http.StatusUnsupportedMediaType,
		Code:        ErrorCodeUnsupportedMediaType,
		Description: "only jpeg, png, gif and webp images are accepted",
	}

	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}
)

// NewAPIError creates an APIError with the given status, code and description.
func NewAPIError(statusCode int, code, description string) *APIError {
	return &APIError{
		StatusCode:  statusCode,
		Code:        code,
		Description: description,
	}
}

// ============================================================================
// Validation Errors
// ============================================================================

// ValidationError is returned by the client when the server rejected a
// request body field by field.
type ValidationError struct {
	StatusCode int
	Message    string
	Details    map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrorCodeValidation, e.Message)
}

// WriteValidationError writes a 400 with per-field details.
func WriteValidationError(w http.ResponseWriter, message string, details map[string]string) {
	httpx.WriteJSON(w, http.StatusBadRequest, ValidationErrorResponse{
		Code:    ErrorCodeValidation,
		Message: message,
		Details: details,
	})
}

// ============================================================================
// Error Parsing Helpers
// ============================================================================

// parseErrorResponse turns a non-2xx response into *APIError or
// *ValidationError. It returns nil for 2xx responses.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var valErr ValidationErrorResponse
	if err := json.Unmarshal(body, &valErr); err == nil && valErr.Code == ErrorCodeValidation {
		return &ValidationError{
			StatusCode: resp.StatusCode,
			Message:    valErr.Message,
			Details:    valErr.Details,
		}
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
			Stage:       errResp.Stage,
			Applied:     errResp.Applied,
		}
	}

	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
