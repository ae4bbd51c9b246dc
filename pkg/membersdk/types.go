package membersdk

import "time"

// ============================================================================
// Error Response Types
// ============================================================================

// ErrorResponse is the JSON body of every non-validation error.
type ErrorResponse struct {
	// Error is the error code (e.g. "not_found", "partial_failure")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`

	// Stage is "add" or "remove" on partial_failure
	Stage string `json:"stage,omitempty"`

	// Applied lists roles already added when the remove stage failed
	Applied []string `json:"applied,omitempty"`
}

// ValidationErrorResponse is returned when request validation fails.
type ValidationErrorResponse struct {
	// Code is always "validation_error"
	Code string `json:"code"`

	// Message is a human-readable error message
	Message string `json:"message"`

	// Details maps field names to error messages
	Details map[string]string `json:"details,omitempty"`
}

// ============================================================================
// Auth Types
// ============================================================================

// RegisterRequest creates a new member account.
type RegisterRequest struct {
	// Username is 3-32 characters of a-z, 0-9, '_', '.' or '-' (case is folded)
	Username string `json:"username" validate:"required,min=3,max=32,username"`

	// Password is 8-128 characters
	Password string `json:"password" validate:"required,min=8,max=128"`

	// KnownAs is the display name; defaults to the username
	KnownAs string `json:"known_as,omitempty" validate:"omitempty,max=64"`
}

// LoginRequest exchanges credentials for an access token.
type LoginRequest struct {
	Username string `json:"username" validate:"required,max=32"`
	Password string `json:"password" validate:"required,max=128"`
}

// LoginResponse carries the signed access token.
type LoginResponse struct {
	// Token is the HS512-signed JWT; send it as "Authorization: Bearer <token>"
	Token string `json:"token"`

	// ExpiresAt is when the token stops being accepted
	ExpiresAt time.Time `json:"expires_at"`

	User UserResponse `json:"user"`
}

// ============================================================================
// User Types
// ============================================================================

// UserResponse is a member profile. Photos holds approved photos only,
// unless the caller is the owner. LastActive is absent until the member
// makes an authenticated request.
type UserResponse struct {
	ID         int64           `json:"id"`
	Username   string          `json:"username"`
	KnownAs    string          `json:"known_as"`
	Roles      []string        `json:"roles"`
	CreatedAt  time.Time       `json:"created_at"`
	LastActive *time.Time      `json:"last_active,omitempty"`
	Photos     []PhotoResponse `json:"photos,omitempty"`
}

// UpdateUserRequest changes the caller's own profile.
type UpdateUserRequest struct {
	KnownAs string `json:"known_as" validate:"required,max=64"`
}

// UserWithRolesResponse is one row of the admin user listing.
type UserWithRolesResponse struct {
	ID       int64    `json:"id"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

// ============================================================================
// Role Types
// ============================================================================

// EditRolesRequest sets a user's complete role set. Names match existing
// roles case-insensitively; an empty list removes every role.
type EditRolesRequest struct {
	RoleNames []string `json:"roleNames" validate:"omitempty,dive,required,max=32"`
}

// RolesResponse is the resulting role set of a user, sorted.
type RolesResponse struct {
	Roles []string `json:"roles"`
}

// CreateRoleRequest adds a role to the vocabulary.
type CreateRoleRequest struct {
	Name string `json:"name" validate:"required,min=2,max=32,alphanum"`
}

// RoleResponse describes one role.
type RoleResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Builtin bool   `json:"builtin"`
}

// ListRolesResponse lists every role.
type ListRolesResponse struct {
	Roles []RoleResponse `json:"roles"`
}

// ============================================================================
// Photo Types
// ============================================================================

// PhotoResponse is a photo as seen by its owner or the public.
type PhotoResponse struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
	IsMain      bool      `json:"is_main"`
	IsApproved  bool      `json:"is_approved"`
	State       string    `json:"state"`
	CreatedAt   time.Time `json:"created_at"`
}

// PhotoForModerationResponse is an entry of the moderation queue.
type PhotoForModerationResponse struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	UserKnownAs string    `json:"user_known_as"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
	DateAdded   time.Time `json:"date_added"`
	IsMain      bool      `json:"is_main"`
	State       string    `json:"state"`
}

// ModerationResponse reports the outcome of a moderation action.
type ModerationResponse struct {
	PhotoID int64  `json:"photo_id"`
	UserID  int64  `json:"user_id"`
	State   string `json:"state"`
}

// ============================================================================
// Bootstrap Types
// ============================================================================

// BootstrapRequest creates the first administrator.
type BootstrapRequest struct {
	AdminUsername string `json:"admin_username" validate:"required,min=3,max=32,username"`
	AdminPassword string `json:"admin_password" validate:"required,min=8,max=128"`
	AdminKnownAs  string `json:"admin_known_as,omitempty" validate:"omitempty,max=64"`
}

// BootstrapResponse identifies the created administrator.
type BootstrapResponse struct {
	AdminUserID int64  `json:"admin_user_id"`
	Username    string `json:"username"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string            `json:"status"`
	Uptime  string            `json:"uptime,omitempty"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks,omitempty"`
}
