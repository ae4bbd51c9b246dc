package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/rendezvous/internal/members/service"
	"github.com/aussiebroadwan/rendezvous/pkg/membersdk"
	"github.com/aussiebroadwan/rendezvous/pkg/slogx"
)

// writeServiceError maps a service error onto its HTTP response.
// Persistence and blob store failures are logged and hidden from the client.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		membersdk.WriteValidationError(w, ve.Message, ve.Details)
		return
	}

	var pf *service.PartialFailureError
	if errors.As(err, &pf) {
		slogx.FromContext(r.Context()).Error("role reconciliation incomplete",
			"stage", pf.Stage, "applied", pf.Added, "err", pf.Err)
		apiErr := membersdk.NewAPIError(http.StatusConflict, membersdk.ErrorCodePartialFailure,
			"role update was only partly applied; retry the same request")
		apiErr.Stage = string(pf.Stage)
		apiErr.Applied = pf.Added
		apiErr.WriteError(w)
		return
	}

	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		membersdk.ErrInvalidCredentials.WriteError(w)
	case errors.Is(err, service.ErrAuthorizationDenied):
		membersdk.ErrAccessDenied.WriteError(w)
	case errors.Is(err, service.ErrNotFound):
		membersdk.ErrNotFound.WriteError(w)
	case errors.Is(err, service.ErrAlreadyExists):
		membersdk.ErrConflict.WriteError(w)
	case errors.Is(err, service.ErrInvalidTransition):
		membersdk.ErrInvalidTransition.WriteError(w)
	case errors.Is(err, service.ErrUnsupportedMedia):
		membersdk.ErrUnsupportedMediaType.WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		membersdk.ErrServerError.WriteError(w)
	}
}

// writeDecodeError reports a body that could not be parsed as JSON.
func writeDecodeError(w http.ResponseWriter, err error) {
	membersdk.ErrInvalidRequest.WithDescription(err.Error()).WriteError(w)
}

// pathID parses the numeric path value name.
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func writeBadPath(w http.ResponseWriter, name string) {
	membersdk.ErrInvalidRequest.WithDescription(name + " must be a positive integer").WriteError(w)
}
