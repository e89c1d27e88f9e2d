package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"membership-api/internal/middleware"
	"membership-api/internal/model"
	"membership-api/pkg/apierror"
)

const maxBodyBytes = 1 << 20

func writeSuccess(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, model.APIResponse{
		Status: model.StatusSuccess,
		Data:   data,
	})
}

func writeAuthSuccess(w http.ResponseWriter, session model.Session) {
	writeJSON(w, http.StatusOK, model.AuthResponse{
		Status:  model.StatusSuccess,
		Session: session,
	})
}

// writeError renders any error as the error envelope. Errors that are not
// an *apierror.APIError are classified by their sentinel; anything left is
// an internal error. Causes of 5xx responses are logged, never returned.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	apiErr := classify(err)

	if apiErr.Kind.Internal() {
		slog.Error("request failed",
			"request_id", middleware.RequestIDFromContext(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"code", string(apiErr.Kind),
			"error", err.Error(),
		)
	}

	writeJSON(w, apiErr.HTTPStatus(), model.ErrorResponse{
		Status:  model.StatusError,
		Error:   apiErr.PublicMessage(),
		Code:    string(apiErr.Kind),
		Details: publicDetails(apiErr),
	})
}

func classify(err error) *apierror.APIError {
	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	switch {
	case errors.Is(err, model.ErrUserNotFound):
		return apierror.New(apierror.KindUserNotFound, "user not found", "")
	case errors.Is(err, model.ErrUserAlreadyExists):
		return apierror.New(apierror.KindAlreadyExists, "User already exists", "")
	case errors.Is(err, model.ErrMemberNotFound):
		return apierror.New(apierror.KindNotFound, "member not found", "")
	case errors.Is(err, model.ErrSpaceNotFound):
		return apierror.New(apierror.KindNotFound, "space not found", "")
	case errors.Is(err, model.ErrMedicalSocietyNotFound):
		return apierror.New(apierror.KindNotFound, "medical society not found", "")
	case errors.Is(err, model.ErrSpaceAlreadyExists), errors.Is(err, model.ErrMedicalSocietyExists):
		return apierror.New(apierror.KindAlreadyExists, "already exists", "")
	case errors.Is(err, model.ErrInvalidInput):
		return apierror.New(apierror.KindBadRequest, "invalid input", "")
	default:
		return apierror.Wrap(apierror.KindInternal, "unclassified error", err)
	}
}

func publicDetails(err *apierror.APIError) string {
	if err.Kind.Internal() {
		return ""
	}
	return err.Details
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// decodeJSON reads a single JSON object from the request body.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	defer r.Body.Close()

	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apierror.New(apierror.KindBadRequest, "request body is required", "")
		}
		return apierror.New(apierror.KindBadRequest, "invalid JSON body", err.Error())
	}
	return nil
}
