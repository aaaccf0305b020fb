package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/nightowllabs/taskhub/internal/taskhub/service"
	"github.com/nightowllabs/taskhub/internal/taskhub/store"
	"github.com/nightowllabs/taskhub/pkg/httpx"
	"github.com/nightowllabs/taskhub/pkg/slogx"
	"github.com/nightowllabs/taskhub/pkg/taskhubapi"
)

func writeError(w http.ResponseWriter, status int, code, description string) {
	httpx.WriteJSON(w, status, taskhubapi.ErrorResponse{
		Error:            code,
		ErrorDescription: description,
	})
}

func writeValidationError(w http.ResponseWriter, description string) {
	writeError(w, http.StatusBadRequest, taskhubapi.ErrorCodeValidationFailed, description)
}

// writeServiceError translates service sentinel errors into HTTP status
// codes. Anything unmatched is a 500 and gets logged.
func writeServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrAssigneeNotFound):
		writeError(w, http.StatusNotFound, taskhubapi.ErrorCodeNotFound, err.Error())

	case errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, store.ErrAlreadyExists):
		writeError(w, http.StatusConflict, taskhubapi.ErrorCodeConflict, err.Error())

	default:
		slogx.FromContext(ctx).Error("request failed", "err", err)
		writeError(w, http.StatusInternalServerError, taskhubapi.ErrorCodeServerError,
			"an internal error occurred")
	}
}
