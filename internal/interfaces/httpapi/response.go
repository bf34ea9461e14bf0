package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/gamemaster/internal/usecase"
)

const internalErrorMessage = "Internal server error"

type errorResponse struct {
	Error  string          `json:"error"`
	Issues []usecase.Issue `json:"issues,omitempty"`
}

type itemsResponse struct {
	Items any `json:"items"`
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	_, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeItems(ctx context.Context, w http.ResponseWriter, items any) {
	writeJSON(ctx, w, http.StatusOK, itemsResponse{Items: items})
}

// writeError renders err as {error, issues?}. Unclassified errors become a
// generic 500 so driver messages never reach clients.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	status := mapError(err)
	body := errorResponse{Error: err.Error()}

	var verr *usecase.ValidationError
	var named *usecase.Error
	switch {
	case status == http.StatusInternalServerError:
		body.Error = internalErrorMessage
	case errors.As(err, &verr):
		body.Error = verr.Error()
		body.Issues = verr.Issues
	case errors.As(err, &named):
		body.Error = named.Error()
	}

	writeJSON(ctx, w, status, body)
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	writeJSON(ctx, w, http.StatusInternalServerError, errorResponse{Error: internalErrorMessage})
}

func mapError(err error) int {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput),
		errors.Is(err, usecase.ErrInvalidState),
		errors.Is(err, usecase.ErrWindowClosed),
		errors.Is(err, usecase.ErrTooEarly):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, usecase.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, usecase.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, usecase.ErrTooManyRequests):
		return http.StatusTooManyRequests
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
