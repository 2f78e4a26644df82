package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/gophtasks/internal/common"
	"github.com/dmitrijs2005/gophtasks/internal/server/auth"
)

type detailResponse struct {
	Detail string `json:"detail"`
}

// statusFor maps a domain error to an HTTP status and a message safe to show
// to clients.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized, "incorrect username or password"
	case errors.Is(err, auth.ErrUnauthorized):
		return http.StatusUnauthorized, auth.ErrUnauthorized.Error()
	case errors.Is(err, auth.ErrBadRequest):
		return http.StatusBadRequest, auth.ErrBadRequest.Error()
	case errors.Is(err, auth.ErrForbidden):
		return http.StatusForbidden, auth.ErrForbidden.Error()
	case errors.Is(err, common.ErrorValidation):
		return http.StatusBadRequest, validationMessage(err)
	case errors.Is(err, common.ErrorForbidden):
		return http.StatusForbidden, "not allowed to modify another user"
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, common.ErrorAlreadyExists):
		return http.StatusBadRequest, "already exists"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

func validationMessage(err error) string {
	msg := err.Error()
	if rest, ok := strings.CutPrefix(msg, common.ErrorValidation.Error()+": "); ok {
		return rest
	}
	return msg
}

// writeError sends {"detail": ...}. detail overrides the default message for
// client errors; server errors are always reported generically and logged.
func (s *HTTPServer) writeError(w http.ResponseWriter, r *http.Request, err error, detail ...string) {
	code, msg := statusFor(err)

	if code == http.StatusInternalServerError {
		s.logger.Error(r.Context(), "request failed", "error", err)
	} else if len(detail) > 0 && detail[0] != "" {
		msg = detail[0]
	}

	if code == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", common.BearerScheme)
	}
	writeJSON(w, code, detailResponse{Detail: msg})
}
