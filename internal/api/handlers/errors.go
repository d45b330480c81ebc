package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/isdelr/linkstart-be/internal/api/respond"
	"github.com/isdelr/linkstart-be/internal/common"
	"github.com/rs/zerolog/hlog"
)

// validationDetail strips the sentinel prefix so the client sees only the
// field messages.
func validationDetail(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, common.ErrValidation.Error()+": "); i >= 0 {
		return msg[i+len(common.ErrValidation.Error())+2:]
	}
	return msg
}

// writeError maps the errors shared by every endpoint. Anything unrecognised
// is logged and reported as a 500 without detail.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrUnauthenticated):
		w.Header().Set("WWW-Authenticate", "Bearer")
		respond.Detail(w, http.StatusUnauthorized, "Not authenticated")
	case errors.Is(err, common.ErrValidation):
		respond.Detail(w, http.StatusUnprocessableEntity, validationDetail(err))
	case errors.Is(err, common.ErrUserNotFound):
		respond.Detail(w, http.StatusNotFound, "User not found")
	default:
		hlog.FromRequest(r).Error().Err(err).Msg("Unhandled request error")
		respond.Internal(w)
	}
}
