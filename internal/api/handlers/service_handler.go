package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/linkstart-be/internal/api/respond"
	"github.com/isdelr/linkstart-be/internal/auth"
	"github.com/isdelr/linkstart-be/internal/common"
	"github.com/isdelr/linkstart-be/internal/services"
	"github.com/rs/zerolog/hlog"
)

// ServiceHandler handles HTTP requests for the caller's service records.
type ServiceHandler struct {
	manager services.ServiceManagerProvider
}

// NewServiceHandler creates a new ServiceHandler.
func NewServiceHandler(manager services.ServiceManagerProvider) *ServiceHandler {
	return &ServiceHandler{manager: manager}
}

// ServicePayload is the create request body. A client-supplied
// service_owner is accepted but ignored.
type ServicePayload struct {
	Name      string `json:"name"`
	PublicIP  string `json:"public_ip"`
	PrivateIP string `json:"private_ip"`
}

// Create stores a new record owned by the caller.
func (h *ServiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	owner, _ := auth.SubjectFromContext(r.Context())

	var payload ServicePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respond.Detail(w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}

	svc, err := h.manager.Create(r.Context(), owner, payload.Name, payload.PublicIP, payload.PrivateIP)
	switch {
	case err == nil:
		respond.JSON(w, http.StatusOK, svc)
	case errors.Is(err, common.ErrValidation), errors.Is(err, common.ErrUnauthenticated):
		writeError(w, r, err)
	default:
		hlog.FromRequest(r).Error().Err(err).Str("owner", owner).Msg("Failed to create service")
		respond.Detail(w, http.StatusUnprocessableEntity, "Unable to create service")
	}
}

// GetAll lists the caller's records.
func (h *ServiceHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	owner, _ := auth.SubjectFromContext(r.Context())

	list, err := h.manager.List(r.Context(), owner)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, list)
}

// Delete removes one of the caller's records. A record owned by someone else
// is reported exactly like a missing one.
func (h *ServiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	owner, _ := auth.SubjectFromContext(r.Context())
	id := chi.URLParam(r, "id")

	err := h.manager.Delete(r.Context(), owner, id)
	switch {
	case err == nil:
		respond.JSON(w, http.StatusOK, map[string]string{"message": "Service successfully deleted"})
	case errors.Is(err, common.ErrInvalidIdentifier):
		respond.Detail(w, http.StatusBadRequest, "Invalid service ID format")
	case errors.Is(err, common.ErrNotFound):
		respond.Detail(w, http.StatusNotFound, "Service not found")
	default:
		writeError(w, r, err)
	}
}

// Count reports how many records the caller owns.
func (h *ServiceHandler) Count(w http.ResponseWriter, r *http.Request) {
	owner, _ := auth.SubjectFromContext(r.Context())

	n, err := h.manager.Count(r.Context(), owner)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]int64{"count": n})
}
