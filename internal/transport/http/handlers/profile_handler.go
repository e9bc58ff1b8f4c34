package handlers

import (
	"net/http"

	"github.com/slice-of-life/backend/internal/apierr"
	"github.com/slice-of-life/backend/internal/service"
	"github.com/slice-of-life/backend/internal/transport/http/middleware"
)

type ProfileHandler struct {
	profileService *service.ProfileService
}

func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

func (h *ProfileHandler) Profile(w http.ResponseWriter, r *http.Request) {
	handle, err := authorizedHandle(r)
	if err != nil {
		respondError(w, err)
		return
	}

	user, err := h.profileService.Profile(r.Context(), handle)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *ProfileHandler) Tasklist(w http.ResponseWriter, r *http.Request) {
	handle, err := authorizedHandle(r)
	if err != nil {
		respondError(w, err)
		return
	}

	list, err := h.profileService.TasklistFor(r.Context(), handle)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// authorizedHandle requires the token subject to match the handle in the
// path. The check runs before any query.
func authorizedHandle(r *http.Request) (string, error) {
	handle := r.PathValue("handle")
	if handle == "" {
		return "", apierr.New(apierr.BadRequest, "handle is required")
	}
	if middleware.Subject(r.Context()) != handle {
		return "", apierr.New(apierr.Unauthorized, "credentials do not match the requested profile")
	}
	return handle, nil
}
