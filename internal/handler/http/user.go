package http

import (
	"net/http"

	"github.com/MKhiriev/go-site-keeper/internal/utils"
)

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := h.services.AuthService.Profile(ctx, utils.GetIdentityFromContext(ctx))
	if err != nil {
		h.writeError(w, r, "*Handler.getProfile", err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}
