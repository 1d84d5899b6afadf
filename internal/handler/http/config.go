package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-site-keeper/internal/policy"
	"github.com/MKhiriev/go-site-keeper/internal/service"
	"github.com/MKhiriev/go-site-keeper/internal/utils"
	"github.com/MKhiriev/go-site-keeper/internal/validators"
	"github.com/MKhiriev/go-site-keeper/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) getConfig(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ns := models.Namespace(chi.URLParam(r, "type"))

	entries, err := h.services.ConfigService.GetConfig(ctx, ns, utils.GetIdentityFromContext(ctx))
	if err != nil {
		h.writeError(w, r, "*Handler.getConfig", err)
		return
	}

	utils.WriteJSON(w, entries, http.StatusOK)
}

func (h *Handler) updateConfig(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ns := models.Namespace(chi.URLParam(r, "type"))
	id := utils.GetIdentityFromContext(ctx)

	// checked before the body is read: a bad type is always 400 and an
	// anonymous write is always 401, whatever the payload
	if !ns.Valid() {
		h.writeError(w, r, "*Handler.updateConfig", fmt.Errorf("%w: %w", service.ErrInvalidArgument, validators.ErrInvalidNamespace))
		return
	}
	if err := policy.RequireConfigWrite(ns, id); err != nil {
		h.writeError(w, r, "*Handler.updateConfig", err)
		return
	}

	var entries models.ConfigMap
	if err := h.decodeJSON(w, r, &entries); err != nil {
		h.writeError(w, r, "*Handler.updateConfig", err)
		return
	}

	if err := h.services.ConfigService.UpdateConfig(ctx, ns, id, entries); err != nil {
		h.writeError(w, r, "*Handler.updateConfig", err)
		return
	}

	utils.WriteJSON(w, models.StatusResponse{Status: "ok"}, http.StatusOK)
}

func (h *Handler) clearCache(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.services.ConfigService.ClearCache(ctx, utils.GetIdentityFromContext(ctx)); err != nil {
		h.writeError(w, r, "*Handler.clearCache", err)
		return
	}

	utils.WriteJSON(w, models.StatusResponse{Status: "ok"}, http.StatusOK)
}

func (h *Handler) testAI(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := utils.GetIdentityFromContext(ctx)

	var req models.AITestRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, "*Handler.testAI", err)
		return
	}

	result, err := h.services.ConfigService.TestAI(ctx, id, req)
	if err != nil {
		h.writeError(w, r, "*Handler.testAI", err)
		return
	}

	utils.WriteJSON(w, result, http.StatusOK)
}
