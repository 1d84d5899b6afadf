package http

import (
	"net/http"

	"github.com/MKhiriev/go-site-keeper/internal/utils"
	"github.com/MKhiriev/go-site-keeper/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) uploadObject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	data, filename, contentType, err := h.readUpload(w, r, h.maxUploadBytes)
	if err != nil {
		h.writeError(w, r, "*Handler.uploadObject", err)
		return
	}

	object, err := h.services.StorageService.Upload(ctx, utils.GetIdentityFromContext(ctx), filename, data, contentType)
	if err != nil {
		h.writeError(w, r, "*Handler.uploadObject", err)
		return
	}

	utils.WriteJSON(w, object, http.StatusCreated)
}

func (h *Handler) listObjects(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	objects, err := h.services.StorageService.List(ctx, utils.GetIdentityFromContext(ctx))
	if err != nil {
		h.writeError(w, r, "*Handler.listObjects", err)
		return
	}
	if objects == nil {
		objects = []models.StoredObject{}
	}

	utils.WriteJSON(w, objects, http.StatusOK)
}

func (h *Handler) getObject(w http.ResponseWriter, r *http.Request) {
	object, err := h.services.StorageService.Get(r.Context(), chi.URLParam(r, "*"))
	if err != nil {
		h.writeError(w, r, "*Handler.getObject", err)
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=86400")
	writeObject(w, object)
}

func (h *Handler) deleteObject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.services.StorageService.Delete(ctx, utils.GetIdentityFromContext(ctx), chi.URLParam(r, "*")); err != nil {
		h.writeError(w, r, "*Handler.deleteObject", err)
		return
	}

	utils.WriteJSON(w, models.StatusResponse{Status: "ok"}, http.StatusOK)
}
