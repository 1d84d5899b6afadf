package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-site-keeper/internal/service"
	"github.com/MKhiriev/go-site-keeper/internal/utils"
	"github.com/MKhiriev/go-site-keeper/models"
)

func (h *Handler) getFavicon(w http.ResponseWriter, r *http.Request) {
	icon, err := h.services.FaviconService.Get(r.Context())
	if err != nil {
		h.writeError(w, r, "*Handler.getFavicon", err)
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=3600")
	writeObject(w, icon)
}

func (h *Handler) uploadFavicon(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	data, _, contentType, err := h.readUpload(w, r, service.MaxFaviconBytes)
	if err != nil {
		h.writeError(w, r, "*Handler.uploadFavicon", err)
		return
	}

	if err = h.services.FaviconService.Upload(ctx, utils.GetIdentityFromContext(ctx), data, contentType); err != nil {
		h.writeError(w, r, "*Handler.uploadFavicon", err)
		return
	}

	utils.WriteJSON(w, models.StatusResponse{Status: "ok"}, http.StatusOK)
}

func (h *Handler) fetchFavicon(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.FetchRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, "*Handler.fetchFavicon", err)
		return
	}

	if err := h.services.FaviconService.FetchFromURL(ctx, utils.GetIdentityFromContext(ctx), req.URL); err != nil {
		h.writeError(w, r, "*Handler.fetchFavicon", err)
		return
	}

	utils.WriteJSON(w, models.StatusResponse{Status: "ok"}, http.StatusOK)
}

// inlineContentTypes are the media types served for display in place. Any
// other object is sent as a sandboxed download.
var inlineContentTypes = map[string]struct{}{
	"image/png":                {},
	"image/jpeg":               {},
	"image/gif":                {},
	"image/webp":               {},
	"image/x-icon":             {},
	"image/vnd.microsoft.icon": {},
}

// writeObject answers with raw object bytes.
func writeObject(w http.ResponseWriter, object models.ObjectContent) {
	contentType := object.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(object.Data)))
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Content-Security-Policy", "default-src 'none'; sandbox")
	if !servedInline(contentType) {
		w.Header().Set("Content-Disposition", "attachment")
	}
	w.WriteHeader(http.StatusOK)
	w.Write(object.Data)
}

func servedInline(contentType string) bool {
	mediaType, _, _ := strings.Cut(contentType, ";")
	_, ok := inlineContentTypes[strings.ToLower(strings.TrimSpace(mediaType))]
	return ok
}
