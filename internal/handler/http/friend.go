package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-site-keeper/internal/utils"
	"github.com/MKhiriev/go-site-keeper/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) listFriends(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	friends, err := h.services.FriendService.List(ctx, utils.GetIdentityFromContext(ctx))
	if err != nil {
		h.writeError(w, r, "*Handler.listFriends", err)
		return
	}
	if friends == nil {
		friends = []models.Friend{}
	}

	utils.WriteJSON(w, friends, http.StatusOK)
}

func (h *Handler) createFriend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.FriendRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, "*Handler.createFriend", err)
		return
	}

	friend, err := h.services.FriendService.Create(ctx, utils.GetIdentityFromContext(ctx), req)
	if err != nil {
		h.writeError(w, r, "*Handler.createFriend", err)
		return
	}

	utils.WriteJSON(w, friend, http.StatusCreated)
}

func (h *Handler) updateFriend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	friendID, err := friendIDFromPath(r)
	if err != nil {
		h.writeError(w, r, "*Handler.updateFriend", err)
		return
	}

	var req models.FriendRequest
	if err = h.decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, "*Handler.updateFriend", err)
		return
	}

	friend, err := h.services.FriendService.Update(ctx, utils.GetIdentityFromContext(ctx), friendID, req)
	if err != nil {
		h.writeError(w, r, "*Handler.updateFriend", err)
		return
	}

	utils.WriteJSON(w, friend, http.StatusOK)
}

func (h *Handler) deleteFriend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	friendID, err := friendIDFromPath(r)
	if err != nil {
		h.writeError(w, r, "*Handler.deleteFriend", err)
		return
	}

	if err = h.services.FriendService.Delete(ctx, utils.GetIdentityFromContext(ctx), friendID); err != nil {
		h.writeError(w, r, "*Handler.deleteFriend", err)
		return
	}

	utils.WriteJSON(w, models.StatusResponse{Status: "ok"}, http.StatusOK)
}

func friendIDFromPath(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFriendID, raw)
	}
	return id, nil
}
